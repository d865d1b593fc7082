package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"shopfront/internal/http/handlers"
	"shopfront/internal/services"
	"shopfront/internal/storage"
)

// newTestApp assembles the real route surface over a seeded in-memory store.
func newTestApp(t *testing.T) (storage.Storage, *fiber.App) {
	t.Helper()
	st := storage.NewMemory()
	if err := storage.Seed(st); err != nil {
		t.Fatal(err)
	}
	auth := services.NewAuthService(st, time.Hour)
	app := fiber.New()
	handlers.Register(app, handlers.NewDeps(st, auth))
	return st, app
}

func doJSON(t *testing.T, app *fiber.App, method, path, sid string, body any) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

// login returns the sid cookie for a seeded user.
func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", username, resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			return c.Value
		}
	}
	t.Fatalf("login %s: no sid cookie", username)
	return ""
}
