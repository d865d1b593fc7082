package handlers_test

import (
	"net/http"
	"testing"

	"shopfront/internal/domain"
)

func TestRegisterLoginMe(t *testing.T) {
	_, app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/auth/register", "", map[string]any{
		"username": "carla",
		"email":    "carla@test.dev",
		"password": "Sup3rSecret",
		"role":     "customer",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d", resp.StatusCode)
	}

	sid := login(t, app, "carla", "Sup3rSecret")

	resp = doJSON(t, app, "GET", "/auth/me", sid, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me: status %d", resp.StatusCode)
	}
	u := decode[domain.User](t, resp)
	if u.Username != "carla" || u.Role != domain.RoleCustomer {
		t.Fatalf("bad me payload: %+v", u)
	}
}

func TestLoginBadCreds(t *testing.T) {
	_, app := newTestApp(t)
	resp := doJSON(t, app, "POST", "/auth/login", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.StatusCode)
	}
}

func TestRegisterWeakPasswordRejected(t *testing.T) {
	_, app := newTestApp(t)
	resp := doJSON(t, app, "POST", "/auth/register", "", map[string]any{
		"username": "carla",
		"email":    "carla@test.dev",
		"password": "short",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
}

func TestRegisterShopOwnerGetsStore(t *testing.T) {
	st, app := newTestApp(t)
	resp := doJSON(t, app, "POST", "/auth/register", "", map[string]any{
		"username":       "maria",
		"email":          "maria@test.dev",
		"password":       "Sup3rSecret",
		"role":           "shopowner",
		"storeName":      "Maria's Bakery",
		"whatsappNumber": "15551234567",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register owner: status %d", resp.StatusCode)
	}
	u := decode[domain.User](t, resp)
	if _, err := st.StoreByOwner(u.ID); err != nil {
		t.Fatalf("owner has no store: %v", err)
	}
}

func TestDuplicateUsernameConflicts(t *testing.T) {
	_, app := newTestApp(t)
	resp := doJSON(t, app, "POST", "/auth/register", "", map[string]any{
		"username": "admin", // seeded
		"email":    "fresh@test.dev",
		"password": "Sup3rSecret",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("want 409, got %d", resp.StatusCode)
	}
}
