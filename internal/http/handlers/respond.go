package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"shopfront/internal/services"
	"shopfront/internal/storage"
)

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// failFrom maps service/storage errors onto HTTP statuses. Unknown errors
// bubble to the fiber error handler as 500s.
func failFrom(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrConflict), errors.Is(err, services.ErrSlugTaken),
		errors.Is(err, services.ErrTaken):
		return fail(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrBadCategory), errors.Is(err, services.ErrWrongStore),
		errors.Is(err, services.ErrEmptyCart):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotYourStore):
		return fail(c, fiber.StatusForbidden, err.Error())
	}
	return err
}

// patchBody reads a PATCH payload as raw keys so absent and explicit-null
// fields stay distinguishable.
func patchBody(c *fiber.Ctx) (map[string]json.RawMessage, error) {
	raw := map[string]json.RawMessage{}
	if len(c.Body()) == 0 {
		return raw, nil
	}
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// opt builds a tri-state update field from a raw PATCH key.
func opt[T any](raw map[string]json.RawMessage, key string) (storage.Opt[T], error) {
	v, ok := raw[key]
	if !ok {
		return storage.Opt[T]{}, nil
	}
	if string(v) == "null" {
		return storage.Null[T](), nil
	}
	var t T
	if err := json.Unmarshal(v, &t); err != nil {
		return storage.Opt[T]{}, err
	}
	return storage.Set(t), nil
}
