package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopfront/internal/log"
	"shopfront/internal/storage"
)

// AdminHandler exposes the platform operator's views.
type AdminHandler struct {
	Store storage.Storage
}

func (h *AdminHandler) Users(c *fiber.Ctx) error {
	users, err := h.Store.Users()
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (h *AdminHandler) Stores(c *fiber.Ctx) error {
	stores, err := h.Store.Stores()
	if err != nil {
		return err
	}
	return c.JSON(stores)
}

// SetStoreActive flips a store's public visibility.
func (h *AdminHandler) SetStoreActive(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "bad id")
	}
	var req struct {
		Active bool `json:"active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad json")
	}
	st, err := h.Store.UpdateStore(int64(id), storage.UpdateStoreParams{
		Active: storage.Set(req.Active),
	})
	if err != nil {
		return failFrom(c, err)
	}
	applog.Audit(c, "admin.store.active", map[string]any{"store_id": st.ID, "active": req.Active})
	return c.JSON(st)
}
