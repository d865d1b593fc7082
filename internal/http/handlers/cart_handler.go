package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopfront/internal/services"
	"shopfront/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

func storeIDQuery(c *fiber.Ctx) (int64, error) {
	id := int64(c.QueryInt("store"))
	if id <= 0 {
		return 0, fail(c, fiber.StatusBadRequest, "store query parameter required")
	}
	return id, nil
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	storeID, err := storeIDQuery(c)
	if err != nil {
		return err
	}
	view, err := h.Cart.View(currentCustomer(c).ID, storeID)
	if err != nil {
		return failFrom(c, err)
	}
	return c.JSON(view)
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	var req struct {
		StoreID   int64 `json:"storeId"`
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad json")
	}
	if req.StoreID <= 0 || req.ProductID <= 0 {
		return fail(c, fiber.StatusBadRequest, "storeId and productId required")
	}
	it, err := h.Cart.Add(currentCustomer(c).ID, req.StoreID, req.ProductID, validate.Qty(req.Quantity))
	if err != nil {
		return failFrom(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(it)
}

func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "bad id")
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad json")
	}
	if err := h.Cart.UpdateQuantity(currentCustomer(c).ID, int64(id), req.Quantity); err != nil {
		return failFrom(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "bad id")
	}
	if err := h.Cart.RemoveItem(currentCustomer(c).ID, int64(id)); err != nil {
		return failFrom(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	storeID, err := storeIDQuery(c)
	if err != nil {
		return err
	}
	if err := h.Cart.Clear(currentCustomer(c).ID, storeID); err != nil {
		return failFrom(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
