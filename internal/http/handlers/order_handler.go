package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopfront/internal/log"
	"shopfront/internal/services"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// Place runs checkout for the customer's cart in one store.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var req struct {
		StoreID        int64   `json:"storeId"`
		CustomerName   string  `json:"customerName"`
		Phone          *string `json:"customerPhone"`
		Address        *string `json:"customerAddress"`
		DeliveryMethod string  `json:"deliveryMethod"`
		Notes          *string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad json")
	}
	if req.StoreID <= 0 {
		return fail(c, fiber.StatusBadRequest, "storeId required")
	}
	cust := currentCustomer(c)
	if req.CustomerName == "" {
		req.CustomerName = currentUser(c).Username
	}
	placed, err := h.Orders.Place(cust.ID, req.StoreID, services.Contact{
		Name:    req.CustomerName,
		Phone:   req.Phone,
		Address: req.Address,
	}, req.DeliveryMethod, req.Notes)
	if err != nil {
		return failFrom(c, err)
	}
	applog.Audit(c, "order.place", map[string]any{
		"order_id": placed.Order.ID, "store_id": req.StoreID, "total": placed.Order.Total,
	})
	return c.Status(fiber.StatusCreated).JSON(placed)
}

// MarkSent records that the customer opened the WhatsApp link.
func (h *OrderHandler) MarkSent(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "bad id")
	}
	o, err := h.Orders.MarkSent(currentCustomer(c).ID, int64(id))
	if err != nil {
		return failFrom(c, err)
	}
	return c.JSON(o)
}

// History lists the customer's own past orders.
func (h *OrderHandler) History(c *fiber.Ctx) error {
	orders, err := h.Orders.History(currentCustomer(c).ID)
	if err != nil {
		return failFrom(c, err)
	}
	return c.JSON(orders)
}

// StoreOrders lists the owner's incoming orders.
func (h *OrderHandler) StoreOrders(c *fiber.Ctx) error {
	orders, err := h.Orders.StoreOrders(currentUser(c).ID)
	if err != nil {
		return failFrom(c, err)
	}
	return c.JSON(orders)
}

// StoreOrder shows one order with its item snapshots.
func (h *OrderHandler) StoreOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "bad id")
	}
	o, items, err := h.Orders.OrderWithItems(currentUser(c).ID, int64(id))
	if err != nil {
		return failFrom(c, err)
	}
	return c.JSON(fiber.Map{"order": o, "items": items})
}
