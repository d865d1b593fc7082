package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopfront/internal/services"
)

// StorefrontHandler serves the public, unauthenticated storefront views.
type StorefrontHandler struct {
	Stores *services.StoreService
}

func (h *StorefrontHandler) Show(c *fiber.Ctx) error {
	sf, err := h.Stores.Storefront(c.Params("slug"))
	if err != nil {
		return failFrom(c, err)
	}
	return c.JSON(sf)
}

func (h *StorefrontHandler) Products(c *fiber.Ctx) error {
	categoryID := int64(c.QueryInt("category"))
	prods, err := h.Stores.StorefrontProducts(c.Params("slug"), categoryID)
	if err != nil {
		return failFrom(c, err)
	}
	return c.JSON(prods)
}
