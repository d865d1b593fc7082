package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopfront/internal/log"
	"shopfront/internal/services"
	"shopfront/internal/storage"
	"shopfront/internal/validate"
)

// CatalogHandler covers the owner's category and product management.
type CatalogHandler struct {
	Catalog *services.CatalogService
}

func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories(currentUser(c).ID)
	if err != nil {
		return failFrom(c, err)
	}
	return c.JSON(cats)
}

func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad json")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid name")
	}
	cat, err := h.Catalog.CreateCategory(currentUser(c).ID, name)
	if err != nil {
		return failFrom(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cat)
}

func (h *CatalogHandler) RenameCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "bad id")
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad json")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid name")
	}
	cat, err := h.Catalog.RenameCategory(currentUser(c).ID, int64(id), name)
	if err != nil {
		return failFrom(c, err)
	}
	return c.JSON(cat)
}

func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "bad id")
	}
	if err := h.Catalog.DeleteCategory(currentUser(c).ID, int64(id)); err != nil {
		return failFrom(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	prods, err := h.Catalog.ListProducts(currentUser(c).ID)
	if err != nil {
		return failFrom(c, err)
	}
	return c.JSON(prods)
}

type productRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Price       float64 `json:"price"`
	CategoryID  *int64  `json:"categoryId"`
	Active      *bool   `json:"active"`
}

func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad json")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid name")
	}
	if !validate.Price(req.Price) {
		return fail(c, fiber.StatusBadRequest, "invalid price")
	}
	p, err := h.Catalog.CreateProduct(currentUser(c).ID, storage.CreateProductParams{
		Name:        name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Active:      req.Active,
	})
	if err != nil {
		return failFrom(c, err)
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "bad id")
	}
	raw, err := patchBody(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "bad json")
	}

	var p storage.UpdateProductParams
	if p.Name, err = opt[string](raw, "name"); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad name")
	}
	if p.Description, err = opt[string](raw, "description"); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad description")
	}
	if p.ImageURL, err = opt[string](raw, "imageUrl"); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad imageUrl")
	}
	if p.Price, err = opt[float64](raw, "price"); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad price")
	}
	if p.CategoryID, err = opt[int64](raw, "categoryId"); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad categoryId")
	}
	if p.Active, err = opt[bool](raw, "active"); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad active")
	}
	if p.Price.Present() && !p.Price.IsNull() && !validate.Price(p.Price.Value()) {
		return fail(c, fiber.StatusBadRequest, "invalid price")
	}

	prod, err := h.Catalog.UpdateProduct(currentUser(c).ID, int64(id), p)
	if err != nil {
		return failFrom(c, err)
	}
	return c.JSON(prod)
}

func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "bad id")
	}
	if err := h.Catalog.DeleteProduct(currentUser(c).ID, int64(id)); err != nil {
		return failFrom(c, err)
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"ok": true})
}
