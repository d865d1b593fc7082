package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/services"
	"shopfront/internal/storage"
	"shopfront/internal/validate"
)

// StoreHandler covers the owner's view of their own store.
type StoreHandler struct {
	Stores *services.StoreService
}

func (h *StoreHandler) Mine(c *fiber.Ctx) error {
	st, err := h.Stores.MyStore(currentUser(c).ID)
	if err != nil {
		return failFrom(c, err)
	}
	return c.JSON(st)
}

func (h *StoreHandler) Update(c *fiber.Ctx) error {
	raw, err := patchBody(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "bad json")
	}

	var p storage.UpdateStoreParams
	if p.Name, err = opt[string](raw, "name"); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad name")
	}
	if p.WhatsAppNumber, err = opt[string](raw, "whatsappNumber"); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad whatsappNumber")
	}
	if p.Slug, err = opt[string](raw, "slug"); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad slug")
	}
	if p.LogoURL, err = opt[string](raw, "logoUrl"); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad logoUrl")
	}
	if p.InstagramURL, err = opt[string](raw, "instagramUrl"); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad instagramUrl")
	}
	if p.FacebookURL, err = opt[string](raw, "facebookUrl"); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad facebookUrl")
	}
	if p.ShowSocialMedia, err = opt[bool](raw, "showSocialMedia"); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad showSocialMedia")
	}
	if p.Theme, err = opt[domain.StoreTheme](raw, "theme"); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad theme")
	}

	if p.Name.Present() && !p.Name.IsNull() {
		if _, ok := validate.Name(p.Name.Value()); !ok {
			return fail(c, fiber.StatusBadRequest, "invalid name")
		}
	}
	if p.WhatsAppNumber.Present() && !p.WhatsAppNumber.IsNull() {
		if _, ok := validate.Phone(p.WhatsAppNumber.Value()); !ok {
			return fail(c, fiber.StatusBadRequest, "invalid whatsapp number")
		}
	}
	if p.Slug.Present() && !p.Slug.IsNull() {
		slug, ok := validate.Slug(p.Slug.Value())
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid slug")
		}
		p.Slug = storage.Set(slug)
	}

	st, err := h.Stores.UpdateMyStore(currentUser(c).ID, p)
	if err != nil {
		return failFrom(c, err)
	}
	applog.Audit(c, "store.update", map[string]any{"store_id": st.ID})
	return c.JSON(st)
}
