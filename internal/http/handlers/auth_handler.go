package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	applog "shopfront/internal/log"
	"shopfront/internal/services"
	"shopfront/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type registerRequest struct {
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Role      string  `json:"role"` // customer | shopowner
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	StoreName string  `json:"storeName"`
	WhatsApp  string  `json:"whatsappNumber"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad json")
	}
	username, ok := validate.Username(req.Username)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid username")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return fail(c, fiber.StatusBadRequest, "invalid email")
	}
	if !validate.Password(req.Password) {
		return fail(c, fiber.StatusBadRequest, "password too weak")
	}

	in := services.RegisterInput{Username: username, Email: email, Password: req.Password}

	switch req.Role {
	case "shopowner":
		storeName, ok := validate.Name(req.StoreName)
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid store name")
		}
		whatsapp, ok := validate.Phone(req.WhatsApp)
		if !ok {
			return fail(c, fiber.StatusBadRequest, "invalid whatsapp number")
		}
		u, err := h.Auth.RegisterShopOwner(in, storeName, whatsapp)
		if err != nil {
			return failFrom(c, err)
		}
		applog.Audit(c, "auth.register.owner", map[string]any{"user_id": u.ID})
		return c.Status(fiber.StatusCreated).JSON(u)
	case "", "customer":
		u, err := h.Auth.RegisterCustomer(in, req.Address, req.Phone)
		if err != nil {
			return failFrom(c, err)
		}
		applog.Audit(c, "auth.register.customer", map[string]any{"user_id": u.ID})
		return c.Status(fiber.StatusCreated).JSON(u)
	}
	return fail(c, fiber.StatusBadRequest, "invalid role")
}

func setSID(c *fiber.Ctx, sid string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  expires,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad json")
	}
	u, sid, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"username": req.Username})
		return fail(c, fiber.StatusUnauthorized, "invalid username or password")
	}
	setSID(c, sid, time.Now().Add(7*24*time.Hour))
	applog.Audit(c, "auth.login.success", map[string]any{"user_id": u.ID})
	return c.JSON(u)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if sid := c.Cookies("sid"); sid != "" {
		h.Auth.Logout(sid)
	}
	setSID(c, "", time.Now().Add(-time.Hour))
	applog.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"ok": true})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	u, err := h.Auth.CurrentUser(c.Cookies("sid"))
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "login required")
	}
	return c.JSON(u)
}
