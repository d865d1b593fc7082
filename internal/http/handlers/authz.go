package handlers

import (
	"github.com/gofiber/fiber/v2"

	"shopfront/internal/domain"
	applog "shopfront/internal/log"
	"shopfront/internal/services"
)

// RequireUser resolves the sid cookie and attaches the user to the context.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := auth.CurrentUser(c.Cookies("sid"))
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "login required")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

func requireRole(auth *services.AuthService, role domain.Role, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := auth.CurrentUser(c.Cookies("sid"))
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "login required")
		}
		if u.Role != role {
			applog.Security(c, action, map[string]any{"user_id": u.ID, "role": u.Role})
			return fail(c, fiber.StatusForbidden, "access denied")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

func RequireShopOwner(auth *services.AuthService) fiber.Handler {
	return requireRole(auth, domain.RoleShopOwner, "access.denied.owner")
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return requireRole(auth, domain.RoleAdmin, "access.denied.admin")
}

// RequireCustomer additionally resolves the Customer record for the user.
func RequireCustomer(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := auth.CurrentUser(c.Cookies("sid"))
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "login required")
		}
		if u.Role != domain.RoleCustomer {
			applog.Security(c, "access.denied.customer", map[string]any{"user_id": u.ID})
			return fail(c, fiber.StatusForbidden, "access denied")
		}
		cust, err := auth.Store.CustomerByUserID(u.ID)
		if err != nil {
			return failFrom(c, err)
		}
		c.Locals("user", u)
		c.Locals("customer", cust)
		return c.Next()
	}
}

// RequireActiveSubscription gates owner mutations behind a current trial or
// paid subscription. Runs after RequireShopOwner.
func RequireActiveSubscription(billing *services.BillingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := c.Locals("user").(domain.User)
		owner, err := billing.Subscription(u.ID)
		if err != nil {
			return failFrom(c, err)
		}
		if !services.SubscriptionCurrent(owner) {
			applog.Security(c, "subscription.gate", map[string]any{
				"user_id": u.ID, "status": owner.SubscriptionStatus,
			})
			return fail(c, fiber.StatusPaymentRequired, "subscription expired")
		}
		return c.Next()
	}
}

func currentUser(c *fiber.Ctx) domain.User { return c.Locals("user").(domain.User) }

func currentCustomer(c *fiber.Ctx) domain.Customer {
	return c.Locals("customer").(domain.Customer)
}
