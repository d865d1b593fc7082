package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "shopfront/internal/log"
	"shopfront/internal/services"
)

type BillingHandler struct {
	Billing *services.BillingService
}

func (h *BillingHandler) Subscription(c *fiber.Ctx) error {
	owner, err := h.Billing.Subscription(currentUser(c).ID)
	if err != nil {
		return failFrom(c, err)
	}
	return c.JSON(fiber.Map{
		"subscription": owner,
		"current":      services.SubscriptionCurrent(owner),
	})
}

// Link records the Stripe ids for the logged-in owner. With only a customer
// id the linkage is partial; with both ids the subscription activates.
func (h *BillingHandler) Link(c *fiber.Ctx) error {
	var req struct {
		StripeCustomerID     string `json:"stripeCustomerId"`
		StripeSubscriptionID string `json:"stripeSubscriptionId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "bad json")
	}
	if req.StripeCustomerID == "" {
		return fail(c, fiber.StatusBadRequest, "stripeCustomerId required")
	}
	u := currentUser(c)
	if req.StripeSubscriptionID == "" {
		owner, err := h.Billing.LinkStripeCustomer(u.ID, req.StripeCustomerID)
		if err != nil {
			return err // integration fault surfaces as 500
		}
		applog.Audit(c, "billing.link.customer", map[string]any{"user_id": u.ID})
		return c.JSON(owner)
	}
	owner, err := h.Billing.LinkStripeSubscription(u.ID, req.StripeCustomerID, req.StripeSubscriptionID)
	if err != nil {
		return err
	}
	applog.Audit(c, "billing.link.subscription", map[string]any{"user_id": u.ID})
	return c.JSON(owner)
}
