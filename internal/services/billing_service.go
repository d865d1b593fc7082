package services

import (
	"time"

	"shopfront/internal/domain"
	"shopfront/internal/storage"
)

// BillingService is the narrow write path that links a shop owner to the
// payment provider and reports subscription standing.
type BillingService struct {
	Store storage.Storage
}

func NewBillingService(st storage.Storage) *BillingService {
	return &BillingService{Store: st}
}

// LinkStripeCustomer records the Stripe customer id for a shop owner.
func (s *BillingService) LinkStripeCustomer(userID int64, stripeCustomerID string) (domain.ShopOwner, error) {
	return s.Store.UpdateStripeCustomerID(userID, stripeCustomerID)
}

// LinkStripeSubscription records both Stripe ids; the storage layer
// activates the subscription and extends it by 30 days.
func (s *BillingService) LinkStripeSubscription(userID int64, stripeCustomerID, stripeSubscriptionID string) (domain.ShopOwner, error) {
	return s.Store.UpdateStripeInfo(userID, stripeCustomerID, stripeSubscriptionID)
}

// Subscription returns the shop owner record for a user.
func (s *BillingService) Subscription(userID int64) (domain.ShopOwner, error) {
	return s.Store.ShopOwnerByUserID(userID)
}

// SubscriptionCurrent reports whether the owner may use gated features:
// active or trial standing with an unexpired window.
func SubscriptionCurrent(o domain.ShopOwner) bool {
	switch o.SubscriptionStatus {
	case domain.SubscriptionActive, domain.SubscriptionTrial:
	default:
		return false
	}
	if o.SubscriptionExpiresAt == nil {
		return true
	}
	return time.Now().Before(*o.SubscriptionExpiresAt)
}
