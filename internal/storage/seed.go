package storage

import (
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"shopfront/internal/domain"
)

func ptr[T any](v T) *T { return &v }

// Seed installs the demo fixture: an admin, a demo store with its shop owner
// on a trial subscription, four categories, six products and a demo customer.
// Idempotent; it no-ops when the admin user already exists. Runs through the
// repository interfaces so both backends share one fixture path.
func Seed(s Storage) error {
	if _, err := s.UserByUsername("admin"); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	log.Println("[seed] inserting demo users/store/catalog")

	hash := func(raw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return string(h)
	}

	if _, err := s.CreateUser(CreateUserParams{
		Username:     "admin",
		Email:        "admin@shopfront.test",
		PasswordHash: hash("Passw0rd!"),
		Role:         domain.RoleAdmin,
	}); err != nil {
		return err
	}

	owner, err := s.CreateUser(CreateUserParams{
		Username:     "demo-owner",
		Email:        "owner@shopfront.test",
		PasswordHash: hash("Passw0rd!"),
		Role:         domain.RoleShopOwner,
	})
	if err != nil {
		return err
	}

	store, err := s.CreateStore(CreateStoreParams{
		Name:            "Demo Store",
		Slug:            ptr("demo"),
		WhatsAppNumber:  "15551230001",
		InstagramURL:    ptr("https://instagram.com/demostore"),
		ShowSocialMedia: true,
		Theme: &domain.StoreTheme{
			Primary:    "#16a34a",
			Secondary:  "#14532d",
			Accent:     "#facc15",
			Background: "#f8fafc",
		},
	})
	if err != nil {
		return err
	}

	trialEnds := time.Now().AddDate(0, 0, 14)
	if _, err := s.CreateShopOwner(CreateShopOwnerParams{
		UserID:                owner.ID,
		StoreID:               store.ID,
		SubscriptionStatus:    domain.SubscriptionTrial,
		SubscriptionExpiresAt: &trialEnds,
	}); err != nil {
		return err
	}

	catIDs := map[string]int64{}
	for _, name := range []string{"Coffee", "Bakery", "Sandwiches", "Drinks"} {
		c, err := s.CreateCategory(CreateCategoryParams{StoreID: store.ID, Name: name})
		if err != nil {
			return err
		}
		catIDs[name] = c.ID
	}

	products := []CreateProductParams{
		{StoreID: store.ID, CategoryID: ptr(catIDs["Coffee"]), Name: "Espresso", Price: 2.50,
			Description: ptr("Double shot")},
		{StoreID: store.ID, CategoryID: ptr(catIDs["Coffee"]), Name: "Cappuccino", Price: 3.80},
		{StoreID: store.ID, CategoryID: ptr(catIDs["Bakery"]), Name: "Croissant", Price: 2.20,
			Description: ptr("Baked every morning")},
		{StoreID: store.ID, CategoryID: ptr(catIDs["Bakery"]), Name: "Banana Bread", Price: 3.00},
		{StoreID: store.ID, CategoryID: ptr(catIDs["Sandwiches"]), Name: "Chicken Panini", Price: 6.50},
		{StoreID: store.ID, CategoryID: ptr(catIDs["Drinks"]), Name: "Fresh Orange Juice", Price: 4.00},
	}
	for _, p := range products {
		if _, err := s.CreateProduct(p); err != nil {
			return err
		}
	}

	cust, err := s.CreateUser(CreateUserParams{
		Username:     "demo-customer",
		Email:        "customer@shopfront.test",
		PasswordHash: hash("Passw0rd!"),
		Role:         domain.RoleCustomer,
	})
	if err != nil {
		return err
	}
	_, err = s.CreateCustomer(CreateCustomerParams{
		UserID:  cust.ID,
		Address: ptr("742 Evergreen Terrace"),
		Phone:   ptr("15551230002"),
	})
	return err
}
