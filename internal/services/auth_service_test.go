package services_test

import (
	"testing"
	"time"

	"shopfront/internal/domain"
	"shopfront/internal/services"
	"shopfront/internal/storage"
)

func TestRegisterShopOwnerCreatesStoreAndTrial(t *testing.T) {
	st := storage.NewMemory()
	auth := services.NewAuthService(st, time.Hour)

	u, err := auth.RegisterShopOwner(services.RegisterInput{
		Username: "maria", Email: "maria@test", Password: "Sup3rSecret",
	}, "Maria's Bakery", "15551234567")
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != domain.RoleShopOwner {
		t.Fatalf("want shopowner role, got %s", u.Role)
	}

	store, err := st.StoreByOwner(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if store.Name != "Maria's Bakery" || !store.Active {
		t.Fatalf("bad store: %+v", store)
	}
	if store.Slug != nil {
		t.Fatal("new store should have no slug until the owner picks one")
	}

	owner, err := st.ShopOwnerByUserID(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if owner.SubscriptionStatus != domain.SubscriptionTrial {
		t.Fatalf("want trial, got %s", owner.SubscriptionStatus)
	}
	if owner.SubscriptionExpiresAt == nil {
		t.Fatal("trial needs an expiry")
	}
}

func TestLoginSessionLifecycle(t *testing.T) {
	st := storage.NewMemory()
	auth := services.NewAuthService(st, time.Hour)

	if _, err := auth.RegisterCustomer(services.RegisterInput{
		Username: "ana", Email: "ana@test", Password: "Sup3rSecret",
	}, nil, nil); err != nil {
		t.Fatal(err)
	}

	if _, _, err := auth.Login("ana", "wrong-password"); err != services.ErrBadCreds {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
	if _, _, err := auth.Login("ghost", "Sup3rSecret"); err != services.ErrBadCreds {
		t.Fatalf("want ErrBadCreds for unknown user, got %v", err)
	}

	u, sid, err := auth.Login("ana", "Sup3rSecret")
	if err != nil {
		t.Fatal(err)
	}
	if sid == "" {
		t.Fatal("no session id")
	}

	got, err := auth.CurrentUser(sid)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != u.ID {
		t.Fatalf("session resolved to wrong user: %d != %d", got.ID, u.ID)
	}

	auth.Logout(sid)
	if _, err := auth.CurrentUser(sid); err != services.ErrBadSession {
		t.Fatalf("want ErrBadSession after logout, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	st := storage.NewMemory()
	auth := services.NewAuthService(st, time.Hour)

	in := services.RegisterInput{Username: "ana", Email: "ana@test", Password: "Sup3rSecret"}
	if _, err := auth.RegisterCustomer(in, nil, nil); err != nil {
		t.Fatal(err)
	}
	in.Email = "ana2@test"
	if _, err := auth.RegisterCustomer(in, nil, nil); err != services.ErrTaken {
		t.Fatalf("want ErrTaken, got %v", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	st := storage.NewMemory()
	auth := services.NewAuthService(st, -time.Second) // everything born expired

	if _, err := auth.RegisterCustomer(services.RegisterInput{
		Username: "ana", Email: "ana@test", Password: "Sup3rSecret",
	}, nil, nil); err != nil {
		t.Fatal(err)
	}
	_, sid, err := auth.Login("ana", "Sup3rSecret")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := auth.CurrentUser(sid); err != services.ErrBadSession {
		t.Fatalf("want ErrBadSession for expired session, got %v", err)
	}
}
