package services_test

import (
	"testing"

	"shopfront/internal/services"
	"shopfront/internal/storage"
)

func TestProductCategoryMustMatchStore(t *testing.T) {
	st := storage.NewMemory()
	fx := newFixture(t, st)
	catalog := services.NewCatalogService(st)

	otherSlug := "other"
	other, err := st.CreateStore(storage.CreateStoreParams{
		Name: "Other", Slug: &otherSlug, WhatsAppNumber: "15559990000",
	})
	if err != nil {
		t.Fatal(err)
	}
	foreignCat, err := st.CreateCategory(storage.CreateCategoryParams{
		StoreID: other.ID, Name: "Foreign",
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = catalog.CreateProduct(fx.owner.ID, storage.CreateProductParams{
		Name: "Bad", Price: 1, CategoryID: &foreignCat.ID,
	})
	if err != services.ErrBadCategory {
		t.Fatalf("want ErrBadCategory, got %v", err)
	}

	ownCat, err := catalog.CreateCategory(fx.owner.ID, "Drinks")
	if err != nil {
		t.Fatal(err)
	}
	p, err := catalog.CreateProduct(fx.owner.ID, storage.CreateProductParams{
		Name: "Good", Price: 1, CategoryID: &ownCat.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.CategoryID == nil || *p.CategoryID != ownCat.ID {
		t.Fatalf("category not attached: %+v", p)
	}
}

func TestDeleteCategoryDetachesProducts(t *testing.T) {
	st := storage.NewMemory()
	fx := newFixture(t, st)
	catalog := services.NewCatalogService(st)

	cat, err := catalog.CreateCategory(fx.owner.ID, "Seasonal")
	if err != nil {
		t.Fatal(err)
	}
	p, err := catalog.CreateProduct(fx.owner.ID, storage.CreateProductParams{
		Name: "Pumpkin Latte", Price: 4.5, CategoryID: &cat.ID,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := catalog.DeleteCategory(fx.owner.ID, cat.ID); err != nil {
		t.Fatal(err)
	}

	got, err := st.Product(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.CategoryID != nil {
		t.Fatalf("product should be detached from deleted category, got %v", *got.CategoryID)
	}
}

func TestOwnershipChecks(t *testing.T) {
	st := storage.NewMemory()
	fx := newFixture(t, st)
	catalog := services.NewCatalogService(st)

	// second owner with their own store
	other, err := st.CreateUser(storage.CreateUserParams{
		Username: "rival", Email: "rival@test", PasswordHash: "x", Role: "shopowner",
	})
	if err != nil {
		t.Fatal(err)
	}
	rivalStore, err := st.CreateStore(storage.CreateStoreParams{
		Name: "Rival", WhatsAppNumber: "15558880000",
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.CreateShopOwner(storage.CreateShopOwnerParams{
		UserID: other.ID, StoreID: rivalStore.ID,
	}); err != nil {
		t.Fatal(err)
	}

	_, err = catalog.UpdateProduct(other.ID, fx.espresso.ID, storage.UpdateProductParams{
		Price: storage.Set(0.01),
	})
	if err != services.ErrNotYourStore {
		t.Fatalf("want ErrNotYourStore, got %v", err)
	}
	if err := catalog.DeleteProduct(other.ID, fx.espresso.ID); err != services.ErrNotYourStore {
		t.Fatalf("want ErrNotYourStore on delete, got %v", err)
	}
}
