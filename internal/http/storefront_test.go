package handlers_test

import (
	"net/http"
	"testing"

	"shopfront/internal/domain"
	"shopfront/internal/services"
)

func TestPublicStorefront(t *testing.T) {
	_, app := newTestApp(t)

	resp := doJSON(t, app, "GET", "/s/demo", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("storefront: status %d", resp.StatusCode)
	}
	sf := decode[services.Storefront](t, resp)
	if sf.Store.Name != "Demo Store" {
		t.Fatalf("bad store: %+v", sf.Store)
	}
	if len(sf.Categories) != 4 || len(sf.Products) != 6 {
		t.Fatalf("want 4 categories / 6 products, got %d / %d", len(sf.Categories), len(sf.Products))
	}

	resp = doJSON(t, app, "GET", "/s/no-such-store", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing slug: want 404, got %d", resp.StatusCode)
	}
}

func TestStorefrontCategoryFilter(t *testing.T) {
	st, app := newTestApp(t)

	store, err := st.StoreBySlug("demo")
	if err != nil {
		t.Fatal(err)
	}
	cats, err := st.Categories(store.ID)
	if err != nil {
		t.Fatal(err)
	}
	var coffee domain.Category
	for _, c := range cats {
		if c.Name == "Coffee" {
			coffee = c
		}
	}

	resp := doJSON(t, app, "GET", "/s/demo/products?category="+itoa(coffee.ID), "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("filter: status %d", resp.StatusCode)
	}
	prods := decode[[]domain.Product](t, resp)
	if len(prods) != 2 {
		t.Fatalf("want 2 coffee products, got %d", len(prods))
	}
	for _, p := range prods {
		if p.CategoryID == nil || *p.CategoryID != coffee.ID {
			t.Fatalf("foreign product in filter: %+v", p)
		}
	}
}

func TestInactiveStoreHiddenFromPublic(t *testing.T) {
	st, app := newTestApp(t)

	store, err := st.StoreBySlug("demo")
	if err != nil {
		t.Fatal(err)
	}

	sid := login(t, app, "admin", "Passw0rd!")
	resp := doJSON(t, app, "POST", "/admin/stores/"+itoa(store.ID)+"/active", sid, map[string]any{
		"active": false,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("deactivate: status %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/s/demo", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("inactive store: want 404, got %d", resp.StatusCode)
	}
}
