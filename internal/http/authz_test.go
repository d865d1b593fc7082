package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"shopfront/internal/domain"
	"shopfront/internal/storage"
)

func TestAnonymousBlocked(t *testing.T) {
	_, app := newTestApp(t)
	for _, path := range []string{"/cart?store=1", "/my/store", "/admin/users"} {
		resp := doJSON(t, app, "GET", path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: want 401, got %d", path, resp.StatusCode)
		}
	}
}

func TestRoleDenials(t *testing.T) {
	_, app := newTestApp(t)

	custSID := login(t, app, "demo-customer", "Passw0rd!")
	resp := doJSON(t, app, "GET", "/my/store", custSID, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("customer on /my: want 403, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "GET", "/admin/users", custSID, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("customer on /admin: want 403, got %d", resp.StatusCode)
	}

	ownerSID := login(t, app, "demo-owner", "Passw0rd!")
	resp = doJSON(t, app, "GET", "/cart?store=1", ownerSID, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("owner on /cart: want 403, got %d", resp.StatusCode)
	}
}

func TestSubscriptionGate(t *testing.T) {
	st, app := newTestApp(t)
	sid := login(t, app, "demo-owner", "Passw0rd!")

	// trial is current: mutation allowed
	resp := doJSON(t, app, "PATCH", "/my/store", sid, map[string]any{"name": "Renamed"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("trial mutation: want 200, got %d", resp.StatusCode)
	}

	// expire the subscription behind the scenes
	owner, err := st.UserByUsername("demo-owner")
	if err != nil {
		t.Fatal(err)
	}
	so, err := st.ShopOwnerByUserID(owner.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := st.UpdateShopOwner(so.ID, storage.UpdateShopOwnerParams{
		SubscriptionStatus: storage.Set(domain.SubscriptionExpired),
	}); err != nil {
		t.Fatal(err)
	}

	resp = doJSON(t, app, "PATCH", "/my/store", sid, map[string]any{"name": "Blocked"})
	if resp.StatusCode != http.StatusPaymentRequired {
		t.Fatalf("expired mutation: want 402, got %d", resp.StatusCode)
	}
	// reads stay open
	resp = doJSON(t, app, "GET", "/my/store", sid, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expired read: want 200, got %d", resp.StatusCode)
	}

	// stripe linkage reactivates the subscription
	resp = doJSON(t, app, "POST", "/my/billing/link", sid, map[string]string{
		"stripeCustomerId":     "cus_123",
		"stripeSubscriptionId": "sub_456",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("billing link: want 200, got %d", resp.StatusCode)
	}
	linked := decode[domain.ShopOwner](t, resp)
	if linked.SubscriptionStatus != domain.SubscriptionActive {
		t.Fatalf("want active after linkage, got %s", linked.SubscriptionStatus)
	}
	if linked.SubscriptionExpiresAt == nil ||
		time.Until(*linked.SubscriptionExpiresAt) < 29*24*time.Hour {
		t.Fatalf("want ~30 day window, got %v", linked.SubscriptionExpiresAt)
	}

	resp = doJSON(t, app, "PATCH", "/my/store", sid, map[string]any{"name": "Back"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reactivated mutation: want 200, got %d", resp.StatusCode)
	}
}

func TestSlugConflictOverHTTP(t *testing.T) {
	_, app := newTestApp(t)

	resp := doJSON(t, app, "POST", "/auth/register", "", map[string]any{
		"username": "maria", "email": "maria@test.dev", "password": "Sup3rSecret",
		"role": "shopowner", "storeName": "Maria's", "whatsappNumber": "15551234567",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: status %d", resp.StatusCode)
	}
	sid := login(t, app, "maria", "Sup3rSecret")

	resp = doJSON(t, app, "PATCH", "/my/store", sid, map[string]any{"slug": "demo"})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("want 409 for taken slug, got %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "PATCH", "/my/store", sid, map[string]any{"slug": "marias"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200 for free slug, got %d", resp.StatusCode)
	}
}
