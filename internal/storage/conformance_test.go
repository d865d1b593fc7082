package storage_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shopfront/internal/domain"
	"shopfront/internal/storage"
)

// Both backends must honor the same repository contract, so every test in
// this file runs against each of them.
func backends(t *testing.T) map[string]storage.Storage {
	t.Helper()
	sq, err := storage.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]storage.Storage{
		"memory": storage.NewMemory(),
		"sqlite": sq,
	}
}

func strp(s string) *string { return &s }

func mustStore(t *testing.T, s storage.Storage, name, slug string) domain.Store {
	t.Helper()
	var sp *string
	if slug != "" {
		sp = &slug
	}
	st, err := s.CreateStore(storage.CreateStoreParams{
		Name:           name,
		Slug:           sp,
		WhatsAppNumber: "15550001111",
	})
	require.NoError(t, err)
	return st
}

func TestIdentifierMonotonicity(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			st := mustStore(t, s, "Shop", "")

			var ids []int64
			for _, n := range []string{"a", "b", "c"} {
				c, err := s.CreateCategory(storage.CreateCategoryParams{StoreID: st.ID, Name: n})
				require.NoError(t, err)
				ids = append(ids, c.ID)
			}
			require.Less(t, ids[0], ids[1])
			require.Less(t, ids[1], ids[2])

			ok, err := s.DeleteCategory(ids[1])
			require.NoError(t, err)
			require.True(t, ok)

			c, err := s.CreateCategory(storage.CreateCategoryParams{StoreID: st.ID, Name: "d"})
			require.NoError(t, err)
			require.Greater(t, c.ID, ids[2], "deleted ids must never be reassigned")
		})
	}
}

func TestPartialUpdateMerging(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			st := mustStore(t, s, "Shop", "")
			p, err := s.CreateProduct(storage.CreateProductParams{
				StoreID:     st.ID,
				Name:        "A",
				Price:       10,
				Description: strp("first run"),
			})
			require.NoError(t, err)
			require.True(t, p.Active, "active defaults to true")

			p, err = s.UpdateProduct(p.ID, storage.UpdateProductParams{
				Price: storage.Set(12.0),
			})
			require.NoError(t, err)
			require.Equal(t, "A", p.Name, "untouched field preserved")
			require.Equal(t, 12.0, p.Price)
			require.NotNil(t, p.Description)

			p, err = s.UpdateProduct(p.ID, storage.UpdateProductParams{
				Description: storage.Null[string](),
			})
			require.NoError(t, err)
			require.Nil(t, p.Description, "explicit null clears the field")
			require.Equal(t, "A", p.Name)
			require.Equal(t, 12.0, p.Price)
		})
	}
}

func TestUpdateMissingReturnsNotFound(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			updates := map[string]func() error{
				"user": func() error {
					_, err := s.UpdateUser(9999, storage.UpdateUserParams{Username: storage.Set("x")})
					return err
				},
				"store": func() error {
					_, err := s.UpdateStore(9999, storage.UpdateStoreParams{Name: storage.Set("x")})
					return err
				},
				"category": func() error {
					_, err := s.UpdateCategory(9999, storage.UpdateCategoryParams{Name: storage.Set("x")})
					return err
				},
				"product": func() error {
					_, err := s.UpdateProduct(9999, storage.UpdateProductParams{Name: storage.Set("x")})
					return err
				},
				"shop owner": func() error {
					_, err := s.UpdateShopOwner(9999, storage.UpdateShopOwnerParams{StripeCustomerID: storage.Set("x")})
					return err
				},
				"customer": func() error {
					_, err := s.UpdateCustomer(9999, storage.UpdateCustomerParams{Phone: storage.Set("x")})
					return err
				},
				"cart item": func() error {
					_, err := s.UpdateCartItem(9999, storage.UpdateCartItemParams{Quantity: storage.Set(1)})
					return err
				},
				"order": func() error {
					_, err := s.UpdateOrder(9999, storage.UpdateOrderParams{WhatsAppSent: storage.Set(true)})
					return err
				},
			}
			for kind, update := range updates {
				require.ErrorIs(t, update(), storage.ErrNotFound, kind)
			}

			_, err := s.Product(9999)
			require.ErrorIs(t, err, storage.ErrNotFound)
		})
	}
}

func TestUpdateUserUniqueness(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			alice, err := s.CreateUser(storage.CreateUserParams{
				Username: "alice", Email: "alice@test", PasswordHash: "x", Role: domain.RoleCustomer,
			})
			require.NoError(t, err)
			bob, err := s.CreateUser(storage.CreateUserParams{
				Username: "bob", Email: "bob@test", PasswordHash: "x", Role: domain.RoleCustomer,
			})
			require.NoError(t, err)

			_, err = s.UpdateUser(bob.ID, storage.UpdateUserParams{Username: storage.Set("Alice")})
			require.ErrorIs(t, err, storage.ErrConflict, "username unique on update, case-insensitive")
			_, err = s.UpdateUser(bob.ID, storage.UpdateUserParams{Email: storage.Set("ALICE@test")})
			require.ErrorIs(t, err, storage.ErrConflict, "email unique on update")

			got, err := s.User(bob.ID)
			require.NoError(t, err)
			require.Equal(t, "bob", got.Username, "failed update leaves the row untouched")

			// a user may keep their own username through an update
			_, err = s.UpdateUser(alice.ID, storage.UpdateUserParams{
				Username: storage.Set("alice"), PasswordHash: storage.Set("y"),
			})
			require.NoError(t, err)
		})
	}
}

func TestCartCascadeDelete(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			cart, err := s.CreateCart(storage.CreateCartParams{CustomerID: 1, StoreID: 1})
			require.NoError(t, err)
			for _, pid := range []int64{10, 11} {
				_, err := s.CreateCartItem(storage.CreateCartItemParams{
					CartID: cart.ID, ProductID: pid, Quantity: 2,
				})
				require.NoError(t, err)
			}

			other, err := s.CreateCart(storage.CreateCartParams{CustomerID: 2, StoreID: 1})
			require.NoError(t, err)
			kept, err := s.CreateCartItem(storage.CreateCartItemParams{
				CartID: other.ID, ProductID: 10, Quantity: 1,
			})
			require.NoError(t, err)

			ok, err := s.DeleteCart(cart.ID)
			require.NoError(t, err)
			require.True(t, ok)

			items, err := s.CartItems(cart.ID)
			require.NoError(t, err)
			require.Empty(t, items, "cart deletion cascades to its items")

			// unrelated carts keep their items
			items, err = s.CartItems(other.ID)
			require.NoError(t, err)
			require.Len(t, items, 1)
			require.Equal(t, kept.ID, items[0].ID)
		})
	}
}

func TestProductFilter(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			a := mustStore(t, s, "A", "")
			b := mustStore(t, s, "B", "")

			var want []int64
			for i, storeID := range []int64{a.ID, b.ID, a.ID, a.ID, b.ID} {
				p, err := s.CreateProduct(storage.CreateProductParams{
					StoreID: storeID, Name: "p", Price: float64(i),
				})
				require.NoError(t, err)
				if storeID == a.ID {
					want = append(want, p.ID)
				}
			}

			got, err := s.Products(storage.ProductFilter{StoreID: a.ID})
			require.NoError(t, err)
			var gotIDs []int64
			for _, p := range got {
				require.Equal(t, a.ID, p.StoreID)
				gotIDs = append(gotIDs, p.ID)
			}
			require.Equal(t, want, gotIDs, "exactly the store's products, in creation order")
		})
	}
}

func TestAlternateKeyLookups(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, storage.Seed(s))

			admin, err := s.UserByUsername("admin")
			require.NoError(t, err)
			require.Equal(t, domain.RoleAdmin, admin.Role)

			_, err = s.UserByUsername("nonexistent")
			require.ErrorIs(t, err, storage.ErrNotFound)

			_, err = s.UserByEmail("owner@shopfront.test")
			require.NoError(t, err)

			st, err := s.StoreBySlug("demo")
			require.NoError(t, err)
			require.Equal(t, "Demo Store", st.Name)
			require.NotNil(t, st.Theme)

			owner, err := s.UserByUsername("demo-owner")
			require.NoError(t, err)
			byOwner, err := s.StoreByOwner(owner.ID)
			require.NoError(t, err)
			require.Equal(t, st.ID, byOwner.ID)

			so, err := s.ShopOwnerByUserID(owner.ID)
			require.NoError(t, err)
			require.Equal(t, domain.SubscriptionTrial, so.SubscriptionStatus)

			custUser, err := s.UserByUsername("demo-customer")
			require.NoError(t, err)
			cust, err := s.CustomerByUserID(custUser.ID)
			require.NoError(t, err)

			_, err = s.CartByCustomer(cust.ID, st.ID)
			require.ErrorIs(t, err, storage.ErrNotFound)

			cats, err := s.Categories(st.ID)
			require.NoError(t, err)
			require.Len(t, cats, 4)
			prods, err := s.Products(storage.ProductFilter{StoreID: st.ID})
			require.NoError(t, err)
			require.Len(t, prods, 6)
		})
	}
}

func TestOrderItemSnapshot(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			st := mustStore(t, s, "Shop", "")
			p, err := s.CreateProduct(storage.CreateProductParams{
				StoreID: st.ID, Name: "Espresso", Price: 2.50,
			})
			require.NoError(t, err)

			o, err := s.CreateOrder(storage.CreateOrderParams{
				StoreID:        st.ID,
				CustomerName:   "Ana",
				DeliveryMethod: domain.DeliveryMethodPickup,
				Total:          5.00,
			})
			require.NoError(t, err)

			it, err := s.CreateOrderItem(storage.CreateOrderItemParams{
				OrderID: o.ID, ProductName: p.Name, Price: p.Price, Quantity: 2,
			})
			require.NoError(t, err)

			_, err = s.UpdateProduct(p.ID, storage.UpdateProductParams{
				Name:  storage.Set("Lungo"),
				Price: storage.Set(3.10),
			})
			require.NoError(t, err)

			items, err := s.OrderItems(o.ID)
			require.NoError(t, err)
			require.Len(t, items, 1)
			require.Equal(t, it.ID, items[0].ID)
			require.Equal(t, "Espresso", items[0].ProductName, "snapshot survives product rename")
			require.Equal(t, 2.50, items[0].Price, "snapshot survives price change")
		})
	}
}

func TestStripeLinkage(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			u, err := s.CreateUser(storage.CreateUserParams{
				Username: "owner1", Email: "o1@test", PasswordHash: "x", Role: domain.RoleShopOwner,
			})
			require.NoError(t, err)
			st := mustStore(t, s, "Shop", "")
			_, err = s.CreateShopOwner(storage.CreateShopOwnerParams{UserID: u.ID, StoreID: st.ID})
			require.NoError(t, err)

			o, err := s.UpdateStripeInfo(u.ID, "cus_123", "sub_456")
			require.NoError(t, err)
			require.Equal(t, domain.SubscriptionActive, o.SubscriptionStatus)
			require.NotNil(t, o.StripeCustomerID)
			require.Equal(t, "cus_123", *o.StripeCustomerID)
			require.NotNil(t, o.SubscriptionExpiresAt)
			require.WithinDuration(t, time.Now().AddDate(0, 0, 30), *o.SubscriptionExpiresAt, time.Minute)

			// user with no shop owner record is an integration fault
			_, err = s.UpdateStripeInfo(9999, "cus_x", "sub_x")
			require.Error(t, err)
			require.False(t, errors.Is(err, storage.ErrNotFound))

			_, err = s.UpdateStripeCustomerID(9999, "cus_x")
			require.Error(t, err)
			require.False(t, errors.Is(err, storage.ErrNotFound))
		})
	}
}

func TestUniquenessInvariants(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.CreateUser(storage.CreateUserParams{
				Username: "sam", Email: "sam@test", PasswordHash: "x", Role: domain.RoleCustomer,
			})
			require.NoError(t, err)
			_, err = s.CreateUser(storage.CreateUserParams{
				Username: "SAM", Email: "other@test", PasswordHash: "x", Role: domain.RoleCustomer,
			})
			require.ErrorIs(t, err, storage.ErrConflict, "username unique, case-insensitive")
			_, err = s.CreateUser(storage.CreateUserParams{
				Username: "sam2", Email: "sam@test", PasswordHash: "x", Role: domain.RoleCustomer,
			})
			require.ErrorIs(t, err, storage.ErrConflict, "email unique")

			mustStore(t, s, "One", "coffee")
			_, err = s.CreateStore(storage.CreateStoreParams{
				Name: "Two", Slug: strp("coffee"), WhatsAppNumber: "15550002222",
			})
			require.ErrorIs(t, err, storage.ErrConflict, "slug unique when present")

			// nil slugs never collide
			mustStore(t, s, "Three", "")
			four := mustStore(t, s, "Four", "")

			_, err = s.UpdateStore(four.ID, storage.UpdateStoreParams{
				Slug: storage.Set("coffee"),
			})
			require.ErrorIs(t, err, storage.ErrConflict, "slug uniqueness holds on update")
		})
	}
}

func TestDeleteReportsPresence(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			st := mustStore(t, s, "Shop", "")
			u, err := s.CreateUser(storage.CreateUserParams{
				Username: "gone", Email: "gone@test", PasswordHash: "x", Role: domain.RoleCustomer,
			})
			require.NoError(t, err)
			cust, err := s.CreateCustomer(storage.CreateCustomerParams{UserID: u.ID})
			require.NoError(t, err)
			o, err := s.CreateOrder(storage.CreateOrderParams{
				StoreID: st.ID, CustomerName: "Ana", DeliveryMethod: domain.DeliveryMethodPickup, Total: 1,
			})
			require.NoError(t, err)

			deletes := map[string]func() (bool, error){
				"store":    func() (bool, error) { return s.DeleteStore(st.ID) },
				"user":     func() (bool, error) { return s.DeleteUser(u.ID) },
				"customer": func() (bool, error) { return s.DeleteCustomer(cust.ID) },
				"order":    func() (bool, error) { return s.DeleteOrder(o.ID) },
			}
			for kind, del := range deletes {
				ok, err := del()
				require.NoError(t, err, kind)
				require.True(t, ok, kind)
				ok, err = del()
				require.NoError(t, err, kind)
				require.False(t, ok, "second %s delete reports absence", kind)
			}
		})
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, storage.Seed(s))
			require.NoError(t, storage.Seed(s))
			users, err := s.Users()
			require.NoError(t, err)
			require.Len(t, users, 3)
		})
	}
}
