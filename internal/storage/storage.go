// Package storage owns the data-access layer for all storefront entities.
// Each entity kind has its own repository interface; Storage aggregates them
// so callers can be handed one value. Two backends implement the contract:
// the in-memory store (dev/tests) and the sqlite store (durable).
package storage

import (
	"errors"

	"shopfront/internal/domain"
)

// ErrNotFound is returned by every lookup that has no match. Callers decide
// the user-facing response; the storage layer never panics on absence.
var ErrNotFound = errors.New("storage: not found")

// ErrConflict is returned when a create or update would violate a uniqueness
// invariant (username, email, store slug, one shop owner per user).
var ErrConflict = errors.New("storage: conflict")

type UserRepo interface {
	User(id int64) (domain.User, error)
	Users() ([]domain.User, error)
	UserByUsername(username string) (domain.User, error)
	UserByEmail(email string) (domain.User, error)
	CreateUser(p CreateUserParams) (domain.User, error)
	UpdateUser(id int64, p UpdateUserParams) (domain.User, error)
	DeleteUser(id int64) (bool, error)
}

type StoreRepo interface {
	Store(id int64) (domain.Store, error)
	Stores() ([]domain.Store, error)
	StoreBySlug(slug string) (domain.Store, error)
	// StoreByOwner resolves userID -> ShopOwner -> Store.
	StoreByOwner(userID int64) (domain.Store, error)
	CreateStore(p CreateStoreParams) (domain.Store, error)
	UpdateStore(id int64, p UpdateStoreParams) (domain.Store, error)
	DeleteStore(id int64) (bool, error)
}

type CategoryRepo interface {
	Category(id int64) (domain.Category, error)
	// Categories lists categories in creation order; storeID 0 means all.
	Categories(storeID int64) ([]domain.Category, error)
	CreateCategory(p CreateCategoryParams) (domain.Category, error)
	UpdateCategory(id int64, p UpdateCategoryParams) (domain.Category, error)
	DeleteCategory(id int64) (bool, error)
}

// ProductFilter selects products by equality on foreign keys. Zero values
// mean "no constraint"; ActiveOnly drops inactive products.
type ProductFilter struct {
	StoreID    int64
	CategoryID int64
	ActiveOnly bool
}

type ProductRepo interface {
	Product(id int64) (domain.Product, error)
	// Products lists matching products in creation order.
	Products(f ProductFilter) ([]domain.Product, error)
	CreateProduct(p CreateProductParams) (domain.Product, error)
	UpdateProduct(id int64, p UpdateProductParams) (domain.Product, error)
	DeleteProduct(id int64) (bool, error)
}

type ShopOwnerRepo interface {
	ShopOwner(id int64) (domain.ShopOwner, error)
	ShopOwnerByUserID(userID int64) (domain.ShopOwner, error)
	CreateShopOwner(p CreateShopOwnerParams) (domain.ShopOwner, error)
	UpdateShopOwner(id int64, p UpdateShopOwnerParams) (domain.ShopOwner, error)
	DeleteShopOwner(id int64) (bool, error)

	// UpdateStripeCustomerID records the Stripe customer for a shop owner,
	// looked up by user id. Missing shop owner is a hard error, not
	// ErrNotFound: it means the billing webhook fired for a user that was
	// never linked to a store.
	UpdateStripeCustomerID(userID int64, stripeCustomerID string) (domain.ShopOwner, error)
	// UpdateStripeInfo records both Stripe ids, activates the subscription
	// and extends its expiry by 30 days.
	UpdateStripeInfo(userID int64, stripeCustomerID, stripeSubscriptionID string) (domain.ShopOwner, error)
}

type CustomerRepo interface {
	Customer(id int64) (domain.Customer, error)
	CustomerByUserID(userID int64) (domain.Customer, error)
	CreateCustomer(p CreateCustomerParams) (domain.Customer, error)
	UpdateCustomer(id int64, p UpdateCustomerParams) (domain.Customer, error)
	DeleteCustomer(id int64) (bool, error)
}

type CartRepo interface {
	Cart(id int64) (domain.Cart, error)
	CartByCustomer(customerID, storeID int64) (domain.Cart, error)
	CreateCart(p CreateCartParams) (domain.Cart, error)
	// TouchCart bumps the cart's UpdatedAt; used after item changes.
	TouchCart(id int64) error
	// DeleteCart removes the cart and every CartItem referencing it.
	DeleteCart(id int64) (bool, error)
}

type CartItemRepo interface {
	CartItem(id int64) (domain.CartItem, error)
	CartItems(cartID int64) ([]domain.CartItem, error)
	CreateCartItem(p CreateCartItemParams) (domain.CartItem, error)
	UpdateCartItem(id int64, p UpdateCartItemParams) (domain.CartItem, error)
	DeleteCartItem(id int64) (bool, error)
}

type OrderRepo interface {
	Order(id int64) (domain.Order, error)
	// Orders lists a store's orders in creation order; storeID 0 means all.
	Orders(storeID int64) ([]domain.Order, error)
	OrdersByCustomer(customerID int64) ([]domain.Order, error)
	CreateOrder(p CreateOrderParams) (domain.Order, error)
	UpdateOrder(id int64, p UpdateOrderParams) (domain.Order, error)
	DeleteOrder(id int64) (bool, error)
}

type OrderItemRepo interface {
	OrderItems(orderID int64) ([]domain.OrderItem, error)
	CreateOrderItem(p CreateOrderItemParams) (domain.OrderItem, error)
}

// Storage is the full data-access contract handed to the service layer.
type Storage interface {
	UserRepo
	StoreRepo
	CategoryRepo
	ProductRepo
	ShopOwnerRepo
	CustomerRepo
	CartRepo
	CartItemRepo
	OrderRepo
	OrderItemRepo

	Close() error
}
