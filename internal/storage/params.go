package storage

import (
	"time"

	"shopfront/internal/domain"
)

// Opt carries a tri-state value for partial updates: absent (zero Opt, field
// untouched), a value (Set), or explicit null (Null, clears a nullable
// field). Plain pointer fields can only express two of those states.
type Opt[T any] struct {
	set  bool
	null bool
	val  T
}

// Set returns an Opt carrying v.
func Set[T any](v T) Opt[T] { return Opt[T]{set: true, val: v} }

// Null returns an Opt that clears the target field.
func Null[T any]() Opt[T] { return Opt[T]{set: true, null: true} }

func (o Opt[T]) Present() bool { return o.set }
func (o Opt[T]) IsNull() bool  { return o.set && o.null }
func (o Opt[T]) Value() T      { return o.val }

// Apply overwrites dst when the option carries a value. Null is ignored for
// non-nullable targets.
func (o Opt[T]) Apply(dst *T) {
	if o.set && !o.null {
		*dst = o.val
	}
}

// ApplyPtr merges into a nullable target: value sets, null clears, absent
// leaves the prior value.
func (o Opt[T]) ApplyPtr(dst **T) {
	if !o.set {
		return
	}
	if o.null {
		*dst = nil
		return
	}
	v := o.val
	*dst = &v
}

type CreateUserParams struct {
	Username     string
	Email        string
	PasswordHash string
	Role         domain.Role
}

type UpdateUserParams struct {
	Username     Opt[string]
	Email        Opt[string]
	PasswordHash Opt[string]
	Role         Opt[domain.Role]
}

type CreateStoreParams struct {
	Name            string
	WhatsAppNumber  string
	Slug            *string
	LogoURL         *string
	InstagramURL    *string
	FacebookURL     *string
	ShowSocialMedia bool
	Theme           *domain.StoreTheme
}

type UpdateStoreParams struct {
	Name            Opt[string]
	WhatsAppNumber  Opt[string]
	Slug            Opt[string]
	LogoURL         Opt[string]
	InstagramURL    Opt[string]
	FacebookURL     Opt[string]
	ShowSocialMedia Opt[bool]
	Active          Opt[bool]
	Theme           Opt[domain.StoreTheme]
}

type CreateCategoryParams struct {
	StoreID int64
	Name    string
}

type UpdateCategoryParams struct {
	Name Opt[string]
}

type CreateProductParams struct {
	StoreID     int64
	CategoryID  *int64
	Name        string
	Description *string
	ImageURL    *string
	Price       float64
	// Active defaults to true when nil.
	Active *bool
}

type UpdateProductParams struct {
	Name        Opt[string]
	Description Opt[string]
	ImageURL    Opt[string]
	Price       Opt[float64]
	CategoryID  Opt[int64]
	Active      Opt[bool]
}

type CreateShopOwnerParams struct {
	UserID  int64
	StoreID int64
	// SubscriptionStatus defaults to trial when empty.
	SubscriptionStatus    domain.SubscriptionStatus
	SubscriptionExpiresAt *time.Time
}

type UpdateShopOwnerParams struct {
	SubscriptionStatus    Opt[domain.SubscriptionStatus]
	SubscriptionExpiresAt Opt[time.Time]
	StripeCustomerID      Opt[string]
	StripeSubscriptionID  Opt[string]
}

type CreateCustomerParams struct {
	UserID  int64
	Address *string
	Phone   *string
}

type UpdateCustomerParams struct {
	Address Opt[string]
	Phone   Opt[string]
}

type CreateCartParams struct {
	CustomerID int64
	StoreID    int64
}

type CreateCartItemParams struct {
	CartID    int64
	ProductID int64
	Quantity  int
}

type UpdateCartItemParams struct {
	Quantity Opt[int]
}

type CreateOrderParams struct {
	StoreID         int64
	CustomerID      *int64
	CustomerName    string
	CustomerPhone   *string
	CustomerAddress *string
	DeliveryMethod  string
	Notes           *string
	// Total is computed by the caller and stored verbatim.
	Total float64
}

type UpdateOrderParams struct {
	WhatsAppSent Opt[bool]
	Notes        Opt[string]
}

type CreateOrderItemParams struct {
	OrderID     int64
	ProductName string
	Price       float64
	Quantity    int
}
