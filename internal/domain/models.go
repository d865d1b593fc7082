package domain

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleShopOwner Role = "shopowner"
	RoleCustomer  Role = "customer"
)

type SubscriptionStatus string

const (
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionInactive SubscriptionStatus = "inactive"
	SubscriptionTrial    SubscriptionStatus = "trial"
	SubscriptionExpired  SubscriptionStatus = "expired"
)

const (
	DeliveryMethodDelivery = "delivery"
	DeliveryMethodPickup   = "pickup"
)

type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// StoreTheme is the optional color set a shop owner picks for the storefront.
type StoreTheme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
}

type Store struct {
	ID              int64       `db:"id" json:"id"`
	Name            string      `db:"name" json:"name"`
	Slug            *string     `db:"slug" json:"slug"`
	WhatsAppNumber  string      `db:"whatsapp_number" json:"whatsappNumber"`
	LogoURL         *string     `db:"logo_url" json:"logoUrl"`
	InstagramURL    *string     `db:"instagram_url" json:"instagramUrl"`
	FacebookURL     *string     `db:"facebook_url" json:"facebookUrl"`
	ShowSocialMedia bool        `db:"show_social_media" json:"showSocialMedia"`
	Active          bool        `db:"active" json:"active"`
	Theme           *StoreTheme `db:"-" json:"theme"`
	CreatedAt       time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time   `db:"updated_at" json:"updatedAt"`
}

type Category struct {
	ID        int64     `db:"id" json:"id"`
	StoreID   int64     `db:"store_id" json:"storeId"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type Product struct {
	ID          int64     `db:"id" json:"id"`
	StoreID     int64     `db:"store_id" json:"storeId"`
	CategoryID  *int64    `db:"category_id" json:"categoryId"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description"`
	ImageURL    *string   `db:"image_url" json:"imageUrl"`
	Price       float64   `db:"price" json:"price"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

type ShopOwner struct {
	ID                    int64              `db:"id" json:"id"`
	UserID                int64              `db:"user_id" json:"userId"`
	StoreID               int64              `db:"store_id" json:"storeId"`
	SubscriptionStatus    SubscriptionStatus `db:"subscription_status" json:"subscriptionStatus"`
	SubscriptionExpiresAt *time.Time         `db:"subscription_expires_at" json:"subscriptionExpiresAt"`
	StripeCustomerID      *string            `db:"stripe_customer_id" json:"stripeCustomerId"`
	StripeSubscriptionID  *string            `db:"stripe_subscription_id" json:"stripeSubscriptionId"`
}

type Customer struct {
	ID      int64   `db:"id" json:"id"`
	UserID  int64   `db:"user_id" json:"userId"`
	Address *string `db:"address" json:"address"`
	Phone   *string `db:"phone" json:"phone"`
}

type Cart struct {
	ID         int64     `db:"id" json:"id"`
	CustomerID int64     `db:"customer_id" json:"customerId"`
	StoreID    int64     `db:"store_id" json:"storeId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"updatedAt"`
}

type CartItem struct {
	ID        int64 `db:"id" json:"id"`
	CartID    int64 `db:"cart_id" json:"cartId"`
	ProductID int64 `db:"product_id" json:"productId"`
	Quantity  int   `db:"quantity" json:"quantity"`
}

type Order struct {
	ID              int64     `db:"id" json:"id"`
	StoreID         int64     `db:"store_id" json:"storeId"`
	CustomerID      *int64    `db:"customer_id" json:"customerId"`
	CustomerName    string    `db:"customer_name" json:"customerName"`
	CustomerPhone   *string   `db:"customer_phone" json:"customerPhone"`
	CustomerAddress *string   `db:"customer_address" json:"customerAddress"`
	DeliveryMethod  string    `db:"delivery_method" json:"deliveryMethod"`
	Notes           *string   `db:"notes" json:"notes"`
	Total           float64   `db:"total" json:"total"`
	WhatsAppSent    bool      `db:"whatsapp_sent" json:"whatsappSent"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
}

// OrderItem keeps the product name and price as they were at order time, so
// later catalog edits do not rewrite order history.
type OrderItem struct {
	ID          int64   `db:"id" json:"id"`
	OrderID     int64   `db:"order_id" json:"orderId"`
	ProductName string  `db:"product_name" json:"productName"`
	Price       float64 `db:"price" json:"price"`
	Quantity    int     `db:"quantity" json:"quantity"`
}
