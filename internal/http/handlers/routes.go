package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Register mounts every route on the app. Kept separate from main so tests
// can assemble the same surface without the process-level middleware.
func Register(app *fiber.App, d *Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// Auth
	app.Post("/auth/register", d.AuthHandler.Register)
	app.Post("/auth/login", d.AuthHandler.Login)
	app.Post("/auth/logout", d.AuthHandler.Logout)
	app.Get("/auth/me", d.AuthHandler.Me)

	// Public storefront
	app.Get("/s/:slug", d.StorefrontHandler.Show)
	app.Get("/s/:slug/products", d.StorefrontHandler.Products)

	// Customer: cart & checkout
	cust := RequireCustomer(d.Auth)
	app.Get("/cart", cust, d.CartHandler.View)
	app.Post("/cart/items", cust, d.CartHandler.Add)
	app.Patch("/cart/items/:id", cust, d.CartHandler.UpdateItem)
	app.Delete("/cart/items/:id", cust, d.CartHandler.RemoveItem)
	app.Delete("/cart", cust, d.CartHandler.Clear)
	app.Get("/orders", cust, d.OrderHandler.History)
	app.Post("/orders", cust, d.OrderHandler.Place)
	app.Post("/orders/:id/sent", cust, d.OrderHandler.MarkSent)

	// Owner dashboard. Mutations additionally require a current
	// subscription; reads and the billing endpoints stay open so an
	// expired owner can still see their data and reactivate.
	my := app.Group("/my", RequireShopOwner(d.Auth))
	my.Get("/store", d.StoreHandler.Mine)
	my.Get("/categories", d.CatalogHandler.ListCategories)
	my.Get("/products", d.CatalogHandler.ListProducts)
	my.Get("/orders", d.OrderHandler.StoreOrders)
	my.Get("/orders/:id", d.OrderHandler.StoreOrder)
	my.Get("/subscription", d.BillingHandler.Subscription)
	my.Post("/billing/link", d.BillingHandler.Link)

	paid := RequireActiveSubscription(d.Billing)
	my.Patch("/store", paid, d.StoreHandler.Update)
	my.Post("/categories", paid, d.CatalogHandler.CreateCategory)
	my.Patch("/categories/:id", paid, d.CatalogHandler.RenameCategory)
	my.Delete("/categories/:id", paid, d.CatalogHandler.DeleteCategory)
	my.Post("/products", paid, d.CatalogHandler.CreateProduct)
	my.Patch("/products/:id", paid, d.CatalogHandler.UpdateProduct)
	my.Delete("/products/:id", paid, d.CatalogHandler.DeleteProduct)

	// Admin
	admin := app.Group("/admin", RequireAdmin(d.Auth))
	admin.Get("/users", d.AdminHandler.Users)
	admin.Get("/stores", d.AdminHandler.Stores)
	admin.Post("/stores/:id/active", d.AdminHandler.SetStoreActive)
}
