package handlers

import (
	"shopfront/internal/services"
	"shopfront/internal/storage"
)

type Deps struct {
	AuthHandler       *AuthHandler
	StorefrontHandler *StorefrontHandler
	StoreHandler      *StoreHandler
	CatalogHandler    *CatalogHandler
	CartHandler       *CartHandler
	OrderHandler      *OrderHandler
	BillingHandler    *BillingHandler
	AdminHandler      *AdminHandler

	Auth    *services.AuthService
	Billing *services.BillingService
}

func NewDeps(st storage.Storage, auth *services.AuthService) *Deps {
	storeSvc := services.NewStoreService(st)
	catalogSvc := services.NewCatalogService(st)
	cartSvc := services.NewCartService(st)
	orderSvc := services.NewOrderService(st, cartSvc)
	billingSvc := services.NewBillingService(st)

	return &Deps{
		AuthHandler:       &AuthHandler{Auth: auth},
		StorefrontHandler: &StorefrontHandler{Stores: storeSvc},
		StoreHandler:      &StoreHandler{Stores: storeSvc},
		CatalogHandler:    &CatalogHandler{Catalog: catalogSvc},
		CartHandler:       &CartHandler{Cart: cartSvc},
		OrderHandler:      &OrderHandler{Orders: orderSvc},
		BillingHandler:    &BillingHandler{Billing: billingSvc},
		AdminHandler:      &AdminHandler{Store: st},
		Auth:              auth,
		Billing:           billingSvc,
	}
}
