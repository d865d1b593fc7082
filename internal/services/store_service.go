package services

import (
	"errors"

	"shopfront/internal/domain"
	"shopfront/internal/storage"
)

var (
	ErrSlugTaken    = errors.New("slug already in use")
	ErrNotYourStore = errors.New("resource belongs to another store")
)

// StoreService covers the owner dashboard view of a store and the public
// storefront bundle.
type StoreService struct {
	Store storage.Storage
}

func NewStoreService(st storage.Storage) *StoreService {
	return &StoreService{Store: st}
}

// MyStore resolves the store owned by the given user.
func (s *StoreService) MyStore(userID int64) (domain.Store, error) {
	return s.Store.StoreByOwner(userID)
}

// UpdateMyStore applies a partial update to the owner's store.
func (s *StoreService) UpdateMyStore(userID int64, p storage.UpdateStoreParams) (domain.Store, error) {
	st, err := s.Store.StoreByOwner(userID)
	if err != nil {
		return domain.Store{}, err
	}
	updated, err := s.Store.UpdateStore(st.ID, p)
	if errors.Is(err, storage.ErrConflict) {
		return domain.Store{}, ErrSlugTaken
	}
	return updated, err
}

// Storefront is the public bundle a customer sees for a store slug.
type Storefront struct {
	Store      domain.Store      `json:"store"`
	Categories []domain.Category `json:"categories"`
	Products   []domain.Product  `json:"products"`
}

// Storefront returns the public view of an active store: its categories and
// active products. Inactive stores are indistinguishable from missing ones.
func (s *StoreService) Storefront(slug string) (Storefront, error) {
	st, err := s.Store.StoreBySlug(slug)
	if err != nil {
		return Storefront{}, err
	}
	if !st.Active {
		return Storefront{}, storage.ErrNotFound
	}
	cats, err := s.Store.Categories(st.ID)
	if err != nil {
		return Storefront{}, err
	}
	prods, err := s.Store.Products(storage.ProductFilter{StoreID: st.ID, ActiveOnly: true})
	if err != nil {
		return Storefront{}, err
	}
	return Storefront{Store: st, Categories: cats, Products: prods}, nil
}

// StorefrontProducts lists a storefront's active products, optionally
// narrowed to one category.
func (s *StoreService) StorefrontProducts(slug string, categoryID int64) ([]domain.Product, error) {
	st, err := s.Store.StoreBySlug(slug)
	if err != nil {
		return nil, err
	}
	if !st.Active {
		return nil, storage.ErrNotFound
	}
	return s.Store.Products(storage.ProductFilter{
		StoreID:    st.ID,
		CategoryID: categoryID,
		ActiveOnly: true,
	})
}
