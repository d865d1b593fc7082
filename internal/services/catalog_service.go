package services

import (
	"errors"

	"shopfront/internal/domain"
	"shopfront/internal/storage"
)

var ErrBadCategory = errors.New("category does not belong to this store")

// CatalogService manages an owner's categories and products. Ownership and
// same-store category checks happen here; the storage layer stores whatever
// it is given.
type CatalogService struct {
	Store storage.Storage
}

func NewCatalogService(st storage.Storage) *CatalogService {
	return &CatalogService{Store: st}
}

func (s *CatalogService) ownedStore(userID int64) (domain.Store, error) {
	return s.Store.StoreByOwner(userID)
}

func (s *CatalogService) ListCategories(userID int64) ([]domain.Category, error) {
	st, err := s.ownedStore(userID)
	if err != nil {
		return nil, err
	}
	return s.Store.Categories(st.ID)
}

func (s *CatalogService) CreateCategory(userID int64, name string) (domain.Category, error) {
	st, err := s.ownedStore(userID)
	if err != nil {
		return domain.Category{}, err
	}
	return s.Store.CreateCategory(storage.CreateCategoryParams{StoreID: st.ID, Name: name})
}

func (s *CatalogService) RenameCategory(userID, categoryID int64, name string) (domain.Category, error) {
	st, err := s.ownedStore(userID)
	if err != nil {
		return domain.Category{}, err
	}
	c, err := s.Store.Category(categoryID)
	if err != nil {
		return domain.Category{}, err
	}
	if c.StoreID != st.ID {
		return domain.Category{}, ErrNotYourStore
	}
	return s.Store.UpdateCategory(categoryID, storage.UpdateCategoryParams{Name: storage.Set(name)})
}

func (s *CatalogService) DeleteCategory(userID, categoryID int64) error {
	st, err := s.ownedStore(userID)
	if err != nil {
		return err
	}
	c, err := s.Store.Category(categoryID)
	if err != nil {
		return err
	}
	if c.StoreID != st.ID {
		return ErrNotYourStore
	}
	// Detach products still pointing at the category before dropping it.
	prods, err := s.Store.Products(storage.ProductFilter{StoreID: st.ID, CategoryID: categoryID})
	if err != nil {
		return err
	}
	for _, p := range prods {
		if _, err := s.Store.UpdateProduct(p.ID, storage.UpdateProductParams{
			CategoryID: storage.Null[int64](),
		}); err != nil {
			return err
		}
	}
	_, err = s.Store.DeleteCategory(categoryID)
	return err
}

func (s *CatalogService) ListProducts(userID int64) ([]domain.Product, error) {
	st, err := s.ownedStore(userID)
	if err != nil {
		return nil, err
	}
	return s.Store.Products(storage.ProductFilter{StoreID: st.ID})
}

// checkCategory verifies a referenced category exists and belongs to the
// store. The storage layer deliberately skips this.
func (s *CatalogService) checkCategory(storeID int64, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	c, err := s.Store.Category(*categoryID)
	if err != nil {
		return ErrBadCategory
	}
	if c.StoreID != storeID {
		return ErrBadCategory
	}
	return nil
}

func (s *CatalogService) CreateProduct(userID int64, p storage.CreateProductParams) (domain.Product, error) {
	st, err := s.ownedStore(userID)
	if err != nil {
		return domain.Product{}, err
	}
	p.StoreID = st.ID
	if err := s.checkCategory(st.ID, p.CategoryID); err != nil {
		return domain.Product{}, err
	}
	return s.Store.CreateProduct(p)
}

func (s *CatalogService) UpdateProduct(userID, productID int64, p storage.UpdateProductParams) (domain.Product, error) {
	st, err := s.ownedStore(userID)
	if err != nil {
		return domain.Product{}, err
	}
	existing, err := s.Store.Product(productID)
	if err != nil {
		return domain.Product{}, err
	}
	if existing.StoreID != st.ID {
		return domain.Product{}, ErrNotYourStore
	}
	if p.CategoryID.Present() && !p.CategoryID.IsNull() {
		id := p.CategoryID.Value()
		if err := s.checkCategory(st.ID, &id); err != nil {
			return domain.Product{}, err
		}
	}
	return s.Store.UpdateProduct(productID, p)
}

func (s *CatalogService) DeleteProduct(userID, productID int64) error {
	st, err := s.ownedStore(userID)
	if err != nil {
		return err
	}
	existing, err := s.Store.Product(productID)
	if err != nil {
		return err
	}
	if existing.StoreID != st.ID {
		return ErrNotYourStore
	}
	_, err = s.Store.DeleteProduct(productID)
	return err
}
