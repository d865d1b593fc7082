package services

import (
	"errors"

	"shopfront/internal/domain"
	"shopfront/internal/storage"
)

var ErrWrongStore = errors.New("product belongs to another store")

// CartService keeps at most one cart per (customer, store) pair and merges
// repeated adds of the same product into one line.
type CartService struct {
	Store storage.Storage
}

func NewCartService(st storage.Storage) *CartService {
	return &CartService{Store: st}
}

// CartLine is a cart item joined with its current product for display.
type CartLine struct {
	Item     domain.CartItem `json:"item"`
	Product  domain.Product  `json:"product"`
	Subtotal float64         `json:"subtotal"`
}

type CartView struct {
	Cart  domain.Cart `json:"cart"`
	Lines []CartLine  `json:"lines"`
	Total float64     `json:"total"`
}

// EnsureCart returns the customer's cart for a store, creating it on first
// use.
func (s *CartService) EnsureCart(customerID, storeID int64) (domain.Cart, error) {
	c, err := s.Store.CartByCustomer(customerID, storeID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return domain.Cart{}, err
	}
	return s.Store.CreateCart(storage.CreateCartParams{CustomerID: customerID, StoreID: storeID})
}

// Add puts qty of a product into the cart, merging with an existing line.
func (s *CartService) Add(customerID, storeID, productID int64, qty int) (domain.CartItem, error) {
	if qty < 1 {
		qty = 1
	}
	p, err := s.Store.Product(productID)
	if err != nil {
		return domain.CartItem{}, err
	}
	if p.StoreID != storeID {
		return domain.CartItem{}, ErrWrongStore
	}
	cart, err := s.EnsureCart(customerID, storeID)
	if err != nil {
		return domain.CartItem{}, err
	}
	items, err := s.Store.CartItems(cart.ID)
	if err != nil {
		return domain.CartItem{}, err
	}
	for _, it := range items {
		if it.ProductID == productID {
			merged, err := s.Store.UpdateCartItem(it.ID, storage.UpdateCartItemParams{
				Quantity: storage.Set(it.Quantity + qty),
			})
			if err != nil {
				return domain.CartItem{}, err
			}
			_ = s.Store.TouchCart(cart.ID)
			return merged, nil
		}
	}
	it, err := s.Store.CreateCartItem(storage.CreateCartItemParams{
		CartID:    cart.ID,
		ProductID: productID,
		Quantity:  qty,
	})
	if err != nil {
		return domain.CartItem{}, err
	}
	_ = s.Store.TouchCart(cart.ID)
	return it, nil
}

// UpdateQuantity sets an item's quantity; zero or less removes the line.
func (s *CartService) UpdateQuantity(customerID, itemID int64, qty int) error {
	it, err := s.Store.CartItem(itemID)
	if err != nil {
		return err
	}
	cart, err := s.Store.Cart(it.CartID)
	if err != nil {
		return err
	}
	if cart.CustomerID != customerID {
		return storage.ErrNotFound
	}
	if qty < 1 {
		_, err := s.Store.DeleteCartItem(itemID)
		return err
	}
	if _, err := s.Store.UpdateCartItem(itemID, storage.UpdateCartItemParams{
		Quantity: storage.Set(qty),
	}); err != nil {
		return err
	}
	return s.Store.TouchCart(cart.ID)
}

// RemoveItem deletes a single line from the customer's cart.
func (s *CartService) RemoveItem(customerID, itemID int64) error {
	return s.UpdateQuantity(customerID, itemID, 0)
}

// Clear drops the customer's cart for a store, cascading to its items.
func (s *CartService) Clear(customerID, storeID int64) error {
	cart, err := s.Store.CartByCustomer(customerID, storeID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = s.Store.DeleteCart(cart.ID)
	return err
}

// View joins the cart with current product data and totals it. A customer
// with no cart yet gets an empty view; carts are only created by Add.
func (s *CartService) View(customerID, storeID int64) (CartView, error) {
	cart, err := s.Store.CartByCustomer(customerID, storeID)
	if errors.Is(err, storage.ErrNotFound) {
		return CartView{Lines: []CartLine{}}, nil
	}
	if err != nil {
		return CartView{}, err
	}
	items, err := s.Store.CartItems(cart.ID)
	if err != nil {
		return CartView{}, err
	}
	view := CartView{Cart: cart, Lines: []CartLine{}}
	for _, it := range items {
		p, err := s.Store.Product(it.ProductID)
		if err != nil {
			// product deleted since it was added; skip the line
			continue
		}
		sub := p.Price * float64(it.Quantity)
		view.Lines = append(view.Lines, CartLine{Item: it, Product: p, Subtotal: sub})
		view.Total += sub
	}
	return view, nil
}
