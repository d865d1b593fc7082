package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"shopfront/internal/domain"
	"shopfront/internal/storage"
)

var ErrEmptyCart = errors.New("cart is empty")

type OrderService struct {
	Store storage.Storage
	Carts *CartService
}

func NewOrderService(st storage.Storage, carts *CartService) *OrderService {
	return &OrderService{Store: st, Carts: carts}
}

// Contact is what the customer types into the checkout form.
type Contact struct {
	Name    string
	Phone   *string
	Address *string
}

// PlacedOrder is the checkout result: the order, its item snapshots and the
// WhatsApp deep link that relays it to the shop owner.
type PlacedOrder struct {
	Order        domain.Order       `json:"order"`
	Items        []domain.OrderItem `json:"items"`
	WhatsAppLink string             `json:"whatsappLink"`
}

// Place turns the customer's cart for a store into an order. Product name and
// price are snapshotted into the order items so later catalog edits do not
// rewrite history; the cart is cleared afterwards.
func (s *OrderService) Place(customerID, storeID int64, contact Contact, deliveryMethod string, notes *string) (PlacedOrder, error) {
	store, err := s.Store.Store(storeID)
	if err != nil {
		return PlacedOrder{}, err
	}
	// deactivated stores are invisible to customers, carts included
	if !store.Active {
		return PlacedOrder{}, storage.ErrNotFound
	}
	view, err := s.Carts.View(customerID, storeID)
	if err != nil {
		return PlacedOrder{}, err
	}
	if len(view.Lines) == 0 {
		return PlacedOrder{}, ErrEmptyCart
	}
	if deliveryMethod == "" {
		deliveryMethod = domain.DeliveryMethodPickup
	}

	order, err := s.Store.CreateOrder(storage.CreateOrderParams{
		StoreID:         storeID,
		CustomerID:      &customerID,
		CustomerName:    contact.Name,
		CustomerPhone:   contact.Phone,
		CustomerAddress: contact.Address,
		DeliveryMethod:  deliveryMethod,
		Notes:           notes,
		Total:           view.Total,
	})
	if err != nil {
		return PlacedOrder{}, err
	}

	items := make([]domain.OrderItem, 0, len(view.Lines))
	for _, line := range view.Lines {
		it, err := s.Store.CreateOrderItem(storage.CreateOrderItemParams{
			OrderID:     order.ID,
			ProductName: line.Product.Name,
			Price:       line.Product.Price,
			Quantity:    line.Item.Quantity,
		})
		if err != nil {
			return PlacedOrder{}, err
		}
		items = append(items, it)
	}

	_ = s.Carts.Clear(customerID, storeID)

	return PlacedOrder{
		Order:        order,
		Items:        items,
		WhatsAppLink: WhatsAppLink(store, order, items),
	}, nil
}

// MarkSent records that the WhatsApp message for an order was opened.
func (s *OrderService) MarkSent(customerID, orderID int64) (domain.Order, error) {
	o, err := s.Store.Order(orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if o.CustomerID == nil || *o.CustomerID != customerID {
		return domain.Order{}, storage.ErrNotFound
	}
	return s.Store.UpdateOrder(orderID, storage.UpdateOrderParams{
		WhatsAppSent: storage.Set(true),
	})
}

// History lists a customer's past orders across stores.
func (s *OrderService) History(customerID int64) ([]domain.Order, error) {
	return s.Store.OrdersByCustomer(customerID)
}

// StoreOrders lists the orders for the store owned by userID.
func (s *OrderService) StoreOrders(userID int64) ([]domain.Order, error) {
	st, err := s.Store.StoreByOwner(userID)
	if err != nil {
		return nil, err
	}
	return s.Store.Orders(st.ID)
}

// OrderWithItems loads one of the owner's orders with its item snapshots.
func (s *OrderService) OrderWithItems(userID, orderID int64) (domain.Order, []domain.OrderItem, error) {
	st, err := s.Store.StoreByOwner(userID)
	if err != nil {
		return domain.Order{}, nil, err
	}
	o, err := s.Store.Order(orderID)
	if err != nil {
		return domain.Order{}, nil, err
	}
	if o.StoreID != st.ID {
		return domain.Order{}, nil, storage.ErrNotFound
	}
	items, err := s.Store.OrderItems(orderID)
	return o, items, err
}

// WhatsAppLink builds the wa.me deep link carrying the order summary. Only
// digits of the store's number survive into the URL path.
func WhatsAppLink(store domain.Store, order domain.Order, items []domain.OrderItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order #%d from %s\n\n", order.ID, order.CustomerName)
	for _, it := range items {
		fmt.Fprintf(&b, "%dx %s - %.2f\n", it.Quantity, it.ProductName, it.Price*float64(it.Quantity))
	}
	fmt.Fprintf(&b, "\nTotal: %.2f\n", order.Total)
	fmt.Fprintf(&b, "Delivery: %s\n", order.DeliveryMethod)
	if order.CustomerAddress != nil {
		fmt.Fprintf(&b, "Address: %s\n", *order.CustomerAddress)
	}
	if order.CustomerPhone != nil {
		fmt.Fprintf(&b, "Phone: %s\n", *order.CustomerPhone)
	}
	if order.Notes != nil {
		fmt.Fprintf(&b, "Notes: %s\n", *order.Notes)
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, store.WhatsAppNumber)

	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(b.String())
}
