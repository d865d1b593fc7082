package storage

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"shopfront/internal/domain"
)

// Memory is the in-memory backend: one map per entity kind, one monotonic id
// counter per kind. Counters start at 1 and never go back, so deleted ids are
// never reused. A single RWMutex serializes mutations; every call is atomic
// on its own, multi-entity sequences are the caller's problem.
type Memory struct {
	mu sync.RWMutex

	users      map[int64]domain.User
	stores     map[int64]domain.Store
	categories map[int64]domain.Category
	products   map[int64]domain.Product
	shopOwners map[int64]domain.ShopOwner
	customers  map[int64]domain.Customer
	carts      map[int64]domain.Cart
	cartItems  map[int64]domain.CartItem
	orders     map[int64]domain.Order
	orderItems map[int64]domain.OrderItem

	nextUser      int64
	nextStore     int64
	nextCategory  int64
	nextProduct   int64
	nextShopOwner int64
	nextCustomer  int64
	nextCart      int64
	nextCartItem  int64
	nextOrder     int64
	nextOrderItem int64
}

var _ Storage = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		users:      map[int64]domain.User{},
		stores:     map[int64]domain.Store{},
		categories: map[int64]domain.Category{},
		products:   map[int64]domain.Product{},
		shopOwners: map[int64]domain.ShopOwner{},
		customers:  map[int64]domain.Customer{},
		carts:      map[int64]domain.Cart{},
		cartItems:  map[int64]domain.CartItem{},
		orders:     map[int64]domain.Order{},
		orderItems: map[int64]domain.OrderItem{},
	}
}

func (m *Memory) Close() error { return nil }

func next(counter *int64) int64 {
	*counter++
	return *counter
}

// sortedIDs returns map keys ascending. Ids are assigned monotonically, so id
// order is creation order.
func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ---------- users ----------

func (m *Memory) User(id int64) (domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) Users() ([]domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.User, 0, len(m.users))
	for _, id := range sortedIDs(m.users) {
		out = append(out, m.users[id])
	}
	return out, nil
}

func (m *Memory) UserByUsername(username string) (domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range sortedIDs(m.users) {
		if strings.EqualFold(m.users[id].Username, username) {
			return m.users[id], nil
		}
	}
	return domain.User{}, ErrNotFound
}

func (m *Memory) UserByEmail(email string) (domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range sortedIDs(m.users) {
		if strings.EqualFold(m.users[id].Email, email) {
			return m.users[id], nil
		}
	}
	return domain.User{}, ErrNotFound
}

func (m *Memory) CreateUser(p CreateUserParams) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Username, p.Username) || strings.EqualFold(u.Email, p.Email) {
			return domain.User{}, ErrConflict
		}
	}
	u := domain.User{
		ID:           next(&m.nextUser),
		Username:     p.Username,
		Email:        p.Email,
		PasswordHash: p.PasswordHash,
		Role:         p.Role,
		CreatedAt:    time.Now(),
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *Memory) UpdateUser(id int64, p UpdateUserParams) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, ErrNotFound
	}
	for _, other := range m.users {
		if other.ID == id {
			continue
		}
		if p.Username.Present() && strings.EqualFold(other.Username, p.Username.Value()) {
			return domain.User{}, ErrConflict
		}
		if p.Email.Present() && strings.EqualFold(other.Email, p.Email.Value()) {
			return domain.User{}, ErrConflict
		}
	}
	p.Username.Apply(&u.Username)
	p.Email.Apply(&u.Email)
	p.PasswordHash.Apply(&u.PasswordHash)
	p.Role.Apply(&u.Role)
	m.users[id] = u
	return u, nil
}

func (m *Memory) DeleteUser(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.users[id]
	delete(m.users, id)
	return ok, nil
}

// ---------- stores ----------

func (m *Memory) Store(id int64) (domain.Store, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.stores[id]
	if !ok {
		return domain.Store{}, ErrNotFound
	}
	return s, nil
}

func (m *Memory) Stores() ([]domain.Store, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Store, 0, len(m.stores))
	for _, id := range sortedIDs(m.stores) {
		out = append(out, m.stores[id])
	}
	return out, nil
}

func (m *Memory) StoreBySlug(slug string) (domain.Store, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range sortedIDs(m.stores) {
		s := m.stores[id]
		if s.Slug != nil && *s.Slug == slug {
			return s, nil
		}
	}
	return domain.Store{}, ErrNotFound
}

func (m *Memory) StoreByOwner(userID int64) (domain.Store, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range sortedIDs(m.shopOwners) {
		if m.shopOwners[id].UserID == userID {
			s, ok := m.stores[m.shopOwners[id].StoreID]
			if !ok {
				return domain.Store{}, ErrNotFound
			}
			return s, nil
		}
	}
	return domain.Store{}, ErrNotFound
}

func (m *Memory) slugTaken(slug string, excludeID int64) bool {
	for _, s := range m.stores {
		if s.ID != excludeID && s.Slug != nil && *s.Slug == slug {
			return true
		}
	}
	return false
}

func (m *Memory) CreateStore(p CreateStoreParams) (domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.Slug != nil && m.slugTaken(*p.Slug, 0) {
		return domain.Store{}, ErrConflict
	}
	now := time.Now()
	s := domain.Store{
		ID:              next(&m.nextStore),
		Name:            p.Name,
		Slug:            p.Slug,
		WhatsAppNumber:  p.WhatsAppNumber,
		LogoURL:         p.LogoURL,
		InstagramURL:    p.InstagramURL,
		FacebookURL:     p.FacebookURL,
		ShowSocialMedia: p.ShowSocialMedia,
		Active:          true,
		Theme:           p.Theme,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.stores[s.ID] = s
	return s, nil
}

func (m *Memory) UpdateStore(id int64, p UpdateStoreParams) (domain.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[id]
	if !ok {
		return domain.Store{}, ErrNotFound
	}
	if p.Slug.Present() && !p.Slug.IsNull() && m.slugTaken(p.Slug.Value(), id) {
		return domain.Store{}, ErrConflict
	}
	p.Name.Apply(&s.Name)
	p.WhatsAppNumber.Apply(&s.WhatsAppNumber)
	p.Slug.ApplyPtr(&s.Slug)
	p.LogoURL.ApplyPtr(&s.LogoURL)
	p.InstagramURL.ApplyPtr(&s.InstagramURL)
	p.FacebookURL.ApplyPtr(&s.FacebookURL)
	p.ShowSocialMedia.Apply(&s.ShowSocialMedia)
	p.Active.Apply(&s.Active)
	p.Theme.ApplyPtr(&s.Theme)
	s.UpdatedAt = time.Now()
	m.stores[id] = s
	return s, nil
}

func (m *Memory) DeleteStore(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.stores[id]
	delete(m.stores, id)
	return ok, nil
}

// ---------- categories ----------

func (m *Memory) Category(id int64) (domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.categories[id]
	if !ok {
		return domain.Category{}, ErrNotFound
	}
	return c, nil
}

func (m *Memory) Categories(storeID int64) ([]domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Category{}
	for _, id := range sortedIDs(m.categories) {
		c := m.categories[id]
		if storeID == 0 || c.StoreID == storeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *Memory) CreateCategory(p CreateCategoryParams) (domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := domain.Category{
		ID:        next(&m.nextCategory),
		StoreID:   p.StoreID,
		Name:      p.Name,
		CreatedAt: time.Now(),
	}
	m.categories[c.ID] = c
	return c, nil
}

func (m *Memory) UpdateCategory(id int64, p UpdateCategoryParams) (domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return domain.Category{}, ErrNotFound
	}
	p.Name.Apply(&c.Name)
	m.categories[id] = c
	return c, nil
}

func (m *Memory) DeleteCategory(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.categories[id]
	delete(m.categories, id)
	return ok, nil
}

// ---------- products ----------

func (m *Memory) Product(id int64) (domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[id]
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}

func (m *Memory) Products(f ProductFilter) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Product{}
	for _, id := range sortedIDs(m.products) {
		p := m.products[id]
		if f.StoreID != 0 && p.StoreID != f.StoreID {
			continue
		}
		if f.CategoryID != 0 && (p.CategoryID == nil || *p.CategoryID != f.CategoryID) {
			continue
		}
		if f.ActiveOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *Memory) CreateProduct(p CreateProductParams) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	now := time.Now()
	pr := domain.Product{
		ID:          next(&m.nextProduct),
		StoreID:     p.StoreID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Price:       p.Price,
		Active:      active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.products[pr.ID] = pr
	return pr, nil
}

func (m *Memory) UpdateProduct(id int64, p UpdateProductParams) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pr, ok := m.products[id]
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	p.Name.Apply(&pr.Name)
	p.Description.ApplyPtr(&pr.Description)
	p.ImageURL.ApplyPtr(&pr.ImageURL)
	p.Price.Apply(&pr.Price)
	p.CategoryID.ApplyPtr(&pr.CategoryID)
	p.Active.Apply(&pr.Active)
	pr.UpdatedAt = time.Now()
	m.products[id] = pr
	return pr, nil
}

func (m *Memory) DeleteProduct(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.products[id]
	delete(m.products, id)
	return ok, nil
}

// ---------- shop owners ----------

func (m *Memory) ShopOwner(id int64) (domain.ShopOwner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.shopOwners[id]
	if !ok {
		return domain.ShopOwner{}, ErrNotFound
	}
	return o, nil
}

func (m *Memory) ShopOwnerByUserID(userID int64) (domain.ShopOwner, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.shopOwnerByUserLocked(userID)
	if !ok {
		return domain.ShopOwner{}, ErrNotFound
	}
	return o, nil
}

func (m *Memory) shopOwnerByUserLocked(userID int64) (domain.ShopOwner, bool) {
	for _, id := range sortedIDs(m.shopOwners) {
		if m.shopOwners[id].UserID == userID {
			return m.shopOwners[id], true
		}
	}
	return domain.ShopOwner{}, false
}

func (m *Memory) CreateShopOwner(p CreateShopOwnerParams) (domain.ShopOwner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shopOwnerByUserLocked(p.UserID); ok {
		return domain.ShopOwner{}, ErrConflict
	}
	status := p.SubscriptionStatus
	if status == "" {
		status = domain.SubscriptionTrial
	}
	o := domain.ShopOwner{
		ID:                    next(&m.nextShopOwner),
		UserID:                p.UserID,
		StoreID:               p.StoreID,
		SubscriptionStatus:    status,
		SubscriptionExpiresAt: p.SubscriptionExpiresAt,
	}
	m.shopOwners[o.ID] = o
	return o, nil
}

func (m *Memory) UpdateShopOwner(id int64, p UpdateShopOwnerParams) (domain.ShopOwner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.shopOwners[id]
	if !ok {
		return domain.ShopOwner{}, ErrNotFound
	}
	p.SubscriptionStatus.Apply(&o.SubscriptionStatus)
	p.SubscriptionExpiresAt.ApplyPtr(&o.SubscriptionExpiresAt)
	p.StripeCustomerID.ApplyPtr(&o.StripeCustomerID)
	p.StripeSubscriptionID.ApplyPtr(&o.StripeSubscriptionID)
	m.shopOwners[id] = o
	return o, nil
}

func (m *Memory) UpdateStripeCustomerID(userID int64, stripeCustomerID string) (domain.ShopOwner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.shopOwnerByUserLocked(userID)
	if !ok {
		return domain.ShopOwner{}, fmt.Errorf("billing: no shop owner for user %d", userID)
	}
	o.StripeCustomerID = &stripeCustomerID
	m.shopOwners[o.ID] = o
	return o, nil
}

func (m *Memory) UpdateStripeInfo(userID int64, stripeCustomerID, stripeSubscriptionID string) (domain.ShopOwner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.shopOwnerByUserLocked(userID)
	if !ok {
		return domain.ShopOwner{}, fmt.Errorf("billing: no shop owner for user %d", userID)
	}
	o.StripeCustomerID = &stripeCustomerID
	o.StripeSubscriptionID = &stripeSubscriptionID
	o.SubscriptionStatus = domain.SubscriptionActive
	exp := time.Now().AddDate(0, 0, 30)
	o.SubscriptionExpiresAt = &exp
	m.shopOwners[o.ID] = o
	return o, nil
}

func (m *Memory) DeleteShopOwner(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.shopOwners[id]
	delete(m.shopOwners, id)
	return ok, nil
}

// ---------- customers ----------

func (m *Memory) Customer(id int64) (domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.customers[id]
	if !ok {
		return domain.Customer{}, ErrNotFound
	}
	return c, nil
}

func (m *Memory) CustomerByUserID(userID int64) (domain.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range sortedIDs(m.customers) {
		if m.customers[id].UserID == userID {
			return m.customers[id], nil
		}
	}
	return domain.Customer{}, ErrNotFound
}

func (m *Memory) CreateCustomer(p CreateCustomerParams) (domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.customers {
		if c.UserID == p.UserID {
			return domain.Customer{}, ErrConflict
		}
	}
	c := domain.Customer{
		ID:      next(&m.nextCustomer),
		UserID:  p.UserID,
		Address: p.Address,
		Phone:   p.Phone,
	}
	m.customers[c.ID] = c
	return c, nil
}

func (m *Memory) UpdateCustomer(id int64, p UpdateCustomerParams) (domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return domain.Customer{}, ErrNotFound
	}
	p.Address.ApplyPtr(&c.Address)
	p.Phone.ApplyPtr(&c.Phone)
	m.customers[id] = c
	return c, nil
}

func (m *Memory) DeleteCustomer(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.customers[id]
	delete(m.customers, id)
	return ok, nil
}

// ---------- carts ----------

func (m *Memory) Cart(id int64) (domain.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.carts[id]
	if !ok {
		return domain.Cart{}, ErrNotFound
	}
	return c, nil
}

func (m *Memory) CartByCustomer(customerID, storeID int64) (domain.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range sortedIDs(m.carts) {
		c := m.carts[id]
		if c.CustomerID == customerID && c.StoreID == storeID {
			return c, nil
		}
	}
	return domain.Cart{}, ErrNotFound
}

func (m *Memory) CreateCart(p CreateCartParams) (domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	c := domain.Cart{
		ID:         next(&m.nextCart),
		CustomerID: p.CustomerID,
		StoreID:    p.StoreID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.carts[c.ID] = c
	return c, nil
}

func (m *Memory) TouchCart(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[id]
	if !ok {
		return ErrNotFound
	}
	c.UpdatedAt = time.Now()
	m.carts[id] = c
	return nil
}

func (m *Memory) DeleteCart(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.carts[id]
	delete(m.carts, id)
	// cascade
	for itemID, it := range m.cartItems {
		if it.CartID == id {
			delete(m.cartItems, itemID)
		}
	}
	return ok, nil
}

// ---------- cart items ----------

func (m *Memory) CartItem(id int64) (domain.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.cartItems[id]
	if !ok {
		return domain.CartItem{}, ErrNotFound
	}
	return it, nil
}

func (m *Memory) CartItems(cartID int64) ([]domain.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.CartItem{}
	for _, id := range sortedIDs(m.cartItems) {
		if m.cartItems[id].CartID == cartID {
			out = append(out, m.cartItems[id])
		}
	}
	return out, nil
}

func (m *Memory) CreateCartItem(p CreateCartItemParams) (domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it := domain.CartItem{
		ID:        next(&m.nextCartItem),
		CartID:    p.CartID,
		ProductID: p.ProductID,
		Quantity:  p.Quantity,
	}
	m.cartItems[it.ID] = it
	return it, nil
}

func (m *Memory) UpdateCartItem(id int64, p UpdateCartItemParams) (domain.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.cartItems[id]
	if !ok {
		return domain.CartItem{}, ErrNotFound
	}
	p.Quantity.Apply(&it.Quantity)
	m.cartItems[id] = it
	return it, nil
}

func (m *Memory) DeleteCartItem(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.cartItems[id]
	delete(m.cartItems, id)
	return ok, nil
}

// ---------- orders ----------

func (m *Memory) Order(id int64) (domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	return o, nil
}

func (m *Memory) Orders(storeID int64) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Order{}
	for _, id := range sortedIDs(m.orders) {
		o := m.orders[id]
		if storeID == 0 || o.StoreID == storeID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *Memory) OrdersByCustomer(customerID int64) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.Order{}
	for _, id := range sortedIDs(m.orders) {
		o := m.orders[id]
		if o.CustomerID != nil && *o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *Memory) CreateOrder(p CreateOrderParams) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := domain.Order{
		ID:              next(&m.nextOrder),
		StoreID:         p.StoreID,
		CustomerID:      p.CustomerID,
		CustomerName:    p.CustomerName,
		CustomerPhone:   p.CustomerPhone,
		CustomerAddress: p.CustomerAddress,
		DeliveryMethod:  p.DeliveryMethod,
		Notes:           p.Notes,
		Total:           p.Total,
		CreatedAt:       time.Now(),
	}
	m.orders[o.ID] = o
	return o, nil
}

func (m *Memory) UpdateOrder(id int64, p UpdateOrderParams) (domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	p.WhatsAppSent.Apply(&o.WhatsAppSent)
	p.Notes.ApplyPtr(&o.Notes)
	m.orders[id] = o
	return o, nil
}

func (m *Memory) DeleteOrder(id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.orders[id]
	delete(m.orders, id)
	return ok, nil
}

// ---------- order items ----------

func (m *Memory) OrderItems(orderID int64) ([]domain.OrderItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []domain.OrderItem{}
	for _, id := range sortedIDs(m.orderItems) {
		if m.orderItems[id].OrderID == orderID {
			out = append(out, m.orderItems[id])
		}
	}
	return out, nil
}

func (m *Memory) CreateOrderItem(p CreateOrderItemParams) (domain.OrderItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it := domain.OrderItem{
		ID:          next(&m.nextOrderItem),
		OrderID:     p.OrderID,
		ProductName: p.ProductName,
		Price:       p.Price,
		Quantity:    p.Quantity,
	}
	m.orderItems[it.ID] = it
	return it, nil
}
