package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"shopfront/internal/domain"
)

// SQLite is the durable backend behind the same repository contract.
// AUTOINCREMENT keeps ids monotonic and never reused; partial updates build
// their SET clause from the fields actually supplied.
type SQLite struct {
	db *sqlx.DB
}

var _ Storage = (*SQLite)(nil)

func OpenSQLite(dsn string) (*SQLite, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// sqlite serializes writers anyway, and a second pool connection to a
	// :memory: dsn would see its own empty database.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS users(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('admin','shopowner','customer')),
  created_at TIMESTAMP NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(LOWER(username));
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email    ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS stores(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  slug TEXT,
  whatsapp_number TEXT NOT NULL,
  logo_url TEXT,
  instagram_url TEXT,
  facebook_url TEXT,
  show_social_media INTEGER NOT NULL DEFAULT 0,
  active INTEGER NOT NULL DEFAULT 1,
  theme_json TEXT,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_stores_slug ON stores(slug) WHERE slug IS NOT NULL;

CREATE TABLE IF NOT EXISTS categories(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  store_id INTEGER NOT NULL REFERENCES stores(id),
  name TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_categories_store ON categories(store_id);

CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  store_id INTEGER NOT NULL REFERENCES stores(id),
  category_id INTEGER REFERENCES categories(id),
  name TEXT NOT NULL,
  description TEXT,
  image_url TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  active INTEGER NOT NULL DEFAULT 1,
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_store    ON products(store_id);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id);

CREATE TABLE IF NOT EXISTS shop_owners(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL UNIQUE REFERENCES users(id),
  store_id INTEGER NOT NULL REFERENCES stores(id),
  subscription_status TEXT NOT NULL CHECK (subscription_status IN ('active','inactive','trial','expired')),
  subscription_expires_at TIMESTAMP,
  stripe_customer_id TEXT,
  stripe_subscription_id TEXT
);

CREATE TABLE IF NOT EXISTS customers(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL UNIQUE REFERENCES users(id),
  address TEXT,
  phone TEXT
);

CREATE TABLE IF NOT EXISTS carts(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  customer_id INTEGER NOT NULL REFERENCES customers(id),
  store_id INTEGER NOT NULL REFERENCES stores(id),
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_carts_customer ON carts(customer_id, store_id);

CREATE TABLE IF NOT EXISTS cart_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  cart_id INTEGER NOT NULL REFERENCES carts(id),
  product_id INTEGER NOT NULL REFERENCES products(id),
  quantity INTEGER NOT NULL CHECK (quantity >= 1)
);
CREATE INDEX IF NOT EXISTS idx_cart_items_cart ON cart_items(cart_id);

CREATE TABLE IF NOT EXISTS orders(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  store_id INTEGER NOT NULL REFERENCES stores(id),
  customer_id INTEGER REFERENCES customers(id),
  customer_name TEXT NOT NULL,
  customer_phone TEXT,
  customer_address TEXT,
  delivery_method TEXT NOT NULL,
  notes TEXT,
  total NUMERIC NOT NULL,
  whatsapp_sent INTEGER NOT NULL DEFAULT 0,
  created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_orders_store ON orders(store_id);

CREATE TABLE IF NOT EXISTS order_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL REFERENCES orders(id),
  product_name TEXT NOT NULL,
  price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
`
	_, err := db.Exec(schema)
	return err
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "constraint failed: idx_") {
		return ErrConflict
	}
	return err
}

// addSet appends a SET fragment for a supplied field; explicit null becomes
// a literal NULL assignment.
func addSet[T any](set *[]string, args *[]any, col string, o Opt[T]) {
	if !o.Present() {
		return
	}
	if o.IsNull() {
		*set = append(*set, col+" = NULL")
		return
	}
	*set = append(*set, col+" = ?")
	*args = append(*args, o.Value())
}

func deleteRow(db *sqlx.DB, table string, id int64) (bool, error) {
	res, err := db.Exec(`DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ---------- users ----------

const userCols = `id, username, email, password_hash, role, created_at`

func (s *SQLite) User(id int64) (domain.User, error) {
	var u domain.User
	err := s.db.Get(&u, `SELECT `+userCols+` FROM users WHERE id = ?`, id)
	return u, mapErr(err)
}

func (s *SQLite) Users() ([]domain.User, error) {
	out := []domain.User{}
	err := s.db.Select(&out, `SELECT `+userCols+` FROM users ORDER BY id`)
	return out, err
}

func (s *SQLite) UserByUsername(username string) (domain.User, error) {
	var u domain.User
	err := s.db.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(username) = LOWER(?)`, username)
	return u, mapErr(err)
}

func (s *SQLite) UserByEmail(email string) (domain.User, error) {
	var u domain.User
	err := s.db.Get(&u, `SELECT `+userCols+` FROM users WHERE LOWER(email) = LOWER(?)`, email)
	return u, mapErr(err)
}

func (s *SQLite) CreateUser(p CreateUserParams) (domain.User, error) {
	res, err := s.db.Exec(`
	  INSERT INTO users(username, email, password_hash, role, created_at)
	  VALUES(?, ?, ?, ?, ?)`,
		p.Username, p.Email, p.PasswordHash, p.Role, time.Now())
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.User{}, err
	}
	return s.User(id)
}

func (s *SQLite) UpdateUser(id int64, p UpdateUserParams) (domain.User, error) {
	set := []string{}
	args := []any{}
	addSet(&set, &args, "username", p.Username)
	addSet(&set, &args, "email", p.Email)
	addSet(&set, &args, "password_hash", p.PasswordHash)
	addSet(&set, &args, "role", p.Role)
	if len(set) > 0 {
		args = append(args, id)
		res, err := s.db.Exec(`UPDATE users SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return domain.User{}, mapErr(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.User{}, ErrNotFound
		}
	}
	return s.User(id)
}

func (s *SQLite) DeleteUser(id int64) (bool, error) { return deleteRow(s.db, "users", id) }

// ---------- stores ----------

type storeRow struct {
	domain.Store
	ThemeJSON *string `db:"theme_json"`
}

func (r storeRow) toStore() (domain.Store, error) {
	st := r.Store
	if r.ThemeJSON != nil {
		var t domain.StoreTheme
		if err := json.Unmarshal([]byte(*r.ThemeJSON), &t); err != nil {
			return domain.Store{}, fmt.Errorf("store %d: bad theme json: %w", st.ID, err)
		}
		st.Theme = &t
	}
	return st, nil
}

func themeJSON(t *domain.StoreTheme) (*string, error) {
	if t == nil {
		return nil, nil
	}
	b, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

const storeCols = `id, name, slug, whatsapp_number, logo_url, instagram_url, facebook_url,
  show_social_media, active, theme_json, created_at, updated_at`

func (s *SQLite) storeWhere(where string, args ...any) (domain.Store, error) {
	var r storeRow
	if err := s.db.Get(&r, `SELECT `+storeCols+` FROM stores WHERE `+where, args...); err != nil {
		return domain.Store{}, mapErr(err)
	}
	return r.toStore()
}

func (s *SQLite) Store(id int64) (domain.Store, error) { return s.storeWhere(`id = ?`, id) }

func (s *SQLite) Stores() ([]domain.Store, error) {
	rows := []storeRow{}
	if err := s.db.Select(&rows, `SELECT `+storeCols+` FROM stores ORDER BY id`); err != nil {
		return nil, err
	}
	out := make([]domain.Store, 0, len(rows))
	for _, r := range rows {
		st, err := r.toStore()
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

func (s *SQLite) StoreBySlug(slug string) (domain.Store, error) {
	return s.storeWhere(`slug = ?`, slug)
}

func (s *SQLite) StoreByOwner(userID int64) (domain.Store, error) {
	var r storeRow
	err := s.db.Get(&r, `
	  SELECT s.id, s.name, s.slug, s.whatsapp_number, s.logo_url, s.instagram_url, s.facebook_url,
	         s.show_social_media, s.active, s.theme_json, s.created_at, s.updated_at
	  FROM stores s
	  JOIN shop_owners o ON o.store_id = s.id
	  WHERE o.user_id = ?`, userID)
	if err != nil {
		return domain.Store{}, mapErr(err)
	}
	return r.toStore()
}

func (s *SQLite) CreateStore(p CreateStoreParams) (domain.Store, error) {
	tj, err := themeJSON(p.Theme)
	if err != nil {
		return domain.Store{}, err
	}
	now := time.Now()
	res, err := s.db.Exec(`
	  INSERT INTO stores(name, slug, whatsapp_number, logo_url, instagram_url, facebook_url,
	    show_social_media, active, theme_json, created_at, updated_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, 1, ?, ?, ?)`,
		p.Name, p.Slug, p.WhatsAppNumber, p.LogoURL, p.InstagramURL, p.FacebookURL,
		p.ShowSocialMedia, tj, now, now)
	if err != nil {
		return domain.Store{}, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Store{}, err
	}
	return s.Store(id)
}

func (s *SQLite) UpdateStore(id int64, p UpdateStoreParams) (domain.Store, error) {
	set := []string{}
	args := []any{}
	addSet(&set, &args, "name", p.Name)
	addSet(&set, &args, "whatsapp_number", p.WhatsAppNumber)
	addSet(&set, &args, "slug", p.Slug)
	addSet(&set, &args, "logo_url", p.LogoURL)
	addSet(&set, &args, "instagram_url", p.InstagramURL)
	addSet(&set, &args, "facebook_url", p.FacebookURL)
	addSet(&set, &args, "show_social_media", p.ShowSocialMedia)
	addSet(&set, &args, "active", p.Active)
	if p.Theme.Present() {
		if p.Theme.IsNull() {
			set = append(set, "theme_json = NULL")
		} else {
			v := p.Theme.Value()
			tj, err := themeJSON(&v)
			if err != nil {
				return domain.Store{}, err
			}
			set = append(set, "theme_json = ?")
			args = append(args, tj)
		}
	}
	set = append(set, "updated_at = ?")
	args = append(args, time.Now(), id)
	res, err := s.db.Exec(`UPDATE stores SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return domain.Store{}, mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Store{}, ErrNotFound
	}
	return s.Store(id)
}

func (s *SQLite) DeleteStore(id int64) (bool, error) { return deleteRow(s.db, "stores", id) }

// ---------- categories ----------

func (s *SQLite) Category(id int64) (domain.Category, error) {
	var c domain.Category
	err := s.db.Get(&c, `SELECT id, store_id, name, created_at FROM categories WHERE id = ?`, id)
	return c, mapErr(err)
}

func (s *SQLite) Categories(storeID int64) ([]domain.Category, error) {
	out := []domain.Category{}
	if storeID == 0 {
		err := s.db.Select(&out, `SELECT id, store_id, name, created_at FROM categories ORDER BY id`)
		return out, err
	}
	err := s.db.Select(&out, `SELECT id, store_id, name, created_at FROM categories WHERE store_id = ? ORDER BY id`, storeID)
	return out, err
}

func (s *SQLite) CreateCategory(p CreateCategoryParams) (domain.Category, error) {
	res, err := s.db.Exec(`INSERT INTO categories(store_id, name, created_at) VALUES(?, ?, ?)`,
		p.StoreID, p.Name, time.Now())
	if err != nil {
		return domain.Category{}, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Category{}, err
	}
	return s.Category(id)
}

func (s *SQLite) UpdateCategory(id int64, p UpdateCategoryParams) (domain.Category, error) {
	if p.Name.Present() {
		res, err := s.db.Exec(`UPDATE categories SET name = ? WHERE id = ?`, p.Name.Value(), id)
		if err != nil {
			return domain.Category{}, mapErr(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.Category{}, ErrNotFound
		}
	}
	return s.Category(id)
}

func (s *SQLite) DeleteCategory(id int64) (bool, error) { return deleteRow(s.db, "categories", id) }

// ---------- products ----------

const productCols = `id, store_id, category_id, name, description, image_url, price, active, created_at, updated_at`

func (s *SQLite) Product(id int64) (domain.Product, error) {
	var p domain.Product
	err := s.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	return p, mapErr(err)
}

func (s *SQLite) Products(f ProductFilter) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if f.StoreID != 0 {
		where += ` AND store_id = ?`
		args = append(args, f.StoreID)
	}
	if f.CategoryID != 0 {
		where += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.ActiveOnly {
		where += ` AND active = 1`
	}
	out := []domain.Product{}
	err := s.db.Select(&out, `SELECT `+productCols+` FROM products WHERE `+where+` ORDER BY id`, args...)
	return out, err
}

func (s *SQLite) CreateProduct(p CreateProductParams) (domain.Product, error) {
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	now := time.Now()
	res, err := s.db.Exec(`
	  INSERT INTO products(store_id, category_id, name, description, image_url, price, active, created_at, updated_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.StoreID, p.CategoryID, p.Name, p.Description, p.ImageURL, p.Price, active, now, now)
	if err != nil {
		return domain.Product{}, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Product{}, err
	}
	return s.Product(id)
}

func (s *SQLite) UpdateProduct(id int64, p UpdateProductParams) (domain.Product, error) {
	set := []string{}
	args := []any{}
	addSet(&set, &args, "name", p.Name)
	addSet(&set, &args, "description", p.Description)
	addSet(&set, &args, "image_url", p.ImageURL)
	addSet(&set, &args, "price", p.Price)
	addSet(&set, &args, "category_id", p.CategoryID)
	addSet(&set, &args, "active", p.Active)
	set = append(set, "updated_at = ?")
	args = append(args, time.Now(), id)
	res, err := s.db.Exec(`UPDATE products SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return domain.Product{}, mapErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Product{}, ErrNotFound
	}
	return s.Product(id)
}

func (s *SQLite) DeleteProduct(id int64) (bool, error) { return deleteRow(s.db, "products", id) }

// ---------- shop owners ----------

const ownerCols = `id, user_id, store_id, subscription_status, subscription_expires_at,
  stripe_customer_id, stripe_subscription_id`

func (s *SQLite) ShopOwner(id int64) (domain.ShopOwner, error) {
	var o domain.ShopOwner
	err := s.db.Get(&o, `SELECT `+ownerCols+` FROM shop_owners WHERE id = ?`, id)
	return o, mapErr(err)
}

func (s *SQLite) ShopOwnerByUserID(userID int64) (domain.ShopOwner, error) {
	var o domain.ShopOwner
	err := s.db.Get(&o, `SELECT `+ownerCols+` FROM shop_owners WHERE user_id = ?`, userID)
	return o, mapErr(err)
}

func (s *SQLite) CreateShopOwner(p CreateShopOwnerParams) (domain.ShopOwner, error) {
	status := p.SubscriptionStatus
	if status == "" {
		status = domain.SubscriptionTrial
	}
	res, err := s.db.Exec(`
	  INSERT INTO shop_owners(user_id, store_id, subscription_status, subscription_expires_at)
	  VALUES(?, ?, ?, ?)`,
		p.UserID, p.StoreID, status, p.SubscriptionExpiresAt)
	if err != nil {
		return domain.ShopOwner{}, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.ShopOwner{}, err
	}
	return s.ShopOwner(id)
}

func (s *SQLite) UpdateShopOwner(id int64, p UpdateShopOwnerParams) (domain.ShopOwner, error) {
	set := []string{}
	args := []any{}
	addSet(&set, &args, "subscription_status", p.SubscriptionStatus)
	addSet(&set, &args, "subscription_expires_at", p.SubscriptionExpiresAt)
	addSet(&set, &args, "stripe_customer_id", p.StripeCustomerID)
	addSet(&set, &args, "stripe_subscription_id", p.StripeSubscriptionID)
	if len(set) > 0 {
		args = append(args, id)
		res, err := s.db.Exec(`UPDATE shop_owners SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return domain.ShopOwner{}, mapErr(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ShopOwner{}, ErrNotFound
		}
	}
	return s.ShopOwner(id)
}

func (s *SQLite) UpdateStripeCustomerID(userID int64, stripeCustomerID string) (domain.ShopOwner, error) {
	o, err := s.ShopOwnerByUserID(userID)
	if err != nil {
		return domain.ShopOwner{}, fmt.Errorf("billing: no shop owner for user %d", userID)
	}
	return s.UpdateShopOwner(o.ID, UpdateShopOwnerParams{
		StripeCustomerID: Set(stripeCustomerID),
	})
}

func (s *SQLite) UpdateStripeInfo(userID int64, stripeCustomerID, stripeSubscriptionID string) (domain.ShopOwner, error) {
	o, err := s.ShopOwnerByUserID(userID)
	if err != nil {
		return domain.ShopOwner{}, fmt.Errorf("billing: no shop owner for user %d", userID)
	}
	return s.UpdateShopOwner(o.ID, UpdateShopOwnerParams{
		StripeCustomerID:      Set(stripeCustomerID),
		StripeSubscriptionID:  Set(stripeSubscriptionID),
		SubscriptionStatus:    Set(domain.SubscriptionActive),
		SubscriptionExpiresAt: Set(time.Now().AddDate(0, 0, 30)),
	})
}

func (s *SQLite) DeleteShopOwner(id int64) (bool, error) { return deleteRow(s.db, "shop_owners", id) }

// ---------- customers ----------

func (s *SQLite) Customer(id int64) (domain.Customer, error) {
	var c domain.Customer
	err := s.db.Get(&c, `SELECT id, user_id, address, phone FROM customers WHERE id = ?`, id)
	return c, mapErr(err)
}

func (s *SQLite) CustomerByUserID(userID int64) (domain.Customer, error) {
	var c domain.Customer
	err := s.db.Get(&c, `SELECT id, user_id, address, phone FROM customers WHERE user_id = ?`, userID)
	return c, mapErr(err)
}

func (s *SQLite) CreateCustomer(p CreateCustomerParams) (domain.Customer, error) {
	res, err := s.db.Exec(`INSERT INTO customers(user_id, address, phone) VALUES(?, ?, ?)`,
		p.UserID, p.Address, p.Phone)
	if err != nil {
		return domain.Customer{}, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Customer{}, err
	}
	return s.Customer(id)
}

func (s *SQLite) UpdateCustomer(id int64, p UpdateCustomerParams) (domain.Customer, error) {
	set := []string{}
	args := []any{}
	addSet(&set, &args, "address", p.Address)
	addSet(&set, &args, "phone", p.Phone)
	if len(set) > 0 {
		args = append(args, id)
		res, err := s.db.Exec(`UPDATE customers SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return domain.Customer{}, mapErr(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.Customer{}, ErrNotFound
		}
	}
	return s.Customer(id)
}

func (s *SQLite) DeleteCustomer(id int64) (bool, error) { return deleteRow(s.db, "customers", id) }

// ---------- carts ----------

const cartCols = `id, customer_id, store_id, created_at, updated_at`

func (s *SQLite) Cart(id int64) (domain.Cart, error) {
	var c domain.Cart
	err := s.db.Get(&c, `SELECT `+cartCols+` FROM carts WHERE id = ?`, id)
	return c, mapErr(err)
}

func (s *SQLite) CartByCustomer(customerID, storeID int64) (domain.Cart, error) {
	var c domain.Cart
	err := s.db.Get(&c, `SELECT `+cartCols+` FROM carts WHERE customer_id = ? AND store_id = ? ORDER BY id LIMIT 1`,
		customerID, storeID)
	return c, mapErr(err)
}

func (s *SQLite) CreateCart(p CreateCartParams) (domain.Cart, error) {
	now := time.Now()
	res, err := s.db.Exec(`INSERT INTO carts(customer_id, store_id, created_at, updated_at) VALUES(?, ?, ?, ?)`,
		p.CustomerID, p.StoreID, now, now)
	if err != nil {
		return domain.Cart{}, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Cart{}, err
	}
	return s.Cart(id)
}

func (s *SQLite) TouchCart(id int64) error {
	res, err := s.db.Exec(`UPDATE carts SET updated_at = ? WHERE id = ?`, time.Now(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLite) DeleteCart(id int64) (bool, error) {
	if _, err := s.db.Exec(`DELETE FROM cart_items WHERE cart_id = ?`, id); err != nil {
		return false, err
	}
	return deleteRow(s.db, "carts", id)
}

// ---------- cart items ----------

func (s *SQLite) CartItem(id int64) (domain.CartItem, error) {
	var it domain.CartItem
	err := s.db.Get(&it, `SELECT id, cart_id, product_id, quantity FROM cart_items WHERE id = ?`, id)
	return it, mapErr(err)
}

func (s *SQLite) CartItems(cartID int64) ([]domain.CartItem, error) {
	out := []domain.CartItem{}
	err := s.db.Select(&out, `SELECT id, cart_id, product_id, quantity FROM cart_items WHERE cart_id = ? ORDER BY id`, cartID)
	return out, err
}

func (s *SQLite) CreateCartItem(p CreateCartItemParams) (domain.CartItem, error) {
	res, err := s.db.Exec(`INSERT INTO cart_items(cart_id, product_id, quantity) VALUES(?, ?, ?)`,
		p.CartID, p.ProductID, p.Quantity)
	if err != nil {
		return domain.CartItem{}, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.CartItem{}, err
	}
	return s.CartItem(id)
}

func (s *SQLite) UpdateCartItem(id int64, p UpdateCartItemParams) (domain.CartItem, error) {
	if p.Quantity.Present() {
		res, err := s.db.Exec(`UPDATE cart_items SET quantity = ? WHERE id = ?`, p.Quantity.Value(), id)
		if err != nil {
			return domain.CartItem{}, mapErr(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.CartItem{}, ErrNotFound
		}
	}
	return s.CartItem(id)
}

func (s *SQLite) DeleteCartItem(id int64) (bool, error) { return deleteRow(s.db, "cart_items", id) }

// ---------- orders ----------

const orderCols = `id, store_id, customer_id, customer_name, customer_phone, customer_address,
  delivery_method, notes, total, whatsapp_sent, created_at`

func (s *SQLite) Order(id int64) (domain.Order, error) {
	var o domain.Order
	err := s.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	return o, mapErr(err)
}

func (s *SQLite) Orders(storeID int64) ([]domain.Order, error) {
	out := []domain.Order{}
	if storeID == 0 {
		err := s.db.Select(&out, `SELECT `+orderCols+` FROM orders ORDER BY id`)
		return out, err
	}
	err := s.db.Select(&out, `SELECT `+orderCols+` FROM orders WHERE store_id = ? ORDER BY id`, storeID)
	return out, err
}

func (s *SQLite) OrdersByCustomer(customerID int64) ([]domain.Order, error) {
	out := []domain.Order{}
	err := s.db.Select(&out, `SELECT `+orderCols+` FROM orders WHERE customer_id = ? ORDER BY id`, customerID)
	return out, err
}

func (s *SQLite) CreateOrder(p CreateOrderParams) (domain.Order, error) {
	res, err := s.db.Exec(`
	  INSERT INTO orders(store_id, customer_id, customer_name, customer_phone, customer_address,
	    delivery_method, notes, total, whatsapp_sent, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, 0, ?)`,
		p.StoreID, p.CustomerID, p.CustomerName, p.CustomerPhone, p.CustomerAddress,
		p.DeliveryMethod, p.Notes, p.Total, time.Now())
	if err != nil {
		return domain.Order{}, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Order{}, err
	}
	return s.Order(id)
}

func (s *SQLite) UpdateOrder(id int64, p UpdateOrderParams) (domain.Order, error) {
	set := []string{}
	args := []any{}
	addSet(&set, &args, "whatsapp_sent", p.WhatsAppSent)
	addSet(&set, &args, "notes", p.Notes)
	if len(set) > 0 {
		args = append(args, id)
		res, err := s.db.Exec(`UPDATE orders SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return domain.Order{}, mapErr(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.Order{}, ErrNotFound
		}
	}
	return s.Order(id)
}

func (s *SQLite) DeleteOrder(id int64) (bool, error) { return deleteRow(s.db, "orders", id) }

// ---------- order items ----------

func (s *SQLite) OrderItems(orderID int64) ([]domain.OrderItem, error) {
	out := []domain.OrderItem{}
	err := s.db.Select(&out, `SELECT id, order_id, product_name, price, quantity FROM order_items WHERE order_id = ? ORDER BY id`, orderID)
	return out, err
}

func (s *SQLite) CreateOrderItem(p CreateOrderItemParams) (domain.OrderItem, error) {
	res, err := s.db.Exec(`INSERT INTO order_items(order_id, product_name, price, quantity) VALUES(?, ?, ?, ?)`,
		p.OrderID, p.ProductName, p.Price, p.Quantity)
	if err != nil {
		return domain.OrderItem{}, mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.OrderItem{}, err
	}
	var it domain.OrderItem
	err = s.db.Get(&it, `SELECT id, order_id, product_name, price, quantity FROM order_items WHERE id = ?`, id)
	return it, mapErr(err)
}
