package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (warehouses/products/stock/customers/accounts)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Warehouses
CREATE TABLE IF NOT EXISTS warehouses(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_warehouses_name_nocase ON warehouses(LOWER(name));

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  sku TEXT NOT NULL UNIQUE,
  selling_price NUMERIC NOT NULL CHECK (selling_price >= 0),
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_name ON products(LOWER(name));

-- Stock, one row per (product, warehouse, batch)
CREATE TABLE IF NOT EXISTS stock(
  product_id   TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  warehouse_id TEXT NOT NULL REFERENCES warehouses(id) ON DELETE CASCADE,
  batch_number TEXT NOT NULL DEFAULT '',
  qty INTEGER NOT NULL DEFAULT 0 CHECK (qty >= 0),
  updated_at TEXT,
  PRIMARY KEY(product_id, warehouse_id, batch_number)
);
CREATE INDEX IF NOT EXISTS idx_stock_warehouse ON stock(warehouse_id);

-- Customers
CREATE TABLE IF NOT EXISTS customers(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  phone TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Payment accounts (till, bank, wallet)
CREATE TABLE IF NOT EXISTS payment_accounts(
  code TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  method TEXT NOT NULL CHECK (method IN ('cash','bank','mobile-wallet'))
);

-- Sales
CREATE TABLE IF NOT EXISTS sales(
  id TEXT PRIMARY KEY,
  branch_id TEXT NOT NULL,
  customer_id TEXT NOT NULL REFERENCES customers(id),
  discount_type TEXT NOT NULL CHECK (discount_type IN ('fixed','percentage')),
  discount_value NUMERIC NOT NULL DEFAULT 0,
  tax_percentage NUMERIC NOT NULL DEFAULT 0,
  subtotal NUMERIC NOT NULL,
  total NUMERIC NOT NULL,
  paid_amount NUMERIC NOT NULL DEFAULT 0,
  due_amount NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'DUE',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_sales_created_at ON sales(created_at);
CREATE INDEX IF NOT EXISTS idx_sales_customer ON sales(customer_id);

CREATE TABLE IF NOT EXISTS sale_items(
  sale_id TEXT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  warehouse_id TEXT NOT NULL REFERENCES warehouses(id),
  qty INTEGER NOT NULL CHECK (qty >= 1),
  unit_price NUMERIC NOT NULL,
  PRIMARY KEY (sale_id, product_id, warehouse_id)
);

CREATE TABLE IF NOT EXISTS sale_payments(
  sale_id TEXT NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
  method TEXT NOT NULL CHECK (method IN ('cash','bank','mobile-wallet')),
  amount NUMERIC NOT NULL CHECK (amount >= 0),
  account_code TEXT NOT NULL REFERENCES payment_accounts(code)
);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('OPERATOR','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM warehouses`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo warehouses/products/stock/customers/accounts")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO warehouses(id,name) VALUES
	  ('wh-main','Main Warehouse'),
	  ('wh-outlet','Outlet Store')`)

	tx.MustExec(`INSERT INTO products(id,name,sku,selling_price) VALUES
	  ('prod-rice-5kg','Premium Rice 5kg','RICE-5KG',8.50),
	  ('prod-oil-1l','Soybean Oil 1L','OIL-1L',3.25),
	  ('prod-sugar-1kg','Sugar 1kg','SUGAR-1KG',1.10),
	  ('prod-tea-500g','Black Tea 500g','TEA-500G',6.75)`)

	tx.MustExec(`INSERT INTO stock(product_id,warehouse_id,batch_number,qty) VALUES
	  ('prod-rice-5kg','wh-main','B-2401',40),
	  ('prod-rice-5kg','wh-outlet','B-2402',6),
	  ('prod-oil-1l','wh-main','B-2388',25),
	  ('prod-sugar-1kg','wh-main','B-2375',0),
	  ('prod-sugar-1kg','wh-outlet','B-2391',12),
	  ('prod-tea-500g','wh-main','B-2399',9)`)

	tx.MustExec(`INSERT INTO customers(id,name,phone) VALUES
	  ('cus-walkin','Walk-in Customer',''),
	  ('cus-rahim','Rahim Traders','+8801711000001'),
	  ('cus-karim','Karim Store','+8801711000002')`)

	tx.MustExec(`INSERT INTO payment_accounts(code,name,method) VALUES
	  ('CASH-01','Front Till','cash'),
	  ('BANK-01','City Bank Current','bank'),
	  ('WALLET-01','bKash Merchant','mobile-wallet')`)

	return tx.Commit()
}

// seedUsers ensures an operator and an admin exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-sadia", "sadia@salepos.test", "Sadia", "OPERATOR", "Passw0rd!"),
		mk("u-farid", "farid@salepos.test", "Farid", "OPERATOR", "Passw0rd!"),
		mk("u-admin", "admin@salepos.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
