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
	// Seed the sweets catalog if the DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure the mocked storefront accounts exist (idempotent; safe to run every start)
	if err := seedAccounts(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Sweets catalog. Price is kept as the decimal string the API serves;
-- arithmetic happens in code, never in SQL.
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  category TEXT NOT NULL,
  description TEXT,
  price TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  image_url TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_name     ON products(LOWER(name));

-- Completed orders
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  session_id TEXT,
  customer_name TEXT,
  customer_email TEXT,
  address TEXT,
  city TEXT,
  zip TEXT,
  total TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'PLACED',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);
CREATE INDEX IF NOT EXISTS idx_orders_session    ON orders(session_id);

CREATE TABLE IF NOT EXISTS order_items(
  order_id  TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL,
  name TEXT NOT NULL,
  qty INTEGER NOT NULL,
  price TEXT NOT NULL,
  PRIMARY KEY (order_id, product_id)
);

-- Mocked accounts & cookie sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
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
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo sweets catalog")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,category,description,price,quantity,image_url) VALUES
	  ('kaju-katli','Kaju Katli','barfi','Cashew fudge finished with silver leaf','12.50',20,'/media/products/kaju-katli.jpg'),
	  ('gulab-jamun','Gulab Jamun','syrup','Fried khoya dumplings soaked in rose syrup','8.00',15,'/media/products/gulab-jamun.jpg'),
	  ('jalebi','Jalebi','syrup','Crisp saffron spirals, served warm','4.25',30,'/media/products/jalebi.jpg'),
	  ('motichoor-ladoo','Motichoor Ladoo','ladoo','Fine boondi pearls bound with ghee','6.00',25,'/media/products/motichoor-ladoo.jpg'),
	  ('rasgulla','Rasgulla','syrup','Spongy chhena balls in light syrup','7.50',0,'/media/products/rasgulla.jpg'),
	  ('besan-barfi','Besan Barfi','barfi','Roasted gram flour squares','9.99',5,'/media/products/besan-barfi.jpg')`)

	return tx.Commit()
}

// seedAccounts ensures the hard-coded picker accounts exist (idempotent).
// There is no registration flow; these are the whole mocked auth surface.
func seedAccounts(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	accounts := []u{
		mk("u-priya", "priya@sweetnirwana.test", "Priya", "USER", "Passw0rd!"),
		mk("u-arjun", "arjun@sweetnirwana.test", "Arjun", "USER", "Passw0rd!"),
		mk("u-meera", "meera@sweetnirwana.test", "Meera", "USER", "Passw0rd!"),
		mk("u-admin", "admin@sweetnirwana.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range accounts {
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
