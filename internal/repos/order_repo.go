package repos

import "github.com/jmoiron/sqlx"

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

type OrderRow struct {
	ID        string `db:"id"`
	SessionID string `db:"session_id"`
	Customer  string `db:"customer_name"`
	Email     string `db:"customer_email"`
	Address   string `db:"address"`
	City      string `db:"city"`
	Zip       string `db:"zip"`
	Total     string `db:"total"`
	Status    string `db:"status"`
	CreatedAt string `db:"created_at"`
}

type OrderItemRow struct {
	ProductID string `db:"product_id"`
	Name      string `db:"name"`
	Qty       int    `db:"qty"`
	Price     string `db:"price"`
}

type Shipping struct {
	Name, Email, Address, City, Zip string
}

// Create writes the order header and its line items in one transaction.
func (r *OrderRepo) Create(orderID, sessionID string, ship Shipping, total string, items []OrderItemRow) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, session_id, customer_name, customer_email, address, city, zip, total, status, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, 'PLACED', CURRENT_TIMESTAMP)
	`, orderID, sessionID, ship.Name, ship.Email, ship.Address, ship.City, ship.Zip, total); err != nil {
		return err
	}

	for _, it := range items {
		if _, err := tx.Exec(`
		  INSERT INTO order_items(order_id, product_id, name, qty, price)
		  VALUES(?, ?, ?, ?, ?)
		`, orderID, it.ProductID, it.Name, it.Qty, it.Price); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *OrderRepo) Get(orderID string) (OrderRow, []OrderItemRow, error) {
	var o OrderRow
	if err := r.db.Get(&o, `
		SELECT id, session_id, customer_name, customer_email, address, city, zip, total, status, created_at
		FROM orders
		WHERE id = ?
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	var items []OrderItemRow
	if err := r.db.Select(&items, `
		SELECT product_id, name, qty, price
		FROM order_items
		WHERE order_id = ?
		ORDER BY name
	`, orderID); err != nil {
		return OrderRow{}, nil, err
	}

	return o, items, nil
}

// ListBySession returns orders placed from a given session, newest first.
func (r *OrderRepo) ListBySession(sessionID string) ([]OrderRow, error) {
	var out []OrderRow
	err := r.db.Select(&out, `
		SELECT id, session_id, customer_name, customer_email, address, city, zip, total, status, created_at
		FROM orders
		WHERE session_id = ?
		ORDER BY datetime(created_at) DESC
	`, sessionID)
	return out, err
}

func (r *OrderRepo) ListLatest(limit int) ([]OrderRow, error) {
	if limit <= 0 {
		limit = 100
	}
	var out []OrderRow
	err := r.db.Select(&out, `
		SELECT id, session_id, customer_name, customer_email, address, city, zip, total, status, created_at
		FROM orders
		ORDER BY datetime(created_at) DESC
		LIMIT ?
	`, limit)
	return out, err
}
