package repos

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"sweetnirwana/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) List() ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
	  SELECT
	    id, name, category, description, price, quantity, COALESCE(image_url,'') AS image_url,
	    created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  ORDER BY created_at DESC, id
	`)
	return out, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT
	    id, name, category, description, price, quantity, COALESCE(image_url,'') AS image_url,
	    created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE id = ?
	`, id)
	return p, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, name, category, description, price, quantity, image_url, created_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`, p.ID, p.Name, p.Category, p.Description, p.Price, p.Quantity, p.ImageURL)
	return err
}

func (r *ProductRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("product %s not found", id)
	}
	return nil
}

// SetStock writes an absolute quantity. The wire contract carries absolute
// values, not deltas, so concurrent callers cannot compound lost updates.
func (r *ProductRepo) SetStock(id string, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("stock for %s must be non-negative, got %d", id, quantity)
	}
	res, err := r.db.Exec(`
	  UPDATE products
	  SET quantity = ?, updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, quantity, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("product %s not found", id)
	}
	return nil
}
