package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Category    string `db:"category" json:"category"`
	Description string `db:"description" json:"description"`
	Price       string `db:"price" json:"price"` // decimal string, e.g. "12.50"
	Quantity    int    `db:"quantity" json:"quantity"`
	ImageURL    string `db:"image_url" json:"imageUrl,omitempty"`
	CreatedAt   string `db:"created_at" json:"-"`
	UpdatedAt   string `db:"updated_at" json:"-"`
}

// PriceValue parses the decimal price string. Malformed prices are a
// data-integrity fault and must surface as errors, never as zero.
func (p Product) PriceValue() (decimal.Decimal, error) {
	return decimal.NewFromString(p.Price)
}

// CartLine is a product reservation held in a cart. CartQuantity never
// exceeds the product's last-known stock at the time it was set.
type CartLine struct {
	Product
	CartQuantity int `json:"cartQuantity"`
}

type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty"`
}

// AvailabilityFor derives the storefront stock badge from a quantity.
func AvailabilityFor(qty int) Availability {
	status := "OUT_OF_STOCK"
	switch {
	case qty >= 5:
		status = "IN_STOCK"
	case qty > 0:
		status = "LOW_STOCK"
	}
	return Availability{Status: status, Qty: qty}
}

// Capability is the explicit authorization handed to handlers and services
// instead of an ambient admin flag.
type Capability struct {
	IsAdmin bool
}
