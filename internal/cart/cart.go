// Package cart implements the client-side cart over the last-known product
// catalog. All operations are local: the stock ceiling is enforced against
// the catalog snapshot the caller passes in, and remote stock is touched
// only at order completion (see services.CheckoutService).
package cart

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"sweetnirwana/internal/domain"
)

var (
	// ErrOutOfStock rejects adds for products with no stock at all.
	ErrOutOfStock = errors.New("product is out of stock")
	// ErrStockExceeded rejects operations that would push a line's quantity
	// above the product's known stock.
	ErrStockExceeded = errors.New("requested quantity exceeds available stock")
	// ErrMalformedPrice flags a price string that cannot be parsed. It is a
	// data-integrity fault and is never silently treated as zero.
	ErrMalformedPrice = errors.New("malformed product price")
)

// Cart is an ordered set of lines, one per product id. The zero value is
// usable. Cart is not safe for concurrent use; callers serialize access
// (one cart per session, one operation in flight).
type Cart struct {
	lines []domain.CartLine
}

// New builds a cart from existing lines, e.g. a rehydrated snapshot.
// Line order is preserved; duplicate product ids collapse onto the first.
func New(lines []domain.CartLine) *Cart {
	c := &Cart{}
	for _, l := range lines {
		if l.CartQuantity < 1 {
			continue
		}
		if i := c.index(l.ID); i >= 0 {
			c.lines[i].CartQuantity += l.CartQuantity
			continue
		}
		c.lines = append(c.lines, l)
	}
	return c
}

func (c *Cart) index(productID string) int {
	for i := range c.lines {
		if c.lines[i].ID == productID {
			return i
		}
	}
	return -1
}

// Add puts n units of p in the cart, stacking onto an existing line.
// The stock ceiling is checked against p.Quantity as passed in.
func (c *Cart) Add(p domain.Product, n int) error {
	if n < 1 {
		n = 1
	}
	if p.Quantity <= 0 {
		return ErrOutOfStock
	}
	current := c.Quantity(p.ID)
	if current+n > p.Quantity {
		return fmt.Errorf("%w: have %d in cart, %d in stock", ErrStockExceeded, current, p.Quantity)
	}
	if i := c.index(p.ID); i >= 0 {
		c.lines[i].CartQuantity += n
		return nil
	}
	c.lines = append(c.lines, domain.CartLine{Product: p, CartQuantity: n})
	return nil
}

// SetQuantity replaces a line's quantity. n <= 0 removes the line.
// The product carries the current known stock for the ceiling check.
func (c *Cart) SetQuantity(p domain.Product, n int) error {
	if n <= 0 {
		c.Remove(p.ID)
		return nil
	}
	if n > p.Quantity {
		return fmt.Errorf("%w: want %d, %d in stock", ErrStockExceeded, n, p.Quantity)
	}
	if i := c.index(p.ID); i >= 0 {
		c.lines[i].Product = p
		c.lines[i].CartQuantity = n
		return nil
	}
	c.lines = append(c.lines, domain.CartLine{Product: p, CartQuantity: n})
	return nil
}

// Remove drops the line for productID. No-op when absent.
func (c *Cart) Remove(productID string) {
	if i := c.index(productID); i >= 0 {
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
	}
}

// Quantity returns the cart quantity for productID, 0 when absent.
func (c *Cart) Quantity(productID string) int {
	if i := c.index(productID); i >= 0 {
		return c.lines[i].CartQuantity
	}
	return 0
}

// TotalPrice sums price*quantity across all lines.
func (c *Cart) TotalPrice() (decimal.Decimal, error) {
	total := decimal.Zero
	for _, l := range c.lines {
		price, err := l.PriceValue()
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: product %s price %q", ErrMalformedPrice, l.ID, l.Price)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(l.CartQuantity))))
	}
	return total, nil
}

// TotalItems is the unit count across all lines.
func (c *Cart) TotalItems() int {
	n := 0
	for _, l := range c.lines {
		n += l.CartQuantity
	}
	return n
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

// Clear empties the cart.
func (c *Cart) Clear() { c.lines = nil }
