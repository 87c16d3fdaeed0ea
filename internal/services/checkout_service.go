package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"sweetnirwana/internal/cart"
	"sweetnirwana/internal/catalog"
	"sweetnirwana/internal/repos"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	// ErrRemoteSync means a stock write to the catalog of record failed.
	// The cart is left intact so the caller can retry.
	ErrRemoteSync = errors.New("remote stock sync failed")
)

// CheckoutService turns a cart into an order. Stock reconciliation happens
// here and only here: one absolute quantity write per line, computed from
// the catalog's current value. On any write failure the cart survives and
// the error surfaces for retry; the periodic catalog refresh squares away
// whatever was already written.
type CheckoutService struct {
	Cart    *CartService
	Catalog catalog.Gateway
	Orders  *repos.OrderRepo
}

func NewCheckoutService(carts *CartService, gw catalog.Gateway, orders *repos.OrderRepo) *CheckoutService {
	return &CheckoutService{Cart: carts, Catalog: gw, Orders: orders}
}

// CompleteOrder validates every line against fresh stock, writes the new
// absolute quantities, records the order, then clears the cart and its
// snapshot.
func (s *CheckoutService) CompleteOrder(ctx context.Context, sid string, ship repos.Shipping) (string, error) {
	c := s.Cart.load(ctx, sid)
	if c.IsEmpty() {
		return "", ErrEmptyCart
	}

	total, err := c.TotalPrice()
	if err != nil {
		return "", err
	}

	lines := c.Lines()

	// First pass: re-check every line against the catalog's current stock
	// before touching anything, so a stale cart fails cleanly.
	newQty := make(map[string]int, len(lines))
	for _, l := range lines {
		p, err := s.Catalog.Get(ctx, l.ID)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrRemoteSync, err)
		}
		if p.Quantity < l.CartQuantity {
			return "", fmt.Errorf("%w: %s has %d left, cart holds %d",
				cart.ErrStockExceeded, l.ID, p.Quantity, l.CartQuantity)
		}
		newQty[l.ID] = p.Quantity - l.CartQuantity
	}

	// Second pass: write the absolute quantities. A failure here leaves the
	// cart intact; lines already written stay written and the next catalog
	// read shows the reconciled numbers.
	for _, l := range lines {
		if err := s.Catalog.SetStock(ctx, l.ID, newQty[l.ID]); err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrRemoteSync, l.ID, err)
		}
	}

	orderID := uuid.NewString()
	items := make([]repos.OrderItemRow, 0, len(lines))
	for _, l := range lines {
		items = append(items, repos.OrderItemRow{
			ProductID: l.ID, Name: l.Name, Qty: l.CartQuantity, Price: l.Price,
		})
	}
	if err := s.Orders.Create(orderID, sid, ship, total.String(), items); err != nil {
		return "", err
	}

	c.Clear()
	s.Cart.persist(ctx, sid, c)
	return orderID, nil
}

// CancelCheckout abandons the checkout. Nothing was reserved remotely, so
// this only clears the cart and its persisted snapshot.
func (s *CheckoutService) CancelCheckout(ctx context.Context, sid string) error {
	c := s.Cart.load(ctx, sid)
	c.Clear()
	s.Cart.persist(ctx, sid, c)
	return nil
}
