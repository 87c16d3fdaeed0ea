package services

import (
	"context"
	"errors"
	"log"

	"sweetnirwana/internal/cart"
	"sweetnirwana/internal/catalog"
	"sweetnirwana/internal/store"
)

// CartService is the session-scoped reconciler: it rehydrates the cart
// snapshot, applies operations against fresh catalog stock, and persists
// the result. A failing snapshot store degrades to memory-only operation —
// the mutation still succeeds, durability is lost until the store recovers.
type CartService struct {
	Catalog   catalog.Gateway
	Snapshots store.SnapshotStore
}

func NewCartService(gw catalog.Gateway, snapshots store.SnapshotStore) *CartService {
	return &CartService{Catalog: gw, Snapshots: snapshots}
}

type CartView struct {
	Lines      []cartLineView `json:"lines"`
	TotalPrice string         `json:"totalPrice"`
	TotalItems int            `json:"totalItems"`
}

type cartLineView struct {
	ProductID    string `json:"productId"`
	Name         string `json:"name"`
	Price        string `json:"price"`
	CartQuantity int    `json:"cartQuantity"`
	Stock        int    `json:"stock"`
}

// load rehydrates the session's cart. A missing snapshot is an empty cart;
// a broken store or corrupt snapshot degrades to an empty in-memory cart
// with a warning rather than failing the request.
func (s *CartService) load(ctx context.Context, sid string) *cart.Cart {
	data, err := s.Snapshots.Load(ctx, sid)
	if errors.Is(err, store.ErrNoSnapshot) {
		return cart.New(nil)
	}
	if err != nil {
		log.Printf("[warn] cart snapshot load for %s: %v (continuing with empty cart)", sid, err)
		return cart.New(nil)
	}
	c, err := cart.DecodeSnapshot(data)
	if err != nil {
		log.Printf("[warn] cart snapshot decode for %s: %v (discarding)", sid, err)
		return cart.New(nil)
	}
	return c
}

// persist writes the cart back, deleting the key when the cart is empty.
// Store failures are logged, not surfaced: the in-memory state is already
// what the user was shown.
func (s *CartService) persist(ctx context.Context, sid string, c *cart.Cart) {
	if c.IsEmpty() {
		if err := s.Snapshots.Clear(ctx, sid); err != nil {
			log.Printf("[warn] cart snapshot clear for %s: %v", sid, err)
		}
		return
	}
	data, err := cart.EncodeSnapshot(c)
	if err != nil {
		log.Printf("[warn] cart snapshot encode for %s: %v", sid, err)
		return
	}
	if err := s.Snapshots.Save(ctx, sid, data); err != nil {
		log.Printf("[warn] cart snapshot save for %s: %v", sid, err)
	}
}

func (s *CartService) view(c *cart.Cart) (CartView, error) {
	total, err := c.TotalPrice()
	if err != nil {
		return CartView{}, err
	}
	lines := c.Lines()
	out := CartView{TotalPrice: total.String(), TotalItems: c.TotalItems(), Lines: make([]cartLineView, 0, len(lines))}
	for _, l := range lines {
		out.Lines = append(out.Lines, cartLineView{
			ProductID:    l.ID,
			Name:         l.Name,
			Price:        l.Price,
			CartQuantity: l.CartQuantity,
			Stock:        l.Quantity,
		})
	}
	return out, nil
}

func (s *CartService) View(ctx context.Context, sid string) (CartView, error) {
	return s.view(s.load(ctx, sid))
}

// Add reserves qty units of a product locally. Remote stock is untouched;
// the single reconciliation point is order completion.
func (s *CartService) Add(ctx context.Context, sid, productID string, qty int) (CartView, error) {
	p, err := s.Catalog.Get(ctx, productID)
	if err != nil {
		return CartView{}, err
	}
	c := s.load(ctx, sid)
	if err := c.Add(p, qty); err != nil {
		return CartView{}, err
	}
	s.persist(ctx, sid, c)
	return s.view(c)
}

func (s *CartService) SetQuantity(ctx context.Context, sid, productID string, qty int) (CartView, error) {
	p, err := s.Catalog.Get(ctx, productID)
	if err != nil {
		return CartView{}, err
	}
	c := s.load(ctx, sid)
	if err := c.SetQuantity(p, qty); err != nil {
		return CartView{}, err
	}
	s.persist(ctx, sid, c)
	return s.view(c)
}

func (s *CartService) Remove(ctx context.Context, sid, productID string) (CartView, error) {
	c := s.load(ctx, sid)
	c.Remove(productID)
	s.persist(ctx, sid, c)
	return s.view(c)
}

// Quantity is a pure lookup, 0 when the product is not in the cart.
func (s *CartService) Quantity(ctx context.Context, sid, productID string) int {
	return s.load(ctx, sid).Quantity(productID)
}
