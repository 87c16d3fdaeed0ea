// Package catalog is the reconciler's view of the catalog of record. The
// storefront normally runs against its own sqlite-backed catalog (Local);
// the HTTP client exists for deployments where the sweets API is a separate
// service.
package catalog

import (
	"context"
	"errors"

	"sweetnirwana/internal/domain"
	"sweetnirwana/internal/repos"
)

// ErrUnavailable wraps any transport-level failure talking to a remote
// catalog, so callers can distinguish "the sync failed" from business errors.
var ErrUnavailable = errors.New("catalog unavailable")

type Gateway interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	// SetStock writes an absolute quantity, never a delta.
	SetStock(ctx context.Context, id string, quantity int) error
}

// Local serves the catalog straight from the product repo.
type Local struct {
	Prods *repos.ProductRepo
}

func NewLocal(prods *repos.ProductRepo) *Local { return &Local{Prods: prods} }

func (g *Local) List(context.Context) ([]domain.Product, error) {
	return g.Prods.List()
}

func (g *Local) Get(_ context.Context, id string) (domain.Product, error) {
	return g.Prods.Get(id)
}

func (g *Local) SetStock(_ context.Context, id string, quantity int) error {
	return g.Prods.SetStock(id, quantity)
}
