package services

import (
	"context"

	"sweetnirwana/internal/catalog"
	"sweetnirwana/internal/domain"
)

type CatalogService struct {
	Catalog catalog.Gateway
}

func NewCatalogService(gw catalog.Gateway) *CatalogService {
	return &CatalogService{Catalog: gw}
}

type ProductView struct {
	domain.Product
	Availability domain.Availability `json:"availability"`
}

func (s *CatalogService) List(ctx context.Context) ([]ProductView, error) {
	products, err := s.Catalog.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		out = append(out, ProductView{Product: p, Availability: domain.AvailabilityFor(p.Quantity)})
	}
	return out, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (ProductView, error) {
	p, err := s.Catalog.Get(ctx, id)
	if err != nil {
		return ProductView{}, err
	}
	return ProductView{Product: p, Availability: domain.AvailabilityFor(p.Quantity)}, nil
}

func (s *CatalogService) CheckAvailability(ctx context.Context, productID string) (domain.Availability, error) {
	p, err := s.Catalog.Get(ctx, productID)
	if err != nil {
		return domain.Availability{}, err
	}
	return domain.AvailabilityFor(p.Quantity), nil
}
