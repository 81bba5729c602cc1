package product

import (
	"context"
)

// Service defines catalog lookups used by cart, checkout and handlers.
type Service interface {
	GetProduct(ctx context.Context, id uint) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	Search(ctx context.Context, opts SearchOptions) ([]*Product, error)
	GetProductColors(ctx context.Context, productID uint) ([]*Color, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetProduct resolves one product or ErrProductNotFound.
func (s *service) GetProduct(ctx context.Context, id uint) (*Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *service) Search(ctx context.Context, opts SearchOptions) ([]*Product, error) {
	return s.repo.Search(ctx, opts)
}

func (s *service) GetProductColors(ctx context.Context, productID uint) ([]*Color, error) {
	return s.repo.GetProductColors(ctx, productID)
}
