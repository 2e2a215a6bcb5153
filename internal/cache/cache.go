package cache

import (
	"context"
	"errors"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

// CatalogCache stores the product listing between catalog reads.
type CatalogCache interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	SetProducts(ctx context.Context, products []domain.Product) error
	Invalidate(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
