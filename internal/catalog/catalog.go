// Package catalog supplies the product listing shown on the storefront.
// Providers stack: SQL behind a breaker, behind a cache, behind a fallback
// to the built-in sample catalog.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

type Provider interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// FindProduct looks id up in the provider's current listing.
func FindProduct(ctx context.Context, p Provider, id string) (domain.Product, error) {
	products, err := p.ListProducts(ctx)
	if err != nil {
		return domain.Product{}, fmt.Errorf("list products: %w", err)
	}
	for _, product := range products {
		if product.ID == id {
			return product, nil
		}
	}
	return domain.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
}

// FilterByCategory keeps products tagged c. An empty c keeps everything.
func FilterByCategory(products []domain.Product, c domain.Category) []domain.Product {
	if c == "" {
		return products
	}
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}
