package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/circuitbreaker"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

// ProductStore is the slice of the repository the catalog reads from.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.ProductCategory, error)
}

type SQL struct {
	store      ProductStore
	log        *slog.Logger
	breaker    *circuitbreaker.Breaker[[]domain.Product]
	categories *circuitbreaker.Breaker[[]domain.ProductCategory]
}

// NewSQL reads through a breaker so a dead database fails fast.
func NewSQL(store ProductStore, log *slog.Logger) *SQL {
	return &SQL{
		store:      store,
		log:        log,
		breaker:    circuitbreaker.New[[]domain.Product](circuitbreaker.DefaultSettings("catalog", log)),
		categories: circuitbreaker.New[[]domain.ProductCategory](circuitbreaker.DefaultSettings("catalog-categories", log)),
	}
}

func (s *SQL) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.breaker.Execute(func() ([]domain.Product, error) {
		return s.store.ListProducts(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("sql catalog: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, p := range rows {
		if !p.Valid() {
			s.log.WarnContext(ctx, "dropping malformed product row", "product_id", p.ID, "category", p.Category.String())
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// ListCategories returns the known tags that have a row in the categories
// table, in display order. Products only carry known tags, so rows naming
// anything else are not storefront categories. A row matches a tag by id
// (seeded rows) or by name (rows created in the admin panel get uuid ids).
func (s *SQL) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.categories.Execute(func() ([]domain.ProductCategory, error) {
		return s.store.ListCategories(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("sql catalog categories: %w", err)
	}
	present := make(map[domain.Category]bool, len(rows))
	for _, row := range rows {
		present[domain.Category(row.ID)] = true
		present[domain.Category(strings.ToLower(strings.TrimSpace(row.Name)))] = true
	}

	out := make([]domain.Category, 0, len(present))
	for _, c := range domain.Categories() {
		if present[c] {
			out = append(out, c)
		}
	}
	return out, nil
}
