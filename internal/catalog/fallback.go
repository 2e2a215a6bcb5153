package catalog

import (
	"context"
	"log/slog"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

// Fallback serves the primary's listing, or the static catalog when the
// primary fails. The static provider is called directly, once.
type Fallback struct {
	primary Provider
	static  *Static
	log     *slog.Logger
}

func NewFallback(primary Provider, static *Static, log *slog.Logger) *Fallback {
	return &Fallback{primary: primary, static: static, log: log}
}

func (f *Fallback) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := f.primary.ListProducts(ctx)
	if err == nil {
		return products, nil
	}
	f.log.WarnContext(ctx, "catalog unavailable, serving sample products", "error", err)
	return f.static.ListProducts(ctx)
}

func (f *Fallback) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := f.primary.ListCategories(ctx)
	if err == nil {
		return categories, nil
	}
	f.log.WarnContext(ctx, "catalog categories unavailable, serving defaults", "error", err)
	return f.static.ListCategories(ctx)
}
