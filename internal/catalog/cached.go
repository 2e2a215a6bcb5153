package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/cache"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/domain"
)

const productsFlight = "products"

// Cached is a cache-aside layer over another provider's product listing.
type Cached struct {
	next  Provider
	cache cache.CatalogCache
	log   *slog.Logger
	sfg   singleflight.Group // Prevents cache stampede

	// generation counts invalidations. A listing read before the latest
	// invalidation is never left in the cache.
	generation atomic.Uint64
}

func NewCached(next Provider, c cache.CatalogCache, log *slog.Logger) *Cached {
	return &Cached{next: next, cache: c, log: log}
}

func (c *Cached) ListProducts(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := c.sfg.Do(productsFlight, func() (interface{}, error) {
		products, err := c.cache.GetProducts(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			c.log.WarnContext(ctx, "catalog cache get failed", "error", err)
		}

		gen := c.generation.Load()
		products, err = c.next.ListProducts(ctx)
		if err != nil {
			return nil, err
		}

		go c.store(gen, products)

		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

func (c *Cached) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return c.next.ListCategories(ctx)
}

// store caches products read at generation gen. If an invalidation lands
// while the set is in flight the entry is dropped again.
func (c *Cached) store(gen uint64, products []domain.Product) {
	if c.generation.Load() != gen {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.cache.SetProducts(ctx, products); err != nil {
		c.log.Warn("catalog cache set failed", "error", err)
		return
	}
	if c.generation.Load() != gen {
		c.invalidate(ctx)
	}
}

// Invalidate drops the cached listing. Called after every product write.
func (c *Cached) Invalidate(ctx context.Context) {
	c.generation.Add(1)
	c.invalidate(ctx)
}

func (c *Cached) invalidate(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
	defer cancel()
	if err := c.cache.Invalidate(ctx); err != nil {
		c.log.WarnContext(ctx, "catalog cache invalidate failed", "error", err)
	}
}
