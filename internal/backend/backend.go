// Package backend decides once, at startup, whether the shop runs against
// a database (live) or on sample data (demo), and builds the matching
// catalog, sinks and admin store.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/admin"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/cache"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/catalog"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/checkout"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/config"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/contact"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/repository"
)

type Mode string

const (
	ModeLive Mode = "live"
	ModeDemo Mode = "demo"
)

const connectTimeout = 5 * time.Second

type Backend struct {
	Mode     Mode
	Catalog  catalog.Provider
	Orders   checkout.OrderSink
	Contacts contact.Sink
	Admin    admin.Store
	// CatalogCache is nil unless the live catalog is cached in Redis.
	CatalogCache admin.CacheInvalidator
	// Outbox is nil in demo mode.
	Outbox *repository.Repository

	closers []func() error
}

// Open never fails: anything that keeps the database from being usable
// drops the shop into demo mode with a warning.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) *Backend {
	if !cfg.Database.Configured() {
		log.InfoContext(ctx, "no database configured, running in demo mode")
		return Demo()
	}

	repo, err := openRepository(ctx, cfg.Database)
	if err != nil {
		log.WarnContext(ctx, "database unavailable, running in demo mode",
			"driver", cfg.Database.Driver, "error", err)
		return Demo()
	}

	b := &Backend{
		Mode:     ModeLive,
		Orders:   NewOrderSink(repo, log),
		Contacts: NewContactSink(repo, log),
		Admin:    repo,
		Outbox:   repo,
		closers:  []func() error{repo.Close},
	}

	var primary catalog.Provider = catalog.NewSQL(repo, log)
	if cached, closeCache := openCatalogCache(ctx, cfg, primary, log); cached != nil {
		primary = cached
		b.CatalogCache = cached
		b.closers = append(b.closers, closeCache)
	}
	b.Catalog = catalog.NewFallback(primary, catalog.NewStatic(), log)

	log.InfoContext(ctx, "database connected, running in live mode", "driver", cfg.Database.Driver)
	return b
}

// Demo is the backend used without a database.
func Demo() *Backend {
	return &Backend{
		Mode:     ModeDemo,
		Catalog:  catalog.NewStatic(),
		Orders:   DemoOrderSink{},
		Contacts: DemoContactSink{},
		Admin:    admin.NewDemoStore(),
	}
}

func (b *Backend) Live() bool {
	return b.Mode == ModeLive
}

func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func openRepository(ctx context.Context, db config.Database) (*repository.Repository, error) {
	creds := &repository.Credentials{
		Driver:            db.Driver,
		Host:              db.Host,
		Port:              db.Port,
		User:              db.User,
		Password:          db.Password,
		DBName:            db.Name,
		Path:              db.Path,
		MigrationsDirPath: db.MigrationsDir,
	}

	repo, err := repository.NewRepository(creds)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := repo.Ping(pingCtx); err != nil {
		repo.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := repo.RunMigrations(creds); err != nil {
		repo.Close()
		return nil, err
	}
	return repo, nil
}

// openCatalogCache returns nil when caching is off or Redis is unreachable.
func openCatalogCache(ctx context.Context, cfg *config.Config, next catalog.Provider, log *slog.Logger) (*catalog.Cached, func() error) {
	if cfg.CatalogCacheTTL <= 0 || cfg.Redis.Addr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.WarnContext(ctx, "redis unavailable, catalog cache disabled", "addr", cfg.Redis.Addr, "error", err)
		client.Close()
		return nil, nil
	}

	return catalog.NewCached(next, cache.NewRedisCache(client, cfg.CatalogCacheTTL), log), client.Close
}
