package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aseid1997/rejeb-arabian-mejlis/internal/admin"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/backend"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/checkout"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/config"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/contact"
	h "github.com/aseid1997/rejeb-arabian-mejlis/internal/http"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/logger"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/publisher"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/session"
	"github.com/aseid1997/rejeb-arabian-mejlis/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: cfg.ServiceName,
		Exporter:    cfg.TraceExporter,
		Endpoint:    cfg.OTLPEndpoint,
	})
	if err != nil {
		log.Error("failed to init tracing", "error", err)
		os.Exit(1)
	}

	b := backend.Open(ctx, cfg, log)
	defer b.Close()

	sessions := openSessionStore(ctx, cfg, log)
	defer sessions.Close()

	workflow := checkout.NewWorkflow(b.Orders,
		checkout.WithLogger(log),
		checkout.WithSubmitTimeout(cfg.CheckoutSubmitTimeout),
	)

	adminOpts := []admin.Option{admin.WithLogger(log)}
	if b.CatalogCache != nil {
		adminOpts = append(adminOpts, admin.WithCacheInvalidator(b.CatalogCache))
	}

	if b.Outbox != nil && len(cfg.KafkaBrokers) > 0 {
		poller := publisher.NewOutboxPoller(b.Outbox, log, cfg.KafkaTopic, cfg.KafkaBrokers...)
		defer poller.Close()
		go poller.Run(ctx)
		log.Info("outbox publisher started", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	}

	router := h.NewRouter(h.RouterConfig{
		Mode:               string(b.Mode),
		Catalog:            b.Catalog,
		Sessions:           session.NewManager(sessions),
		Checkout:           workflow,
		Contact:            contact.NewService(b.Contacts, log),
		Admin:              admin.NewService(b.Admin, adminOpts...),
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		SessionTTL:         cfg.SessionTTL,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		ServiceName:        cfg.ServiceName,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("storefront starting", "port", cfg.HTTPPort, "mode", b.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("failed to flush traces", "error", err)
	}

	log.Info("server exited")
}

// openSessionStore falls back to the in-memory store when the configured
// one is unreachable.
func openSessionStore(ctx context.Context, cfg *config.Config, log *slog.Logger) session.Store {
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(connectCtx).Err(); err != nil {
			client.Close()
			log.Warn("redis session store unavailable, using memory", "addr", cfg.Redis.Addr, "error", err)
			break
		}
		log.Info("sessions stored in redis", "addr", cfg.Redis.Addr)
		return session.NewRedisStore(client, cfg.SessionTTL)

	case config.SessionStoreMongo:
		db, err := session.ConnectMongoDB(connectCtx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			log.Warn("mongo session store unavailable, using memory", "error", err)
			break
		}
		store := session.NewMongoStore(db, cfg.SessionTTL)
		if err := store.CreateIndexes(connectCtx); err != nil {
			store.Close()
			log.Warn("failed to create session indexes, using memory", "error", err)
			break
		}
		log.Info("sessions stored in mongo", "database", cfg.Mongo.Database)
		return store
	}

	return session.NewMemoryStore(cfg.SessionTTL)
}
