// Package config loads process settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
	SessionStoreMongo  = "mongo"
)

type Config struct {
	HTTPPort           string
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
	CORSAllowedOrigins []string

	Database Database

	SessionStore string
	SessionTTL   time.Duration
	Redis        Redis
	Mongo        Mongo

	CatalogCacheTTL       time.Duration
	CheckoutSubmitTimeout time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	LogLevel      string
	LogFormat     string
	ServiceName   string
	TraceExporter string
	OTLPEndpoint  string
}

// Database is empty (Driver == "") when the shop runs in demo mode.
type Database struct {
	Driver        string
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	Path          string
	MigrationsDir string
}

func (d Database) Configured() bool {
	return d.Driver != ""
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Mongo struct {
	URI      string
	Database string
}

// Load reads .env (if present) and then the environment. Variables already
// set in the environment win over .env entries.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		RequestTimeout:     getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout:    getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxRequestBodySize: int64(getEnvInt("MAX_REQUEST_BODY_BYTES", 1<<20)), // 1MB
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		Database: Database{
			Driver:        strings.ToLower(getEnv("DB_DRIVER", "")),
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnvInt("DB_PORT", 5432),
			User:          getEnv("DB_USER", "storefront"),
			Password:      getEnv("DB_PASSWORD", ""),
			Name:          getEnv("DB_NAME", "storefront"),
			Path:          getEnv("DB_PATH", "storefront.db"),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "internal/repository/migrations"),
		},

		SessionStore: strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),
		SessionTTL:   getEnvDuration("SESSION_TTL", 24*time.Hour),
		Redis: Redis{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Mongo: Mongo{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "storefront"),
		},

		CatalogCacheTTL:       getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		CheckoutSubmitTimeout: getEnvDuration("CHECKOUT_SUBMIT_TIMEOUT", 10*time.Second),

		KafkaBrokers: getEnvList("KAFKA_BROKERS", nil),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "storefront-orders"),

		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		ServiceName:   getEnv("SERVICE_NAME", "storefront"),
		TraceExporter: strings.ToLower(getEnv("TRACE_EXPORTER", "none")),
		OTLPEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case "", DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be %q, %q or empty, got %q", DriverPostgres, DriverSQLite, c.Database.Driver))
	}

	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreRedis, SessionStoreMongo:
	default:
		errs = append(errs, fmt.Errorf("SESSION_STORE must be memory, redis or mongo, got %q", c.SessionStore))
	}

	switch c.TraceExporter {
	case "", "none", "stdout", "otlp":
	default:
		errs = append(errs, fmt.Errorf("TRACE_EXPORTER must be none, stdout or otlp, got %q", c.TraceExporter))
	}

	durations := map[string]time.Duration{
		"REQUEST_TIMEOUT":         c.RequestTimeout,
		"SHUTDOWN_TIMEOUT":        c.ShutdownTimeout,
		"SESSION_TTL":             c.SessionTTL,
		"CATALOG_CACHE_TTL":       c.CatalogCacheTTL,
		"CHECKOUT_SUBMIT_TIMEOUT": c.CheckoutSubmitTimeout,
	}
	for key, d := range durations {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", key))
		}
	}

	// The sink call outlives the request; it must finish before the
	// request timeout answers the client.
	if c.CheckoutSubmitTimeout >= c.RequestTimeout {
		errs = append(errs, fmt.Errorf("CHECKOUT_SUBMIT_TIMEOUT (%s) must be shorter than REQUEST_TIMEOUT (%s)",
			c.CheckoutSubmitTimeout, c.RequestTimeout))
	}

	if c.MaxRequestBodySize <= 0 {
		errs = append(errs, errors.New("MAX_REQUEST_BODY_BYTES must be positive"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * time.Second
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
