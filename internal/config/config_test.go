package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.Database.Configured())
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
	assert.Equal(t, "storefront-orders", cfg.KafkaTopic)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/tmp/shop.db")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("REQUEST_TIMEOUT", "5")
	t.Setenv("CHECKOUT_SUBMIT_TIMEOUT", "3s")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.True(t, cfg.Database.Configured())
	assert.Equal(t, "/tmp/shop.db", cfg.Database.Path)
	assert.Equal(t, SessionStoreRedis, cfg.SessionStore)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3*time.Second, cfg.CheckoutSubmitTimeout)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_InvalidEnums(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_DRIVER", "oracle")
	t.Setenv("SESSION_STORE", "memcached")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorContains(t, err, "DB_DRIVER")
	assert.ErrorContains(t, err, "SESSION_STORE")
}

func TestValidate_NonPositiveDuration(t *testing.T) {
	cfg := &Config{
		SessionStore:          SessionStoreMemory,
		RequestTimeout:        2 * time.Second,
		ShutdownTimeout:       time.Second,
		SessionTTL:            0,
		CatalogCacheTTL:       time.Second,
		CheckoutSubmitTimeout: time.Second,
		MaxRequestBodySize:    1,
	}

	assert.ErrorContains(t, cfg.Validate(), "SESSION_TTL must be positive")
}

func TestValidate_SubmitTimeoutBelowRequestTimeout(t *testing.T) {
	tests := []struct {
		name    string
		submit  time.Duration
		wantErr bool
	}{
		{name: "shorter", submit: 10 * time.Second},
		{name: "equal", submit: 30 * time.Second, wantErr: true},
		{name: "longer", submit: time.Minute, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv("REQUEST_TIMEOUT", "30s")
			t.Setenv("CHECKOUT_SUBMIT_TIMEOUT", tt.submit.String())

			_, err := Load()
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, "CHECKOUT_SUBMIT_TIMEOUT")
		})
	}
}
