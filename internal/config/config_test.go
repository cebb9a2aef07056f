package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetEnv borra variables y las restaura al terminar el test.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "APP_NAME", "HTTP_PORT", "HTTP_READ_TIMEOUT", "STORE_DRIVER", "STORE_SQLITE_PATH",
		"FEED_DEFAULT_PAGE_SIZE", "FEED_MAX_PAGE_SIZE", "MATCH_POLICY", "AMQP_EXCHANGE",
		"REDIS_ADDR", "REDIS_PREFERENCES_TTL")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "pet-adoption", cfg.AppName)
	assert.Equal(t, ":8080", cfg.HTTP.Addr())
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, StoreSQLite, cfg.Store.Driver)
	assert.Equal(t, "pet-adoption.db", cfg.Store.SQLitePath)
	assert.Equal(t, 20, cfg.Feed.DefaultPageSize)
	assert.Equal(t, 100, cfg.Feed.MaxPageSize)
	assert.Equal(t, MatchPolicyAuto, cfg.Match.Policy)
	assert.Equal(t, "adoption.events", cfg.AMQP.Exchange)
	assert.Equal(t, 5*time.Minute, cfg.Redis.PreferencesTTL)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("STORE_DSN", "postgres://u:p@localhost:5432/db")
	t.Setenv("MATCH_POLICY", "owner_confirms")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_SWIPE_RATE_WINDOW", "30s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, StorePostgres, cfg.Store.Driver)
	assert.Equal(t, MatchPolicyOwnerConfirms, cfg.Match.Policy)
	assert.Equal(t, ":9090", cfg.HTTP.Addr())
	assert.Equal(t, 30*time.Second, cfg.Redis.SwipeRateWindow)
}

func TestLoad_DotEnvFile(t *testing.T) {
	// godotenv no pisa variables ya definidas.
	unsetEnv(t, "STORE_DRIVER", "MATCH_POLICY", "FEED_DEFAULT_PAGE_SIZE", "FEED_MAX_PAGE_SIZE", "REDIS_ADDR")
	t.Cleanup(func() { _ = os.Unsetenv("FEED_DEFAULT_PAGE_SIZE") })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FEED_DEFAULT_PAGE_SIZE=7\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Feed.DefaultPageSize)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Store: Store{Driver: StoreSQLite, SQLitePath: "x.db"},
			Feed:  Feed{DefaultPageSize: 20, MaxPageSize: 100},
			Match: Match{Policy: MatchPolicyAuto},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.Store.Driver = "mysql" }},
		{"postgres without dsn", func(c *Config) { c.Store.Driver = StorePostgres }},
		{"unknown policy", func(c *Config) { c.Match.Policy = "mutual" }},
		{"default above max", func(c *Config) { c.Feed.DefaultPageSize = 200 }},
		{"zero page size", func(c *Config) { c.Feed.MaxPageSize = 0 }},
		{"redis without limit", func(c *Config) { c.Redis.Addr = "localhost:6379" }},
		{"verify url without api key", func(c *Config) { c.Auth.VerifyURL = "http://id.local" }},
	}

	ok := base()
	require.NoError(t, ok.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}
