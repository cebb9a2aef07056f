package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Drivers de store soportados.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Políticas de formación de match.
const (
	MatchPolicyAuto          = "auto"
	MatchPolicyOwnerConfirms = "owner_confirms"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config agrupa toda la configuración del proceso.
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"pet-adoption"`

	HTTP  HTTP  `envPrefix:"HTTP_"`
	Log   Log   `envPrefix:"LOG_"`
	Store Store `envPrefix:"STORE_"`
	Redis Redis `envPrefix:"REDIS_"`
	AMQP  AMQP  `envPrefix:"AMQP_"`
	Auth  Auth  `envPrefix:"AUTH_"`
	Feed  Feed  `envPrefix:"FEED_"`
	Match Match `envPrefix:"MATCH_"`
}

type HTTP struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type Log struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
}

// Store: sqlite por defecto; memory solo si se pide explícitamente.
type Store struct {
	Driver     string `env:"DRIVER" envDefault:"sqlite"`
	DSN        string `env:"DSN"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"pet-adoption.db"`
}

// Redis es opcional: sin ADDR no hay cache ni rate limit.
type Redis struct {
	Addr            string        `env:"ADDR"`
	Password        string        `env:"PASSWORD"`
	DB              int           `env:"DB" envDefault:"0"`
	PreferencesTTL  time.Duration `env:"PREFERENCES_TTL" envDefault:"5m"`
	SwipeRateLimit  int           `env:"SWIPE_RATE_LIMIT" envDefault:"120"`
	SwipeRateWindow time.Duration `env:"SWIPE_RATE_WINDOW" envDefault:"1m"`
}

// AMQP es opcional: sin URL los eventos solo se loguean.
type AMQP struct {
	URL            string        `env:"URL"`
	Exchange       string        `env:"EXCHANGE" envDefault:"adoption.events"`
	BreakerTimeout time.Duration `env:"BREAKER_TIMEOUT" envDefault:"30s"`
}

// Auth: JWT_SECRET verifica local; si no, VERIFY_URL delega al servicio de
// identidad. Sin ninguno se usa modo dev (X-Debug-User-ID).
type Auth struct {
	JWTSecret string `env:"JWT_SECRET"`
	JWTIssuer string `env:"JWT_ISSUER"`

	VerifyURL     string        `env:"VERIFY_URL"`
	APIKey        string        `env:"API_KEY"`
	APIKeyHeader  string        `env:"API_KEY_HEADER" envDefault:"X-Api-Key"`
	VerifyTimeout time.Duration `env:"VERIFY_TIMEOUT" envDefault:"5s"`
}

type Feed struct {
	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE" envDefault:"20"`
	MaxPageSize     int `env:"MAX_PAGE_SIZE" envDefault:"100"`
}

type Match struct {
	Policy string `env:"POLICY" envDefault:"auto"`
}

// Load lee .env (si existe), luego el entorno, y valida.
func Load(dotenvFiles ...string) (*Config, error) {
	// .env es opcional: en prod las variables vienen del entorno.
	_ = godotenv.Load(dotenvFiles...)

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	cfg.Match.Policy = strings.ToLower(strings.TrimSpace(cfg.Match.Policy))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreSQLite:
		if strings.TrimSpace(c.Store.SQLitePath) == "" {
			return fmt.Errorf("%w: STORE_SQLITE_PATH is required for sqlite", ErrInvalidConfig)
		}
	case StorePostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("%w: STORE_DSN is required for postgres", ErrInvalidConfig)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("%w: unknown STORE_DRIVER %q", ErrInvalidConfig, c.Store.Driver)
	}

	switch c.Match.Policy {
	case MatchPolicyAuto, MatchPolicyOwnerConfirms:
	default:
		return fmt.Errorf("%w: unknown MATCH_POLICY %q", ErrInvalidConfig, c.Match.Policy)
	}

	if c.Feed.DefaultPageSize <= 0 || c.Feed.MaxPageSize <= 0 {
		return fmt.Errorf("%w: feed page sizes must be positive", ErrInvalidConfig)
	}
	if c.Feed.DefaultPageSize > c.Feed.MaxPageSize {
		return fmt.Errorf("%w: FEED_DEFAULT_PAGE_SIZE exceeds FEED_MAX_PAGE_SIZE", ErrInvalidConfig)
	}

	if c.Auth.JWTSecret == "" && c.Auth.VerifyURL != "" && strings.TrimSpace(c.Auth.APIKey) == "" {
		return fmt.Errorf("%w: AUTH_API_KEY is required with AUTH_VERIFY_URL", ErrInvalidConfig)
	}

	if c.Redis.Addr != "" && (c.Redis.SwipeRateLimit <= 0 || c.Redis.SwipeRateWindow <= 0) {
		return fmt.Errorf("%w: swipe rate limit needs positive limit and window", ErrInvalidConfig)
	}
	return nil
}

// Addr devuelve la dirección de escucha del servidor HTTP.
func (h HTTP) Addr() string {
	return ":" + strings.TrimPrefix(h.Port, ":")
}
