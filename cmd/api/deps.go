package main

import (
	"context"
	"database/sql"
	"fmt"

	"pet-adoption/internal/adapters/cache/rediscache"
	"pet-adoption/internal/adapters/notify/amqpnotify"
	"pet-adoption/internal/adapters/notify/lognotify"
	"pet-adoption/internal/adapters/storage"
	"pet-adoption/internal/adapters/storage/memory"
	"pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/adapters/storage/sqlite"
	"pet-adoption/internal/config"
	"pet-adoption/internal/domain/preferences"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/notify"

	"github.com/go-redis/redis/v8"
	"github.com/streadway/amqp"
)

type store struct {
	repos storage.Repositories
	db    *sql.DB
}

func (s *store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// openStore abre el driver configurado. Si falla no hay fallback a memoria:
// el proceso no arranca.
func openStore(ctx context.Context, cfg config.Store, log logger.Logger) (*store, error) {
	switch cfg.Driver {
	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		log.Info("store ready", map[string]any{"driver": cfg.Driver, "path": cfg.SQLitePath})
		return &store{repos: sqlite.New(db), db: db}, nil

	case config.StorePostgres:
		db, err := postgres.Open(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate postgres store: %w", err)
		}
		log.Info("store ready", map[string]any{"driver": cfg.Driver})
		return &store{repos: postgres.New(db), db: db}, nil

	case config.StoreMemory:
		log.Warn("using in-memory store, data is lost on restart", nil)
		return &store{repos: memory.New()}, nil
	}
	return nil, fmt.Errorf("%w: unknown STORE_DRIVER %q", config.ErrInvalidConfig, cfg.Driver)
}

type redisDeps struct {
	client  *redis.Client
	prefs   preferences.Repository
	limiter *rediscache.Limiter
}

func (d *redisDeps) Close() error {
	return d.client.Close()
}

// openRedis envuelve el repo de preferencias con el cache y arma el rate
// limiter de swipes. Un Redis caído al arrancar solo se avisa: ambos
// componentes degradan sin él.
func openRedis(ctx context.Context, cfg config.Redis, prefs preferences.Repository, log logger.Logger) (*redisDeps, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis not reachable, continuing without cache", map[string]any{"addr": cfg.Addr, "error": err})
	}

	limiter, err := rediscache.NewLimiter(client, cfg.SwipeRateLimit, cfg.SwipeRateWindow)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	return &redisDeps{
		client:  client,
		prefs:   rediscache.NewPreferencesCache(prefs, client, cfg.PreferencesTTL, log),
		limiter: limiter,
	}, nil
}

// openNotifier publica en AMQP si hay URL; si no, solo loguea los eventos.
func openNotifier(cfg config.AMQP, log logger.Logger) (notify.Notifier, func(), error) {
	if cfg.URL == "" {
		return lognotify.New(log), func() {}, nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("dial amqp: %w", err)
	}
	pub, err := amqpnotify.NewPublisher(amqpnotify.ConnOpener(conn), amqpnotify.Options{
		Exchange:       cfg.Exchange,
		BreakerTimeout: cfg.BreakerTimeout,
		Logger:         log,
	})
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	log.Info("publishing match events", map[string]any{"exchange": cfg.Exchange})
	return pub, func() { _ = conn.Close() }, nil
}
