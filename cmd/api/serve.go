package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pet-adoption/internal/adapters/auth/jwtauth"
	"pet-adoption/internal/adapters/auth/remoteauth"
	"pet-adoption/internal/config"
	"pet-adoption/internal/domain/swipes"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/router"

	"github.com/spf13/cobra"
)

func loadConfig() (*config.Config, error) {
	if envFile != "" {
		return config.Load(envFile)
	}
	return config.Load()
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.AppName,
	})
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	defer st.Close()

	repos := st.repos

	var limiter middleware.Limiter
	if cfg.Redis.Addr != "" {
		rc, err := openRedis(ctx, cfg.Redis, repos.Preferences, log)
		if err != nil {
			return err
		}
		defer rc.Close()
		repos.Preferences = rc.prefs
		limiter = rc.limiter
	}

	notifier, closeNotifier, err := openNotifier(cfg.AMQP, log)
	if err != nil {
		return err
	}
	defer closeNotifier()

	verifier, err := newVerifier(cfg.Auth, log)
	if err != nil {
		return err
	}

	handler, err := router.NewRouter(router.Options{
		AuthVerifier:    verifier,
		Repos:           repos,
		Logger:          log,
		Notifier:        notifier,
		SwipeLimiter:    limiter,
		MatchPolicy:     swipes.Policy(cfg.Match.Policy),
		DefaultPageSize: cfg.Feed.DefaultPageSize,
		MaxPageSize:     cfg.Feed.MaxPageSize,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":         srv.Addr,
			"store":        cfg.Store.Driver,
			"match_policy": cfg.Match.Policy,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newVerifier(cfg config.Auth, log logger.Logger) (auth.AuthVerifier, error) {
	switch {
	case cfg.JWTSecret != "":
		return jwtauth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer), nil
	case cfg.VerifyURL != "":
		v, err := remoteauth.NewVerifier(remoteauth.Config{
			BaseURL:      cfg.VerifyURL,
			APIKey:       cfg.APIKey,
			APIKeyHeader: cfg.APIKeyHeader,
			Timeout:      cfg.VerifyTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("remote auth: %w", err)
		}
		return v, nil
	}
	log.Warn("no auth verifier configured, accepting X-Debug-User-ID (dev mode)", nil)
	return nil, nil
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	if cfg.Store.Driver == config.StoreMemory {
		log.Info("memory store has no migrations", nil)
		return nil
	}

	// openStore aplica las migraciones al abrir.
	st, err := openStore(cmd.Context(), cfg.Store, log)
	if err != nil {
		return err
	}
	log.Info("migrations applied", map[string]any{"store": cfg.Store.Driver})
	return st.Close()
}
