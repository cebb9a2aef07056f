// Package rediscache tiene los adapters que usan Redis como apoyo: cache de
// preferencias y contador para rate limit. Redis nunca es fuente de verdad.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pet-adoption/internal/domain/preferences"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/datastore"

	"github.com/go-redis/redis/v8"
)

const (
	prefsKeyPrefix = "user:prefs:"
	// Marca de "el usuario no tiene preferencias" para no ir al store cada vez.
	negativeMarker = "none"
)

type cmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// PreferencesCache decora un preferences.Repository con cache read-through.
// Upsert escribe en el store y después pisa la key con el valor nuevo. El
// read-through solo llena con SETNX: una lectura lenta no tapa lo que dejó
// un Upsert posterior.
type PreferencesCache struct {
	next   preferences.Repository
	client cmdable
	ttl    time.Duration
	log    logger.Logger
}

func NewPreferencesCache(next preferences.Repository, client cmdable, ttl time.Duration, log logger.Logger) *PreferencesCache {
	if log == nil {
		log = logger.Nop()
	}
	return &PreferencesCache{next: next, client: client, ttl: ttl, log: log}
}

func prefsKey(userID string) string {
	return prefsKeyPrefix + userID
}

func (c *PreferencesCache) Get(ctx context.Context, userID string) (preferences.Preferences, error) {
	key := prefsKey(userID)

	raw, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil && raw == negativeMarker:
		return preferences.Preferences{}, datastore.ErrNotFound
	case err == nil:
		var p preferences.Preferences
		if jerr := json.Unmarshal([]byte(raw), &p); jerr == nil {
			return p, nil
		}
		c.log.Warn("preferences cache entry unreadable", map[string]any{"key": key})
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn("preferences cache unavailable", map[string]any{"key": key, "error": err})
	}

	p, err := c.next.Get(ctx, userID)
	switch {
	case errors.Is(err, datastore.ErrNotFound):
		c.fill(ctx, key, negativeMarker)
		return preferences.Preferences{}, err
	case err != nil:
		return preferences.Preferences{}, err
	}

	if b, jerr := json.Marshal(p); jerr == nil {
		c.fill(ctx, key, string(b))
	}
	return p, nil
}

func (c *PreferencesCache) Upsert(ctx context.Context, p preferences.Preferences) error {
	if err := c.next.Upsert(ctx, p); err != nil {
		return err
	}
	key := prefsKey(p.UserID)

	if c.ttl > 0 {
		b, err := json.Marshal(p)
		if err == nil {
			err = c.client.Set(ctx, key, string(b), c.ttl).Err()
		}
		if err == nil {
			return nil
		}
		c.log.Debug("preferences cache overwrite failed", map[string]any{"key": key, "error": err})
	}

	if err := c.client.Del(ctx, key).Err(); err != nil {
		// La entrada vieja vence sola con el TTL.
		c.log.Warn("preferences cache invalidation failed", map[string]any{"user_id": p.UserID, "error": err})
	}
	return nil
}

// fill no pisa una key existente.
func (c *PreferencesCache) fill(ctx context.Context, key, value string) {
	if c.ttl <= 0 {
		return
	}
	if err := c.client.SetNX(ctx, key, value, c.ttl).Err(); err != nil {
		c.log.Debug("preferences cache write skipped", map[string]any{"key": key, "error": err})
	}
}
