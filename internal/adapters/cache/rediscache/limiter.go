package rediscache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

type pipelineClient interface {
	Pipeline() redis.Pipeliner
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// Limiter es un contador de ventana fija: INCR + TTL en un pipeline y EXPIRE
// solo cuando la key todavía no vence.
type Limiter struct {
	client pipelineClient
	limit  int64
	window time.Duration
}

func NewLimiter(client pipelineClient, limit int, window time.Duration) (*Limiter, error) {
	if limit <= 0 || window <= 0 {
		return nil, errors.New("rate limit and window must be positive")
	}
	return &Limiter{client: client, limit: int64(limit), window: window}, nil
}

func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.TTL(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	if ttl.Val() < 0 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return false, err
		}
	}
	return incr.Val() <= l.limit, nil
}
