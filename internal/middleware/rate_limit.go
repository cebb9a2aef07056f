package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"pet-adoption/internal/platform/logger"
)

// Limiter decide si una key todavía tiene cupo en la ventana actual.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit limita por usuario autenticado y, si no hay claims, por IP.
// Si el limiter falla el request pasa (se loguea): el rate limit no debe
// tumbar el registro de swipes.
func RateLimit(l Limiter, scope string, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "rate_limit:" + scope + ":" + clientKey(r)

			ok, err := l.Allow(r.Context(), key)
			if err != nil {
				log.Warn("rate limiter unavailable", map[string]any{"key": key, "error": err})
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if c, ok := GetClaims(r.Context()); ok && strings.TrimSpace(c.UserID) != "" {
		return "user:" + c.UserID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
