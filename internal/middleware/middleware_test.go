package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/auth"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type verifierStub struct {
	claims auth.Claims
	err    error
}

func (v verifierStub) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if token != "good" {
		return auth.Claims{}, errors.New("bad token")
	}
	return v.claims, v.err
}

func claimsEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := GetClaims(r.Context())
		if !ok {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		_, _ = w.Write([]byte(c.UserID))
	})
}

func TestAuthContext_DevHeader(t *testing.T) {
	h := AuthContext(nil, nil)(claimsEcho())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Debug-User-ID", "dev-1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "dev-1", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthContext_Bearer(t *testing.T) {
	h := AuthContext(verifierStub{claims: auth.Claims{UserID: "u-1"}}, nil)(claimsEcho())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "u-1", rec.Body.String())

	// Token inválido o header de dev: sin claims, el handler decide.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	req.Header.Set("X-Debug-User-ID", "dev-1")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestAuthContext_VerifierUnavailable(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	stub := verifierStub{err: errors.Join(errors.New("dial tcp"), auth.ErrVerifierUnavailable)}
	h := AuthContext(stub, logger.FromZap(zap.New(core)))(claimsEcho())

	req := httptest.NewRequest(http.MethodGet, "/me/matches", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "auth verifier unavailable", logs.All()[0].Message)

	// Claims sin user id cuentan como anónimo.
	h = AuthContext(verifierStub{}, nil)(claimsEcho())
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

type limiterStub struct {
	allow bool
	err   error
	keys  []string
}

func (l *limiterStub) Allow(ctx context.Context, key string) (bool, error) {
	l.keys = append(l.keys, key)
	return l.allow, l.err
}

func TestRateLimit(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusAccepted) })

	t.Run("keyed by user", func(t *testing.T) {
		l := &limiterStub{allow: true}
		h := AuthContext(nil, nil)(RateLimit(l, "swipes", logger.Nop())(ok))
		req := httptest.NewRequest(http.MethodPost, "/swipes", nil)
		req.Header.Set("X-Debug-User-ID", "u-1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, []string{"rate_limit:swipes:user:u-1"}, l.keys)
	})

	t.Run("keyed by ip", func(t *testing.T) {
		l := &limiterStub{allow: false}
		h := RateLimit(l, "swipes", logger.Nop())(ok)
		req := httptest.NewRequest(http.MethodPost, "/swipes", nil)
		req.RemoteAddr = "10.0.0.7:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, []string{"rate_limit:swipes:ip:10.0.0.7"}, l.keys)
	})

	t.Run("fails open", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		l := &limiterStub{err: errors.New("redis down")}
		h := RateLimit(l, "swipes", logger.FromZap(zap.New(core)))(ok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/swipes", nil))

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, 1, logs.FilterMessage("rate limiter unavailable").Len())
	})
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	h := chimw.RequestID(AccessLog(logger.FromZap(zap.New(core)))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusNotFound)
		}),
	))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets/x", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "/pets/x", ctx["path"])
	assert.EqualValues(t, http.StatusNotFound, ctx["status"])
	assert.NotEmpty(t, ctx["request_id"])
}
