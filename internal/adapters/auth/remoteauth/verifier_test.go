package remoteauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"pet-adoption/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdentityServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestVerify_ReturnsClaims(t *testing.T) {
	ts := newIdentityServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/tokens/verify", r.URL.Path)
		assert.Equal(t, "secret-key", r.Header.Get("X-Api-Key"))

		var req verifyRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "tok-1", req.Token)

		_ = json.NewEncoder(w).Encode(verifyResponse{UserID: " user-1 ", Email: "a@b.c"})
	})

	v, err := NewVerifier(Config{BaseURL: ts.URL, APIKey: "secret-key"})
	require.NoError(t, err)

	claims, err := v.Verify(context.Background(), " tok-1 ")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.c", claims.Email)
}

func TestVerify_Errors(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusUnauthorized)
	ts := newIdentityServer(t, func(w http.ResponseWriter, r *http.Request) {
		code := int(status.Load())
		if code == http.StatusOK {
			_, _ = w.Write([]byte(`{"email":"x@y.z"}`))
			return
		}
		w.WriteHeader(code)
	})

	v, err := NewVerifier(Config{BaseURL: ts.URL, APIKey: "k", APIKeyHeader: "X-Service-Key"})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = v.Verify(ctx, "  ")
	assert.ErrorIs(t, err, ErrTokenEmpty)

	_, err = v.Verify(ctx, "tok")
	assert.ErrorIs(t, err, ErrUnauthorized)

	status.Store(http.StatusBadGateway)
	_, err = v.Verify(ctx, "tok")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, auth.ErrVerifierUnavailable)

	status.Store(http.StatusOK)
	_, err = v.Verify(ctx, "tok")
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestNewVerifier_RequiresConfig(t *testing.T) {
	_, err := NewVerifier(Config{BaseURL: "http://id.local"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewVerifier(Config{BaseURL: "not a url", APIKey: "k"})
	assert.Error(t, err)

	var nilVerifier *Verifier
	_, err = nilVerifier.Verify(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
