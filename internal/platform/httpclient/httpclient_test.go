package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "not a url", "/relative"} {
		_, err := New(raw, time.Second)
		assert.Error(t, err, raw)
	}
}

func TestDoJSON_StatusAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "x", r.Header.Get("X-Debug-User-ID"))
		if r.URL.Path == "/missing" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := New(srv.URL+"/", time.Second, WithHeader("X-Debug-User-ID", "x"))
	require.NoError(t, err)

	code, err := c.DoJSON(context.Background(), http.MethodDelete, "ok", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, code)

	_, err = c.DoJSON(context.Background(), http.MethodGet, "/missing", nil, nil)
	var he *HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, "not found", he.Body)
	assert.False(t, Retryable(err))
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestDoJSON_TransportFailureIsRetryable(t *testing.T) {
	c, err := New("http://api.local", time.Second, WithTransport(failingTransport{}))
	require.NoError(t, err)

	_, err = c.DoJSON(context.Background(), http.MethodGet, "/health", nil, nil)
	assert.ErrorIs(t, err, ErrTransport)
	assert.True(t, Retryable(err))
}
