// Package remoteauth delega la verificación del token a un servicio de
// identidad externo (POST /v1/tokens/verify).
package remoteauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-adoption/internal/platform/httpclient"
	"pet-adoption/internal/ports/auth"
)

const (
	verifyPath          = "/v1/tokens/verify"
	defaultAPIKeyHeader = "X-Api-Key"
)

var (
	ErrNotConfigured = errors.New("remote auth not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrUnauthorized  = errors.New("remote auth unauthorized")
	ErrUpstream      = fmt.Errorf("remote auth upstream error: %w", auth.ErrVerifierUnavailable)
)

type Config struct {
	BaseURL string
	APIKey  string

	// APIKeyHeader vacío usa X-Api-Key.
	APIKeyHeader string
	Timeout      time.Duration

	// Transport opcional (tests).
	Transport http.RoundTripper
}

// Verifier implementa auth.AuthVerifier contra el servicio de identidad.
type Verifier struct {
	api *httpclient.Client
}

func NewVerifier(cfg Config) (*Verifier, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if strings.TrimSpace(cfg.BaseURL) == "" || apiKey == "" {
		return nil, ErrNotConfigured
	}
	header := strings.TrimSpace(cfg.APIKeyHeader)
	if header == "" {
		header = defaultAPIKeyHeader
	}

	api, err := httpclient.New(cfg.BaseURL, cfg.Timeout,
		httpclient.WithHeader(header, apiKey),
		httpclient.WithTransport(cfg.Transport),
	)
	if err != nil {
		return nil, err
	}
	return &Verifier{api: api}, nil
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	TenantID string `json:"tenant_id"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.api == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var out verifyResponse
	_, err := v.api.PostJSON(ctx, verifyPath, verifyRequest{Token: token}, &out)
	if err != nil {
		switch httpclient.StatusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	userID := strings.TrimSpace(out.UserID)
	if userID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrUpstream)
	}
	return auth.Claims{
		UserID:   userID,
		Email:    strings.TrimSpace(out.Email),
		TenantID: strings.TrimSpace(out.TenantID),
	}, nil
}
