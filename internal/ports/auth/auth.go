// Package auth define el contrato de verificación de tokens que consume el
// middleware. jwtauth y remoteauth lo implementan.
package auth

import (
	"context"
	"errors"
)

// ErrVerifierUnavailable: el verificador no pudo decidir (p.ej. el servicio
// de identidad no responde). No es un token inválido.
var ErrVerifierUnavailable = errors.New("auth verifier unavailable")

// Claims del usuario autenticado. UserID es obligatorio.
type Claims struct {
	UserID   string
	Email    string
	TenantID string
}

type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
