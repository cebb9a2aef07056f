package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

const debugUserHeader = "X-Debug-User-ID"

// AuthContext resuelve el usuario del request:
//   - verifier == nil (modo dev): toma X-Debug-User-ID.
//   - verifier != nil: solo Bearer token. Un token rechazado deja el request
//     sin claims y el handler responde 401. Si el verificador no está
//     disponible se corta con 503.
func AuthContext(verifier auth.AuthVerifier, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get(debugUserHeader)); uid != "" {
					r = r.WithContext(WithClaims(r.Context(), auth.Claims{UserID: uid}))
				}
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			switch {
			case errors.Is(err, auth.ErrVerifierUnavailable):
				log.Warn("auth verifier unavailable", map[string]any{"path": r.URL.Path, "error": err})
				http.Error(w, "auth unavailable, retry later", http.StatusServiceUnavailable)
				return
			case err != nil:
				log.Debug("token rejected", map[string]any{"path": r.URL.Path, "error": err})
				next.ServeHTTP(w, r)
				return
			case strings.TrimSpace(claims.UserID) == "":
				log.Debug("token without user id", map[string]any{"path": r.URL.Path})
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims guarda claims en el contexto (también lo usan los tests).
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
