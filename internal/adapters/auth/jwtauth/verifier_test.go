package jwtauth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, c Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, c).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims() Claims {
	now := time.Now()
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "pets-idp",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Email: "u@example.com",
	}
}

func TestVerify_Valid(t *testing.T) {
	v := NewVerifier(secret, "pets-idp")
	tok := sign(t, jwt.SigningMethodHS256, []byte(secret), validClaims())

	c, err := v.Verify(context.Background(), "  "+tok+" ")
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.UserID)
	assert.Equal(t, "u@example.com", c.Email)
}

func TestVerify_Rejects(t *testing.T) {
	v := NewVerifier(secret, "pets-idp")

	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "someone-else"

	noSubject := validClaims()
	noSubject.Subject = ""

	noExp := validClaims()
	noExp.ExpiresAt = nil

	tests := map[string]string{
		"empty":        "",
		"garbage":      "not-a-jwt",
		"wrong secret": sign(t, jwt.SigningMethodHS256, []byte("other"), validClaims()),
		"wrong alg":    sign(t, jwt.SigningMethodHS512, []byte(secret), validClaims()),
		"expired":      sign(t, jwt.SigningMethodHS256, []byte(secret), expired),
		"issuer":       sign(t, jwt.SigningMethodHS256, []byte(secret), wrongIssuer),
		"no subject":   sign(t, jwt.SigningMethodHS256, []byte(secret), noSubject),
		"no exp":       sign(t, jwt.SigningMethodHS256, []byte(secret), noExp),
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := v.Verify(context.Background(), tok)
			assert.Error(t, err)
		})
	}

	_, err := NewVerifier("", "").Verify(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
