package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eisenq/internal/adapter/auth"
	"eisenq/internal/config"
	"eisenq/internal/core/domain"
)

const secret = "test-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Subject:   "user_2abc",
		Issuer:    "https://clerk.example.test",
		Audience:  jwt.ClaimStrings{"eisenq"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
}

func newAuthenticator(t *testing.T) *auth.JWTAuthenticator {
	t.Helper()
	authenticator, err := auth.NewJWTAuthenticator(config.AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   "https://clerk.example.test",
		JWTAudience: "eisenq",
	})
	require.NoError(t, err)
	return authenticator
}

func TestJWTAuthenticator_ResolvesSubject(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte(secret), validClaims())

	userID, err := newAuthenticator(t).Authenticate(context.Background(), token)

	require.NoError(t, err)
	assert.Equal(t, "user_2abc", userID)
}

func TestJWTAuthenticator_Rejects(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongIssuer := validClaims()
	wrongIssuer.Issuer = "https://other.example.test"

	wrongAudience := validClaims()
	wrongAudience.Audience = jwt.ClaimStrings{"someone-else"}

	noSubject := validClaims()
	noSubject.Subject = ""

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "wrong key", token: sign(t, jwt.SigningMethodHS256, []byte("other"), validClaims())},
		{name: "wrong algorithm", token: sign(t, jwt.SigningMethodHS512, []byte(secret), validClaims())},
		{name: "expired", token: sign(t, jwt.SigningMethodHS256, []byte(secret), expired)},
		{name: "wrong issuer", token: sign(t, jwt.SigningMethodHS256, []byte(secret), wrongIssuer)},
		{name: "wrong audience", token: sign(t, jwt.SigningMethodHS256, []byte(secret), wrongAudience)},
		{name: "no subject", token: sign(t, jwt.SigningMethodHS256, []byte(secret), noSubject)},
		{name: "no expiry", token: sign(t, jwt.SigningMethodHS256, []byte(secret), noExpiry)},
	}

	authenticator := newAuthenticator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := authenticator.Authenticate(context.Background(), tt.token)

			assert.ErrorIs(t, err, domain.ErrUnauthenticated)
			assert.Empty(t, userID)
		})
	}
}

func TestNewJWTAuthenticator_RequiresSecret(t *testing.T) {
	_, err := auth.NewJWTAuthenticator(config.AuthConfig{})
	assert.Error(t, err)
}

func TestJWTAuthenticator_OptionalIssuerAndAudience(t *testing.T) {
	authenticator, err := auth.NewJWTAuthenticator(config.AuthConfig{JWTSecret: secret})
	require.NoError(t, err)

	claims := validClaims()
	claims.Issuer = ""
	claims.Audience = nil

	userID, err := authenticator.Authenticate(context.Background(), sign(t, jwt.SigningMethodHS256, []byte(secret), claims))
	require.NoError(t, err)
	assert.Equal(t, "user_2abc", userID)
}
