package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"eisenq/internal/config"
	"eisenq/internal/core/domain"
	"eisenq/internal/core/ports"
)

// JWTAuthenticator verifies HS256 bearer tokens issued by the identity
// provider and resolves the subject claim to the owner id.
type JWTAuthenticator struct {
	signingKey []byte
	parser     *jwt.Parser
}

var _ ports.Authenticator = (*JWTAuthenticator)(nil)

func NewJWTAuthenticator(cfg config.AuthConfig) (*JWTAuthenticator, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt secret is required")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if cfg.JWTIssuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.JWTIssuer))
	}
	if cfg.JWTAudience != "" {
		opts = append(opts, jwt.WithAudience(cfg.JWTAudience))
	}

	return &JWTAuthenticator{
		signingKey: []byte(cfg.JWTSecret),
		parser:     jwt.NewParser(opts...),
	}, nil
}

func (a *JWTAuthenticator) Authenticate(_ context.Context, tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := a.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return a.signingKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", domain.ErrUnauthenticated)
	}
	return claims.Subject, nil
}
