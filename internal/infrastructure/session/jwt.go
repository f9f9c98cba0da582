// Package session provides the two SessionStrategy implementations:
// stateless HS256 tokens and Redis-backed server-side sessions. Exactly one
// is wired in at startup based on configuration.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shelfmark/book-tracker/internal/core/domain"
	"github.com/shelfmark/book-tracker/internal/core/ports"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// JWTStrategy issues and verifies self-contained signed tokens. Nothing is
// stored server-side, so tokens cannot be revoked before expiry.
type JWTStrategy struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTStrategy(secret string, ttl time.Duration) *JWTStrategy {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTStrategy{secret: []byte(secret), ttl: ttl}
}

func (s *JWTStrategy) Kind() ports.CredentialKind { return ports.KindBearer }

// Issue signs a token carrying the user id, issue time, and expiry.
func (s *JWTStrategy) Issue(_ context.Context, userID string) (*ports.Credential, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &ports.Credential{Kind: ports.KindBearer, Value: signed, TTL: s.ttl}, nil
}

// Verify checks the signature and expiry and extracts the user id. An
// unverified claim is never trusted: the signing method is pinned to HS256
// so an attacker cannot downgrade to "none" or swap in an asymmetric key,
// and a token without an exp claim is rejected outright so no credential
// outlives its TTL.
func (s *JWTStrategy) Verify(_ context.Context, presented string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(presented, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrInvalidToken
	}
	if !tkn.Valid {
		return "", domain.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", domain.ErrInvalidToken
	}
	return userID, nil
}

// Revoke is unsupported for stateless tokens; they die at their exp claim.
func (s *JWTStrategy) Revoke(context.Context, string) error {
	return domain.ErrRevokeUnsupported
}
