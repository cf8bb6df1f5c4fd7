// Package auth gates the server behind a single configured account. A
// successful login yields an HS256 session token that every request is
// checked against.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

const issuer = "bpl"

// ErrInvalidToken is returned for missing, malformed, forged or expired tokens
var ErrInvalidToken = errors.New("invalid session token")

// Claims carried by a session token
type Claims struct {
	jwt.RegisteredClaims
}

// Sessions issues and verifies session tokens
type Sessions struct {
	secret []byte
	ttl    time.Duration
	clock  clockwork.Clock
}

func NewSessions(secret []byte, ttl time.Duration, clock clockwork.Clock) (*Sessions, error) {
	if len(secret) < 16 {
		return nil, fmt.Errorf("session secret must be at least 16 bytes, got %d", len(secret))
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", ttl)
	}
	return &Sessions{secret: secret, ttl: ttl, clock: clock}, nil
}

// Issue signs a token for username.
func (s *Sessions) Issue(username string) (string, time.Time, error) {
	now := s.clock.Now()
	expires := now.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, expires, nil
}

// Verify checks signature, issuer and expiry of token.
func (s *Sessions) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
