package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	apperrors "talenthub/internal/errors"
)

// SessionClaims is the signed payload of a session token. The JTI names
// the server-side session record; UserID is carried for convenience but
// the identity is always re-fetched from storage on resolution.
type SessionClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies session tokens with an explicit secret
// and expiry policy.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec creates a codec with the given secret and token lifetime.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Secret exposes the signing key for wiring the route-group JWT
// middleware, which verifies signatures before handlers run.
func (c *TokenCodec) Secret() []byte {
	return c.secret
}

// Encode signs a token binding sessionID to userID.
func (c *TokenCodec) Encode(sessionID string, userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies a token's signature and validity window and returns
// its claims. Any parse or signature failure maps to ErrInvalidSession:
// a bad token means "please log in", not a server fault.
func (c *TokenCodec) Decode(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		return nil, apperrors.ErrInvalidSession
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, apperrors.ErrInvalidSession
	}

	return claims, nil
}
