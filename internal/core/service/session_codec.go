package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

// DefaultSessionTTL is the lifetime of a login session.
const DefaultSessionTTL = 7 * 24 * time.Hour

// sessionClaims is the signed payload of a session token.
type sessionClaims struct {
	User domain.SessionUser `json:"user"`
	jwt.RegisteredClaims
}

// JWTSessionCodec issues HS256 session tokens embedding a user snapshot.
type JWTSessionCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWTSessionCodec(secret string, ttl time.Duration) *JWTSessionCodec {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &JWTSessionCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is the lifetime given to new sessions.
func (c *JWTSessionCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a session for user.
func (c *JWTSessionCodec) Issue(user domain.SessionUser) (string, *domain.Session, error) {
	now := c.now().UTC()
	expires := now.Add(c.ttl)

	claims := sessionClaims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session: %w", err)
	}
	return signed, &domain.Session{User: user, Expires: expires.Truncate(time.Second)}, nil
}

// Parse verifies the signature and expiry of token.
func (c *JWTSessionCodec) Parse(token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, errors.Join(domain.ErrUnauthorized, err)
	}
	if claims.User.ID == "" || !claims.User.Role.Valid() {
		return nil, domain.ErrUnauthorized
	}

	return &domain.Session{User: claims.User, Expires: claims.ExpiresAt.Time.UTC()}, nil
}
