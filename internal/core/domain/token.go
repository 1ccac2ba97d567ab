package domain

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// DelegatedTokenBytes is the amount of randomness in a delegated login token.
const DelegatedTokenBytes = 32

// DelegatedToken is the stored form of a one-time login handoff. Only the
// SHA-256 of the token is persisted.
type DelegatedToken struct {
	ID             string
	TokenHash      string
	MunicipalityID string
	SuperAdminID   string
	SuperAdminName string
	Used           bool
	UsedAt         *time.Time
	ExpiresAt      time.Time
	CreatedAt      time.Time
}

// Usable reports whether the token can still be consumed at now.
func (t *DelegatedToken) Usable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}

// IssuedToken is returned to the super admin that requested a handoff.
type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DelegatedGrant is what a successful consumption yields.
type DelegatedGrant struct {
	MunicipalityID string
	SuperAdminID   string
	SuperAdminName string
}

// NewTokenSecret returns a hex-encoded random token of n bytes.
func NewTokenSecret(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashToken returns the hex SHA-256 of token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
