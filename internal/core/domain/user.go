package domain

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted for new accounts.
const MinPasswordLength = 6

// User models an administrative account.
type User struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	Name           string     `json:"name"`
	Role           Role       `json:"role"`
	MunicipalityID string     `json:"municipalityId,omitempty"`
	IsActive       bool       `json:"isActive"`
	LastLogin      *time.Time `json:"lastLogin,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// SessionUser is the password-free snapshot of a User embedded in a session.
type SessionUser struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	Name           string `json:"name"`
	Role           Role   `json:"role"`
	MunicipalityID string `json:"municipalityId,omitempty"`
	IsActive       bool   `json:"isActive"`
	// DelegatedBy holds the issuing super admin id for sessions created
	// through a delegated login token.
	DelegatedBy string `json:"delegatedBy,omitempty"`
}

// Snapshot returns the session view of u.
func (u *User) Snapshot() SessionUser {
	return SessionUser{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		Name:           u.Name,
		Role:           u.Role,
		MunicipalityID: u.MunicipalityID,
		IsActive:       u.IsActive,
	}
}

// Session is a verified, stateless login.
type Session struct {
	User    SessionUser `json:"user"`
	Expires time.Time   `json:"expires"`
}

// MinBcryptCost is the lowest work factor stored password hashes may use.
const MinBcryptCost = 10

// HashPassword hashes plaintext with bcrypt at the given cost. Costs below
// MinBcryptCost are raised to it.
func HashPassword(plaintext string, cost int) (string, error) {
	if cost < MinBcryptCost {
		cost = MinBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches hash.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
