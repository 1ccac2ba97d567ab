package ports

import (
	"context"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

// SessionCodec signs and verifies stateless session tokens.
type SessionCodec interface {
	Issue(user domain.SessionUser) (string, *domain.Session, error)
	Parse(token string) (*domain.Session, error)
}

// AuthService authenticates administrators.
type AuthService interface {
	// Login returns the new session and its signed token.
	Login(ctx context.Context, username, password string) (*domain.Session, string, error)
}

// DelegatedTokenService issues and consumes one-time login handoff tokens.
type DelegatedTokenService interface {
	Issue(ctx context.Context, requester *domain.Session, municipalityID string) (*domain.IssuedToken, error)
	Consume(ctx context.Context, token string) (*domain.DelegatedGrant, error)
	// DelegatedSession consumes token and opens a municipal admin session
	// bound to the granted municipality.
	DelegatedSession(ctx context.Context, token string) (*domain.Session, string, error)
}

// CreateMunicipalAdminInput carries the fields of a new municipal admin.
type CreateMunicipalAdminInput struct {
	MunicipalityID string
	Username       string
	Password       string
	Email          string
	Name           string
}

// UserService manages municipal administrator accounts.
type UserService interface {
	ListMunicipalAdmins(ctx context.Context, requester *domain.Session) ([]*domain.User, error)
	CreateMunicipalAdmin(ctx context.Context, requester *domain.Session, in CreateMunicipalAdminInput) (*domain.User, error)
	SetMunicipalAdminActive(ctx context.Context, requester *domain.Session, id string, active bool) error
	DeleteMunicipalAdmin(ctx context.Context, requester *domain.Session, id string) error
	EnsureSeedAdmin(ctx context.Context, username, password string) (bool, error)
}
