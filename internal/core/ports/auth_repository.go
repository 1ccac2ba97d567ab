package ports

import (
	"context"
	"time"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

// UserRepository defines persistence for administrative accounts.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create stores user and fills in its ID. A taken username yields domain.ErrDuplicateKey.
	Create(ctx context.Context, user *domain.User) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
}

// DelegatedTokenRepository stores one-time login handoff tokens.
type DelegatedTokenRepository interface {
	Create(ctx context.Context, token *domain.DelegatedToken) error
	// Consume atomically marks the token with tokenHash as used, provided it
	// is unused and not expired at now, and returns the stored record.
	// Any other outcome yields domain.ErrInvalidToken.
	Consume(ctx context.Context, tokenHash string, now time.Time) (*domain.DelegatedToken, error)
}
