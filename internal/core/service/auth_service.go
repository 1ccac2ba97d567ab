package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
	"github.com/tawitawi/provincial-portal/internal/pkg/metrics"
)

// AuthService implements username/password login.
type AuthService struct {
	users      ports.UserRepository
	codec      ports.SessionCodec
	activity   ports.ActivityRecorder
	bcryptCost int
	log        zerolog.Logger

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users ports.UserRepository, codec ports.SessionCodec, activity ports.ActivityRecorder, bcryptCost int, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, codec: codec, activity: activity, bcryptCost: bcryptCost, log: log}
}

// Login verifies the credentials and opens a session. Unknown usernames and
// wrong passwords fail with the same error. The password is checked before
// the account status, so a disabled account is only reported to callers that
// know its password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, "", domain.NewValidationError("username", "username and password are required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// burn the same bcrypt work as a real comparison
			domain.VerifyPassword(password, s.dummy())
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !domain.VerifyPassword(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		metrics.LoginsTotal.WithLabelValues("disabled").Inc()
		return nil, "", domain.ErrAccountDisabled
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	} else {
		user.LastLogin = &now
	}

	token, session, err := s.codec.Issue(user.Snapshot())
	if err != nil {
		return nil, "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.activity.Record(domain.NewActivity(session, domain.ActionLogin, domain.EntityUser, user.ID, user.Username))
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user logged in")

	return session, token, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := domain.HashPassword("not-a-real-password", s.bcryptCost)
		if err == nil {
			s.dummyHash = h
		}
	})
	return s.dummyHash
}
