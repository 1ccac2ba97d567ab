package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

const testCost = domain.MinBcryptCost

func newUser(t *testing.T, username, password string, role domain.Role, active bool) *domain.User {
	t.Helper()
	hash, err := domain.HashPassword(password, testCost)
	require.NoError(t, err)
	return &domain.User{Username: username, Name: username, PasswordHash: hash, Role: role, IsActive: active}
}

func newAuthService(users *memUsers, rec *recorder) *AuthService {
	codec := NewJWTSessionCodec("secret", time.Hour)
	return NewAuthService(users, codec, rec, testCost, zerolog.Nop())
}

func TestAuthService_Login_Success(t *testing.T) {
	users := newMemUsers(newUser(t, "admin", "hunter22", domain.RoleSuperAdmin, true))
	rec := &recorder{}
	svc := newAuthService(users, rec)

	session, token, err := svc.Login(context.Background(), " admin ", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin", session.User.Username)
	assert.Equal(t, domain.RoleSuperAdmin, session.User.Role)

	stored, err := users.FindByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)
	assert.Equal(t, []string{"LOGIN:user"}, rec.actions())
}

func TestAuthService_Login_UnknownAndWrongPasswordLookAlike(t *testing.T) {
	users := newMemUsers(newUser(t, "admin", "hunter22", domain.RoleSuperAdmin, true))
	svc := newAuthService(users, &recorder{})

	_, _, errUnknown := svc.Login(context.Background(), "ghost", "hunter22")
	_, _, errWrong := svc.Login(context.Background(), "admin", "wrong")

	assert.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrong, domain.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestAuthService_Login_Disabled(t *testing.T) {
	users := newMemUsers(newUser(t, "mayor", "hunter22", domain.RoleMunicipalAdmin, false))
	svc := newAuthService(users, &recorder{})

	_, _, err := svc.Login(context.Background(), "mayor", "hunter22")
	assert.ErrorIs(t, err, domain.ErrAccountDisabled)

	// a wrong password never reveals the account status
	_, _, err = svc.Login(context.Background(), "mayor", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	svc := newAuthService(newMemUsers(), &recorder{})

	_, _, err := svc.Login(context.Background(), "  ", "x")
	assert.True(t, domain.IsValidation(err))
	_, _, err = svc.Login(context.Background(), "admin", "")
	assert.True(t, domain.IsValidation(err))
}
