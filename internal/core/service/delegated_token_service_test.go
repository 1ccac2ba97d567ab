package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

func newTokenService(tokens *memTokens, rec *recorder) *DelegatedTokenService {
	municipalities := newMemMunicipalities(&domain.Municipality{ID: "m1", Name: "Bongao", Slug: "bongao"})
	return NewDelegatedTokenService(tokens, municipalities, NewJWTSessionCodec("secret", time.Hour), rec, 0, zerolog.Nop())
}

func superAdminSession() *domain.Session {
	return &domain.Session{User: domain.SessionUser{ID: "sa-1", Name: "Provincial Super Admin", Role: domain.RoleSuperAdmin}}
}

func TestDelegatedToken_IssueAndRedeem(t *testing.T) {
	tokens := newMemTokens()
	rec := &recorder{}
	svc := newTokenService(tokens, rec)

	issued, err := svc.Issue(context.Background(), superAdminSession(), "m1")
	require.NoError(t, err)
	assert.Len(t, issued.Token, domain.DelegatedTokenBytes*2)
	assert.WithinDuration(t, time.Now().Add(DefaultDelegatedTokenTTL), issued.ExpiresAt, 5*time.Second)

	_, stored := tokens.byHash[domain.HashToken(issued.Token)]
	assert.True(t, stored, "only the hash is stored")
	_, raw := tokens.byHash[issued.Token]
	assert.False(t, raw)

	session, signed, err := svc.DelegatedSession(context.Background(), issued.Token)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.Equal(t, domain.RoleMunicipalAdmin, session.User.Role)
	assert.Equal(t, "m1", session.User.MunicipalityID)
	assert.Equal(t, "sa-1", session.User.DelegatedBy)
	assert.Equal(t, "super-admin", session.User.Username)

	_, _, err = svc.DelegatedSession(context.Background(), issued.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "a token is single use")

	assert.Equal(t, []string{"ISSUE_TOKEN:token", "CONSUME_TOKEN:token"}, rec.actions())
}

func TestDelegatedToken_ConcurrentConsume(t *testing.T) {
	svc := newTokenService(newMemTokens(), &recorder{})
	issued, err := svc.Issue(context.Background(), superAdminSession(), "m1")
	require.NoError(t, err)

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Consume(context.Background(), issued.Token); err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestDelegatedToken_Expired(t *testing.T) {
	svc := newTokenService(newMemTokens(), &recorder{})
	issued, err := svc.Issue(context.Background(), superAdminSession(), "m1")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(DefaultDelegatedTokenTTL + time.Second) }
	_, err = svc.Consume(context.Background(), issued.Token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestDelegatedToken_Rejections(t *testing.T) {
	svc := newTokenService(newMemTokens(), &recorder{})
	ctx := context.Background()

	_, err := svc.Issue(ctx, nil, "m1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Issue(ctx, session(domain.RoleProvincialAdmin, ""), "m1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Issue(ctx, superAdminSession(), " ")
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Issue(ctx, superAdminSession(), "nowhere")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Consume(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	_, err = svc.Consume(ctx, "never-issued")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

type brokenTokens struct {
	ports.DelegatedTokenRepository
}

func (brokenTokens) Create(context.Context, *domain.DelegatedToken) error {
	return &domain.StorageError{Op: "insert delegated token", Err: errors.New("no reachable servers")}
}

func (brokenTokens) Consume(context.Context, string, time.Time) (*domain.DelegatedToken, error) {
	return nil, &domain.StorageError{Op: "consume delegated token", Err: errors.New("no reachable servers")}
}

func TestDelegatedToken_StorageFailuresAreGeneric(t *testing.T) {
	municipalities := newMemMunicipalities(&domain.Municipality{ID: "m1", Name: "Bongao", Slug: "bongao"})
	svc := NewDelegatedTokenService(brokenTokens{}, municipalities, NewJWTSessionCodec("secret", time.Hour), &recorder{}, 0, zerolog.Nop())

	_, err := svc.Issue(context.Background(), superAdminSession(), "m1")
	assert.ErrorIs(t, err, domain.ErrTokenIssue)
	var se *domain.StorageError
	assert.ErrorAs(t, err, &se, "the cause stays available for logging")

	_, _, err = svc.DelegatedSession(context.Background(), "a-token")
	assert.ErrorIs(t, err, domain.ErrTokenConsume)
	assert.NotErrorIs(t, err, domain.ErrInvalidToken)

	_, err = svc.Issue(context.Background(), superAdminSession(), "missing")
	assert.ErrorIs(t, err, domain.ErrMunicipalityNotFound, "an unknown municipality is still a 404")
}
