package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
	"github.com/tawitawi/provincial-portal/internal/pkg/metrics"
)

// DefaultDelegatedTokenTTL is how long a handoff token stays redeemable.
const DefaultDelegatedTokenTTL = 5 * time.Minute

// DelegatedTokenService lets a super admin hand a municipal admin session
// to another browser through a one-time token.
type DelegatedTokenService struct {
	tokens         ports.DelegatedTokenRepository
	municipalities ports.MunicipalityRepository
	codec          ports.SessionCodec
	activity       ports.ActivityRecorder
	ttl            time.Duration
	now            func() time.Time
	log            zerolog.Logger
}

func NewDelegatedTokenService(
	tokens ports.DelegatedTokenRepository,
	municipalities ports.MunicipalityRepository,
	codec ports.SessionCodec,
	activity ports.ActivityRecorder,
	ttl time.Duration,
	log zerolog.Logger,
) *DelegatedTokenService {
	if ttl <= 0 {
		ttl = DefaultDelegatedTokenTTL
	}
	return &DelegatedTokenService{
		tokens:         tokens,
		municipalities: municipalities,
		codec:          codec,
		activity:       activity,
		ttl:            ttl,
		now:            time.Now,
		log:            log,
	}
}

// Issue creates a token for municipalityID. Only super admins may call it.
// The raw token is returned once and never stored.
func (s *DelegatedTokenService) Issue(ctx context.Context, requester *domain.Session, municipalityID string) (*domain.IssuedToken, error) {
	if err := domain.AuthorizeRoles(requester, domain.RoleSuperAdmin); err != nil {
		return nil, err
	}
	municipalityID = strings.TrimSpace(municipalityID)
	if municipalityID == "" {
		return nil, domain.NewValidationError("municipalityId", "municipality id is required")
	}

	municipality, err := s.municipalities.FindByID(ctx, municipalityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenIssue, err)
	}

	raw, err := domain.NewTokenSecret(domain.DelegatedTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenIssue, err)
	}

	now := s.now().UTC()
	record := &domain.DelegatedToken{
		ID:             uuid.NewString(),
		TokenHash:      domain.HashToken(raw),
		MunicipalityID: municipality.ID,
		SuperAdminID:   requester.User.ID,
		SuperAdminName: requester.User.Name,
		ExpiresAt:      now.Add(s.ttl),
		CreatedAt:      now,
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenIssue, err)
	}

	metrics.DelegatedTokensTotal.WithLabelValues("issue", "ok").Inc()
	s.activity.Record(domain.NewActivity(requester, domain.ActionIssue, domain.EntityToken, record.ID, municipality.Name))
	s.log.Info().
		Str("super_admin_id", requester.User.ID).
		Str("municipality_id", municipality.ID).
		Time("expires_at", record.ExpiresAt).
		Msg("delegated login token issued")

	return &domain.IssuedToken{Token: raw, ExpiresAt: record.ExpiresAt}, nil
}

// Consume redeems token exactly once.
func (s *DelegatedTokenService) Consume(ctx context.Context, token string) (*domain.DelegatedGrant, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		metrics.DelegatedTokensTotal.WithLabelValues("consume", "rejected").Inc()
		return nil, domain.ErrInvalidToken
	}

	record, err := s.tokens.Consume(ctx, domain.HashToken(token), s.now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) {
			metrics.DelegatedTokensTotal.WithLabelValues("consume", "rejected").Inc()
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenConsume, err)
	}

	metrics.DelegatedTokensTotal.WithLabelValues("consume", "ok").Inc()
	return &domain.DelegatedGrant{
		MunicipalityID: record.MunicipalityID,
		SuperAdminID:   record.SuperAdminID,
		SuperAdminName: record.SuperAdminName,
	}, nil
}

// DelegatedSession redeems token and signs a MUNICIPAL_ADMIN session for
// the granted municipality, attributed to the issuing super admin.
func (s *DelegatedTokenService) DelegatedSession(ctx context.Context, token string) (*domain.Session, string, error) {
	grant, err := s.Consume(ctx, token)
	if err != nil {
		return nil, "", err
	}

	user := domain.SessionUser{
		ID:             grant.SuperAdminID,
		Username:       "super-admin",
		Name:           grant.SuperAdminName,
		Role:           domain.RoleMunicipalAdmin,
		MunicipalityID: grant.MunicipalityID,
		IsActive:       true,
		DelegatedBy:    grant.SuperAdminID,
	}
	signed, session, err := s.codec.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", domain.ErrTokenConsume, err)
	}

	s.activity.Record(domain.NewActivity(session, domain.ActionConsume, domain.EntityToken, grant.MunicipalityID, grant.SuperAdminName))
	s.log.Info().
		Str("super_admin_id", grant.SuperAdminID).
		Str("municipality_id", grant.MunicipalityID).
		Msg("delegated session opened")

	return session, signed, nil
}
