package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

type MunicipalityService struct {
	repo     ports.MunicipalityRepository
	children []ports.OwnerCleaner
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

// NewMunicipalityService wires the service. children are emptied when a
// municipality is deleted.
func NewMunicipalityService(repo ports.MunicipalityRepository, children []ports.OwnerCleaner, activity ports.ActivityRecorder, logger zerolog.Logger) *MunicipalityService {
	return &MunicipalityService{repo: repo, children: children, activity: activity, logger: logger}
}

func (s *MunicipalityService) List(ctx context.Context, includeInactive bool) ([]*domain.Municipality, error) {
	return s.repo.List(ctx, !includeInactive)
}

func (s *MunicipalityService) Get(ctx context.Context, id string) (*domain.Municipality, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *MunicipalityService) GetBySlug(ctx context.Context, slug string) (*domain.Municipality, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *MunicipalityService) Create(ctx context.Context, sess *domain.Session, m *domain.Municipality) (*domain.Municipality, error) {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return nil, err
	}
	normalizeMunicipality(m)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := ensureSlugFree(ctx, s.repo, m.Slug, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m.ID = ""
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, slugConflict(err)
	}

	recordWrite(s.activity, sess, domain.ActionCreate, domain.EntityMunicipality, m.ID, m.Name)
	s.logger.Info().Str("municipality_id", m.ID).Str("slug", m.Slug).Msg("municipality created")
	return m, nil
}

// Update replaces the municipality. Municipal admins may only update their own.
func (s *MunicipalityService) Update(ctx context.Context, sess *domain.Session, id string, m *domain.Municipality) (*domain.Municipality, error) {
	if err := domain.AuthorizeMunicipality(sess, id); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	normalizeMunicipality(m)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := ensureSlugFree(ctx, s.repo, m.Slug, id); err != nil {
		return nil, err
	}

	m.ID = existing.ID
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, slugConflict(err)
	}

	recordWrite(s.activity, sess, domain.ActionUpdate, domain.EntityMunicipality, m.ID, m.Name)
	return m, nil
}

func (s *MunicipalityService) Patch(ctx context.Context, sess *domain.Session, id string, patch ports.MunicipalityPatch) (*domain.Municipality, error) {
	if err := domain.AuthorizeMunicipality(sess, id); err != nil {
		return nil, err
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsActive != nil {
		m.IsActive = *patch.IsActive
	}
	if patch.Settings != nil {
		m.Settings = *patch.Settings
	}
	m.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	recordWrite(s.activity, sess, domain.ActionUpdate, domain.EntityMunicipality, m.ID, m.Name)
	return m, nil
}

func (s *MunicipalityService) Delete(ctx context.Context, sess *domain.Session, id string) error {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return err
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	for _, c := range s.children {
		if err := c.DeleteByOwner(ctx, id); err != nil {
			s.logger.Warn().Err(err).Str("municipality_id", id).Msg("failed to delete municipality sub-collection")
		}
	}

	recordWrite(s.activity, sess, domain.ActionDelete, domain.EntityMunicipality, id, m.Name)
	s.logger.Info().Str("municipality_id", id).Msg("municipality deleted")
	return nil
}

func normalizeMunicipality(m *domain.Municipality) {
	m.Name = strings.TrimSpace(m.Name)
	m.Slug = domain.Slugify(m.Slug, domain.SlugMax)
}

func ensureSlugFree(ctx context.Context, checker ports.SlugChecker, slug, excludeID string) error {
	taken, err := checker.SlugTaken(ctx, slug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return errSlugInUse
	}
	return nil
}
