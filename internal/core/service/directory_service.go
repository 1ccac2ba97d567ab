package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

type DirectoryService struct {
	repo     ports.DirectoryRepository
	children []ports.OwnerCleaner
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewDirectoryService(repo ports.DirectoryRepository, children []ports.OwnerCleaner, activity ports.ActivityRecorder, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{repo: repo, children: children, activity: activity, logger: logger}
}

func (s *DirectoryService) List(ctx context.Context, filter ports.DirectoryFilter) ([]*domain.Directory, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, domain.NewValidationError("category", "unknown directory category %q", filter.Category)
	}
	return s.repo.List(ctx, filter)
}

func (s *DirectoryService) Get(ctx context.Context, id string) (*domain.Directory, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *DirectoryService) GetBySlug(ctx context.Context, slug string) (*domain.Directory, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *DirectoryService) Create(ctx context.Context, sess *domain.Session, d *domain.Directory) (*domain.Directory, error) {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return nil, err
	}
	normalizeDirectory(d)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := ensureSlugFree(ctx, s.repo, d.Slug, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	d.ID = ""
	d.CreatedAt = now
	d.UpdatedAt = now
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, slugConflict(err)
	}

	recordWrite(s.activity, sess, domain.ActionCreate, domain.EntityDirectory, d.ID, d.Name)
	s.logger.Info().Str("directory_id", d.ID).Str("slug", d.Slug).Msg("directory entry created")
	return d, nil
}

func (s *DirectoryService) Update(ctx context.Context, sess *domain.Session, id string, d *domain.Directory) (*domain.Directory, error) {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	normalizeDirectory(d)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := ensureSlugFree(ctx, s.repo, d.Slug, id); err != nil {
		return nil, err
	}

	d.ID = existing.ID
	d.CreatedAt = existing.CreatedAt
	d.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, slugConflict(err)
	}

	recordWrite(s.activity, sess, domain.ActionUpdate, domain.EntityDirectory, d.ID, d.Name)
	return d, nil
}

func (s *DirectoryService) Patch(ctx context.Context, sess *domain.Session, id string, patch ports.DirectoryPatch) (*domain.Directory, error) {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return nil, err
	}
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.IsActive != nil {
		d.IsActive = *patch.IsActive
	}
	if patch.Order != nil {
		d.Order = *patch.Order
	}
	d.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}

	recordWrite(s.activity, sess, domain.ActionUpdate, domain.EntityDirectory, d.ID, d.Name)
	return d, nil
}

func (s *DirectoryService) Delete(ctx context.Context, sess *domain.Session, id string) error {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return err
	}
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	for _, c := range s.children {
		if err := c.DeleteByOwner(ctx, id); err != nil {
			s.logger.Warn().Err(err).Str("directory_id", id).Msg("failed to delete directory sub-collection")
		}
	}

	recordWrite(s.activity, sess, domain.ActionDelete, domain.EntityDirectory, id, d.Name)
	return nil
}

// normalizeDirectory derives the slug from the name when none is given and
// defaults the category to OTHER.
func normalizeDirectory(d *domain.Directory) {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	if strings.TrimSpace(d.Slug) == "" {
		d.Slug = domain.Slugify(d.Name, domain.SlugMax)
	} else {
		d.Slug = domain.Slugify(d.Slug, domain.SlugMax)
	}
	if d.Category == "" {
		d.Category = domain.DirectoryOther
	}
}
