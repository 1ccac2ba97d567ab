package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

type GazetteService struct {
	repo     ports.GazetteRepository
	activity ports.ActivityRecorder
	logger   zerolog.Logger
}

func NewGazetteService(repo ports.GazetteRepository, activity ports.ActivityRecorder, logger zerolog.Logger) *GazetteService {
	return &GazetteService{repo: repo, activity: activity, logger: logger}
}

func (s *GazetteService) List(ctx context.Context, filter ports.GazetteFilter) ([]*domain.Gazette, error) {
	if filter.Type != "" && filter.Type != domain.GazetteOrdinance && filter.Type != domain.GazetteResolution {
		return nil, domain.NewValidationError("type", "type must be ORDINANCE or RESOLUTION")
	}
	return s.repo.List(ctx, filter)
}

func (s *GazetteService) Years(ctx context.Context) ([]int, error) {
	return s.repo.Years(ctx)
}

func (s *GazetteService) Create(ctx context.Context, sess *domain.Session, g *domain.Gazette) (*domain.Gazette, error) {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return nil, err
	}
	g.Number = strings.TrimSpace(g.Number)
	g.FileURL = strings.TrimSpace(g.FileURL)
	if err := g.Validate(); err != nil {
		return nil, err
	}

	g.ID = ""
	g.CreatedAt = time.Now().UTC()
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}

	recordWrite(s.activity, sess, domain.ActionCreate, domain.EntityGazette, g.ID, gazetteLabel(g))
	return g, nil
}

func (s *GazetteService) Delete(ctx context.Context, sess *domain.Session, id string) error {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return err
	}
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	recordWrite(s.activity, sess, domain.ActionDelete, domain.EntityGazette, id, gazetteLabel(g))
	return nil
}

// gazetteLabel renders e.g. "ORDINANCE No. 12, s. 2024".
func gazetteLabel(g *domain.Gazette) string {
	return fmt.Sprintf("%s No. %s, s. %d", g.Type, g.Number, g.Year)
}
