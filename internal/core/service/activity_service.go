package service

import (
	"context"
	"errors"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
	"github.com/tawitawi/provincial-portal/internal/pkg/metrics"
)

// MaxActivityLimit caps the size of one activity page.
const MaxActivityLimit = 100

var errSlugInUse = domain.NewValidationError("slug", "slug already in use")

type ActivityService struct {
	repo ports.ActivityRepository
}

func NewActivityService(repo ports.ActivityRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// Recent returns the newest entries. Non-positive limits fall back to the
// default and large ones are capped.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]*domain.Activity, error) {
	switch {
	case limit <= 0:
		limit = domain.ActivityLimit
	case limit > MaxActivityLimit:
		limit = MaxActivityLimit
	}
	return s.repo.Recent(ctx, limit)
}

// recordWrite counts a successful mutation and hands it to the audit trail.
func recordWrite(rec ports.ActivityRecorder, sess *domain.Session, action, entity, id, name string) {
	metrics.ContentWritesTotal.WithLabelValues(entity, action).Inc()
	if rec != nil {
		rec.Record(domain.NewActivity(sess, action, entity, id, name))
	}
}

// slugConflict turns a unique index violation raised by a concurrent writer
// into the same error the pre-check returns.
func slugConflict(err error) error {
	if errors.Is(err, domain.ErrDuplicateKey) {
		return errSlugInUse
	}
	return err
}
