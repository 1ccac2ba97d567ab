package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

// OwnerCheck returns a not-found error when the owner document is missing.
type OwnerCheck func(ctx context.Context, ownerID string) error

// OwnerExists adapts a repository lookup to an OwnerCheck.
func OwnerExists[D any](find func(ctx context.Context, id string) (*D, error)) OwnerCheck {
	return func(ctx context.Context, ownerID string) error {
		_, err := find(ctx, ownerID)
		return err
	}
}

// OwnerAuthorizer decides whether a session may write under ownerID.
type OwnerAuthorizer func(s *domain.Session, ownerID string) error

// ProvinceWriter only lets province-level roles write.
func ProvinceWriter(s *domain.Session, _ string) error {
	return domain.AuthorizeRoles(s, domain.ProvinceRoles...)
}

// MunicipalityWriter applies the municipality scope of the session.
func MunicipalityWriter(s *domain.Session, municipalityID string) error {
	return domain.AuthorizeMunicipality(s, municipalityID)
}

// SubItemService implements the CRUD use-cases of one nested collection.
type SubItemService[T domain.SubItem] struct {
	kind      domain.ItemKind
	repo      ports.SubItemRepository[T]
	owner     OwnerCheck
	authorize OwnerAuthorizer
	activity  ports.ActivityRecorder
	logger    zerolog.Logger
}

func NewSubItemService[T domain.SubItem](
	kind domain.ItemKind,
	repo ports.SubItemRepository[T],
	owner OwnerCheck,
	authorize OwnerAuthorizer,
	activity ports.ActivityRecorder,
	logger zerolog.Logger,
) *SubItemService[T] {
	return &SubItemService[T]{
		kind:      kind,
		repo:      repo,
		owner:     owner,
		authorize: authorize,
		activity:  activity,
		logger:    logger.With().Str("collection", kind.Collection).Logger(),
	}
}

func (s *SubItemService[T]) Kind() domain.ItemKind { return s.kind }

func (s *SubItemService[T]) List(ctx context.Context, ownerID string) ([]T, error) {
	if err := s.owner(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ownerID)
}

func (s *SubItemService[T]) Add(ctx context.Context, sess *domain.Session, ownerID string, item T) (T, error) {
	var zero T
	if err := s.prepareWrite(ctx, sess, ownerID); err != nil {
		return zero, err
	}
	if err := prepareItem(&item); err != nil {
		return zero, err
	}

	stored, err := s.repo.Add(ctx, ownerID, item)
	if err != nil {
		return zero, err
	}
	s.record(sess, domain.ActionCreate, ownerID)
	return stored, nil
}

func (s *SubItemService[T]) Update(ctx context.Context, sess *domain.Session, ownerID, itemID string, item T) (T, error) {
	var zero T
	if err := s.prepareWrite(ctx, sess, ownerID); err != nil {
		return zero, err
	}
	if err := prepareItem(&item); err != nil {
		return zero, err
	}

	stored, err := s.repo.Update(ctx, ownerID, itemID, item)
	if err != nil {
		return zero, err
	}
	s.record(sess, domain.ActionUpdate, ownerID)
	return stored, nil
}

func (s *SubItemService[T]) Delete(ctx context.Context, sess *domain.Session, ownerID, itemID string) error {
	if err := s.prepareWrite(ctx, sess, ownerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, ownerID, itemID); err != nil {
		return err
	}
	s.record(sess, domain.ActionDelete, ownerID)
	return nil
}

// Replace swaps the owner's whole list. Every item is validated before
// anything is written.
func (s *SubItemService[T]) Replace(ctx context.Context, sess *domain.Session, ownerID string, items []T) ([]T, error) {
	if err := s.prepareWrite(ctx, sess, ownerID); err != nil {
		return nil, err
	}
	for i := range items {
		if err := prepareItem(&items[i]); err != nil {
			return nil, err
		}
	}

	stored, err := s.repo.Replace(ctx, ownerID, items)
	if err != nil {
		return nil, err
	}
	s.record(sess, domain.ActionUpdate, ownerID)
	s.logger.Debug().Str("owner_id", ownerID).Int("items", len(stored)).Msg("collection replaced")
	return stored, nil
}

func (s *SubItemService[T]) prepareWrite(ctx context.Context, sess *domain.Session, ownerID string) error {
	if err := s.authorize(sess, ownerID); err != nil {
		return err
	}
	return s.owner(ctx, ownerID)
}

func (s *SubItemService[T]) record(sess *domain.Session, action, ownerID string) {
	recordWrite(s.activity, sess, action, string(s.kind.Owner), ownerID, s.kind.Path)
}

func prepareItem[T domain.SubItem](item *T) error {
	if n, ok := any(item).(domain.Normalizer); ok {
		n.Normalize()
	}
	return (*item).Validate()
}
