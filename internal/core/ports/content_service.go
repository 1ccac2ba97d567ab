package ports

import (
	"context"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

// ItemCounter counts an owner's nested items.
type ItemCounter interface {
	Count(ctx context.Context, ownerID string) (int, error)
}

// OwnerCleaner removes every nested item of an owner.
type OwnerCleaner interface {
	DeleteByOwner(ctx context.Context, ownerID string) error
}

// ActivityRecorder accepts audit entries on a best-effort basis.
type ActivityRecorder interface {
	Record(a domain.Activity)
}

// ProfilePatch carries the fields a PATCH may toggle. Nil means unchanged.
type ProfilePatch struct {
	IsActive      *bool
	PositionOrder *int
	Show          *ShowFlagsPatch
}

// ShowFlagsPatch toggles individual stat cards.
type ShowFlagsPatch struct {
	YearsInService *bool
	Projects       *bool
	Awards         *bool
	Legislation    *bool
	Programs       *bool
	Education      *bool
}

// ProfileStats is the public summary of a profile's sub-collections.
type ProfileStats struct {
	YearsInService int               `json:"yearsInService"`
	Cards          []domain.StatCard `json:"cards"`
}

// ProfileService defines use-cases for official profiles.
type ProfileService interface {
	List(ctx context.Context, includeInactive bool) ([]*domain.Profile, error)
	Get(ctx context.Context, id string) (*domain.Profile, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Profile, error)
	GetByPosition(ctx context.Context, positionSlug, slug string) (*domain.Profile, error)
	ListByPosition(ctx context.Context, positionSlug string) ([]*domain.Profile, error)
	ProvincialOfficials(ctx context.Context) (*domain.ProvincialOfficials, error)
	CheckUniquePositionExists(ctx context.Context, category domain.PositionCategory, excludeID string) (bool, error)
	Stats(ctx context.Context, id string, publicOnly bool) (*ProfileStats, error)
	Create(ctx context.Context, s *domain.Session, p *domain.Profile) (*domain.Profile, error)
	Update(ctx context.Context, s *domain.Session, id string, p *domain.Profile) (*domain.Profile, error)
	Patch(ctx context.Context, s *domain.Session, id string, patch ProfilePatch) (*domain.Profile, error)
	Delete(ctx context.Context, s *domain.Session, id string) error
}

// MunicipalityPatch carries the fields a PATCH may change.
type MunicipalityPatch struct {
	IsActive *bool
	Settings *domain.MunicipalitySettings
}

// MunicipalityService defines use-cases for municipalities.
type MunicipalityService interface {
	List(ctx context.Context, includeInactive bool) ([]*domain.Municipality, error)
	Get(ctx context.Context, id string) (*domain.Municipality, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Municipality, error)
	Create(ctx context.Context, s *domain.Session, m *domain.Municipality) (*domain.Municipality, error)
	Update(ctx context.Context, s *domain.Session, id string, m *domain.Municipality) (*domain.Municipality, error)
	Patch(ctx context.Context, s *domain.Session, id string, patch MunicipalityPatch) (*domain.Municipality, error)
	Delete(ctx context.Context, s *domain.Session, id string) error
}

// DirectoryPatch carries the fields a PATCH may change.
type DirectoryPatch struct {
	IsActive *bool
	Order    *int
}

// DirectoryService defines use-cases for the office directory.
type DirectoryService interface {
	List(ctx context.Context, filter DirectoryFilter) ([]*domain.Directory, error)
	Get(ctx context.Context, id string) (*domain.Directory, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Directory, error)
	Create(ctx context.Context, s *domain.Session, d *domain.Directory) (*domain.Directory, error)
	Update(ctx context.Context, s *domain.Session, id string, d *domain.Directory) (*domain.Directory, error)
	Patch(ctx context.Context, s *domain.Session, id string, patch DirectoryPatch) (*domain.Directory, error)
	Delete(ctx context.Context, s *domain.Session, id string) error
}

// NewsService defines use-cases for provincial news.
type NewsService interface {
	List(ctx context.Context, publishedOnly bool) ([]*domain.News, error)
	Featured(ctx context.Context) ([]*domain.News, error)
	Get(ctx context.Context, id string) (*domain.News, error)
	GetBySlug(ctx context.Context, slug string) (*domain.News, error)
	Create(ctx context.Context, s *domain.Session, n *domain.News) (*domain.News, error)
	Update(ctx context.Context, s *domain.Session, id string, n *domain.News) (*domain.News, error)
	SetFeatured(ctx context.Context, s *domain.Session, id string, featured bool) error
	Publish(ctx context.Context, s *domain.Session, id string) error
	Unpublish(ctx context.Context, s *domain.Session, id string) error
	Delete(ctx context.Context, s *domain.Session, id string) error
}

// GazetteService defines use-cases for the official gazette.
type GazetteService interface {
	List(ctx context.Context, filter GazetteFilter) ([]*domain.Gazette, error)
	Years(ctx context.Context) ([]int, error)
	Create(ctx context.Context, s *domain.Session, g *domain.Gazette) (*domain.Gazette, error)
	Delete(ctx context.Context, s *domain.Session, id string) error
}

// ActivityService exposes the audit trail.
type ActivityService interface {
	Recent(ctx context.Context, limit int) ([]*domain.Activity, error)
}

// SubItemService defines use-cases for one nested collection.
type SubItemService[T domain.SubItem] interface {
	Kind() domain.ItemKind
	List(ctx context.Context, ownerID string) ([]T, error)
	Add(ctx context.Context, s *domain.Session, ownerID string, item T) (T, error)
	Update(ctx context.Context, s *domain.Session, ownerID, itemID string, item T) (T, error)
	Delete(ctx context.Context, s *domain.Session, ownerID, itemID string) error
	Replace(ctx context.Context, s *domain.Session, ownerID string, items []T) ([]T, error)
}

// RateLimiter decides whether one more request under key is allowed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (allowed bool, remaining int64, retryAfterMs int64, err error)
}
