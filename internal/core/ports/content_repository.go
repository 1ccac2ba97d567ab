package ports

import (
	"context"
	"time"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

// SlugChecker reports whether slug is held by a document other than excludeID.
type SlugChecker interface {
	SlugTaken(ctx context.Context, slug, excludeID string) (bool, error)
}

// ProfileRepository defines persistence for official profiles.
type ProfileRepository interface {
	SlugChecker
	// List returns profiles sorted by last name. When activeOnly is set,
	// profiles explicitly marked inactive are left out.
	List(ctx context.Context, activeOnly bool) ([]*domain.Profile, error)
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Profile, error)
	Create(ctx context.Context, p *domain.Profile) error
	Update(ctx context.Context, p *domain.Profile) error
	Delete(ctx context.Context, id string) error
}

// MunicipalityRepository defines persistence for municipalities.
type MunicipalityRepository interface {
	SlugChecker
	// List returns municipalities sorted by name.
	List(ctx context.Context, activeOnly bool) ([]*domain.Municipality, error)
	FindByID(ctx context.Context, id string) (*domain.Municipality, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Municipality, error)
	Create(ctx context.Context, m *domain.Municipality) error
	Update(ctx context.Context, m *domain.Municipality) error
	Delete(ctx context.Context, id string) error
}

// DirectoryFilter narrows a directory listing.
type DirectoryFilter struct {
	Category   domain.DirectoryCategory // empty = every category
	ActiveOnly bool
}

// DirectoryRepository defines persistence for directory entries.
type DirectoryRepository interface {
	SlugChecker
	// List returns entries sorted by order ascending.
	List(ctx context.Context, filter DirectoryFilter) ([]*domain.Directory, error)
	FindByID(ctx context.Context, id string) (*domain.Directory, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Directory, error)
	Create(ctx context.Context, d *domain.Directory) error
	Update(ctx context.Context, d *domain.Directory) error
	Delete(ctx context.Context, id string) error
}

// NewsFilter narrows a news listing.
type NewsFilter struct {
	PublishedOnly bool // sorted by published_at desc when set, created_at desc otherwise
	FeaturedOnly  bool
	Limit         int // 0 = no limit
}

// NewsRepository defines persistence for provincial news.
type NewsRepository interface {
	SlugChecker
	List(ctx context.Context, filter NewsFilter) ([]*domain.News, error)
	FindByID(ctx context.Context, id string) (*domain.News, error)
	FindBySlug(ctx context.Context, slug string) (*domain.News, error)
	Create(ctx context.Context, n *domain.News) error
	Update(ctx context.Context, n *domain.News) error
	SetFeatured(ctx context.Context, id string, featured bool) error
	// SetPublished flips the published flag. publishedAt is only written when non-nil.
	SetPublished(ctx context.Context, id string, published bool, publishedAt *time.Time) error
	Delete(ctx context.Context, id string) error
}

// GazetteFilter narrows a gazette listing.
type GazetteFilter struct {
	Type domain.GazetteType // empty = both types
	Year int                // 0 = every year
}

// GazetteRepository defines persistence for ordinances and resolutions.
type GazetteRepository interface {
	// List returns entries sorted by year desc, then created_at desc.
	List(ctx context.Context, filter GazetteFilter) ([]*domain.Gazette, error)
	Years(ctx context.Context) ([]int, error)
	FindByID(ctx context.Context, id string) (*domain.Gazette, error)
	Create(ctx context.Context, g *domain.Gazette) error
	Delete(ctx context.Context, id string) error
}

// ActivityRepository persists the admin audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
	Recent(ctx context.Context, limit int) ([]*domain.Activity, error)
}

// SubItemRepository persists one nested collection of items owned by a
// parent document.
type SubItemRepository[T domain.SubItem] interface {
	// List returns the owner's items sorted by order ascending.
	List(ctx context.Context, ownerID string) ([]T, error)
	Count(ctx context.Context, ownerID string) (int, error)
	// Add stores item under ownerID and returns it with its new ID.
	Add(ctx context.Context, ownerID string, item T) (T, error)
	// Update overwrites the item's fields and returns the stored result.
	Update(ctx context.Context, ownerID, itemID string, item T) (T, error)
	Delete(ctx context.Context, ownerID, itemID string) error
	// Replace swaps the owner's whole list for items.
	Replace(ctx context.Context, ownerID string, items []T) ([]T, error)
	DeleteByOwner(ctx context.Context, ownerID string) error
}
