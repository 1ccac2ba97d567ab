package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

// ProfileCounters feed the profile stat cards.
type ProfileCounters struct {
	Projects    ports.ItemCounter
	Awards      ports.ItemCounter
	Legislation ports.ItemCounter
	Programs    ports.ItemCounter
	Education   ports.ItemCounter
}

// ProfileServiceDeps groups the collaborators of ProfileService.
type ProfileServiceDeps struct {
	Profiles       ports.ProfileRepository
	ServicePeriods ports.SubItemRepository[domain.ServicePeriod]
	Counters       ProfileCounters
	// Children are emptied when a profile is deleted.
	Children []ports.OwnerCleaner
	Activity ports.ActivityRecorder
	Logger   zerolog.Logger
}

type ProfileService struct {
	profiles ports.ProfileRepository
	periods  ports.SubItemRepository[domain.ServicePeriod]
	counters ProfileCounters
	children []ports.OwnerCleaner
	activity ports.ActivityRecorder
	now      func() time.Time
	logger   zerolog.Logger
}

func NewProfileService(deps ProfileServiceDeps) *ProfileService {
	return &ProfileService{
		profiles: deps.Profiles,
		periods:  deps.ServicePeriods,
		counters: deps.Counters,
		children: deps.Children,
		activity: deps.Activity,
		now:      time.Now,
		logger:   deps.Logger,
	}
}

func (s *ProfileService) List(ctx context.Context, includeInactive bool) ([]*domain.Profile, error) {
	return s.profiles.List(ctx, !includeInactive)
}

func (s *ProfileService) Get(ctx context.Context, id string) (*domain.Profile, error) {
	return s.profiles.FindByID(ctx, id)
}

func (s *ProfileService) GetBySlug(ctx context.Context, slug string) (*domain.Profile, error) {
	return s.profiles.FindBySlug(ctx, slug)
}

// GetByPosition returns the active profile with slug, provided it holds the
// position named by positionSlug.
func (s *ProfileService) GetByPosition(ctx context.Context, positionSlug, slug string) (*domain.Profile, error) {
	category, ok := domain.PositionFromURLSlug(positionSlug)
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	p, err := s.profiles.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.IsActive || p.PositionCategory != category {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

// ListByPosition returns the active holders of a position, sorted by positionOrder.
func (s *ProfileService) ListByPosition(ctx context.Context, positionSlug string) ([]*domain.Profile, error) {
	category, ok := domain.PositionFromURLSlug(positionSlug)
	if !ok {
		return nil, domain.NewValidationError("position", "unknown position %q", positionSlug)
	}
	all, err := s.profiles.List(ctx, true)
	if err != nil {
		return nil, err
	}
	return domain.FilterByCategory(all, category), nil
}

func (s *ProfileService) ProvincialOfficials(ctx context.Context) (*domain.ProvincialOfficials, error) {
	all, err := s.profiles.List(ctx, true)
	if err != nil {
		return nil, err
	}
	grouped := domain.GroupProvincialOfficials(all)
	return &grouped, nil
}

// CheckUniquePositionExists reports whether another active profile already
// holds the singleton category. The answer is advisory: two concurrent
// writers can both observe false.
func (s *ProfileService) CheckUniquePositionExists(ctx context.Context, category domain.PositionCategory, excludeID string) (bool, error) {
	if !category.Singleton() {
		return false, nil
	}
	all, err := s.profiles.List(ctx, true)
	if err != nil {
		return false, err
	}
	return domain.UniquePositionHolder(all, category, excludeID), nil
}

// Stats builds the stat cards of a profile.
func (s *ProfileService) Stats(ctx context.Context, id string, publicOnly bool) (*ports.ProfileStats, error) {
	p, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if publicOnly && !p.IsActive {
		return nil, domain.ErrProfileNotFound
	}

	periods, err := s.periods.List(ctx, id)
	if err != nil {
		return nil, err
	}
	counts := domain.ProfileCounts{ServicePeriods: len(periods)}
	for _, c := range []struct {
		counter ports.ItemCounter
		dst     *int
	}{
		{s.counters.Projects, &counts.Projects},
		{s.counters.Awards, &counts.Awards},
		{s.counters.Legislation, &counts.Legislation},
		{s.counters.Programs, &counts.Programs},
		{s.counters.Education, &counts.Education},
	} {
		if c.counter == nil {
			continue
		}
		n, err := c.counter.Count(ctx, id)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}

	years := domain.CalculateYearsInService(periods, s.now().Year())
	return &ports.ProfileStats{
		YearsInService: years,
		Cards:          domain.BuildStatCards(p.Show, counts, years, publicOnly),
	}, nil
}

func (s *ProfileService) Create(ctx context.Context, sess *domain.Session, p *domain.Profile) (*domain.Profile, error) {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return nil, err
	}
	s.normalize(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkWrite(ctx, p, ""); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	p.ID = ""
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.profiles.Create(ctx, p); err != nil {
		return nil, slugConflict(err)
	}

	recordWrite(s.activity, sess, domain.ActionCreate, domain.EntityProfile, p.ID, p.FullName())
	s.logger.Info().Str("profile_id", p.ID).Str("slug", p.Slug).Msg("profile created")
	return p, nil
}

// Update replaces every editable field of the profile.
func (s *ProfileService) Update(ctx context.Context, sess *domain.Session, id string, p *domain.Profile) (*domain.Profile, error) {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return nil, err
	}
	existing, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.normalize(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkWrite(ctx, p, id); err != nil {
		return nil, err
	}

	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = s.now().UTC()
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, slugConflict(err)
	}

	recordWrite(s.activity, sess, domain.ActionUpdate, domain.EntityProfile, p.ID, p.FullName())
	return p, nil
}

// Patch toggles visibility, ordering and stat card flags.
func (s *ProfileService) Patch(ctx context.Context, sess *domain.Session, id string, patch ports.ProfilePatch) (*domain.Profile, error) {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return nil, err
	}
	p, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.IsActive != nil {
		if *patch.IsActive && !p.IsActive {
			taken, err := s.CheckUniquePositionExists(ctx, p.PositionCategory, p.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, singletonTaken(p.PositionCategory)
			}
		}
		p.IsActive = *patch.IsActive
	}
	if patch.PositionOrder != nil {
		p.PositionOrder = *patch.PositionOrder
	}
	if f := patch.Show; f != nil {
		setFlag(&p.Show.YearsInService, f.YearsInService)
		setFlag(&p.Show.Projects, f.Projects)
		setFlag(&p.Show.Awards, f.Awards)
		setFlag(&p.Show.Legislation, f.Legislation)
		setFlag(&p.Show.Programs, f.Programs)
		setFlag(&p.Show.Education, f.Education)
	}

	p.UpdatedAt = s.now().UTC()
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	recordWrite(s.activity, sess, domain.ActionUpdate, domain.EntityProfile, p.ID, p.FullName())
	return p, nil
}

// Delete removes the profile and then every nested collection it owns.
func (s *ProfileService) Delete(ctx context.Context, sess *domain.Session, id string) error {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return err
	}
	p, err := s.profiles.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.profiles.Delete(ctx, id); err != nil {
		return err
	}
	for _, c := range s.children {
		if err := c.DeleteByOwner(ctx, id); err != nil {
			s.logger.Warn().Err(err).Str("profile_id", id).Msg("failed to delete profile sub-collection")
		}
	}

	recordWrite(s.activity, sess, domain.ActionDelete, domain.EntityProfile, id, p.FullName())
	s.logger.Info().Str("profile_id", id).Msg("profile deleted")
	return nil
}

func (s *ProfileService) normalize(p *domain.Profile) {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Slug = domain.Slugify(p.Slug, domain.SlugMax)
}

// checkWrite enforces slug uniqueness and the single-holder rule for the
// governor, vice governor and SP secretary offices.
func (s *ProfileService) checkWrite(ctx context.Context, p *domain.Profile, excludeID string) error {
	if err := ensureSlugFree(ctx, s.profiles, p.Slug, excludeID); err != nil {
		return err
	}
	if !p.IsActive {
		return nil
	}
	held, err := s.CheckUniquePositionExists(ctx, p.PositionCategory, excludeID)
	if err != nil {
		return err
	}
	if held {
		return singletonTaken(p.PositionCategory)
	}
	return nil
}

func singletonTaken(c domain.PositionCategory) error {
	return domain.NewValidationError("positionCategory", "an active %s profile already exists", c)
}

func setFlag(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
