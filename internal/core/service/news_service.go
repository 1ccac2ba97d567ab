package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

type NewsService struct {
	repo     ports.NewsRepository
	activity ports.ActivityRecorder
	now      func() time.Time
	logger   zerolog.Logger
}

func NewNewsService(repo ports.NewsRepository, activity ports.ActivityRecorder, logger zerolog.Logger) *NewsService {
	return &NewsService{repo: repo, activity: activity, now: time.Now, logger: logger}
}

func (s *NewsService) List(ctx context.Context, publishedOnly bool) ([]*domain.News, error) {
	return s.repo.List(ctx, ports.NewsFilter{PublishedOnly: publishedOnly})
}

// Featured returns the newest published featured articles.
func (s *NewsService) Featured(ctx context.Context) ([]*domain.News, error) {
	return s.repo.List(ctx, ports.NewsFilter{PublishedOnly: true, FeaturedOnly: true, Limit: domain.FeaturedNewsLimit})
}

func (s *NewsService) Get(ctx context.Context, id string) (*domain.News, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *NewsService) GetBySlug(ctx context.Context, slug string) (*domain.News, error) {
	return s.repo.FindBySlug(ctx, slug)
}

func (s *NewsService) Create(ctx context.Context, sess *domain.Session, n *domain.News) (*domain.News, error) {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return nil, err
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	n.Derive()
	if n.Slug == "" {
		return nil, domain.NewValidationError("slug", "title must contain letters or digits")
	}
	if err := ensureSlugFree(ctx, s.repo, n.Slug, ""); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	n.ID = ""
	n.AuthorID = sess.User.ID
	n.AuthorName = sess.User.Name
	n.PublishedAt = nil
	if n.Published {
		n.PublishedAt = &now
	}
	n.CreatedAt = now
	n.UpdatedAt = now
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, slugConflict(err)
	}

	recordWrite(s.activity, sess, domain.ActionCreate, domain.EntityNews, n.ID, n.Title)
	s.logger.Info().Str("news_id", n.ID).Str("slug", n.Slug).Bool("published", n.Published).Msg("news created")
	return n, nil
}

// Update replaces the article. The excerpt is regenerated when the content
// changed and no excerpt was sent, and publishedAt is stamped the first
// time the article is published.
func (s *NewsService) Update(ctx context.Context, sess *domain.Session, id string, n *domain.News) (*domain.News, error) {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return nil, err
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(n.Excerpt) == "" && n.Content == existing.Content {
		n.Excerpt = existing.Excerpt
	}
	n.Derive()
	if n.Slug == "" {
		return nil, domain.NewValidationError("slug", "title must contain letters or digits")
	}
	if err := ensureSlugFree(ctx, s.repo, n.Slug, id); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	n.ID = existing.ID
	n.AuthorID = existing.AuthorID
	n.AuthorName = existing.AuthorName
	n.CreatedAt = existing.CreatedAt
	n.PublishedAt = existing.PublishedAt
	if n.Published && n.PublishedAt == nil {
		n.PublishedAt = &now
	}
	n.UpdatedAt = now
	if err := s.repo.Update(ctx, n); err != nil {
		return nil, slugConflict(err)
	}

	recordWrite(s.activity, sess, domain.ActionUpdate, domain.EntityNews, n.ID, n.Title)
	return n, nil
}

func (s *NewsService) SetFeatured(ctx context.Context, sess *domain.Session, id string, featured bool) error {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return err
	}
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SetFeatured(ctx, id, featured); err != nil {
		return err
	}
	recordWrite(s.activity, sess, domain.ActionUpdate, domain.EntityNews, id, n.Title)
	return nil
}

func (s *NewsService) Publish(ctx context.Context, sess *domain.Session, id string) error {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return err
	}
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	var at *time.Time
	if n.PublishedAt == nil {
		now := s.now().UTC()
		at = &now
	}
	if err := s.repo.SetPublished(ctx, id, true, at); err != nil {
		return err
	}
	recordWrite(s.activity, sess, domain.ActionPublish, domain.EntityNews, id, n.Title)
	return nil
}

// Unpublish hides the article. The original publish date is kept.
func (s *NewsService) Unpublish(ctx context.Context, sess *domain.Session, id string) error {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return err
	}
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SetPublished(ctx, id, false, nil); err != nil {
		return err
	}
	recordWrite(s.activity, sess, domain.ActionUnpublish, domain.EntityNews, id, n.Title)
	return nil
}

func (s *NewsService) Delete(ctx context.Context, sess *domain.Session, id string) error {
	if err := domain.AuthorizeRoles(sess, domain.ProvinceRoles...); err != nil {
		return err
	}
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	recordWrite(s.activity, sess, domain.ActionDelete, domain.EntityNews, id, n.Title)
	s.logger.Info().Str("news_id", id).Msg("news deleted")
	return nil
}
