package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

const collectionNews = "news"

type NewsRepository struct {
	col *mongo.Collection
}

func NewNewsRepository(db *mongo.Database) *NewsRepository {
	return &NewsRepository{col: db.Collection(collectionNews)}
}

func (r *NewsRepository) Create(ctx context.Context, n *domain.News) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n.ID = newID()
	if _, err := r.col.InsertOne(ctx, n); err != nil {
		n.ID = ""
		return writeErr("insert news", err)
	}
	return nil
}

// List sorts published listings by publication date and everything else
// by creation date, newest first.
func (r *NewsRepository) List(ctx context.Context, f ports.NewsFilter) ([]*domain.News, error) {
	filter := bson.M{}
	sortKey := "created_at"
	if f.PublishedOnly {
		filter["published"] = true
		sortKey = "published_at"
	}
	if f.FeaturedOnly {
		filter["featured"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: sortKey, Value: -1}, {Key: "_id", Value: 1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	return findMany[domain.News](ctx, r.col, filter, opts)
}

func (r *NewsRepository) FindByID(ctx context.Context, id string) (*domain.News, error) {
	return findOne[domain.News](ctx, r.col, bson.M{"_id": id}, domain.ErrNewsNotFound)
}

func (r *NewsRepository) FindBySlug(ctx context.Context, slug string) (*domain.News, error) {
	return findOne[domain.News](ctx, r.col, bson.M{"slug": slug}, domain.ErrNewsNotFound)
}

func (r *NewsRepository) Update(ctx context.Context, n *domain.News) error {
	return replaceByID(ctx, r.col, n.ID, n, domain.ErrNewsNotFound)
}

func (r *NewsRepository) SetFeatured(ctx context.Context, id string, featured bool) error {
	update := bson.M{"$set": bson.M{"featured": featured, "updated_at": time.Now().UTC()}}
	return updateByID(ctx, r.col, id, update, domain.ErrNewsNotFound)
}

func (r *NewsRepository) SetPublished(ctx context.Context, id string, published bool, publishedAt *time.Time) error {
	set := bson.M{"published": published, "updated_at": time.Now().UTC()}
	if publishedAt != nil {
		set["published_at"] = *publishedAt
	}
	return updateByID(ctx, r.col, id, bson.M{"$set": set}, domain.ErrNewsNotFound)
}

func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrNewsNotFound)
}

func (r *NewsRepository) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugTaken(ctx, r.col, slug, excludeID)
}

func (r *NewsRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		uniqueSlugIndex(),
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "published_at", Value: -1}}},
		{Keys: bson.D{{Key: "featured", Value: 1}, {Key: "published_at", Value: -1}}},
	})
	return err
}
