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

const collectionDirectories = "directories"

type DirectoryRepository struct {
	col *mongo.Collection
}

func NewDirectoryRepository(db *mongo.Database) *DirectoryRepository {
	return &DirectoryRepository{col: db.Collection(collectionDirectories)}
}

func (r *DirectoryRepository) Create(ctx context.Context, d *domain.Directory) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	d.ID = newID()
	if _, err := r.col.InsertOne(ctx, d); err != nil {
		d.ID = ""
		return writeErr("insert directory", err)
	}
	return nil
}

// List returns entries sorted by order, then name.
func (r *DirectoryRepository) List(ctx context.Context, f ports.DirectoryFilter) ([]*domain.Directory, error) {
	filter := bson.M{}
	if f.ActiveOnly {
		filter = activeFilter()
	}
	if f.Category != "" {
		filter["category"] = string(f.Category)
	}
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}})
	return findMany[domain.Directory](ctx, r.col, filter, opts)
}

func (r *DirectoryRepository) FindByID(ctx context.Context, id string) (*domain.Directory, error) {
	return findOne[domain.Directory](ctx, r.col, bson.M{"_id": id}, domain.ErrDirectoryNotFound)
}

func (r *DirectoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Directory, error) {
	return findOne[domain.Directory](ctx, r.col, bson.M{"slug": slug}, domain.ErrDirectoryNotFound)
}

func (r *DirectoryRepository) Update(ctx context.Context, d *domain.Directory) error {
	return replaceByID(ctx, r.col, d.ID, d, domain.ErrDirectoryNotFound)
}

func (r *DirectoryRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrDirectoryNotFound)
}

func (r *DirectoryRepository) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugTaken(ctx, r.col, slug, excludeID)
}

func (r *DirectoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		uniqueSlugIndex(),
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "order", Value: 1}}},
	})
	return err
}
