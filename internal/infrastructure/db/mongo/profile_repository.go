package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

const collectionProfiles = "profiles"

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles)}
}

// Create inserts a new profile document and assigns its ID.
func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	p.ID = newID()
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		p.ID = ""
		return writeErr("insert profile", err)
	}
	return nil
}

// List returns profiles sorted by last name, then first name.
func (r *ProfileRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Profile, error) {
	filter := bson.M{}
	if activeOnly {
		filter = activeFilter()
	}
	opts := options.Find().SetSort(bson.D{{Key: "last_name", Value: 1}, {Key: "first_name", Value: 1}})
	return findMany[domain.Profile](ctx, r.col, filter, opts)
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	return findOne[domain.Profile](ctx, r.col, bson.M{"_id": id}, domain.ErrProfileNotFound)
}

func (r *ProfileRepository) FindBySlug(ctx context.Context, slug string) (*domain.Profile, error) {
	return findOne[domain.Profile](ctx, r.col, bson.M{"slug": slug}, domain.ErrProfileNotFound)
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	return replaceByID(ctx, r.col, p.ID, p, domain.ErrProfileNotFound)
}

func (r *ProfileRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrProfileNotFound)
}

func (r *ProfileRepository) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugTaken(ctx, r.col, slug, excludeID)
}

// EnsureIndexes creates necessary indexes on the profiles collection.
func (r *ProfileRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		uniqueSlugIndex(),
		{Keys: bson.D{{Key: "last_name", Value: 1}}},
		{Keys: bson.D{{Key: "position_category", Value: 1}, {Key: "position_order", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
