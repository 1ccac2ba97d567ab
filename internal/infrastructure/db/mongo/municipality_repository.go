package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

const collectionMunicipalities = "municipalities"

type MunicipalityRepository struct {
	col *mongo.Collection
}

func NewMunicipalityRepository(db *mongo.Database) *MunicipalityRepository {
	return &MunicipalityRepository{col: db.Collection(collectionMunicipalities)}
}

func (r *MunicipalityRepository) Create(ctx context.Context, m *domain.Municipality) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	m.ID = newID()
	if _, err := r.col.InsertOne(ctx, m); err != nil {
		m.ID = ""
		return writeErr("insert municipality", err)
	}
	return nil
}

func (r *MunicipalityRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Municipality, error) {
	filter := bson.M{}
	if activeOnly {
		filter = activeFilter()
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findMany[domain.Municipality](ctx, r.col, filter, opts)
}

func (r *MunicipalityRepository) FindByID(ctx context.Context, id string) (*domain.Municipality, error) {
	return findOne[domain.Municipality](ctx, r.col, bson.M{"_id": id}, domain.ErrMunicipalityNotFound)
}

func (r *MunicipalityRepository) FindBySlug(ctx context.Context, slug string) (*domain.Municipality, error) {
	return findOne[domain.Municipality](ctx, r.col, bson.M{"slug": slug}, domain.ErrMunicipalityNotFound)
}

func (r *MunicipalityRepository) Update(ctx context.Context, m *domain.Municipality) error {
	return replaceByID(ctx, r.col, m.ID, m, domain.ErrMunicipalityNotFound)
}

func (r *MunicipalityRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrMunicipalityNotFound)
}

func (r *MunicipalityRepository) SlugTaken(ctx context.Context, slug, excludeID string) (bool, error) {
	return slugTaken(ctx, r.col, slug, excludeID)
}

func (r *MunicipalityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		uniqueSlugIndex(),
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})
	return err
}
