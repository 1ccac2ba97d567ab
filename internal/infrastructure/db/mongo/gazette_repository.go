package mongo

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
	"github.com/tawitawi/provincial-portal/internal/core/ports"
)

const collectionGazette = "gazette"

type GazetteRepository struct {
	col *mongo.Collection
}

func NewGazetteRepository(db *mongo.Database) *GazetteRepository {
	return &GazetteRepository{col: db.Collection(collectionGazette)}
}

func (r *GazetteRepository) Create(ctx context.Context, g *domain.Gazette) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	g.ID = newID()
	if _, err := r.col.InsertOne(ctx, g); err != nil {
		g.ID = ""
		return writeErr("insert gazette", err)
	}
	return nil
}

func (r *GazetteRepository) List(ctx context.Context, f ports.GazetteFilter) ([]*domain.Gazette, error) {
	filter := bson.M{}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	if f.Year > 0 {
		filter["year"] = f.Year
	}
	opts := options.Find().SetSort(bson.D{{Key: "year", Value: -1}, {Key: "created_at", Value: -1}})
	return findMany[domain.Gazette](ctx, r.col, filter, opts)
}

// Years returns the distinct years with at least one entry, newest first.
func (r *GazetteRepository) Years(ctx context.Context) ([]int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	raw, err := r.col.Distinct(ctx, "year", bson.M{})
	if err != nil {
		return nil, storageErr("distinct gazette years", err)
	}

	years := make([]int, 0, len(raw))
	for _, v := range raw {
		switch y := v.(type) {
		case int32:
			years = append(years, int(y))
		case int64:
			years = append(years, int(y))
		case float64:
			years = append(years, int(y))
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

func (r *GazetteRepository) FindByID(ctx context.Context, id string) (*domain.Gazette, error) {
	return findOne[domain.Gazette](ctx, r.col, bson.M{"_id": id}, domain.ErrGazetteNotFound)
}

func (r *GazetteRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrGazetteNotFound)
}

func (r *GazetteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "type", Value: 1}, {Key: "year", Value: -1}}},
		{Keys: bson.D{{Key: "year", Value: -1}, {Key: "created_at", Value: -1}}},
	})
	return err
}
