package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// IndexedRepository is implemented by repositories that own indexes.
type IndexedRepository interface {
	EnsureIndexes(ctx context.Context) error
}

// EnsureIndexes creates the indexes of every repository, stopping at the first failure.
func EnsureIndexes(ctx context.Context, repos ...IndexedRepository) error {
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}

func storageErr(op string, err error) error {
	return &domain.StorageError{Op: op, Err: err}
}

// writeErr maps unique index violations onto domain.ErrDuplicateKey.
func writeErr(op string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrDuplicateKey)
	}
	return storageErr(op, err)
}

// findOne decodes the single document matching filter, or returns notFound.
func findOne[T any](ctx context.Context, col *mongo.Collection, filter any, notFound error) (*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var out T
	if err := col.FindOne(ctx, filter).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, storageErr("find "+col.Name(), err)
	}
	return &out, nil
}

// findMany decodes every document matching filter.
func findMany[T any](ctx context.Context, col *mongo.Collection, filter any, opts *options.FindOptions) ([]*T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, storageErr("find "+col.Name(), err)
	}
	defer cursor.Close(ctx)

	out := []*T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, storageErr("decode "+col.Name(), err)
	}
	return out, nil
}

// replaceByID overwrites the document with id, or returns notFound.
func replaceByID(ctx context.Context, col *mongo.Collection, id string, doc any, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.ReplaceOne(ctx, bson.M{"_id": id}, doc)
	if err != nil {
		return writeErr("replace "+col.Name(), err)
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}

// updateByID applies update to the document with id, or returns notFound.
func updateByID(ctx context.Context, col *mongo.Collection, id string, update any, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.UpdateByID(ctx, id, update)
	if err != nil {
		return writeErr("update "+col.Name(), err)
	}
	if res.MatchedCount == 0 {
		return notFound
	}
	return nil
}

func deleteByID(ctx context.Context, col *mongo.Collection, id string, notFound error) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return storageErr("delete "+col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return notFound
	}
	return nil
}

// slugTaken reports whether a document other than excludeID uses slug.
func slugTaken(ctx context.Context, col *mongo.Collection, slug, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"slug": slug}
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}
	n, err := col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, storageErr("count "+col.Name(), err)
	}
	return n > 0, nil
}

// activeFilter matches documents not explicitly marked inactive, so records
// written without the flag stay visible.
func activeFilter() bson.M {
	return bson.M{"is_active": bson.M{"$ne": false}}
}

func uniqueSlugIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
}
