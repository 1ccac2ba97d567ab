package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

// SubItemRepository stores one nested collection. Each item is a document
// carrying the id of its owner.
type SubItemRepository[T domain.SubItem] struct {
	col          *mongo.Collection
	transactions bool
	log          zerolog.Logger
}

// NewSubItemRepository binds a repository to the collection of kind. When
// transactions is false, Replace runs without a multi-document transaction,
// which standalone servers do not support.
func NewSubItemRepository[T domain.SubItem](db *mongo.Database, kind domain.ItemKind, transactions bool, log zerolog.Logger) *SubItemRepository[T] {
	return &SubItemRepository[T]{
		col:          db.Collection(kind.Collection),
		transactions: transactions,
		log:          log.With().Str("collection", kind.Collection).Logger(),
	}
}

func (r *SubItemRepository[T]) List(ctx context.Context, ownerID string) ([]T, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "_id", Value: 1}})
	docs, err := findMany[T](ctx, r.col, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, len(docs))
	for _, d := range docs {
		items = append(items, *d)
	}
	return items, nil
}

func (r *SubItemRepository[T]) Count(ctx context.Context, ownerID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, storageErr("count "+r.col.Name(), err)
	}
	return int(n), nil
}

// Add inserts item under ownerID. An item without an explicit order is
// appended after the existing ones.
func (r *SubItemRepository[T]) Add(ctx context.Context, ownerID string, item T) (T, error) {
	var zero T
	doc, err := toDocument(item, newID(), ownerID)
	if err != nil {
		return zero, err
	}
	if item.Meta().Order == 0 {
		n, err := r.Count(ctx, ownerID)
		if err != nil {
			return zero, err
		}
		doc["order"] = n
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return zero, writeErr("insert "+r.col.Name(), err)
	}
	return fromDocument[T](doc)
}

// Update replaces the item's fields, keeping its id and owner.
func (r *SubItemRepository[T]) Update(ctx context.Context, ownerID, itemID string, item T) (T, error) {
	var zero T
	doc, err := toDocument(item, itemID, ownerID)
	if err != nil {
		return zero, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": itemID, "owner_id": ownerID}
	opts := options.FindOneAndReplace().SetReturnDocument(options.After)
	var out T
	if err := r.col.FindOneAndReplace(ctx, filter, doc, opts).Decode(&out); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, domain.ErrItemNotFound
		}
		return zero, writeErr("replace "+r.col.Name(), err)
	}
	return out, nil
}

func (r *SubItemRepository[T]) Delete(ctx context.Context, ownerID, itemID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": itemID, "owner_id": ownerID})
	if err != nil {
		return storageErr("delete "+r.col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

// Replace swaps the owner's items for items, numbering them in the given
// order. Readers never observe a partial list when transactions are on.
func (r *SubItemRepository[T]) Replace(ctx context.Context, ownerID string, items []T) ([]T, error) {
	docs := make([]any, 0, len(items))
	for i, item := range items {
		doc, err := toDocument(item, newID(), ownerID)
		if err != nil {
			return nil, err
		}
		doc["order"] = i
		docs = append(docs, doc)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if r.transactions {
		session, err := r.col.Database().Client().StartSession()
		if err != nil {
			return nil, storageErr("start session", err)
		}
		defer session.EndSession(ctx)

		_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
			return nil, r.swap(sc, ownerID, docs)
		})
		if err != nil {
			return nil, err
		}
	} else {
		r.log.Warn().Str("owner_id", ownerID).Msg("replacing collection without a transaction; the swap is not atomic")
		if err := r.swap(ctx, ownerID, docs); err != nil {
			return nil, err
		}
	}

	out := make([]T, 0, len(docs))
	for _, d := range docs {
		item, err := fromDocument[T](d.(bson.M))
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *SubItemRepository[T]) swap(ctx context.Context, ownerID string, docs []any) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{"owner_id": ownerID}); err != nil {
		return storageErr("delete "+r.col.Name(), err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return writeErr("insert "+r.col.Name(), err)
	}
	return nil
}

func (r *SubItemRepository[T]) DeleteByOwner(ctx context.Context, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, bson.M{"owner_id": ownerID}); err != nil {
		return storageErr("delete "+r.col.Name(), err)
	}
	return nil
}

func (r *SubItemRepository[T]) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "order", Value: 1}},
	})
	return err
}

// toDocument encodes item and stamps its identity fields.
func toDocument[T domain.SubItem](item T, id, ownerID string) (bson.M, error) {
	raw, err := bson.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encode item: %w", err)
	}
	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encode item: %w", err)
	}
	doc["_id"] = id
	doc["owner_id"] = ownerID
	return doc, nil
}

func fromDocument[T domain.SubItem](doc bson.M) (T, error) {
	var out T
	raw, err := bson.Marshal(doc)
	if err != nil {
		return out, fmt.Errorf("decode item: %w", err)
	}
	if err := bson.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode item: %w", err)
	}
	return out, nil
}
