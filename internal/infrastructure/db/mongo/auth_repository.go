package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tawitawi/provincial-portal/internal/core/domain"
)

const (
	usersCollection  = "users"
	tokensCollection = "delegated_login_tokens"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID             string     `bson:"_id"`
	Username       string     `bson:"username"`
	Email          string     `bson:"email,omitempty"`
	PasswordHash   string     `bson:"password_hash"`
	Name           string     `bson:"name"`
	Role           string     `bson:"role"`
	MunicipalityID string     `bson:"municipality_id,omitempty"`
	IsActive       bool       `bson:"is_active"`
	LastLogin      *time.Time `bson:"last_login,omitempty"`
	CreatedAt      time.Time  `bson:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at"`
}

func (mu *mongoUser) toDomain() *domain.User {
	return &domain.User{
		ID:             mu.ID,
		Username:       mu.Username,
		Email:          mu.Email,
		PasswordHash:   mu.PasswordHash,
		Name:           mu.Name,
		Role:           domain.Role(mu.Role),
		MunicipalityID: mu.MunicipalityID,
		IsActive:       mu.IsActive,
		LastLogin:      mu.LastLogin,
		CreatedAt:      mu.CreatedAt,
		UpdatedAt:      mu.UpdatedAt,
	}
}

// Create inserts user and assigns its ID.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := newID()
	doc := mongoUser{
		ID:             id,
		Username:       user.Username,
		Email:          user.Email,
		PasswordHash:   user.PasswordHash,
		Name:           user.Name,
		Role:           string(user.Role),
		MunicipalityID: user.MunicipalityID,
		IsActive:       user.IsActive,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return writeErr("insert user", err)
	}
	user.ID = id
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	mu, err := findOne[mongoUser](ctx, r.coll, bson.M{"username": username}, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	mu, err := findOne[mongoUser](ctx, r.coll, bson.M{"_id": id}, domain.ErrUserNotFound)
	if err != nil {
		return nil, err
	}
	return mu.toDomain(), nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return updateByID(ctx, r.coll, id, bson.M{"$set": bson.M{"last_login": at}}, domain.ErrUserNotFound)
}

func (r *UserRepository) SetActive(ctx context.Context, id string, active bool) error {
	update := bson.M{"$set": bson.M{"is_active": active, "updated_at": time.Now().UTC()}}
	return updateByID(ctx, r.coll, id, update, domain.ErrUserNotFound)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.coll, id, domain.ErrUserNotFound)
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, storageErr("count users", err)
	}
	return n, nil
}

// ListByRole returns the users holding role, sorted by username.
func (r *UserRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "username", Value: 1}})
	docs, err := findMany[mongoUser](ctx, r.coll, bson.M{"role": string(role)}, opts)
	if err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.toDomain())
	}
	return users, nil
}

func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "municipality_id", Value: 1}}},
	})
	return err
}

// DelegatedTokenRepository stores hashed one-time login tokens.
type DelegatedTokenRepository struct {
	coll *mongo.Collection
}

func NewDelegatedTokenRepository(db *mongo.Database) *DelegatedTokenRepository {
	return &DelegatedTokenRepository{coll: db.Collection(tokensCollection)}
}

type mongoToken struct {
	ID             string     `bson:"_id"`
	TokenHash      string     `bson:"token_hash"`
	MunicipalityID string     `bson:"municipality_id"`
	SuperAdminID   string     `bson:"super_admin_id"`
	SuperAdminName string     `bson:"super_admin_name"`
	Used           bool       `bson:"used"`
	UsedAt         *time.Time `bson:"used_at,omitempty"`
	ExpiresAt      time.Time  `bson:"expires_at"`
	CreatedAt      time.Time  `bson:"created_at"`
}

func (r *DelegatedTokenRepository) Create(ctx context.Context, t *domain.DelegatedToken) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if t.ID == "" {
		t.ID = newID()
	}
	doc := mongoToken{
		ID:             t.ID,
		TokenHash:      t.TokenHash,
		MunicipalityID: t.MunicipalityID,
		SuperAdminID:   t.SuperAdminID,
		SuperAdminName: t.SuperAdminName,
		Used:           t.Used,
		ExpiresAt:      t.ExpiresAt,
		CreatedAt:      t.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return writeErr("insert delegated token", err)
	}
	return nil
}

// Consume flips used in the same operation that checks it, so concurrent
// redemptions of one token cannot both match.
func (r *DelegatedTokenRepository) Consume(ctx context.Context, tokenHash string, now time.Time) (*domain.DelegatedToken, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, update := consumeTokenQuery(tokenHash, now)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoToken
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return nil, consumeTokenErr(err)
	}

	return &domain.DelegatedToken{
		ID:             doc.ID,
		TokenHash:      doc.TokenHash,
		MunicipalityID: doc.MunicipalityID,
		SuperAdminID:   doc.SuperAdminID,
		SuperAdminName: doc.SuperAdminName,
		Used:           doc.Used,
		UsedAt:         doc.UsedAt,
		ExpiresAt:      doc.ExpiresAt,
		CreatedAt:      doc.CreatedAt,
	}, nil
}

// consumeTokenQuery matches only an unused token that is still valid at now,
// and marks it used.
func consumeTokenQuery(tokenHash string, now time.Time) (filter, update bson.M) {
	filter = bson.M{
		"token_hash": tokenHash,
		"used":       false,
		"expires_at": bson.M{"$gt": now},
	}
	update = bson.M{"$set": bson.M{"used": true, "used_at": now}}
	return filter, update
}

// consumeTokenErr reports a non-matching token as ErrInvalidToken, whatever
// the reason it did not match.
func consumeTokenErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrInvalidToken
	}
	return fmt.Errorf("consume delegated token: %w", storageErr("find and update "+tokensCollection, err))
}

// EnsureIndexes makes token hashes unique and lets MongoDB purge tokens a
// day after they expire.
func (r *DelegatedTokenRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "token_hash", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "expires_at", Value: 1}}, Options: options.Index().SetExpireAfterSeconds(86400)},
	})
	return err
}
