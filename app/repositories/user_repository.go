package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/totaltools/manufacturing-api/app/models"
	"github.com/totaltools/manufacturing-api/pkg/metrics"
	"github.com/totaltools/manufacturing-api/pkg/middleware"
	"github.com/totaltools/manufacturing-api/pkg/store"
)

// UserRepository handles the users collection.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{col: s.Collection(store.Users)}
}

func (r *UserRepository) All(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Users, "find", time.Now())

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("users: find: %w", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("users: decode: %w", err)
	}
	return users, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Users, "findOne", time.Now())

	var user models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("users: find %s: %w", email, err)
	}
	return user, nil
}

// Upsert creates or refreshes the account document for email. Idempotent:
// repeated identical calls leave one document keyed by the unique email index.
func (r *UserRepository) Upsert(ctx context.Context, email string, u models.User) error {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Users, "update", time.Now())

	set := bson.M{"email": email}
	if u.Name != "" {
		set["name"] = u.Name
	}

	_, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("users: upsert %s: %w", email, err)
	}
	return nil
}

func (r *UserRepository) GrantAdmin(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Users, "update", time.Now())

	res, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"role": models.RoleAdmin}},
	)
	if err != nil {
		return fmt.Errorf("users: grant admin %s: %w", email, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Users, "delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"email": email})
	if err != nil {
		return fmt.Errorf("users: delete %s: %w", email, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RoleByEmail implements middleware.RoleLookup for the admin guard. A
// missing account maps to middleware.ErrUnknownUser so the guard can answer
// 403 rather than treating it as a store failure.
func (r *UserRepository) RoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := r.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return "", middleware.ErrUnknownUser
	}
	if err != nil {
		return "", err
	}
	return user.Role, nil
}
