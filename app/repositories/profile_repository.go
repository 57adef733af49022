package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/totaltools/manufacturing-api/app/models"
	"github.com/totaltools/manufacturing-api/pkg/metrics"
	"github.com/totaltools/manufacturing-api/pkg/store"
)

// ProfileRepository handles the profileInfo collection.
type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(s *store.Store) *ProfileRepository {
	return &ProfileRepository{col: s.Collection(store.Profiles)}
}

func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Profiles, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("profiles: insert: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	p.ID = id
	return id, nil
}

func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (models.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Profiles, "findOne", time.Now())

	var profile models.Profile
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Profile{}, ErrNotFound
	}
	if err != nil {
		return models.Profile{}, fmt.Errorf("profiles: find %s: %w", email, err)
	}
	return profile, nil
}

// Upsert merges the supplied fields into the profile keyed by email.
func (r *ProfileRepository) Upsert(ctx context.Context, email string, p models.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Profiles, "update", time.Now())

	set := bson.M{"email": email}
	if p.Name != "" {
		set["name"] = p.Name
	}
	if p.Education != "" {
		set["education"] = p.Education
	}
	if p.Location != "" {
		set["location"] = p.Location
	}
	if p.Phone != "" {
		set["phone"] = p.Phone
	}
	if p.LinkedIn != "" {
		set["linkedin"] = p.LinkedIn
	}

	_, err := r.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("profiles: upsert %s: %w", email, err)
	}
	return nil
}
