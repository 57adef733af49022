package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/totaltools/manufacturing-api/app/models"
	"github.com/totaltools/manufacturing-api/pkg/metrics"
	"github.com/totaltools/manufacturing-api/pkg/store"
)

// ReviewRepository handles the reviews collection.
type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(s *store.Store) *ReviewRepository {
	return &ReviewRepository{col: s.Collection(store.Reviews)}
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Reviews, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, review)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("reviews: insert: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	review.ID = id
	return id, nil
}

func (r *ReviewRepository) FindByEmail(ctx context.Context, email string) ([]models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Reviews, "find", time.Now())

	cursor, err := r.col.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("reviews: find: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("reviews: decode: %w", err)
	}
	return reviews, nil
}
