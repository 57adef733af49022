package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/totaltools/manufacturing-api/app/models"
	"github.com/totaltools/manufacturing-api/pkg/metrics"
	"github.com/totaltools/manufacturing-api/pkg/store"
)

// ContactRepository handles the append-only contactus collection.
type ContactRepository struct {
	col *mongo.Collection
}

func NewContactRepository(s *store.Store) *ContactRepository {
	return &ContactRepository{col: s.Collection(store.Contacts)}
}

func (r *ContactRepository) Create(ctx context.Context, m *models.ContactMessage) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Contacts, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, m)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("contactus: insert: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	m.ID = id
	return id, nil
}
