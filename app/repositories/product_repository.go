package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/totaltools/manufacturing-api/app/models"
	"github.com/totaltools/manufacturing-api/pkg/metrics"
	"github.com/totaltools/manufacturing-api/pkg/store"
)

// ProductRepository handles the products collection.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(s *store.Store) *ProductRepository {
	return &ProductRepository{col: s.Collection(store.Products)}
}

func (r *ProductRepository) Create(ctx context.Context, p *models.Product) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Products, "insert", time.Now())

	res, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("products: insert: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	p.ID = id
	return id, nil
}

func (r *ProductRepository) All(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Products, "find", time.Now())

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("products: find: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("products: decode: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Products, "findOne", time.Now())

	var product models.Product
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("products: find %s: %w", id.Hex(), err)
	}
	return product, nil
}

// UpdateQuantity sets availableQuantity only. Used by the storefront after
// an order is placed or restocked.
func (r *ProductRepository) UpdateQuantity(ctx context.Context, id primitive.ObjectID, availableQuantity int) error {
	return r.update(ctx, id, bson.M{"availableQuantity": availableQuantity})
}

// Update replaces the full editable field set.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, p models.Product) error {
	return r.update(ctx, id, bson.M{
		"productName":       p.ProductName,
		"shortDescription":  p.ShortDescription,
		"moQuantity":        p.MOQuantity,
		"availableQuantity": p.AvailableQuantity,
		"price":             p.Price,
		"picture":           p.Picture,
	})
}

// SetPicture stores the public URL of an uploaded product picture.
func (r *ProductRepository) SetPicture(ctx context.Context, id primitive.ObjectID, url string) error {
	return r.update(ctx, id, bson.M{"picture": url})
}

func (r *ProductRepository) update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Products, "update", time.Now())

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("products: update %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Products, "delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("products: delete %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
