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

// OrderRepository handles the orders collection and, for the paid
// transition, the payment collection.
type OrderRepository struct {
	orders   *mongo.Collection
	payments *mongo.Collection
	client   *mongo.Client
}

func NewOrderRepository(s *store.Store) *OrderRepository {
	return &OrderRepository{
		orders:   s.Collection(store.Orders),
		payments: s.Collection(store.Payments),
		client:   s.Client(),
	}
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) (primitive.ObjectID, error) {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Orders, "insert", time.Now())

	res, err := r.orders.InsertOne(ctx, o)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("orders: insert: %w", err)
	}

	id := res.InsertedID.(primitive.ObjectID)
	o.ID = id
	return id, nil
}

func (r *OrderRepository) All(ctx context.Context) ([]models.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderRepository) FindByEmail(ctx context.Context, email string) ([]models.Order, error) {
	return r.find(ctx, bson.M{"email": email})
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M) ([]models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Orders, "find", time.Now())

	cursor, err := r.orders.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("orders: find: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("orders: decode: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Orders, "findOne", time.Now())

	var order models.Order
	err := r.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Order{}, ErrNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("orders: find %s: %w", id.Hex(), err)
	}
	return order, nil
}

// MarkPaid advances a pending order to paid and records the payment, both
// inside one session transaction so a crash can never leave a payment
// without the matching status change. The update is filtered on
// status=pending: a replayed confirmation, or one arriving after the order
// Shipped, is rejected with ErrConflict instead of writing a second payment.
func (r *OrderRepository) MarkPaid(ctx context.Context, id primitive.ObjectID, payment models.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Orders, "transaction", time.Now())

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("orders: start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		res, err := r.orders.UpdateOne(sc,
			bson.M{"_id": id, "status": models.OrderPending},
			bson.M{"$set": bson.M{
				"status":        models.OrderPaid,
				"transactionId": payment.TransactionID,
			}},
		)
		if err != nil {
			return nil, fmt.Errorf("orders: mark paid %s: %w", id.Hex(), err)
		}
		if res.MatchedCount == 0 {
			return nil, r.classifyMiss(sc, id)
		}

		if _, err := r.payments.InsertOne(sc, payment); err != nil {
			return nil, fmt.Errorf("orders: record payment %s: %w", id.Hex(), err)
		}
		return nil, nil
	})
	if err != nil {
		return err
	}

	metrics.OrderTransitions.WithLabelValues(models.OrderPaid).Inc()
	return nil
}

// MarkShipped advances a paid order to Shipped. Filtering on status=paid
// keeps the lifecycle forward-only: Shipped is terminal and pending orders
// cannot skip payment.
func (r *OrderRepository) MarkShipped(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Orders, "update", time.Now())

	res, err := r.orders.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.OrderPaid},
		bson.M{"$set": bson.M{"status": models.OrderShipped}},
	)
	if err != nil {
		return fmt.Errorf("orders: mark shipped %s: %w", id.Hex(), err)
	}
	if res.MatchedCount == 0 {
		return r.classifyMiss(ctx, id)
	}

	metrics.OrderTransitions.WithLabelValues(models.OrderShipped).Inc()
	return nil
}

// classifyMiss distinguishes "order does not exist" from "order exists in
// the wrong status" after a precondition-filtered update matched nothing.
func (r *OrderRepository) classifyMiss(ctx context.Context, id primitive.ObjectID) error {
	err := r.orders.FindOne(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("orders: classify %s: %w", id.Hex(), err)
	}
	return ErrConflict
}

func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, store.OpTimeout)
	defer cancel()
	defer metrics.ObserveStoreOp(store.Orders, "delete", time.Now())

	res, err := r.orders.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("orders: delete %s: %w", id.Hex(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
