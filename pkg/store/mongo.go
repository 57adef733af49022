// Package store owns the MongoDB connection for the process lifetime.
//
// The handle is opened once at startup and injected into every repository,
// so nothing in the application reaches for a module-level singleton and
// repositories stay testable without a live cluster.
package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names, matching the documents the storefront was built against.
const (
	Products = "products"
	Orders   = "orders"
	Users    = "users"
	Payments = "payment"
	Reviews  = "reviews"
	Profiles = "profileInfo"
	Contacts = "contactus"
)

// OpTimeout bounds every single-document operation issued by a repository.
const OpTimeout = 10 * time.Second

// Store is the injected document-store handle.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens the MongoDB connection and verifies it with a ping.
// A failure here aborts boot; there is no retry.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

// Collection returns a handle to the named collection.
func (s *Store) Collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// Client exposes the underlying client for session-based transactions.
func (s *Store) Client() *mongo.Client {
	return s.client
}

// EnsureIndexes creates the indexes the API relies on: unique account and
// profile emails, and a unique payments.orderId so the paid transition can
// never record two payments for one order.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)

	specs := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{Users, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		{Profiles, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		{Payments, mongo.IndexModel{Keys: bson.D{{Key: "orderId", Value: 1}}, Options: unique}},
		{Orders, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}}},
		{Reviews, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}}},
	}

	for _, spec := range specs {
		if _, err := s.db.Collection(spec.collection).Indexes().CreateOne(ctx, spec.model); err != nil {
			return fmt.Errorf("store: index %s: %w", spec.collection, err)
		}
	}
	return nil
}

// Close disconnects from the cluster. Safe to call on shutdown only.
func (s *Store) Close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
