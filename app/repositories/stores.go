// Package repositories implements the document-store access layer.
//
// Each repository is constructed with the injected *store.Store handle; the
// interfaces below are what controllers and services consume, so tests can
// substitute in-memory fakes.
package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/totaltools/manufacturing-api/app/models"
)

// ErrNotFound is returned when a single-document lookup matches nothing.
var ErrNotFound = errors.New("document not found")

// ErrConflict is returned when an order transition's status precondition
// does not hold (e.g. marking an already-Shipped order paid).
var ErrConflict = errors.New("status precondition failed")

// ProductStore covers the products collection.
type ProductStore interface {
	Create(ctx context.Context, p *models.Product) (primitive.ObjectID, error)
	All(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	UpdateQuantity(ctx context.Context, id primitive.ObjectID, availableQuantity int) error
	Update(ctx context.Context, id primitive.ObjectID, p models.Product) error
	SetPicture(ctx context.Context, id primitive.ObjectID, url string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// UserStore covers the users collection. RoleByEmail satisfies
// middleware.RoleLookup for the admin guard.
type UserStore interface {
	All(ctx context.Context) ([]models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	Upsert(ctx context.Context, email string, u models.User) error
	GrantAdmin(ctx context.Context, email string) error
	Delete(ctx context.Context, email string) error
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// OrderStore covers the orders and payment collections. MarkPaid performs
// the transactional paid transition; MarkShipped the admin ship action.
type OrderStore interface {
	Create(ctx context.Context, o *models.Order) (primitive.ObjectID, error)
	All(ctx context.Context) ([]models.Order, error)
	FindByEmail(ctx context.Context, email string) ([]models.Order, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Order, error)
	MarkPaid(ctx context.Context, id primitive.ObjectID, payment models.Payment) error
	MarkShipped(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ReviewStore covers the reviews collection.
type ReviewStore interface {
	Create(ctx context.Context, r *models.Review) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) ([]models.Review, error)
}

// ProfileStore covers the profileInfo collection.
type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) (models.Profile, error)
	Upsert(ctx context.Context, email string, p models.Profile) error
}

// ContactStore covers the append-only contactus collection.
type ContactStore interface {
	Create(ctx context.Context, m *models.ContactMessage) (primitive.ObjectID, error)
}
