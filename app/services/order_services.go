package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/totaltools/manufacturing-api/app/models"
	"github.com/totaltools/manufacturing-api/app/repositories"
)

// OrderService owns the order lifecycle: pending at creation, paid on
// payment confirmation, Shipped by admin action. Transitions are
// forward-only; the repository enforces the status preconditions.
type OrderService struct {
	orders repositories.OrderStore
}

func NewOrderService(orders repositories.OrderStore) *OrderService {
	return &OrderService{orders: orders}
}

// Place inserts a new order. The status is always forced to pending —
// whatever the client sent — so the lifecycle starts from a known state.
func (s *OrderService) Place(ctx context.Context, o *models.Order) (primitive.ObjectID, error) {
	o.Status = models.OrderPending
	o.TransactionID = ""
	o.CreatedAt = time.Now().UTC()
	return s.orders.Create(ctx, o)
}

// ConfirmPayment advances the order to paid and records the payment carrying
// the gateway transaction ID. Returns repositories.ErrConflict when the
// order is not pending (already paid or Shipped) and repositories.ErrNotFound
// when it does not exist.
func (s *OrderService) ConfirmPayment(ctx context.Context, id primitive.ObjectID, transactionID, email string, amount float64) error {
	payment := models.Payment{
		OrderID:       id.Hex(),
		Email:         email,
		TransactionID: transactionID,
		Amount:        amount,
		CreatedAt:     time.Now().UTC(),
	}
	return s.orders.MarkPaid(ctx, id, payment)
}

// Ship marks a paid order Shipped. Shipped is terminal.
func (s *OrderService) Ship(ctx context.Context, id primitive.ObjectID) error {
	return s.orders.MarkShipped(ctx, id)
}
