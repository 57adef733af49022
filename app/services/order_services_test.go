package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/totaltools/manufacturing-api/app/models"
	"github.com/totaltools/manufacturing-api/app/repositories"
	"github.com/totaltools/manufacturing-api/app/services"
)

// memOrders is an in-memory OrderStore enforcing the same status
// preconditions as the mongo repository.
type memOrders struct {
	orders   map[primitive.ObjectID]*models.Order
	payments []models.Payment
}

func newMemOrders() *memOrders {
	return &memOrders{orders: make(map[primitive.ObjectID]*models.Order)}
}

func (m *memOrders) Create(_ context.Context, o *models.Order) (primitive.ObjectID, error) {
	o.ID = primitive.NewObjectID()
	cp := *o
	m.orders[o.ID] = &cp
	return o.ID, nil
}

func (m *memOrders) All(context.Context) ([]models.Order, error) {
	out := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (m *memOrders) FindByEmail(_ context.Context, email string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range m.orders {
		if o.Email == email {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *memOrders) FindByID(_ context.Context, id primitive.ObjectID) (models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return models.Order{}, repositories.ErrNotFound
	}
	return *o, nil
}

func (m *memOrders) MarkPaid(_ context.Context, id primitive.ObjectID, payment models.Payment) error {
	o, ok := m.orders[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if o.Status != models.OrderPending {
		return repositories.ErrConflict
	}
	o.Status = models.OrderPaid
	o.TransactionID = payment.TransactionID
	m.payments = append(m.payments, payment)
	return nil
}

func (m *memOrders) MarkShipped(_ context.Context, id primitive.ObjectID) error {
	o, ok := m.orders[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if o.Status != models.OrderPaid {
		return repositories.ErrConflict
	}
	o.Status = models.OrderShipped
	return nil
}

func (m *memOrders) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.orders[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func TestPlaceForcesPending(t *testing.T) {
	store := newMemOrders()
	svc := services.NewOrderService(store)

	order := models.Order{
		Email:         "buyer@example.com",
		TotalPrice:    99.5,
		Status:        models.OrderShipped, // client lies
		TransactionID: "txn_forged",
	}

	id, err := svc.Place(context.Background(), &order)
	require.NoError(t, err)

	saved, err := store.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, saved.Status)
	assert.Empty(t, saved.TransactionID)
	assert.False(t, saved.CreatedAt.IsZero())
}

func TestConfirmPaymentLifecycle(t *testing.T) {
	store := newMemOrders()
	svc := services.NewOrderService(store)

	order := models.Order{Email: "buyer@example.com", TotalPrice: 240}
	id, err := svc.Place(context.Background(), &order)
	require.NoError(t, err)

	err = svc.ConfirmPayment(context.Background(), id, "txn_1", "buyer@example.com", 240)
	require.NoError(t, err)

	saved, _ := store.FindByID(context.Background(), id)
	assert.Equal(t, models.OrderPaid, saved.Status)
	assert.Equal(t, "txn_1", saved.TransactionID)

	require.Len(t, store.payments, 1)
	p := store.payments[0]
	assert.Equal(t, id.Hex(), p.OrderID)
	assert.Equal(t, "buyer@example.com", p.Email)
	assert.Equal(t, 240.0, p.Amount)

	// Replay must not double-charge.
	err = svc.ConfirmPayment(context.Background(), id, "txn_2", "buyer@example.com", 240)
	assert.ErrorIs(t, err, repositories.ErrConflict)
	assert.Len(t, store.payments, 1)
}

func TestConfirmPaymentUnknownOrder(t *testing.T) {
	svc := services.NewOrderService(newMemOrders())

	err := svc.ConfirmPayment(context.Background(), primitive.NewObjectID(), "txn_1", "buyer@example.com", 10)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestShipRequiresPaid(t *testing.T) {
	store := newMemOrders()
	svc := services.NewOrderService(store)

	order := models.Order{Email: "buyer@example.com", TotalPrice: 50}
	id, err := svc.Place(context.Background(), &order)
	require.NoError(t, err)

	// pending → Shipped is not allowed.
	assert.ErrorIs(t, svc.Ship(context.Background(), id), repositories.ErrConflict)

	require.NoError(t, svc.ConfirmPayment(context.Background(), id, "txn_1", "buyer@example.com", 50))
	require.NoError(t, svc.Ship(context.Background(), id))

	saved, _ := store.FindByID(context.Background(), id)
	assert.Equal(t, models.OrderShipped, saved.Status)

	// Shipped is terminal.
	assert.ErrorIs(t, svc.Ship(context.Background(), id), repositories.ErrConflict)
}
