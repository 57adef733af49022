package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/totaltools/manufacturing-api/app/models"
	"github.com/totaltools/manufacturing-api/app/repositories"
	"github.com/totaltools/manufacturing-api/pkg/auth"
	"github.com/totaltools/manufacturing-api/pkg/middleware"
)

// serve routes one request through a chi mux so {param} URL segments resolve.
func serve(method, pattern string, h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := chi.NewRouter()
	mux.Method(method, pattern, h)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func asUser(req *http.Request, email string) *http.Request {
	ctx := auth.WithClaims(req.Context(), &auth.Claims{Email: email})
	return req.WithContext(ctx)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

// ── In-memory stores ─────────────────────────────────────────────────────────

type memProducts struct {
	products map[primitive.ObjectID]*models.Product
}

func newMemProducts() *memProducts {
	return &memProducts{products: make(map[primitive.ObjectID]*models.Product)}
}

func (m *memProducts) Create(_ context.Context, p *models.Product) (primitive.ObjectID, error) {
	p.ID = primitive.NewObjectID()
	cp := *p
	m.products[p.ID] = &cp
	return p.ID, nil
}

func (m *memProducts) All(context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memProducts) FindByID(_ context.Context, id primitive.ObjectID) (models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return models.Product{}, repositories.ErrNotFound
	}
	return *p, nil
}

func (m *memProducts) UpdateQuantity(_ context.Context, id primitive.ObjectID, qty int) error {
	p, ok := m.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.AvailableQuantity = qty
	return nil
}

func (m *memProducts) Update(_ context.Context, id primitive.ObjectID, in models.Product) error {
	p, ok := m.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	in.ID = id
	*p = in
	return nil
}

func (m *memProducts) SetPicture(_ context.Context, id primitive.ObjectID, url string) error {
	p, ok := m.products[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Picture = url
	return nil
}

func (m *memProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.products[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

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

type memUsers struct {
	users map[string]models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: make(map[string]models.User)}
}

func (m *memUsers) All(context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := m.users[email]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) Upsert(_ context.Context, email string, u models.User) error {
	existing, ok := m.users[email]
	if ok {
		if u.Name != "" {
			existing.Name = u.Name
		}
		m.users[email] = existing
		return nil
	}
	u.Email = email
	m.users[email] = u
	return nil
}

func (m *memUsers) GrantAdmin(_ context.Context, email string) error {
	u, ok := m.users[email]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Role = models.RoleAdmin
	m.users[email] = u
	return nil
}

func (m *memUsers) Delete(_ context.Context, email string) error {
	if _, ok := m.users[email]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.users, email)
	return nil
}

// RoleByEmail mirrors the repository contract for middleware.RoleLookup: a
// missing account is ErrUnknownUser, not a store failure.
func (m *memUsers) RoleByEmail(_ context.Context, email string) (string, error) {
	u, ok := m.users[email]
	if !ok {
		return "", middleware.ErrUnknownUser
	}
	return u.Role, nil
}
