package controllers

import (
	"errors"
	"net/http"

	"github.com/totaltools/manufacturing-api/app/models"
	"github.com/totaltools/manufacturing-api/app/repositories"
	"github.com/totaltools/manufacturing-api/app/services"
	"github.com/totaltools/manufacturing-api/pkg/auth"
	"github.com/totaltools/manufacturing-api/pkg/bind"
	"github.com/totaltools/manufacturing-api/pkg/logger"
	"github.com/totaltools/manufacturing-api/pkg/response"
)

// OrderController serves orders and their lifecycle transitions.
type OrderController struct {
	orders  repositories.OrderStore
	service *services.OrderService
}

func NewOrderController(orders repositories.OrderStore, service *services.OrderService) *OrderController {
	return &OrderController{orders: orders, service: service}
}

// Create handles POST /orders (public): inserts a new pending order.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email       string  `json:"email"       validate:"required,email"`
		ProductID   string  `json:"productId"   validate:"nullable,max=64"`
		ProductName string  `json:"productName" validate:"nullable,max=255"`
		Quantity    int     `json:"quantity"    validate:"nullable,gte=1"`
		TotalPrice  float64 `json:"totalPrice"  validate:"required,gt=0"`
	}
	if !bind.Input(w, r, &in) {
		return
	}

	order := models.Order{
		Email:       in.Email,
		ProductID:   in.ProductID,
		ProductName: in.ProductName,
		Quantity:    in.Quantity,
		TotalPrice:  in.TotalPrice,
	}

	if _, err := c.service.Place(r.Context(), &order); err != nil {
		logger.WithCtx(r.Context()).Error("place order failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Created(w, order)
}

// ListAll handles GET /allOrders (authenticated): the admin dashboard view.
func (c *OrderController) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := c.orders.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list all orders failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, orders)
}

// ListOwn handles GET /orders?email= (authenticated). The email filter must
// match the verified claim — otherwise any signed-in buyer could read
// another buyer's orders. An absent filter defaults to the claim.
func (c *OrderController) ListOwn(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		email = claims.Email
	}
	if email != claims.Email {
		response.Forbidden(w)
		return
	}

	orders, err := c.orders.FindByEmail(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("list own orders failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, orders)
}

// Show handles GET /orders/{id} (authenticated).
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r)
	if !ok {
		return
	}

	order, err := c.orders.FindByID(r.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("show order failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, order)
}

// Pay handles PATCH /orders/{id} (authenticated): the payment confirmation
// from checkout. Records the payment and advances pending → paid in one
// transaction; a replay or an out-of-order confirmation is a 409.
func (c *OrderController) Pay(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	id, ok := pathObjectID(w, r)
	if !ok {
		return
	}

	var in struct {
		TransactionID string  `json:"transactionId" validate:"required,min=1,max=255"`
		Amount        float64 `json:"amount"        validate:"nullable,gt=0"`
	}
	if !bind.Input(w, r, &in) {
		return
	}

	err := c.service.ConfirmPayment(r.Context(), id, in.TransactionID, claims.Email, in.Amount)
	if err != nil {
		c.writeTransitionError(w, r, err, "confirm payment")
		return
	}

	logger.WithCtx(r.Context()).Info("order marked paid",
		"order_id", id.Hex(), "transaction_id", in.TransactionID)
	response.Success(w, map[string]string{"status": models.OrderPaid})
}

// Ship handles PATCH /manageAllOrders/{id} (admin): marks a paid order
// Shipped.
func (c *OrderController) Ship(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r)
	if !ok {
		return
	}

	if err := c.service.Ship(r.Context(), id); err != nil {
		c.writeTransitionError(w, r, err, "ship")
		return
	}

	logger.WithCtx(r.Context()).Info("order marked shipped", "order_id", id.Hex())
	response.Success(w, map[string]string{"status": models.OrderShipped})
}

// Delete handles DELETE /orders/{id} (authenticated).
func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathObjectID(w, r)
	if !ok {
		return
	}

	if err := c.orders.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w)
			return
		}
		logger.WithCtx(r.Context()).Error("delete order failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, map[string]interface{}{"deletedCount": 1})
}

func (c *OrderController) writeTransitionError(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, repositories.ErrConflict):
		response.Conflict(w, "Order status does not allow this transition")
	default:
		logger.WithCtx(r.Context()).Error(action+" failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
	}
}
