package controllers

import (
	"errors"
	"net/http"

	"github.com/totaltools/manufacturing-api/app/services"
	"github.com/totaltools/manufacturing-api/pkg/bind"
	"github.com/totaltools/manufacturing-api/pkg/logger"
	"github.com/totaltools/manufacturing-api/pkg/payments"
	"github.com/totaltools/manufacturing-api/pkg/response"
)

// PaymentController issues gateway payment intents for checkout.
type PaymentController struct {
	service *services.PaymentService
}

func NewPaymentController(service *services.PaymentService) *PaymentController {
	return &PaymentController{service: service}
}

// CreateIntent handles POST /create-payment-intent (authenticated).
//
// The price comes from the client; there is no server-side check against a
// held order total. That matches the storefront contract today and is
// tracked as a known gap for any value-bearing deployment.
func (c *PaymentController) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		TotalPrice float64 `json:"totalPrice" validate:"required,gt=0"`
	}
	if !bind.Input(w, r, &in) {
		return
	}

	secret, err := c.service.CreateIntent(r.Context(), in.TotalPrice)
	if err != nil {
		var gw *payments.GatewayError
		if errors.As(err, &gw) {
			logger.WithCtx(r.Context()).Error("payment gateway refused intent",
				"status", gw.StatusCode, "message", gw.Message)
			response.BadGateway(w, "Payment gateway error")
			return
		}
		logger.WithCtx(r.Context()).Error("create payment intent failed", "error", err)
		response.BadGateway(w, "Payment gateway unreachable")
		return
	}

	response.Success(w, map[string]string{"clientSecret": secret})
}
