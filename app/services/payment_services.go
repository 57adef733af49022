package services

import (
	"context"

	"github.com/totaltools/manufacturing-api/pkg/metrics"
	"github.com/totaltools/manufacturing-api/pkg/payments"
)

// IntentCreator is the gateway surface the service needs; satisfied by
// *payments.Client and by test fakes.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64) (*payments.Intent, error)
}

// PaymentService issues gateway payment intents for checkout.
type PaymentService struct {
	gateway IntentCreator
}

func NewPaymentService(gateway IntentCreator) *PaymentService {
	return &PaymentService{gateway: gateway}
}

// CreateIntent converts the decimal price to minor units and requests a card
// payment intent. The client secret it returns is what the storefront feeds
// to the gateway's JS to complete the charge.
func (s *PaymentService) CreateIntent(ctx context.Context, totalPrice float64) (string, error) {
	intent, err := s.gateway.CreateIntent(ctx, payments.MinorUnits(totalPrice))
	if err != nil {
		metrics.PaymentIntents.WithLabelValues("gateway_error").Inc()
		return "", err
	}

	metrics.PaymentIntents.WithLabelValues("ok").Inc()
	return intent.ClientSecret, nil
}
