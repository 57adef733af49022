package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totaltools/manufacturing-api/app/controllers"
	"github.com/totaltools/manufacturing-api/app/services"
	"github.com/totaltools/manufacturing-api/pkg/payments"
)

type fakeGateway struct {
	gotAmount int64
	intent    *payments.Intent
	err       error
}

func (f *fakeGateway) CreateIntent(_ context.Context, amount int64) (*payments.Intent, error) {
	f.gotAmount = amount
	if f.err != nil {
		return nil, f.err
	}
	return f.intent, nil
}

func TestCreatePaymentIntent(t *testing.T) {
	gw := &fakeGateway{intent: &payments.Intent{ClientSecret: "pi_123_secret"}}
	ctrl := controllers.NewPaymentController(services.NewPaymentService(gw))

	req := jsonRequest(t, http.MethodPost, "/create-payment-intent", map[string]interface{}{
		"totalPrice": 240.5,
	})
	rec := serve(http.MethodPost, "/create-payment-intent", ctrl.CreateIntent, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "pi_123_secret", env["data"].(map[string]interface{})["clientSecret"])
	assert.Equal(t, int64(24050), gw.gotAmount)
}

func TestCreatePaymentIntentValidation(t *testing.T) {
	ctrl := controllers.NewPaymentController(services.NewPaymentService(&fakeGateway{}))

	req := jsonRequest(t, http.MethodPost, "/create-payment-intent", map[string]interface{}{
		"totalPrice": -1,
	})
	rec := serve(http.MethodPost, "/create-payment-intent", ctrl.CreateIntent, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreatePaymentIntentGatewayRefusal(t *testing.T) {
	gw := &fakeGateway{err: &payments.GatewayError{StatusCode: 402, Message: "declined"}}
	ctrl := controllers.NewPaymentController(services.NewPaymentService(gw))

	req := jsonRequest(t, http.MethodPost, "/create-payment-intent", map[string]interface{}{
		"totalPrice": 10,
	})
	rec := serve(http.MethodPost, "/create-payment-intent", ctrl.CreateIntent, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
