// Package payments issues Stripe payment intents for checkout.
//
// The official SDK handles transport, auth, and error decoding; this package
// pins the fixed settlement currency, the minor-unit conversion, and the
// error shape the controllers map to 502.
package payments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Currency is the fixed settlement currency for all intents.
const Currency = "usd"

// Intent is the subset of the gateway's payment-intent object the storefront
// needs: the client-side secret used to complete the card payment.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// GatewayError reports a refusal from the gateway. It is propagated, never
// retried.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payments: gateway returned %d: %s", e.StatusCode, e.Message)
}

// Client issues payment intents against the gateway.
type Client struct {
	api *client.API
}

type config struct {
	baseURL    *string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*config)

// WithBaseURL points the client at a different gateway host (tests).
func WithBaseURL(u string) Option {
	return func(c *config) { c.baseURL = stripe.String(u) }
}

// WithHTTPClient swaps the underlying HTTP client (tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *config) { c.httpClient = h }
}

// NewClient builds a gateway client authenticated with the secret key.
func NewClient(secretKey string, opts ...Option) *Client {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:        cfg.baseURL,
		HTTPClient: cfg.httpClient,
		// Intent creation carries no idempotency key from the storefront,
		// so a transport failure must surface instead of being retried.
		MaxNetworkRetries: stripe.Int64(0),
	})

	api := &client.API{}
	api.Init(secretKey, &stripe.Backends{API: backend, Connect: backend, Uploads: backend})
	return &Client{api: api}
}

// MinorUnits converts a decimal price into the gateway's integer minor-unit
// amount (price × 100, rounded to the nearest cent).
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// CreateIntent requests a card payment intent for amount minor units in the
// fixed currency and returns the intent carrying the client secret.
func (c *Client) CreateIntent(ctx context.Context, amount int64) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:             stripe.Params{Context: ctx},
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		var sErr *stripe.Error
		if errors.As(err, &sErr) {
			return nil, &GatewayError{StatusCode: sErr.HTTPStatusCode, Message: sErr.Msg}
		}
		return nil, fmt.Errorf("payments: create intent: %w", err)
	}

	if pi.ClientSecret == "" {
		return nil, &GatewayError{StatusCode: http.StatusOK, Message: "intent missing client_secret"}
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}
