package payments_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totaltools/manufacturing-api/pkg/payments"
)

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(2000), payments.MinorUnits(20))
	assert.Equal(t, int64(1999), payments.MinorUnits(19.99))
	assert.Equal(t, int64(1), payments.MinorUnits(0.01))
	// Float noise must round to the nearest cent, not truncate.
	assert.Equal(t, int64(1010), payments.MinorUnits(10.0999999))
}

func TestCreateIntent(t *testing.T) {
	var gotAuth, gotContentType string
	var gotForm map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payment_intents", r.URL.Path)

		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret_abc","amount":2000,"currency":"usd"}`))
	}))
	defer srv.Close()

	client := payments.NewClient("sk_test_xyz", payments.WithBaseURL(srv.URL))

	intent, err := client.CreateIntent(context.Background(), 2000)
	require.NoError(t, err)

	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)
	assert.Equal(t, int64(2000), intent.Amount)

	assert.Equal(t, "Bearer sk_test_xyz", gotAuth)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, []string{"2000"}, gotForm["amount"])
	assert.Equal(t, []string{"usd"}, gotForm["currency"])
	assert.Equal(t, []string{"card"}, gotForm["payment_method_types[0]"])
}

func TestCreateIntentGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
	}))
	defer srv.Close()

	client := payments.NewClient("sk_test_xyz", payments.WithBaseURL(srv.URL))

	_, err := client.CreateIntent(context.Background(), 500)
	require.Error(t, err)

	var gw *payments.GatewayError
	require.ErrorAs(t, err, &gw)
	assert.Equal(t, http.StatusPaymentRequired, gw.StatusCode)
	assert.Equal(t, "Your card was declined.", gw.Message)
}

func TestCreateIntentMissingClientSecret(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id":"pi_456"}`))
	}))
	defer srv.Close()

	client := payments.NewClient("sk_test_xyz", payments.WithBaseURL(srv.URL))

	_, err := client.CreateIntent(context.Background(), 500)
	var gw *payments.GatewayError
	require.ErrorAs(t, err, &gw)
}

func TestCreateIntentUnreachableGateway(t *testing.T) {
	client := payments.NewClient("sk_test_xyz",
		payments.WithBaseURL("http://127.0.0.1:1"))

	_, err := client.CreateIntent(context.Background(), 500)
	require.Error(t, err)

	// Transport failures are plain errors, not gateway refusals.
	var gw *payments.GatewayError
	assert.False(t, errors.As(err, &gw))
}
