package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totaltools/manufacturing-api/pkg/auth"
)

func TestGenerateAndValidate(t *testing.T) {
	token, err := auth.GenerateToken("buyer@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", claims.Email)
}

func TestTokenExpiryIsOneHour(t *testing.T) {
	token, err := auth.GenerateToken("buyer@example.com")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)

	ttl := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, auth.TokenTTL)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := auth.ValidateToken("not.a.token")
	assert.Error(t, err)

	_, err = auth.ValidateToken("")
	assert.Error(t, err)
}

func TestValidateRejectsWrongSignature(t *testing.T) {
	// Header/payload signed with a different key.
	forged := "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJlbWFpbCI6ImF0dGFja2VyQGV4YW1wbGUuY29tIn0." +
		"x2Qw1T8kq8mPp0dXxY0Yz3c8VbHqLnO8sT6eGvT5a2E"
	_, err := auth.ValidateToken(forged)
	assert.Error(t, err)
}

func TestClaimsContextRoundTrip(t *testing.T) {
	ctx := context.Background()

	_, ok := auth.FromCtx(ctx)
	assert.False(t, ok)

	claims := &auth.Claims{Email: "buyer@example.com"}
	ctx = auth.WithClaims(ctx, claims)

	got, ok := auth.FromCtx(ctx)
	require.True(t, ok)
	assert.Equal(t, "buyer@example.com", got.Email)
}
