package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totaltools/manufacturing-api/pkg/auth"
	"github.com/totaltools/manufacturing-api/pkg/middleware"
)

// roleTable is an in-memory RoleLookup.
type roleTable map[string]string

func (rt roleTable) RoleByEmail(_ context.Context, email string) (string, error) {
	role, ok := rt[email]
	if !ok {
		return "", middleware.ErrUnknownUser
	}
	return role, nil
}

type failingLookup struct{}

func (failingLookup) RoleByEmail(context.Context, string) (string, error) {
	return "", errors.New("store down")
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateMissingHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)

	middleware.Authenticate(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateBadToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	middleware.Authenticate(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthenticateAttachesClaims(t *testing.T) {
	token, err := auth.GenerateToken("buyer@example.com")
	require.NoError(t, err)

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.FromCtx(r.Context())
		require.True(t, ok)
		seen = claims.Email
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	middleware.Authenticate(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "buyer@example.com", seen)
}

func adminRequest(t *testing.T, email string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, "/users/x", nil)
	ctx := auth.WithClaims(req.Context(), &auth.Claims{Email: email})
	return req.WithContext(ctx)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	guard := middleware.RequireAdmin(roleTable{"boss@example.com": "admin"})

	rec := httptest.NewRecorder()
	guard(okHandler()).ServeHTTP(rec, adminRequest(t, "boss@example.com"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	guard := middleware.RequireAdmin(roleTable{"buyer@example.com": "user"})

	rec := httptest.NewRecorder()
	guard(okHandler()).ServeHTTP(rec, adminRequest(t, "buyer@example.com"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminRejectsUnknownAccount(t *testing.T) {
	guard := middleware.RequireAdmin(roleTable{})

	rec := httptest.NewRecorder()
	guard(okHandler()).ServeHTTP(rec, adminRequest(t, "ghost@example.com"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminLookupFailure(t *testing.T) {
	guard := middleware.RequireAdmin(failingLookup{})

	rec := httptest.NewRecorder()
	guard(okHandler()).ServeHTTP(rec, adminRequest(t, "boss@example.com"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireAdminWithoutClaims(t *testing.T) {
	guard := middleware.RequireAdmin(roleTable{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/users/x", nil)
	guard(okHandler()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
