package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totaltools/manufacturing-api/app/controllers"
	"github.com/totaltools/manufacturing-api/app/models"
	"github.com/totaltools/manufacturing-api/app/services"
	"github.com/totaltools/manufacturing-api/pkg/auth"
	"github.com/totaltools/manufacturing-api/pkg/middleware"
)

func newUserController() (*controllers.UserController, *memUsers) {
	store := newMemUsers()
	return controllers.NewUserController(store, services.NewAuthService(store)), store
}

func TestUserUpsertIssuesToken(t *testing.T) {
	ctrl, store := newUserController()

	req := jsonRequest(t, http.MethodPut, "/users/new@example.com", map[string]interface{}{
		"name": "New Buyer",
	})
	rec := serve(http.MethodPut, "/users/{email}", ctrl.Upsert, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	token := env["data"].(map[string]interface{})["accessToken"].(string)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", claims.Email)

	saved, err := store.FindByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "New Buyer", saved.Name)
}

func TestUserUpsertIsIdempotent(t *testing.T) {
	ctrl, store := newUserController()

	put := func() int {
		req := jsonRequest(t, http.MethodPut, "/users/repeat@example.com", map[string]interface{}{})
		return serve(http.MethodPut, "/users/{email}", ctrl.Upsert, req).Code
	}
	assert.Equal(t, http.StatusOK, put())
	assert.Equal(t, http.StatusOK, put())

	all, _ := store.All(context.Background())
	assert.Len(t, all, 1)
}

func TestAdminCheck(t *testing.T) {
	ctrl, store := newUserController()
	require.NoError(t, store.Upsert(context.Background(), "boss@example.com", models.User{}))
	require.NoError(t, store.GrantAdmin(context.Background(), "boss@example.com"))

	check := func(email string) bool {
		req := jsonRequest(t, http.MethodGet, "/admin/"+email, nil)
		rec := serve(http.MethodGet, "/admin/{email}", ctrl.AdminCheck, req)
		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		return env["data"].(map[string]interface{})["admin"].(bool)
	}

	assert.True(t, check("boss@example.com"))
	assert.False(t, check("ghost@example.com"))
}

func TestGrantAdmin(t *testing.T) {
	ctrl, store := newUserController()
	require.NoError(t, store.Upsert(context.Background(), "buyer@example.com", models.User{}))

	req := jsonRequest(t, http.MethodPut, "/users/admin/buyer@example.com", nil)
	rec := serve(http.MethodPut, "/users/admin/{email}", ctrl.GrantAdmin, req)
	require.Equal(t, http.StatusOK, rec.Code)

	saved, _ := store.FindByEmail(context.Background(), "buyer@example.com")
	assert.True(t, saved.IsAdmin())
}

func TestGrantAdminUnknownUser(t *testing.T) {
	ctrl, _ := newUserController()

	req := jsonRequest(t, http.MethodPut, "/users/admin/ghost@example.com", nil)
	rec := serve(http.MethodPut, "/users/admin/{email}", ctrl.GrantAdmin, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// The in-memory store must satisfy the admin guard the same way the real
// repository does: a token for a vanished account is refused with 403, never
// treated as a lookup failure.
func TestAdminGuardRejectsVanishedAccount(t *testing.T) {
	store := newMemUsers()
	guard := middleware.RequireAdmin(store)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := asUser(httptest.NewRequest(http.MethodGet, "/users", nil), "ghost@example.com")
	rec := httptest.NewRecorder()
	guard(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUserDelete(t *testing.T) {
	ctrl, store := newUserController()
	require.NoError(t, store.Upsert(context.Background(), "old@example.com", models.User{}))

	req := jsonRequest(t, http.MethodDelete, "/users/old@example.com", nil)
	rec := serve(http.MethodDelete, "/users/{email}", ctrl.Delete, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(http.MethodDelete, "/users/{email}", ctrl.Delete,
		jsonRequest(t, http.MethodDelete, "/users/old@example.com", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
