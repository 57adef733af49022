package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/totaltools/manufacturing-api/app/models"
	"github.com/totaltools/manufacturing-api/app/repositories"
	"github.com/totaltools/manufacturing-api/app/services"
	"github.com/totaltools/manufacturing-api/pkg/bind"
	"github.com/totaltools/manufacturing-api/pkg/logger"
	"github.com/totaltools/manufacturing-api/pkg/response"
)

// UserController serves accounts: listing, the login upsert that issues
// tokens, the public admin-flag check, and admin role management.
type UserController struct {
	users repositories.UserStore
	auth  *services.AuthService
}

func NewUserController(users repositories.UserStore, auth *services.AuthService) *UserController {
	return &UserController{users: users, auth: auth}
}

// List handles GET /users (authenticated).
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list users failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, users)
}

// AdminCheck handles GET /admin/{email} (public): the storefront uses it to
// decide whether to render the admin dashboard. An unknown email is simply
// not an admin.
func (c *UserController) AdminCheck(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	isAdmin, err := c.auth.IsAdmin(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("admin check failed", "email", email, "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, map[string]bool{"admin": isAdmin})
}

// GrantAdmin handles PUT /users/admin/{email} (admin).
func (c *UserController) GrantAdmin(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if err := c.users.GrantAdmin(r.Context(), email); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w)
			return
		}
		logger.WithCtx(r.Context()).Error("grant admin failed", "email", email, "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, map[string]string{"email": email, "role": models.RoleAdmin})
}

// Upsert handles PUT /users/{email} (public): creates the account on first
// login and always answers with a freshly signed one-hour token.
func (c *UserController) Upsert(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var in struct {
		Email string `json:"email" validate:"nullable,email"`
		Name  string `json:"name"  validate:"nullable,max=255"`
	}
	if !bind.Input(w, r, &in) {
		return
	}

	token, err := c.auth.Login(r.Context(), email, models.User{Name: in.Name})
	if err != nil {
		logger.WithCtx(r.Context()).Error("login upsert failed", "email", email, "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, map[string]string{"accessToken": token})
}

// Delete handles DELETE /users/{email} (admin).
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	if err := c.users.Delete(r.Context(), email); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			response.NotFound(w)
			return
		}
		logger.WithCtx(r.Context()).Error("delete user failed", "email", email, "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, map[string]interface{}{"deletedCount": 1})
}
