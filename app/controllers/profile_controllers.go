package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/totaltools/manufacturing-api/app/models"
	"github.com/totaltools/manufacturing-api/app/repositories"
	"github.com/totaltools/manufacturing-api/pkg/bind"
	"github.com/totaltools/manufacturing-api/pkg/logger"
	"github.com/totaltools/manufacturing-api/pkg/response"
)

// ProfileController serves per-account profile info.
type ProfileController struct {
	profiles repositories.ProfileStore
}

func NewProfileController(profiles repositories.ProfileStore) *ProfileController {
	return &ProfileController{profiles: profiles}
}

type profileInput struct {
	Email     string `json:"email"     validate:"nullable,email"`
	Name      string `json:"name"      validate:"nullable,max=255"`
	Education string `json:"education" validate:"nullable,max=500"`
	Location  string `json:"location"  validate:"nullable,max=255"`
	Phone     string `json:"phone"     validate:"nullable,max=50"`
	LinkedIn  string `json:"linkedin"  validate:"nullable,max=500"`
}

// Create handles POST /profile (public).
func (c *ProfileController) Create(w http.ResponseWriter, r *http.Request) {
	var in profileInput
	if !bind.Input(w, r, &in) {
		return
	}
	if in.Email == "" {
		response.ValidationError(w, map[string]string{"email": "The email field is required."})
		return
	}

	profile := models.Profile{
		Email:     in.Email,
		Name:      in.Name,
		Education: in.Education,
		Location:  in.Location,
		Phone:     in.Phone,
		LinkedIn:  in.LinkedIn,
	}

	if _, err := c.profiles.Create(r.Context(), &profile); err != nil {
		logger.WithCtx(r.Context()).Error("create profile failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Created(w, profile)
}

// Show handles GET /profile/{email} (public).
func (c *ProfileController) Show(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	profile, err := c.profiles.FindByEmail(r.Context(), email)
	if errors.Is(err, repositories.ErrNotFound) {
		response.NotFound(w)
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("show profile failed", "email", email, "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, profile)
}

// Upsert handles PUT /profile/{email} (public): merges the supplied fields
// into the profile keyed by the path email.
func (c *ProfileController) Upsert(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	var in profileInput
	if !bind.Input(w, r, &in) {
		return
	}

	profile := models.Profile{
		Name:      in.Name,
		Education: in.Education,
		Location:  in.Location,
		Phone:     in.Phone,
		LinkedIn:  in.LinkedIn,
	}

	if err := c.profiles.Upsert(r.Context(), email, profile); err != nil {
		logger.WithCtx(r.Context()).Error("upsert profile failed", "email", email, "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, map[string]string{"email": email})
}
