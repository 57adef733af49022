package controllers

import (
	"net/http"
	"time"

	"github.com/totaltools/manufacturing-api/app/models"
	"github.com/totaltools/manufacturing-api/app/repositories"
	"github.com/totaltools/manufacturing-api/pkg/auth"
	"github.com/totaltools/manufacturing-api/pkg/bind"
	"github.com/totaltools/manufacturing-api/pkg/logger"
	"github.com/totaltools/manufacturing-api/pkg/response"
)

// ContactController appends "contact us" submissions.
type ContactController struct {
	contacts repositories.ContactStore
}

func NewContactController(contacts repositories.ContactStore) *ContactController {
	return &ContactController{contacts: contacts}
}

// Create handles POST /contactus (authenticated).
func (c *ContactController) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in struct {
		Name    string `json:"name"    validate:"nullable,max=255"`
		Subject string `json:"subject" validate:"nullable,max=500"`
		Message string `json:"message" validate:"required,min=1,max=10000"`
	}
	if !bind.Input(w, r, &in) {
		return
	}

	msg := models.ContactMessage{
		Name:      in.Name,
		Email:     claims.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := c.contacts.Create(r.Context(), &msg); err != nil {
		logger.WithCtx(r.Context()).Error("create contact message failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Created(w, msg)
}
