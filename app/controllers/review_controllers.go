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

// ReviewController serves product reviews.
type ReviewController struct {
	reviews repositories.ReviewStore
}

func NewReviewController(reviews repositories.ReviewStore) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// Create handles POST /reviews (authenticated). The review is always
// attributed to the verified claim email, not whatever the body says.
func (c *ReviewController) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromCtx(r.Context())
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in struct {
		Name    string `json:"name"    validate:"nullable,max=255"`
		Rating  int    `json:"rating"  validate:"nullable,gte=1,lte=5"`
		Content string `json:"content" validate:"required,min=1,max=5000"`
	}
	if !bind.Input(w, r, &in) {
		return
	}

	review := models.Review{
		Email:     claims.Email,
		Name:      in.Name,
		Rating:    in.Rating,
		Content:   in.Content,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := c.reviews.Create(r.Context(), &review); err != nil {
		logger.WithCtx(r.Context()).Error("create review failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Created(w, review)
}

// ListByEmail handles GET /reviews?email= (public).
func (c *ReviewController) ListByEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	reviews, err := c.reviews.FindByEmail(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("list reviews failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	response.Success(w, reviews)
}
