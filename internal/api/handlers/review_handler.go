package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/clinicdirectory/internal/api/middleware"
	"github.com/zatekoja/clinicdirectory/internal/application/services"
	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
	apperrors "github.com/zatekoja/clinicdirectory/pkg/errors"
)

// ReviewService defines the review operations used by the handler
type ReviewService interface {
	Create(ctx context.Context, user *entities.PublicUser, input services.CreateReviewInput) (*services.ReviewResult, error)
}

// ReviewHandler serves POST /api/reviews
type ReviewHandler struct {
	service ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// CreateReview stores a review by the authenticated user
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondWithAppError(w, r, apperrors.NewUnauthorizedError("token missing"))
		return
	}

	var input services.CreateReviewInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	result, err := h.service.Create(r.Context(), user, input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
