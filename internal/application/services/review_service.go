package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
	"github.com/zatekoja/clinicdirectory/internal/domain/repositories"
	apperrors "github.com/zatekoja/clinicdirectory/pkg/errors"
)

const (
	msgRatingOutOfRange = "rating must be between 1 and 5"
	msgRatingNotWhole   = "rating must be a whole number"
	msgClinicNotFound   = "Clinic not found"
	msgReviewAdded      = "Review added successfully"
)

// CreateReviewInput holds the fields of a new review. Pointers tell a missing
// field apart from a zero value. Rating is decoded as a float so 5.0 is accepted.
type CreateReviewInput struct {
	ClinicID   *int64   `json:"clinic_id"`
	Rating     *float64 `json:"rating"`
	ReviewText string   `json:"review_text"`
}

// ReviewResult is the created review as returned to the client
type ReviewResult struct {
	ID       int64     `json:"id"`
	ClinicID int64     `json:"clinic_id"`
	UserID   int64     `json:"user_id"`
	Author   string    `json:"author"`
	Rating   int       `json:"rating"`
	Text     string    `json:"text"`
	Date     time.Time `json:"date"`
	Message  string    `json:"message"`
}

// ReviewService handles review submission
type ReviewService struct {
	txManager     repositories.TxManager
	invalidations *CacheInvalidationService
}

// NewReviewService creates a new review service
func NewReviewService(txManager repositories.TxManager, invalidations *CacheInvalidationService) *ReviewService {
	return &ReviewService{
		txManager:     txManager,
		invalidations: invalidations,
	}
}

// Create stores a review attributed to the authenticated user
func (s *ReviewService) Create(ctx context.Context, user *entities.PublicUser, input CreateReviewInput) (*ReviewResult, error) {
	text := strings.TrimSpace(input.ReviewText)
	if input.ClinicID == nil || *input.ClinicID <= 0 || input.Rating == nil || text == "" {
		return nil, apperrors.NewValidationError(msgFillAllFields)
	}
	rating := *input.Rating
	if !entities.ValidRating(rating) {
		return nil, apperrors.NewValidationError(msgRatingOutOfRange)
	}
	if rating != math.Trunc(rating) {
		return nil, apperrors.NewValidationError(msgRatingNotWhole)
	}

	review := &entities.Review{
		ClinicID: *input.ClinicID,
		UserID:   user.ID,
		Rating:   int(rating),
		Text:     text,
	}

	var author string
	err := s.txManager.WithinTx(ctx, func(tx repositories.Tx) error {
		exists, err := tx.Clinics().Exists(ctx, review.ClinicID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewNotFoundError(msgClinicNotFound)
		}

		if err := tx.Reviews().Create(ctx, review); err != nil {
			return err
		}

		author, err = tx.Users().FullName(ctx, review.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidations.InvalidateClinic(ctx, review.ClinicID)
	log.Info().
		Int64("review_id", review.ID).
		Int64("clinic_id", review.ClinicID).
		Int64("user_id", review.UserID).
		Msg("Review created")

	return &ReviewResult{
		ID:       review.ID,
		ClinicID: review.ClinicID,
		UserID:   review.UserID,
		Author:   author,
		Rating:   review.Rating,
		Text:     review.Text,
		Date:     review.CreatedAt,
		Message:  msgReviewAdded,
	}, nil
}
