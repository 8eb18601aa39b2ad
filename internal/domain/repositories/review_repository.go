package repositories

import (
	"context"

	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
)

// ReviewRepository defines the interface for review operations
type ReviewRepository interface {
	// Create inserts a review and fills in its ID and CreatedAt
	Create(ctx context.Context, review *entities.Review) error

	// ListByClinic retrieves a clinic's reviews with author names, newest first
	ListByClinic(ctx context.Context, clinicID int64) ([]entities.ReviewView, error)

	// DeleteByClinic removes every review of a clinic
	DeleteByClinic(ctx context.Context, clinicID int64) (int64, error)
}
