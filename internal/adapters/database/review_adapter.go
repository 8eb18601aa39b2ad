package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
	"github.com/zatekoja/clinicdirectory/internal/domain/repositories"
	apperrors "github.com/zatekoja/clinicdirectory/pkg/errors"
)

// ReviewAdapter implements the ReviewRepository interface
type ReviewAdapter struct {
	q Querier
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(q Querier) repositories.ReviewRepository {
	return &ReviewAdapter{q: q}
}

// Create inserts a review; the database assigns id and created_at
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	query, args, err := dialect.Insert("reviews").
		Rows(goqu.Record{
			"clinic_id":   review.ClinicID,
			"user_id":     review.UserID,
			"rating":      review.Rating,
			"review_text": review.Text,
		}).
		Returning("id", "created_at").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.q.QueryRowContext(ctx, query, args...).Scan(&review.ID, &review.CreatedAt); err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}
	return nil
}

// ListByClinic returns reviews with their author's name, newest first
func (a *ReviewAdapter) ListByClinic(ctx context.Context, clinicID int64) ([]entities.ReviewView, error) {
	query, args, err := dialect.From(goqu.T("reviews").As("r")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("r.user_id")))).
		Select(
			goqu.I("r.id"),
			goqu.I("r.rating"),
			goqu.I("r.review_text"),
			goqu.I("r.created_at"),
			goqu.I("u.full_name"),
		).
		Where(goqu.I("r.clinic_id").Eq(clinicID)).
		Order(goqu.I("r.created_at").Desc(), goqu.I("r.id").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []entities.ReviewView{}
	for rows.Next() {
		var r entities.ReviewView
		if err := rows.Scan(&r.ID, &r.Rating, &r.Text, &r.Date, &r.Author); err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate reviews", err)
	}
	return reviews, nil
}

// DeleteByClinic removes every review of a clinic
func (a *ReviewAdapter) DeleteByClinic(ctx context.Context, clinicID int64) (int64, error) {
	return deleteByClinic(ctx, a.q, "reviews", clinicID)
}
