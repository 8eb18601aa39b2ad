package database

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
	"github.com/zatekoja/clinicdirectory/internal/domain/repositories"
	apperrors "github.com/zatekoja/clinicdirectory/pkg/errors"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ClinicAdapter implements the ClinicRepository interface
type ClinicAdapter struct {
	q Querier
}

// NewClinicAdapter creates a new clinic adapter
func NewClinicAdapter(q Querier) repositories.ClinicRepository {
	return &ClinicAdapter{q: q}
}

// Create inserts a clinic
func (a *ClinicAdapter) Create(ctx context.Context, clinic *entities.Clinic) error {
	query, args, err := dialect.Insert("clinics").
		Rows(goqu.Record{
			"name":        clinic.Name,
			"image_url":   clinic.ImageURL,
			"address":     clinic.Address,
			"phone":       clinic.Phone,
			"email":       clinic.Email,
			"website":     clinic.Website,
			"description": clinic.Description,
		}).
		Returning("id").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.q.QueryRowContext(ctx, query, args...).Scan(&clinic.ID); err != nil {
		return apperrors.NewInternalError("failed to create clinic", err)
	}
	return nil
}

// Exists reports whether a clinic with the id exists
func (a *ClinicAdapter) Exists(ctx context.Context, id int64) (bool, error) {
	query, args, err := dialect.From("clinics").
		Select("id").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build query", err)
	}

	var found int64
	err = a.q.QueryRowContext(ctx, query, args...).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewInternalError("failed to look up clinic", err)
	}
	return true, nil
}

// Update writes only the columns present in patch
func (a *ClinicAdapter) Update(ctx context.Context, id int64, patch entities.ClinicPatch) error {
	cols := patch.Columns()
	if len(cols) == 0 {
		return nil
	}

	record := goqu.Record{}
	for column, value := range cols {
		record[column] = value
	}

	query, args, err := dialect.Update("clinics").
		Set(record).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	if _, err := a.q.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to update clinic", err)
	}
	return nil
}

// Delete removes the clinic row and returns the number of rows affected
func (a *ClinicAdapter) Delete(ctx context.Context, id int64) (int64, error) {
	query, args, err := dialect.Delete("clinics").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to delete clinic", err)
	}
	return result.RowsAffected()
}

// ListBasic returns the admin view of every clinic
func (a *ClinicAdapter) ListBasic(ctx context.Context) ([]entities.ClinicBasic, error) {
	query, args, err := dialect.From("clinics").
		Select("id", "name", "address", "phone", "email").
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list clinics", err)
	}
	defer rows.Close()

	clinics := []entities.ClinicBasic{}
	for rows.Next() {
		var c entities.ClinicBasic
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email); err != nil {
			return nil, apperrors.NewInternalError("failed to scan clinic", err)
		}
		clinics = append(clinics, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate clinics", err)
	}
	return clinics, nil
}

// ListRated returns clinics with average rating and review count, best first
func (a *ClinicAdapter) ListRated(ctx context.Context, filter repositories.ClinicFilter) ([]*entities.ClinicSummary, error) {
	ds := ratedClinicsQuery()

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		ds = ds.Where(goqu.Or(
			goqu.I("c.name").ILike(pattern),
			goqu.I("c.address").ILike(pattern),
		))
	}
	if filter.Service != "" {
		offering := dialect.From("clinic_services").
			Select("clinic_id").
			Where(goqu.C("service_name").Eq(filter.Service))
		ds = ds.Where(goqu.I("c.id").In(offering))
	}

	query, args, err := ds.
		Order(
			goqu.C("avg_rating").Desc(),
			goqu.C("review_count").Desc(),
			goqu.I("c.id").Asc(),
		).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list clinics", err)
	}
	defer rows.Close()

	clinics := []*entities.ClinicSummary{}
	for rows.Next() {
		clinic, err := scanRatedClinic(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan clinic", err)
		}
		clinics = append(clinics, clinic)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate clinics", err)
	}
	return clinics, nil
}

// GetRated returns one clinic with its aggregated rating
func (a *ClinicAdapter) GetRated(ctx context.Context, id int64) (*entities.ClinicSummary, error) {
	query, args, err := ratedClinicsQuery().
		Where(goqu.I("c.id").Eq(id)).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	clinic, err := scanRatedClinic(a.q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("Clinic not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get clinic", err)
	}
	return clinic, nil
}

func ratedClinicsQuery() *goqu.SelectDataset {
	return dialect.From(goqu.T("clinics").As("c")).
		LeftJoin(
			goqu.T("reviews").As("r"),
			goqu.On(goqu.I("r.clinic_id").Eq(goqu.I("c.id"))),
		).
		Select(
			goqu.I("c.id"),
			goqu.I("c.name"),
			goqu.I("c.image_url"),
			goqu.I("c.address"),
			goqu.I("c.phone"),
			goqu.I("c.email"),
			goqu.I("c.website"),
			goqu.I("c.description"),
			goqu.COALESCE(goqu.AVG(goqu.I("r.rating")), 0).As("avg_rating"),
			goqu.COUNT(goqu.DISTINCT(goqu.I("r.id"))).As("review_count"),
		).
		GroupBy(goqu.I("c.id"))
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRatedClinic(row rowScanner) (*entities.ClinicSummary, error) {
	var c entities.ClinicSummary
	var image, phone, email, website, desc sql.NullString
	var avg float64
	err := row.Scan(
		&c.ID,
		&c.Name,
		&image,
		&c.Address,
		&phone,
		&email,
		&website,
		&desc,
		&avg,
		&c.ReviewCount,
	)
	if err != nil {
		return nil, err
	}

	c.Image = image.String
	c.Phone = phone.String
	c.Email = email.String
	c.Website = website.String
	c.Description = desc.String
	c.Rating = entities.RoundRating(avg)
	c.Services = []string{}
	c.Schedule = map[string]string{}
	return &c, nil
}
