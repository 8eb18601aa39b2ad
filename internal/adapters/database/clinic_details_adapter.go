package database

import (
	"context"
	"sort"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/clinicdirectory/internal/domain/repositories"
	apperrors "github.com/zatekoja/clinicdirectory/pkg/errors"
)

// ClinicServiceAdapter implements the ClinicServiceRepository interface
type ClinicServiceAdapter struct {
	q Querier
}

// NewClinicServiceAdapter creates a new clinic service adapter
func NewClinicServiceAdapter(q Querier) repositories.ClinicServiceRepository {
	return &ClinicServiceAdapter{q: q}
}

// ListByClinics fetches services for many clinics in a single query
func (a *ClinicServiceAdapter) ListByClinics(ctx context.Context, clinicIDs []int64) (map[int64][]string, error) {
	result := make(map[int64][]string, len(clinicIDs))
	if len(clinicIDs) == 0 {
		return result, nil
	}

	query, args, err := dialect.From("clinic_services").
		Select("clinic_id", "service_name").
		Where(goqu.C("clinic_id").In(clinicIDs)).
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list clinic services", err)
	}
	defer rows.Close()

	for rows.Next() {
		var clinicID int64
		var name string
		if err := rows.Scan(&clinicID, &name); err != nil {
			return nil, apperrors.NewInternalError("failed to scan clinic service", err)
		}
		result[clinicID] = append(result[clinicID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate clinic services", err)
	}
	return result, nil
}

// Insert adds one row per service, in the given order
func (a *ClinicServiceAdapter) Insert(ctx context.Context, clinicID int64, services []string) error {
	if len(services) == 0 {
		return nil
	}

	rows := make([]interface{}, 0, len(services))
	for _, name := range services {
		rows = append(rows, goqu.Record{"clinic_id": clinicID, "service_name": name})
	}

	query, args, err := dialect.Insert("clinic_services").Rows(rows...).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}
	if _, err := a.q.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to insert clinic services", err)
	}
	return nil
}

// DeleteByClinic removes all services of a clinic
func (a *ClinicServiceAdapter) DeleteByClinic(ctx context.Context, clinicID int64) (int64, error) {
	return deleteByClinic(ctx, a.q, "clinic_services", clinicID)
}

// ClinicScheduleAdapter implements the ClinicScheduleRepository interface
type ClinicScheduleAdapter struct {
	q Querier
}

// NewClinicScheduleAdapter creates a new clinic schedule adapter
func NewClinicScheduleAdapter(q Querier) repositories.ClinicScheduleRepository {
	return &ClinicScheduleAdapter{q: q}
}

// ListByClinics fetches schedules for many clinics in a single query
func (a *ClinicScheduleAdapter) ListByClinics(ctx context.Context, clinicIDs []int64) (map[int64]map[string]string, error) {
	result := make(map[int64]map[string]string, len(clinicIDs))
	if len(clinicIDs) == 0 {
		return result, nil
	}

	query, args, err := dialect.From("clinic_schedules").
		Select("clinic_id", "day_range", "hours").
		Where(goqu.C("clinic_id").In(clinicIDs)).
		Order(goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list clinic schedules", err)
	}
	defer rows.Close()

	for rows.Next() {
		var clinicID int64
		var dayRange, hours string
		if err := rows.Scan(&clinicID, &dayRange, &hours); err != nil {
			return nil, apperrors.NewInternalError("failed to scan clinic schedule", err)
		}
		if result[clinicID] == nil {
			result[clinicID] = make(map[string]string)
		}
		result[clinicID][dayRange] = hours
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate clinic schedules", err)
	}
	return result, nil
}

// Insert adds one row per schedule entry, ordered by day range
func (a *ClinicScheduleAdapter) Insert(ctx context.Context, clinicID int64, schedule map[string]string) error {
	if len(schedule) == 0 {
		return nil
	}

	days := make([]string, 0, len(schedule))
	for day := range schedule {
		days = append(days, day)
	}
	sort.Strings(days)

	rows := make([]interface{}, 0, len(days))
	for _, day := range days {
		rows = append(rows, goqu.Record{
			"clinic_id": clinicID,
			"day_range": day,
			"hours":     schedule[day],
		})
	}

	query, args, err := dialect.Insert("clinic_schedules").Rows(rows...).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}
	if _, err := a.q.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to insert clinic schedule", err)
	}
	return nil
}

// DeleteByClinic removes all schedule entries of a clinic
func (a *ClinicScheduleAdapter) DeleteByClinic(ctx context.Context, clinicID int64) (int64, error) {
	return deleteByClinic(ctx, a.q, "clinic_schedules", clinicID)
}

func deleteByClinic(ctx context.Context, q Querier, table string, clinicID int64) (int64, error) {
	query, args, err := dialect.Delete(table).
		Where(goqu.Ex{"clinic_id": clinicID}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to delete from "+table, err)
	}
	return result.RowsAffected()
}
