package repositories

import (
	"context"

	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
)

// ClinicFilter narrows the directory listing
type ClinicFilter struct {
	// Search is matched case-insensitively against name and address
	Search string
	// Service requires the clinic to offer exactly this service name
	Service string
}

// ClinicRepository defines the interface for the clinics table
type ClinicRepository interface {
	// Create inserts a clinic and fills in its ID
	Create(ctx context.Context, clinic *entities.Clinic) error

	// Exists reports whether a clinic row with the id exists
	Exists(ctx context.Context, id int64) (bool, error)

	// Update applies the present fields of patch
	Update(ctx context.Context, id int64, patch entities.ClinicPatch) error

	// Delete removes the clinic row itself
	Delete(ctx context.Context, id int64) (int64, error)

	// ListBasic returns every clinic's basic fields ordered by id
	ListBasic(ctx context.Context) ([]entities.ClinicBasic, error)

	// ListRated returns clinics with their aggregated rating, best rated first.
	// Services and Schedule are left empty.
	ListRated(ctx context.Context, filter ClinicFilter) ([]*entities.ClinicSummary, error)

	// GetRated returns one clinic with its aggregated rating
	GetRated(ctx context.Context, id int64) (*entities.ClinicSummary, error)
}

// ClinicServiceRepository defines the interface for the clinic_services table
type ClinicServiceRepository interface {
	// ListByClinics returns service names keyed by clinic id
	ListByClinics(ctx context.Context, clinicIDs []int64) (map[int64][]string, error)

	// Insert adds one row per service name
	Insert(ctx context.Context, clinicID int64, services []string) error

	// DeleteByClinic removes every service of a clinic
	DeleteByClinic(ctx context.Context, clinicID int64) (int64, error)
}

// ClinicScheduleRepository defines the interface for the clinic_schedules table
type ClinicScheduleRepository interface {
	// ListByClinics returns day_range -> hours keyed by clinic id
	ListByClinics(ctx context.Context, clinicIDs []int64) (map[int64]map[string]string, error)

	// Insert adds one row per schedule entry
	Insert(ctx context.Context, clinicID int64, schedule map[string]string) error

	// DeleteByClinic removes every schedule entry of a clinic
	DeleteByClinic(ctx context.Context, clinicID int64) (int64, error)
}
