package repositories

import "context"

// Tx exposes repositories bound to a single database transaction
type Tx interface {
	Users() UserRepository
	Clinics() ClinicRepository
	Services() ClinicServiceRepository
	Schedules() ClinicScheduleRepository
	Reviews() ReviewRepository
}

// TxManager runs a unit of work. The transaction commits only when fn returns
// nil and is rolled back on any error or panic.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}
