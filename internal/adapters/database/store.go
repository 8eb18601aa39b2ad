package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/zatekoja/clinicdirectory/internal/domain/repositories"
	"github.com/zatekoja/clinicdirectory/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/clinicdirectory/internal/infrastructure/observability"
)

var dialect = goqu.Dialect("postgres")

// pqUniqueViolation is the SQLSTATE for unique_violation
const pqUniqueViolation = "23505"

// Querier is satisfied by both *sql.DB and *sql.Tx
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store implements repositories.TxManager on top of the Postgres client
type Store struct {
	client  *postgres.Client
	metrics *observability.Metrics
}

// NewStore creates a new transactional store. metrics may be nil.
func NewStore(client *postgres.Client, metrics *observability.Metrics) repositories.TxManager {
	return &Store{client: client, metrics: metrics}
}

// WithinTx runs fn with repositories bound to one transaction
func (s *Store) WithinTx(ctx context.Context, fn func(tx repositories.Tx) error) error {
	start := time.Now()
	err := s.client.WithTx(ctx, func(tx *sql.Tx) error {
		return fn(txRepositories{q: tx})
	})
	observability.RecordTxMetric(ctx, s.metrics, time.Since(start), err)
	return err
}

type txRepositories struct {
	q Querier
}

func (t txRepositories) Users() repositories.UserRepository {
	return NewUserAdapter(t.q)
}

func (t txRepositories) Clinics() repositories.ClinicRepository {
	return NewClinicAdapter(t.q)
}

func (t txRepositories) Services() repositories.ClinicServiceRepository {
	return NewClinicServiceAdapter(t.q)
}

func (t txRepositories) Schedules() repositories.ClinicScheduleRepository {
	return NewClinicScheduleAdapter(t.q)
}

func (t txRepositories) Reviews() repositories.ReviewRepository {
	return NewReviewAdapter(t.q)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
