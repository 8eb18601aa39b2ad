package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
	"github.com/zatekoja/clinicdirectory/internal/domain/repositories"
	apperrors "github.com/zatekoja/clinicdirectory/pkg/errors"
)

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	q Querier
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(q Querier) repositories.UserRepository {
	return &UserAdapter{q: q}
}

// Create inserts a user. Admin rights are never granted here.
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	query, args, err := dialect.Insert("users").
		Rows(goqu.Record{
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"full_name":     user.FullName,
			"is_admin":      false,
		}).
		Returning("id").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.q.QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("a user with this email already exists")
		}
		return apperrors.NewInternalError("failed to create user", err)
	}
	user.IsAdmin = false

	return nil
}

// GetByEmail retrieves a user by email
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query, args, err := dialect.From("users").
		Select("id", "email", "password_hash", "full_name", "is_admin").
		Where(goqu.Ex{"email": email}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user := &entities.User{}
	err = a.q.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FullName,
		&user.IsAdmin,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}

	return user, nil
}

// EmailExists reports whether the email is already registered
func (a *UserAdapter) EmailExists(ctx context.Context, email string) (bool, error) {
	query, args, err := dialect.From("users").
		Select("id").
		Where(goqu.Ex{"email": email}).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build query", err)
	}

	var id int64
	err = a.q.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.NewInternalError("failed to look up email", err)
	}
	return true, nil
}

// FullName resolves a user's display name
func (a *UserAdapter) FullName(ctx context.Context, id int64) (string, error) {
	query, args, err := dialect.From("users").
		Select("full_name").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return "", apperrors.NewInternalError("failed to build query", err)
	}

	var name string
	err = a.q.QueryRowContext(ctx, query, args...).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.NewNotFoundError(fmt.Sprintf("user with id %d not found", id))
	}
	if err != nil {
		return "", apperrors.NewInternalError("failed to get user name", err)
	}
	return name, nil
}

// UpdatePasswordHash replaces a user's stored hash
func (a *UserAdapter) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	query, args, err := dialect.Update("users").
		Set(goqu.Record{"password_hash": hash}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	if _, err := a.q.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to update password hash", err)
	}
	return nil
}

// SetAdmin toggles the admin flag of the user with email
func (a *UserAdapter) SetAdmin(ctx context.Context, email string, isAdmin bool) (int64, error) {
	query, args, err := dialect.Update("users").
		Set(goqu.Record{"is_admin": isAdmin}).
		Where(goqu.Ex{"email": email}).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.NewInternalError("failed to update admin flag", err)
	}
	return result.RowsAffected()
}
