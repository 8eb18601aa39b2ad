package repositories

import (
	"context"

	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create inserts a user and fills in its ID
	Create(ctx context.Context, user *entities.User) error

	// GetByEmail retrieves a user by exact email match
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// EmailExists reports whether a user with the email is registered
	EmailExists(ctx context.Context, email string) (bool, error)

	// FullName resolves the display name of a user
	FullName(ctx context.Context, id int64) (string, error)

	// UpdatePasswordHash replaces the stored password hash
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error

	// SetAdmin grants or revokes admin rights by email and returns rows affected
	SetAdmin(ctx context.Context, email string, isAdmin bool) (int64, error)
}
