package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
	"github.com/zatekoja/clinicdirectory/internal/domain/providers"
	"github.com/zatekoja/clinicdirectory/internal/domain/repositories"
	apperrors "github.com/zatekoja/clinicdirectory/pkg/errors"
)

const (
	msgFillAllFields       = "please fill in all fields"
	msgEmailTaken          = "a user with this email already exists"
	msgInvalidCredentials  = "invalid email or password"
	dummyPasswordForTiming = "clinic-directory-timing-guard"
)

// RegisterInput holds the fields of a registration request
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// LoginInput holds the fields of a login request
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by a successful register or login
type AuthResult struct {
	Token string              `json:"token"`
	User  entities.PublicUser `json:"user"`
}

// VerifyResult is returned by a successful token verification
type VerifyResult struct {
	User entities.PublicUser `json:"user"`
}

// AuthService handles registration, login and token verification
type AuthService struct {
	txManager repositories.TxManager
	tokens    providers.TokenProvider
	hasher    providers.PasswordHasher
	dummyHash string
}

// NewAuthService creates a new auth service
func NewAuthService(
	txManager repositories.TxManager,
	tokens providers.TokenProvider,
	hasher providers.PasswordHasher,
) *AuthService {
	dummyHash, err := hasher.Hash(dummyPasswordForTiming)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to prepare dummy password hash")
	}

	return &AuthService{
		txManager: txManager,
		tokens:    tokens,
		hasher:    hasher,
		dummyHash: dummyHash,
	}
}

// Register creates a non-admin account and signs a token for it
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	password := strings.TrimSpace(input.Password)
	fullName := strings.TrimSpace(input.FullName)
	if email == "" || password == "" || fullName == "" {
		return nil, apperrors.NewValidationError(msgFillAllFields)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	user := &entities.User{Email: email, PasswordHash: hash, FullName: fullName}
	err = s.txManager.WithinTx(ctx, func(tx repositories.Tx) error {
		exists, err := tx.Users().EmailExists(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.NewConflictError(msgEmailTaken)
		}
		return tx.Users().Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", user.ID).Msg("User registered")
	return s.issue(user.Public())
}

// Login checks credentials. Unknown emails and wrong passwords fail with the
// same error, and both paths perform one hash comparison.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	password := strings.TrimSpace(input.Password)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError(msgFillAllFields)
	}

	var user *entities.User
	var needsRehash bool
	err := s.txManager.WithinTx(ctx, func(tx repositories.Tx) error {
		found, err := tx.Users().GetByEmail(ctx, email)
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			s.hasher.Verify(s.dummyHash, password)
			return apperrors.NewUnauthorizedError(msgInvalidCredentials)
		}
		if err != nil {
			return err
		}

		var ok bool
		ok, needsRehash = s.hasher.Verify(found.PasswordHash, password)
		if !ok {
			return apperrors.NewUnauthorizedError(msgInvalidCredentials)
		}
		user = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	if needsRehash {
		s.rehash(ctx, user.ID, password)
	}

	return s.issue(user.Public())
}

// Verify decodes a token into the public user view
func (s *AuthService) Verify(_ context.Context, token string) (*VerifyResult, error) {
	user, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	return &VerifyResult{User: *user}, nil
}

func (s *AuthService) issue(user entities.PublicUser) (*AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// rehash upgrades an outdated stored hash. A failure keeps the old hash and
// does not fail the login.
func (s *AuthService) rehash(ctx context.Context, userID int64, password string) {
	hash, err := s.hasher.Hash(password)
	if err == nil {
		err = s.txManager.WithinTx(ctx, func(tx repositories.Tx) error {
			return tx.Users().UpdatePasswordHash(ctx, userID, hash)
		})
	}
	if err != nil {
		log.Warn().Err(err).Int64("user_id", userID).Msg("Failed to upgrade password hash")
		return
	}
	log.Info().Int64("user_id", userID).Msg("Upgraded legacy password hash")
}
