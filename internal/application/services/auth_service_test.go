package services_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/clinicdirectory/internal/adapters/security"
	"github.com/zatekoja/clinicdirectory/internal/application/services"
	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
	apperrors "github.com/zatekoja/clinicdirectory/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(store *memStore) *services.AuthService {
	return services.NewAuthService(
		store,
		security.NewJWTProvider("test-secret", 7*24*time.Hour),
		security.NewBcryptHasher(bcrypt.MinCost),
	)
}

func TestAuthService_Register(t *testing.T) {
	store := newMemStore()
	svc := newAuthService(store)
	ctx := context.Background()

	result, err := svc.Register(ctx, services.RegisterInput{
		Email:    "  ana@example.com ",
		Password: "s3cret",
		FullName: "Ana Diaz",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "ana@example.com", result.User.Email)
	assert.Equal(t, "Ana Diaz", result.User.FullName)
	assert.False(t, result.User.IsAdmin)
	require.Len(t, store.users, 1)
	assert.NotEqual(t, "s3cret", store.users[0].PasswordHash)

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := svc.Register(ctx, services.RegisterInput{
			Email: "ana@example.com", Password: "other", FullName: "Someone Else",
		})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		assert.Len(t, store.users, 1)
	})

	t.Run("blank fields rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, services.RegisterInput{Email: "b@example.com", Password: "   ", FullName: "B"})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestAuthService_Login(t *testing.T) {
	store := newMemStore()
	svc := newAuthService(store)
	ctx := context.Background()

	_, err := svc.Register(ctx, services.RegisterInput{Email: "ana@example.com", Password: "s3cret", FullName: "Ana"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := svc.Login(ctx, services.LoginInput{Email: "ana@example.com", Password: "s3cret"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "Ana", result.User.FullName)
	})

	t.Run("unknown email and wrong password fail identically", func(t *testing.T) {
		_, unknownErr := svc.Login(ctx, services.LoginInput{Email: "nobody@example.com", Password: "s3cret"})
		_, wrongErr := svc.Login(ctx, services.LoginInput{Email: "ana@example.com", Password: "nope"})

		unknown := apperrors.As(unknownErr)
		wrong := apperrors.As(wrongErr)
		require.NotNil(t, unknown)
		require.NotNil(t, wrong)
		assert.Equal(t, apperrors.ErrorTypeUnauthorized, unknown.Type)
		assert.Equal(t, unknown.Type, wrong.Type)
		assert.Equal(t, unknown.Message, wrong.Message)
	})

	t.Run("blank fields rejected", func(t *testing.T) {
		_, err := svc.Login(ctx, services.LoginInput{Email: "ana@example.com"})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestAuthService_RegisterThenLogin_LongPassword(t *testing.T) {
	store := newMemStore()
	svc := newAuthService(store)
	ctx := context.Background()
	password := strings.Repeat("p", 80)

	registered, err := svc.Register(ctx, services.RegisterInput{Email: "long@example.com", Password: password, FullName: "Long"})
	require.NoError(t, err)
	require.Len(t, store.users, 1)

	result, err := svc.Login(ctx, services.LoginInput{Email: "long@example.com", Password: password})
	require.NoError(t, err)
	assert.Equal(t, registered.User, result.User)

	_, err = svc.Login(ctx, services.LoginInput{Email: "long@example.com", Password: strings.Repeat("p", 72)})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))
}

func TestAuthService_Login_UpgradesLegacyHash(t *testing.T) {
	store := newMemStore()
	sum := sha256.Sum256([]byte("s3cret"))
	store.seedUser(entities.User{
		Email:        "legacy@example.com",
		PasswordHash: hex.EncodeToString(sum[:]),
		FullName:     "Legacy User",
	})
	svc := newAuthService(store)

	_, err := svc.Login(context.Background(), services.LoginInput{Email: "legacy@example.com", Password: "s3cret"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(store.users[0].PasswordHash, "$2"))

	_, err = svc.Login(context.Background(), services.LoginInput{Email: "legacy@example.com", Password: "s3cret"})
	assert.NoError(t, err)
}

func TestAuthService_VerifyRoundTrip(t *testing.T) {
	store := newMemStore()
	store.seedUser(entities.User{Email: "admin@example.com", FullName: "Admin"})
	svc := newAuthService(store)
	ctx := context.Background()

	registered, err := svc.Register(ctx, services.RegisterInput{Email: "ana@example.com", Password: "pw", FullName: "Ana"})
	require.NoError(t, err)

	verified, err := svc.Verify(ctx, registered.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User, verified.User)

	_, err = svc.Verify(ctx, "")
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
	assert.Equal(t, "token missing", appErr.Message)
}
