package handlers_test

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/clinicdirectory/internal/application/services"
	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
	"github.com/zatekoja/clinicdirectory/internal/domain/repositories"
)

// MockAuthService is a mock implementation of handlers.AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input services.RegisterInput) (*services.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, input services.LoginInput) (*services.AuthResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.AuthResult), args.Error(1)
}

func (m *MockAuthService) Verify(ctx context.Context, token string) (*services.VerifyResult, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.VerifyResult), args.Error(1)
}

// MockDirectoryService is a mock implementation of handlers.ClinicDirectoryService
type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) List(ctx context.Context, filter repositories.ClinicFilter) ([]*entities.ClinicSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ClinicSummary), args.Error(1)
}

func (m *MockDirectoryService) Get(ctx context.Context, id int64) (*entities.ClinicDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ClinicDetail), args.Error(1)
}

// MockReviewService is a mock implementation of handlers.ReviewService
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, user *entities.PublicUser, input services.CreateReviewInput) (*services.ReviewResult, error) {
	args := m.Called(ctx, user, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ReviewResult), args.Error(1)
}

// MockAdminService is a mock implementation of handlers.AdminService
type MockAdminService struct {
	mock.Mock
}

func (m *MockAdminService) List(ctx context.Context) ([]entities.ClinicBasic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ClinicBasic), args.Error(1)
}

func (m *MockAdminService) Create(ctx context.Context, input services.CreateClinicInput) (*services.CreateClinicResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CreateClinicResult), args.Error(1)
}

func (m *MockAdminService) Update(ctx context.Context, input services.UpdateClinicInput) (*services.MessageResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.MessageResult), args.Error(1)
}

func (m *MockAdminService) Delete(ctx context.Context, input services.DeleteClinicInput) (*services.MessageResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.MessageResult), args.Error(1)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}
