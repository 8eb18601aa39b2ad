package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/clinicdirectory/internal/application/services"
	apperrors "github.com/zatekoja/clinicdirectory/pkg/errors"
)

const (
	actionRegister = "register"
	actionLogin    = "login"
	actionVerify   = "verify"
)

// AuthService defines the auth operations used by the handler
type AuthService interface {
	Register(ctx context.Context, input services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, input services.LoginInput) (*services.AuthResult, error)
	Verify(ctx context.Context, token string) (*services.VerifyResult, error)
}

// AuthHandler serves POST /api/auth
type AuthHandler struct {
	service AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type authRequest struct {
	Action   string `json:"action"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Token    string `json:"token"`
}

// Handle dispatches on the body's action field, defaulting to login
func (h *AuthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithAppError(w, r, err)
		return
	}
	if req.Action == "" {
		req.Action = actionLogin
	}

	var (
		result interface{}
		err    error
	)
	switch req.Action {
	case actionRegister:
		result, err = h.service.Register(r.Context(), services.RegisterInput{
			Email:    req.Email,
			Password: req.Password,
			FullName: req.FullName,
		})
	case actionLogin:
		result, err = h.service.Login(r.Context(), services.LoginInput{
			Email:    req.Email,
			Password: req.Password,
		})
	case actionVerify:
		result, err = h.service.Verify(r.Context(), req.Token)
	default:
		err = apperrors.NewValidationError("unknown action")
	}

	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}
