package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/clinicdirectory/internal/application/services"
	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
)

// AdminService defines the clinic management operations used by the handler
type AdminService interface {
	List(ctx context.Context) ([]entities.ClinicBasic, error)
	Create(ctx context.Context, input services.CreateClinicInput) (*services.CreateClinicResult, error)
	Update(ctx context.Context, input services.UpdateClinicInput) (*services.MessageResult, error)
	Delete(ctx context.Context, input services.DeleteClinicInput) (*services.MessageResult, error)
}

// AdminHandler serves /api/admin/clinics. Authorization is enforced by middleware.
type AdminHandler struct {
	service AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListClinics handles GET /api/admin/clinics
func (h *AdminHandler) ListClinics(w http.ResponseWriter, r *http.Request) {
	clinics, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, clinics)
}

// CreateClinic handles POST /api/admin/clinics
func (h *AdminHandler) CreateClinic(w http.ResponseWriter, r *http.Request) {
	var input services.CreateClinicInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	result, err := h.service.Create(r.Context(), input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// UpdateClinic handles PUT /api/admin/clinics
func (h *AdminHandler) UpdateClinic(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateClinicInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	result, err := h.service.Update(r.Context(), input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}

// DeleteClinic handles DELETE /api/admin/clinics with the id in the JSON body
func (h *AdminHandler) DeleteClinic(w http.ResponseWriter, r *http.Request) {
	var input services.DeleteClinicInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithAppError(w, r, err)
		return
	}

	result, err := h.service.Delete(r.Context(), input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, result)
}
