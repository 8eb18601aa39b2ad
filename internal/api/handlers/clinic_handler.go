package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
	"github.com/zatekoja/clinicdirectory/internal/domain/repositories"
	apperrors "github.com/zatekoja/clinicdirectory/pkg/errors"
)

// ClinicDirectoryService defines the directory operations used by the handler
type ClinicDirectoryService interface {
	List(ctx context.Context, filter repositories.ClinicFilter) ([]*entities.ClinicSummary, error)
	Get(ctx context.Context, id int64) (*entities.ClinicDetail, error)
}

// ClinicHandler serves the public clinic directory
type ClinicHandler struct {
	service ClinicDirectoryService
}

// NewClinicHandler creates a new clinic handler
func NewClinicHandler(service ClinicDirectoryService) *ClinicHandler {
	return &ClinicHandler{service: service}
}

// ListClinics handles GET /api/clinics. A clinic_id query parameter returns
// that clinic's detail instead of the listing.
func (h *ClinicHandler) ListClinics(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if raw := query.Get("clinic_id"); raw != "" {
		h.respondWithClinic(w, r, raw)
		return
	}

	clinics, err := h.service.List(r.Context(), repositories.ClinicFilter{
		Search:  query.Get("search"),
		Service: query.Get("service"),
	})
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, clinics)
}

// GetClinic handles GET /api/clinics/{id}
func (h *ClinicHandler) GetClinic(w http.ResponseWriter, r *http.Request) {
	h.respondWithClinic(w, r, r.PathValue("id"))
}

func (h *ClinicHandler) respondWithClinic(w http.ResponseWriter, r *http.Request, raw string) {
	id, err := parseClinicID(raw)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	clinic, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, clinic)
}

func parseClinicID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid clinic_id")
	}
	return id, nil
}
