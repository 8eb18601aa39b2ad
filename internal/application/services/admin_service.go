package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
	"github.com/zatekoja/clinicdirectory/internal/domain/repositories"
	apperrors "github.com/zatekoja/clinicdirectory/pkg/errors"
)

const (
	msgFillRequiredFields = "please fill in all required fields"
	msgClinicIDRequired   = "clinic id is required"
	msgClinicCreated      = "Clinic created successfully"
	msgClinicUpdated      = "Clinic updated successfully"
	msgClinicDeleted      = "Clinic deleted successfully"
)

// CreateClinicInput holds a new clinic with its services and schedule
type CreateClinicInput struct {
	Name        string            `json:"name"`
	ImageURL    string            `json:"image_url"`
	Address     string            `json:"address"`
	Phone       string            `json:"phone"`
	Email       string            `json:"email"`
	Website     string            `json:"website"`
	Description string            `json:"description"`
	Services    []string          `json:"services"`
	Schedule    map[string]string `json:"schedule"`
}

// UpdateClinicInput carries a sparse update. Services and Schedule, when
// present, replace the whole set.
type UpdateClinicInput struct {
	ID *int64 `json:"id"`
	entities.ClinicPatch
	Services *[]string          `json:"services,omitempty"`
	Schedule *map[string]string `json:"schedule,omitempty"`
}

// DeleteClinicInput identifies the clinic to delete
type DeleteClinicInput struct {
	ID *int64 `json:"id"`
}

// CreateClinicResult is returned after a clinic is created
type CreateClinicResult struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// MessageResult is a bare confirmation message
type MessageResult struct {
	Message string `json:"message"`
}

// AdminService handles clinic management for administrators
type AdminService struct {
	txManager     repositories.TxManager
	invalidations *CacheInvalidationService
}

// NewAdminService creates a new admin service
func NewAdminService(txManager repositories.TxManager, invalidations *CacheInvalidationService) *AdminService {
	return &AdminService{
		txManager:     txManager,
		invalidations: invalidations,
	}
}

// List returns the basic fields of every clinic ordered by id
func (s *AdminService) List(ctx context.Context) ([]entities.ClinicBasic, error) {
	var clinics []entities.ClinicBasic
	err := s.txManager.WithinTx(ctx, func(tx repositories.Tx) error {
		var err error
		clinics, err = tx.Clinics().ListBasic(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return clinics, nil
}

// Create inserts a clinic, then its services, then its schedule
func (s *AdminService) Create(ctx context.Context, input CreateClinicInput) (*CreateClinicResult, error) {
	clinic := &entities.Clinic{
		Name:        strings.TrimSpace(input.Name),
		ImageURL:    strings.TrimSpace(input.ImageURL),
		Address:     strings.TrimSpace(input.Address),
		Phone:       strings.TrimSpace(input.Phone),
		Email:       strings.TrimSpace(input.Email),
		Website:     strings.TrimSpace(input.Website),
		Description: strings.TrimSpace(input.Description),
	}
	for _, required := range []string{
		clinic.Name, clinic.ImageURL, clinic.Address, clinic.Phone, clinic.Email, clinic.Description,
	} {
		if required == "" {
			return nil, apperrors.NewValidationError(msgFillRequiredFields)
		}
	}

	err := s.txManager.WithinTx(ctx, func(tx repositories.Tx) error {
		if err := tx.Clinics().Create(ctx, clinic); err != nil {
			return err
		}
		if err := tx.Services().Insert(ctx, clinic.ID, input.Services); err != nil {
			return err
		}
		return tx.Schedules().Insert(ctx, clinic.ID, input.Schedule)
	})
	if err != nil {
		return nil, err
	}

	s.invalidations.InvalidateListings(ctx)
	log.Info().Int64("clinic_id", clinic.ID).Msg("Clinic created")
	return &CreateClinicResult{ID: clinic.ID, Message: msgClinicCreated}, nil
}

// Update applies the present fields and replaces services or schedule when given
func (s *AdminService) Update(ctx context.Context, input UpdateClinicInput) (*MessageResult, error) {
	if input.ID == nil || *input.ID <= 0 {
		return nil, apperrors.NewValidationError(msgClinicIDRequired)
	}
	id := *input.ID

	err := s.txManager.WithinTx(ctx, func(tx repositories.Tx) error {
		exists, err := tx.Clinics().Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NewNotFoundError(msgClinicNotFound)
		}

		if err := tx.Clinics().Update(ctx, id, input.ClinicPatch); err != nil {
			return err
		}

		if input.Services != nil {
			if _, err := tx.Services().DeleteByClinic(ctx, id); err != nil {
				return err
			}
			if err := tx.Services().Insert(ctx, id, *input.Services); err != nil {
				return err
			}
		}

		if input.Schedule != nil {
			if _, err := tx.Schedules().DeleteByClinic(ctx, id); err != nil {
				return err
			}
			if err := tx.Schedules().Insert(ctx, id, *input.Schedule); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidations.InvalidateClinic(ctx, id)
	log.Info().Int64("clinic_id", id).Msg("Clinic updated")
	return &MessageResult{Message: msgClinicUpdated}, nil
}

// Delete removes a clinic together with its services, schedule and reviews
func (s *AdminService) Delete(ctx context.Context, input DeleteClinicInput) (*MessageResult, error) {
	if input.ID == nil || *input.ID <= 0 {
		return nil, apperrors.NewValidationError(msgClinicIDRequired)
	}
	id := *input.ID

	err := s.txManager.WithinTx(ctx, func(tx repositories.Tx) error {
		if _, err := tx.Services().DeleteByClinic(ctx, id); err != nil {
			return err
		}
		if _, err := tx.Schedules().DeleteByClinic(ctx, id); err != nil {
			return err
		}
		if _, err := tx.Reviews().DeleteByClinic(ctx, id); err != nil {
			return err
		}

		deleted, err := tx.Clinics().Delete(ctx, id)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return apperrors.NewNotFoundError(msgClinicNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidations.InvalidateClinic(ctx, id)
	log.Info().Int64("clinic_id", id).Msg("Clinic deleted")
	return &MessageResult{Message: msgClinicDeleted}, nil
}
