package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/clinicdirectory/internal/application/services"
	"github.com/zatekoja/clinicdirectory/internal/domain/repositories"
)

var demoClinics = []services.CreateClinicInput{
	{
		Name:        "Smile Dental Studio",
		ImageURL:    "https://images.example.com/clinics/smile-dental.jpg",
		Address:     "12 Harbour Road",
		Phone:       "+1 555 0101",
		Email:       "hello@smiledental.example",
		Website:     "https://smiledental.example",
		Description: "General and cosmetic dentistry for the whole family.",
		Services:    []string{"Cleaning", "Whitening", "X-Ray"},
		Schedule:    map[string]string{"Mon-Fri": "08:00-18:00", "Sat": "09:00-13:00"},
	},
	{
		Name:        "City Orthodontics",
		ImageURL:    "https://images.example.com/clinics/city-ortho.jpg",
		Address:     "48 Market Street",
		Phone:       "+1 555 0102",
		Email:       "info@cityortho.example",
		Description: "Braces and aligners for children and adults.",
		Services:    []string{"Braces", "Aligners", "X-Ray"},
		Schedule:    map[string]string{"Mon-Thu": "09:00-17:00"},
	},
	{
		Name:        "Riverside Family Clinic",
		ImageURL:    "https://images.example.com/clinics/riverside.jpg",
		Address:     "3 River Walk",
		Phone:       "+1 555 0103",
		Email:       "care@riverside.example",
		Website:     "https://riverside.example",
		Description: "Check-ups, fillings and emergency appointments.",
		Services:    []string{"Cleaning", "Fillings", "Emergency Care"},
		Schedule:    map[string]string{"Mon-Sun": "07:00-22:00"},
	},
}

// seedDemoClinics inserts the demo clinics through the admin service when the
// directory is empty
func seedDemoClinics(ctx context.Context, txManager repositories.TxManager) error {
	admin := services.NewAdminService(txManager, nil)

	existing, err := admin.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Info().Int("clinics", len(existing)).Msg("Directory already has clinics, skipping seed")
		return nil
	}

	for _, input := range demoClinics {
		result, err := admin.Create(ctx, input)
		if err != nil {
			return err
		}
		log.Info().Int64("clinic_id", result.ID).Str("name", input.Name).Msg("Seeded clinic")
	}
	return nil
}
