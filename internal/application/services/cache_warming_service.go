package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/clinicdirectory/internal/domain/repositories"
)

const defaultWarmTopClinics = 20

// CacheWarmingService preloads the unfiltered listing and the details of the
// best rated clinics through the directory's read-through cache
type CacheWarmingService struct {
	directory *ClinicDirectoryService
	top       int
}

// NewCacheWarmingService creates a new cache warming service. top <= 0 uses the default.
func NewCacheWarmingService(directory *ClinicDirectoryService, top int) *CacheWarmingService {
	if top <= 0 {
		top = defaultWarmTopClinics
	}
	return &CacheWarmingService{
		directory: directory,
		top:       top,
	}
}

// WarmCache fills the cache. Failures on individual clinics are logged and skipped.
func (s *CacheWarmingService) WarmCache(ctx context.Context) error {
	if s.directory == nil || s.directory.cache == nil {
		return nil
	}

	start := time.Now()
	clinics, err := s.directory.List(ctx, repositories.ClinicFilter{})
	if err != nil {
		return err
	}

	warmed := 0
	for i, clinic := range clinics {
		if i >= s.top {
			break
		}
		if _, err := s.directory.Get(ctx, clinic.ID); err != nil {
			log.Warn().Err(err).Int64("clinic_id", clinic.ID).Msg("Failed to warm clinic detail")
			continue
		}
		warmed++
	}

	log.Info().
		Int("listed", len(clinics)).
		Int("details", warmed).
		Dur("duration", time.Since(start)).
		Msg("Cache warming completed")
	return nil
}
