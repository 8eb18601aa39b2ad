package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/clinicdirectory/internal/domain/entities"
	"github.com/zatekoja/clinicdirectory/internal/domain/providers"
	"github.com/zatekoja/clinicdirectory/internal/domain/repositories"
)

// ClinicDirectoryService serves the public clinic listing and detail pages
type ClinicDirectoryService struct {
	txManager repositories.TxManager
	cache     providers.CacheProvider
	cacheTTL  time.Duration
}

// NewClinicDirectoryService creates a new directory service. cache may be nil.
func NewClinicDirectoryService(
	txManager repositories.TxManager,
	cache providers.CacheProvider,
	cacheTTL time.Duration,
) *ClinicDirectoryService {
	return &ClinicDirectoryService{
		txManager: txManager,
		cache:     cache,
		cacheTTL:  cacheTTL,
	}
}

// List returns clinics matching filter, best rated first
func (s *ClinicDirectoryService) List(ctx context.Context, filter repositories.ClinicFilter) ([]*entities.ClinicSummary, error) {
	filter.Search = strings.TrimSpace(filter.Search)

	key := clinicListKey(filter.Search, filter.Service)
	var cached []*entities.ClinicSummary
	if s.getCached(ctx, key, &cached) {
		return cached, nil
	}

	var clinics []*entities.ClinicSummary
	err := s.txManager.WithinTx(ctx, func(tx repositories.Tx) error {
		var err error
		clinics, err = tx.Clinics().ListRated(ctx, filter)
		if err != nil {
			return err
		}
		return attachDetails(ctx, tx, clinics)
	})
	if err != nil {
		return nil, err
	}

	s.setCached(ctx, key, clinics)
	return clinics, nil
}

// Get returns one clinic with its services, schedule and reviews
func (s *ClinicDirectoryService) Get(ctx context.Context, id int64) (*entities.ClinicDetail, error) {
	key := clinicDetailKey(id)
	var cached entities.ClinicDetail
	if s.getCached(ctx, key, &cached) {
		return &cached, nil
	}

	var detail *entities.ClinicDetail
	err := s.txManager.WithinTx(ctx, func(tx repositories.Tx) error {
		summary, err := tx.Clinics().GetRated(ctx, id)
		if err != nil {
			return err
		}
		if err := attachDetails(ctx, tx, []*entities.ClinicSummary{summary}); err != nil {
			return err
		}

		reviews, err := tx.Reviews().ListByClinic(ctx, id)
		if err != nil {
			return err
		}

		detail = &entities.ClinicDetail{ClinicSummary: *summary, Reviews: reviews}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.setCached(ctx, key, detail)
	return detail, nil
}

// attachDetails loads services and schedules for all clinics in two queries
func attachDetails(ctx context.Context, tx repositories.Tx, clinics []*entities.ClinicSummary) error {
	if len(clinics) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(clinics))
	for _, c := range clinics {
		ids = append(ids, c.ID)
	}

	services, err := tx.Services().ListByClinics(ctx, ids)
	if err != nil {
		return err
	}
	schedules, err := tx.Schedules().ListByClinics(ctx, ids)
	if err != nil {
		return err
	}

	for _, c := range clinics {
		c.Services = []string{}
		if list, ok := services[c.ID]; ok {
			c.Services = list
		}
		c.Schedule = map[string]string{}
		if schedule, ok := schedules[c.ID]; ok {
			c.Schedule = schedule
		}
	}
	return nil
}

func (s *ClinicDirectoryService) getCached(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, providers.ErrCacheMiss) {
			log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
		return false
	}
	return true
}

func (s *ClinicDirectoryService) setCached(ctx context.Context, key string, value interface{}) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to encode cache entry")
		return
	}

	seconds := int(s.cacheTTL / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	if err := s.cache.Set(ctx, key, data, seconds); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}
