package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/clinicdirectory/internal/domain/providers"
)

const (
	clinicListKeyPrefix = "clinics:list:"
	clinicDetailKeyFmt  = "clinics:detail:%d"
	invalidationTimeout = 5 * time.Second
)

func clinicListKey(search, service string) string {
	return clinicListKeyPrefix + url.QueryEscape(strings.ToLower(search)) + "|" + url.QueryEscape(service)
}

func clinicDetailKey(id int64) string {
	return fmt.Sprintf(clinicDetailKeyFmt, id)
}

// CacheInvalidationService drops cached directory responses after writes.
// A nil cache makes every call a no-op.
type CacheInvalidationService struct {
	cache providers.CacheProvider
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider) *CacheInvalidationService {
	return &CacheInvalidationService{cache: cache}
}

// InvalidateClinic drops the detail entry of one clinic and every cached listing.
// Failures are logged; entries still expire through their TTL.
func (s *CacheInvalidationService) InvalidateClinic(ctx context.Context, clinicID int64) {
	if s == nil || s.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidationTimeout)
	defer cancel()

	if err := s.cache.Delete(ctx, clinicDetailKey(clinicID)); err != nil {
		log.Warn().Err(err).Int64("clinic_id", clinicID).Msg("Failed to invalidate clinic cache")
	}
	s.invalidateListings(ctx)
}

// InvalidateListings drops every cached listing
func (s *CacheInvalidationService) InvalidateListings(ctx context.Context) {
	if s == nil || s.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidationTimeout)
	defer cancel()
	s.invalidateListings(ctx)
}

func (s *CacheInvalidationService) invalidateListings(ctx context.Context) {
	pattern := clinicListKeyPrefix + "*"
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		log.Warn().Err(err).Str("pattern", pattern).Msg("Failed to invalidate listing cache")
	}
}
