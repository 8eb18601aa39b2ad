package cache

import (
	"context"
	"errors"
	"strings"

	"github.com/zatekoja/clinicdirectory/internal/domain/providers"
	"github.com/zatekoja/clinicdirectory/internal/infrastructure/observability"
)

// InstrumentedCache counts hits and misses of the wrapped provider
type InstrumentedCache struct {
	providers.CacheProvider
	metrics *observability.Metrics
}

// NewInstrumentedCache wraps next with hit/miss metrics
func NewInstrumentedCache(next providers.CacheProvider, metrics *observability.Metrics) providers.CacheProvider {
	return &InstrumentedCache{CacheProvider: next, metrics: metrics}
}

// Get delegates and records whether the key was found
func (c *InstrumentedCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.CacheProvider.Get(ctx, key)
	switch {
	case err == nil:
		observability.RecordCacheHit(ctx, c.metrics, keyspace(key))
	case errors.Is(err, providers.ErrCacheMiss):
		observability.RecordCacheMiss(ctx, c.metrics, keyspace(key))
	}
	return value, err
}

// keyspace drops the last key segment so metric labels stay bounded
func keyspace(key string) string {
	if i := strings.LastIndex(key, ":"); i > 0 {
		return key[:i]
	}
	return key
}
