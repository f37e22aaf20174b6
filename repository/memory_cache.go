package repository

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process CacheRepository used when no Redis server
// is configured.
type MemoryCache struct {
	store *cache.Cache
}

func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		store: cache.New(defaultTTL, cleanupInterval),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	val, ok := m.store.Get(key)
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = cache.DefaultExpiration
	}
	m.store.Set(key, value, ttl)
	return nil
}

func (m *MemoryCache) ItemCount() int {
	return m.store.ItemCount()
}
