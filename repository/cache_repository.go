package repository

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/mock_cache_repository.go -package=mocks -source=cache_repository.go

// CacheRepository is a string key/value store with per-entry expiry.
// A miss and a backend failure both read as not found.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
