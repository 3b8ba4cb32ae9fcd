// Package cache stores fetched API payloads with an expiry.
package cache

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("cache entry not found")
	ErrNotLoaded      = errors.New("cache not loaded")
	ErrNotInitialized = errors.New("cache not initialized, run 'otf cache init' first")
)

// Provider is a key-value cache. Implementations must be safe for concurrent
// use since fetches for several workouts run at once.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Entries. Get returns ErrNotFound for missing and expired keys. A ttl of
	// zero or less never expires.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	// Prune removes expired entries and reports how many were removed.
	Prune(ctx context.Context) (int, error)

	// Utils
	GetConfigPath() string
}

// ExpiresAt converts a ttl into the stored expiry in unix seconds, 0 meaning never.
func ExpiresAt(now time.Time, ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}
	return now.Add(ttl).Unix()
}

// Expired reports whether an entry with the given stored expiry is stale at now.
func Expired(expiresAt int64, now time.Time) bool {
	return expiresAt != 0 && expiresAt <= now.Unix()
}
