package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is a read-through cache for ownership and contribution lookups.
// Values are stored serialized, so callers never share memory with the cache.
//
//go:generate mockgen -source=cache.go -destination=../mocks/cache.go -package=mocks -mock_names=Cache=MockCache
type Cache interface {
	// Get decodes the value stored at key into dst and reports whether it was found
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Set stores value at key for ttl
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete removes keys and advances their generation, missing keys are ignored
	Delete(ctx context.Context, keys ...string) error
	// Generation returns the invalidation generation of key
	Generation(ctx context.Context, key string) (uint64, error)
	// SetIfGeneration stores value at key unless key was deleted after generation was read.
	// It reports whether the value was stored.
	SetIfGeneration(ctx context.Context, key string, value any, ttl time.Duration, generation uint64) (bool, error)
}

// Backend names a cache implementation
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
	BackendNone   Backend = "none"
)

// OwnershipKey is the cache key of an asset's ownership record
func OwnershipKey(assetID string) string {
	return fmt.Sprintf("ownership:%s", assetID)
}

// ScoreKey is the cache key of a user's contribution score on an asset
func ScoreKey(assetID, userID string) string {
	return fmt.Sprintf("score:%s:%s", assetID, userID)
}

// ContributorsKey is the cache key of an asset's contributor ranking
func ContributorsKey(assetID string) string {
	return fmt.Sprintf("contributors:%s", assetID)
}
