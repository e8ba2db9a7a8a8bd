package cache

import (
	"context"
	"time"
)

type noopCache struct{}

// NewNoop creates a cache that never stores anything
func NewNoop() Cache {
	return noopCache{}
}

func (noopCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	return false, nil
}

func (noopCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

func (noopCache) Delete(ctx context.Context, keys ...string) error {
	return nil
}

func (noopCache) Generation(ctx context.Context, key string) (uint64, error) {
	return 0, nil
}

func (noopCache) SetIfGeneration(ctx context.Context, key string, value any, ttl time.Duration, generation uint64) (bool, error) {
	return false, nil
}
