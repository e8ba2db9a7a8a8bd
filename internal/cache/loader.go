package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership/internal/logger"
)

// GetOrLoad returns the value cached at key, or loads it and caches the result.
// A value is only cached when key was not invalidated while it loaded, so a load that
// raced a write never outlives the write's invalidation.
// Cache failures are logged and bypassed; load errors are returned as is and never cached.
func GetOrLoad[T any](ctx context.Context, c Cache, key string, ttl time.Duration, load func(ctx context.Context) (T, error)) (T, error) {
	var cached T
	found, err := c.Get(ctx, key, &cached)
	if err != nil {
		logger.WarnCtx(ctx, "Cache read failed", zap.String("key", key), zap.Error(err))
	} else if found {
		return cached, nil
	}

	generation, genErr := c.Generation(ctx, key)
	if genErr != nil {
		logger.WarnCtx(ctx, "Cache generation read failed", zap.String("key", key), zap.Error(genErr))
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}
	if genErr != nil {
		return value, nil
	}

	stored, err := c.SetIfGeneration(ctx, key, value, ttl, generation)
	if err != nil {
		logger.WarnCtx(ctx, "Cache write failed", zap.String("key", key), zap.Error(err))
	} else if !stored {
		logger.DebugCtx(ctx, "Skipped caching a value invalidated while loading", zap.String("key", key))
	}

	return value, nil
}

// Invalidate removes keys, logging rather than returning failures
func Invalidate(ctx context.Context, c Cache, keys ...string) {
	if err := c.Delete(ctx, keys...); err != nil {
		logger.WarnCtx(ctx, "Cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
