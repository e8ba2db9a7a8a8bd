package cache

import (
	"context"
	"fmt"

	"github.com/feral-file/ff-ownership/internal/adapter"
)

// Config selects and sizes the cache backend
type Config struct {
	Backend       Backend
	MaxEntries    int64
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// New builds the configured backend. The returned close function releases its connections.
func New(ctx context.Context, cfg Config, json adapter.JSON) (Cache, func() error, error) {
	noClose := func() error { return nil }

	switch cfg.Backend {
	case BackendNone, "":
		return NewNoop(), noClose, nil

	case BackendMemory:
		c, err := NewMemory(cfg.MaxEntries, json)
		if err != nil {
			return nil, nil, err
		}
		return c, noClose, nil

	case BackendRedis:
		client := adapter.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return NewRedis(client, json, cfg.RedisPrefix), client.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown cache backend: %s", cfg.Backend)
	}
}
