package adapter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient defines the Redis operations used by the distributed read cache
//
//go:generate mockgen -source=redis.go -destination=../mocks/redis.go -package=mocks -mock_names=RedisClient=MockRedisClient
type RedisClient interface {
	// Ping checks if Redis is reachable
	Ping(ctx context.Context) *redis.StatusCmd
	// Get returns the value stored at key, redis.Nil when missing
	Get(ctx context.Context, key string) *redis.StringCmd
	// Set stores value at key with the given expiration
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	// Del removes keys
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	// Eval runs a Lua script atomically
	Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
	// Close closes the Redis connection
	Close() error
}

// NewRedisClient creates a new Redis client
func NewRedisClient(addr, password string, db int) RedisClient {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}
