package adapter

import (
	"context"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// RedisRateLimiter defines the interface for distributed rate limiting operations
//
//go:generate mockgen -source=ratelimit.go -destination=../mocks/ratelimit.go -package=mocks -mock_names=RedisRateLimiter=MockRedisRateLimiter
type RedisRateLimiter interface {
	// Allow checks if a request is allowed based on the rate limit
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// NewRedisRateLimiter creates a GCRA limiter sharing its state through Redis
func NewRedisRateLimiter(addr, password string, db int) (RedisRateLimiter, func() error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return redis_rate.NewLimiter(client), client.Close
}
