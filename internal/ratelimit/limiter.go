package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-ownership/internal/adapter"
	"github.com/feral-file/ff-ownership/internal/logger"
)

const DEFAULT_KEY_PREFIX = "ff:ownership:limiter:"

// Decision is the verdict for one request
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter throttles requests per key, typically the acting user
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit_limiter.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// Config holds the per-key budget
type Config struct {
	// RequestsPerMinute is the sustained rate allowed per key
	RequestsPerMinute int
	// Burst is the number of requests allowed at once, defaults to RequestsPerMinute
	Burst int
	// KeyPrefix namespaces the Redis keys
	KeyPrefix string
	// EnableLocalFallback switches to in-process limiting when Redis fails
	EnableLocalFallback bool
	// RetryDistributedAfter is how long the local fallback is used before Redis is tried again
	RetryDistributedAfter time.Duration
}

type limiter struct {
	config      Config
	distributed adapter.RedisRateLimiter
	clock       adapter.Clock

	mu    sync.Mutex
	local map[string]*rate.Limiter

	// distributedDownUntil holds the unix nano time until which Redis is skipped
	distributedDownUntil atomic.Int64
}

// New creates a limiter. A nil distributed limiter keeps all state in process,
// which is only correct for a single API replica.
func New(cfg Config, distributed adapter.RedisRateLimiter, clock adapter.Clock) (Limiter, error) {
	if cfg.RequestsPerMinute <= 0 {
		return nil, fmt.Errorf("requests per minute must be positive, got %d", cfg.RequestsPerMinute)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerMinute
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DEFAULT_KEY_PREFIX
	}
	if cfg.RetryDistributedAfter <= 0 {
		cfg.RetryDistributedAfter = 10 * time.Second
	}

	return &limiter{
		config:      cfg,
		distributed: distributed,
		clock:       clock,
		local:       make(map[string]*rate.Limiter),
	}, nil
}

func (l *limiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l.distributed == nil {
		return l.allowLocal(key), nil
	}

	now := l.clock.Now()
	if now.UnixNano() < l.distributedDownUntil.Load() {
		return l.allowLocal(key), nil
	}

	res, err := l.distributed.Allow(ctx, l.config.KeyPrefix+key, redis_rate.Limit{
		Rate:   l.config.RequestsPerMinute,
		Burst:  l.config.Burst,
		Period: time.Minute,
	})
	if err != nil {
		if ctx.Err() != nil {
			return Decision{}, ctx.Err()
		}
		if !l.config.EnableLocalFallback {
			return Decision{}, fmt.Errorf("redis rate limiter unavailable: %w", err)
		}

		logger.WarnCtx(ctx, "Redis rate limiter error, falling back to local", zap.Error(err))
		l.distributedDownUntil.Store(now.Add(l.config.RetryDistributedAfter).UnixNano())
		return l.allowLocal(key), nil
	}

	if res.Allowed == 0 {
		logger.DebugCtx(ctx, "Rate limit exceeded",
			zap.String("key", key),
			zap.Duration("retry_after", res.RetryAfter))
		return Decision{Allowed: false, Remaining: res.Remaining, RetryAfter: res.RetryAfter}, nil
	}
	return Decision{Allowed: true, Remaining: res.Remaining}, nil
}

// allowLocal consumes a token from the key's in-process bucket
func (l *limiter) allowLocal(key string) Decision {
	l.mu.Lock()
	lim, ok := l.local[key]
	if !ok {
		lim = rate.NewLimiter(rate.Every(time.Minute/time.Duration(l.config.RequestsPerMinute)), l.config.Burst)
		l.local[key] = lim
	}
	l.mu.Unlock()

	now := l.clock.Now()
	r := lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return Decision{Allowed: false, RetryAfter: delay}
	}
	return Decision{Allowed: true, Remaining: int(lim.TokensAt(now))}
}
