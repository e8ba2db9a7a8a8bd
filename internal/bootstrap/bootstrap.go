// Package bootstrap assembles the ownership components shared by every program
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-ownership/internal/adapter"
	"github.com/feral-file/ff-ownership/internal/autotransfer"
	"github.com/feral-file/ff-ownership/internal/cache"
	"github.com/feral-file/ff-ownership/internal/config"
	"github.com/feral-file/ff-ownership/internal/contribution"
	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/events"
	"github.com/feral-file/ff-ownership/internal/logger"
	"github.com/feral-file/ff-ownership/internal/ownership"
	"github.com/feral-file/ff-ownership/internal/providers/jetstream"
	"github.com/feral-file/ff-ownership/internal/providers/posthog"
	"github.com/feral-file/ff-ownership/internal/ratelimit"
	"github.com/feral-file/ff-ownership/internal/store"
)

// OpenDatabase connects to the primary, sizes the pool and registers the read replica when configured
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := store.ConfigureConnectionPool(db, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime); err != nil {
		return nil, err
	}

	if readDSN := cfg.ReadDSN(); readDSN != "" {
		if err := store.ConfigureReadReplicas(db, []string{readDSN}); err != nil {
			return nil, err
		}
		logger.InfoCtx(ctx, "Registered read replica", zap.String("read_host", cfg.ReadHost))
	}

	logger.InfoCtx(ctx, "Connected to database",
		zap.String("host", cfg.Host),
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
	)
	return db, nil
}

// NewCache builds the configured read cache
func NewCache(ctx context.Context, cfg config.CacheConfig, jsonAdapter adapter.JSON) (cache.Cache, func() error, error) {
	c, closeFn, err := cache.New(ctx, cache.Config{
		Backend:       cache.Backend(cfg.Backend),
		MaxEntries:    cfg.MaxCost,
		RedisAddr:     cfg.Redis.Addr,
		RedisPassword: cfg.Redis.Password,
		RedisDB:       cfg.Redis.DB,
		RedisPrefix:   "ff-ownership",
	}, jsonAdapter)
	if err != nil {
		return nil, nil, err
	}

	logger.InfoCtx(ctx, "Initialized cache", zap.String("backend", cfg.Backend), zap.Duration("ttl", cfg.TTL))
	return c, closeFn, nil
}

// NewRateLimiter builds the per-caller mutation limiter. It returns a nil limiter when
// rate limiting is disabled.
func NewRateLimiter(ctx context.Context, cfg config.RateLimitConfig, clock adapter.Clock) (ratelimit.Limiter, func() error, error) {
	noClose := func() error { return nil }
	if !cfg.Enabled {
		logger.InfoCtx(ctx, "Rate limiting disabled")
		return nil, noClose, nil
	}

	var distributed adapter.RedisRateLimiter
	closeFn := noClose
	switch cfg.Backend {
	case "memory", "":
	case "redis":
		distributed, closeFn = adapter.NewRedisRateLimiter(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	default:
		return nil, nil, fmt.Errorf("unknown rate limit backend: %s", cfg.Backend)
	}

	limiter, err := ratelimit.New(ratelimit.Config{
		RequestsPerMinute:   cfg.RequestsPerMinute,
		Burst:               cfg.Burst,
		EnableLocalFallback: cfg.EnableLocalFallback,
	}, distributed, clock)
	if err != nil {
		_ = closeFn()
		return nil, nil, err
	}

	logger.InfoCtx(ctx, "Initialized rate limiter",
		zap.String("backend", cfg.Backend),
		zap.Int("requests_per_minute", cfg.RequestsPerMinute),
		zap.Int("burst", cfg.Burst))
	return limiter, closeFn, nil
}

// NewEventBus creates the in-process bus with the log sink plus the JetStream and
// PostHog sinks when they are configured. The returned function closes the sinks.
func NewEventBus(ctx context.Context, clock adapter.Clock, jsonAdapter adapter.JSON, natsCfg config.NATSConfig, posthogCfg config.PostHogConfig) (*events.Bus, func(), error) {
	bus := events.NewBus(clock, events.NewLogSink())
	var closers []func()

	if natsCfg.URL != "" {
		publisher, err := jetstream.NewPublisher(ctx, jetstream.Config{
			URL:            natsCfg.URL,
			StreamName:     natsCfg.StreamName,
			SubjectPrefix:  natsCfg.SubjectPrefix,
			MaxReconnects:  natsCfg.MaxReconnects,
			ReconnectWait:  natsCfg.ReconnectWait,
			ConnectionName: natsCfg.ConnectionName,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			return nil, nil, err
		}
		bus.AddSink(publisher)
		closers = append(closers, publisher.Close)
		logger.InfoCtx(ctx, "Publishing events to NATS",
			zap.String("url", natsCfg.URL),
			zap.String("stream", natsCfg.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, events will not be published")
	}

	if posthogCfg.APIKey != "" {
		client, err := posthog.NewClient(posthogCfg.APIKey, posthogCfg.Endpoint)
		if err != nil {
			for _, c := range closers {
				c()
			}
			return nil, nil, fmt.Errorf("failed to create PostHog client: %w", err)
		}
		sink := posthog.NewSink(client)
		bus.AddSink(sink)
		closers = append(closers, func() {
			if err := sink.Close(); err != nil {
				logger.Error(err, zap.String("sink", sink.Name()))
			}
		})
		logger.InfoCtx(ctx, "Capturing events in PostHog")
	}

	return bus, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}, nil
}

// Services are the ownership components built on one store
type Services struct {
	Store     store.Store
	Cache     cache.Cache
	Bus       *events.Bus
	Ledger    contribution.Ledger
	Ownership ownership.Service
}

// NewServices wires the contribution ledger and the ownership service
func NewServices(st store.Store, c cache.Cache, bus *events.Bus, clock adapter.Clock, ownershipCfg config.OwnershipConfig, cacheTTL time.Duration) *Services {
	ledger := contribution.NewLedger(st, c, bus, clock, contribution.Config{
		Weights:  domain.DefaultContributionWeights().WithOverrides(ownershipCfg.ContributionWeights),
		CacheTTL: cacheTTL,
	})

	return &Services{
		Store:  st,
		Cache:  c,
		Bus:    bus,
		Ledger: ledger,
		Ownership: ownership.NewService(st, c, ledger, bus, clock, ownership.Config{
			MinContributionScoreForClaim: ownershipCfg.MinContributionScoreForClaim,
			CacheTTL:                     cacheTTL,
		}),
	}
}

// NewAutoTransferEngine creates the engine with the configured policy and pool sizes
func (s *Services) NewAutoTransferEngine(clock adapter.Clock, ownershipCfg config.OwnershipConfig, cfg config.AutoTransferConfig) autotransfer.Engine {
	return autotransfer.NewEngine(s.Store, s.Ledger, s.Cache, s.Bus, clock, autotransfer.Config{
		Threshold:  ownershipCfg.AutoTransferThreshold(),
		BatchSize:  cfg.BatchSize,
		PoolSize:   cfg.Worker.WorkerPoolSize,
		QueueSize:  cfg.Worker.WorkerQueueSize,
		MaxRetries: cfg.MaxRetries,
	})
}
