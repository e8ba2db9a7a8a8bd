package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-ownership/internal/adapter"
	"github.com/feral-file/ff-ownership/internal/bootstrap"
	"github.com/feral-file/ff-ownership/internal/config"
	"github.com/feral-file/ff-ownership/internal/logger"
	"github.com/feral-file/ff-ownership/internal/store"
	"github.com/feral-file/ff-ownership/internal/sweeper"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAutoTransferConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "ownership-auto-transfer",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Auto-Transfer Sweeper")

	db, err := bootstrap.OpenDatabase(ctx, cfg.Database)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to open database", zap.Error(err))
	}
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()

	readCache, closeCache, err := bootstrap.NewCache(ctx, cfg.Cache, jsonAdapter)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize cache", zap.Error(err))
	}
	defer func() { _ = closeCache() }()

	bus, closeSinks, err := bootstrap.NewEventBus(ctx, clock, jsonAdapter, cfg.NATS, cfg.PostHog)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize event sinks", zap.Error(err))
	}
	defer closeSinks()

	services := bootstrap.NewServices(dataStore, readCache, bus, clock, cfg.Ownership, cfg.Cache.TTL)
	engine := services.NewAutoTransferEngine(clock, cfg.Ownership, cfg.AutoTransfer)

	autoTransferSweeper := sweeper.NewAutoTransferSweeper(sweeper.AutoTransferSweeperConfig{
		Interval:  cfg.AutoTransfer.Interval,
		BatchSize: cfg.AutoTransfer.BatchSize,
	}, engine, clock)

	logger.InfoCtx(ctx, "Initialized auto-transfer sweeper",
		zap.Duration("interval", cfg.AutoTransfer.Interval),
		zap.Int("batch_size", cfg.AutoTransfer.BatchSize),
		zap.Int("worker_pool_size", cfg.AutoTransfer.Worker.WorkerPoolSize),
		zap.Duration("threshold", cfg.Ownership.AutoTransferThreshold()),
	)

	// Start the sweeper in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := autoTransferSweeper.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	// Cancel context to stop the sweeper
	cancel()

	// Give in-flight transfers time to commit
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := autoTransferSweeper.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}

	logger.Info("Auto-transfer sweeper stopped")
}
