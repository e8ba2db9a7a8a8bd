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
	"github.com/feral-file/ff-ownership/internal/api/graphql"
	"github.com/feral-file/ff-ownership/internal/api/middleware"
	"github.com/feral-file/ff-ownership/internal/api/rest"
	"github.com/feral-file/ff-ownership/internal/api/server"
	"github.com/feral-file/ff-ownership/internal/bootstrap"
	"github.com/feral-file/ff-ownership/internal/config"
	"github.com/feral-file/ff-ownership/internal/logger"
	"github.com/feral-file/ff-ownership/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "ownership-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Ownership API")

	// Connect to database, reads go to the replica when one is configured
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
	defer func() {
		if err := closeCache(); err != nil {
			logger.Error(err, zap.String("component", "cache"))
		}
	}()

	bus, closeSinks, err := bootstrap.NewEventBus(ctx, clock, jsonAdapter, cfg.NATS, cfg.PostHog)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize event sinks", zap.Error(err))
	}
	defer closeSinks()

	services := bootstrap.NewServices(dataStore, readCache, bus, clock, cfg.Ownership, cfg.Cache.TTL)

	limiter, closeLimiter, err := bootstrap.NewRateLimiter(ctx, cfg.RateLimit, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize rate limiter", zap.Error(err))
	}
	defer func() {
		if err := closeLimiter(); err != nil {
			logger.Error(err, zap.String("component", "rate_limiter"))
		}
	}()

	auth, err := middleware.NewAuthenticator(middleware.AuthConfig{
		JWTPublicKey: cfg.Auth.JWTPublicKey,
		APIKeys:      cfg.Auth.APIKeys,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize authentication", zap.Error(err))
	}

	srv := server.New(server.Config{
		Debug:          cfg.Debug,
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:    time.Duration(cfg.Server.IdleTimeout) * time.Second,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RateLimiter:    limiter,
		GraphQL:        graphql.NewHandler(services.Ownership, services.Ledger, adapter.NewJSON()),
	}, rest.NewHandler(services.Ownership, services.Ledger, dataStore), auth)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
	}
	cancel()

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err, zap.String("component", "server"))
	}

	logger.Info("API server stopped")
}
