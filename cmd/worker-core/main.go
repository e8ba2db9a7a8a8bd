package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/feral-file/ff-ownership/internal/adapter"
	"github.com/feral-file/ff-ownership/internal/bootstrap"
	"github.com/feral-file/ff-ownership/internal/config"
	"github.com/feral-file/ff-ownership/internal/logger"
	temporal "github.com/feral-file/ff-ownership/internal/providers/temporal"
	"github.com/feral-file/ff-ownership/internal/store"
	"github.com/feral-file/ff-ownership/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadWorkerCoreConfig(*configFile, *envPath)
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
			"service": "ownership-worker-core",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Worker Core")

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

	// Initialize executor for activities
	executor := workflows.NewExecutor(engine)

	// Connect to Temporal with logger integration
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

	// Create Temporal worker
	temporalWorker := worker.New(
		temporalClient,
		cfg.Temporal.TaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			MaxConcurrentActivityTaskPollers:   cfg.Temporal.MaxConcurrentActivityTaskPollers,
			Interceptors: []interceptor.WorkerInterceptor{
				temporal.NewSentryActivityInterceptor(),
			},
		})
	logger.InfoCtx(ctx, "Created Temporal worker", zap.String("task_queue", cfg.Temporal.TaskQueue))

	// Create worker core instance
	workerCore := workflows.NewWorkerCore(executor, workflows.WorkerCoreConfig{
		BatchSize:      cfg.AutoTransfer.BatchSize,
		MaxConcurrency: cfg.AutoTransfer.Worker.WorkerPoolSize,
		MaxAttempts:    int32(cfg.AutoTransfer.MaxRetries) + 1,
	})

	// Register workflows
	temporalWorker.RegisterWorkflow(workerCore.AutoTransferWorkflow)
	logger.InfoCtx(ctx, "Registered workflows")

	// Register activities
	temporalWorker.RegisterActivity(executor.ListAutoTransferCandidates)
	temporalWorker.RegisterActivity(executor.ProcessAutoTransfer)
	logger.InfoCtx(ctx, "Registered activities")

	// Start worker
	if err := temporalWorker.Start(); err != nil {
		logger.FatalCtx(ctx, "Failed to start worker", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Worker started and listening for tasks")

	// Every replica may schedule, the workflow id keeps a single cron running
	if err := workflows.ScheduleAutoTransfer(ctx, temporalClient, cfg.Temporal.TaskQueue, cfg.AutoTransfer.CronSchedule); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("cron_schedule", cfg.AutoTransfer.CronSchedule))
	}

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))

	temporalWorker.Stop()
	logger.Info("Worker stopped")
}
