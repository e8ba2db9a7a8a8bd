package workflows

import (
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/feral-file/ff-ownership/internal/autotransfer"
)

// WorkerCore defines the ownership workflows hosted by the core worker
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker_core.go -package=mocks -mock_names=WorkerCore=MockCoreWorker
type WorkerCore interface {
	// AutoTransferWorkflow runs one auto-transfer pass over the current candidates.
	// It is scheduled as a cron workflow.
	AutoTransferWorkflow(ctx workflow.Context) (*autotransfer.Summary, error)
}

type WorkerCoreConfig struct {
	// BatchSize bounds the candidates handled per run, non-positive means all
	BatchSize int
	// MaxConcurrency is the number of ProcessAutoTransfer activities in flight at once
	MaxConcurrency int
	// MaxAttempts is the Temporal retry budget of each ProcessAutoTransfer activity
	MaxAttempts int32
	// ActivityTimeout is the start-to-close timeout of the activities
	ActivityTimeout time.Duration
}

type workerCore struct {
	config   WorkerCoreConfig
	executor Executor
}

// NewWorkerCore creates a new worker core instance
func NewWorkerCore(executor Executor, config WorkerCoreConfig) WorkerCore {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 1
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	if config.ActivityTimeout <= 0 {
		config.ActivityTimeout = time.Minute
	}
	return &workerCore{
		executor: executor,
		config:   config,
	}
}
