package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership/internal/adapter"
	"github.com/feral-file/ff-ownership/internal/autotransfer"
	"github.com/feral-file/ff-ownership/internal/logger"
)

const (
	DEFAULT_SWEEP_INTERVAL = time.Hour // Time to sleep between sweep cycles
)

// AutoTransferSweeperConfig holds configuration for the auto-transfer sweeper
type AutoTransferSweeperConfig struct {
	Interval  time.Duration // Sleep between cycles when the last batch was not full
	BatchSize int           // Candidates per cycle, must match the engine's batch size
}

type autoTransferSweeper struct {
	config    AutoTransferSweeperConfig
	engine    autotransfer.Engine
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewAutoTransferSweeper creates a sweeper that periodically runs the auto-transfer engine
func NewAutoTransferSweeper(config AutoTransferSweeperConfig, engine autotransfer.Engine, clock adapter.Clock) Sweeper {
	if config.Interval <= 0 {
		config.Interval = DEFAULT_SWEEP_INTERVAL
	}
	return &autoTransferSweeper{
		config:    config,
		engine:    engine,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

func (s *autoTransferSweeper) Name() string {
	return "auto-transfer-sweeper"
}

// Start runs sweep cycles until the context is canceled or Stop is called.
// A full batch that made progress is followed immediately by the next cycle, otherwise the sweeper sleeps for the interval.
func (s *autoTransferSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting auto-transfer sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Int("batch_size", s.config.BatchSize),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Auto-transfer sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Auto-transfer sweeper stop requested")
			return nil
		default:
		}

		full, err := s.runSweepCycle(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err)
		}
		if full && err == nil {
			continue
		}
		// an interrupted sleep is handled at the top of the loop
		s.sleep(ctx, s.config.Interval)
	}
}

// Stop signals the main loop and waits for the in-flight cycle to finish
func (s *autoTransferSweeper) Stop(ctx context.Context) error {
	if !s.running.Load() {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping auto-transfer sweeper")
	select {
	case <-s.stopChan:
	default:
		close(s.stopChan)
	}

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Auto-transfer sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Auto-transfer sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle runs the engine once and reports whether the batch was full.
// A batch that transferred nothing would be listed again unchanged, so it never counts as full.
func (s *autoTransferSweeper) runSweepCycle(ctx context.Context) (bool, error) {
	summary, err := s.engine.Run(ctx)
	if err != nil {
		return false, fmt.Errorf("auto-transfer cycle failed: %w", err)
	}
	if summary.Transferred == 0 {
		return false, nil
	}
	return s.config.BatchSize > 0 && summary.Processed >= s.config.BatchSize, nil
}

// sleep waits for the duration. Returns false when interrupted.
func (s *autoTransferSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
