package autotransfer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/logger"
)

// Summary aggregates the outcomes of one Run
type Summary struct {
	Processed   int           `json:"processed"`
	Transferred int           `json:"transferred"`
	Skipped     int           `json:"skipped"`
	Failed      int           `json:"failed"`
	Duration    time.Duration `json:"duration"`
}

func (e *engine) Run(ctx context.Context) (*Summary, error) {
	startTime := e.clock.Now()

	assetIDs, err := e.Candidates(ctx, e.config.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list auto-transfer candidates: %w", err)
	}
	if len(assetIDs) == 0 {
		logger.InfoCtx(ctx, "No assets eligible for auto-transfer")
		return &Summary{}, nil
	}

	logger.InfoCtx(ctx, "Found assets eligible for auto-transfer", zap.Int("count", len(assetIDs)))

	queueSize := e.config.QueueSize
	if queueSize <= 0 {
		queueSize = len(assetIDs)
	}
	pool := pond.NewPool(
		e.config.PoolSize,
		pond.WithQueueSize(queueSize),
		pond.WithContext(ctx),
	)

	var transferred, skippedCount, failed atomic.Int32
	for _, assetID := range assetIDs {
		pool.Submit(func() {
			outcome, err := e.processWithRetry(ctx, assetID)
			if err != nil {
				failed.Add(1)
				logger.ErrorCtx(ctx, err, zap.String("asset_id", assetID))
				return
			}
			if outcome.Transferred {
				transferred.Add(1)
				return
			}
			skippedCount.Add(1)
		})
	}

	// Wait for every asset of the batch
	pool.StopAndWait()

	summary := &Summary{
		Processed:   len(assetIDs),
		Transferred: int(transferred.Load()),
		Skipped:     int(skippedCount.Load()),
		Failed:      int(failed.Load()),
		Duration:    e.clock.Since(startTime),
	}
	// tasks dropped by a canceled pool never reported back
	if dropped := summary.Processed - summary.Transferred - summary.Skipped - summary.Failed; dropped > 0 {
		summary.Failed += dropped
	}

	logger.InfoCtx(ctx, "Auto-transfer run completed",
		zap.Duration("duration", summary.Duration),
		zap.Int("processed", summary.Processed),
		zap.Int("transferred", summary.Transferred),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)

	return summary, ctx.Err()
}

// processWithRetry retries storage failures with exponential backoff. Any other error is final.
func (e *engine) processWithRetry(ctx context.Context, assetID string) (*Outcome, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.config.RetryInitialInterval
	b.MaxInterval = 30 * e.config.RetryInitialInterval
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	policy := backoff.WithContext(backoff.WithMaxRetries(b, e.config.MaxRetries), ctx)

	var outcome *Outcome
	operation := func() error {
		var err error
		outcome, err = e.ProcessAsset(ctx, assetID)
		if err != nil && !errors.Is(err, domain.ErrStorage) {
			return backoff.Permanent(err)
		}
		return err
	}

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Auto-transfer failed, retrying",
			zap.String("asset_id", assetID),
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	if err := backoff.RetryNotify(operation, policy, notifyOnError); err != nil {
		return nil, fmt.Errorf("failed to auto-transfer asset %s after %d attempts: %w", assetID, attemptCount+1, err)
	}
	return outcome, nil
}
