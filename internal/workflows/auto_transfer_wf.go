package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership/internal/autotransfer"
	"github.com/feral-file/ff-ownership/internal/logger"
)

// AutoTransferWorkflow lists the candidates then processes them in chunks of MaxConcurrency activities.
// A failed asset is counted and left for the next run.
func (w *workerCore) AutoTransferWorkflow(ctx workflow.Context) (*autotransfer.Summary, error) {
	startTime := workflow.Now(ctx)
	logger.InfoWf(ctx, "Starting auto-transfer workflow", zap.Int("batch_size", w.config.BatchSize))

	listCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: w.config.ActivityTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    w.config.MaxAttempts,
		},
	})

	var assetIDs []string
	if err := workflow.ExecuteActivity(listCtx, w.executor.ListAutoTransferCandidates, w.config.BatchSize).Get(ctx, &assetIDs); err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to list auto-transfer candidates: %w", err))
		return nil, err
	}

	summary := &autotransfer.Summary{Processed: len(assetIDs)}
	if len(assetIDs) == 0 {
		logger.InfoWf(ctx, "No assets eligible for auto-transfer")
		return summary, nil
	}

	processCtx := workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: w.config.ActivityTimeout,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    w.config.MaxAttempts,
		},
	})

	for start := 0; start < len(assetIDs); start += w.config.MaxConcurrency {
		end := min(start+w.config.MaxConcurrency, len(assetIDs))
		chunk := assetIDs[start:end]

		futures := make([]workflow.Future, len(chunk))
		for i, assetID := range chunk {
			futures[i] = workflow.ExecuteActivity(processCtx, w.executor.ProcessAutoTransfer, assetID)
		}

		for i, future := range futures {
			var outcome autotransfer.Outcome
			if err := future.Get(ctx, &outcome); err != nil {
				summary.Failed++
				logger.ErrorWf(ctx, fmt.Errorf("failed to auto-transfer asset: %w", err), zap.String("asset_id", chunk[i]))
				continue
			}
			if outcome.Transferred {
				summary.Transferred++
				logger.InfoWf(ctx, "Asset auto-transferred",
					zap.String("asset_id", outcome.AssetID),
					zap.String("new_owner_id", outcome.WinnerUserID))
			} else {
				summary.Skipped++
			}
		}
	}

	summary.Duration = workflow.Now(ctx).Sub(startTime)
	logger.InfoWf(ctx, "Auto-transfer workflow completed",
		zap.Int("processed", summary.Processed),
		zap.Int("transferred", summary.Transferred),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
	)

	return summary, nil
}
