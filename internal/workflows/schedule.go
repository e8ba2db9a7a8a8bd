package workflows

import (
	"context"
	"fmt"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership/internal/logger"
	"github.com/feral-file/ff-ownership/internal/providers/temporal"
)

const AUTO_TRANSFER_WORKFLOW_ID = "ownership-auto-transfer"

// ScheduleAutoTransfer starts the auto-transfer cron workflow. An already running
// schedule is kept as is, so every worker replica can call this on start-up.
func ScheduleAutoTransfer(ctx context.Context, orchestrator temporal.TemporalOrchestrator, taskQueue, cronSchedule string) error {
	if cronSchedule == "" {
		return fmt.Errorf("auto-transfer cron schedule is required")
	}

	options := client.StartWorkflowOptions{
		ID:                       AUTO_TRANSFER_WORKFLOW_ID,
		TaskQueue:                taskQueue,
		CronSchedule:             cronSchedule,
		WorkflowIDConflictPolicy: enums.WORKFLOW_ID_CONFLICT_POLICY_USE_EXISTING,
	}

	w := NewWorkerCore(nil, WorkerCoreConfig{})
	run, err := orchestrator.ExecuteWorkflow(ctx, options, w.AutoTransferWorkflow)
	if err != nil {
		return fmt.Errorf("failed to schedule auto-transfer workflow: %w", err)
	}

	logger.InfoCtx(ctx, "Auto-transfer workflow scheduled",
		zap.String("workflow_id", run.GetID()),
		zap.String("run_id", run.GetRunID()),
		zap.String("cron_schedule", cronSchedule),
	)
	return nil
}
