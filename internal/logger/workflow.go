package logger

import (
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
)

// WorkflowInfo identifies a workflow execution in log entries and sentry events
type WorkflowInfo struct {
	WorkflowType string
	WorkflowID   string
	RunID        string
	Namespace    string
	TaskQueue    string
}

// GetWorkflowInfo extracts workflow information from workflow.Context.
// Returns nil if workflow info is not available.
func GetWorkflowInfo(ctx workflow.Context) *WorkflowInfo {
	info := workflow.GetInfo(ctx)
	if info == nil {
		return nil
	}

	workflowType := info.WorkflowType.Name
	if workflowType == "" {
		workflowType = "unknown"
	}

	return &WorkflowInfo{
		WorkflowType: workflowType,
		WorkflowID:   info.WorkflowExecution.ID,
		RunID:        info.WorkflowExecution.RunID,
		Namespace:    info.Namespace,
		TaskQueue:    info.TaskQueueName,
	}
}

// WithWorkflowInfo returns the global logger annotated with the workflow execution
func WithWorkflowInfo(info WorkflowInfo) *zap.Logger {
	return log.With(
		zap.String("workflow_type", info.WorkflowType),
		zap.String("workflow_id", info.WorkflowID),
		zap.String("run_id", info.RunID),
		zap.String("namespace", info.Namespace),
		zap.String("task_queue", info.TaskQueue),
	)
}

// FromWorkflow returns a logger annotated with the workflow execution of ctx
func FromWorkflow(ctx workflow.Context) *zap.Logger {
	info := GetWorkflowInfo(ctx)
	if info == nil {
		return log
	}
	return WithWorkflowInfo(*info)
}

// InfoWf logs an info message with workflow context.
// Replayed executions are not logged again.
func InfoWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	FromWorkflow(ctx).Info(msg, fields...)
}

// ErrorWf logs an error with workflow context
func ErrorWf(ctx workflow.Context, err error, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	FromWorkflow(ctx).Error(errorMessage(err), fields...)
}

// WarnWf logs a warning message with workflow context
func WarnWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	FromWorkflow(ctx).Warn(msg, fields...)
}

// DebugWf logs a debug message with workflow context
func DebugWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	FromWorkflow(ctx).Debug(msg, fields...)
}
