package temporal

import (
	"context"

	"github.com/getsentry/sentry-go"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/interceptor"
)

// NewSentryActivityInterceptor gives every activity execution its own Sentry hub tagged with the activity
func NewSentryActivityInterceptor() interceptor.WorkerInterceptor {
	return &SentryActivityInterceptor{}
}

type SentryActivityInterceptor struct {
	interceptor.WorkerInterceptorBase
}

func (s *SentryActivityInterceptor) InterceptActivity(ctx context.Context, next interceptor.ActivityInboundInterceptor) interceptor.ActivityInboundInterceptor {
	return &sentryActivityInboundInterceptor{
		ActivityInboundInterceptorBase: interceptor.ActivityInboundInterceptorBase{
			Next: next,
		},
	}
}

type sentryActivityInboundInterceptor struct {
	interceptor.ActivityInboundInterceptorBase
}

// ExecuteActivity attaches a cloned hub so logger.ErrorCtx reports land on the right scope
func (s *sentryActivityInboundInterceptor) ExecuteActivity(ctx context.Context, in *interceptor.ExecuteActivityInput) (interface{}, error) {
	hub := sentry.CurrentHub().Clone()

	info := activity.GetInfo(ctx)
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("activity_type", info.ActivityType.Name)
		scope.SetTag("workflow_id", info.WorkflowExecution.ID)
		scope.SetTag("task_queue", info.TaskQueue)
		scope.SetContext("temporal", sentry.Context{
			"attempt": info.Attempt,
			"run_id":  info.WorkflowExecution.RunID,
		})
	})

	return s.Next.ExecuteActivity(sentry.SetHubOnContext(ctx, hub), in)
}
