package events

import (
	"context"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/logger"
)

// LogSink writes every event to the structured log
type LogSink struct{}

// NewLogSink creates a sink that logs events at info level
func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Name() string {
	return "log"
}

func (s *LogSink) Handle(ctx context.Context, event domain.Event) error {
	logger.InfoCtx(ctx, "Domain event",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("asset_id", event.AssetID),
		zap.Time("occurred_at", event.OccurredAt),
		zap.Any("payload", event.Payload))
	return nil
}
