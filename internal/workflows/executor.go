package workflows

import (
	"context"
	"errors"

	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership/internal/autotransfer"
	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/logger"
)

// Executor defines the activities run by the ownership workflows
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor_core.go -package=mocks -mock_names=Executor=MockCoreExecutor
type Executor interface {
	// ListAutoTransferCandidates returns the assets unclaimed for longer than the threshold, oldest first
	ListAutoTransferCandidates(ctx context.Context, limit int) ([]string, error)

	// ProcessAutoTransfer resolves one candidate asset. Safe to retry.
	ProcessAutoTransfer(ctx context.Context, assetID string) (*autotransfer.Outcome, error)
}

type executor struct {
	engine autotransfer.Engine
}

// NewExecutor creates a new executor instance
func NewExecutor(engine autotransfer.Engine) Executor {
	return &executor{engine: engine}
}

func (e *executor) ListAutoTransferCandidates(ctx context.Context, limit int) ([]string, error) {
	assetIDs, err := e.engine.Candidates(ctx, limit)
	if err != nil {
		return nil, activityError(err)
	}
	return assetIDs, nil
}

func (e *executor) ProcessAutoTransfer(ctx context.Context, assetID string) (*autotransfer.Outcome, error) {
	outcome, err := e.engine.ProcessAsset(ctx, assetID)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("asset_id", assetID))
		return nil, activityError(err)
	}
	return outcome, nil
}

// activityError lets Temporal retry storage failures only
func activityError(err error) error {
	if errors.Is(err, domain.ErrStorage) {
		return err
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), string(domain.KindOf(err)), err)
}
