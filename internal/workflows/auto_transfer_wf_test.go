package workflows_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	"github.com/feral-file/ff-ownership/internal/autotransfer"
	"github.com/feral-file/ff-ownership/internal/logger"
	"github.com/feral-file/ff-ownership/internal/mocks"
	"github.com/feral-file/ff-ownership/internal/workflows"
)

// AutoTransferWorkflowTestSuite is the test suite for the auto-transfer workflow
type AutoTransferWorkflowTestSuite struct {
	suite.Suite
	testsuite.WorkflowTestSuite

	env        *testsuite.TestWorkflowEnvironment
	ctrl       *gomock.Controller
	executor   *mocks.MockCoreExecutor
	workerCore workflows.WorkerCore
}

func (s *AutoTransferWorkflowTestSuite) SetupTest() {
	_ = logger.Initialize(logger.Config{
		Debug: true,
	})

	s.env = s.NewTestWorkflowEnvironment()
	s.ctrl = gomock.NewController(s.T())
	s.executor = mocks.NewMockCoreExecutor(s.ctrl)
	s.workerCore = workflows.NewWorkerCore(s.executor, workflows.WorkerCoreConfig{
		BatchSize:      50,
		MaxConcurrency: 2,
		MaxAttempts:    3,
	})
}

func (s *AutoTransferWorkflowTestSuite) TearDownTest() {
	s.env.AssertExpectations(s.T())
	s.ctrl.Finish()
}

func TestAutoTransferWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(AutoTransferWorkflowTestSuite))
}

func (s *AutoTransferWorkflowTestSuite) summary() *autotransfer.Summary {
	var summary autotransfer.Summary
	s.NoError(s.env.GetWorkflowResult(&summary))
	return &summary
}

func (s *AutoTransferWorkflowTestSuite) TestAutoTransferWorkflow_NoCandidates() {
	s.env.OnActivity(s.executor.ListAutoTransferCandidates, mock.Anything, 50).Return([]string{}, nil)

	s.env.ExecuteWorkflow(s.workerCore.AutoTransferWorkflow)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
	s.Equal(0, s.summary().Processed)
}

func (s *AutoTransferWorkflowTestSuite) TestAutoTransferWorkflow_ProcessesEveryCandidate() {
	s.env.OnActivity(s.executor.ListAutoTransferCandidates, mock.Anything, 50).
		Return([]string{"myth-1", "myth-2", "myth-3"}, nil)
	s.env.OnActivity(s.executor.ProcessAutoTransfer, mock.Anything, "myth-1").
		Return(&autotransfer.Outcome{AssetID: "myth-1", Transferred: true, WinnerUserID: "userC"}, nil)
	s.env.OnActivity(s.executor.ProcessAutoTransfer, mock.Anything, "myth-2").
		Return(&autotransfer.Outcome{AssetID: "myth-2", SkipReason: autotransfer.SkipNoPendingClaims}, nil)
	s.env.OnActivity(s.executor.ProcessAutoTransfer, mock.Anything, "myth-3").
		Return(&autotransfer.Outcome{AssetID: "myth-3", Transferred: true, WinnerUserID: "userB"}, nil)

	s.env.ExecuteWorkflow(s.workerCore.AutoTransferWorkflow)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	summary := s.summary()
	s.Equal(3, summary.Processed)
	s.Equal(2, summary.Transferred)
	s.Equal(1, summary.Skipped)
	s.Equal(0, summary.Failed)
}

func (s *AutoTransferWorkflowTestSuite) TestAutoTransferWorkflow_FailedAssetDoesNotStopTheRun() {
	s.env.OnActivity(s.executor.ListAutoTransferCandidates, mock.Anything, 50).
		Return([]string{"broken", "myth-2"}, nil)
	s.env.OnActivity(s.executor.ProcessAutoTransfer, mock.Anything, "broken").
		Return(nil, temporal.NewNonRetryableApplicationError("bad record", "InvalidArgument", nil))
	s.env.OnActivity(s.executor.ProcessAutoTransfer, mock.Anything, "myth-2").
		Return(&autotransfer.Outcome{AssetID: "myth-2", Transferred: true}, nil)

	s.env.ExecuteWorkflow(s.workerCore.AutoTransferWorkflow)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())

	summary := s.summary()
	s.Equal(2, summary.Processed)
	s.Equal(1, summary.Transferred)
	s.Equal(1, summary.Failed)
}

func (s *AutoTransferWorkflowTestSuite) TestAutoTransferWorkflow_RetriesProcessActivity() {
	attempts := 0
	s.env.OnActivity(s.executor.ListAutoTransferCandidates, mock.Anything, 50).Return([]string{"flaky"}, nil)
	s.env.OnActivity(s.executor.ProcessAutoTransfer, mock.Anything, "flaky").
		Return(func(_ context.Context, assetID string) (*autotransfer.Outcome, error) {
			attempts++
			if attempts < 3 {
				return nil, errors.New("storage error: connection reset")
			}
			return &autotransfer.Outcome{AssetID: assetID, Transferred: true}, nil
		})

	s.env.ExecuteWorkflow(s.workerCore.AutoTransferWorkflow)

	s.True(s.env.IsWorkflowCompleted())
	s.NoError(s.env.GetWorkflowError())
	s.Equal(3, attempts)
	s.Equal(1, s.summary().Transferred)
}

func (s *AutoTransferWorkflowTestSuite) TestAutoTransferWorkflow_ListFails() {
	s.env.OnActivity(s.executor.ListAutoTransferCandidates, mock.Anything, 50).
		Return(nil, temporal.NewNonRetryableApplicationError("database unavailable", "StorageError", nil))

	s.env.ExecuteWorkflow(s.workerCore.AutoTransferWorkflow)

	s.True(s.env.IsWorkflowCompleted())
	s.Error(s.env.GetWorkflowError())
}
