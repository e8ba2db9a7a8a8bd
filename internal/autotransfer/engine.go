package autotransfer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership/internal/adapter"
	"github.com/feral-file/ff-ownership/internal/cache"
	"github.com/feral-file/ff-ownership/internal/contribution"
	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/events"
	"github.com/feral-file/ff-ownership/internal/logger"
	"github.com/feral-file/ff-ownership/internal/ownership"
	"github.com/feral-file/ff-ownership/internal/store"
)

// SkipReason explains why an asset was left untouched
type SkipReason string

const (
	SkipOwnershipNotFound  SkipReason = "ownership_not_found"
	SkipNotUnclaimed       SkipReason = "not_unclaimed"
	SkipThresholdNotPassed SkipReason = "threshold_not_passed"
	SkipNoPendingClaims    SkipReason = "no_pending_claims"
)

// Outcome is the result of processing one asset
type Outcome struct {
	AssetID       string     `json:"asset_id"`
	Transferred   bool       `json:"transferred"`
	SkipReason    SkipReason `json:"skip_reason,omitempty"`
	WinnerClaimID string     `json:"winner_claim_id,omitempty"`
	WinnerUserID  string     `json:"winner_user_id,omitempty"`
	DeniedClaims  int        `json:"denied_claims,omitempty"`
}

func skipped(assetID string, reason SkipReason) *Outcome {
	return &Outcome{AssetID: assetID, SkipReason: reason}
}

// Engine reassigns long-unclaimed assets to their best pending claimant
//
//go:generate mockgen -source=engine.go -destination=../mocks/autotransfer_engine.go -package=mocks -mock_names=Engine=MockAutoTransferEngine
type Engine interface {
	// ProcessAsset resolves one asset. Re-running it on a resolved asset is a no-op.
	ProcessAsset(ctx context.Context, assetID string) (*Outcome, error)
	// Candidates lists assets unclaimed for longer than the threshold, oldest first
	Candidates(ctx context.Context, limit int) ([]string, error)
	// Run processes one batch of candidates through a bounded worker pool
	Run(ctx context.Context) (*Summary, error)
}

// Config holds the engine settings
type Config struct {
	// Threshold is how long an asset must stay unclaimed before it is reassigned
	Threshold time.Duration
	// BatchSize bounds the number of candidates per Run, non-positive means all
	BatchSize int
	PoolSize  int
	QueueSize int
	// MaxRetries is the number of extra attempts per asset on storage errors during Run
	MaxRetries           uint64
	RetryInitialInterval time.Duration
}

type engine struct {
	store     store.Store
	ledger    contribution.Ledger
	cache     cache.Cache
	publisher events.Publisher
	clock     adapter.Clock
	config    Config
}

// NewEngine creates an auto-transfer engine
func NewEngine(
	st store.Store,
	ledger contribution.Ledger,
	c cache.Cache,
	publisher events.Publisher,
	clock adapter.Clock,
	cfg Config,
) Engine {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 1
	}
	if cfg.RetryInitialInterval <= 0 {
		cfg.RetryInitialInterval = time.Second
	}
	return &engine{
		store:     st,
		ledger:    ledger,
		cache:     c,
		publisher: publisher,
		clock:     clock,
		config:    cfg,
	}
}

// eligible reports whether rec has been unclaimed for longer than the threshold
func (e *engine) eligible(rec *domain.OwnershipRecord, now time.Time) (bool, SkipReason) {
	if rec == nil {
		return false, SkipOwnershipNotFound
	}
	if rec.Status != domain.OwnershipStatusUnclaimed || rec.UnclaimedSince == nil {
		return false, SkipNotUnclaimed
	}
	if now.Sub(*rec.UnclaimedSince) <= e.config.Threshold {
		return false, SkipThresholdNotPassed
	}
	return true, ""
}

func (e *engine) Candidates(ctx context.Context, limit int) ([]string, error) {
	cutoff := e.clock.Now().Add(-e.config.Threshold)
	ids, err := e.store.ListUnclaimedWithPendingClaims(ctx, cutoff, limit)
	if err != nil {
		return nil, domain.AsDomainError("list unclaimed assets", err)
	}
	return ids, nil
}

func (e *engine) ProcessAsset(ctx context.Context, assetID string) (*Outcome, error) {
	rec, err := e.store.GetOwnership(ctx, assetID)
	if err != nil {
		return nil, domain.AsDomainError("get ownership", err)
	}
	if ok, reason := e.eligible(rec, e.clock.Now()); !ok {
		return skipped(assetID, reason), nil
	}

	pendingStatus := domain.ClaimStatusPending
	pending, err := e.store.ListClaims(store.WithPrimaryReads(ctx), store.ClaimFilter{AssetID: &assetID, Status: &pendingStatus})
	if err != nil {
		return nil, domain.AsDomainError("list pending claims", err)
	}
	if len(pending) == 0 {
		return skipped(assetID, SkipNoPendingClaims), nil
	}

	// ranking is read before the transaction, it is not part of the locked state
	var topContributor string
	top, err := e.ledger.GetTopContributors(ctx, assetID, 1)
	if err != nil {
		return nil, err
	}
	if len(top) > 0 {
		topContributor = top[0].UserID
	}

	var (
		approval *ownership.Approval
		outcome  *Outcome
	)
	err = e.store.RunInTx(ctx, func(uow store.UnitOfWork) error {
		now := e.clock.Now()

		locked, err := uow.GetOwnershipForUpdate(ctx, assetID)
		if err != nil {
			return err
		}
		// another worker may have resolved the asset in the meantime
		if ok, reason := e.eligible(locked, now); !ok {
			outcome = skipped(assetID, reason)
			return nil
		}

		claims, err := uow.ListPendingClaims(ctx, assetID)
		if err != nil {
			return err
		}
		winner := SelectWinner(locked, claims, topContributor)
		if winner == nil {
			outcome = skipped(assetID, SkipNoPendingClaims)
			return nil
		}

		approval, err = ownership.ApplyApproval(ctx, uow, locked, winner,
			domain.SYSTEM_AUTO_TRANSFER, domain.DENIAL_REASON_AUTO_TRANSFERRED, now)
		return err
	})
	if err != nil {
		return nil, domain.AsDomainError("auto-transfer", err)
	}
	if approval == nil {
		return outcome, nil
	}

	cache.Invalidate(ctx, e.cache, cache.OwnershipKey(assetID))

	logger.InfoCtx(ctx, "Asset auto-transferred",
		zap.String("asset_id", assetID),
		zap.String("claim_id", approval.Claim.ID),
		zap.String("new_owner_id", approval.Claim.UserID),
		zap.Int64("score", approval.Claim.ContributionScoreSnapshot),
		zap.Int("denied", len(approval.Denied)))

	e.publisher.Publish(ctx, approval.Events(true)...)

	return &Outcome{
		AssetID:       assetID,
		Transferred:   true,
		WinnerClaimID: approval.Claim.ID,
		WinnerUserID:  approval.Claim.UserID,
		DeniedClaims:  len(approval.Denied),
	}, nil
}

// SelectWinner picks the claim to approve. A claimant who is both a former owner and the
// top contributor wins outright. Otherwise the highest score snapshot wins, ties going to
// the earliest submission. Returns nil when no claim is pending.
func SelectWinner(rec *domain.OwnershipRecord, claims []domain.Claim, topContributor string) *domain.Claim {
	var best *domain.Claim
	for i := range claims {
		c := &claims[i]
		if c.Status != domain.ClaimStatusPending {
			continue
		}
		if topContributor != "" && c.UserID == topContributor && rec.IsFormerOwner(c.UserID) {
			return c
		}
		if best == nil || outranks(c, best) {
			best = c
		}
	}
	return best
}

func outranks(a, b *domain.Claim) bool {
	if a.ContributionScoreSnapshot != b.ContributionScoreSnapshot {
		return a.ContributionScoreSnapshot > b.ContributionScoreSnapshot
	}
	if !a.SubmittedAt.Equal(b.SubmittedAt) {
		return a.SubmittedAt.Before(b.SubmittedAt)
	}
	return a.ID < b.ID
}
