package store

import (
	"context"
	"time"

	"github.com/feral-file/ff-ownership/internal/domain"
)

// ClaimFilter narrows ListClaims. A nil AssetID lists across every asset (collection-group query).
type ClaimFilter struct {
	AssetID *string
	UserID  *string
	Status  *domain.ClaimStatus
}

// ContributionFilter narrows ListContributions
type ContributionFilter struct {
	AssetID string
	UserID  *string
}

type primaryReadsKey struct{}

// WithPrimaryReads pins the listing reads made with ctx to the primary database.
// Point reads (ownership, claim, score) and candidate listing always use the primary;
// ListClaims and ListContributions use a read replica unless ctx is pinned.
func WithPrimaryReads(ctx context.Context) context.Context {
	return context.WithValue(ctx, primaryReadsKey{}, true)
}

// readsPrimary reports whether ctx was pinned with WithPrimaryReads
func readsPrimary(ctx context.Context) bool {
	pinned, _ := ctx.Value(primaryReadsKey{}).(bool)
	return pinned
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore,UnitOfWork=MockUnitOfWork
type Store interface {
	// Ping verifies the store is reachable
	Ping(ctx context.Context) error

	// GetOwnership retrieves the ownership record of an asset, nil when none exists
	GetOwnership(ctx context.Context, assetID string) (*domain.OwnershipRecord, error)
	// TouchLastActivity bumps last_activity on the ownership record of an asset, if one exists
	TouchLastActivity(ctx context.Context, assetID string, at time.Time) error
	// ListUnclaimedWithPendingClaims returns assets unclaimed since before the cutoff that have
	// at least one pending claim, oldest first. A non-positive limit means no limit.
	ListUnclaimedWithPendingClaims(ctx context.Context, cutoff time.Time, limit int) ([]string, error)

	// GetClaim retrieves a claim on an asset, nil when none exists
	GetClaim(ctx context.Context, assetID, claimID string) (*domain.Claim, error)
	// ListClaims lists claims ordered by submission time
	ListClaims(ctx context.Context, filter ClaimFilter) ([]domain.Claim, error)
	// CreateClaim inserts a new claim. A second pending claim for the same asset and user
	// fails with domain.ErrDuplicatePendingClaim.
	CreateClaim(ctx context.Context, claim *domain.Claim) error

	// AppendContribution inserts a contribution. Contributions are never updated or deleted.
	AppendContribution(ctx context.Context, contribution *domain.Contribution) error
	// ListContributions lists contributions in insertion order
	ListContributions(ctx context.Context, filter ContributionFilter) ([]domain.Contribution, error)
	// SumContributionWeights returns the contribution score of a user on an asset
	SumContributionWeights(ctx context.Context, assetID, userID string) (int64, error)

	// RunInTx executes fn inside a single atomic transaction. The transaction commits
	// when fn returns nil and rolls back otherwise. fn must only use the given UnitOfWork.
	RunInTx(ctx context.Context, fn func(uow UnitOfWork) error) error
}

// UnitOfWork is the set of reads and writes available inside a transaction
type UnitOfWork interface {
	// GetOwnershipForUpdate reads the ownership record of an asset and locks it until commit, nil when none exists
	GetOwnershipForUpdate(ctx context.Context, assetID string) (*domain.OwnershipRecord, error)
	// InsertOwnership creates the ownership record of an asset.
	// Fails with domain.ErrAlreadyOwned when a concurrent transaction created it first.
	InsertOwnership(ctx context.Context, record *domain.OwnershipRecord) error
	// UpdateOwnership overwrites the ownership record of an asset
	UpdateOwnership(ctx context.Context, record *domain.OwnershipRecord) error

	// GetClaim reads a claim on an asset, nil when none exists
	GetClaim(ctx context.Context, assetID, claimID string) (*domain.Claim, error)
	// ListPendingClaims lists the pending claims of an asset ordered by submission time
	ListPendingClaims(ctx context.Context, assetID string) ([]domain.Claim, error)
	// UpdateClaim overwrites the resolution fields of a claim
	UpdateClaim(ctx context.Context, claim *domain.Claim) error
}
