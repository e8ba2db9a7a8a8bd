package ownership

import (
	"context"
	"time"

	"github.com/feral-file/ff-ownership/internal/adapter"
	"github.com/feral-file/ff-ownership/internal/cache"
	"github.com/feral-file/ff-ownership/internal/contribution"
	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/events"
	"github.com/feral-file/ff-ownership/internal/store"
)

// ClaimResult is the outcome of ClaimOwnership. Direct is set when the asset was
// free and the caller became its owner immediately, otherwise Claim holds the pending request.
type ClaimResult struct {
	Direct    bool                    `json:"direct"`
	Ownership *domain.OwnershipRecord `json:"ownership,omitempty"`
	Claim     *domain.Claim           `json:"claim,omitempty"`
}

// Service manages the current owner of assets and arbitrates claims against them
//
//go:generate mockgen -source=service.go -destination=../mocks/ownership_service.go -package=mocks -mock_names=Service=MockOwnershipService
type Service interface {
	// GetOwnership returns the ownership record of an asset
	GetOwnership(ctx context.Context, assetID string) (*domain.OwnershipRecord, error)
	// GetOwnershipHistory returns the audit trail of previous owners, oldest first
	GetOwnershipHistory(ctx context.Context, assetID string) ([]domain.PreviousOwner, error)
	// CanEdit reports whether the user currently owns the asset
	CanEdit(ctx context.Context, assetID, userID string) (bool, error)
	// DirectClaim makes the calling user the owner of a free asset
	DirectClaim(ctx context.Context, assetID string, user domain.User) (*domain.OwnershipRecord, error)
	// TransferOwnership hands an asset from its current owner to another user
	TransferOwnership(ctx context.Context, assetID, fromUserID string, to domain.User) (*domain.OwnershipRecord, error)
	// ReleaseOwnership gives up an owned asset
	ReleaseOwnership(ctx context.Context, assetID, userID string) (*domain.OwnershipRecord, error)

	// ClaimOwnership claims a free asset directly or files a claim against its owner
	ClaimOwnership(ctx context.Context, assetID, userID, reason string) (*ClaimResult, error)
	// ApproveClaim hands the asset to the claimant and denies every other pending claim
	ApproveClaim(ctx context.Context, assetID, claimID string) (*domain.Claim, error)
	// DenyClaim rejects a pending claim
	DenyClaim(ctx context.Context, assetID, claimID, reason string) (*domain.Claim, error)
	// CancelClaim withdraws the caller's own pending claim
	CancelClaim(ctx context.Context, assetID, claimID string) (*domain.Claim, error)
	// GetClaim returns one claim on an asset
	GetClaim(ctx context.Context, assetID, claimID string) (*domain.Claim, error)
	// ListClaims lists the claims on an asset, optionally by status
	ListClaims(ctx context.Context, assetID string, status *domain.ClaimStatus) ([]domain.Claim, error)
	// ListUserClaims lists the caller's claims across every asset, optionally by status
	ListUserClaims(ctx context.Context, userID string, status *domain.ClaimStatus) ([]domain.Claim, error)
}

// Config holds the ownership settings
type Config struct {
	MinContributionScoreForClaim int64
	CacheTTL                     time.Duration
}

type service struct {
	store     store.Store
	cache     cache.Cache
	ledger    contribution.Ledger
	publisher events.Publisher
	clock     adapter.Clock
	config    Config
}

// NewService creates the ownership service
func NewService(
	st store.Store,
	c cache.Cache,
	ledger contribution.Ledger,
	publisher events.Publisher,
	clock adapter.Clock,
	cfg Config,
) Service {
	return &service{
		store:     st,
		cache:     c,
		ledger:    ledger,
		publisher: publisher,
		clock:     clock,
		config:    cfg,
	}
}

// commit runs fn in one transaction, then invalidates the asset's cached record.
// Events are published by the caller once commit returns nil.
func (s *service) commit(ctx context.Context, assetID string, fn func(uow store.UnitOfWork) error) error {
	if err := s.store.RunInTx(ctx, fn); err != nil {
		return domain.AsDomainError("transaction", err)
	}
	cache.Invalidate(ctx, s.cache, cache.OwnershipKey(assetID))
	return nil
}

func validStatus(status *domain.ClaimStatus) error {
	if status != nil && !status.IsValid() {
		return domain.NewError(domain.KindInvalidArgument, "unknown claim status "+string(*status))
	}
	return nil
}
