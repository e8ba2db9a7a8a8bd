package ownership

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/identity"
	"github.com/feral-file/ff-ownership/internal/logger"
	"github.com/feral-file/ff-ownership/internal/store"
)

func (s *service) ClaimOwnership(ctx context.Context, assetID, userID, reason string) (*ClaimResult, error) {
	caller, err := identity.RequireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if assetID == "" {
		return nil, domain.NewError(domain.KindInvalidArgument, "asset id is required")
	}

	rec, err := s.store.GetOwnership(ctx, assetID)
	if err != nil {
		return nil, domain.AsDomainError("get ownership", err)
	}

	if rec == nil || rec.Status == domain.OwnershipStatusUnclaimed {
		owned, err := s.directClaim(ctx, assetID, caller.User())
		if err != nil {
			return nil, err
		}
		return &ClaimResult{Direct: true, Ownership: owned}, nil
	}

	if rec.IsOwnedBy(userID) {
		return nil, domain.ErrAlreadyOwned
	}

	score, err := s.ledger.GetContributionScore(ctx, assetID, userID)
	if err != nil {
		return nil, err
	}
	if score < s.config.MinContributionScoreForClaim {
		return nil, domain.NewError(domain.KindInsufficientContributionScore,
			fmt.Sprintf("minimum contribution score required: %d, yours: %d", s.config.MinContributionScoreForClaim, score))
	}

	pendingStatus := domain.ClaimStatusPending
	existing, err := s.store.ListClaims(store.WithPrimaryReads(ctx), store.ClaimFilter{
		AssetID: &assetID,
		UserID:  &userID,
		Status:  &pendingStatus,
	})
	if err != nil {
		return nil, domain.AsDomainError("list claims", err)
	}
	if len(existing) > 0 {
		return nil, domain.NewError(domain.KindDuplicatePendingClaim, existing[0].ID)
	}

	var currentOwnerID *string
	if rec.OwnerID != nil {
		id := *rec.OwnerID
		currentOwnerID = &id
	}

	claim := &domain.Claim{
		ID:                        uuid.NewString(),
		AssetID:                   assetID,
		UserID:                    userID,
		UserName:                  caller.Name,
		UserEmail:                 caller.Email,
		Reason:                    reason,
		Status:                    domain.ClaimStatusPending,
		SubmittedAt:               s.clock.Now(),
		ContributionScoreSnapshot: score,
		CurrentOwnerID:            currentOwnerID,
		CurrentOwnerName:          rec.OwnerName,
	}

	// the partial unique index closes the race between the check above and this insert
	if err := s.store.CreateClaim(ctx, claim); err != nil {
		return nil, domain.AsDomainError("create claim", err)
	}

	logger.InfoCtx(ctx, "Claim submitted",
		zap.String("asset_id", assetID),
		zap.String("claim_id", claim.ID),
		zap.String("user_id", userID),
		zap.Int64("score", score))

	s.publisher.Publish(ctx, domain.ClaimSubmitted{
		AssetID:        assetID,
		ClaimID:        claim.ID,
		UserID:         userID,
		CurrentOwnerID: currentOwnerID,
	})

	return &ClaimResult{Claim: claim}, nil
}

func (s *service) ApproveClaim(ctx context.Context, assetID, claimID string) (*domain.Claim, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	var approval *Approval
	err = s.commit(ctx, assetID, func(uow store.UnitOfWork) error {
		rec, claim, err := s.loadForResolution(ctx, uow, assetID, claimID, caller.ID)
		if err != nil {
			return err
		}

		approval, err = ApplyApproval(ctx, uow, rec, claim, caller.ID, domain.DENIAL_REASON_ANOTHER_CLAIM_APPROVED, s.clock.Now())
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Claim approved",
		zap.String("asset_id", assetID),
		zap.String("claim_id", claimID),
		zap.String("new_owner_id", approval.Claim.UserID),
		zap.Int("denied", len(approval.Denied)))

	s.publisher.Publish(ctx, approval.Events(false)...)

	return approval.Claim, nil
}

func (s *service) DenyClaim(ctx context.Context, assetID, claimID, reason string) (*domain.Claim, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	var denied *domain.Claim
	err = s.commit(ctx, assetID, func(uow store.UnitOfWork) error {
		_, claim, err := s.loadForResolution(ctx, uow, assetID, claimID, caller.ID)
		if err != nil {
			return err
		}

		claim.Deny(caller.ID, reason, s.clock.Now())
		if err := uow.UpdateClaim(ctx, claim); err != nil {
			return err
		}
		denied = claim
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Claim denied",
		zap.String("asset_id", assetID),
		zap.String("claim_id", claimID))

	s.publisher.Publish(ctx, domain.ClaimDenied{
		AssetID:    assetID,
		ClaimID:    claimID,
		ClaimantID: denied.UserID,
		Reason:     reason,
	})

	return denied, nil
}

// loadForResolution locks the asset and returns it with the pending claim, checking that ownerID owns the asset
func (s *service) loadForResolution(ctx context.Context, uow store.UnitOfWork, assetID, claimID, ownerID string) (*domain.OwnershipRecord, *domain.Claim, error) {
	rec, err := uow.GetOwnershipForUpdate(ctx, assetID)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, domain.NewError(domain.KindOwnershipNotFound, assetID)
	}
	if !rec.IsOwnedBy(ownerID) {
		return nil, nil, domain.ErrNotOwner
	}

	claim, err := uow.GetClaim(ctx, assetID, claimID)
	if err != nil {
		return nil, nil, err
	}
	if claim == nil {
		return nil, nil, domain.NewError(domain.KindClaimNotFound, claimID)
	}
	if claim.Status != domain.ClaimStatusPending {
		return nil, nil, domain.NewError(domain.KindClaimAlreadyResolved, string(claim.Status))
	}

	return rec, claim, nil
}

func (s *service) CancelClaim(ctx context.Context, assetID, claimID string) (*domain.Claim, error) {
	caller, err := identity.Require(ctx)
	if err != nil {
		return nil, err
	}

	var canceled *domain.Claim
	err = s.commit(ctx, assetID, func(uow store.UnitOfWork) error {
		// lock the asset so a concurrent approval cannot pick the claim being withdrawn
		if _, err := uow.GetOwnershipForUpdate(ctx, assetID); err != nil {
			return err
		}

		claim, err := uow.GetClaim(ctx, assetID, claimID)
		if err != nil {
			return err
		}
		if claim == nil {
			return domain.NewError(domain.KindClaimNotFound, claimID)
		}
		if claim.UserID != caller.ID {
			return domain.NewError(domain.KindNotOwner, "claim belongs to another user")
		}
		if claim.Status != domain.ClaimStatusPending {
			return domain.NewError(domain.KindClaimAlreadyResolved, string(claim.Status))
		}

		claim.Deny(caller.ID, domain.DENIAL_REASON_WITHDRAWN, s.clock.Now())
		if err := uow.UpdateClaim(ctx, claim); err != nil {
			return err
		}
		canceled = claim
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Claim withdrawn",
		zap.String("asset_id", assetID),
		zap.String("claim_id", claimID))

	s.publisher.Publish(ctx, domain.ClaimDenied{
		AssetID:    assetID,
		ClaimID:    claimID,
		ClaimantID: caller.ID,
		Reason:     domain.DENIAL_REASON_WITHDRAWN,
	})

	return canceled, nil
}

func (s *service) GetClaim(ctx context.Context, assetID, claimID string) (*domain.Claim, error) {
	claim, err := s.store.GetClaim(ctx, assetID, claimID)
	if err != nil {
		return nil, domain.AsDomainError("get claim", err)
	}
	if claim == nil {
		return nil, domain.NewError(domain.KindClaimNotFound, claimID)
	}
	return claim, nil
}

func (s *service) ListClaims(ctx context.Context, assetID string, status *domain.ClaimStatus) ([]domain.Claim, error) {
	if err := validStatus(status); err != nil {
		return nil, err
	}

	claims, err := s.store.ListClaims(ctx, store.ClaimFilter{AssetID: &assetID, Status: status})
	if err != nil {
		return nil, domain.AsDomainError("list claims", err)
	}
	return claims, nil
}

func (s *service) ListUserClaims(ctx context.Context, userID string, status *domain.ClaimStatus) ([]domain.Claim, error) {
	if _, err := identity.RequireUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := validStatus(status); err != nil {
		return nil, err
	}

	claims, err := s.store.ListClaims(ctx, store.ClaimFilter{UserID: &userID, Status: status})
	if err != nil {
		return nil, domain.AsDomainError("list user claims", err)
	}
	return claims, nil
}
