package ownership

import (
	"context"
	"time"

	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/store"
)

// Approval describes a claim approval applied inside a unit of work
type Approval struct {
	Claim           *domain.Claim
	ResolvedBy      string
	DenialReason    string
	PreviousOwnerID *string
	Record          *domain.OwnershipRecord
	Denied          []domain.Claim
}

// ApplyApproval approves claim, hands rec to the claimant and denies every other pending
// claim on the asset. An outgoing owner is recorded in the audit trail as claim_approved.
// rec and claim must have been read through uow.
func ApplyApproval(
	ctx context.Context,
	uow store.UnitOfWork,
	rec *domain.OwnershipRecord,
	claim *domain.Claim,
	resolvedBy, denialReason string,
	now time.Time,
) (*Approval, error) {
	if rec.IsOwnedBy(claim.UserID) {
		return nil, domain.ErrAlreadyOwned
	}

	pending, err := uow.ListPendingClaims(ctx, rec.AssetID)
	if err != nil {
		return nil, err
	}

	claim.Approve(resolvedBy, now)
	if err := uow.UpdateClaim(ctx, claim); err != nil {
		return nil, err
	}

	var previousOwnerID *string
	if rec.OwnerID != nil {
		id := *rec.OwnerID
		previousOwnerID = &id
	}
	rec.AppendPreviousOwner(domain.OwnershipActionClaimApproved, now)
	rec.AssignOwner(domain.User{ID: claim.UserID, Name: claim.UserName, Email: claim.UserEmail}, now)
	if err := uow.UpdateOwnership(ctx, rec); err != nil {
		return nil, err
	}

	denied := make([]domain.Claim, 0, len(pending))
	for _, other := range pending {
		if other.ID == claim.ID {
			continue
		}
		other.Deny(resolvedBy, denialReason, now)
		if err := uow.UpdateClaim(ctx, &other); err != nil {
			return nil, err
		}
		denied = append(denied, other)
	}

	return &Approval{
		Claim:           claim,
		ResolvedBy:      resolvedBy,
		DenialReason:    denialReason,
		PreviousOwnerID: previousOwnerID,
		Record:          rec,
		Denied:          denied,
	}, nil
}

// denyClaimsOf denies the pending claims userID holds on assetID. It runs when userID
// becomes the owner without a claim approval.
func denyClaimsOf(ctx context.Context, uow store.UnitOfWork, assetID, userID, resolvedBy string, now time.Time) ([]domain.Claim, error) {
	pending, err := uow.ListPendingClaims(ctx, assetID)
	if err != nil {
		return nil, err
	}

	var denied []domain.Claim
	for _, c := range pending {
		if c.UserID != userID {
			continue
		}
		c.Deny(resolvedBy, domain.DENIAL_REASON_CLAIMANT_NOW_OWNER, now)
		if err := uow.UpdateClaim(ctx, &c); err != nil {
			return nil, err
		}
		denied = append(denied, c)
	}
	return denied, nil
}

// deniedEvents returns one claim-denied event per claim
func deniedEvents(claims []domain.Claim) []domain.Payload {
	events := make([]domain.Payload, 0, len(claims))
	for _, c := range claims {
		reason := ""
		if c.DenialReason != nil {
			reason = *c.DenialReason
		}
		events = append(events, domain.ClaimDenied{
			AssetID:    c.AssetID,
			ClaimID:    c.ID,
			ClaimantID: c.UserID,
			Reason:     reason,
		})
	}
	return events
}

// Events returns claim-approved followed by ownership-transferred
func (a *Approval) Events(autoTransfer bool) []domain.Payload {
	return []domain.Payload{
		domain.ClaimApproved{
			AssetID:         a.Claim.AssetID,
			ClaimID:         a.Claim.ID,
			NewOwnerID:      a.Claim.UserID,
			PreviousOwnerID: a.PreviousOwnerID,
			AutoTransfer:    autoTransfer,
		},
		domain.OwnershipTransferred{
			AssetID:      a.Claim.AssetID,
			FromUserID:   a.PreviousOwnerID,
			ToUserID:     a.Claim.UserID,
			ToUserName:   a.Claim.UserName,
			AutoTransfer: autoTransfer,
		},
	}
}
