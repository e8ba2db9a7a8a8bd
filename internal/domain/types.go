package domain

import (
	"slices"
	"time"
)

// OwnershipStatus represents the ownership state of an asset
type OwnershipStatus string

const (
	OwnershipStatusOwned     OwnershipStatus = "owned"
	OwnershipStatusUnclaimed OwnershipStatus = "unclaimed"
)

// OwnershipAction tags an entry of the ownership audit trail
type OwnershipAction string

const (
	// OwnershipActionTransferred is recorded when an owner hands the asset to another user
	OwnershipActionTransferred OwnershipAction = "transferred"
	// OwnershipActionReleased is recorded when an owner gives up the asset
	OwnershipActionReleased OwnershipAction = "released"
	// OwnershipActionClaimApproved is recorded when an owner approves a claim against the asset
	OwnershipActionClaimApproved OwnershipAction = "claim_approved"
)

// ClaimStatus represents the lifecycle state of a claim
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusDenied   ClaimStatus = "denied"
)

// IsValid reports whether the status is one of the known claim statuses
func (s ClaimStatus) IsValid() bool {
	return s == ClaimStatusPending || s == ClaimStatusApproved || s == ClaimStatusDenied
}

// IsTerminal reports whether no further transition is allowed
func (s ClaimStatus) IsTerminal() bool {
	return s == ClaimStatusApproved || s == ClaimStatusDenied
}

const (
	// SYSTEM_AUTO_TRANSFER is the resolver recorded on claims approved by the auto-transfer engine
	SYSTEM_AUTO_TRANSFER = "system_auto_transfer"

	DENIAL_REASON_ANOTHER_CLAIM_APPROVED = "Another claim was approved"
	DENIAL_REASON_AUTO_TRANSFERRED       = "Auto-transferred to higher contributing claimant"
	DENIAL_REASON_WITHDRAWN              = "Withdrawn by claimant"
	DENIAL_REASON_CLAIMANT_NOW_OWNER     = "Claimant became the owner"
)

// User identifies a person acting on an asset along with the denormalized display fields
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PreviousOwner is one entry of the append-only ownership audit trail
type PreviousOwner struct {
	UserID        string          `json:"user_id"`
	Name          string          `json:"name"`
	TransferredAt time.Time       `json:"transferred_at"`
	Action        OwnershipAction `json:"action"`
}

// OwnershipRecord is the single source of truth for who controls an asset
type OwnershipRecord struct {
	AssetID        string          `json:"asset_id"`
	OwnerID        *string         `json:"owner_id"`
	OwnerName      string          `json:"owner_name"`
	OwnerEmail     string          `json:"owner_email"`
	Status         OwnershipStatus `json:"status"`
	ClaimedAt      *time.Time      `json:"claimed_at"`
	LastActivity   time.Time       `json:"last_activity"`
	UnclaimedSince *time.Time      `json:"unclaimed_since"`
	PreviousOwners []PreviousOwner `json:"previous_owners"`
}

// IsOwnedBy reports whether the record is currently owned by the given user
func (r *OwnershipRecord) IsOwnedBy(userID string) bool {
	return r != nil &&
		r.Status == OwnershipStatusOwned &&
		r.OwnerID != nil &&
		*r.OwnerID == userID
}

// IsFormerOwner reports whether the user appears in the audit trail
func (r *OwnershipRecord) IsFormerOwner(userID string) bool {
	if r == nil {
		return false
	}
	return slices.ContainsFunc(r.PreviousOwners, func(p PreviousOwner) bool {
		return p.UserID == userID
	})
}

// AssignOwner sets the owner fields and moves the record into the owned state
func (r *OwnershipRecord) AssignOwner(user User, at time.Time) {
	ownerID := user.ID
	claimedAt := at
	r.OwnerID = &ownerID
	r.OwnerName = user.Name
	r.OwnerEmail = user.Email
	r.Status = OwnershipStatusOwned
	r.ClaimedAt = &claimedAt
	r.LastActivity = at
	r.UnclaimedSince = nil
}

// Release clears the owner fields and moves the record into the unclaimed state
func (r *OwnershipRecord) Release(at time.Time) {
	unclaimedSince := at
	r.OwnerID = nil
	r.OwnerName = ""
	r.OwnerEmail = ""
	r.Status = OwnershipStatusUnclaimed
	r.UnclaimedSince = &unclaimedSince
	r.LastActivity = at
}

// AppendPreviousOwner records the current owner in the audit trail with the given action
func (r *OwnershipRecord) AppendPreviousOwner(action OwnershipAction, at time.Time) {
	if r.OwnerID == nil {
		return
	}
	r.PreviousOwners = append(r.PreviousOwners, PreviousOwner{
		UserID:        *r.OwnerID,
		Name:          r.OwnerName,
		TransferredAt: at,
		Action:        action,
	})
}

// Consistent reports whether the owner/status/unclaimedSince invariant holds
func (r *OwnershipRecord) Consistent() bool {
	switch r.Status {
	case OwnershipStatusOwned:
		return r.OwnerID != nil && r.UnclaimedSince == nil
	case OwnershipStatusUnclaimed:
		return r.OwnerID == nil && r.UnclaimedSince != nil
	default:
		return false
	}
}

// Clone returns a deep copy of the record
func (r *OwnershipRecord) Clone() *OwnershipRecord {
	if r == nil {
		return nil
	}
	c := *r
	if r.OwnerID != nil {
		id := *r.OwnerID
		c.OwnerID = &id
	}
	if r.ClaimedAt != nil {
		t := *r.ClaimedAt
		c.ClaimedAt = &t
	}
	if r.UnclaimedSince != nil {
		t := *r.UnclaimedSince
		c.UnclaimedSince = &t
	}
	c.PreviousOwners = slices.Clone(r.PreviousOwners)
	return &c
}

// Claim is a user's formal request to take over an owned asset
type Claim struct {
	ID                        string      `json:"id"`
	AssetID                   string      `json:"asset_id"`
	UserID                    string      `json:"user_id"`
	UserName                  string      `json:"user_name"`
	UserEmail                 string      `json:"user_email"`
	Reason                    string      `json:"reason"`
	Status                    ClaimStatus `json:"status"`
	SubmittedAt               time.Time   `json:"submitted_at"`
	ResolvedAt                *time.Time  `json:"resolved_at"`
	ResolvedBy                *string     `json:"resolved_by"`
	DenialReason              *string     `json:"denial_reason"`
	ContributionScoreSnapshot int64       `json:"contribution_score_snapshot"`
	CurrentOwnerID            *string     `json:"current_owner_id"`
	CurrentOwnerName          string      `json:"current_owner_name"`
}

// Approve moves a pending claim into the approved state
func (c *Claim) Approve(resolvedBy string, at time.Time) {
	c.resolve(ClaimStatusApproved, resolvedBy, nil, at)
}

// Deny moves a pending claim into the denied state
func (c *Claim) Deny(resolvedBy string, reason string, at time.Time) {
	c.resolve(ClaimStatusDenied, resolvedBy, &reason, at)
}

func (c *Claim) resolve(status ClaimStatus, resolvedBy string, reason *string, at time.Time) {
	resolvedAt := at
	c.Status = status
	c.ResolvedAt = &resolvedAt
	c.ResolvedBy = &resolvedBy
	c.DenialReason = reason
}

// Contribution is a scored unit of recorded activity by a user on an asset
type Contribution struct {
	ID              string           `json:"id"`
	AssetID         string           `json:"asset_id"`
	UserID          string           `json:"user_id"`
	UserName        string           `json:"user_name"`
	Type            ContributionType `json:"type"`
	Weight          int64            `json:"weight"`
	Description     string           `json:"description"`
	RelatedEntityID *string          `json:"related_entity_id,omitempty"`
	Timestamp       time.Time        `json:"timestamp"`
}

// ContributorRank is one row of the top contributors ranking for an asset
type ContributorRank struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Score    int64  `json:"score"`
	Rank     int    `json:"rank"`
}
