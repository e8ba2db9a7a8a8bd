package schema

import "time"

// ClaimStatus is the lifecycle state of a claim
type ClaimStatus string

const (
	// ClaimStatusPending is a claim awaiting resolution
	ClaimStatusPending ClaimStatus = "pending"
	// ClaimStatusApproved is a claim that transferred ownership to the claimant
	ClaimStatusApproved ClaimStatus = "approved"
	// ClaimStatusDenied is a claim that was rejected, superseded or withdrawn
	ClaimStatusDenied ClaimStatus = "denied"
)

// Claim represents the claims table - a user's request to take over an owned asset.
// The partial unique index allows at most one pending claim per asset and user.
type Claim struct {
	// ID is the claim identifier (UUID)
	ID string `gorm:"column:id;primaryKey;type:text"`
	// AssetID references the asset the claim is made against
	AssetID string `gorm:"column:asset_id;not null;type:text;index:idx_claims_asset_status,priority:1;uniqueIndex:uq_claims_pending_asset_user,priority:1,where:status = 'pending'"`
	// UserID is the claimant
	UserID string `gorm:"column:user_id;not null;type:text;index:idx_claims_user_status,priority:1;uniqueIndex:uq_claims_pending_asset_user,priority:2,where:status = 'pending'"`
	// UserName is the claimant's display name at submission time
	UserName string `gorm:"column:user_name;not null;default:'';type:text"`
	// UserEmail is the claimant's email at submission time
	UserEmail string `gorm:"column:user_email;not null;default:'';type:text"`
	// Reason is the free-form justification supplied by the claimant
	Reason string `gorm:"column:reason;not null;default:'';type:text"`
	// Status is pending, approved or denied
	Status ClaimStatus `gorm:"column:status;not null;type:text;index:idx_claims_asset_status,priority:2;index:idx_claims_user_status,priority:2"`
	// SubmittedAt is the timestamp when the claim was submitted
	SubmittedAt time.Time `gorm:"column:submitted_at;not null;type:timestamptz"`
	// ResolvedAt is the timestamp when the claim was approved or denied
	ResolvedAt *time.Time `gorm:"column:resolved_at;type:timestamptz"`
	// ResolvedBy is the user (or system actor) that resolved the claim
	ResolvedBy *string `gorm:"column:resolved_by;type:text"`
	// DenialReason explains why a claim was denied
	DenialReason *string `gorm:"column:denial_reason;type:text"`
	// ContributionScoreSnapshot is the claimant's contribution score at submission time
	ContributionScoreSnapshot int64 `gorm:"column:contribution_score_snapshot;not null;default:0"`
	// CurrentOwnerID is the owner of the asset at submission time
	CurrentOwnerID *string `gorm:"column:current_owner_id;type:text"`
	// CurrentOwnerName is the owner's display name at submission time
	CurrentOwnerName string `gorm:"column:current_owner_name;not null;default:'';type:text"`
	// UpdatedAt is the timestamp when the claim was last written
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Claim model
func (Claim) TableName() string {
	return "claims"
}
