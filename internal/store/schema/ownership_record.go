package schema

import (
	"time"

	"gorm.io/datatypes"
)

// OwnershipStatus represents the ownership state stored for an asset
type OwnershipStatus string

const (
	// OwnershipStatusOwned indicates the asset has a current owner
	OwnershipStatusOwned OwnershipStatus = "owned"
	// OwnershipStatusUnclaimed indicates the asset was released and awaits a new owner
	OwnershipStatusUnclaimed OwnershipStatus = "unclaimed"
)

// PreviousOwner is a single entry of the ownership audit trail stored as JSON
type PreviousOwner struct {
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	TransferredAt time.Time `json:"transferred_at"`
	Action        string    `json:"action"`
}

// OwnershipRecord represents the ownership_records table - one row per asset, created lazily on first claim
type OwnershipRecord struct {
	// AssetID is the opaque identifier of the owned content record
	AssetID string `gorm:"column:asset_id;primaryKey;type:text"`
	// OwnerID is the current owner's user ID (nil while unclaimed)
	OwnerID *string `gorm:"column:owner_id;type:text;index:idx_ownership_records_owner_id"`
	// OwnerName is the denormalized display name of the current owner
	OwnerName string `gorm:"column:owner_name;not null;default:'';type:text"`
	// OwnerEmail is the denormalized email of the current owner
	OwnerEmail string `gorm:"column:owner_email;not null;default:'';type:text"`
	// Status is either owned or unclaimed
	Status OwnershipStatus `gorm:"column:status;not null;type:text;index:idx_ownership_records_status_unclaimed_since,priority:1"`
	// ClaimedAt is the timestamp of the most recent claim or transfer
	ClaimedAt *time.Time `gorm:"column:claimed_at;type:timestamptz"`
	// LastActivity is touched on any ownership or contribution event
	LastActivity time.Time `gorm:"column:last_activity;not null;default:now();type:timestamptz"`
	// UnclaimedSince is set only while the status is unclaimed
	UnclaimedSince *time.Time `gorm:"column:unclaimed_since;type:timestamptz;index:idx_ownership_records_status_unclaimed_since,priority:2"`
	// PreviousOwners is the append-only audit trail of earlier owners
	PreviousOwners datatypes.JSONSlice[PreviousOwner] `gorm:"column:previous_owners;not null;type:jsonb"`
	// CreatedAt is the timestamp when the record was first created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the record was last written
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the OwnershipRecord model
func (OwnershipRecord) TableName() string {
	return "ownership_records"
}
