package schema

import "time"

// Contribution represents the contributions table - an append-only ledger of scored activity.
// Rows are never updated or deleted.
type Contribution struct {
	// ID is the contribution identifier (UUID)
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Seq preserves insertion order for deterministic first-seen ordering
	Seq int64 `gorm:"column:seq;autoIncrement;not null;uniqueIndex"`
	// AssetID references the asset the activity happened on
	AssetID string `gorm:"column:asset_id;not null;type:text;index:idx_contributions_asset_user,priority:1"`
	// UserID is the contributor
	UserID string `gorm:"column:user_id;not null;type:text;index:idx_contributions_asset_user,priority:2"`
	// UserName is the contributor's display name at the time of the activity
	UserName string `gorm:"column:user_name;not null;default:'';type:text"`
	// Type is the enumerated contribution kind (major-edit, comment, ...)
	Type string `gorm:"column:type;not null;type:text"`
	// Weight is the score added by this contribution
	Weight int64 `gorm:"column:weight;not null;check:chk_contributions_weight,weight >= 0"`
	// Description is a short human-readable summary of the activity
	Description string `gorm:"column:description;not null;default:'';type:text"`
	// RelatedEntityID optionally links the activity to another entity (e.g. a comment id)
	RelatedEntityID *string `gorm:"column:related_entity_id;type:text"`
	// Timestamp is when the activity happened
	Timestamp time.Time `gorm:"column:timestamp;not null;type:timestamptz"`
}

// TableName specifies the table name for the Contribution model
func (Contribution) TableName() string {
	return "contributions"
}

// Models lists every table managed by the store, in migration order
func Models() []any {
	return []any{
		&OwnershipRecord{},
		&Claim{},
		&Contribution{},
	}
}
