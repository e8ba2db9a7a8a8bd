package domain

import "time"

// EventType names a domain event emitted after a successful commit
type EventType string

const (
	EventTypeOwnershipClaimed     EventType = "ownership-claimed"
	EventTypeOwnershipTransferred EventType = "ownership-transferred"
	EventTypeOwnershipReleased    EventType = "ownership-released"
	EventTypeClaimSubmitted       EventType = "claim-submitted"
	EventTypeClaimApproved        EventType = "claim-approved"
	EventTypeClaimDenied          EventType = "claim-denied"
	EventTypeContributionRecorded EventType = "contribution-recorded"
)

// Event is the envelope published on the event bus
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	AssetID    string    `json:"asset_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    Payload   `json:"payload"`
}

// Payload is implemented by every typed event payload
type Payload interface {
	EventType() EventType
	Asset() string
}

type OwnershipClaimed struct {
	AssetID  string `json:"asset_id"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

func (p OwnershipClaimed) EventType() EventType { return EventTypeOwnershipClaimed }
func (p OwnershipClaimed) Asset() string        { return p.AssetID }

type OwnershipTransferred struct {
	AssetID      string  `json:"asset_id"`
	FromUserID   *string `json:"from_user_id"`
	ToUserID     string  `json:"to_user_id"`
	ToUserName   string  `json:"to_user_name"`
	AutoTransfer bool    `json:"auto_transfer,omitempty"`
}

func (p OwnershipTransferred) EventType() EventType { return EventTypeOwnershipTransferred }
func (p OwnershipTransferred) Asset() string        { return p.AssetID }

type OwnershipReleased struct {
	AssetID         string `json:"asset_id"`
	PreviousOwnerID string `json:"previous_owner_id"`
}

func (p OwnershipReleased) EventType() EventType { return EventTypeOwnershipReleased }
func (p OwnershipReleased) Asset() string        { return p.AssetID }

type ClaimSubmitted struct {
	AssetID        string  `json:"asset_id"`
	ClaimID        string  `json:"claim_id"`
	UserID         string  `json:"user_id"`
	CurrentOwnerID *string `json:"current_owner_id"`
}

func (p ClaimSubmitted) EventType() EventType { return EventTypeClaimSubmitted }
func (p ClaimSubmitted) Asset() string        { return p.AssetID }

type ClaimApproved struct {
	AssetID         string  `json:"asset_id"`
	ClaimID         string  `json:"claim_id"`
	NewOwnerID      string  `json:"new_owner_id"`
	PreviousOwnerID *string `json:"previous_owner_id,omitempty"`
	AutoTransfer    bool    `json:"auto_transfer,omitempty"`
}

func (p ClaimApproved) EventType() EventType { return EventTypeClaimApproved }
func (p ClaimApproved) Asset() string        { return p.AssetID }

type ClaimDenied struct {
	AssetID    string `json:"asset_id"`
	ClaimID    string `json:"claim_id"`
	ClaimantID string `json:"claimant_id"`
	Reason     string `json:"reason"`
}

func (p ClaimDenied) EventType() EventType { return EventTypeClaimDenied }
func (p ClaimDenied) Asset() string        { return p.AssetID }

type ContributionRecorded struct {
	AssetID        string           `json:"asset_id"`
	ContributionID string           `json:"contribution_id"`
	UserID         string           `json:"user_id"`
	Type           ContributionType `json:"type"`
	Weight         int64            `json:"weight"`
}

func (p ContributionRecorded) EventType() EventType { return EventTypeContributionRecorded }
func (p ContributionRecorded) Asset() string        { return p.AssetID }
