package rest

import (
	"github.com/feral-file/ff-ownership/internal/domain"
)

// ClaimOwnershipRequest is the body of POST /assets/:asset_id/claims
type ClaimOwnershipRequest struct {
	Reason string `json:"reason" binding:"max=2000"`
}

// DenyClaimRequest is the body of POST /assets/:asset_id/claims/:claim_id/deny
type DenyClaimRequest struct {
	Reason string `json:"reason" binding:"max=2000"`
}

// TransferOwnershipRequest is the body of POST /assets/:asset_id/transfer
type TransferOwnershipRequest struct {
	ToUserID    string `json:"to_user_id" binding:"required"`
	ToUserName  string `json:"to_user_name"`
	ToUserEmail string `json:"to_user_email"`
}

// RecordContributionRequest is the body of POST /assets/:asset_id/contributions
type RecordContributionRequest struct {
	Type            domain.ContributionType `json:"type" binding:"required"`
	Weight          *int64                  `json:"weight"`
	Description     string                  `json:"description"`
	RelatedEntityID *string                 `json:"related_entity_id"`
}

// ClaimsResponse wraps a claim listing
type ClaimsResponse struct {
	Claims []domain.Claim `json:"claims"`
}

// HistoryResponse wraps the ownership audit trail
type HistoryResponse struct {
	AssetID        string                 `json:"asset_id"`
	PreviousOwners []domain.PreviousOwner `json:"previous_owners"`
}

// CanEditResponse is the answer of GET /assets/:asset_id/can-edit
type CanEditResponse struct {
	AssetID string `json:"asset_id"`
	UserID  string `json:"user_id"`
	CanEdit bool   `json:"can_edit"`
}

// ContributionsResponse wraps a contribution listing
type ContributionsResponse struct {
	Contributions []domain.Contribution `json:"contributions"`
}

// TopContributorsResponse wraps the contributor ranking
type TopContributorsResponse struct {
	AssetID      string                   `json:"asset_id"`
	Contributors []domain.ContributorRank `json:"contributors"`
}

// ScoreResponse is the contribution score of a user on an asset
type ScoreResponse struct {
	AssetID string `json:"asset_id"`
	UserID  string `json:"user_id"`
	Score   int64  `json:"score"`
}

// ContributionTypesResponse lists the contribution types with their effective weights
type ContributionTypesResponse struct {
	Types []domain.ContributionTypeInfo `json:"types"`
}
