package store

import (
	"time"

	"gorm.io/datatypes"

	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/store/schema"
)

func ownershipFromSchema(row *schema.OwnershipRecord) *domain.OwnershipRecord {
	previous := make([]domain.PreviousOwner, 0, len(row.PreviousOwners))
	for _, p := range row.PreviousOwners {
		previous = append(previous, domain.PreviousOwner{
			UserID:        p.UserID,
			Name:          p.Name,
			TransferredAt: p.TransferredAt.UTC(),
			Action:        domain.OwnershipAction(p.Action),
		})
	}

	return &domain.OwnershipRecord{
		AssetID:        row.AssetID,
		OwnerID:        row.OwnerID,
		OwnerName:      row.OwnerName,
		OwnerEmail:     row.OwnerEmail,
		Status:         domain.OwnershipStatus(row.Status),
		ClaimedAt:      utcPtr(row.ClaimedAt),
		LastActivity:   row.LastActivity.UTC(),
		UnclaimedSince: utcPtr(row.UnclaimedSince),
		PreviousOwners: previous,
	}
}

func ownershipToSchema(record *domain.OwnershipRecord) schema.OwnershipRecord {
	previous := make([]schema.PreviousOwner, 0, len(record.PreviousOwners))
	for _, p := range record.PreviousOwners {
		previous = append(previous, schema.PreviousOwner{
			UserID:        p.UserID,
			Name:          p.Name,
			TransferredAt: p.TransferredAt,
			Action:        string(p.Action),
		})
	}

	return schema.OwnershipRecord{
		AssetID:        record.AssetID,
		OwnerID:        record.OwnerID,
		OwnerName:      record.OwnerName,
		OwnerEmail:     record.OwnerEmail,
		Status:         schema.OwnershipStatus(record.Status),
		ClaimedAt:      record.ClaimedAt,
		LastActivity:   record.LastActivity,
		UnclaimedSince: record.UnclaimedSince,
		PreviousOwners: datatypes.NewJSONSlice(previous),
	}
}

func claimFromSchema(row *schema.Claim) domain.Claim {
	return domain.Claim{
		ID:                        row.ID,
		AssetID:                   row.AssetID,
		UserID:                    row.UserID,
		UserName:                  row.UserName,
		UserEmail:                 row.UserEmail,
		Reason:                    row.Reason,
		Status:                    domain.ClaimStatus(row.Status),
		SubmittedAt:               row.SubmittedAt.UTC(),
		ResolvedAt:                utcPtr(row.ResolvedAt),
		ResolvedBy:                row.ResolvedBy,
		DenialReason:              row.DenialReason,
		ContributionScoreSnapshot: row.ContributionScoreSnapshot,
		CurrentOwnerID:            row.CurrentOwnerID,
		CurrentOwnerName:          row.CurrentOwnerName,
	}
}

func claimToSchema(claim *domain.Claim) schema.Claim {
	return schema.Claim{
		ID:                        claim.ID,
		AssetID:                   claim.AssetID,
		UserID:                    claim.UserID,
		UserName:                  claim.UserName,
		UserEmail:                 claim.UserEmail,
		Reason:                    claim.Reason,
		Status:                    schema.ClaimStatus(claim.Status),
		SubmittedAt:               claim.SubmittedAt,
		ResolvedAt:                claim.ResolvedAt,
		ResolvedBy:                claim.ResolvedBy,
		DenialReason:              claim.DenialReason,
		ContributionScoreSnapshot: claim.ContributionScoreSnapshot,
		CurrentOwnerID:            claim.CurrentOwnerID,
		CurrentOwnerName:          claim.CurrentOwnerName,
	}
}

func contributionFromSchema(row *schema.Contribution) domain.Contribution {
	return domain.Contribution{
		ID:              row.ID,
		AssetID:         row.AssetID,
		UserID:          row.UserID,
		UserName:        row.UserName,
		Type:            domain.ContributionType(row.Type),
		Weight:          row.Weight,
		Description:     row.Description,
		RelatedEntityID: row.RelatedEntityID,
		Timestamp:       row.Timestamp.UTC(),
	}
}

func contributionToSchema(c *domain.Contribution) schema.Contribution {
	return schema.Contribution{
		ID:              c.ID,
		AssetID:         c.AssetID,
		UserID:          c.UserID,
		UserName:        c.UserName,
		Type:            string(c.Type),
		Weight:          c.Weight,
		Description:     c.Description,
		RelatedEntityID: c.RelatedEntityID,
		Timestamp:       c.Timestamp,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
