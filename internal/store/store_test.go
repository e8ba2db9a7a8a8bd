package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ownership/internal/domain"
)

// =============================================================================
// Test Data Builders
// =============================================================================

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func buildTestOwnership(assetID, ownerID string, at time.Time) *domain.OwnershipRecord {
	record := &domain.OwnershipRecord{AssetID: assetID, PreviousOwners: []domain.PreviousOwner{}}
	record.AssignOwner(domain.User{ID: ownerID, Name: "Name " + ownerID, Email: ownerID + "@example.com"}, at)
	return record
}

func buildTestClaim(assetID, userID string, score int64, at time.Time) *domain.Claim {
	ownerID := "owner"
	return &domain.Claim{
		ID:                        uuid.NewString(),
		AssetID:                   assetID,
		UserID:                    userID,
		UserName:                  "Name " + userID,
		UserEmail:                 userID + "@example.com",
		Reason:                    "I maintain this page",
		Status:                    domain.ClaimStatusPending,
		SubmittedAt:               at,
		ContributionScoreSnapshot: score,
		CurrentOwnerID:            &ownerID,
		CurrentOwnerName:          "Name owner",
	}
}

func buildTestContribution(assetID, userID string, contributionType domain.ContributionType, weight int64, at time.Time) *domain.Contribution {
	return &domain.Contribution{
		ID:          uuid.NewString(),
		AssetID:     assetID,
		UserID:      userID,
		UserName:    "Name " + userID,
		Type:        contributionType,
		Weight:      weight,
		Description: "test contribution",
		Timestamp:   at,
	}
}

func insertOwnership(t *testing.T, store Store, record *domain.OwnershipRecord) {
	t.Helper()
	err := store.RunInTx(context.Background(), func(uow UnitOfWork) error {
		return uow.InsertOwnership(context.Background(), record)
	})
	require.NoError(t, err)
}

// RunStoreTests runs the store contract against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"OwnershipLifecycle", testOwnershipLifecycle},
		{"RunInTxRollback", testRunInTxRollback},
		{"InsertOwnershipConflict", testInsertOwnershipConflict},
		{"TouchLastActivity", testTouchLastActivity},
		{"ListUnclaimedWithPendingClaims", testListUnclaimedWithPendingClaims},
		{"Claims", testClaims},
		{"DuplicatePendingClaim", testDuplicatePendingClaim},
		{"ResolveClaimsInTx", testResolveClaimsInTx},
		{"Contributions", testContributions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}

func testOwnershipLifecycle(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("missing record returns nil", func(t *testing.T) {
		record, err := store.GetOwnership(ctx, "missing-asset")
		require.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("insert then release and re-own", func(t *testing.T) {
		insertOwnership(t, store, buildTestOwnership("asset-1", "alice", baseTime))

		record, err := store.GetOwnership(ctx, "asset-1")
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, domain.OwnershipStatusOwned, record.Status)
		require.NotNil(t, record.OwnerID)
		assert.Equal(t, "alice", *record.OwnerID)
		assert.Equal(t, "Name alice", record.OwnerName)
		assert.Equal(t, "alice@example.com", record.OwnerEmail)
		assert.Nil(t, record.UnclaimedSince)
		assert.Empty(t, record.PreviousOwners)
		assert.True(t, record.Consistent())

		releasedAt := baseTime.Add(time.Hour)
		err = store.RunInTx(ctx, func(uow UnitOfWork) error {
			locked, err := uow.GetOwnershipForUpdate(ctx, "asset-1")
			if err != nil {
				return err
			}
			locked.AppendPreviousOwner(domain.OwnershipActionReleased, releasedAt)
			locked.Release(releasedAt)
			return uow.UpdateOwnership(ctx, locked)
		})
		require.NoError(t, err)

		record, err = store.GetOwnership(ctx, "asset-1")
		require.NoError(t, err)
		assert.Equal(t, domain.OwnershipStatusUnclaimed, record.Status)
		assert.Nil(t, record.OwnerID)
		require.NotNil(t, record.UnclaimedSince)
		assert.True(t, record.UnclaimedSince.Equal(releasedAt))
		require.Len(t, record.PreviousOwners, 1)
		assert.Equal(t, "alice", record.PreviousOwners[0].UserID)
		assert.Equal(t, domain.OwnershipActionReleased, record.PreviousOwners[0].Action)
		assert.True(t, record.PreviousOwners[0].TransferredAt.Equal(releasedAt))
		assert.True(t, record.Consistent())

		err = store.RunInTx(ctx, func(uow UnitOfWork) error {
			locked, err := uow.GetOwnershipForUpdate(ctx, "asset-1")
			if err != nil {
				return err
			}
			locked.AssignOwner(domain.User{ID: "bob", Name: "Bob"}, releasedAt.Add(time.Minute))
			return uow.UpdateOwnership(ctx, locked)
		})
		require.NoError(t, err)

		record, err = store.GetOwnership(ctx, "asset-1")
		require.NoError(t, err)
		assert.True(t, record.IsOwnedBy("bob"))
		assert.Nil(t, record.UnclaimedSince)
		assert.Len(t, record.PreviousOwners, 1)
		assert.True(t, record.IsFormerOwner("alice"))
	})
}

func testRunInTxRollback(t *testing.T, store Store) {
	ctx := context.Background()
	errAbort := errors.New("abort")

	err := store.RunInTx(ctx, func(uow UnitOfWork) error {
		if err := uow.InsertOwnership(ctx, buildTestOwnership("asset-rollback", "alice", baseTime)); err != nil {
			return err
		}
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	record, err := store.GetOwnership(ctx, "asset-rollback")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func testInsertOwnershipConflict(t *testing.T, store Store) {
	ctx := context.Background()
	insertOwnership(t, store, buildTestOwnership("asset-conflict", "alice", baseTime))

	err := store.RunInTx(ctx, func(uow UnitOfWork) error {
		return uow.InsertOwnership(ctx, buildTestOwnership("asset-conflict", "bob", baseTime))
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrAlreadyOwned)

	record, err := store.GetOwnership(ctx, "asset-conflict")
	require.NoError(t, err)
	assert.True(t, record.IsOwnedBy("alice"))
}

func testTouchLastActivity(t *testing.T, store Store) {
	ctx := context.Background()
	insertOwnership(t, store, buildTestOwnership("asset-touch", "alice", baseTime))

	later := baseTime.Add(2 * time.Hour)
	require.NoError(t, store.TouchLastActivity(ctx, "asset-touch", later))

	record, err := store.GetOwnership(ctx, "asset-touch")
	require.NoError(t, err)
	assert.True(t, record.LastActivity.Equal(later))

	// Older timestamps never move last activity backwards
	require.NoError(t, store.TouchLastActivity(ctx, "asset-touch", baseTime))
	record, err = store.GetOwnership(ctx, "asset-touch")
	require.NoError(t, err)
	assert.True(t, record.LastActivity.Equal(later))

	// Missing records are ignored
	require.NoError(t, store.TouchLastActivity(ctx, "asset-none", later))
	record, err = store.GetOwnership(ctx, "asset-none")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func testListUnclaimedWithPendingClaims(t *testing.T, store Store) {
	ctx := context.Background()

	release := func(assetID string, at time.Time) {
		record := buildTestOwnership(assetID, "alice", at.Add(-time.Hour))
		record.AppendPreviousOwner(domain.OwnershipActionReleased, at)
		record.Release(at)
		insertOwnership(t, store, record)
	}
	claim := func(assetID string, status domain.ClaimStatus) {
		c := buildTestClaim(assetID, "bob", 8, baseTime)
		c.Status = status
		require.NoError(t, store.CreateClaim(ctx, c))
	}

	release("asset-old", baseTime.Add(-10*24*time.Hour))
	release("asset-older", baseTime.Add(-20*24*time.Hour))
	release("asset-recent", baseTime.Add(-2*24*time.Hour))
	release("asset-lonely", baseTime.Add(-40*24*time.Hour))
	release("asset-resolved", baseTime.Add(-30*24*time.Hour))
	insertOwnership(t, store, buildTestOwnership("asset-owned", "bob", baseTime.Add(-30*24*time.Hour)))

	claim("asset-old", domain.ClaimStatusPending)
	claim("asset-older", domain.ClaimStatusPending)
	claim("asset-recent", domain.ClaimStatusPending)
	claim("asset-owned", domain.ClaimStatusPending)
	claim("asset-resolved", domain.ClaimStatusDenied)

	// Assets nobody is waiting for are never candidates, however old
	cutoff := baseTime.Add(-7 * 24 * time.Hour)
	assetIDs, err := store.ListUnclaimedWithPendingClaims(ctx, cutoff, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"asset-older", "asset-old"}, assetIDs)

	assetIDs, err = store.ListUnclaimedWithPendingClaims(ctx, cutoff, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"asset-older"}, assetIDs)
}

func testClaims(t *testing.T, store Store) {
	ctx := context.Background()

	first := buildTestClaim("asset-a", "bob", 8, baseTime)
	second := buildTestClaim("asset-a", "carol", 12, baseTime.Add(time.Minute))
	other := buildTestClaim("asset-b", "bob", 6, baseTime.Add(2*time.Minute))
	for _, c := range []*domain.Claim{first, second, other} {
		require.NoError(t, store.CreateClaim(ctx, c))
	}

	t.Run("get claim", func(t *testing.T) {
		claim, err := store.GetClaim(ctx, "asset-a", first.ID)
		require.NoError(t, err)
		require.NotNil(t, claim)
		assert.Equal(t, "bob", claim.UserID)
		assert.Equal(t, int64(8), claim.ContributionScoreSnapshot)
		assert.Equal(t, domain.ClaimStatusPending, claim.Status)
		require.NotNil(t, claim.CurrentOwnerID)
		assert.Equal(t, "owner", *claim.CurrentOwnerID)
		assert.True(t, claim.SubmittedAt.Equal(baseTime))
		assert.Nil(t, claim.ResolvedAt)
	})

	t.Run("get claim scoped to asset", func(t *testing.T) {
		claim, err := store.GetClaim(ctx, "asset-b", first.ID)
		require.NoError(t, err)
		assert.Nil(t, claim)
	})

	t.Run("list by asset", func(t *testing.T) {
		assetID := "asset-a"
		claims, err := store.ListClaims(ctx, ClaimFilter{AssetID: &assetID})
		require.NoError(t, err)
		require.Len(t, claims, 2)
		assert.Equal(t, first.ID, claims[0].ID)
		assert.Equal(t, second.ID, claims[1].ID)
	})

	t.Run("list by user across assets", func(t *testing.T) {
		userID := "bob"
		status := domain.ClaimStatusPending
		claims, err := store.ListClaims(ctx, ClaimFilter{UserID: &userID, Status: &status})
		require.NoError(t, err)
		require.Len(t, claims, 2)
		assert.Equal(t, "asset-a", claims[0].AssetID)
		assert.Equal(t, "asset-b", claims[1].AssetID)
	})

	t.Run("list by status", func(t *testing.T) {
		status := domain.ClaimStatusApproved
		claims, err := store.ListClaims(ctx, ClaimFilter{Status: &status})
		require.NoError(t, err)
		assert.Empty(t, claims)
	})
}

func testDuplicatePendingClaim(t *testing.T, store Store) {
	ctx := context.Background()

	claim := buildTestClaim("asset-dup", "bob", 8, baseTime)
	require.NoError(t, store.CreateClaim(ctx, claim))

	err := store.CreateClaim(ctx, buildTestClaim("asset-dup", "bob", 9, baseTime.Add(time.Second)))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicatePendingClaim)

	// Another user may still claim the same asset
	require.NoError(t, store.CreateClaim(ctx, buildTestClaim("asset-dup", "carol", 5, baseTime.Add(time.Second))))

	// Once resolved, the same user may submit again
	err = store.RunInTx(ctx, func(uow UnitOfWork) error {
		c, err := uow.GetClaim(ctx, "asset-dup", claim.ID)
		if err != nil {
			return err
		}
		c.Deny("owner", "not now", baseTime.Add(time.Minute))
		return uow.UpdateClaim(ctx, c)
	})
	require.NoError(t, err)
	require.NoError(t, store.CreateClaim(ctx, buildTestClaim("asset-dup", "bob", 10, baseTime.Add(2*time.Minute))))
}

func testResolveClaimsInTx(t *testing.T, store Store) {
	ctx := context.Background()
	insertOwnership(t, store, buildTestOwnership("asset-resolve", "alice", baseTime))

	winner := buildTestClaim("asset-resolve", "bob", 8, baseTime)
	loser := buildTestClaim("asset-resolve", "carol", 6, baseTime.Add(time.Minute))
	require.NoError(t, store.CreateClaim(ctx, winner))
	require.NoError(t, store.CreateClaim(ctx, loser))

	resolvedAt := baseTime.Add(time.Hour)
	err := store.RunInTx(ctx, func(uow UnitOfWork) error {
		pending, err := uow.ListPendingClaims(ctx, "asset-resolve")
		if err != nil {
			return err
		}
		if len(pending) != 2 {
			return errors.New("expected two pending claims")
		}
		for i := range pending {
			if pending[i].ID == winner.ID {
				pending[i].Approve("alice", resolvedAt)
			} else {
				pending[i].Deny("alice", domain.DENIAL_REASON_ANOTHER_CLAIM_APPROVED, resolvedAt)
			}
			if err := uow.UpdateClaim(ctx, &pending[i]); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	got, err := store.GetClaim(ctx, "asset-resolve", winner.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimStatusApproved, got.Status)
	require.NotNil(t, got.ResolvedBy)
	assert.Equal(t, "alice", *got.ResolvedBy)
	require.NotNil(t, got.ResolvedAt)
	assert.True(t, got.ResolvedAt.Equal(resolvedAt))
	assert.Nil(t, got.DenialReason)

	got, err = store.GetClaim(ctx, "asset-resolve", loser.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimStatusDenied, got.Status)
	require.NotNil(t, got.DenialReason)
	assert.Equal(t, domain.DENIAL_REASON_ANOTHER_CLAIM_APPROVED, *got.DenialReason)

	err = store.RunInTx(ctx, func(uow UnitOfWork) error {
		pending, err := uow.ListPendingClaims(ctx, "asset-resolve")
		if err != nil {
			return err
		}
		assert.Empty(t, pending)
		return nil
	})
	require.NoError(t, err)
}

func testContributions(t *testing.T, store Store) {
	ctx := context.Background()

	entries := []*domain.Contribution{
		buildTestContribution("asset-c", "bob", domain.ContributionTypeCitation, 5, baseTime),
		buildTestContribution("asset-c", "carol", domain.ContributionTypeMajorEdit, 10, baseTime.Add(time.Second)),
		buildTestContribution("asset-c", "bob", domain.ContributionTypeComment, 2, baseTime.Add(2*time.Second)),
		buildTestContribution("asset-c", "bob", domain.ContributionTypeComment, 1, baseTime.Add(3*time.Second)),
		buildTestContribution("asset-d", "bob", domain.ContributionTypeMedia, 6, baseTime),
	}
	relatedID := "comment-42"
	entries[2].RelatedEntityID = &relatedID
	for _, c := range entries {
		require.NoError(t, store.AppendContribution(ctx, c))
	}

	t.Run("sum weights per asset and user", func(t *testing.T) {
		score, err := store.SumContributionWeights(ctx, "asset-c", "bob")
		require.NoError(t, err)
		assert.Equal(t, int64(8), score)

		score, err = store.SumContributionWeights(ctx, "asset-c", "dave")
		require.NoError(t, err)
		assert.Equal(t, int64(0), score)
	})

	t.Run("list in insertion order", func(t *testing.T) {
		contributions, err := store.ListContributions(ctx, ContributionFilter{AssetID: "asset-c"})
		require.NoError(t, err)
		require.Len(t, contributions, 4)
		for i, c := range contributions {
			assert.Equal(t, entries[i].ID, c.ID)
		}
		require.NotNil(t, contributions[2].RelatedEntityID)
		assert.Equal(t, "comment-42", *contributions[2].RelatedEntityID)
		assert.Equal(t, domain.ContributionTypeComment, contributions[2].Type)
	})

	t.Run("list by user", func(t *testing.T) {
		userID := "carol"
		contributions, err := store.ListContributions(ctx, ContributionFilter{AssetID: "asset-c", UserID: &userID})
		require.NoError(t, err)
		require.Len(t, contributions, 1)
		assert.Equal(t, int64(10), contributions[0].Weight)
	})
}
