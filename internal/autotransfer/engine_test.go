package autotransfer_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ownership/internal/adapter"
	"github.com/feral-file/ff-ownership/internal/autotransfer"
	"github.com/feral-file/ff-ownership/internal/cache"
	"github.com/feral-file/ff-ownership/internal/contribution"
	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/events"
	"github.com/feral-file/ff-ownership/internal/identity"
	"github.com/feral-file/ff-ownership/internal/mocks"
	"github.com/feral-file/ff-ownership/internal/store"
)

const autoTransferDays = 7

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type testEngineDeps struct {
	ctrl   *gomock.Controller
	clock  *mocks.MockClock
	store  store.Store
	cache  cache.Cache
	ledger contribution.Ledger
	engine autotransfer.Engine

	mu     sync.Mutex
	now    time.Time
	events []domain.Event
}

func setupTestEngine(t *testing.T) *testEngineDeps {
	ctrl := gomock.NewController(t)
	c, err := cache.NewMemory(1000, adapter.NewJSON())
	require.NoError(t, err)

	d := &testEngineDeps{
		ctrl:  ctrl,
		clock: mocks.NewMockClock(ctrl),
		store: store.NewMemoryStore(),
		cache: c,
		now:   baseTime,
	}
	d.clock.EXPECT().Now().DoAndReturn(func() time.Time {
		d.mu.Lock()
		defer d.mu.Unlock()
		return d.now
	}).AnyTimes()
	d.clock.EXPECT().Since(gomock.Any()).Return(time.Duration(0)).AnyTimes()

	bus := events.NewBus(d.clock)
	bus.SubscribeAll(func(ctx context.Context, event domain.Event) {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.events = append(d.events, event)
	})

	d.ledger = contribution.NewLedger(d.store, c, bus, d.clock, contribution.Config{CacheTTL: time.Minute})
	d.engine = autotransfer.NewEngine(d.store, d.ledger, c, bus, d.clock, autotransfer.Config{
		Threshold: autoTransferDays * 24 * time.Hour,
		BatchSize: 100,
		PoolSize:  4,
	})
	return d
}

func (d *testEngineDeps) eventTypes() []domain.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]domain.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}

// givenUnclaimed creates an asset released `ago` before baseTime by the given former owners
func (d *testEngineDeps) givenUnclaimed(t *testing.T, assetID string, ago time.Duration, formerOwners ...string) {
	t.Helper()
	ctx := context.Background()
	since := baseTime.Add(-ago)

	rec := &domain.OwnershipRecord{
		AssetID:        assetID,
		Status:         domain.OwnershipStatusUnclaimed,
		LastActivity:   since,
		UnclaimedSince: &since,
	}
	for _, u := range formerOwners {
		rec.PreviousOwners = append(rec.PreviousOwners, domain.PreviousOwner{
			UserID:        u,
			Name:          "name-" + u,
			TransferredAt: since,
			Action:        domain.OwnershipActionReleased,
		})
	}
	require.NoError(t, d.store.RunInTx(ctx, func(uow store.UnitOfWork) error {
		return uow.InsertOwnership(ctx, rec)
	}))
}

// givenClaim files a pending claim directly in the store
func (d *testEngineDeps) givenClaim(t *testing.T, assetID, claimID, userID string, score int64, submittedAt time.Time) {
	t.Helper()
	require.NoError(t, d.store.CreateClaim(context.Background(), &domain.Claim{
		ID:                        claimID,
		AssetID:                   assetID,
		UserID:                    userID,
		UserName:                  "name-" + userID,
		Status:                    domain.ClaimStatusPending,
		SubmittedAt:               submittedAt,
		ContributionScoreSnapshot: score,
	}))
}

func (d *testEngineDeps) contribute(t *testing.T, assetID, userID string, w int64) {
	t.Helper()
	ctx := identity.WithCaller(context.Background(), identity.Caller{ID: userID, Name: "name-" + userID})
	_, err := d.ledger.RecordContribution(ctx, assetID, userID, contribution.RecordInput{
		Type:   domain.ContributionTypeMajorEdit,
		Weight: &w,
	})
	require.NoError(t, err)
}

func (d *testEngineDeps) claim(t *testing.T, assetID, claimID string) *domain.Claim {
	t.Helper()
	c, err := d.store.GetClaim(context.Background(), assetID, claimID)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func TestProcessAsset_TransfersToOnlyClaimant(t *testing.T) {
	d := setupTestEngine(t)
	d.givenUnclaimed(t, "myth-7", 10*24*time.Hour, "userA")
	d.givenClaim(t, "myth-7", "claim-c", "userC", 3, baseTime.Add(-5*24*time.Hour))

	outcome, err := d.engine.ProcessAsset(context.Background(), "myth-7")
	require.NoError(t, err)
	assert.True(t, outcome.Transferred)
	assert.Equal(t, "userC", outcome.WinnerUserID)
	assert.Equal(t, "claim-c", outcome.WinnerClaimID)

	rec, err := d.store.GetOwnership(context.Background(), "myth-7")
	require.NoError(t, err)
	assert.Equal(t, domain.OwnershipStatusOwned, rec.Status)
	assert.Equal(t, "userC", *rec.OwnerID)
	assert.Nil(t, rec.UnclaimedSince)
	assert.True(t, rec.Consistent())
	// the released entry is the only audit entry, auto-transfer adds none
	assert.Len(t, rec.PreviousOwners, 1)

	c := d.claim(t, "myth-7", "claim-c")
	assert.Equal(t, domain.ClaimStatusApproved, c.Status)
	assert.Equal(t, domain.SYSTEM_AUTO_TRANSFER, *c.ResolvedBy)

	require.Equal(t, []domain.EventType{domain.EventTypeClaimApproved, domain.EventTypeOwnershipTransferred}, d.eventTypes())
	assert.True(t, d.events[0].Payload.(domain.ClaimApproved).AutoTransfer)
	assert.True(t, d.events[1].Payload.(domain.OwnershipTransferred).AutoTransfer)
	assert.Nil(t, d.events[1].Payload.(domain.OwnershipTransferred).FromUserID)

	// running again is a no-op
	outcome, err = d.engine.ProcessAsset(context.Background(), "myth-7")
	require.NoError(t, err)
	assert.False(t, outcome.Transferred)
	assert.Equal(t, autotransfer.SkipNotUnclaimed, outcome.SkipReason)
	assert.Len(t, d.eventTypes(), 2)
}

func TestProcessAsset_Skips(t *testing.T) {
	d := setupTestEngine(t)
	d.givenUnclaimed(t, "recent", 3*24*time.Hour)
	d.givenClaim(t, "recent", "c1", "userB", 9, baseTime.Add(-time.Hour))
	d.givenUnclaimed(t, "exactly", autoTransferDays*24*time.Hour)
	d.givenClaim(t, "exactly", "c2", "userB", 9, baseTime.Add(-time.Hour))
	d.givenUnclaimed(t, "lonely", 30*24*time.Hour)

	tests := []struct {
		assetID string
		reason  autotransfer.SkipReason
	}{
		{"missing", autotransfer.SkipOwnershipNotFound},
		{"recent", autotransfer.SkipThresholdNotPassed},
		{"exactly", autotransfer.SkipThresholdNotPassed},
		{"lonely", autotransfer.SkipNoPendingClaims},
	}
	for _, tt := range tests {
		t.Run(tt.assetID, func(t *testing.T) {
			outcome, err := d.engine.ProcessAsset(context.Background(), tt.assetID)
			require.NoError(t, err)
			assert.False(t, outcome.Transferred)
			assert.Equal(t, tt.reason, outcome.SkipReason)
		})
	}
	assert.Empty(t, d.eventTypes())
}

func TestProcessAsset_HighestScoreWins(t *testing.T) {
	d := setupTestEngine(t)
	d.givenUnclaimed(t, "myth-7", 10*24*time.Hour, "userA")
	d.givenClaim(t, "myth-7", "low", "userB", 4, baseTime.Add(-9*24*time.Hour))
	d.givenClaim(t, "myth-7", "high-late", "userC", 12, baseTime.Add(-2*24*time.Hour))
	d.givenClaim(t, "myth-7", "high-early", "userD", 12, baseTime.Add(-3*24*time.Hour))

	outcome, err := d.engine.ProcessAsset(context.Background(), "myth-7")
	require.NoError(t, err)
	assert.Equal(t, "high-early", outcome.WinnerClaimID)
	assert.Equal(t, 2, outcome.DeniedClaims)

	for _, id := range []string{"low", "high-late"} {
		c := d.claim(t, "myth-7", id)
		assert.Equal(t, domain.ClaimStatusDenied, c.Status)
		assert.Equal(t, domain.DENIAL_REASON_AUTO_TRANSFERRED, *c.DenialReason)
		assert.Equal(t, domain.SYSTEM_AUTO_TRANSFER, *c.ResolvedBy)
	}
}

func TestProcessAsset_FormerOwnerTopContributorWins(t *testing.T) {
	d := setupTestEngine(t)
	d.givenUnclaimed(t, "myth-7", 10*24*time.Hour, "userA")
	d.contribute(t, "myth-7", "userA", 20)
	d.contribute(t, "myth-7", "userB", 15)

	// userA's snapshot is lower but userA used to own the asset and leads the ranking
	d.givenClaim(t, "myth-7", "former", "userA", 1, baseTime.Add(-time.Hour))
	d.givenClaim(t, "myth-7", "stranger", "userB", 15, baseTime.Add(-2*time.Hour))

	outcome, err := d.engine.ProcessAsset(context.Background(), "myth-7")
	require.NoError(t, err)
	assert.Equal(t, "former", outcome.WinnerClaimID)
	assert.Equal(t, "userA", outcome.WinnerUserID)
}

func TestProcessAsset_TopContributorWithoutOwnershipHistory(t *testing.T) {
	d := setupTestEngine(t)
	d.givenUnclaimed(t, "myth-7", 10*24*time.Hour, "userZ")
	d.contribute(t, "myth-7", "userA", 20)

	// the top contributor never owned the asset, so the score comparison decides
	d.givenClaim(t, "myth-7", "top", "userA", 5, baseTime.Add(-time.Hour))
	d.givenClaim(t, "myth-7", "best-score", "userB", 8, baseTime.Add(-time.Hour))

	outcome, err := d.engine.ProcessAsset(context.Background(), "myth-7")
	require.NoError(t, err)
	assert.Equal(t, "best-score", outcome.WinnerClaimID)
}

func TestProcessAsset_ConcurrentInvocations(t *testing.T) {
	d := setupTestEngine(t)
	d.givenUnclaimed(t, "myth-7", 10*24*time.Hour)
	d.givenClaim(t, "myth-7", "c1", "userB", 6, baseTime.Add(-time.Hour))
	d.givenClaim(t, "myth-7", "c2", "userC", 7, baseTime.Add(-time.Hour))

	var wg sync.WaitGroup
	var mu sync.Mutex
	transfers := 0
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcome, err := d.engine.ProcessAsset(context.Background(), "myth-7")
			assert.NoError(t, err)
			if outcome != nil && outcome.Transferred {
				mu.Lock()
				transfers++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, transfers)
	assert.Len(t, d.eventTypes(), 2)
}

func TestRun(t *testing.T) {
	d := setupTestEngine(t)
	d.givenUnclaimed(t, "a1", 10*24*time.Hour)
	d.givenClaim(t, "a1", "c1", "userB", 6, baseTime.Add(-time.Hour))
	d.givenUnclaimed(t, "a2", 12*24*time.Hour)
	d.givenClaim(t, "a2", "c2", "userC", 6, baseTime.Add(-time.Hour))
	d.givenUnclaimed(t, "a3", 20*24*time.Hour)
	d.givenUnclaimed(t, "fresh", 24*time.Hour)
	d.givenClaim(t, "fresh", "c3", "userD", 6, baseTime.Add(-time.Hour))

	// an asset nobody claims is never a candidate
	candidates, err := d.engine.Candidates(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a2", "a1"}, candidates)

	summary, err := d.engine.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 2, summary.Transferred)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 0, summary.Failed)

	summary, err = d.engine.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Processed)

	c := d.claim(t, "fresh", "c3")
	assert.Equal(t, domain.ClaimStatusPending, c.Status)
}

func TestRun_ClaimlessAssetsDoNotStarveTheBatch(t *testing.T) {
	d := setupTestEngine(t)
	engine := autotransfer.NewEngine(d.store, d.ledger, d.cache, events.NewBus(d.clock), d.clock, autotransfer.Config{
		Threshold: autoTransferDays * 24 * time.Hour,
		BatchSize: 2,
		PoolSize:  2,
	})
	d.givenUnclaimed(t, "lonely-1", 40*24*time.Hour)
	d.givenUnclaimed(t, "lonely-2", 30*24*time.Hour)
	d.givenUnclaimed(t, "myth-7", 10*24*time.Hour, "userA")
	d.givenClaim(t, "myth-7", "c1", "userB", 6, baseTime.Add(-time.Hour))

	summary, err := engine.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, 1, summary.Transferred)

	rec, err := d.store.GetOwnership(context.Background(), "myth-7")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, domain.OwnershipStatusOwned, rec.Status)
	require.NotNil(t, rec.OwnerID)
	assert.Equal(t, "userB", *rec.OwnerID)
	assert.Equal(t, domain.ClaimStatusApproved, d.claim(t, "myth-7", "c1").Status)
}

func TestRun_Empty(t *testing.T) {
	d := setupTestEngine(t)

	summary, err := d.engine.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, autotransfer.Summary{}, *summary)
}

func TestRun_RetriesStorageErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	clock := mocks.NewMockClock(ctrl)
	ledger := mocks.NewMockLedger(ctrl)
	publisher := mocks.NewMockEventPublisher(ctrl)
	clock.EXPECT().Now().Return(baseTime).AnyTimes()
	clock.EXPECT().Since(gomock.Any()).Return(time.Second).AnyTimes()

	engine := autotransfer.NewEngine(st, ledger, cache.NewNoop(), publisher, clock, autotransfer.Config{
		Threshold:            autoTransferDays * 24 * time.Hour,
		PoolSize:             1,
		MaxRetries:           2,
		RetryInitialInterval: time.Millisecond,
	})

	dbErr := errors.New("connection reset")
	st.EXPECT().ListUnclaimedWithPendingClaims(gomock.Any(), baseTime.Add(-autoTransferDays*24*time.Hour), 0).Return([]string{"flaky", "broken"}, nil)

	// flaky fails once then is found already resolved
	owner := "userB"
	gomock.InOrder(
		st.EXPECT().GetOwnership(gomock.Any(), "flaky").Return(nil, dbErr),
		st.EXPECT().GetOwnership(gomock.Any(), "flaky").Return(&domain.OwnershipRecord{
			AssetID: "flaky", OwnerID: &owner, Status: domain.OwnershipStatusOwned,
		}, nil),
	)
	// broken fails on every attempt
	st.EXPECT().GetOwnership(gomock.Any(), "broken").Return(nil, dbErr).Times(3)

	summary, err := engine.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, time.Second, summary.Duration)
}

func TestRun_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)
	clock := mocks.NewMockClock(ctrl)
	clock.EXPECT().Now().Return(baseTime).AnyTimes()

	engine := autotransfer.NewEngine(st, mocks.NewMockLedger(ctrl), cache.NewNoop(), mocks.NewMockEventPublisher(ctrl), clock, autotransfer.Config{})
	st.EXPECT().ListUnclaimedWithPendingClaims(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := engine.Run(context.Background())
	assert.ErrorContains(t, err, "timeout")
}

func TestSelectWinner(t *testing.T) {
	rec := &domain.OwnershipRecord{PreviousOwners: []domain.PreviousOwner{{UserID: "former"}}}

	assert.Nil(t, autotransfer.SelectWinner(rec, nil, ""))

	claims := []domain.Claim{
		{ID: "b", UserID: "u1", Status: domain.ClaimStatusPending, ContributionScoreSnapshot: 5, SubmittedAt: baseTime},
		{ID: "a", UserID: "u2", Status: domain.ClaimStatusPending, ContributionScoreSnapshot: 5, SubmittedAt: baseTime},
		{ID: "c", UserID: "u3", Status: domain.ClaimStatusDenied, ContributionScoreSnapshot: 50, SubmittedAt: baseTime},
		{ID: "d", UserID: "former", Status: domain.ClaimStatusPending, ContributionScoreSnapshot: 0, SubmittedAt: baseTime.Add(time.Hour)},
	}

	// identical score and time fall back to the claim id
	assert.Equal(t, "a", autotransfer.SelectWinner(rec, claims, "u1").ID)
	assert.Equal(t, "d", autotransfer.SelectWinner(rec, claims, "former").ID)
}
