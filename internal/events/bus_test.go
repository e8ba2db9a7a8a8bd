package events_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/events"
	"github.com/feral-file/ff-ownership/internal/mocks"
)

func newTestBus(t *testing.T, sinks ...events.Sink) (*events.Bus, time.Time) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now).AnyTimes()
	return events.NewBus(clock, sinks...), now
}

func TestBus_PublishEnvelopes(t *testing.T) {
	bus, now := newTestBus(t)

	var received []domain.Event
	bus.SubscribeAll(func(ctx context.Context, event domain.Event) {
		received = append(received, event)
	})

	bus.Publish(context.Background(),
		domain.ClaimApproved{AssetID: "asset-1", ClaimID: "claim-1", NewOwnerID: "bob"},
		domain.OwnershipTransferred{AssetID: "asset-1", ToUserID: "bob"},
	)

	require.Len(t, received, 2)
	assert.Equal(t, domain.EventTypeClaimApproved, received[0].Type)
	assert.Equal(t, domain.EventTypeOwnershipTransferred, received[1].Type)
	for _, e := range received {
		assert.Equal(t, "asset-1", e.AssetID)
		assert.Equal(t, now, e.OccurredAt)
		assert.Len(t, e.ID, 26)
	}
	assert.NotEqual(t, received[0].ID, received[1].ID)
}

func TestBus_SubscribeByType(t *testing.T) {
	bus, _ := newTestBus(t)

	var claimed, denied int
	bus.Subscribe(domain.EventTypeOwnershipClaimed, func(ctx context.Context, event domain.Event) {
		claimed++
	})
	unsubscribe := bus.Subscribe(domain.EventTypeClaimDenied, func(ctx context.Context, event domain.Event) {
		denied++
	})

	ctx := context.Background()
	bus.Publish(ctx, domain.OwnershipClaimed{AssetID: "a"}, domain.ClaimDenied{AssetID: "a"})
	unsubscribe()
	bus.Publish(ctx, domain.ClaimDenied{AssetID: "a"})

	assert.Equal(t, 1, claimed)
	assert.Equal(t, 1, denied)
}

func TestBus_PublishNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mocks.NewMockClock(ctrl)
	sink := mocks.NewMockEventSink(ctrl)

	// no clock or sink calls expected
	bus := events.NewBus(clock, sink)
	bus.Publish(context.Background())
}

func TestBus_SinkErrorsAreSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	failing := mocks.NewMockEventSink(ctrl)
	failing.EXPECT().Name().Return("failing").AnyTimes()
	failing.EXPECT().Handle(gomock.Any(), gomock.Any()).Return(errors.New("broker down")).Times(2)

	ok := &recordingSink{}
	bus, _ := newTestBus(t, failing)
	bus.AddSink(ok)

	bus.Publish(context.Background(),
		domain.OwnershipReleased{AssetID: "asset-1", PreviousOwnerID: "alice"},
		domain.ContributionRecorded{AssetID: "asset-1", UserID: "bob"},
	)

	types := ok.types()
	assert.Equal(t, []domain.EventType{domain.EventTypeOwnershipReleased, domain.EventTypeContributionRecorded}, types)
}

func TestLogSink(t *testing.T) {
	sink := events.NewLogSink()
	assert.Equal(t, "log", sink.Name())
	assert.NoError(t, sink.Handle(context.Background(), domain.Event{ID: "x", Type: domain.EventTypeClaimSubmitted}))
}

type recordingSink struct {
	mu     sync.Mutex
	events []domain.Event
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Handle(ctx context.Context, event domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingSink) types() []domain.EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.EventType, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, e.Type)
	}
	return out
}
