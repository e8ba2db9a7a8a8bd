package posthog

import (
	"context"
	"fmt"

	"github.com/posthog/posthog-go"

	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/events"
)

// Client is the subset of posthog.Client used by the analytics sink
//
//go:generate mockgen -source=sink.go -destination=../../mocks/posthog.go -package=mocks -mock_names=Client=MockPostHogClient
type Client interface {
	Enqueue(msg posthog.Message) error
	Close() error
}

// NewClient creates a PostHog client for the given project key and endpoint
func NewClient(apiKey, endpoint string) (Client, error) {
	return posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
}

// Sink captures ownership events as product analytics
type Sink struct {
	client Client
}

// NewSink creates an analytics sink
func NewSink(client Client) *Sink {
	return &Sink{client: client}
}

func (s *Sink) Name() string {
	return "posthog"
}

// Handle enqueues a capture attributed to the user who acted or benefited
func (s *Sink) Handle(ctx context.Context, event domain.Event) error {
	distinctID, props := describe(event.Payload)
	props.Set("asset_id", event.AssetID).Set("event_id", event.ID)

	err := s.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      string(event.Type),
		Timestamp:  event.OccurredAt,
		Properties: props,
	})
	if err != nil {
		return fmt.Errorf("failed to enqueue posthog event: %w", err)
	}
	return nil
}

// Close flushes queued captures
func (s *Sink) Close() error {
	return s.client.Close()
}

func describe(payload domain.Payload) (string, posthog.Properties) {
	props := posthog.NewProperties()
	switch p := payload.(type) {
	case domain.OwnershipClaimed:
		return p.UserID, props
	case domain.OwnershipTransferred:
		if p.FromUserID != nil {
			props.Set("from_user_id", *p.FromUserID)
		}
		return p.ToUserID, props.Set("auto_transfer", p.AutoTransfer)
	case domain.OwnershipReleased:
		return p.PreviousOwnerID, props
	case domain.ClaimSubmitted:
		return p.UserID, props.Set("claim_id", p.ClaimID)
	case domain.ClaimApproved:
		return p.NewOwnerID, props.Set("claim_id", p.ClaimID).Set("auto_transfer", p.AutoTransfer)
	case domain.ClaimDenied:
		return p.ClaimantID, props.Set("claim_id", p.ClaimID).Set("reason", p.Reason)
	case domain.ContributionRecorded:
		return p.UserID, props.Set("contribution_type", string(p.Type)).Set("weight", p.Weight)
	default:
		return "system", props
	}
}

var _ events.Sink = (*Sink)(nil)
