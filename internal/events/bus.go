package events

import (
	"context"
	"sync"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ownership/internal/adapter"
	"github.com/feral-file/ff-ownership/internal/domain"
	"github.com/feral-file/ff-ownership/internal/logger"
)

// Publisher emits domain events after a successful commit
//
//go:generate mockgen -source=bus.go -destination=../mocks/events.go -package=mocks -mock_names=Publisher=MockEventPublisher,Sink=MockEventSink
type Publisher interface {
	// Publish wraps each payload in an envelope and delivers them in order.
	// Delivery failures are logged and never returned to the caller.
	Publish(ctx context.Context, payloads ...domain.Payload)
}

// Sink is an external destination for every published event (message broker, analytics, ...)
type Sink interface {
	Name() string
	Handle(ctx context.Context, event domain.Event) error
}

// Handler is an in-process subscriber callback
type Handler func(ctx context.Context, event domain.Event)

type subscription struct {
	id        uint64
	eventType domain.EventType // empty matches every event
	handler   Handler
}

// Bus is a typed in-process publish/subscribe channel with optional external sinks
type Bus struct {
	clock adapter.Clock

	mu            sync.RWMutex
	nextID        uint64
	subscriptions []subscription
	sinks         []Sink
}

// NewBus creates an event bus delivering to the given sinks
func NewBus(clock adapter.Clock, sinks ...Sink) *Bus {
	return &Bus{
		clock: clock,
		sinks: sinks,
	}
}

// AddSink registers an additional external sink
func (b *Bus) AddSink(sink Sink) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sinks = append(b.sinks, sink)
}

// Subscribe registers a handler for one event type and returns a function removing it
func (b *Bus) Subscribe(eventType domain.EventType, handler Handler) func() {
	return b.subscribe(eventType, handler)
}

// SubscribeAll registers a handler for every event type and returns a function removing it
func (b *Bus) SubscribeAll(handler Handler) func() {
	return b.subscribe("", handler)
}

func (b *Bus) subscribe(eventType domain.EventType, handler Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subscriptions = append(b.subscriptions, subscription{id: id, eventType: eventType, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subscriptions {
			if s.id == id {
				b.subscriptions = append(b.subscriptions[:i], b.subscriptions[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers payloads to subscribers synchronously, then fans out to sinks
func (b *Bus) Publish(ctx context.Context, payloads ...domain.Payload) {
	if len(payloads) == 0 {
		return
	}

	now := b.clock.Now()
	envelopes := make([]domain.Event, 0, len(payloads))
	for _, p := range payloads {
		envelopes = append(envelopes, domain.Event{
			ID:         ulid.MustNewDefault(now).String(),
			Type:       p.EventType(),
			AssetID:    p.Asset(),
			OccurredAt: now,
			Payload:    p,
		})
	}

	b.mu.RLock()
	subscriptions := append([]subscription(nil), b.subscriptions...)
	sinks := append([]Sink(nil), b.sinks...)
	b.mu.RUnlock()

	for _, event := range envelopes {
		for _, s := range subscriptions {
			if s.eventType == "" || s.eventType == event.Type {
				s.handler(ctx, event)
			}
		}
	}

	b.fanout(ctx, sinks, envelopes)
}

// fanout delivers the envelopes to every sink concurrently, in order per sink
func (b *Bus) fanout(ctx context.Context, sinks []Sink, envelopes []domain.Event) {
	var wg sync.WaitGroup
	for _, sink := range sinks {
		wg.Add(1)
		go func(sink Sink) {
			defer wg.Done()
			for _, event := range envelopes {
				if err := sink.Handle(ctx, event); err != nil {
					logger.WarnCtx(ctx, "Failed to deliver event to sink",
						zap.String("sink", sink.Name()),
						zap.String("event_id", event.ID),
						zap.String("event_type", string(event.Type)),
						zap.String("asset_id", event.AssetID),
						zap.Error(err))
				}
			}
		}(sink)
	}
	wg.Wait()
}

var _ Publisher = (*Bus)(nil)
