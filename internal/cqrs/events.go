package cqrs

import (
	"context"
	"sync"

	"github.com/yungbote/onboarding-backend/internal/domain"
)

// Subscriber receives published domain events. A subscriber error propagates
// to the publisher; best-effort consumers must catch at their own boundary.
type Subscriber interface {
	HandleEvent(ctx context.Context, ev domain.Event) error
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(ctx context.Context, ev domain.Event) error

func (f SubscriberFunc) HandleEvent(ctx context.Context, ev domain.Event) error {
	return f(ctx, ev)
}

// EventBus fans domain events out to subscribers. Subscription is either by
// event name or catch-all (empty name).
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string][]Subscriber
	catchAll    []Subscriber
}

func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]Subscriber)}
}

// Subscribe registers sub for events with the given name. An empty name
// subscribes to every event.
func (b *EventBus) Subscribe(name string, sub Subscriber) {
	if sub == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if name == "" {
		b.catchAll = append(b.catchAll, sub)
		return
	}
	b.subscribers[name] = append(b.subscribers[name], sub)
}

// Publish delivers ev to every matching subscriber before returning. The
// first subscriber error aborts delivery and propagates.
func (b *EventBus) Publish(ctx context.Context, ev domain.Event) error {
	b.mu.RLock()
	subs := make([]Subscriber, 0, len(b.subscribers[ev.Name])+len(b.catchAll))
	subs = append(subs, b.subscribers[ev.Name]...)
	subs = append(subs, b.catchAll...)
	b.mu.RUnlock()

	for _, sub := range subs {
		if err := sub.HandleEvent(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

// PublishAll publishes each event independently; each event reaches all of
// its subscribers before the next is delivered.
func (b *EventBus) PublishAll(ctx context.Context, events []domain.Event) error {
	for _, ev := range events {
		if err := b.Publish(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}
