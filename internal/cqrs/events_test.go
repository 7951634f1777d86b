package cqrs

import (
	"context"
	"errors"
	"testing"

	"github.com/yungbote/onboarding-backend/internal/domain"
)

func TestPublishDeliversToAllSubscribers(t *testing.T) {
	bus := NewEventBus()
	var got []string
	bus.Subscribe("thing_happened", SubscriberFunc(func(ctx context.Context, ev domain.Event) error {
		got = append(got, "named-1")
		return nil
	}))
	bus.Subscribe("thing_happened", SubscriberFunc(func(ctx context.Context, ev domain.Event) error {
		got = append(got, "named-2")
		return nil
	}))
	bus.Subscribe("", SubscriberFunc(func(ctx context.Context, ev domain.Event) error {
		got = append(got, "catch-all")
		return nil
	}))
	bus.Subscribe("other_event", SubscriberFunc(func(ctx context.Context, ev domain.Event) error {
		got = append(got, "wrong-name")
		return nil
	}))

	if err := bus.Publish(context.Background(), domain.NewEvent("thing_happened", nil)); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 deliveries, got %v", got)
	}
	for _, name := range got {
		if name == "wrong-name" {
			t.Fatal("subscriber for a different event name was invoked")
		}
	}
}

func TestPublishWithNoSubscribersIsANoOp(t *testing.T) {
	bus := NewEventBus()
	if err := bus.Publish(context.Background(), domain.NewEvent("thing_happened", nil)); err != nil {
		t.Fatalf("Publish: %v", err)
	}
}

func TestPublishPropagatesSubscriberError(t *testing.T) {
	sentinel := errors.New("subscriber failed")
	bus := NewEventBus()
	delivered := 0
	bus.Subscribe("thing_happened", SubscriberFunc(func(ctx context.Context, ev domain.Event) error {
		delivered++
		return sentinel
	}))
	bus.Subscribe("thing_happened", SubscriberFunc(func(ctx context.Context, ev domain.Event) error {
		delivered++
		return nil
	}))

	err := bus.Publish(context.Background(), domain.NewEvent("thing_happened", nil))
	if err != sentinel {
		t.Fatalf("expected subscriber error identity, got %v", err)
	}
	if delivered != 1 {
		t.Fatalf("expected delivery to stop at the failing subscriber, got %d", delivered)
	}
}

func TestPublishAllDeliversEachEvent(t *testing.T) {
	bus := NewEventBus()
	var got []string
	bus.Subscribe("", SubscriberFunc(func(ctx context.Context, ev domain.Event) error {
		got = append(got, ev.Name)
		return nil
	}))

	events := []domain.Event{
		domain.NewEvent("first", nil),
		domain.NewEvent("second", nil),
	}
	if err := bus.PublishAll(context.Background(), events); err != nil {
		t.Fatalf("PublishAll: %v", err)
	}
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Fatalf("unexpected delivery order %v", got)
	}
}
