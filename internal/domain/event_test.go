package domain

import (
	"testing"
)

func TestRecorderDrainIsIdempotent(t *testing.T) {
	var r Recorder
	r.Record(NewEvent("thing_happened", map[string]string{"k": "v"}))
	r.Record(NewEvent("other_thing_happened", nil))

	first := r.PullEvents()
	if len(first) != 2 {
		t.Fatalf("expected 2 events on first drain, got %d", len(first))
	}
	second := r.PullEvents()
	if len(second) != 0 {
		t.Fatalf("expected empty second drain, got %d events", len(second))
	}
}

func TestRecorderUncommittedIsACopy(t *testing.T) {
	var r Recorder
	r.Record(NewEvent("thing_happened", nil))

	peek := r.Uncommitted()
	if len(peek) != 1 {
		t.Fatalf("expected 1 uncommitted event, got %d", len(peek))
	}
	peek[0].Name = "mutated"

	drained := r.PullEvents()
	if drained[0].Name != "thing_happened" {
		t.Fatalf("mutating the Uncommitted copy leaked into the buffer: %q", drained[0].Name)
	}
}

func TestRecorderMarkCommitted(t *testing.T) {
	var r Recorder
	r.Record(NewEvent("thing_happened", nil))
	r.MarkCommitted()
	if got := r.PullEvents(); len(got) != 0 {
		t.Fatalf("expected no events after MarkCommitted, got %d", len(got))
	}
}

func TestNewEventAssignsIdentityAndTime(t *testing.T) {
	ev := NewEvent("thing_happened", 42)
	if ev.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("expected a non-zero event id")
	}
	if ev.OccurredAt.IsZero() {
		t.Fatal("expected OccurredAt to be set")
	}
	if ev.Name != "thing_happened" {
		t.Fatalf("unexpected name %q", ev.Name)
	}
	if ev.Payload.(int) != 42 {
		t.Fatalf("unexpected payload %v", ev.Payload)
	}
}
