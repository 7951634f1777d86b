// Package domain holds the aggregate building blocks: the immutable Event
// fact and the Recorder buffer every aggregate embeds by composition.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is an immutable fact emitted by an aggregate on a state change.
// Once recorded it is never mutated.
type Event struct {
	ID         uuid.UUID
	Name       string
	OccurredAt time.Time
	Payload    interface{}
}

func NewEvent(name string, payload interface{}) Event {
	return Event{
		ID:         uuid.New(),
		Name:       name,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Recorder buffers uncommitted events for an aggregate instance. Aggregates
// hold one as a field rather than inheriting it; the buffer is drained exactly
// once per successful persistence operation.
type Recorder struct {
	events []Event
}

func (r *Recorder) Record(ev Event) {
	r.events = append(r.events, ev)
}

// PullEvents returns the buffered events and clears the buffer. A second call
// on the same instance returns an empty slice.
func (r *Recorder) PullEvents() []Event {
	out := r.events
	r.events = nil
	return out
}

// Uncommitted returns a copy of the buffer without clearing it.
func (r *Recorder) Uncommitted() []Event {
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// MarkCommitted clears the buffer without returning it.
func (r *Recorder) MarkCommitted() {
	r.events = nil
}
