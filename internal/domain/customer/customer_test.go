package customer

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/onboarding-backend/internal/pkg/apperr"
)

func TestParsePhone(t *testing.T) {
	good := []string{"+14155552671", "14155552671", "+1 (415) 555-2671", "415-555-2671"}
	for _, in := range good {
		if _, err := ParsePhone(in); err != nil {
			t.Fatalf("ParsePhone(%q): %v", in, err)
		}
	}
	bad := []string{"", "abc", "0123456", "+0123", "+123456789012345678"}
	for _, in := range bad {
		if _, err := ParsePhone(in); !apperr.IsValidation(err) {
			t.Fatalf("ParsePhone(%q): expected validation error, got %v", in, err)
		}
	}
}

func TestParsePhoneKeepsOriginalFormatting(t *testing.T) {
	got, err := ParsePhone("+1 (415) 555-2671")
	if err != nil {
		t.Fatalf("ParsePhone: %v", err)
	}
	if got != "+1 (415) 555-2671" {
		t.Fatalf("expected original formatting preserved, got %q", got)
	}
}

func TestNewValidates(t *testing.T) {
	owner := uuid.New()

	if _, err := New(uuid.Nil, "", "+14155552671", owner); !apperr.IsValidation(err) {
		t.Fatalf("empty name: expected validation error, got %v", err)
	}
	long := strings.Repeat("x", 101)
	if _, err := New(uuid.Nil, long, "+14155552671", owner); !apperr.IsValidation(err) {
		t.Fatalf("long name: expected validation error, got %v", err)
	}
	if _, err := New(uuid.Nil, "Acme", "+14155552671", uuid.Nil); !apperr.IsValidation(err) {
		t.Fatalf("nil user id: expected validation error, got %v", err)
	}
}

func TestNewRecordsExactlyOneEvent(t *testing.T) {
	owner := uuid.New()
	c, err := New(uuid.Nil, "Acme", "+14155552671", owner)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	events := c.PullEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Name != EventCustomerCreated {
		t.Fatalf("unexpected event name %q", events[0].Name)
	}
	payload, ok := events[0].Payload.(CreatedPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", events[0].Payload)
	}
	if payload.UserID != owner.String() {
		t.Fatalf("payload user id mismatch: %+v", payload)
	}
	if got := c.PullEvents(); len(got) != 0 {
		t.Fatalf("second drain should be empty, got %d", len(got))
	}
}
