package user

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/onboarding-backend/internal/pkg/apperr"
)

func validAddress(t *testing.T) Address {
	t.Helper()
	addr, err := ParseAddress("123 Main St", "Springfield", "62704", "US")
	if err != nil {
		t.Fatalf("valid address rejected: %v", err)
	}
	return addr
}

func TestParseEmail(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Alice@Example.COM", "alice@example.com", false},
		{"  bob@example.com  ", "bob@example.com", false},
		{"", "", true},
		{"not-an-email", "", true},
		{"a b@example.com", "", true},
		{"a@b", "", true},
		{strings.Repeat("a", 250) + "@b.co", "", true},
	}
	for _, tc := range cases {
		got, err := ParseEmail(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseEmail(%q): expected error", tc.in)
			}
			if !apperr.IsValidation(err) {
				t.Fatalf("ParseEmail(%q): expected validation error, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseEmail(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseAddressRejectsShortFields(t *testing.T) {
	if _, err := ParseAddress("1", "Springfield", "62704", "US"); !apperr.IsValidation(err) {
		t.Fatalf("short street: expected validation error, got %v", err)
	}
	if _, err := ParseAddress("123 Main St", "S", "62704", "US"); !apperr.IsValidation(err) {
		t.Fatalf("short city: expected validation error, got %v", err)
	}
	if _, err := ParseAddress("123 Main St", "Springfield", "", "US"); !apperr.IsValidation(err) {
		t.Fatalf("empty zip: expected validation error, got %v", err)
	}
	if _, err := ParseAddress("123 Main St", "Springfield", "62704", "U"); !apperr.IsValidation(err) {
		t.Fatalf("short country: expected validation error, got %v", err)
	}
}

func TestNewRecordsExactlyOneEvent(t *testing.T) {
	u, err := New(uuid.Nil, "Alice", "alice@example.com", validAddress(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if u.ID == uuid.Nil {
		t.Fatal("expected an assigned id")
	}
	events := u.PullEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Name != EventUserCreated {
		t.Fatalf("unexpected event name %q", events[0].Name)
	}
	payload, ok := events[0].Payload.(CreatedPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", events[0].Payload)
	}
	if payload.UserID != u.ID.String() || payload.Email != "alice@example.com" {
		t.Fatalf("payload mismatch: %+v", payload)
	}
	if got := u.PullEvents(); len(got) != 0 {
		t.Fatalf("second drain should be empty, got %d", len(got))
	}
}

func TestNewValidatesName(t *testing.T) {
	if _, err := New(uuid.Nil, "A", "alice@example.com", validAddress(t)); !apperr.IsValidation(err) {
		t.Fatalf("short name: expected validation error, got %v", err)
	}
	long := strings.Repeat("x", 101)
	if _, err := New(uuid.Nil, long, "alice@example.com", validAddress(t)); !apperr.IsValidation(err) {
		t.Fatalf("long name: expected validation error, got %v", err)
	}
	if _, err := New(uuid.Nil, "  Al  ", "alice@example.com", validAddress(t)); err != nil {
		t.Fatalf("trimmed two-char name should pass: %v", err)
	}
}

func TestReconstituteRecordsNoEvents(t *testing.T) {
	u, err := New(uuid.Nil, "Alice", "alice@example.com", validAddress(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rebuilt := Reconstitute(u.ID, u.Name, u.Email, u.Address, u.AddressID, u.CreatedAt, u.UpdatedAt)
	if got := rebuilt.PullEvents(); len(got) != 0 {
		t.Fatalf("reconstituted aggregate should carry no events, got %d", len(got))
	}
}

func TestUpdateEmailNormalizes(t *testing.T) {
	u, err := New(uuid.Nil, "Alice", "alice@example.com", validAddress(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := u.UpdateEmail("ALICE2@Example.com"); err != nil {
		t.Fatalf("UpdateEmail: %v", err)
	}
	if u.Email != "alice2@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if err := u.UpdateEmail("bad"); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
