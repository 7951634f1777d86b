package customer

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/onboarding-backend/internal/domain"
	"github.com/yungbote/onboarding-backend/internal/pkg/apperr"
)

const EventCustomerCreated = "customer_created"

var phoneDigits = regexp.MustCompile(`^[\+]?[1-9][\d]{0,15}$`)

// ParsePhone validates a phone number, ignoring spaces, dashes and parens.
func ParsePhone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	if phone == "" {
		return "", apperr.Validation("phone cannot be empty")
	}
	stripped := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
	if !phoneDigits.MatchString(stripped) {
		return "", apperr.Validation("invalid phone number format")
	}
	return phone, nil
}

// Customer is the aggregate root for a billing counterpart owned by a user.
// Immutable after creation.
type Customer struct {
	events domain.Recorder

	ID        uuid.UUID
	Name      string
	Phone     string
	UserID    uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreatedPayload struct {
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	UserID     string `json:"user_id"`
}

// ValidateName trims and bounds-checks a customer name.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Validation("customer name cannot be empty")
	}
	if len(name) > 100 {
		return "", apperr.Validation("customer name cannot exceed 100 characters")
	}
	return name, nil
}

// New validates the inputs, builds the aggregate, and records exactly one
// customer_created event.
func New(id uuid.UUID, name, phone string, userID uuid.UUID) (*Customer, error) {
	name, err := ValidateName(name)
	if err != nil {
		return nil, err
	}
	phone, err = ParsePhone(phone)
	if err != nil {
		return nil, err
	}
	if userID == uuid.Nil {
		return nil, apperr.Validation("customer requires an owning user id")
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := time.Now().UTC()
	c := &Customer{
		ID:        id,
		Name:      name,
		Phone:     phone,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.events.Record(domain.NewEvent(EventCustomerCreated, CreatedPayload{
		CustomerID: c.ID.String(),
		Name:       c.Name,
		Phone:      c.Phone,
		UserID:     c.UserID.String(),
	}))
	return c, nil
}

// Reconstitute rebuilds a Customer from stored state. No events are recorded.
func Reconstitute(id uuid.UUID, name, phone string, userID uuid.UUID, createdAt, updatedAt time.Time) *Customer {
	return &Customer{
		ID:        id,
		Name:      name,
		Phone:     phone,
		UserID:    userID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

func (c *Customer) PullEvents() []domain.Event { return c.events.PullEvents() }

func (c *Customer) UncommittedEvents() []domain.Event { return c.events.Uncommitted() }

func (c *Customer) MarkEventsCommitted() { c.events.MarkCommitted() }
