package user

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/onboarding-backend/internal/domain"
	"github.com/yungbote/onboarding-backend/internal/pkg/apperr"
)

const EventUserCreated = "user_created"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ParseEmail normalizes and validates an email address.
func ParseEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", apperr.Validation("email cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return "", apperr.Validation("invalid email format")
	}
	if len(email) > 254 {
		return "", apperr.Validation("email cannot exceed 254 characters")
	}
	return email, nil
}

// Address is an immutable value object embedded in User.
type Address struct {
	Street  string
	City    string
	ZipCode string
	Country string
}

func ParseAddress(street, city, zipCode, country string) (Address, error) {
	a := Address{
		Street:  strings.TrimSpace(street),
		City:    strings.TrimSpace(city),
		ZipCode: strings.TrimSpace(zipCode),
		Country: strings.TrimSpace(country),
	}
	if len(a.Street) < 2 {
		return Address{}, apperr.Validation("street must be at least 2 characters long")
	}
	if len(a.City) < 2 {
		return Address{}, apperr.Validation("city must be at least 2 characters long")
	}
	if a.ZipCode == "" {
		return Address{}, apperr.Validation("zip code is required")
	}
	if len(a.Country) < 2 {
		return Address{}, apperr.Validation("country must be at least 2 characters long")
	}
	return a, nil
}

func (a Address) Equal(other Address) bool {
	return a == other
}

// User is the aggregate root for an onboarded person. It owns its Address
// value object and its event buffer.
type User struct {
	events domain.Recorder

	ID        uuid.UUID
	Name      string
	Email     string
	Address   Address
	AddressID uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatedPayload is the payload carried by a user_created event.
type CreatedPayload struct {
	UserID  string  `json:"user_id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address Address `json:"address"`
}

// ValidateName trims and bounds-checks a user name.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return "", apperr.Validation("name must be at least 2 characters long")
	}
	if len(name) > 100 {
		return "", apperr.Validation("name cannot exceed 100 characters")
	}
	return name, nil
}

// New validates the inputs, builds the aggregate, and records exactly one
// user_created event.
func New(id uuid.UUID, name, email string, addr Address) (*User, error) {
	name, err := ValidateName(name)
	if err != nil {
		return nil, err
	}
	email, err = ParseEmail(email)
	if err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := time.Now().UTC()
	u := &User{
		ID:        id,
		Name:      name,
		Email:     email,
		Address:   addr,
		AddressID: uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	u.events.Record(domain.NewEvent(EventUserCreated, CreatedPayload{
		UserID:  u.ID.String(),
		Name:    u.Name,
		Email:   u.Email,
		Address: u.Address,
	}))
	return u, nil
}

// Reconstitute rebuilds a User from stored state. No events are recorded.
func Reconstitute(id uuid.UUID, name, email string, addr Address, addressID uuid.UUID, createdAt, updatedAt time.Time) *User {
	return &User{
		ID:        id,
		Name:      name,
		Email:     email,
		Address:   addr,
		AddressID: addressID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

func (u *User) UpdateName(name string) error {
	name, err := ValidateName(name)
	if err != nil {
		return err
	}
	u.Name = name
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) UpdateEmail(email string) error {
	email, err := ParseEmail(email)
	if err != nil {
		return err
	}
	u.Email = email
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) UpdateAddress(addr Address) {
	u.Address = addr
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) PullEvents() []domain.Event { return u.events.PullEvents() }

func (u *User) UncommittedEvents() []domain.Event { return u.events.Uncommitted() }

func (u *User) MarkEventsCommitted() { u.events.MarkCommitted() }
