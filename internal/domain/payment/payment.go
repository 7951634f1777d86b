package payment

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/onboarding-backend/internal/domain"
	"github.com/yungbote/onboarding-backend/internal/pkg/apperr"
)

const (
	EventPaymentCreated   = "payment_created"
	EventPaymentCompleted = "payment_completed"
	EventPaymentFailed    = "payment_failed"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

const MaxAmount = 1_000_000

// Amount is a positive monetary value bounded by MaxAmount.
type Amount struct {
	value float64
}

func ParseAmount(value float64) (Amount, error) {
	if value <= 0 {
		return Amount{}, apperr.Validation("amount must be greater than zero")
	}
	if value > MaxAmount {
		return Amount{}, apperr.Validation("amount cannot exceed 1,000,000")
	}
	return Amount{value: value}, nil
}

func (a Amount) Value() float64 { return a.value }

func (a Amount) Add(other Amount) (Amount, error) {
	return ParseAmount(a.value + other.value)
}

func (a Amount) Equal(other Amount) bool { return a.value == other.value }

// Payment is the aggregate root for a payment between a user and a customer.
// Status only ever moves PENDING -> COMPLETED or PENDING -> FAILED.
type Payment struct {
	events domain.Recorder

	ID         uuid.UUID
	UserID     uuid.UUID
	CustomerID uuid.UUID
	Amount     Amount
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type CreatedPayload struct {
	PaymentID  string  `json:"payment_id"`
	UserID     string  `json:"user_id"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
}

type CompletedPayload struct {
	PaymentID  string  `json:"payment_id"`
	UserID     string  `json:"user_id"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
}

type FailedPayload struct {
	PaymentID string `json:"payment_id"`
	Reason    string `json:"reason,omitempty"`
}

// New validates the inputs, builds a PENDING payment, and records exactly one
// payment_created event.
func New(id uuid.UUID, userID, customerID uuid.UUID, amount Amount) (*Payment, error) {
	if userID == uuid.Nil {
		return nil, apperr.Validation("payment requires a user id")
	}
	if customerID == uuid.Nil {
		return nil, apperr.Validation("payment requires a customer id")
	}
	if amount.value == 0 {
		return nil, apperr.Validation("payment requires a parsed amount")
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	now := time.Now().UTC()
	p := &Payment{
		ID:         id,
		UserID:     userID,
		CustomerID: customerID,
		Amount:     amount,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	p.events.Record(domain.NewEvent(EventPaymentCreated, CreatedPayload{
		PaymentID:  p.ID.String(),
		UserID:     p.UserID.String(),
		CustomerID: p.CustomerID.String(),
		Amount:     p.Amount.Value(),
	}))
	return p, nil
}

// Reconstitute rebuilds a Payment from stored state. No events are recorded.
func Reconstitute(id, userID, customerID uuid.UUID, amount Amount, status Status, createdAt, updatedAt time.Time) *Payment {
	return &Payment{
		ID:         id,
		UserID:     userID,
		CustomerID: customerID,
		Amount:     amount,
		Status:     status,
		CreatedAt:  createdAt,
		UpdatedAt:  updatedAt,
	}
}

// Complete transitions PENDING -> COMPLETED and records a payment_completed
// event. Illegal from any other status; the transition is terminal.
func (p *Payment) Complete() error {
	if p.Status != StatusPending {
		return apperr.StateTransition("only pending payments can be completed (status=%s)", p.Status)
	}
	p.Status = StatusCompleted
	p.UpdatedAt = time.Now().UTC()
	p.events.Record(domain.NewEvent(EventPaymentCompleted, CompletedPayload{
		PaymentID:  p.ID.String(),
		UserID:     p.UserID.String(),
		CustomerID: p.CustomerID.String(),
		Amount:     p.Amount.Value(),
	}))
	return nil
}

// Fail transitions PENDING -> FAILED. Illegal from any other status.
func (p *Payment) Fail(reason string) error {
	if p.Status != StatusPending {
		return apperr.StateTransition("only pending payments can be failed (status=%s)", p.Status)
	}
	p.Status = StatusFailed
	p.UpdatedAt = time.Now().UTC()
	p.events.Record(domain.NewEvent(EventPaymentFailed, FailedPayload{
		PaymentID: p.ID.String(),
		Reason:    reason,
	}))
	return nil
}

func (p *Payment) PullEvents() []domain.Event { return p.events.PullEvents() }

func (p *Payment) UncommittedEvents() []domain.Event { return p.events.Uncommitted() }

func (p *Payment) MarkEventsCommitted() { p.events.MarkCommitted() }
