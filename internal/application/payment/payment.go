package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/onboarding-backend/internal/cqrs"
	"github.com/yungbote/onboarding-backend/internal/data/repos/payment"
	"github.com/yungbote/onboarding-backend/internal/data/uow"
	paymentdomain "github.com/yungbote/onboarding-backend/internal/domain/payment"
	"github.com/yungbote/onboarding-backend/internal/pkg/apperr"
	"github.com/yungbote/onboarding-backend/internal/pkg/dbctx"
	"github.com/yungbote/onboarding-backend/internal/pkg/logger"
)

const (
	CreatePaymentName     = "create_payment"
	CompletePaymentName   = "complete_payment"
	FailPaymentName       = "fail_payment"
	GetPaymentName        = "get_payment"
	GetPaymentsByUserName = "get_payments_by_user"
	ListPaymentsName      = "list_payments"
)

// CreatePaymentCommand creates a PENDING payment between a user and customer.
type CreatePaymentCommand struct {
	PaymentID  uuid.UUID
	UserID     uuid.UUID
	CustomerID uuid.UUID
	Amount     float64
}

func (CreatePaymentCommand) RequestName() string { return CreatePaymentName }

// CompletePaymentCommand moves a payment PENDING -> COMPLETED.
type CompletePaymentCommand struct {
	PaymentID uuid.UUID
}

func (CompletePaymentCommand) RequestName() string { return CompletePaymentName }

// FailPaymentCommand moves a payment PENDING -> FAILED.
type FailPaymentCommand struct {
	PaymentID uuid.UUID
	Reason    string
}

func (FailPaymentCommand) RequestName() string { return FailPaymentName }

type GetPaymentQuery struct {
	PaymentID uuid.UUID
}

func (GetPaymentQuery) RequestName() string { return GetPaymentName }

type GetPaymentsByUserQuery struct {
	UserID uuid.UUID
}

func (GetPaymentsByUserQuery) RequestName() string { return GetPaymentsByUserName }

type ListPaymentsQuery struct{}

func (ListPaymentsQuery) RequestName() string { return ListPaymentsName }

type Handlers struct {
	uow      uow.UnitOfWork
	payments payment.PaymentRepo
	events   *cqrs.EventBus
	log      *logger.Logger
}

func NewHandlers(u uow.UnitOfWork, payments payment.PaymentRepo, events *cqrs.EventBus, baseLog *logger.Logger) *Handlers {
	return &Handlers{
		uow:      u,
		payments: payments,
		events:   events,
		log:      baseLog.With("handlers", "payment"),
	}
}

func (h *Handlers) Register(bus *cqrs.Bus) error {
	if err := bus.Register(CreatePaymentName, cqrs.HandlerFunc(h.handleCreate)); err != nil {
		return err
	}
	if err := bus.Register(CompletePaymentName, cqrs.HandlerFunc(h.handleComplete)); err != nil {
		return err
	}
	if err := bus.Register(FailPaymentName, cqrs.HandlerFunc(h.handleFail)); err != nil {
		return err
	}
	if err := bus.Register(GetPaymentName, cqrs.HandlerFunc(h.handleGet)); err != nil {
		return err
	}
	if err := bus.Register(GetPaymentsByUserName, cqrs.HandlerFunc(h.handleGetByUser)); err != nil {
		return err
	}
	return bus.Register(ListPaymentsName, cqrs.HandlerFunc(h.handleList))
}

func (h *Handlers) handleCreate(ctx context.Context, req cqrs.Request) (interface{}, error) {
	cmd, ok := req.(CreatePaymentCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, CreatePaymentName)
	}

	amount, err := paymentdomain.ParseAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}

	var created *paymentdomain.Payment
	err = h.uow.Execute(ctx, func(dbc dbctx.Context) error {
		if cmd.PaymentID != uuid.Nil {
			existing, err := h.payments.GetByID(dbc, cmd.PaymentID)
			if err != nil {
				return err
			}
			if existing != nil {
				created = existing
				return nil
			}
		}
		p, err := paymentdomain.New(cmd.PaymentID, cmd.UserID, cmd.CustomerID, amount)
		if err != nil {
			return err
		}
		if err := h.payments.Save(dbc, p); err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := h.events.PublishAll(ctx, created.PullEvents()); err != nil {
		return nil, err
	}
	h.log.Info("Payment created", "payment_id", created.ID, "amount", created.Amount.Value())
	return created, nil
}

func (h *Handlers) handleComplete(ctx context.Context, req cqrs.Request) (interface{}, error) {
	cmd, ok := req.(CompletePaymentCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, CompletePaymentName)
	}
	p, err := h.transition(ctx, cmd.PaymentID, func(p *paymentdomain.Payment) error {
		return p.Complete()
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (h *Handlers) handleFail(ctx context.Context, req cqrs.Request) (interface{}, error) {
	cmd, ok := req.(FailPaymentCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, FailPaymentName)
	}
	p, err := h.transition(ctx, cmd.PaymentID, func(p *paymentdomain.Payment) error {
		return p.Fail(cmd.Reason)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// transition loads the payment, applies the status change, and saves it inside
// one unit of work. Events go out only after the transaction commits.
func (h *Handlers) transition(ctx context.Context, id uuid.UUID, apply func(*paymentdomain.Payment) error) (*paymentdomain.Payment, error) {
	var updated *paymentdomain.Payment
	err := h.uow.Execute(ctx, func(dbc dbctx.Context) error {
		p, err := h.payments.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if p == nil {
			return apperr.NotFound("payment %s", id)
		}
		if err := apply(p); err != nil {
			return err
		}
		if err := h.payments.Save(dbc, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := h.events.PublishAll(ctx, updated.PullEvents()); err != nil {
		return nil, err
	}
	h.log.Info("Payment transitioned", "payment_id", updated.ID, "status", updated.Status)
	return updated, nil
}

func (h *Handlers) handleGet(ctx context.Context, req cqrs.Request) (interface{}, error) {
	q, ok := req.(GetPaymentQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, GetPaymentName)
	}
	p, err := h.payments.GetByID(dbctx.Context{Ctx: ctx}, q.PaymentID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("payment %s", q.PaymentID)
	}
	return p, nil
}

func (h *Handlers) handleGetByUser(ctx context.Context, req cqrs.Request) (interface{}, error) {
	q, ok := req.(GetPaymentsByUserQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, GetPaymentsByUserName)
	}
	payments, err := h.payments.GetByUserID(dbctx.Context{Ctx: ctx}, q.UserID)
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (h *Handlers) handleList(ctx context.Context, req cqrs.Request) (interface{}, error) {
	if _, ok := req.(ListPaymentsQuery); !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, ListPaymentsName)
	}
	payments, err := h.payments.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, err
	}
	return payments, nil
}
