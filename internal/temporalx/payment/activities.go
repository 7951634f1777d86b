package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"

	apppayment "github.com/yungbote/onboarding-backend/internal/application/payment"
	"github.com/yungbote/onboarding-backend/internal/cqrs"
	paymentdomain "github.com/yungbote/onboarding-backend/internal/domain/payment"
	"github.com/yungbote/onboarding-backend/internal/pkg/apperr"
	"github.com/yungbote/onboarding-backend/internal/pkg/logger"
)

// Activities carries the worker-side dependencies for payment processing.
type Activities struct {
	Bus *cqrs.Bus
	Log *logger.Logger
}

func NewActivities(bus *cqrs.Bus, baseLog *logger.Logger) *Activities {
	return &Activities{
		Bus: bus,
		Log: baseLog.With("activities", "payment"),
	}
}

// ValidatePaymentData checks ids and amount bounds without writing anything.
func (a *Activities) ValidatePaymentData(ctx context.Context, in Input) error {
	if _, err := uuid.Parse(in.UserID); err != nil {
		return classify(apperr.Validation("invalid user id %q", in.UserID))
	}
	if _, err := uuid.Parse(in.CustomerID); err != nil {
		return classify(apperr.Validation("invalid customer id %q", in.CustomerID))
	}
	if _, err := paymentdomain.ParseAmount(in.Amount); err != nil {
		return classify(err)
	}
	return nil
}

func (a *Activities) CreatePaymentActivity(ctx context.Context, in Input) (CreatePaymentActivityResult, error) {
	userID, err := uuid.Parse(in.UserID)
	if err != nil {
		return CreatePaymentActivityResult{}, classify(apperr.Validation("invalid user id %q", in.UserID))
	}
	customerID, err := uuid.Parse(in.CustomerID)
	if err != nil {
		return CreatePaymentActivityResult{}, classify(apperr.Validation("invalid customer id %q", in.CustomerID))
	}
	cmd := apppayment.CreatePaymentCommand{
		UserID:     userID,
		CustomerID: customerID,
		Amount:     in.Amount,
	}
	if in.PaymentID != "" {
		paymentID, err := uuid.Parse(in.PaymentID)
		if err != nil {
			return CreatePaymentActivityResult{}, classify(apperr.Validation("invalid payment id %q", in.PaymentID))
		}
		cmd.PaymentID = paymentID
	}
	res, err := a.Bus.Execute(ctx, cmd)
	if err != nil {
		return CreatePaymentActivityResult{}, classify(err)
	}
	p, ok := res.(*paymentdomain.Payment)
	if !ok {
		return CreatePaymentActivityResult{}, fmt.Errorf("unexpected result type %T from %s", res, apppayment.CreatePaymentName)
	}
	a.Log.Info("Payment created", "payment_id", p.ID)
	return CreatePaymentActivityResult{PaymentID: p.ID.String()}, nil
}

func (a *Activities) CompletePaymentActivity(ctx context.Context, paymentID string) error {
	id, err := uuid.Parse(paymentID)
	if err != nil {
		return classify(apperr.Validation("invalid payment id %q", paymentID))
	}
	if _, err := a.Bus.Execute(ctx, apppayment.CompletePaymentCommand{PaymentID: id}); err != nil {
		return classify(err)
	}
	return nil
}

func (a *Activities) FailPaymentActivity(ctx context.Context, in FailPaymentActivityInput) error {
	id, err := uuid.Parse(in.PaymentID)
	if err != nil {
		return classify(apperr.Validation("invalid payment id %q", in.PaymentID))
	}
	if _, err := a.Bus.Execute(ctx, apppayment.FailPaymentCommand{PaymentID: id, Reason: in.Reason}); err != nil {
		return classify(err)
	}
	return nil
}

func (a *Activities) NotifyPaymentProcessed(ctx context.Context, in NotifyInput) error {
	a.Log.Info("Payment processed", "payment_id", in.PaymentID, "user_id", in.UserID, "amount", in.Amount)
	return nil
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case apperr.IsValidation(err):
		return temporal.NewNonRetryableApplicationError(err.Error(), "ValidationError", err)
	case apperr.IsConflict(err):
		return temporal.NewNonRetryableApplicationError(err.Error(), "ConflictError", err)
	case apperr.IsStateTransition(err):
		return temporal.NewNonRetryableApplicationError(err.Error(), "StateTransitionError", err)
	}
	return err
}
