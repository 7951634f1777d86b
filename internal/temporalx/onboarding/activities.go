package onboarding

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"

	appcustomer "github.com/yungbote/onboarding-backend/internal/application/customer"
	appuser "github.com/yungbote/onboarding-backend/internal/application/user"
	"github.com/yungbote/onboarding-backend/internal/cqrs"
	"github.com/yungbote/onboarding-backend/internal/domain"
	customerdomain "github.com/yungbote/onboarding-backend/internal/domain/customer"
	userdomain "github.com/yungbote/onboarding-backend/internal/domain/user"
	"github.com/yungbote/onboarding-backend/internal/pkg/apperr"
	"github.com/yungbote/onboarding-backend/internal/pkg/logger"
)

const EventOnboardingCompleted = "onboarding_completed"

type CompletedPayload struct {
	UserID     string `json:"user_id"`
	CustomerID string `json:"customer_id"`
}

// Activities holds the worker-side dependencies for onboarding. Writes go
// through the command bus so the activity path and the API path share the
// same handlers.
type Activities struct {
	Bus    *cqrs.Bus
	Events *cqrs.EventBus
	Log    *logger.Logger
}

func NewActivities(bus *cqrs.Bus, events *cqrs.EventBus, baseLog *logger.Logger) *Activities {
	return &Activities{
		Bus:    bus,
		Events: events,
		Log:    baseLog.With("activities", "onboarding"),
	}
}

// ValidateOnboardingData checks the full input up front without writing
// anything. Shape failures come back non-retryable so the workflow fails fast
// instead of burning retries on input that can never pass.
func (a *Activities) ValidateOnboardingData(ctx context.Context, in OnboardingInput) error {
	if _, err := userdomain.ValidateName(in.User.Name); err != nil {
		return classify(err)
	}
	if _, err := userdomain.ParseEmail(in.User.Email); err != nil {
		return classify(err)
	}
	if _, err := userdomain.ParseAddress(in.User.Address.Street, in.User.Address.City, in.User.Address.ZipCode, in.User.Address.Country); err != nil {
		return classify(err)
	}
	customerName, err := customerdomain.ValidateName(in.Customer.Name)
	if err != nil {
		return classify(err)
	}
	if len(customerName) < 2 {
		return classify(apperr.Validation("customer name must be at least 2 characters long"))
	}
	if _, err := customerdomain.ParsePhone(in.Customer.Phone); err != nil {
		return classify(err)
	}
	return nil
}

func (a *Activities) CreateUserActivity(ctx context.Context, in UserInput) (CreateUserActivityResult, error) {
	cmd := appuser.CreateUserCommand{
		Name:    in.Name,
		Email:   in.Email,
		Street:  in.Address.Street,
		City:    in.Address.City,
		ZipCode: in.Address.ZipCode,
		Country: in.Address.Country,
	}
	if in.UserID != "" {
		userID, err := uuid.Parse(in.UserID)
		if err != nil {
			return CreateUserActivityResult{}, classify(apperr.Validation("invalid user id %q", in.UserID))
		}
		cmd.UserID = userID
	}
	res, err := a.Bus.Execute(ctx, cmd)
	if err != nil {
		return CreateUserActivityResult{}, classify(err)
	}
	u, ok := res.(*userdomain.User)
	if !ok {
		return CreateUserActivityResult{}, fmt.Errorf("unexpected result type %T from %s", res, appuser.CreateUserName)
	}
	a.Log.Info("Onboarding created user", "user_id", u.ID)
	return CreateUserActivityResult{UserID: u.ID.String()}, nil
}

type CreateCustomerActivityInput struct {
	Customer   CustomerInput `json:"customer"`
	CustomerID string        `json:"customer_id,omitempty"`
	UserID     string        `json:"user_id"`
}

func (a *Activities) CreateCustomerActivity(ctx context.Context, in CreateCustomerActivityInput) (CreateCustomerActivityResult, error) {
	userID, err := uuid.Parse(in.UserID)
	if err != nil {
		return CreateCustomerActivityResult{}, classify(apperr.Validation("invalid user id %q", in.UserID))
	}
	cmd := appcustomer.CreateCustomerCommand{
		Name:   in.Customer.Name,
		Phone:  in.Customer.Phone,
		UserID: userID,
	}
	if in.CustomerID != "" {
		customerID, err := uuid.Parse(in.CustomerID)
		if err != nil {
			return CreateCustomerActivityResult{}, classify(apperr.Validation("invalid customer id %q", in.CustomerID))
		}
		cmd.CustomerID = customerID
	}
	res, err := a.Bus.Execute(ctx, cmd)
	if err != nil {
		return CreateCustomerActivityResult{}, classify(err)
	}
	c, ok := res.(*customerdomain.Customer)
	if !ok {
		return CreateCustomerActivityResult{}, fmt.Errorf("unexpected result type %T from %s", res, appcustomer.CreateCustomerName)
	}
	a.Log.Info("Onboarding created customer", "customer_id", c.ID, "user_id", c.UserID)
	return CreateCustomerActivityResult{CustomerID: c.ID.String()}, nil
}

// NotifyOnboardingCompleted publishes the completion event. Downstream
// subscribers (audit log included) hang off the event bus.
func (a *Activities) NotifyOnboardingCompleted(ctx context.Context, in NotifyInput) error {
	ev := domain.NewEvent(EventOnboardingCompleted, CompletedPayload{
		UserID:     in.UserID,
		CustomerID: in.CustomerID,
	})
	if err := a.Events.Publish(ctx, ev); err != nil {
		return err
	}
	a.Log.Info("Onboarding completed", "user_id", in.UserID, "customer_id", in.CustomerID)
	return nil
}

// classify converts terminal domain failures into non-retryable application
// errors. Everything else passes through and stays retryable.
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
