package saga

import (
	"context"
	"fmt"

	appcustomer "github.com/yungbote/onboarding-backend/internal/application/customer"
	apponboarding "github.com/yungbote/onboarding-backend/internal/application/onboarding"
	appuser "github.com/yungbote/onboarding-backend/internal/application/user"
	"github.com/yungbote/onboarding-backend/internal/cqrs"
	"github.com/yungbote/onboarding-backend/internal/domain"
	userdomain "github.com/yungbote/onboarding-backend/internal/domain/user"
	"github.com/yungbote/onboarding-backend/internal/pkg/logger"
)

// OnboardingSaga reacts to onboarding_initiated events by creating the user
// and then the customer through the command bus.
//
// Failures are logged and swallowed: the publisher of the trigger event never
// learns whether the saga succeeded. That matches the current event contract,
// where saga outcomes are observable only through the read side. A partial
// run (user created, customer failed) leaves the user in place.
type OnboardingSaga struct {
	bus *cqrs.Bus
	log *logger.Logger
}

func NewOnboardingSaga(bus *cqrs.Bus, baseLog *logger.Logger) *OnboardingSaga {
	return &OnboardingSaga{
		bus: bus,
		log: baseLog.With("saga", "onboarding"),
	}
}

// Subscribe attaches the saga to its trigger event.
func (s *OnboardingSaga) Subscribe(events *cqrs.EventBus) {
	events.Subscribe(apponboarding.EventOnboardingInitiated, cqrs.SubscriberFunc(s.HandleEvent))
}

func (s *OnboardingSaga) HandleEvent(ctx context.Context, ev domain.Event) error {
	payload, ok := ev.Payload.(apponboarding.InitiatedPayload)
	if !ok {
		s.log.Error("Onboarding saga received unexpected payload", "event_id", ev.ID, "payload_type", fmt.Sprintf("%T", ev.Payload))
		return nil
	}

	res, err := s.bus.Execute(ctx, appuser.CreateUserCommand{
		Name:    payload.User.Name,
		Email:   payload.User.Email,
		Street:  payload.User.Address.Street,
		City:    payload.User.Address.City,
		ZipCode: payload.User.Address.ZipCode,
		Country: payload.User.Address.Country,
	})
	if err != nil {
		s.log.Error("Onboarding saga failed to create user", "event_id", ev.ID, "error", err)
		return nil
	}
	u, ok := res.(*userdomain.User)
	if !ok {
		s.log.Error("Onboarding saga received unexpected result", "event_id", ev.ID, "result_type", fmt.Sprintf("%T", res))
		return nil
	}

	if _, err := s.bus.Execute(ctx, appcustomer.CreateCustomerCommand{
		Name:   payload.Customer.Name,
		Phone:  payload.Customer.Phone,
		UserID: u.ID,
	}); err != nil {
		s.log.Error("Onboarding saga failed to create customer", "event_id", ev.ID, "user_id", u.ID, "error", err)
		return nil
	}

	s.log.Info("Onboarding saga completed", "event_id", ev.ID, "user_id", u.ID)
	return nil
}
