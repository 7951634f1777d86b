package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"

	appuser "github.com/yungbote/onboarding-backend/internal/application/user"
	"github.com/yungbote/onboarding-backend/internal/cqrs"
	"github.com/yungbote/onboarding-backend/internal/data/repos/testutil"
	userrepo "github.com/yungbote/onboarding-backend/internal/data/repos/user"
	"github.com/yungbote/onboarding-backend/internal/data/uow"
	"github.com/yungbote/onboarding-backend/internal/domain"
)

func newUserActivities(t *testing.T) (*Activities, *[]domain.Event) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	bus := cqrs.NewBus()
	events := cqrs.NewEventBus()
	var published []domain.Event
	events.Subscribe("", cqrs.SubscriberFunc(func(ctx context.Context, ev domain.Event) error {
		published = append(published, ev)
		return nil
	}))

	h := appuser.NewHandlers(uow.New(db), userrepo.NewUserRepo(db, log), events, log)
	if err := h.Register(bus); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return NewActivities(bus, events, log), &published
}

func TestCreateUserActivityRetryReturnsSameUser(t *testing.T) {
	acts, published := newUserActivities(t)
	ctx := context.Background()

	in := UserInput{
		UserID: uuid.NewString(),
		Name:   "Alice",
		Email:  "retry-user@example.com",
		Address: AddressInput{
			Street:  "123 Main St",
			City:    "Springfield",
			ZipCode: "62704",
			Country: "US",
		},
	}

	first, err := acts.CreateUserActivity(ctx, in)
	if err != nil {
		t.Fatalf("first attempt: %v", err)
	}
	second, err := acts.CreateUserActivity(ctx, in)
	if err != nil {
		t.Fatalf("retried attempt must not conflict, got %v", err)
	}
	if first.UserID != in.UserID || second.UserID != in.UserID {
		t.Fatalf("expected the supplied id on both attempts, got %q then %q", first.UserID, second.UserID)
	}
	if len(*published) != 1 {
		t.Fatalf("expected exactly one user_created event across retries, got %d", len(*published))
	}
}

func TestCreateUserActivityDifferentIDSameEmailConflicts(t *testing.T) {
	acts, _ := newUserActivities(t)
	ctx := context.Background()

	in := UserInput{
		UserID: uuid.NewString(),
		Name:   "Bob",
		Email:  "taken-email@example.com",
		Address: AddressInput{
			Street:  "456 Oak Ave",
			City:    "Shelbyville",
			ZipCode: "62565",
			Country: "US",
		},
	}
	if _, err := acts.CreateUserActivity(ctx, in); err != nil {
		t.Fatalf("first attempt: %v", err)
	}

	in.UserID = uuid.NewString()
	_, err := acts.CreateUserActivity(ctx, in)
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected an application error, got %v", err)
	}
	if appErr.Type() != "ConflictError" || !appErr.NonRetryable() {
		t.Fatalf("expected a non-retryable ConflictError, got type=%q nonRetryable=%v", appErr.Type(), appErr.NonRetryable())
	}
}

func TestValidateOnboardingDataRejectsShortCustomerName(t *testing.T) {
	acts := NewActivities(cqrs.NewBus(), cqrs.NewEventBus(), testutil.Logger(t))

	in := validInput()
	in.Customer.Name = "A"

	err := acts.ValidateOnboardingData(context.Background(), in)
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected an application error, got %v", err)
	}
	if appErr.Type() != "ValidationError" || !appErr.NonRetryable() {
		t.Fatalf("expected a non-retryable ValidationError, got type=%q nonRetryable=%v", appErr.Type(), appErr.NonRetryable())
	}
}
