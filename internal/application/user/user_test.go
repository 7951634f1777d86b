package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/onboarding-backend/internal/cqrs"
	"github.com/yungbote/onboarding-backend/internal/data/repos/testutil"
	userrepo "github.com/yungbote/onboarding-backend/internal/data/repos/user"
	"github.com/yungbote/onboarding-backend/internal/data/uow"
	"github.com/yungbote/onboarding-backend/internal/domain"
	userdomain "github.com/yungbote/onboarding-backend/internal/domain/user"
	"github.com/yungbote/onboarding-backend/internal/pkg/apperr"
)

func setup(t *testing.T) (*cqrs.Bus, *cqrs.EventBus, *[]domain.Event) {
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

	h := NewHandlers(uow.New(db), userrepo.NewUserRepo(db, log), events, log)
	if err := h.Register(bus); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return bus, events, &published
}

func createCmd(email string) CreateUserCommand {
	return CreateUserCommand{
		Name:    "Alice",
		Email:   email,
		Street:  "123 Main St",
		City:    "Springfield",
		ZipCode: "62704",
		Country: "US",
	}
}

func TestCreateUserPublishesEventAfterCommit(t *testing.T) {
	bus, _, published := setup(t)
	ctx := context.Background()

	res, err := bus.Execute(ctx, createCmd("create-handler@example.com"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	u, ok := res.(*userdomain.User)
	if !ok {
		t.Fatalf("unexpected result type %T", res)
	}
	if u.Email != "create-handler@example.com" {
		t.Fatalf("unexpected email %q", u.Email)
	}

	if len(*published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(*published))
	}
	if (*published)[0].Name != userdomain.EventUserCreated {
		t.Fatalf("unexpected event %q", (*published)[0].Name)
	}
}

func TestCreateUserDuplicateEmailConflicts(t *testing.T) {
	bus, _, published := setup(t)
	ctx := context.Background()

	if _, err := bus.Execute(ctx, createCmd("duplicate@example.com")); err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	before := len(*published)

	_, err := bus.Execute(ctx, createCmd("duplicate@example.com"))
	if !apperr.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if len(*published) != before {
		t.Fatal("conflicting create must not publish events")
	}
}

func TestCreateUserValidationFailsBeforeAnyWrite(t *testing.T) {
	bus, _, published := setup(t)
	ctx := context.Background()

	cmd := createCmd("bad-street@example.com")
	cmd.Street = "1"
	if _, err := bus.Execute(ctx, cmd); !apperr.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(*published) != 0 {
		t.Fatal("failed create must not publish events")
	}

	if _, err := bus.Execute(ctx, GetUserByEmailQuery{Email: "bad-street@example.com"}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found after failed create, got %v", err)
	}
}

func TestGetUserMissReturnsNotFound(t *testing.T) {
	bus, _, _ := setup(t)
	_, err := bus.Execute(context.Background(), GetUserQuery{UserID: uuid.New()})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
