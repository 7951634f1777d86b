package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/onboarding-backend/internal/cqrs"
	"github.com/yungbote/onboarding-backend/internal/data/repos/user"
	"github.com/yungbote/onboarding-backend/internal/data/uow"
	userdomain "github.com/yungbote/onboarding-backend/internal/domain/user"
	"github.com/yungbote/onboarding-backend/internal/pkg/apperr"
	"github.com/yungbote/onboarding-backend/internal/pkg/dbctx"
	"github.com/yungbote/onboarding-backend/internal/pkg/logger"
)

const (
	CreateUserName     = "create_user"
	GetUserName        = "get_user"
	GetUserByEmailName = "get_user_by_email"
	ListUsersName      = "list_users"
)

// CreateUserCommand creates a User aggregate together with its address.
// UserID is optional; a zero value lets the aggregate assign one.
type CreateUserCommand struct {
	UserID  uuid.UUID
	Name    string
	Email   string
	Street  string
	City    string
	ZipCode string
	Country string
}

func (CreateUserCommand) RequestName() string { return CreateUserName }

type GetUserQuery struct {
	UserID uuid.UUID
}

func (GetUserQuery) RequestName() string { return GetUserName }

type GetUserByEmailQuery struct {
	Email string
}

func (GetUserByEmailQuery) RequestName() string { return GetUserByEmailName }

type ListUsersQuery struct{}

func (ListUsersQuery) RequestName() string { return ListUsersName }

type Handlers struct {
	uow    uow.UnitOfWork
	users  user.UserRepo
	events *cqrs.EventBus
	log    *logger.Logger
}

func NewHandlers(u uow.UnitOfWork, users user.UserRepo, events *cqrs.EventBus, baseLog *logger.Logger) *Handlers {
	return &Handlers{
		uow:    u,
		users:  users,
		events: events,
		log:    baseLog.With("handlers", "user"),
	}
}

// Register wires the user commands and queries into the bus. Duplicate
// registration surfaces as an error at startup.
func (h *Handlers) Register(bus *cqrs.Bus) error {
	if err := bus.Register(CreateUserName, cqrs.HandlerFunc(h.handleCreate)); err != nil {
		return err
	}
	if err := bus.Register(GetUserName, cqrs.HandlerFunc(h.handleGet)); err != nil {
		return err
	}
	if err := bus.Register(GetUserByEmailName, cqrs.HandlerFunc(h.handleGetByEmail)); err != nil {
		return err
	}
	return bus.Register(ListUsersName, cqrs.HandlerFunc(h.handleList))
}

func (h *Handlers) handleCreate(ctx context.Context, req cqrs.Request) (interface{}, error) {
	cmd, ok := req.(CreateUserCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, CreateUserName)
	}

	addr, err := userdomain.ParseAddress(cmd.Street, cmd.City, cmd.ZipCode, cmd.Country)
	if err != nil {
		return nil, err
	}
	email, err := userdomain.ParseEmail(cmd.Email)
	if err != nil {
		return nil, err
	}

	var created *userdomain.User
	err = h.uow.Execute(ctx, func(dbc dbctx.Context) error {
		existing, err := h.users.GetByEmail(dbc, email)
		if err != nil {
			return err
		}
		if existing != nil {
			// A retried create arrives with the id it already committed
			// under. Hand back the stored aggregate instead of conflicting.
			if cmd.UserID != uuid.Nil && existing.ID == cmd.UserID {
				created = existing
				return nil
			}
			return apperr.Conflict("user with email %s already exists", email)
		}
		u, err := userdomain.New(cmd.UserID, cmd.Name, email, addr)
		if err != nil {
			return err
		}
		if err := h.users.Save(dbc, u); err != nil {
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := h.events.PublishAll(ctx, created.PullEvents()); err != nil {
		return nil, err
	}
	h.log.Info("User created", "user_id", created.ID, "email", created.Email)
	return created, nil
}

func (h *Handlers) handleGet(ctx context.Context, req cqrs.Request) (interface{}, error) {
	q, ok := req.(GetUserQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, GetUserName)
	}
	u, err := h.users.GetByID(dbctx.Context{Ctx: ctx}, q.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user %s", q.UserID)
	}
	return u, nil
}

func (h *Handlers) handleGetByEmail(ctx context.Context, req cqrs.Request) (interface{}, error) {
	q, ok := req.(GetUserByEmailQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, GetUserByEmailName)
	}
	email, err := userdomain.ParseEmail(q.Email)
	if err != nil {
		return nil, err
	}
	u, err := h.users.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.NotFound("user with email %s", email)
	}
	return u, nil
}

func (h *Handlers) handleList(ctx context.Context, req cqrs.Request) (interface{}, error) {
	if _, ok := req.(ListUsersQuery); !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, ListUsersName)
	}
	users, err := h.users.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, err
	}
	return users, nil
}
