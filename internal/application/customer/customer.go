package customer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/onboarding-backend/internal/cqrs"
	"github.com/yungbote/onboarding-backend/internal/data/repos/customer"
	"github.com/yungbote/onboarding-backend/internal/data/repos/user"
	"github.com/yungbote/onboarding-backend/internal/data/uow"
	customerdomain "github.com/yungbote/onboarding-backend/internal/domain/customer"
	"github.com/yungbote/onboarding-backend/internal/pkg/apperr"
	"github.com/yungbote/onboarding-backend/internal/pkg/dbctx"
	"github.com/yungbote/onboarding-backend/internal/pkg/logger"
)

const (
	CreateCustomerName     = "create_customer"
	GetCustomerName        = "get_customer"
	GetCustomersByUserName = "get_customers_by_user"
	ListCustomersName      = "list_customers"
)

// CreateCustomerCommand creates a Customer owned by an existing user.
type CreateCustomerCommand struct {
	CustomerID uuid.UUID
	Name       string
	Phone      string
	UserID     uuid.UUID
}

func (CreateCustomerCommand) RequestName() string { return CreateCustomerName }

type GetCustomerQuery struct {
	CustomerID uuid.UUID
}

func (GetCustomerQuery) RequestName() string { return GetCustomerName }

type GetCustomersByUserQuery struct {
	UserID uuid.UUID
}

func (GetCustomersByUserQuery) RequestName() string { return GetCustomersByUserName }

type ListCustomersQuery struct{}

func (ListCustomersQuery) RequestName() string { return ListCustomersName }

type Handlers struct {
	uow       uow.UnitOfWork
	customers customer.CustomerRepo
	users     user.UserRepo
	events    *cqrs.EventBus
	log       *logger.Logger
}

func NewHandlers(u uow.UnitOfWork, customers customer.CustomerRepo, users user.UserRepo, events *cqrs.EventBus, baseLog *logger.Logger) *Handlers {
	return &Handlers{
		uow:       u,
		customers: customers,
		users:     users,
		events:    events,
		log:       baseLog.With("handlers", "customer"),
	}
}

func (h *Handlers) Register(bus *cqrs.Bus) error {
	if err := bus.Register(CreateCustomerName, cqrs.HandlerFunc(h.handleCreate)); err != nil {
		return err
	}
	if err := bus.Register(GetCustomerName, cqrs.HandlerFunc(h.handleGet)); err != nil {
		return err
	}
	if err := bus.Register(GetCustomersByUserName, cqrs.HandlerFunc(h.handleGetByUser)); err != nil {
		return err
	}
	return bus.Register(ListCustomersName, cqrs.HandlerFunc(h.handleList))
}

func (h *Handlers) handleCreate(ctx context.Context, req cqrs.Request) (interface{}, error) {
	cmd, ok := req.(CreateCustomerCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, CreateCustomerName)
	}

	var created *customerdomain.Customer
	err := h.uow.Execute(ctx, func(dbc dbctx.Context) error {
		if cmd.CustomerID != uuid.Nil {
			existing, err := h.customers.GetByID(dbc, cmd.CustomerID)
			if err != nil {
				return err
			}
			if existing != nil {
				created = existing
				return nil
			}
		}
		owner, err := h.users.GetByID(dbc, cmd.UserID)
		if err != nil {
			return err
		}
		if owner == nil {
			return apperr.NotFound("user %s", cmd.UserID)
		}
		c, err := customerdomain.New(cmd.CustomerID, cmd.Name, cmd.Phone, cmd.UserID)
		if err != nil {
			return err
		}
		if err := h.customers.Save(dbc, c); err != nil {
			return err
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := h.events.PublishAll(ctx, created.PullEvents()); err != nil {
		return nil, err
	}
	h.log.Info("Customer created", "customer_id", created.ID, "user_id", created.UserID)
	return created, nil
}

func (h *Handlers) handleGet(ctx context.Context, req cqrs.Request) (interface{}, error) {
	q, ok := req.(GetCustomerQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, GetCustomerName)
	}
	c, err := h.customers.GetByID(dbctx.Context{Ctx: ctx}, q.CustomerID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("customer %s", q.CustomerID)
	}
	return c, nil
}

func (h *Handlers) handleGetByUser(ctx context.Context, req cqrs.Request) (interface{}, error) {
	q, ok := req.(GetCustomersByUserQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, GetCustomersByUserName)
	}
	customers, err := h.customers.GetByUserID(dbctx.Context{Ctx: ctx}, q.UserID)
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (h *Handlers) handleList(ctx context.Context, req cqrs.Request) (interface{}, error) {
	if _, ok := req.(ListCustomersQuery); !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, ListCustomersName)
	}
	customers, err := h.customers.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, err
	}
	return customers, nil
}
