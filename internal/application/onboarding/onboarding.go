package onboarding

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/onboarding-backend/internal/cqrs"
	"github.com/yungbote/onboarding-backend/internal/domain"
	"github.com/yungbote/onboarding-backend/internal/pkg/logger"
	"github.com/yungbote/onboarding-backend/internal/services"
	onbwf "github.com/yungbote/onboarding-backend/internal/temporalx/onboarding"
	paywf "github.com/yungbote/onboarding-backend/internal/temporalx/payment"
)

const (
	StartOnboardingSagaName     = "start_onboarding_saga"
	StartOnboardingWorkflowName = "start_onboarding_workflow"
	StartComposedOnboardingName = "start_composed_onboarding_workflow"
	StartPaymentWorkflowName    = "start_payment_workflow"
	GetOnboardingResultName     = "get_onboarding_result"
	GetPaymentResultName        = "get_payment_result"
)

// EventOnboardingInitiated kicks off the in-process saga path.
const EventOnboardingInitiated = "onboarding_initiated"

// InitiatedPayload carries the raw onboarding request into the event bus.
type InitiatedPayload struct {
	User     onbwf.UserInput     `json:"user"`
	Customer onbwf.CustomerInput `json:"customer"`
}

// StartOnboardingSagaCommand publishes onboarding_initiated and returns. The
// saga subscriber does the actual work; its failures never reach the caller.
type StartOnboardingSagaCommand struct {
	Input onbwf.OnboardingInput
}

func (StartOnboardingSagaCommand) RequestName() string { return StartOnboardingSagaName }

// StartOnboardingWorkflowCommand starts the flat activity-only workflow.
type StartOnboardingWorkflowCommand struct {
	Input onbwf.OnboardingInput
}

func (StartOnboardingWorkflowCommand) RequestName() string { return StartOnboardingWorkflowName }

// StartComposedOnboardingCommand starts the parent/child workflow variant.
type StartComposedOnboardingCommand struct {
	Input onbwf.OnboardingInput
}

func (StartComposedOnboardingCommand) RequestName() string { return StartComposedOnboardingName }

// StartPaymentWorkflowCommand starts payment processing for an onboarded pair.
type StartPaymentWorkflowCommand struct {
	Input paywf.Input
}

func (StartPaymentWorkflowCommand) RequestName() string { return StartPaymentWorkflowName }

// GetOnboardingResultQuery blocks until the execution finishes and returns
// its Result value.
type GetOnboardingResultQuery struct {
	WorkflowID string
	RunID      string
}

func (GetOnboardingResultQuery) RequestName() string { return GetOnboardingResultName }

type GetPaymentResultQuery struct {
	WorkflowID string
	RunID      string
}

func (GetPaymentResultQuery) RequestName() string { return GetPaymentResultName }

// WorkflowStarted is returned by every workflow-start command.
type WorkflowStarted struct {
	WorkflowID string `json:"workflow_id"`
	RunID      string `json:"run_id"`
}

type Handlers struct {
	workflows services.WorkflowService
	events    *cqrs.EventBus
	log       *logger.Logger
}

func NewHandlers(workflows services.WorkflowService, events *cqrs.EventBus, baseLog *logger.Logger) *Handlers {
	return &Handlers{
		workflows: workflows,
		events:    events,
		log:       baseLog.With("handlers", "onboarding"),
	}
}

func (h *Handlers) Register(bus *cqrs.Bus) error {
	if err := bus.Register(StartOnboardingSagaName, cqrs.HandlerFunc(h.handleStartSaga)); err != nil {
		return err
	}
	if err := bus.Register(StartOnboardingWorkflowName, cqrs.HandlerFunc(h.handleStartWorkflow)); err != nil {
		return err
	}
	if err := bus.Register(StartComposedOnboardingName, cqrs.HandlerFunc(h.handleStartComposed)); err != nil {
		return err
	}
	if err := bus.Register(StartPaymentWorkflowName, cqrs.HandlerFunc(h.handleStartPayment)); err != nil {
		return err
	}
	if err := bus.Register(GetOnboardingResultName, cqrs.HandlerFunc(h.handleGetResult)); err != nil {
		return err
	}
	return bus.Register(GetPaymentResultName, cqrs.HandlerFunc(h.handleGetPaymentResult))
}

func (h *Handlers) handleStartSaga(ctx context.Context, req cqrs.Request) (interface{}, error) {
	cmd, ok := req.(StartOnboardingSagaCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, StartOnboardingSagaName)
	}
	ev := domain.NewEvent(EventOnboardingInitiated, InitiatedPayload{
		User:     cmd.Input.User,
		Customer: cmd.Input.Customer,
	})
	if err := h.events.Publish(ctx, ev); err != nil {
		return nil, err
	}
	h.log.Info("Onboarding saga initiated", "event_id", ev.ID)
	return ev.ID, nil
}

func (h *Handlers) handleStartWorkflow(ctx context.Context, req cqrs.Request) (interface{}, error) {
	cmd, ok := req.(StartOnboardingWorkflowCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, StartOnboardingWorkflowName)
	}
	started, err := h.start(ctx, onbwf.WorkflowProcessOnboarding, newWorkflowID("onboarding"), cmd.Input)
	if err != nil {
		return nil, err
	}
	return started, nil
}

func (h *Handlers) handleStartComposed(ctx context.Context, req cqrs.Request) (interface{}, error) {
	cmd, ok := req.(StartComposedOnboardingCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, StartComposedOnboardingName)
	}
	started, err := h.start(ctx, onbwf.WorkflowOnboardingComposed, newWorkflowID("onboarding-composed"), cmd.Input)
	if err != nil {
		return nil, err
	}
	return started, nil
}

func (h *Handlers) handleStartPayment(ctx context.Context, req cqrs.Request) (interface{}, error) {
	cmd, ok := req.(StartPaymentWorkflowCommand)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, StartPaymentWorkflowName)
	}
	started, err := h.start(ctx, paywf.WorkflowProcessPayment, newWorkflowID("payment"), cmd.Input)
	if err != nil {
		return nil, err
	}
	return started, nil
}

func (h *Handlers) start(ctx context.Context, workflowName, workflowID string, arg interface{}) (WorkflowStarted, error) {
	runID, err := h.workflows.StartWorkflow(ctx, workflowName, services.StartOptions{
		WorkflowID: workflowID,
		Args:       []interface{}{arg},
	})
	if err != nil {
		return WorkflowStarted{}, err
	}
	return WorkflowStarted{WorkflowID: workflowID, RunID: runID}, nil
}

func (h *Handlers) handleGetResult(ctx context.Context, req cqrs.Request) (interface{}, error) {
	q, ok := req.(GetOnboardingResultQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, GetOnboardingResultName)
	}
	var res onbwf.Result
	if err := h.workflows.ResultInto(ctx, q.WorkflowID, q.RunID, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func (h *Handlers) handleGetPaymentResult(ctx context.Context, req cqrs.Request) (interface{}, error) {
	q, ok := req.(GetPaymentResultQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected request type %T for %s", req, GetPaymentResultName)
	}
	var res paywf.Result
	if err := h.workflows.ResultInto(ctx, q.WorkflowID, q.RunID, &res); err != nil {
		return nil, err
	}
	return res, nil
}

func newWorkflowID(prefix string) string {
	return fmt.Sprintf("%s-%s-%d", prefix, uuid.NewString(), time.Now().UnixMilli())
}
