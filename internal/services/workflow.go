package services

import (
	"context"
	"fmt"

	temporalsdkclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/converter"

	"github.com/yungbote/onboarding-backend/internal/pkg/logger"
	"github.com/yungbote/onboarding-backend/internal/temporalx"
)

// WorkflowService is the application-side surface over the Temporal client.
// Command handlers start and control executions through it so that nothing
// above this layer imports the SDK client directly.
type WorkflowService interface {
	StartWorkflow(ctx context.Context, workflowName string, opts StartOptions) (runID string, err error)
	SignalWithStart(ctx context.Context, workflowName string, opts StartOptions, signalName string, signalArg interface{}) (runID string, err error)
	Signal(ctx context.Context, workflowID, runID, signalName string, arg interface{}) error
	Query(ctx context.Context, workflowID, runID, queryType string, args ...interface{}) (converter.EncodedValue, error)
	Cancel(ctx context.Context, workflowID, runID string) error
	Terminate(ctx context.Context, workflowID, runID, reason string) error

	// ResultInto blocks until the execution identified by workflowID completes
	// and decodes its result into out.
	ResultInto(ctx context.Context, workflowID, runID string, out interface{}) error
}

type StartOptions struct {
	WorkflowID string
	TaskQueue  string
	Args       []interface{}
}

type workflowService struct {
	client    temporalsdkclient.Client
	taskQueue string
	log       *logger.Logger
}

func NewWorkflowService(c temporalsdkclient.Client, baseLog *logger.Logger) WorkflowService {
	cfg := temporalx.LoadConfig()
	return &workflowService{
		client:    c,
		taskQueue: cfg.TaskQueue,
		log:       baseLog.With("service", "WorkflowService"),
	}
}

func (ws *workflowService) StartWorkflow(ctx context.Context, workflowName string, opts StartOptions) (string, error) {
	if ws.client == nil {
		return "", fmt.Errorf("temporal client not configured")
	}
	taskQueue := opts.TaskQueue
	if taskQueue == "" {
		taskQueue = ws.taskQueue
	}
	run, err := ws.client.ExecuteWorkflow(ctx, temporalsdkclient.StartWorkflowOptions{
		ID:        opts.WorkflowID,
		TaskQueue: taskQueue,
	}, workflowName, opts.Args...)
	if err != nil {
		return "", fmt.Errorf("start workflow %s: %w", workflowName, err)
	}
	ws.log.Info("Started workflow", "workflow", workflowName, "workflow_id", run.GetID(), "run_id", run.GetRunID())
	return run.GetRunID(), nil
}

func (ws *workflowService) SignalWithStart(ctx context.Context, workflowName string, opts StartOptions, signalName string, signalArg interface{}) (string, error) {
	if ws.client == nil {
		return "", fmt.Errorf("temporal client not configured")
	}
	taskQueue := opts.TaskQueue
	if taskQueue == "" {
		taskQueue = ws.taskQueue
	}
	run, err := ws.client.SignalWithStartWorkflow(ctx, opts.WorkflowID, signalName, signalArg, temporalsdkclient.StartWorkflowOptions{
		ID:        opts.WorkflowID,
		TaskQueue: taskQueue,
	}, workflowName, opts.Args...)
	if err != nil {
		return "", fmt.Errorf("signal-with-start workflow %s: %w", workflowName, err)
	}
	return run.GetRunID(), nil
}

func (ws *workflowService) Signal(ctx context.Context, workflowID, runID, signalName string, arg interface{}) error {
	if ws.client == nil {
		return fmt.Errorf("temporal client not configured")
	}
	return ws.client.SignalWorkflow(ctx, workflowID, runID, signalName, arg)
}

func (ws *workflowService) Query(ctx context.Context, workflowID, runID, queryType string, args ...interface{}) (converter.EncodedValue, error) {
	if ws.client == nil {
		return nil, fmt.Errorf("temporal client not configured")
	}
	return ws.client.QueryWorkflow(ctx, workflowID, runID, queryType, args...)
}

func (ws *workflowService) Cancel(ctx context.Context, workflowID, runID string) error {
	if ws.client == nil {
		return fmt.Errorf("temporal client not configured")
	}
	return ws.client.CancelWorkflow(ctx, workflowID, runID)
}

func (ws *workflowService) Terminate(ctx context.Context, workflowID, runID, reason string) error {
	if ws.client == nil {
		return fmt.Errorf("temporal client not configured")
	}
	return ws.client.TerminateWorkflow(ctx, workflowID, runID, reason)
}

func (ws *workflowService) ResultInto(ctx context.Context, workflowID, runID string, out interface{}) error {
	if ws.client == nil {
		return fmt.Errorf("temporal client not configured")
	}
	return ws.client.GetWorkflow(ctx, workflowID, runID).Get(ctx, out)
}
