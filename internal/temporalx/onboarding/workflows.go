package onboarding

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

func defaultActivityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				"ValidationError",
				"ConflictError",
				"StateTransitionError",
			},
		},
	}
}

// CreateUserWorkflow creates a single user. Business failures come back in
// the Result value; the workflow error stays nil so history shows a normal
// completion either way.
func CreateUserWorkflow(ctx workflow.Context, in UserInput) (Result, error) {
	ctx = workflow.WithActivityOptions(ctx, defaultActivityOptions())
	log := workflow.GetLogger(ctx)

	userID, err := stableID(ctx, in.UserID)
	if err != nil {
		return failed(err), nil
	}
	in.UserID = userID

	var res CreateUserActivityResult
	if err := workflow.ExecuteActivity(ctx, ActivityCreateUser, in).Get(ctx, &res); err != nil {
		log.Error("create user failed", "error", err)
		return failed(err), nil
	}
	return completed(res.UserID, ""), nil
}

// CreateCustomerWorkflow creates a single customer for an existing user.
func CreateCustomerWorkflow(ctx workflow.Context, in CreateCustomerActivityInput) (Result, error) {
	ctx = workflow.WithActivityOptions(ctx, defaultActivityOptions())
	log := workflow.GetLogger(ctx)

	customerID, err := stableID(ctx, in.CustomerID)
	if err != nil {
		return failed(err), nil
	}
	in.CustomerID = customerID

	var res CreateCustomerActivityResult
	if err := workflow.ExecuteActivity(ctx, ActivityCreateCustomer, in).Get(ctx, &res); err != nil {
		log.Error("create customer failed", "error", err)
		return failed(err), nil
	}
	return Result{Status: StatusCompleted, UserID: in.UserID, CustomerID: res.CustomerID}, nil
}

// ProcessOnboardingWorkflow runs the whole onboarding as a flat sequence of
// activities: validate, create user, create customer, notify. The first
// failing step short-circuits into a failed Result.
func ProcessOnboardingWorkflow(ctx workflow.Context, in OnboardingInput) (Result, error) {
	ctx = workflow.WithActivityOptions(ctx, defaultActivityOptions())
	log := workflow.GetLogger(ctx)

	if err := workflow.ExecuteActivity(ctx, ActivityValidateOnboardingData, in).Get(ctx, nil); err != nil {
		log.Error("onboarding validation failed", "error", err)
		return failed(err), nil
	}

	userID, err := stableID(ctx, in.User.UserID)
	if err != nil {
		return failed(err), nil
	}
	in.User.UserID = userID

	var userRes CreateUserActivityResult
	if err := workflow.ExecuteActivity(ctx, ActivityCreateUser, in.User).Get(ctx, &userRes); err != nil {
		log.Error("onboarding create user failed", "error", err)
		return failed(err), nil
	}

	customerID, err := stableID(ctx, "")
	if err != nil {
		return failed(err), nil
	}

	var customerRes CreateCustomerActivityResult
	custIn := CreateCustomerActivityInput{Customer: in.Customer, CustomerID: customerID, UserID: userRes.UserID}
	if err := workflow.ExecuteActivity(ctx, ActivityCreateCustomer, custIn).Get(ctx, &customerRes); err != nil {
		log.Error("onboarding create customer failed", "error", err)
		return failed(err), nil
	}

	notify := NotifyInput{UserID: userRes.UserID, CustomerID: customerRes.CustomerID}
	if err := workflow.ExecuteActivity(ctx, ActivityNotifyOnboardingCompleted, notify).Get(ctx, nil); err != nil {
		log.Error("onboarding notify failed", "error", err)
		return failed(err), nil
	}

	return completed(userRes.UserID, customerRes.CustomerID), nil
}

// stableID keeps the aggregate id fixed across activity retries and replays.
// A caller-supplied id wins; otherwise one draw is recorded in history.
func stableID(ctx workflow.Context, current string) (string, error) {
	if current != "" {
		return current, nil
	}
	var id string
	if err := workflow.SideEffect(ctx, func(workflow.Context) interface{} {
		return uuid.NewString()
	}).Get(&id); err != nil {
		return "", err
	}
	return id, nil
}

// OnboardingComposedWorkflow runs the same onboarding as parent plus child
// workflows. Child workflow IDs derive from the parent's workflow ID, so a
// replayed parent always resolves to the same children.
func OnboardingComposedWorkflow(ctx workflow.Context, in OnboardingInput) (Result, error) {
	ctx = workflow.WithActivityOptions(ctx, defaultActivityOptions())
	log := workflow.GetLogger(ctx)
	parentID := workflow.GetInfo(ctx).WorkflowExecution.ID

	if err := workflow.ExecuteActivity(ctx, ActivityValidateOnboardingData, in).Get(ctx, nil); err != nil {
		log.Error("composed onboarding validation failed", "error", err)
		return failed(err), nil
	}

	userCtx := workflow.WithChildOptions(ctx, workflow.ChildWorkflowOptions{
		WorkflowID: parentID + "-user",
	})
	var userRes Result
	if err := workflow.ExecuteChildWorkflow(userCtx, WorkflowCreateUser, in.User).Get(ctx, &userRes); err != nil {
		log.Error("composed onboarding user child failed", "error", err)
		return failed(err), nil
	}
	if userRes.Status != StatusCompleted {
		return failed(errors.New(userRes.Error)), nil
	}

	customerCtx := workflow.WithChildOptions(ctx, workflow.ChildWorkflowOptions{
		WorkflowID: parentID + "-customer",
	})
	custIn := CreateCustomerActivityInput{Customer: in.Customer, UserID: userRes.UserID}
	var customerRes Result
	if err := workflow.ExecuteChildWorkflow(customerCtx, WorkflowCreateCustomer, custIn).Get(ctx, &customerRes); err != nil {
		log.Error("composed onboarding customer child failed", "error", err)
		return failed(err), nil
	}
	if customerRes.Status != StatusCompleted {
		return failed(errors.New(customerRes.Error)), nil
	}

	notify := NotifyInput{UserID: userRes.UserID, CustomerID: customerRes.CustomerID}
	if err := workflow.ExecuteActivity(ctx, ActivityNotifyOnboardingCompleted, notify).Get(ctx, nil); err != nil {
		log.Error("composed onboarding notify failed", "error", err)
		return failed(err), nil
	}

	return completed(userRes.UserID, customerRes.CustomerID), nil
}
