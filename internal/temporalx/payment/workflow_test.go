package payment

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"
)

type stubBehavior struct {
	validateErr error
	createErr   error
	completeErr error

	createInput Input
	failCalled  bool
	failInput   FailPaymentActivityInput
	notified    bool
}

func validInput() Input {
	return Input{
		UserID:     "a6a0b6d2-5a4b-4b6e-9d3e-0c7a0b6d25a4",
		CustomerID: "b7b1c7e3-6b5c-5c7f-ae4f-1d8b1c7e36b5",
		Amount:     250,
	}
}

func newEnv(t *testing.T, b *stubBehavior) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()

	env.RegisterWorkflowWithOptions(ProcessPaymentWorkflow, workflow.RegisterOptions{Name: WorkflowProcessPayment})

	env.RegisterActivityWithOptions(func(ctx context.Context, in Input) error {
		return b.validateErr
	}, activity.RegisterOptions{Name: ActivityValidatePaymentData})

	env.RegisterActivityWithOptions(func(ctx context.Context, in Input) (CreatePaymentActivityResult, error) {
		b.createInput = in
		if b.createErr != nil {
			return CreatePaymentActivityResult{}, b.createErr
		}
		return CreatePaymentActivityResult{PaymentID: "payment-1"}, nil
	}, activity.RegisterOptions{Name: ActivityCreatePayment})

	env.RegisterActivityWithOptions(func(ctx context.Context, paymentID string) error {
		return b.completeErr
	}, activity.RegisterOptions{Name: ActivityCompletePayment})

	env.RegisterActivityWithOptions(func(ctx context.Context, in FailPaymentActivityInput) error {
		b.failCalled = true
		b.failInput = in
		return nil
	}, activity.RegisterOptions{Name: ActivityFailPayment})

	env.RegisterActivityWithOptions(func(ctx context.Context, in NotifyInput) error {
		b.notified = true
		return nil
	}, activity.RegisterOptions{Name: ActivityNotifyPaymentProcessed})

	return env
}

func TestProcessPaymentWorkflowCompletes(t *testing.T) {
	b := &stubBehavior{}
	env := newEnv(t, b)

	env.ExecuteWorkflow(WorkflowProcessPayment, validInput())
	if !env.IsWorkflowCompleted() {
		t.Fatal("workflow did not complete")
	}
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("workflow error: %v", err)
	}

	var res Result
	if err := env.GetWorkflowResult(&res); err != nil {
		t.Fatalf("GetWorkflowResult: %v", err)
	}
	if res.Status != StatusCompleted || res.PaymentID != "payment-1" {
		t.Fatalf("unexpected result %+v", res)
	}
	if !b.notified {
		t.Fatal("expected notify activity to run")
	}
	if b.failCalled {
		t.Fatal("fail-mark must not run on the happy path")
	}
}

func TestProcessPaymentWorkflowSuppliesStablePaymentID(t *testing.T) {
	b := &stubBehavior{}
	env := newEnv(t, b)

	env.ExecuteWorkflow(WorkflowProcessPayment, validInput())
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("workflow error: %v", err)
	}
	if _, err := uuid.Parse(b.createInput.PaymentID); err != nil {
		t.Fatalf("create activity must receive a stable payment id, got %q", b.createInput.PaymentID)
	}
}

func TestProcessPaymentWorkflowValidationFailureIsData(t *testing.T) {
	b := &stubBehavior{
		validateErr: temporal.NewNonRetryableApplicationError("amount cannot exceed 1,000,000", "ValidationError", nil),
	}
	env := newEnv(t, b)

	env.ExecuteWorkflow(WorkflowProcessPayment, validInput())
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("business failure must not fail the workflow, got %v", err)
	}

	var res Result
	if err := env.GetWorkflowResult(&res); err != nil {
		t.Fatalf("GetWorkflowResult: %v", err)
	}
	if res.Status != StatusFailed || res.PaymentID != "" {
		t.Fatalf("expected failed result with no payment id, got %+v", res)
	}
	if b.failCalled || b.notified {
		t.Fatal("no downstream activity may run after validation fails")
	}
}

func TestProcessPaymentWorkflowMarksFailedWhenCompleteFails(t *testing.T) {
	b := &stubBehavior{
		completeErr: temporal.NewNonRetryableApplicationError("only pending payments can be completed (status=FAILED)", "StateTransitionError", nil),
	}
	env := newEnv(t, b)

	env.ExecuteWorkflow(WorkflowProcessPayment, validInput())
	if err := env.GetWorkflowError(); err != nil {
		t.Fatalf("business failure must not fail the workflow, got %v", err)
	}

	var res Result
	if err := env.GetWorkflowResult(&res); err != nil {
		t.Fatalf("GetWorkflowResult: %v", err)
	}
	if res.Status != StatusFailed {
		t.Fatalf("expected failed result, got %+v", res)
	}
	if res.PaymentID != "payment-1" {
		t.Fatalf("failed result should still carry the payment id, got %+v", res)
	}
	if !b.failCalled {
		t.Fatal("expected the fail-mark activity to run")
	}
	if b.failInput.PaymentID != "payment-1" || !strings.Contains(b.failInput.Reason, "only pending payments") {
		t.Fatalf("unexpected fail-mark input %+v", b.failInput)
	}
	if b.notified {
		t.Fatal("notify must not run after completion fails")
	}
}
