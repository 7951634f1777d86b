package payment

import (
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

// ProcessPaymentWorkflow validates the request, creates a PENDING payment,
// completes it, and notifies. A payment that was created but cannot complete
// is marked FAILED best-effort before the failed Result goes back.
func ProcessPaymentWorkflow(ctx workflow.Context, in Input) (Result, error) {
	ctx = workflow.WithActivityOptions(ctx, defaultActivityOptions())
	log := workflow.GetLogger(ctx)

	if err := workflow.ExecuteActivity(ctx, ActivityValidatePaymentData, in).Get(ctx, nil); err != nil {
		log.Error("payment validation failed", "error", err)
		return Result{Status: StatusFailed, Error: err.Error()}, nil
	}

	paymentID, err := stableID(ctx, in.PaymentID)
	if err != nil {
		log.Error("payment id draw failed", "error", err)
		return Result{Status: StatusFailed, Error: err.Error()}, nil
	}
	in.PaymentID = paymentID

	var created CreatePaymentActivityResult
	if err := workflow.ExecuteActivity(ctx, ActivityCreatePayment, in).Get(ctx, &created); err != nil {
		log.Error("payment creation failed", "error", err)
		return Result{Status: StatusFailed, Error: err.Error()}, nil
	}

	if err := workflow.ExecuteActivity(ctx, ActivityCompletePayment, created.PaymentID).Get(ctx, nil); err != nil {
		log.Error("payment completion failed", "error", err, "payment_id", created.PaymentID)
		failIn := FailPaymentActivityInput{PaymentID: created.PaymentID, Reason: err.Error()}
		if failErr := workflow.ExecuteActivity(ctx, ActivityFailPayment, failIn).Get(ctx, nil); failErr != nil {
			log.Error("payment fail-mark failed", "error", failErr, "payment_id", created.PaymentID)
		}
		return Result{Status: StatusFailed, Error: err.Error(), PaymentID: created.PaymentID}, nil
	}

	notify := NotifyInput{PaymentID: created.PaymentID, UserID: in.UserID, Amount: in.Amount}
	if err := workflow.ExecuteActivity(ctx, ActivityNotifyPaymentProcessed, notify).Get(ctx, nil); err != nil {
		log.Error("payment notify failed", "error", err, "payment_id", created.PaymentID)
		return Result{Status: StatusFailed, Error: err.Error(), PaymentID: created.PaymentID}, nil
	}

	return Result{Status: StatusCompleted, PaymentID: created.PaymentID}, nil
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
