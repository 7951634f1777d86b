package temporalworker

import (
	"fmt"

	"go.temporal.io/sdk/activity"
	temporalsdkclient "go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/yungbote/onboarding-backend/internal/pkg/logger"
	"github.com/yungbote/onboarding-backend/internal/temporalx/onboarding"
	"github.com/yungbote/onboarding-backend/internal/temporalx/payment"
)

// Runner owns the Temporal worker for the onboarding task queue. All
// registrations use the stable names from the workflow packages.
type Runner struct {
	worker    worker.Worker
	taskQueue string
	log       *logger.Logger
}

func NewRunner(
	c temporalsdkclient.Client,
	taskQueue string,
	onboardingActs *onboarding.Activities,
	paymentActs *payment.Activities,
	baseLog *logger.Logger,
) (*Runner, error) {
	if c == nil {
		return nil, fmt.Errorf("temporal client is required")
	}
	if taskQueue == "" {
		return nil, fmt.Errorf("task queue is required")
	}

	w := worker.New(c, taskQueue, worker.Options{})

	w.RegisterWorkflowWithOptions(onboarding.CreateUserWorkflow, workflow.RegisterOptions{Name: onboarding.WorkflowCreateUser})
	w.RegisterWorkflowWithOptions(onboarding.CreateCustomerWorkflow, workflow.RegisterOptions{Name: onboarding.WorkflowCreateCustomer})
	w.RegisterWorkflowWithOptions(onboarding.ProcessOnboardingWorkflow, workflow.RegisterOptions{Name: onboarding.WorkflowProcessOnboarding})
	w.RegisterWorkflowWithOptions(onboarding.OnboardingComposedWorkflow, workflow.RegisterOptions{Name: onboarding.WorkflowOnboardingComposed})
	w.RegisterWorkflowWithOptions(payment.ProcessPaymentWorkflow, workflow.RegisterOptions{Name: payment.WorkflowProcessPayment})

	w.RegisterActivityWithOptions(onboardingActs.ValidateOnboardingData, activity.RegisterOptions{Name: onboarding.ActivityValidateOnboardingData})
	w.RegisterActivityWithOptions(onboardingActs.CreateUserActivity, activity.RegisterOptions{Name: onboarding.ActivityCreateUser})
	w.RegisterActivityWithOptions(onboardingActs.CreateCustomerActivity, activity.RegisterOptions{Name: onboarding.ActivityCreateCustomer})
	w.RegisterActivityWithOptions(onboardingActs.NotifyOnboardingCompleted, activity.RegisterOptions{Name: onboarding.ActivityNotifyOnboardingCompleted})

	w.RegisterActivityWithOptions(paymentActs.ValidatePaymentData, activity.RegisterOptions{Name: payment.ActivityValidatePaymentData})
	w.RegisterActivityWithOptions(paymentActs.CreatePaymentActivity, activity.RegisterOptions{Name: payment.ActivityCreatePayment})
	w.RegisterActivityWithOptions(paymentActs.CompletePaymentActivity, activity.RegisterOptions{Name: payment.ActivityCompletePayment})
	w.RegisterActivityWithOptions(paymentActs.FailPaymentActivity, activity.RegisterOptions{Name: payment.ActivityFailPayment})
	w.RegisterActivityWithOptions(paymentActs.NotifyPaymentProcessed, activity.RegisterOptions{Name: payment.ActivityNotifyPaymentProcessed})

	return &Runner{
		worker:    w,
		taskQueue: taskQueue,
		log:       baseLog.With("component", "temporalworker"),
	}, nil
}

// Run blocks until the interrupt channel closes or the worker dies.
func (r *Runner) Run(interruptCh <-chan interface{}) error {
	r.log.Info("Temporal worker starting", "task_queue", r.taskQueue)
	return r.worker.Run(interruptCh)
}

func (r *Runner) Start() error {
	r.log.Info("Temporal worker starting", "task_queue", r.taskQueue)
	return r.worker.Start()
}

func (r *Runner) Stop() {
	r.worker.Stop()
	r.log.Info("Temporal worker stopped", "task_queue", r.taskQueue)
}
