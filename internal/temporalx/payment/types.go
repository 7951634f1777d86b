package payment

const (
	WorkflowProcessPayment = "ProcessPaymentWorkflow"

	ActivityValidatePaymentData    = "ValidatePaymentData"
	ActivityCreatePayment          = "CreatePaymentActivity"
	ActivityCompletePayment        = "CompletePaymentActivity"
	ActivityFailPayment            = "FailPaymentActivity"
	ActivityNotifyPaymentProcessed = "NotifyPaymentProcessed"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Input is the payload for ProcessPaymentWorkflow. PaymentID is optional;
// when empty the workflow pins one in its history so every activity attempt
// targets the same aggregate.
type Input struct {
	PaymentID  string  `json:"payment_id,omitempty"`
	UserID     string  `json:"user_id"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
}

// Result mirrors the onboarding result shape: failures are data, not
// workflow errors.
type Result struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	PaymentID string `json:"payment_id,omitempty"`
}

type CreatePaymentActivityResult struct {
	PaymentID string `json:"payment_id"`
}

type FailPaymentActivityInput struct {
	PaymentID string `json:"payment_id"`
	Reason    string `json:"reason"`
}

type NotifyInput struct {
	PaymentID string  `json:"payment_id"`
	UserID    string  `json:"user_id"`
	Amount    float64 `json:"amount"`
}
