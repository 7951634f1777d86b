package onboarding

// Registered workflow and activity names. Workers and starters agree on these
// strings, so renaming a Go function never breaks running executions.
const (
	WorkflowCreateUser         = "CreateUserWorkflow"
	WorkflowCreateCustomer     = "CreateCustomerWorkflow"
	WorkflowProcessOnboarding  = "ProcessOnboardingWorkflow"
	WorkflowOnboardingComposed = "OnboardingComposedWorkflow"

	ActivityValidateOnboardingData    = "ValidateOnboardingData"
	ActivityCreateUser                = "CreateUserActivity"
	ActivityCreateCustomer            = "CreateCustomerActivity"
	ActivityNotifyOnboardingCompleted = "NotifyOnboardingCompleted"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type AddressInput struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// UserInput carries the new user's data. UserID is optional; when empty the
// workflow pins one in its history so a retried create activity upserts the
// same row instead of minting a second user.
type UserInput struct {
	UserID  string       `json:"user_id,omitempty"`
	Name    string       `json:"name"`
	Email   string       `json:"email"`
	Address AddressInput `json:"address"`
}

type CustomerInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// OnboardingInput is the full payload for the onboarding workflows.
type OnboardingInput struct {
	User     UserInput     `json:"user"`
	Customer CustomerInput `json:"customer"`
}

// Result is the uniform workflow outcome. Business failures surface here as
// data; the workflow itself completes so callers always get a decodable value.
type Result struct {
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	UserID     string `json:"user_id,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
}

func completed(userID, customerID string) Result {
	return Result{Status: StatusCompleted, UserID: userID, CustomerID: customerID}
}

func failed(err error) Result {
	return Result{Status: StatusFailed, Error: err.Error()}
}

type CreateUserActivityResult struct {
	UserID string `json:"user_id"`
}

type CreateCustomerActivityResult struct {
	CustomerID string `json:"customer_id"`
}

type NotifyInput struct {
	UserID     string `json:"user_id"`
	CustomerID string `json:"customer_id"`
}
