package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apponboarding "github.com/yungbote/onboarding-backend/internal/application/onboarding"
	"github.com/yungbote/onboarding-backend/internal/cqrs"
	onbwf "github.com/yungbote/onboarding-backend/internal/temporalx/onboarding"
	paywf "github.com/yungbote/onboarding-backend/internal/temporalx/payment"
)

type OnboardingHandler struct {
	bus *cqrs.Bus
}

func NewOnboardingHandler(bus *cqrs.Bus) *OnboardingHandler {
	return &OnboardingHandler{bus: bus}
}

type onboardingRequest struct {
	User struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Address struct {
			Street  string `json:"street"`
			City    string `json:"city"`
			ZipCode string `json:"zip_code"`
			Country string `json:"country"`
		} `json:"address"`
	} `json:"user"`
	Customer struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	} `json:"customer"`
}

func (req onboardingRequest) toInput() onbwf.OnboardingInput {
	return onbwf.OnboardingInput{
		User: onbwf.UserInput{
			Name:  req.User.Name,
			Email: req.User.Email,
			Address: onbwf.AddressInput{
				Street:  req.User.Address.Street,
				City:    req.User.Address.City,
				ZipCode: req.User.Address.ZipCode,
				Country: req.User.Address.Country,
			},
		},
		Customer: onbwf.CustomerInput{
			Name:  req.Customer.Name,
			Phone: req.Customer.Phone,
		},
	}
}

// StartSaga triggers the in-process saga path. 202: the saga outcome is not
// reported back through this endpoint.
func (oh *OnboardingHandler) StartSaga(c *gin.Context) {
	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := oh.bus.Execute(c.Request.Context(), apponboarding.StartOnboardingSagaCommand{Input: req.toInput()})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"event_id": res})
}

func (oh *OnboardingHandler) StartWorkflow(c *gin.Context) {
	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := oh.bus.Execute(c.Request.Context(), apponboarding.StartOnboardingWorkflowCommand{Input: req.toInput()})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"workflow": res})
}

func (oh *OnboardingHandler) StartComposedWorkflow(c *gin.Context) {
	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := oh.bus.Execute(c.Request.Context(), apponboarding.StartComposedOnboardingCommand{Input: req.toInput()})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"workflow": res})
}

// Result blocks until the onboarding execution finishes and returns its
// Result value. Failed onboardings still come back 200: failure is data here.
func (oh *OnboardingHandler) Result(c *gin.Context) {
	res, err := oh.bus.Execute(c.Request.Context(), apponboarding.GetOnboardingResultQuery{
		WorkflowID: c.Param("id"),
		RunID:      c.Query("run_id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}

type startPaymentRequest struct {
	UserID     string  `json:"user_id"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
}

func (oh *OnboardingHandler) StartPaymentWorkflow(c *gin.Context) {
	var req startPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := oh.bus.Execute(c.Request.Context(), apponboarding.StartPaymentWorkflowCommand{
		Input: paywf.Input{
			UserID:     req.UserID,
			CustomerID: req.CustomerID,
			Amount:     req.Amount,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"workflow": res})
}

func (oh *OnboardingHandler) PaymentResult(c *gin.Context) {
	res, err := oh.bus.Execute(c.Request.Context(), apponboarding.GetPaymentResultQuery{
		WorkflowID: c.Param("id"),
		RunID:      c.Query("run_id"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": res})
}
