package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apppayment "github.com/yungbote/onboarding-backend/internal/application/payment"
	"github.com/yungbote/onboarding-backend/internal/cqrs"
)

type PaymentHandler struct {
	bus *cqrs.Bus
}

func NewPaymentHandler(bus *cqrs.Bus) *PaymentHandler {
	return &PaymentHandler{bus: bus}
}

type createPaymentRequest struct {
	UserID     string  `json:"user_id"`
	CustomerID string  `json:"customer_id"`
	Amount     float64 `json:"amount"`
}

func (ph *PaymentHandler) Create(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}
	res, err := ph.bus.Execute(c.Request.Context(), apppayment.CreatePaymentCommand{
		UserID:     userID,
		CustomerID: customerID,
		Amount:     req.Amount,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment": res})
}

func (ph *PaymentHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}
	res, err := ph.bus.Execute(c.Request.Context(), apppayment.CompletePaymentCommand{PaymentID: id})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": res})
}

type failPaymentRequest struct {
	Reason string `json:"reason"`
}

func (ph *PaymentHandler) Fail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}
	var req failPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := ph.bus.Execute(c.Request.Context(), apppayment.FailPaymentCommand{PaymentID: id, Reason: req.Reason})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": res})
}

func (ph *PaymentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}
	res, err := ph.bus.Execute(c.Request.Context(), apppayment.GetPaymentQuery{PaymentID: id})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": res})
}

func (ph *PaymentHandler) List(c *gin.Context) {
	if rawUserID := c.Query("user_id"); rawUserID != "" {
		userID, err := uuid.Parse(rawUserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		res, err := ph.bus.Execute(c.Request.Context(), apppayment.GetPaymentsByUserQuery{UserID: userID})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"payments": res})
		return
	}
	res, err := ph.bus.Execute(c.Request.Context(), apppayment.ListPaymentsQuery{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": res})
}
