package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcustomer "github.com/yungbote/onboarding-backend/internal/application/customer"
	"github.com/yungbote/onboarding-backend/internal/cqrs"
)

type CustomerHandler struct {
	bus *cqrs.Bus
}

func NewCustomerHandler(bus *cqrs.Bus) *CustomerHandler {
	return &CustomerHandler{bus: bus}
}

type createCustomerRequest struct {
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	UserID string `json:"user_id"`
}

func (ch *CustomerHandler) Create(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	res, err := ch.bus.Execute(c.Request.Context(), appcustomer.CreateCustomerCommand{
		Name:   req.Name,
		Phone:  req.Phone,
		UserID: userID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": res})
}

func (ch *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer id"})
		return
	}
	res, err := ch.bus.Execute(c.Request.Context(), appcustomer.GetCustomerQuery{CustomerID: id})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": res})
}

func (ch *CustomerHandler) List(c *gin.Context) {
	if rawUserID := c.Query("user_id"); rawUserID != "" {
		userID, err := uuid.Parse(rawUserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		res, err := ch.bus.Execute(c.Request.Context(), appcustomer.GetCustomersByUserQuery{UserID: userID})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"customers": res})
		return
	}
	res, err := ch.bus.Execute(c.Request.Context(), appcustomer.ListCustomersQuery{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": res})
}
