package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appuser "github.com/yungbote/onboarding-backend/internal/application/user"
	"github.com/yungbote/onboarding-backend/internal/cqrs"
)

type UserHandler struct {
	bus *cqrs.Bus
}

func NewUserHandler(bus *cqrs.Bus) *UserHandler {
	return &UserHandler{bus: bus}
}

type createUserRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address struct {
		Street  string `json:"street"`
		City    string `json:"city"`
		ZipCode string `json:"zip_code"`
		Country string `json:"country"`
	} `json:"address"`
}

func (uh *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := uh.bus.Execute(c.Request.Context(), appuser.CreateUserCommand{
		Name:    req.Name,
		Email:   req.Email,
		Street:  req.Address.Street,
		City:    req.Address.City,
		ZipCode: req.Address.ZipCode,
		Country: req.Address.Country,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": res})
}

func (uh *UserHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	res, err := uh.bus.Execute(c.Request.Context(), appuser.GetUserQuery{UserID: id})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": res})
}

func (uh *UserHandler) List(c *gin.Context) {
	if email := c.Query("email"); email != "" {
		res, err := uh.bus.Execute(c.Request.Context(), appuser.GetUserByEmailQuery{Email: email})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": res})
		return
	}
	res, err := uh.bus.Execute(c.Request.Context(), appuser.ListUsersQuery{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": res})
}
