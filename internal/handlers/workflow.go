package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/onboarding-backend/internal/services"
)

// WorkflowHandler exposes the generic execution control surface: signal,
// query, cancel, terminate. Onboarding-specific starts live on
// OnboardingHandler.
type WorkflowHandler struct {
	workflows services.WorkflowService
}

func NewWorkflowHandler(workflows services.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflows: workflows}
}

type signalRequest struct {
	Name  string      `json:"name"`
	Input interface{} `json:"input"`
}

func (wh *WorkflowHandler) Signal(c *gin.Context) {
	var req signalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "signal name is required"})
		return
	}
	if err := wh.workflows.Signal(c.Request.Context(), c.Param("id"), c.Query("run_id"), req.Name, req.Input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "signaled"})
}

func (wh *WorkflowHandler) Query(c *gin.Context) {
	queryType := c.Query("type")
	if queryType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query type is required"})
		return
	}
	val, err := wh.workflows.Query(c.Request.Context(), c.Param("id"), c.Query("run_id"), queryType)
	if err != nil {
		respondError(c, err)
		return
	}
	var decoded interface{}
	if err := val.Get(&decoded); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": decoded})
}

func (wh *WorkflowHandler) Cancel(c *gin.Context) {
	if err := wh.workflows.Cancel(c.Request.Context(), c.Param("id"), c.Query("run_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancel requested"})
}

type terminateRequest struct {
	Reason string `json:"reason"`
}

func (wh *WorkflowHandler) Terminate(c *gin.Context) {
	var req terminateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := wh.workflows.Terminate(c.Request.Context(), c.Param("id"), c.Query("run_id"), req.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "terminated"})
}
