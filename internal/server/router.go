package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/onboarding-backend/internal/handlers"
	"github.com/yungbote/onboarding-backend/internal/utils"
)

type RouterConfig struct {
	UserHandler       *handlers.UserHandler
	CustomerHandler   *handlers.CustomerHandler
	PaymentHandler    *handlers.PaymentHandler
	OnboardingHandler *handlers.OnboardingHandler
	WorkflowHandler   *handlers.WorkflowHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))
	router.Use(otelgin.Middleware("onboarding-api"))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Users
		api.POST("/users", cfg.UserHandler.Create)
		api.GET("/users", cfg.UserHandler.List)
		api.GET("/users/:id", cfg.UserHandler.Get)

		// Customers
		api.POST("/customers", cfg.CustomerHandler.Create)
		api.GET("/customers", cfg.CustomerHandler.List)
		api.GET("/customers/:id", cfg.CustomerHandler.Get)

		// Payments (direct command path)
		api.POST("/payments", cfg.PaymentHandler.Create)
		api.GET("/payments", cfg.PaymentHandler.List)
		api.GET("/payments/:id", cfg.PaymentHandler.Get)
		api.POST("/payments/:id/complete", cfg.PaymentHandler.Complete)
		api.POST("/payments/:id/fail", cfg.PaymentHandler.Fail)

		// Onboarding
		api.POST("/onboarding/saga", cfg.OnboardingHandler.StartSaga)
		api.POST("/onboarding/workflow", cfg.OnboardingHandler.StartWorkflow)
		api.POST("/onboarding/workflow/composed", cfg.OnboardingHandler.StartComposedWorkflow)
		api.GET("/onboarding/workflow/:id/result", cfg.OnboardingHandler.Result)
		api.POST("/payments/workflow", cfg.OnboardingHandler.StartPaymentWorkflow)
		api.GET("/payments/workflow/:id/result", cfg.OnboardingHandler.PaymentResult)

		// Workflow control
		api.POST("/workflows/:id/signal", cfg.WorkflowHandler.Signal)
		api.GET("/workflows/:id/query", cfg.WorkflowHandler.Query)
		api.POST("/workflows/:id/cancel", cfg.WorkflowHandler.Cancel)
		api.POST("/workflows/:id/terminate", cfg.WorkflowHandler.Terminate)
	}

	return router
}

func allowedOrigins() []string {
	raw := utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5174", nil)
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
