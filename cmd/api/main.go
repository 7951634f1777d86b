package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	appcustomer "github.com/yungbote/onboarding-backend/internal/application/customer"
	apponboarding "github.com/yungbote/onboarding-backend/internal/application/onboarding"
	apppayment "github.com/yungbote/onboarding-backend/internal/application/payment"
	appuser "github.com/yungbote/onboarding-backend/internal/application/user"
	"github.com/yungbote/onboarding-backend/internal/cqrs"
	"github.com/yungbote/onboarding-backend/internal/data/db"
	customerrepo "github.com/yungbote/onboarding-backend/internal/data/repos/customer"
	eventlogrepo "github.com/yungbote/onboarding-backend/internal/data/repos/eventlog"
	paymentrepo "github.com/yungbote/onboarding-backend/internal/data/repos/payment"
	userrepo "github.com/yungbote/onboarding-backend/internal/data/repos/user"
	"github.com/yungbote/onboarding-backend/internal/data/uow"
	"github.com/yungbote/onboarding-backend/internal/handlers"
	"github.com/yungbote/onboarding-backend/internal/integration/audit"
	"github.com/yungbote/onboarding-backend/internal/integration/saga"
	"github.com/yungbote/onboarding-backend/internal/observability"
	"github.com/yungbote/onboarding-backend/internal/pkg/logger"
	"github.com/yungbote/onboarding-backend/internal/server"
	"github.com/yungbote/onboarding-backend/internal/services"
	"github.com/yungbote/onboarding-backend/internal/temporalx"
	"github.com/yungbote/onboarding-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "onboarding-api",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	userRepo := userrepo.NewUserRepo(thePG, log)
	customerRepo := customerrepo.NewCustomerRepo(thePG, log)
	paymentRepo := paymentrepo.NewPaymentRepo(thePG, log)
	eventLogRepo := eventlogrepo.NewEventLogRepo(thePG, log)
	unitOfWork := uow.New(thePG)

	// Buses
	bus := cqrs.NewBus()
	events := cqrs.NewEventBus()
	audit.NewRecorder(eventLogRepo, log).Subscribe(events)

	// Temporal
	temporalClient, err := temporalx.NewClient(log)
	if err != nil {
		log.Error("Temporal init failed", "error", err)
		os.Exit(1)
	}
	if temporalClient != nil {
		defer temporalClient.Close()
	}
	workflowService := services.NewWorkflowService(temporalClient, log)

	// Handlers on the bus
	log.Info("Registering command and query handlers from main...")
	if err := appuser.NewHandlers(unitOfWork, userRepo, events, log).Register(bus); err != nil {
		log.Error("Handler registration failed", "error", err)
		os.Exit(1)
	}
	if err := appcustomer.NewHandlers(unitOfWork, customerRepo, userRepo, events, log).Register(bus); err != nil {
		log.Error("Handler registration failed", "error", err)
		os.Exit(1)
	}
	if err := apppayment.NewHandlers(unitOfWork, paymentRepo, events, log).Register(bus); err != nil {
		log.Error("Handler registration failed", "error", err)
		os.Exit(1)
	}
	if err := apponboarding.NewHandlers(workflowService, events, log).Register(bus); err != nil {
		log.Error("Handler registration failed", "error", err)
		os.Exit(1)
	}

	// Saga path
	saga.NewOnboardingSaga(bus, log).Subscribe(events)

	// HTTP
	router := server.NewRouter(server.RouterConfig{
		UserHandler:       handlers.NewUserHandler(bus),
		CustomerHandler:   handlers.NewCustomerHandler(bus),
		PaymentHandler:    handlers.NewPaymentHandler(bus),
		OnboardingHandler: handlers.NewOnboardingHandler(bus),
		WorkflowHandler:   handlers.NewWorkflowHandler(workflowService),
	})

	port := utils.GetEnv("PORT", "8080", log)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("API server listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("API server exited with error", "error", err)
	}
	if otelShutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = otelShutdown(shutdownCtx)
	}
	log.Info("API server stopped")
}
