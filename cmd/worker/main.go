package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcustomer "github.com/yungbote/onboarding-backend/internal/application/customer"
	apppayment "github.com/yungbote/onboarding-backend/internal/application/payment"
	appuser "github.com/yungbote/onboarding-backend/internal/application/user"
	"github.com/yungbote/onboarding-backend/internal/cqrs"
	"github.com/yungbote/onboarding-backend/internal/data/db"
	customerrepo "github.com/yungbote/onboarding-backend/internal/data/repos/customer"
	eventlogrepo "github.com/yungbote/onboarding-backend/internal/data/repos/eventlog"
	paymentrepo "github.com/yungbote/onboarding-backend/internal/data/repos/payment"
	userrepo "github.com/yungbote/onboarding-backend/internal/data/repos/user"
	"github.com/yungbote/onboarding-backend/internal/data/uow"
	"github.com/yungbote/onboarding-backend/internal/integration/audit"
	"github.com/yungbote/onboarding-backend/internal/observability"
	"github.com/yungbote/onboarding-backend/internal/pkg/logger"
	"github.com/yungbote/onboarding-backend/internal/temporalx"
	"github.com/yungbote/onboarding-backend/internal/temporalx/onboarding"
	"github.com/yungbote/onboarding-backend/internal/temporalx/payment"
	"github.com/yungbote/onboarding-backend/internal/temporalx/temporalworker"
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
		ServiceName: "onboarding-worker",
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
	userRepo := userrepo.NewUserRepo(thePG, log)
	customerRepo := customerrepo.NewCustomerRepo(thePG, log)
	paymentRepo := paymentrepo.NewPaymentRepo(thePG, log)
	eventLogRepo := eventlogrepo.NewEventLogRepo(thePG, log)
	unitOfWork := uow.New(thePG)

	// Buses: the worker runs the same handlers as the API so activities share
	// one write path.
	bus := cqrs.NewBus()
	events := cqrs.NewEventBus()
	audit.NewRecorder(eventLogRepo, log).Subscribe(events)

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

	// Temporal
	temporalClient, err := temporalx.NewClient(log)
	if err != nil {
		log.Error("Temporal init failed", "error", err)
		os.Exit(1)
	}
	if temporalClient == nil {
		log.Error("TEMPORAL_ADDRESS is required for the worker")
		os.Exit(1)
	}
	defer temporalClient.Close()

	cfg := temporalx.LoadConfig()
	runner, err := temporalworker.NewRunner(
		temporalClient,
		cfg.TaskQueue,
		onboarding.NewActivities(bus, events, log),
		payment.NewActivities(bus, log),
		log,
	)
	if err != nil {
		log.Error("Worker init failed", "error", err)
		os.Exit(1)
	}

	interruptCh := make(chan interface{})
	go func() {
		<-ctx.Done()
		close(interruptCh)
	}()
	if err := runner.Run(interruptCh); err != nil {
		log.Error("Worker exited with error", "error", err)
	}

	if otelShutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = otelShutdown(shutdownCtx)
	}
	log.Info("Worker stopped")
}
