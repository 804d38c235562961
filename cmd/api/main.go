package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/campusgig/campusgig-api/internal/config"
	"github.com/campusgig/campusgig-api/internal/database"
	"github.com/campusgig/campusgig-api/internal/handler"
	"github.com/campusgig/campusgig-api/internal/middleware"
	"github.com/campusgig/campusgig-api/internal/models"
	"github.com/campusgig/campusgig-api/internal/repository"
	"github.com/campusgig/campusgig-api/internal/router"
	"github.com/campusgig/campusgig-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Account{},
		&models.Campus{},
		&models.CampusRequest{},
		&models.Opportunity{},
		&models.Application{},
		&models.Report{},
		&models.ActionLog{},
	); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	validate := validator.New(validator.WithRequiredStructEnabled())

	accountRepo := repository.NewAccountRepository(db)
	campusRepo := repository.NewCampusRepository(db)
	campusRequestRepo := repository.NewCampusRequestRepository(db)
	opportunityRepo := repository.NewOpportunityRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	reportRepo := repository.NewReportRepository(db)
	actionLogRepo := repository.NewActionLogRepository(db)

	auditService := service.NewAuditService(actionLogRepo, logger)
	authService := service.NewAuthService(accountRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	accountService := service.NewAccountService(accountRepo, validate, auditService, logger)
	campusService := service.NewCampusService(campusRepo, campusRequestRepo, accountRepo, validate, auditService, logger)
	opportunityService := service.NewOpportunityService(opportunityRepo, validate, auditService, logger)
	applicationService := service.NewApplicationService(applicationRepo, opportunityRepo, validate, service.DefaultTransitionPolicy(), logger)
	moderationService := service.NewModerationService(reportRepo, accountRepo, validate, auditService, logger)
	dashboardService := service.NewDashboardService(accountRepo, campusRepo, opportunityRepo, applicationRepo, reportRepo, redisClient, cfg.DashboardCacheTTL, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:          handler.NewAuthHandler(authService, logger),
		ProfileHandler:       handler.NewProfileHandler(accountService, authService, logger),
		AdminUserHandler:     handler.NewAdminUserHandler(accountService, logger),
		AdminCampusHandler:   handler.NewAdminCampusHandler(campusService, logger),
		CampusRequestHandler: handler.NewCampusRequestHandler(campusService, logger),
		CampusStudentHandler: handler.NewCampusStudentHandler(accountService, logger),
		OpportunityHandler:   handler.NewOpportunityHandler(opportunityService, applicationService, logger),
		ModerationHandler:    handler.NewModerationHandler(moderationService, auditService, logger),
		DashboardHandler:     handler.NewDashboardHandler(dashboardService, logger),
		Authenticate:         middleware.Authenticate(cfg.JWTSecret, accountRepo),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
