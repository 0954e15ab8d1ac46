package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"travella-service/internal/infrastructure/config"
	"travella-service/internal/infrastructure/oauth"
	"travella-service/internal/infrastructure/persistence"
	"travella-service/internal/infrastructure/router"
	"travella-service/internal/interface/api"
	"travella-service/internal/interface/gmail"
	"travella-service/internal/interface/repository"
	"travella-service/internal/usecase"
	"travella-service/pkg/currency"
	"travella-service/pkg/logger"
	"travella-service/pkg/metrics"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Travella Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection for the email store
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up PostgreSQL for travel data
	log.Info("Connecting to PostgreSQL")
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresDSN,
		&repository.Trips{},
		&repository.ItineraryItems{},
		&repository.Expenses{},
		&repository.Reminders{},
		&repository.FavoritePlaces{},
		&repository.Users{},
	)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	emailRepo := repository.NewMongoEmailRepository(db)
	tripRepo := repository.NewGormTripRepository(gormDB)
	itineraryRepo := repository.NewGormItineraryRepository(gormDB)
	expenseRepo := repository.NewGormExpenseRepository(gormDB)
	reminderRepo := repository.NewGormReminderRepository(gormDB)
	placeRepo := repository.NewGormPlaceRepository(gormDB)
	userRepo := repository.NewGormUserRepository(gormDB)

	// Set up metrics and shared services
	appMetrics := metrics.NewMetrics("travella")
	converter := currency.NewConverter(cfg.CurrencyAPIBase, cfg.CurrencyCacheTTL, log, appMetrics.CurrencyFallbacks)

	// Set up the import pipeline
	subjectRouter := router.NewSubjectRouter(log)
	subjectRouter.Register(usecase.NewBookingImportHandler(emailRepo, tripRepo, itineraryRepo, log, appMetrics))
	importer := usecase.NewImportProcessor(emailRepo, subjectRouter, log, appMetrics, cfg.ImportBatchSize)
	go importer.Start(ctx, cfg.ImportInterval)

	// Set up the reminder dispatcher
	dispatcher := usecase.NewReminderDispatcher(reminderRepo, log, appMetrics)
	go dispatcher.Start(ctx, cfg.ReminderInterval)

	// Set up Gmail polling when credentials are configured
	if cfg.GmailClientID != "" && cfg.GmailRefreshToken != "" {
		gmailOAuth := oauth.NewGmailOAuth(
			cfg.GmailClientID,
			cfg.GmailClientSecret,
			cfg.GmailRefreshToken,
			log,
		)
		tokenSource := gmailOAuth.GetTokenSource(ctx)

		gmailService, err := gmail.NewGmailService(ctx, tokenSource, emailRepo, log, cfg.GmailPollInterval)
		if err != nil {
			log.Fatal("Failed to create Gmail service", "error", err)
		}
		go gmailService.StartPolling(ctx)
	} else {
		log.Warn("Gmail credentials not configured, polling disabled")
	}

	// Set up HTTP API
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	handler := api.NewHandler(tripRepo, itineraryRepo, expenseRepo, reminderRepo, placeRepo,
		userRepo, emailRepo, importer, converter, log, cfg.AppVersion)
	handler.RegisterRoutes(engine)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Travella Service stopped")
}
