package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fintrack/fintrack-backend/internal/api"
	"github.com/fintrack/fintrack-backend/internal/auth"
	"github.com/fintrack/fintrack-backend/internal/config"
	"github.com/fintrack/fintrack-backend/internal/database"
	"github.com/fintrack/fintrack-backend/internal/notify"
	"github.com/fintrack/fintrack-backend/internal/repository"
	"github.com/fintrack/fintrack-backend/internal/scheduler"
	"github.com/fintrack/fintrack-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Create repositories
	objectiveRepo := repository.NewObjectiveRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db)
	recurringRepo := repository.NewRecurringRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Notifier: webhook when configured, log-only otherwise
	var notifier notify.Notifier
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhookNotifier(cfg.Notify.WebhookURL)
		log.Printf("Alert notifications via webhook")
	} else {
		notifier = notify.NewLogNotifier()
		log.Printf("Alert notifications via log only")
	}

	// Token issuer; an ephemeral key means tokens do not survive restarts
	fernetKey := cfg.Auth.FernetKey
	if fernetKey == "" {
		fernetKey, err = auth.GenerateKey()
		if err != nil {
			log.Fatalf("Failed to generate fernet key: %v", err)
		}
		log.Println("FERNET_KEY not set, generated ephemeral signing key")
	}
	tokenIssuer, err := auth.NewTokenIssuer(fernetKey)
	if err != nil {
		log.Fatalf("Failed to initialize token issuer: %v", err)
	}

	// Create services
	systemService := service.NewSystemService(db)
	valueSource := service.NewTransactionValueSource(transactionRepo)
	objectiveService := service.NewObjectiveService(
		objectiveRepo,
		userRepo,
		valueSource,
		notifier,
	)
	investmentService := service.NewInvestmentService(
		investmentRepo,
	)
	recurringService := service.NewRecurringService(
		db,
		recurringRepo,
		transactionRepo,
	)
	transactionService := service.NewTransactionService(
		transactionRepo,
	)
	categoryService := service.NewCategoryService(
		categoryRepo,
	)

	if err := categoryService.SeedDefaults(context.Background()); err != nil {
		log.Fatalf("Failed to seed default categories: %v", err)
	}

	// Create router
	router := api.NewRouter(api.Dependencies{
		SystemService:      systemService,
		ObjectiveService:   objectiveService,
		InvestmentService:  investmentService,
		RecurringService:   recurringService,
		TransactionService: transactionService,
		CategoryService:    categoryService,
		UserRepo:           userRepo,
		TokenIssuer:        tokenIssuer,
	}, cfg)

	// Periodic jobs
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(objectiveService, recurringService)
		if err := sched.Start(cfg.Scheduler); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if sched != nil {
		sched.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
