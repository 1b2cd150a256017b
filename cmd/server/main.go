package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mphinance/ulty-tracker/internal/api"
	"github.com/mphinance/ulty-tracker/internal/config"
	"github.com/mphinance/ulty-tracker/internal/database"
	"github.com/mphinance/ulty-tracker/internal/repository"
	"github.com/mphinance/ulty-tracker/internal/scheduler"
	"github.com/mphinance/ulty-tracker/internal/service"
	"github.com/mphinance/ulty-tracker/internal/session"
	"github.com/mphinance/ulty-tracker/internal/yahoo"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply schema migrations (including the seeded distribution history)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Create repositories
	transactionRepo := repository.NewTransactionRepository(db)
	dividendRepo := repository.NewDividendRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	yahooClient := yahoo.NewFinanceClient()

	// Create services
	systemService := service.NewSystemService(db)
	transactionService := service.NewTransactionService(transactionRepo)
	importService := service.NewImportService(transactionService)
	dividendService := service.NewDividendService(
		dividendRepo,
		yahooClient,
		cfg.Tracker.Symbol,
		cfg.HorizonEnd(),
	)
	priceService := service.NewPriceService(
		settingRepo,
		yahooClient,
		cfg.Tracker.Symbol,
	)
	portfolioService := service.NewPortfolioService(
		transactionService,
		dividendService,
		priceService,
	)

	// Session sharing needs a fernet key; without one the routes stay off
	var sessionService *service.SessionService
	if cfg.Session.FernetKey != "" {
		codec, err := session.NewCodec(cfg.Session.FernetKey)
		if err != nil {
			log.Fatalf("Failed to initialize session codec: %v", err)
		}
		sessionService = service.NewSessionService(codec, transactionService, priceService)
	} else {
		log.Println("SESSION_FERNET_KEY not set, session sharing disabled")
	}

	// Scheduled market-data refresh
	if cfg.Refresh.Enabled {
		sched, err := scheduler.New(cfg.Refresh.Schedule, priceService, dividendService)
		if err != nil {
			log.Fatalf("Failed to create refresh scheduler: %v", err)
		}
		sched.Start()
		defer sched.Stop()
		log.Printf("Refresh scheduled: %s", cfg.Refresh.Schedule)
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Transaction: transactionService,
		Import:      importService,
		Dividend:    dividendService,
		Portfolio:   portfolioService,
		Price:       priceService,
		Session:     sessionService,
	}, cfg)

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

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
