package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bafang/portfolio-tracker/internal/api"
	"github.com/bafang/portfolio-tracker/internal/config"
	"github.com/bafang/portfolio-tracker/internal/database"
	"github.com/bafang/portfolio-tracker/internal/market/cache"
	"github.com/bafang/portfolio-tracker/internal/market/calendar"
	"github.com/bafang/portfolio-tracker/internal/market/provider"
	"github.com/bafang/portfolio-tracker/internal/market/refresh"
	"github.com/bafang/portfolio-tracker/internal/market/resolver"
	"github.com/bafang/portfolio-tracker/internal/repository"
	"github.com/bafang/portfolio-tracker/internal/scheduler"
	"github.com/bafang/portfolio-tracker/internal/service"
)

const appVersion = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	holdingRepo := repository.NewHoldingRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Create services
	settingsService, err := service.NewSettingsService(settingsRepo, cfg.Settings.EncryptionKey)
	if err != nil {
		log.Fatalf("Failed to initialize settings service: %v", err)
	}

	// Trading calendar: remote trade-date service when configured,
	// weekend rule otherwise.
	var calendarSource calendar.Source
	if cfg.Market.CalendarURL != "" {
		calendarSource = calendar.NewRemote(cfg.Market.CalendarURL, settingsService)
	}
	tradingCalendar := calendar.NewFallback(calendarSource)

	// Market pipeline: provider -> refresh policy -> cache -> resolver
	quoteProvider := provider.NewEastmoneyClient()
	if cfg.Market.QuoteGatewayURL != "" {
		quoteProvider = provider.NewEastmoneyClientWithURL(cfg.Market.QuoteGatewayURL)
	}
	quoteResolver := resolver.New(quoteProvider, cache.New(), refresh.New(tradingCalendar))

	systemService := service.NewSystemService(db, appVersion)
	allocationService := service.NewAllocationService()
	holdingService := service.NewHoldingService(holdingRepo, quoteResolver)
	portfolioService := service.NewPortfolioService(holdingRepo, allocationService)

	// Scheduled price refresh
	sched := scheduler.New()
	if err := sched.AddJob(cfg.Market.RefreshSchedule, scheduler.NewPriceRefreshJob(holdingService)); err != nil {
		log.Fatalf("Failed to schedule price refresh: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:    systemService,
		Holdings:  holdingService,
		Portfolio: portfolioService,
		Settings:  settingsService,
		Resolver:  quoteResolver,
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
