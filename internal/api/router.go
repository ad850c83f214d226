package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bafang/portfolio-tracker/internal/api/handlers"
	custommiddleware "github.com/bafang/portfolio-tracker/internal/api/middleware"
	"github.com/bafang/portfolio-tracker/internal/config"
	"github.com/bafang/portfolio-tracker/internal/service"
)

// Services bundles the services the router depends on.
type Services struct {
	System    *service.SystemService
	Holdings  *service.HoldingService
	Portfolio *service.PortfolioService
	Settings  *service.SettingsService
	Resolver  service.QuoteResolver
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(services.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/holdings", func(r chi.Router) {
			holdingHandler := handlers.NewHoldingHandler(services.Holdings)
			r.Get("/", holdingHandler.Holdings)
			r.Post("/", holdingHandler.CreateHolding)
			r.Post("/refresh", holdingHandler.RefreshPrices)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateIDMiddleware)
				r.Get("/", holdingHandler.Holding)
				r.Put("/", holdingHandler.UpdateHolding)
				r.Delete("/", holdingHandler.DeleteHolding)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(services.Portfolio)
			r.Get("/stats", portfolioHandler.Stats)
			r.Get("/allocation", portfolioHandler.Allocation)
			r.Get("/allocation/{category}/holdings", portfolioHandler.CategoryHoldings)
			r.Get("/report", portfolioHandler.Report)
		})

		r.Route("/products", func(r chi.Router) {
			productHandler := handlers.NewProductHandler(services.Resolver)
			r.Get("/{code}/quote", productHandler.Resolve)
			r.Get("/{type}/{code}/quote", productHandler.Quote)
		})

		r.Route("/settings", func(r chi.Router) {
			settingsHandler := handlers.NewSettingsHandler(services.Settings)
			r.Put("/calendar-credentials", settingsHandler.SetCalendarCredentials)
		})
	})

	return r
}
