package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bafang/portfolio-tracker/internal/model"
	"github.com/bafang/portfolio-tracker/internal/service"
)

// PortfolioHandler handles portfolio-level aggregate HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Stats returns totals and per-type counts across the portfolio
func (h *PortfolioHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.portfolioService.Stats(r.Context())
	if err != nil {
		respondError(w, err, "Failed to compute portfolio stats")
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// Allocation returns the current allocation across asset categories
func (h *PortfolioHandler) Allocation(w http.ResponseWriter, r *http.Request) {
	allocation, err := h.portfolioService.Allocation(r.Context())
	if err != nil {
		respondError(w, err, "Failed to compute allocation")
		return
	}

	respondJSON(w, http.StatusOK, allocation)
}

// CategoryHoldings returns the holdings inside one allocation bucket
func (h *PortfolioHandler) CategoryHoldings(w http.ResponseWriter, r *http.Request) {
	category := model.AssetCategory(chi.URLParam(r, "category"))

	holdings, err := h.portfolioService.HoldingsByCategory(r.Context(), category)
	if err != nil {
		respondError(w, err, "Failed to list category holdings")
		return
	}

	respondJSON(w, http.StatusOK, holdings)
}

// Report returns the target-vs-actual allocation report with deviation
// warnings and rebalancing suggestions, against the default strategy
func (h *PortfolioHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.portfolioService.Report(r.Context(), nil)
	if err != nil {
		respondError(w, err, "Failed to build allocation report")
		return
	}

	respondJSON(w, http.StatusOK, report)
}
