package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bafang/portfolio-tracker/internal/model"
	"github.com/bafang/portfolio-tracker/internal/service"
)

// ProductHandler handles product lookup HTTP requests
type ProductHandler struct {
	resolver service.QuoteResolver
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(resolver service.QuoteResolver) *ProductHandler {
	return &ProductHandler{resolver: resolver}
}

// Resolve classifies a bare product code across the stock, ETF and fund
// namespaces and returns its quote
func (h *ProductHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	quote, err := h.resolver.Resolve(r.Context(), code)
	if err != nil {
		respondError(w, err, "Failed to resolve product")
		return
	}

	respondJSON(w, http.StatusOK, quote)
}

// Quote returns the quote of a product in a known namespace
func (h *ProductHandler) Quote(w http.ResponseWriter, r *http.Request) {
	category := model.ProductCategory(chi.URLParam(r, "type"))
	if !category.Valid() {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Invalid product type",
		})
		return
	}

	quote, err := h.resolver.Quote(r.Context(), category, chi.URLParam(r, "code"))
	if err != nil {
		respondError(w, err, "Failed to fetch quote")
		return
	}

	respondJSON(w, http.StatusOK, quote)
}
