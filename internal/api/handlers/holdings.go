package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bafang/portfolio-tracker/internal/api/request"
	"github.com/bafang/portfolio-tracker/internal/model"
	"github.com/bafang/portfolio-tracker/internal/service"
	"github.com/bafang/portfolio-tracker/internal/validation"
)

// HoldingHandler handles holding-related HTTP requests
type HoldingHandler struct {
	holdingService *service.HoldingService
}

// NewHoldingHandler creates a new HoldingHandler
func NewHoldingHandler(holdingService *service.HoldingService) *HoldingHandler {
	return &HoldingHandler{
		holdingService: holdingService,
	}
}

// Holdings returns all holdings with derived monetary values
func (h *HoldingHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.holdingService.GetAll(r.Context())
	if err != nil {
		respondError(w, err, "Failed to retrieve holdings")
		return
	}

	respondJSON(w, http.StatusOK, holdings)
}

// Holding returns one holding by id
func (h *HoldingHandler) Holding(w http.ResponseWriter, r *http.Request) {
	id, ok := holdingID(w, r)
	if !ok {
		return
	}

	holding, err := h.holdingService.GetByID(r.Context(), id)
	if err != nil {
		respondError(w, err, "Failed to retrieve holding")
		return
	}

	respondJSON(w, http.StatusOK, holding)
}

// CreateHolding adds a holding after resolving its product code
func (h *HoldingHandler) CreateHolding(w http.ResponseWriter, r *http.Request) {
	var req request.CreateHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	if err := validation.ValidateCreateHolding(req); err != nil {
		respondError(w, err, "Validation failed")
		return
	}

	holding, err := h.holdingService.Create(r.Context(), model.Holding{
		ProductCode:   req.ProductCode,
		ProductName:   req.ProductName,
		ProductType:   model.ProductCategory(req.ProductType),
		Category:      model.AssetCategory(req.Category),
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
	})
	if err != nil {
		respondError(w, err, "Failed to create holding")
		return
	}

	respondJSON(w, http.StatusCreated, holding)
}

// UpdateHolding applies a partial update to a holding
func (h *HoldingHandler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	id, ok := holdingID(w, r)
	if !ok {
		return
	}

	var req request.UpdateHoldingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	if err := validation.ValidateUpdateHolding(req); err != nil {
		respondError(w, err, "Validation failed")
		return
	}

	changes := service.HoldingUpdate{
		ProductName:   req.ProductName,
		Quantity:      req.Quantity,
		PurchasePrice: req.PurchasePrice,
	}
	if req.Category != nil {
		category := model.AssetCategory(*req.Category)
		changes.Category = &category
	}

	holding, err := h.holdingService.Update(r.Context(), id, changes)
	if err != nil {
		respondError(w, err, "Failed to update holding")
		return
	}

	respondJSON(w, http.StatusOK, holding)
}

// DeleteHolding removes a holding
func (h *HoldingHandler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	id, ok := holdingID(w, r)
	if !ok {
		return
	}

	if err := h.holdingService.Delete(r.Context(), id); err != nil {
		respondError(w, err, "Failed to delete holding")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

// RefreshPrices refetches the current price of every holding
func (h *HoldingHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	result, err := h.holdingService.RefreshAllPrices(r.Context())
	if err != nil {
		respondError(w, err, "Failed to refresh prices")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// holdingID parses the id URL parameter, responding 400 on a bad value.
func holdingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "Invalid holding id",
		})
		return 0, false
	}
	return id, true
}
