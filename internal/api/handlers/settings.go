package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bafang/portfolio-tracker/internal/api/request"
	"github.com/bafang/portfolio-tracker/internal/service"
	"github.com/bafang/portfolio-tracker/internal/validation"
)

// SettingsHandler handles settings HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
	}
}

// SetCalendarCredentials stores the trade-date service login pair.
// Credentials are encrypted at rest and never returned by the API.
func (h *SettingsHandler) SetCalendarCredentials(w http.ResponseWriter, r *http.Request) {
	var req request.CalendarCredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Invalid request body",
			"detail": err.Error(),
		})
		return
	}

	if err := validation.ValidateCalendarCredentials(req); err != nil {
		respondError(w, err, "Validation failed")
		return
	}

	if err := h.settingsService.SetCalendarCredentials(r.Context(), req.Username, req.Password); err != nil {
		respondError(w, err, "Failed to store credentials")
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
