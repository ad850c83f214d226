package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/bafang/portfolio-tracker/internal/apperrors"
	"github.com/bafang/portfolio-tracker/internal/validation"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondError maps a service error to an HTTP status and sends a
// structured error body.
func respondError(w http.ResponseWriter, err error, message string) {
	respondJSON(w, statusForError(err), map[string]string{
		"error":  message,
		"detail": err.Error(),
	})
}

func statusForError(err error) int {
	var validationErr *validation.Error
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrHoldingNotFound),
		errors.Is(err, apperrors.ErrProductNotFound),
		errors.Is(err, apperrors.ErrSettingNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrQuoteUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, apperrors.ErrCredentialsNotConfigured):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
