// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/bafang/portfolio-tracker/internal/api/response"
)

// ValidateIDMiddleware validates that the id URL parameter is a positive
// integer. Returns 400 Bad Request otherwise.
//
// Example usage in router:
//
//	r.Route("/{id}", func(r chi.Router) {
//	    r.Use(middleware.ValidateIDMiddleware)
//	    r.Get("/", handler.Holding)
//	})
func ValidateIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "id")

		if raw == "" {
			response.RespondError(w, http.StatusBadRequest, "id is required", "")
			return
		}

		if id, err := strconv.ParseInt(raw, 10, 64); err != nil || id <= 0 {
			response.RespondError(w, http.StatusBadRequest, "id must be a positive integer", raw)
			return
		}

		next.ServeHTTP(w, r)
	})
}
