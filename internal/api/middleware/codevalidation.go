// Package middleware provides HTTP middleware for request validation and processing.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Fund-Valuation-Backend/internal/api/response"
	"github.com/ndewijer/Fund-Valuation-Backend/internal/validation"
)

// ValidateFundCodeMiddleware validates that the code URL parameter is present and is a valid fund code.
// Returns 400 Bad Request if the code is missing or invalid.
//
// Example usage in router:
//
//	r.Route("/{code}", func(r chi.Router) {
//	    r.Use(middleware.ValidateFundCodeMiddleware)
//	    r.Get("/snapshots", handler.Snapshots)
//	})
func ValidateFundCodeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		if code == "" {
			response.RespondError(w, http.StatusBadRequest, "fund code is required", "")
			return
		}

		if err := validation.ValidateFundCode(code); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid fund code", err.Error())
			return
		}

		next.ServeHTTP(w, r)
	})
}
