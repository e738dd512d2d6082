// Package api serves weekly analyses over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"opportunity-insights-go/internal/dataset"
	"opportunity-insights-go/internal/types"
)

type jsonError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSONError writes a JSON error payload with the given status code.
func WriteJSONError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(jsonError{Error: message, Details: details})
}

// statusFor maps pass errors onto HTTP status codes.
func statusFor(err error) (int, string) {
	var missing *types.MissingDataError
	switch {
	case errors.As(err, &missing):
		return http.StatusUnprocessableEntity, "missing required data"
	case errors.Is(err, dataset.ErrWeekNotFound):
		return http.StatusNotFound, "week not found"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
