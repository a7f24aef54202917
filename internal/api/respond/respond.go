// Package respond provides shared JSON response utilities for API handlers.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/mgcare/carefinder/internal/errs"
)

// ErrorResponse is the standard error shape for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON marshals a Go value to JSON and writes it.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError sends the flat error shape with the given status.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// Error classifies err against the error taxonomy and writes the
// matching status: validation 400, not-found 404, everything else 500.
func Error(w http.ResponseWriter, err error) {
	switch {
	case errs.Is(err, errs.ErrValidation):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errs.Is(err, errs.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}
