package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"glossgraph/internal/controller"
	"glossgraph/internal/layout"
	"glossgraph/internal/service"
	"glossgraph/internal/store"

	"go.uber.org/zap"
)

// ErrorResponse is the JSON body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zap.L().Warn("Failed to encode JSON", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, error, details string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: error, Details: details}, statusCode)
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, controller.ErrUnknownNode),
		errors.Is(err, layout.ErrNotInSimulation):
		return http.StatusNotFound
	case errors.Is(err, controller.ErrInvalidDrag):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotLoaded):
		return http.StatusServiceUnavailable
	case errors.Is(err, store.ErrFetch):
		return http.StatusBadGateway
	case errors.Is(err, store.ErrDecode),
		errors.Is(err, store.ErrDanglingEdge),
		errors.Is(err, store.ErrDuplicateNode),
		errors.Is(err, store.ErrEmptyID):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON request body into v. An empty body leaves v as is.
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
