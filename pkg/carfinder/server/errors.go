package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nekruzvatanshoev/carfinder/pkg/carfinder/dal"
	"go.uber.org/zap"
)

type envelope map[string]any

func (h *httpServer) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("failed to encode response", zap.Error(err))
	}
}

func (h *httpServer) errorResponse(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, envelope{"error": message})
}

// catalogErrorResponse reports a catalog that is still loading or failed.
func (h *httpServer) catalogErrorResponse(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dal.ErrCatalogLoading):
		h.errorResponse(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, dal.ErrCatalogUnavailable):
		h.errorResponse(w, http.StatusBadGateway, err.Error())
	default:
		h.serverErrorResponse(w, err)
	}
}

func (h *httpServer) serverErrorResponse(w http.ResponseWriter, err error) {
	h.log.Error("request failed", zap.Error(err))
	h.errorResponse(w, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func (h *httpServer) rateLimitExceededResponse(w http.ResponseWriter) {
	h.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
}
