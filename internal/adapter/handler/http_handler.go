package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rl1809/counter-service/internal/core/domain"
	"github.com/rl1809/counter-service/internal/core/service"
)

type HTTPHandler struct {
	counterService *service.CounterService
}

type IncrementResponse struct {
	Counter int64 `json:"counter"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func NewHTTPHandler(counterService *service.CounterService) *HTTPHandler {
	return &HTTPHandler{counterService: counterService}
}

func (h *HTTPHandler) Increment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	value, err := h.counterService.Increment(r.Context(), domain.WellKnownID)
	if err != nil {
		message := err.Error()
		if errors.Is(err, service.ErrNotConnected) {
			message = "database not connected"
		}

		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: message})
		return
	}

	writeJSON(w, http.StatusOK, IncrementResponse{Counter: value})
}

// HealthCheck reports liveness only; it never probes the database.
func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
