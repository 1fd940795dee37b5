package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shivamkr/orderpipe/internal/warehouse"
	"github.com/shivamkr/orderpipe/pkg/database"
	"github.com/shivamkr/orderpipe/pkg/logger"
)

// StatusHandler serves health, warehouse counts and the run log.
type StatusHandler struct {
	db     *database.DB
	runs   *warehouse.RunRepository
	logger *logger.Logger
}

// NewStatusHandler creates a status handler.
func NewStatusHandler(db *database.DB, runs *warehouse.RunRepository, log *logger.Logger) *StatusHandler {
	return &StatusHandler{
		db:     db,
		runs:   runs,
		logger: log,
	}
}

// Health returns service and database health
// GET /health
func (h *StatusHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "ok",
		"service": "orderpipe-api",
	}

	if h.db != nil {
		status, err := h.db.HealthCheck(r.Context())
		if err != nil {
			response["status"] = "degraded"
		}
		response["database"] = status
	}

	respondJSON(w, http.StatusOK, response)
}

// GetCounts returns row counts of the staging and star-schema tables
// GET /api/warehouse/counts
func (h *StatusHandler) GetCounts(w http.ResponseWriter, r *http.Request) {
	counts, err := warehouse.Validate(r.Context(), h.db)
	if err != nil {
		h.logger.WithError(err).Error("Failed to count warehouse tables")
		respondError(w, http.StatusInternalServerError, "Failed to count warehouse tables")
		return
	}

	respondJSON(w, http.StatusOK, counts)
}

// GetRuns returns recent pipeline runs, newest first
// GET /api/runs?limit=20
func (h *StatusHandler) GetRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := h.runs.Recent(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to query recent runs")
		respondError(w, http.StatusInternalServerError, "Failed to query recent runs")
		return
	}
	if runs == nil {
		runs = []warehouse.Run{}
	}

	respondJSON(w, http.StatusOK, runs)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
