// Package handlers provides HTTP handlers for dashboard operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/aristath/bucketboard/internal/modules/dashboard"
	"github.com/aristath/bucketboard/internal/modules/snapshots"
	"github.com/rs/zerolog"
)

// Handler handles dashboard HTTP requests
type Handler struct {
	service      *dashboard.Service
	snapshotRepo *snapshots.Repository
	log          zerolog.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(service *dashboard.Service, snapshotRepo *snapshots.Repository, log zerolog.Logger) *Handler {
	return &Handler{
		service:      service,
		snapshotRepo: snapshotRepo,
		log:          log.With().Str("handler", "dashboard").Logger(),
	}
}

// HandleGet handles GET /api/dashboard
// Runs a full evaluation cycle and returns the computed view.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Evaluate(time.Now())
	if err != nil {
		h.log.Error().Err(err).Msg("Evaluation cycle failed")
		http.Error(w, "Evaluation failed", http.StatusInternalServerError)
		return
	}

	h.storeSnapshot(view)
	h.writeJSON(w, http.StatusOK, view)
}

// HandleRefresh handles POST /api/dashboard/refresh
// Invalidates cached prices before evaluating, so every ticker gets a fresh
// live lookup.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Refresh(time.Now())
	if err != nil {
		h.log.Error().Err(err).Msg("Refresh cycle failed")
		http.Error(w, "Refresh failed", http.StatusInternalServerError)
		return
	}

	h.storeSnapshot(view)
	h.writeJSON(w, http.StatusOK, view)
}

// HandleGetSnapshot handles GET /api/dashboard/snapshot
// Returns the last stored view without recomputing.
func (h *Handler) HandleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	var view dashboard.View
	found, createdAt, err := h.snapshotRepo.Load(&view)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load snapshot")
		http.Error(w, "Failed to load snapshot", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "No snapshot available", http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"created_at": createdAt.Format(time.RFC3339),
		"view":       view,
	})
}

// storeSnapshot persists the computed view; failures are logged, never
// surfaced, since the caller already has the live result.
func (h *Handler) storeSnapshot(view dashboard.View) {
	if h.snapshotRepo == nil {
		return
	}
	if err := h.snapshotRepo.Store(view); err != nil {
		h.log.Warn().Err(err).Msg("Failed to store dashboard snapshot")
	}
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
