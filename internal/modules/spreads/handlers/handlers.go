// Package handlers provides HTTP handlers for spread operations.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/aristath/bucketboard/internal/modules/spreads"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Handler handles spread HTTP requests
type Handler struct {
	repo spreads.RepositoryInterface
	log  zerolog.Logger
}

// NewHandler creates a new spread handler
func NewHandler(repo spreads.RepositoryInterface, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "spreads").Logger(),
	}
}

// HandleList handles GET /api/spreads
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.GetAll()
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to get spreads")
		http.Error(w, "Failed to get spreads", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []spreads.Spread{}
	}

	h.writeJSON(w, http.StatusOK, list)
}

// HandleCreate handles POST /api/spreads
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input spreads.SpreadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s := input.ToSpread(uuid.New().String())
	if err := h.repo.Create(s); err != nil {
		h.log.Error().Err(err).Str("ticker", s.Ticker).Msg("Failed to create spread")
		http.Error(w, "Failed to create spread", http.StatusInternalServerError)
		return
	}

	h.log.Info().
		Str("id", s.ID).
		Str("ticker", s.Ticker).
		Str("strategy", s.Strategy).
		Msg("Spread created")

	h.writeJSON(w, http.StatusCreated, s)
}

// HandleUpdate handles PUT /api/spreads/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.repo.GetByID(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get spread")
		http.Error(w, "Failed to get spread", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.Error(w, "Spread not found", http.StatusNotFound)
		return
	}

	var input spreads.SpreadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s := input.ToSpread(id)
	if err := h.repo.Update(s); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to update spread")
		http.Error(w, "Failed to update spread", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, s)
}

// HandleDelete handles DELETE /api/spreads/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	existing, err := h.repo.GetByID(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get spread")
		http.Error(w, "Failed to get spread", http.StatusInternalServerError)
		return
	}
	if existing == nil {
		http.Error(w, "Spread not found", http.StatusNotFound)
		return
	}

	if err := h.repo.Delete(id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete spread")
		http.Error(w, "Failed to delete spread", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
