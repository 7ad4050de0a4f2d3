// Package handlers provides HTTP handlers for position operations.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aristath/bucketboard/internal/modules/positions"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Handler handles position HTTP requests
type Handler struct {
	repo positions.RepositoryInterface
	log  zerolog.Logger
}

// NewHandler creates a new position handler
func NewHandler(repo positions.RepositoryInterface, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		log:  log.With().Str("handler", "positions").Logger(),
	}
}

// bucketFromURL parses and validates the {bucket} URL parameter.
// Only buckets 1 and 3 hold Position records.
func bucketFromURL(r *http.Request) (int, bool) {
	bucket, err := strconv.Atoi(chi.URLParam(r, "bucket"))
	if err != nil {
		return 0, false
	}
	if bucket != positions.BucketCore && bucket != positions.BucketSpeculative {
		return 0, false
	}
	return bucket, true
}

// HandleList handles GET /api/buckets/{bucket}/positions
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	bucket, ok := bucketFromURL(r)
	if !ok {
		http.Error(w, "Invalid bucket", http.StatusBadRequest)
		return
	}

	list, err := h.repo.GetByBucket(bucket)
	if err != nil {
		h.log.Error().Err(err).Int("bucket", bucket).Msg("Failed to get positions")
		http.Error(w, "Failed to get positions", http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []positions.Position{}
	}

	h.writeJSON(w, http.StatusOK, list)
}

// HandleCreate handles POST /api/buckets/{bucket}/positions
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	bucket, ok := bucketFromURL(r)
	if !ok {
		http.Error(w, "Invalid bucket", http.StatusBadRequest)
		return
	}

	var input positions.PositionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pos := input.ToPosition(uuid.New().String(), bucket)
	if err := h.repo.Create(pos); err != nil {
		h.log.Error().Err(err).Str("ticker", pos.Ticker).Msg("Failed to create position")
		http.Error(w, "Failed to create position", http.StatusInternalServerError)
		return
	}

	h.log.Info().
		Str("id", pos.ID).
		Int("bucket", bucket).
		Str("ticker", pos.Ticker).
		Msg("Position created")

	h.writeJSON(w, http.StatusCreated, pos)
}

// HandleUpdate handles PUT /api/buckets/{bucket}/positions/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	bucket, ok := bucketFromURL(r)
	if !ok {
		http.Error(w, "Invalid bucket", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	existing, err := h.repo.GetByID(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get position")
		http.Error(w, "Failed to get position", http.StatusInternalServerError)
		return
	}
	if existing == nil || existing.Bucket != bucket {
		http.Error(w, "Position not found", http.StatusNotFound)
		return
	}

	var input positions.PositionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	pos := input.ToPosition(id, bucket)
	if err := h.repo.Update(pos); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to update position")
		http.Error(w, "Failed to update position", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, http.StatusOK, pos)
}

// HandleDelete handles DELETE /api/buckets/{bucket}/positions/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	bucket, ok := bucketFromURL(r)
	if !ok {
		http.Error(w, "Invalid bucket", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	existing, err := h.repo.GetByID(id)
	if err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to get position")
		http.Error(w, "Failed to get position", http.StatusInternalServerError)
		return
	}
	if existing == nil || existing.Bucket != bucket {
		http.Error(w, "Position not found", http.StatusNotFound)
		return
	}

	if err := h.repo.Delete(id); err != nil {
		h.log.Error().Err(err).Str("id", id).Msg("Failed to delete position")
		http.Error(w, "Failed to delete position", http.StatusInternalServerError)
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
