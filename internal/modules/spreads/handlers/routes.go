package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all spread routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/spreads", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
}
