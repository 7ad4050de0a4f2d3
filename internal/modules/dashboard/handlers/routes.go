package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all dashboard routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Post("/refresh", h.HandleRefresh)
		r.Get("/snapshot", h.HandleGetSnapshot)
	})
}
