package session

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/session", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Get("/{id}", h.GetSession)
		r.Get("/{id}/history", h.GetHistory)
		r.Post("/{id}/clear", h.ClearSession)
		r.Delete("/{id}", h.DeleteSession)
	})
}
