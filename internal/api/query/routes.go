package query

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers query pipeline routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/query", h.Ask)
	r.Post("/summarize", h.Summarize)
	r.Post("/compare", h.Compare)
	r.Post("/export", h.Export)
}
