package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/api/docs"
	"github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/api/middleware"
	queryapi "github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/api/query"
	sessionapi "github.com/WillyEverGreen/TSEC-LEGAL-AI/internal/api/session"
)

// SetupRouter creates and configures the HTTP router
func SetupRouter(queryHandler *queryapi.Handler, sessionHandler *sessionapi.Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)   // Recover from panics
	r.Use(chimiddleware.RequestID)   // Add request ID
	r.Use(middleware.Logger(logger)) // Log requests
	r.Use(middleware.CORS)           // Handle CORS
	// Answer generation alone may take two minutes, so the route budget
	// sits above it.
	r.Use(chimiddleware.Timeout(3 * time.Minute))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	queryapi.RegisterRoutes(r, queryHandler)
	sessionapi.RegisterRoutes(r, sessionHandler)

	return r
}
