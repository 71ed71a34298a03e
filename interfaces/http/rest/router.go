// Package rest wires the HTTP surface of the organizer: routing,
// middleware and handler construction.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"dotspark-backend/infrastructure/di"
	"dotspark-backend/interfaces/http/rest/handlers"
	"dotspark-backend/interfaces/http/rest/middleware"
)

// Router creates and configures the HTTP router
type Router struct {
	container *di.Container
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(container *di.Container) *Router {
	return &Router{
		container: container,
		logger:    container.Logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	if rt.container.Config.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.dotspark.app"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	organizeHandler := handlers.NewOrganizeHandler(rt.container.Orchestrator, rt.logger)
	sessionHandler := handlers.NewSessionHandler(rt.container.SessionStore, rt.logger)
	patternHandler := handlers.NewPatternHandler(rt.container.PatternStore, rt.logger)

	router.Route("/api/v1", func(r chi.Router) {
		// Organizing works anonymously; identity is attached when present
		// so confirmed proposals can be saved.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuthenticate(rt.container.JWTValidator, rt.logger))
			r.Post("/organize", organizeHandler.OrganizeThoughts)
		})

		// History and pattern endpoints require a signed-in user.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.container.JWTValidator, rt.logger))
			r.Get("/sessions", sessionHandler.ListSessions)
			r.Get("/sessions/{sessionID}", sessionHandler.GetSession)
			r.Get("/patterns", patternHandler.ListPatterns)
		})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
