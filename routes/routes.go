// Package routes configures the HTTP router.
package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/PooyaTarashi/railway-reservation/app"
	"github.com/PooyaTarashi/railway-reservation/handlers"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(deps.Tokens, deps.Logger)
	healthHandler := handlers.NewHealthHandler(deps.Catalog.Ready)
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog, deps.Trips, deps.Logger)
	commandHandler := handlers.NewCommandHandler(deps.Engine, deps.Policy, deps.Logger)

	// Health check endpoints
	r.Get("/healthz", healthHandler.Health)
	r.Get("/readyz", healthHandler.Ready)

	// Operator login
	r.Post("/auth/login", authHandler.Login)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Get("/status", healthHandler.Status)

		// Operator routes
		r.Group(func(r chi.Router) {
			r.Use(deps.AuthMiddleware.RequireAuth)
			r.Post("/catalog", catalogHandler.Load)
			r.Get("/trips", catalogHandler.ListTrips)
			r.Post("/commands", commandHandler.Run)
			r.Get("/policies", commandHandler.ListPolicies)
		})
	})

	return r
}
