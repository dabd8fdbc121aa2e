// Package app wires the application dependencies.
package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/PooyaTarashi/railway-reservation/auth"
	"github.com/PooyaTarashi/railway-reservation/config"
	"github.com/PooyaTarashi/railway-reservation/middleware"
	"github.com/PooyaTarashi/railway-reservation/repositories"
	"github.com/PooyaTarashi/railway-reservation/repositories/memory"
	"github.com/PooyaTarashi/railway-reservation/services/admission"
	"github.com/PooyaTarashi/railway-reservation/services/cancellation"
	"github.com/PooyaTarashi/railway-reservation/services/catalog"
	"github.com/PooyaTarashi/railway-reservation/services/engine"
	"github.com/PooyaTarashi/railway-reservation/services/policy"
	"github.com/PooyaTarashi/railway-reservation/services/waitlist"
)

// Dependencies holds all application dependencies. This is the central
// wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	Logger *zap.Logger

	// Stores
	Trips        repositories.TripRepository
	Users        repositories.UserRepository
	Reservations repositories.ReservationRepository

	// Engine
	Waitlist     *waitlist.Manager
	Catalog      *catalog.Service
	Admission    *admission.Service
	Cancellation *cancellation.Service
	Policy       *policy.Service
	Engine       *engine.Service

	// Auth
	Tokens         *auth.TokenService
	AuthMiddleware *middleware.AuthMiddleware
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	deps.Trips = memory.NewCatalog()
	deps.Users = memory.NewLedger()
	deps.Reservations = memory.NewReservations()

	deps.Waitlist = waitlist.NewManager(logger)
	deps.Catalog = catalog.NewService(deps.Trips, logger)
	deps.Admission = admission.NewService(deps.Trips, deps.Users, deps.Reservations, deps.Waitlist, logger)
	deps.Cancellation = cancellation.NewService(deps.Trips, deps.Users, deps.Reservations, deps.Waitlist, logger)
	deps.Policy = policy.NewService(deps.Trips, deps.Users, deps.Reservations, deps.Waitlist, logger)
	deps.Engine = engine.NewService(deps.Admission, deps.Cancellation, deps.Policy, deps.Catalog.Ready, logger)

	deps.Tokens = auth.NewTokenService(
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL,
		cfg.Auth.AdminUsername,
		cfg.Auth.AdminPassword,
	)
	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.Tokens, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}
