// Package repositories defines the storage interfaces of the engine. The
// catalog, user ledger and reservation set are in-memory for the lifetime of
// a run; the interfaces keep the services decoupled from that choice.
package repositories

import (
	"github.com/google/uuid"

	"github.com/PooyaTarashi/railway-reservation/models"
)

// TripRepository owns the set of trips and their per-tier capacities.
type TripRepository interface {
	// Add registers a trip. Adding a trip whose ID already exists replaces
	// the earlier definition, matching catalog-load semantics.
	Add(trip *models.Trip)

	// GetByID returns the trip with the canonical ID, if loaded.
	GetByID(id string) (*models.Trip, bool)

	// ListByRoute returns trips on the origin/destination pair in catalog
	// load order.
	ListByRoute(origin, destination string) []*models.Trip

	// ListByCategory returns trips of the vehicle category in catalog load
	// order.
	ListByCategory(category string) []*models.Trip

	// List returns all trips in catalog load order.
	List() []*models.Trip
}

// UserRepository owns the user ledger.
type UserRepository interface {
	// Get returns the ledger record for the name, if one exists.
	Get(name string) (*models.User, bool)

	// Upsert creates the record on first reference and refreshes the age on
	// later ones, returning the live record.
	Upsert(name string, age int) *models.User
}

// ReservationRepository owns the active reservation set in creation order.
type ReservationRepository interface {
	// Add appends a reservation.
	Add(r *models.Reservation)

	// Remove deletes the reservation by ID, reporting whether it existed.
	Remove(id uuid.UUID) bool

	// FindFirst returns the oldest reservation matching the predicate.
	FindFirst(match func(*models.Reservation) bool) (*models.Reservation, bool)

	// ListOldestFirst returns active reservations in creation order.
	ListOldestFirst() []*models.Reservation

	// ListNewestFirst returns active reservations most recent first.
	ListNewestFirst() []*models.Reservation
}
