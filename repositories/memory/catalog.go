// Package memory provides the in-memory repository implementations backing a
// single engine run. The engine is single-threaded by contract, so the
// stores do no locking.
package memory

import (
	"github.com/PooyaTarashi/railway-reservation/models"
	"github.com/PooyaTarashi/railway-reservation/repositories"
)

// Catalog is the in-memory trip store. Iteration order is catalog load
// order, which makes departure-time sorting in the admission pipeline stable
// across runs.
type Catalog struct {
	byID  map[string]*models.Trip
	order []string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[string]*models.Trip)}
}

var _ repositories.TripRepository = (*Catalog)(nil)

// Add registers a trip, replacing any earlier definition with the same ID.
func (c *Catalog) Add(trip *models.Trip) {
	if _, ok := c.byID[trip.ID]; !ok {
		c.order = append(c.order, trip.ID)
	}
	c.byID[trip.ID] = trip
}

// GetByID returns the trip with the canonical ID, if loaded.
func (c *Catalog) GetByID(id string) (*models.Trip, bool) {
	trip, ok := c.byID[id]
	return trip, ok
}

// ListByRoute returns trips on the origin/destination pair in load order.
func (c *Catalog) ListByRoute(origin, destination string) []*models.Trip {
	origin = models.CanonicalName(origin)
	destination = models.CanonicalName(destination)
	var trips []*models.Trip
	for _, id := range c.order {
		trip := c.byID[id]
		if trip.Origin == origin && trip.Destination == destination {
			trips = append(trips, trip)
		}
	}
	return trips
}

// ListByCategory returns trips of the vehicle category in load order.
func (c *Catalog) ListByCategory(category string) []*models.Trip {
	category = models.CanonicalName(category)
	var trips []*models.Trip
	for _, id := range c.order {
		trip := c.byID[id]
		if trip.Category == category {
			trips = append(trips, trip)
		}
	}
	return trips
}

// List returns all trips in load order.
func (c *Catalog) List() []*models.Trip {
	trips := make([]*models.Trip, 0, len(c.order))
	for _, id := range c.order {
		trips = append(trips, c.byID[id])
	}
	return trips
}

// Len returns the number of loaded trips.
func (c *Catalog) Len() int {
	return len(c.order)
}
