package memory

import (
	"github.com/google/uuid"

	"github.com/PooyaTarashi/railway-reservation/models"
	"github.com/PooyaTarashi/railway-reservation/repositories"
)

// Reservations is the in-memory reservation store, ordered by creation.
// Policy eviction depends on this ordering: capacity cuts evict most recent
// first, age ceilings scan oldest first.
type Reservations struct {
	items []*models.Reservation
}

// NewReservations creates an empty reservation store.
func NewReservations() *Reservations {
	return &Reservations{}
}

var _ repositories.ReservationRepository = (*Reservations)(nil)

// Add appends a reservation.
func (r *Reservations) Add(res *models.Reservation) {
	r.items = append(r.items, res)
}

// Remove deletes the reservation by ID, reporting whether it existed.
func (r *Reservations) Remove(id uuid.UUID) bool {
	for i, res := range r.items {
		if res.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

// FindFirst returns the oldest reservation matching the predicate.
func (r *Reservations) FindFirst(match func(*models.Reservation) bool) (*models.Reservation, bool) {
	for _, res := range r.items {
		if match(res) {
			return res, true
		}
	}
	return nil, false
}

// ListOldestFirst returns a copy of the active set in creation order.
func (r *Reservations) ListOldestFirst() []*models.Reservation {
	out := make([]*models.Reservation, len(r.items))
	copy(out, r.items)
	return out
}

// ListNewestFirst returns a copy of the active set most recent first.
func (r *Reservations) ListNewestFirst() []*models.Reservation {
	out := make([]*models.Reservation, len(r.items))
	for i, res := range r.items {
		out[len(r.items)-1-i] = res
	}
	return out
}

// Len returns the number of active reservations.
func (r *Reservations) Len() int {
	return len(r.items)
}
