package models

import (
	"time"

	"github.com/google/uuid"
)

// Reservation binds one user to one seat tier on one trip at a booking
// instant. It is removed on immediate cancellation or policy eviction, and
// referenced (not removed) while queued for deferred release.
type Reservation struct {
	ID       uuid.UUID `json:"id"`
	UserName string    `json:"user"`
	TripID   string    `json:"trip_id"`
	Tier     TierID    `json:"tier"`
	BookedAt time.Time `json:"booked_at"`
}

// NewReservation creates a reservation for the user on the trip.
func NewReservation(userName, tripID string, tier TierID, bookedAt time.Time) *Reservation {
	return &Reservation{
		ID:       uuid.New(),
		UserName: userName,
		TripID:   tripID,
		Tier:     tier,
		BookedAt: bookedAt,
	}
}

// WaitlistEntry is a reservation enqueued for deferred release on its trip.
// A reservation appears in at most one waitlist at a time.
type WaitlistEntry struct {
	Reservation *Reservation `json:"reservation"`
	RequestedAt time.Time    `json:"requested_at"`
}
