// Package waitlist manages the per-trip FIFO queues of deferred premium
// cancellations. A premium cancellation does not release capacity; it waits
// here until a new booking for the same trip and tier promotes it, which is
// the moment the seat actually changes hands.
package waitlist

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/PooyaTarashi/railway-reservation/models"
)

// Manager owns the deferred-cancellation queues, keyed by trip ID.
type Manager struct {
	queues map[string][]*models.WaitlistEntry
	logger *zap.Logger
}

// NewManager creates an empty waitlist manager.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		queues: make(map[string][]*models.WaitlistEntry),
		logger: logger,
	}
}

// Enqueue appends a reservation to its trip's queue.
func (m *Manager) Enqueue(res *models.Reservation, requestedAt time.Time) {
	m.queues[res.TripID] = append(m.queues[res.TripID], &models.WaitlistEntry{
		Reservation: res,
		RequestedAt: requestedAt,
	})
	m.logger.Debug("queued deferred cancellation",
		zap.String("trip_id", res.TripID),
		zap.String("user", res.UserName),
		zap.Int("tier", int(res.Tier)),
		zap.Int("queue_len", len(m.queues[res.TripID])))
}

// Contains reports whether the reservation is already queued on its trip.
func (m *Manager) Contains(reservationID uuid.UUID) bool {
	for _, queue := range m.queues {
		for _, entry := range queue {
			if entry.Reservation.ID == reservationID {
				return true
			}
		}
	}
	return false
}

// PopOldest removes and returns the oldest queued entry on the trip whose
// tier matches. Returns false if no such entry is queued.
func (m *Manager) PopOldest(tripID string, tier models.TierID) (*models.WaitlistEntry, bool) {
	queue := m.queues[tripID]
	for i, entry := range queue {
		if entry.Reservation.Tier == tier {
			m.queues[tripID] = append(queue[:i], queue[i+1:]...)
			return entry, true
		}
	}
	return nil, false
}

// Remove deletes a queued entry by reservation ID, reporting whether one was
// queued. Policy eviction of a queued reservation uses this to keep the
// at-most-one-waitlist invariant.
func (m *Manager) Remove(reservationID uuid.UUID) bool {
	for tripID, queue := range m.queues {
		for i, entry := range queue {
			if entry.Reservation.ID == reservationID {
				m.queues[tripID] = append(queue[:i], queue[i+1:]...)
				return true
			}
		}
	}
	return false
}

// Len returns the queue length for a trip.
func (m *Manager) Len(tripID string) int {
	return len(m.queues[tripID])
}
