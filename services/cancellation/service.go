// Package cancellation evaluates cancellation commands. A standard-tier
// cancellation releases the seat immediately; a premium-tier cancellation is
// deferred: the reservation joins its trip's waitlist and the seat is only
// released when a later premium booking promotes the entry, so premium
// capacity changes hands atomically with replacement demand, never before.
package cancellation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/PooyaTarashi/railway-reservation/models"
	"github.com/PooyaTarashi/railway-reservation/repositories"
	"github.com/PooyaTarashi/railway-reservation/services/waitlist"
)

// Cooldown is the minimum spacing between a user's cancellation-completing
// events. A second cancellation strictly within this window is rejected.
const Cooldown = time.Hour

// Service is the cancellation pipeline.
type Service struct {
	trips        repositories.TripRepository
	users        repositories.UserRepository
	reservations repositories.ReservationRepository
	waitlist     *waitlist.Manager
	logger       *zap.Logger
}

// NewService creates a cancellation pipeline over the engine state.
func NewService(
	trips repositories.TripRepository,
	users repositories.UserRepository,
	reservations repositories.ReservationRepository,
	waitlist *waitlist.Manager,
	logger *zap.Logger,
) *Service {
	return &Service{
		trips:        trips,
		users:        users,
		reservations: reservations,
		waitlist:     waitlist,
		logger:       logger,
	}
}

// Process evaluates one cancellation command and returns its outcome.
func (s *Service) Process(ctx context.Context, at models.Timestamp, cmd models.CancellationCommand) models.Outcome {
	// Rule 1: the active reservation must exist. The oldest match wins when
	// the user holds several on the route.
	res, ok := s.findReservation(cmd)
	if !ok {
		return models.Rejected(at, cmd.User, cmd.Tier, models.ReasonReservationNotFound)
	}

	trip, ok := s.trips.GetByID(res.TripID)
	if !ok {
		return models.Rejected(at, cmd.User, cmd.Tier, models.ReasonReservationNotFound)
	}

	// Rule 2: the trip must not have departed. Cancellation exactly at
	// departure is still allowed.
	if trip.Departure.Before(at.Time) {
		return models.Rejected(at, cmd.User, cmd.Tier, models.ReasonTripDeparted)
	}

	// Rule 3: a reservation already queued for deferred release cannot be
	// cancelled again.
	if s.waitlist.Contains(res.ID) {
		return models.Rejected(at, cmd.User, cmd.Tier, models.ReasonDuplicateCancelRequest)
	}

	// Rule 4: cooldown, uniform across tiers. Exactly one hour later is
	// allowed again.
	user, ok := s.users.Get(cmd.User)
	if !ok {
		return models.Rejected(at, cmd.User, cmd.Tier, models.ReasonReservationNotFound)
	}
	if !user.LastCancellation.IsZero() && user.LastCancellation.Add(Cooldown).After(at.Time) {
		return models.Rejected(at, cmd.User, cmd.Tier, models.ReasonCancelCooldown)
	}

	if res.Tier == models.TierStandard {
		// Immediate release.
		s.reservations.Remove(res.ID)
		trip.Remaining[res.Tier]++
		user.LastCancellation = at.Time
		user.RemoveBooking(res.BookedAt)

		s.logger.Info("reservation cancelled",
			zap.String("trip_id", trip.ID),
			zap.String("user", cmd.User))

		return models.Outcome{
			Kind:   models.OutcomeCancelled,
			At:     at,
			User:   cmd.User,
			TripID: trip.ID,
			Tier:   res.Tier,
		}
	}

	// Premium: defer. Capacity is untouched; the reservation stays active
	// and joins the trip's waitlist. The request still counts as the user's
	// cancellation for cooldown purposes; a later promotion re-stamps with
	// the promoting booking's instant.
	s.waitlist.Enqueue(res, at.Time)
	user.LastCancellation = at.Time

	s.logger.Info("cancellation queued",
		zap.String("trip_id", trip.ID),
		zap.String("user", cmd.User),
		zap.Int("tier", int(res.Tier)))

	return models.Outcome{
		Kind:   models.OutcomeQueued,
		At:     at,
		User:   cmd.User,
		TripID: trip.ID,
		Tier:   res.Tier,
	}
}

// findReservation resolves the oldest active reservation matching the
// command. An empty category matches any trip on the route.
func (s *Service) findReservation(cmd models.CancellationCommand) (*models.Reservation, bool) {
	origin := models.CanonicalName(cmd.Origin)
	destination := models.CanonicalName(cmd.Destination)
	category := models.CanonicalName(cmd.Category)

	return s.reservations.FindFirst(func(res *models.Reservation) bool {
		if res.UserName != cmd.User || res.Tier != cmd.Tier {
			return false
		}
		trip, ok := s.trips.GetByID(res.TripID)
		if !ok {
			return false
		}
		if trip.Origin != origin || trip.Destination != destination {
			return false
		}
		return cmd.Category == "" || trip.Category == category
	})
}
