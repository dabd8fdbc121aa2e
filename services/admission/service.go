// Package admission evaluates booking commands against the catalog, the user
// ledger and the waitlists. Rules run in a fixed order and the first failure
// is the reported rejection reason; only a booking that passes every rule
// mutates state.
//
// The one exception is waitlist promotion: a premium booking that pops a
// queued cancellation commits the pop (capacity release and cancellation
// stamp) before the remaining rules run, because the deferred cancellation
// has completed regardless of whether this booking is ultimately admitted.
package admission

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/PooyaTarashi/railway-reservation/models"
	"github.com/PooyaTarashi/railway-reservation/repositories"
	"github.com/PooyaTarashi/railway-reservation/services/waitlist"
)

// PremiumEligibilityWindow is the rolling window within which a user's most
// recent booking must fall for a premium-tier booking to be admitted.
const PremiumEligibilityWindow = 30 * 24 * time.Hour

// Service is the admission pipeline.
type Service struct {
	trips        repositories.TripRepository
	users        repositories.UserRepository
	reservations repositories.ReservationRepository
	waitlist     *waitlist.Manager
	logger       *zap.Logger
}

// NewService creates an admission pipeline over the engine state.
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

// Process evaluates one booking command and returns its outcome.
func (s *Service) Process(ctx context.Context, at models.Timestamp, cmd models.BookingCommand) models.Outcome {
	// The ledger record is created, or its age refreshed, before any rule
	// runs, even for bookings that end up rejected.
	user := s.users.Upsert(cmd.User, cmd.Age)

	// Rule 1: trip resolution.
	trip, reason := s.resolveTrip(at.Time, cmd)
	if reason != "" {
		return models.Rejected(at, cmd.User, cmd.Tier, reason)
	}

	// Rule 2: blackout window, exclusive at both ends.
	if trip.Blackout != nil && trip.Blackout.Contains(models.ClockTimeOf(at.Time)) {
		return models.Rejected(at, cmd.User, cmd.Tier, models.ReasonBookingBlocked)
	}

	// Rule 3: age ceiling.
	if cmd.Age > trip.AgeCeiling {
		return models.Rejected(at, cmd.User, cmd.Tier, models.ReasonBookingBlocked)
	}

	// Rule 4: the request must precede departure.
	if trip.Departed(at.Time) {
		return models.Rejected(at, cmd.User, cmd.Tier, models.ReasonRouteNotFound)
	}

	// Rule 5: premium eligibility. The most recent booking must be within
	// the rolling 30-day window.
	if cmd.Tier.IsPremium() {
		last, ok := user.LastBooking()
		if !ok || last.Add(PremiumEligibilityWindow).Before(at.Time) {
			return models.Rejected(at, cmd.User, cmd.Tier, models.ReasonVipIneligible)
		}
	}

	// Rule 6: waitlist promotion. Replacement demand has arrived, so the
	// oldest deferred cancellation for this tier completes now: its
	// reservation is removed, the seat is freed, and the holder's
	// last-cancellation instant is stamped with this request's instant.
	var promotedUser string
	if cmd.Tier.IsPremium() {
		if entry, ok := s.waitlist.PopOldest(trip.ID, cmd.Tier); ok {
			s.reservations.Remove(entry.Reservation.ID)
			trip.Remaining[cmd.Tier]++
			if holder, ok := s.users.Get(entry.Reservation.UserName); ok {
				holder.LastCancellation = at.Time
			}
			promotedUser = entry.Reservation.UserName
			s.logger.Debug("promoted queued cancellation",
				zap.String("trip_id", trip.ID),
				zap.String("holder", promotedUser),
				zap.Int("tier", int(cmd.Tier)))
		}
	}

	// Rule 7: capacity.
	if trip.Remaining[cmd.Tier] <= 0 {
		return models.Rejected(at, cmd.User, cmd.Tier, models.ReasonCapacityExhausted)
	}

	// Rule 8: periodic quota.
	if s.quotaExceeded(trip, at.Time) {
		return models.Rejected(at, cmd.User, cmd.Tier, models.ReasonBookingBlocked)
	}

	// Admitted: commit all mutations.
	res := models.NewReservation(cmd.User, trip.ID, cmd.Tier, at.Time)
	s.reservations.Add(res)
	user.RecordBooking(at.Time)
	trip.Remaining[cmd.Tier]--
	trip.QuotaCount++
	trip.LastBooking = at.Time

	s.logger.Info("booking accepted",
		zap.String("trip_id", trip.ID),
		zap.String("user", cmd.User),
		zap.Int("tier", int(cmd.Tier)),
		zap.Bool("promoted", promotedUser != ""))

	return models.Outcome{
		Kind:         models.OutcomeAccepted,
		At:           at,
		User:         cmd.User,
		TripID:       trip.ID,
		Tier:         cmd.Tier,
		Promoted:     promotedUser != "",
		PromotedUser: promotedUser,
	}
}

// resolveTrip finds the trip a booking targets. With an explicit category the
// canonical key must exist and offer the tier. With no category, candidates
// on the route departing strictly after the request and offering the tier are
// ordered by departure; the first with seats left wins. No candidates at all
// is a missing route; candidates that are all full is exhausted capacity.
func (s *Service) resolveTrip(at time.Time, cmd models.BookingCommand) (*models.Trip, models.RejectionReason) {
	if cmd.Category != "" {
		trip, ok := s.trips.GetByID(models.TripKey(cmd.Category, cmd.Origin, cmd.Destination))
		if !ok || !trip.HasTier(cmd.Tier) {
			return nil, models.ReasonRouteNotFound
		}
		return trip, ""
	}

	var candidates []*models.Trip
	for _, trip := range s.trips.ListByRoute(cmd.Origin, cmd.Destination) {
		if trip.Departure.After(at) && trip.HasTier(cmd.Tier) {
			candidates = append(candidates, trip)
		}
	}
	if len(candidates) == 0 {
		return nil, models.ReasonRouteNotFound
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Departure.Before(candidates[j].Departure.Time)
	})

	for _, trip := range candidates {
		if trip.Remaining[cmd.Tier] > 0 {
			return trip, ""
		}
	}
	return nil, models.ReasonCapacityExhausted
}

// quotaExceeded applies the trip's periodic quota, resetting the counter when
// the period has rolled over since the last booking. The check is skipped
// until the trip has at least one prior booking.
func (s *Service) quotaExceeded(trip *models.Trip, at time.Time) bool {
	if trip.Quota == nil || trip.LastBooking.IsZero() {
		return false
	}

	switch trip.Quota.Period {
	case models.QuotaPeriodWeek:
		if at.Sub(trip.LastBooking) > 7*24*time.Hour {
			trip.QuotaCount = 0
		}
	case models.QuotaPeriodDay:
		if !models.SameCalendarDay(trip.LastBooking, at) {
			trip.QuotaCount = 0
		}
	case models.QuotaPeriodMonth:
		if !models.SameCalendarMonth(trip.LastBooking, at) {
			trip.QuotaCount = 0
		}
	}

	return trip.QuotaCount >= trip.Quota.Limit
}
