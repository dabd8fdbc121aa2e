// Package policy applies administrative directives to every trip of a
// vehicle category and reconciles already-committed reservations against the
// tightened rules. Tightening is retroactive for capacity cuts and age
// ceilings: reservations that no longer fit are evicted, one freed seat per
// eviction. Blackout windows and quotas only govern future bookings.
package policy

import (
	"context"

	"go.uber.org/zap"

	"github.com/PooyaTarashi/railway-reservation/models"
	"github.com/PooyaTarashi/railway-reservation/repositories"
	"github.com/PooyaTarashi/railway-reservation/services/waitlist"
)

// Service is the policy engine. It assigns each directive a monotonically
// increasing index and keeps the applied directives as a log.
type Service struct {
	trips        repositories.TripRepository
	users        repositories.UserRepository
	reservations repositories.ReservationRepository
	waitlist     *waitlist.Manager
	logger       *zap.Logger

	directives []models.PolicyDirective
	nextIndex  int
}

// NewService creates a policy engine over the engine state.
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

// Directives returns the applied directive log in registration order.
func (s *Service) Directives() []models.PolicyDirective {
	out := make([]models.PolicyDirective, len(s.directives))
	copy(out, s.directives)
	return out
}

// Apply registers one directive and performs any retroactive eviction. The
// returned outcomes start with the policy_registered outcome, followed by
// one evicted outcome per removed reservation.
func (s *Service) Apply(ctx context.Context, at models.Timestamp, kind models.CommandKind, cmd models.PolicyCommand) []models.Outcome {
	s.nextIndex++
	directive := models.PolicyDirective{
		Index:    s.nextIndex,
		Category: models.CanonicalName(cmd.Category),
		At:       at,
	}

	outcomes := []models.Outcome{{
		Kind:        models.OutcomePolicyRegistered,
		At:          at,
		PolicyIndex: directive.Index,
	}}

	var evictions []models.Outcome
	switch kind {
	case models.CommandCapacityCut:
		directive.Kind = models.DirectiveCapacityCut
		directive.RetainedPercent = cmd.RetainedPercent
		evictions = s.cutCapacity(directive, at)
	case models.CommandAgeCeiling:
		directive.Kind = models.DirectiveAgeCeiling
		directive.AgeCeiling = cmd.AgeCeiling
		evictions = s.applyAgeCeiling(directive, at)
	case models.CommandBlackoutWindow:
		directive.Kind = models.DirectiveBlackoutWindow
		directive.Window = cmd.Window
		s.applyBlackout(directive)
	case models.CommandQuota:
		directive.Kind = models.DirectiveQuota
		directive.Limit = cmd.Limit
		directive.Period = cmd.Period
		s.applyQuota(directive)
	}

	directive.Evictions = len(evictions)
	s.directives = append(s.directives, directive)

	s.logger.Info("policy directive applied",
		zap.Int("index", directive.Index),
		zap.String("kind", string(directive.Kind)),
		zap.String("category", directive.Category),
		zap.Int("evictions", directive.Evictions))

	return append(outcomes, evictions...)
}

// cutCapacity reduces every tier of the category's trips by
// original * (100 - retained) / 100, on both the live and baseline views.
// The live capacity may go negative; reservations are then evicted, most
// recently created first, until every tier is non-negative again.
func (s *Service) cutCapacity(directive models.PolicyDirective, at models.Timestamp) []models.Outcome {
	for _, trip := range s.trips.ListByCategory(directive.Category) {
		for tier := range trip.Remaining {
			reduction := trip.Original[tier] * (100 - directive.RetainedPercent) / 100
			trip.Baseline[tier] -= reduction
			trip.Remaining[tier] -= reduction
		}
	}

	var evictions []models.Outcome
	for _, res := range s.reservations.ListNewestFirst() {
		trip, ok := s.trips.GetByID(res.TripID)
		if !ok || trip.Category != directive.Category {
			continue
		}
		if trip.Remaining[res.Tier] < 0 {
			evictions = append(evictions, s.evict(res, trip, directive, at))
		}
	}
	return evictions
}

// applyAgeCeiling sets the new ceiling on the category's trips and evicts
// every holder over it. The scan runs over a snapshot of the reservation
// set so evicting one candidate cannot skip the next.
func (s *Service) applyAgeCeiling(directive models.PolicyDirective, at models.Timestamp) []models.Outcome {
	for _, trip := range s.trips.ListByCategory(directive.Category) {
		trip.AgeCeiling = directive.AgeCeiling
	}

	var evictions []models.Outcome
	for _, res := range s.reservations.ListOldestFirst() {
		trip, ok := s.trips.GetByID(res.TripID)
		if !ok || trip.Category != directive.Category {
			continue
		}
		holder, ok := s.users.Get(res.UserName)
		if !ok {
			continue
		}
		if holder.Age > directive.AgeCeiling {
			evictions = append(evictions, s.evict(res, trip, directive, at))
		}
	}
	return evictions
}

func (s *Service) applyBlackout(directive models.PolicyDirective) {
	for _, trip := range s.trips.ListByCategory(directive.Category) {
		trip.Blackout = directive.Window
	}
}

func (s *Service) applyQuota(directive models.PolicyDirective) {
	for _, trip := range s.trips.ListByCategory(directive.Category) {
		trip.Quota = &models.QuotaRule{Limit: directive.Limit, Period: directive.Period}
	}
}

// evict removes one reservation, frees its seat, and drops any waitlist
// entry referencing it. Eviction leaves the holder's booking history and
// cancellation stamp alone: it is a forced removal, not a cancellation.
func (s *Service) evict(res *models.Reservation, trip *models.Trip, directive models.PolicyDirective, at models.Timestamp) models.Outcome {
	trip.Remaining[res.Tier]++
	s.reservations.Remove(res.ID)
	s.waitlist.Remove(res.ID)

	s.logger.Info("reservation evicted",
		zap.Int("policy_index", directive.Index),
		zap.String("trip_id", trip.ID),
		zap.String("user", res.UserName),
		zap.Int("tier", int(res.Tier)))

	return models.Outcome{
		Kind:        models.OutcomeEvicted,
		At:          at,
		User:        res.UserName,
		TripID:      trip.ID,
		Tier:        res.Tier,
		PolicyIndex: directive.Index,
	}
}
