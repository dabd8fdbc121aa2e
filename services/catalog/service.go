// Package catalog loads trip-definition batches into the trip store. A batch
// succeeds or fails as a unit: one malformed record invalidates the whole
// load and the catalog stays empty.
package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/PooyaTarashi/railway-reservation/models"
	"github.com/PooyaTarashi/railway-reservation/repositories"
	"github.com/PooyaTarashi/railway-reservation/services"
	"github.com/PooyaTarashi/railway-reservation/utils"
)

// Service owns catalog loading and the "catalog ready" signal.
type Service struct {
	trips  repositories.TripRepository
	logger *zap.Logger
	ready  bool
}

// NewService creates a catalog service over the trip store.
func NewService(trips repositories.TripRepository, logger *zap.Logger) *Service {
	return &Service{
		trips:  trips,
		logger: logger,
	}
}

// Ready reports whether a catalog batch has loaded successfully.
func (s *Service) Ready() bool {
	return s.ready
}

// Load validates and commits a trip-definition batch. All records are
// validated and built before any is committed, so a failure leaves the
// catalog untouched.
func (s *Service) Load(ctx context.Context, records []models.TripRecord) error {
	if s.ready {
		return services.ErrCatalogAlreadyLoaded
	}
	if len(records) == 0 {
		return services.NewDomainError(services.ErrorTypeValidation,
			"invalid catalog batch", nil).WithDetail("reason", "empty batch")
	}

	trips := make([]*models.Trip, 0, len(records))
	for i, record := range records {
		trip, err := buildTrip(record)
		if err != nil {
			s.logger.Warn("catalog batch rejected",
				zap.Int("record", i),
				zap.Error(err))
			return services.NewDomainError(services.ErrorTypeValidation,
				"invalid catalog batch", err).WithDetail("record", i)
		}
		trips = append(trips, trip)
	}

	for _, trip := range trips {
		s.trips.Add(trip)
	}
	s.ready = true

	s.logger.Info("catalog loaded",
		zap.Int("trips", len(trips)))
	return nil
}

// buildTrip validates one record and constructs its trip.
func buildTrip(record models.TripRecord) (*models.Trip, error) {
	if err := utils.ValidateStruct(record); err != nil {
		return nil, err
	}

	departure, err := models.ParseTimestamp(record.Departure)
	if err != nil {
		return nil, err
	}

	if len(record.PremiumTiers) != record.PremiumTierCount {
		return nil, fmt.Errorf("premium tier count %d does not match %d capacities",
			record.PremiumTierCount, len(record.PremiumTiers))
	}

	capacity := map[models.TierID]int{models.TierStandard: record.StandardCapacity}
	for i, seats := range record.PremiumTiers {
		if seats < 0 {
			return nil, fmt.Errorf("negative capacity %d for premium tier %d", seats, i+1)
		}
		capacity[models.TierID(i+1)] = seats
	}

	return models.NewTrip(record.Category, record.Origin, record.Destination, departure, capacity), nil
}
