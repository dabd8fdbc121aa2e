package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/PooyaTarashi/railway-reservation/models"
	"github.com/PooyaTarashi/railway-reservation/repositories/memory"
	"github.com/PooyaTarashi/railway-reservation/services"
	"github.com/PooyaTarashi/railway-reservation/services/admission"
	"github.com/PooyaTarashi/railway-reservation/services/cancellation"
	"github.com/PooyaTarashi/railway-reservation/services/catalog"
	"github.com/PooyaTarashi/railway-reservation/services/policy"
	"github.com/PooyaTarashi/railway-reservation/services/waitlist"
)

func newEngine(t *testing.T, records []models.TripRecord) *Service {
	t.Helper()
	logger := zaptest.NewLogger(t)
	trips := memory.NewCatalog()
	users := memory.NewLedger()
	reservations := memory.NewReservations()
	queues := waitlist.NewManager(logger)

	cat := catalog.NewService(trips, logger)
	if records != nil {
		require.NoError(t, cat.Load(context.Background(), records))
	}

	return NewService(
		admission.NewService(trips, users, reservations, queues, logger),
		cancellation.NewService(trips, users, reservations, queues, logger),
		policy.NewService(trips, users, reservations, queues, logger),
		cat.Ready,
		logger,
	)
}

func ts(t *testing.T, s string) models.Timestamp {
	t.Helper()
	out, err := models.ParseTimestamp(s)
	require.NoError(t, err)
	return out
}

func booking(t *testing.T, at, user string, tier models.TierID) models.Command {
	t.Helper()
	return models.Command{
		Kind: models.CommandBooking,
		At:   ts(t, at),
		Booking: &models.BookingCommand{
			User: user, Origin: "A", Destination: "B", Category: "Express", Tier: tier, Age: 30,
		},
	}
}

func cancel(t *testing.T, at, user string, tier models.TierID) models.Command {
	t.Helper()
	return models.Command{
		Kind: models.CommandCancellation,
		At:   ts(t, at),
		Cancellation: &models.CancellationCommand{
			User: user, Origin: "A", Destination: "B", Tier: tier,
		},
	}
}

func TestRun_RequiresLoadedCatalog(t *testing.T) {
	eng := newEngine(t, nil)

	_, err := eng.Run(context.Background(), []models.Command{booking(t, "2024/01/01-09:00", "user1", models.TierStandard)})
	require.Error(t, err)
	assert.True(t, services.IsUnavailableError(err))
}

func TestRun_RejectsInvalidCommands(t *testing.T) {
	records := []models.TripRecord{{
		Category: "Express", Origin: "A", Destination: "B",
		Departure: "2024/01/10-10:00", StandardCapacity: 5,
	}}

	t.Run("unknown kind", func(t *testing.T) {
		eng := newEngine(t, records)
		_, err := eng.Run(context.Background(), []models.Command{{Kind: "teleport", At: ts(t, "2024/01/01-09:00")}})
		require.Error(t, err)
		assert.True(t, services.IsValidationError(err))
	})

	t.Run("missing payload", func(t *testing.T) {
		eng := newEngine(t, records)
		_, err := eng.Run(context.Background(), []models.Command{{Kind: models.CommandBooking, At: ts(t, "2024/01/01-09:00")}})
		require.Error(t, err)
		assert.True(t, services.IsValidationError(err))
	})

	t.Run("blackout directive without a window", func(t *testing.T) {
		eng := newEngine(t, records)
		_, err := eng.Run(context.Background(), []models.Command{{
			Kind:   models.CommandBlackoutWindow,
			At:     ts(t, "2024/01/01-09:00"),
			Policy: &models.PolicyCommand{Category: "Express"},
		}})
		require.Error(t, err)
		assert.True(t, services.IsValidationError(err))
	})

	t.Run("an invalid command fails the whole batch", func(t *testing.T) {
		eng := newEngine(t, records)
		_, err := eng.Run(context.Background(), []models.Command{
			booking(t, "2024/01/01-09:00", "user1", models.TierStandard),
			{Kind: models.CommandBooking, At: ts(t, "2024/01/01-10:00")},
		})
		require.Error(t, err)

		// Nothing was processed: the seat is still free for a later batch.
		out, err := eng.Run(context.Background(), []models.Command{booking(t, "2024/01/01-11:00", "user1", models.TierStandard)})
		require.NoError(t, err)
		assert.Equal(t, models.OutcomeAccepted, out[0].Kind)
	})
}

func TestRun_OrdersByTimestamp(t *testing.T) {
	records := []models.TripRecord{{
		Category: "Express", Origin: "A", Destination: "B",
		Departure: "2024/01/10-10:00", StandardCapacity: 1,
	}}
	eng := newEngine(t, records)

	// Submitted out of order: the later booking arrives first in the batch
	// but the earlier one must win the single seat.
	out, err := eng.Run(context.Background(), []models.Command{
		booking(t, "2024/01/01-10:00", "late", models.TierStandard),
		booking(t, "2024/01/01-09:00", "early", models.TierStandard),
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "early", out[0].User)
	assert.Equal(t, models.OutcomeAccepted, out[0].Kind)
	assert.Equal(t, "late", out[1].User)
	assert.Equal(t, models.ReasonCapacityExhausted, out[1].Reason)
}

func TestRun_SeatHandoffSequence(t *testing.T) {
	records := []models.TripRecord{{
		Category: "Express", Origin: "A", Destination: "B",
		Departure: "2024/01/10-10:00", StandardCapacity: 1,
	}}
	eng := newEngine(t, records)

	out, err := eng.Run(context.Background(), []models.Command{
		booking(t, "2024/01/01-09:00", "user1", models.TierStandard),
		booking(t, "2024/01/01-09:30", "user2", models.TierStandard),
		cancel(t, "2024/01/01-10:00", "user1", models.TierStandard),
		booking(t, "2024/01/01-10:30", "user2", models.TierStandard),
	})
	require.NoError(t, err)
	require.Len(t, out, 4)

	assert.Equal(t, models.OutcomeAccepted, out[0].Kind)
	assert.Equal(t, "user1", out[0].User)
	assert.Equal(t, models.ReasonCapacityExhausted, out[1].Reason)
	assert.Equal(t, models.OutcomeCancelled, out[2].Kind)
	assert.Equal(t, models.OutcomeAccepted, out[3].Kind)
	assert.Equal(t, "user2", out[3].User)
}

func TestRun_PolicyDirectivesInBatch(t *testing.T) {
	records := []models.TripRecord{{
		Category: "Express", Origin: "A", Destination: "B",
		Departure: "2024/01/10-10:00", StandardCapacity: 2,
	}}
	eng := newEngine(t, records)

	out, err := eng.Run(context.Background(), []models.Command{
		booking(t, "2024/01/01-09:00", "user1", models.TierStandard),
		booking(t, "2024/01/01-09:30", "user2", models.TierStandard),
		{
			Kind:   models.CommandCapacityCut,
			At:     ts(t, "2024/01/01-10:00"),
			Policy: &models.PolicyCommand{Category: "Express", RetainedPercent: 50},
		},
		booking(t, "2024/01/01-10:30", "user3", models.TierStandard),
	})
	require.NoError(t, err)
	require.Len(t, out, 5)

	assert.Equal(t, models.OutcomeAccepted, out[0].Kind)
	assert.Equal(t, models.OutcomeAccepted, out[1].Kind)
	assert.Equal(t, models.OutcomePolicyRegistered, out[2].Kind)
	assert.Equal(t, models.OutcomeEvicted, out[3].Kind)
	assert.Equal(t, "user2", out[3].User, "the newer reservation is evicted")
	assert.Equal(t, models.ReasonCapacityExhausted, out[4].Reason)
}

func TestRun_PremiumDeferredHandoff(t *testing.T) {
	records := []models.TripRecord{{
		Category: "Express", Origin: "A", Destination: "B",
		Departure: "2024/03/10-10:00", StandardCapacity: 5,
		PremiumTierCount: 1, PremiumTiers: []int{1},
	}}
	eng := newEngine(t, records)

	out, err := eng.Run(context.Background(), []models.Command{
		// Both users establish premium eligibility with a standard booking.
		booking(t, "2024/01/01-09:00", "holder", models.TierStandard),
		booking(t, "2024/01/01-09:10", "taker", models.TierStandard),
		booking(t, "2024/01/01-10:00", "holder", 1),
		cancel(t, "2024/01/02-09:00", "holder", 1),
		// The queued cancellation is invisible to capacity until promoted.
		booking(t, "2024/01/03-09:00", "taker", 1),
	})
	require.NoError(t, err)
	require.Len(t, out, 5)

	assert.Equal(t, models.OutcomeQueued, out[3].Kind)
	require.Equal(t, models.OutcomeAccepted, out[4].Kind)
	assert.True(t, out[4].Promoted)
	assert.Equal(t, "holder", out[4].PromotedUser)
}
