package models

import (
	"strings"
	"time"
)

// TierID identifies a seat class on a trip. Tier 0 is the standard class;
// positive tiers are premium classes with their own capacity pools.
type TierID int

// TierStandard is the standard (non-premium) seat tier.
const TierStandard TierID = 0

// IsPremium reports whether the tier is a premium class.
func (t TierID) IsPremium() bool {
	return t != TierStandard
}

// QuotaPeriod is the reset cadence of a periodic booking quota.
type QuotaPeriod string

const (
	// QuotaPeriodWeek is a rolling 7-day window anchored at the last booking.
	QuotaPeriodWeek QuotaPeriod = "week"
	// QuotaPeriodDay resets at calendar-day boundaries.
	QuotaPeriodDay QuotaPeriod = "day"
	// QuotaPeriodMonth resets at calendar-month boundaries.
	QuotaPeriodMonth QuotaPeriod = "month"
)

// QuotaRule is a per-trip periodic booking limit set by a quota directive.
type QuotaRule struct {
	Limit  int         `json:"limit"`
	Period QuotaPeriod `json:"period"`
}

// BlackoutWindow is a time-of-day interval during which bookings are blocked.
// The interval is exclusive at both ends: a request exactly at Start or End
// is admitted.
type BlackoutWindow struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// Contains reports whether the clock time falls strictly inside the window.
func (w BlackoutWindow) Contains(c ClockTime) bool {
	return c.After(w.Start) && c.Before(w.End)
}

// NoAgeCeiling is the default age ceiling of a trip: effectively unbounded.
const NoAgeCeiling = 1 << 30

// Trip is a scheduled departure with tiered seat capacity. Remaining is the
// live capacity per tier; Baseline is the reference point for percentage
// capacity cuts and moves with each cut; Original is captured at creation
// and never changes.
//
// Remaining may go negative while a capacity-cut directive is being applied;
// the policy engine evicts reservations until it is non-negative again.
type Trip struct {
	ID          string             `json:"id"`
	Category    string             `json:"category"`
	Origin      string             `json:"origin"`
	Destination string             `json:"destination"`
	Departure   Timestamp          `json:"departure"`
	Remaining   map[TierID]int     `json:"remaining"`
	Baseline    map[TierID]int     `json:"baseline"`
	Original    map[TierID]int     `json:"original"`
	AgeCeiling  int                `json:"age_ceiling"`
	Blackout    *BlackoutWindow    `json:"blackout,omitempty"`
	Quota       *QuotaRule         `json:"quota,omitempty"`

	// Booking counters advance on every successful booking, whether or not a
	// quota rule is active, so a quota directive registered mid-run sees the
	// trip's real booking history.
	QuotaCount  int       `json:"quota_count"`
	LastBooking time.Time `json:"-"`
}

// NewTrip creates a Trip with the given per-tier capacities. The capacity
// map is copied into all three capacity views.
func NewTrip(category, origin, destination string, departure Timestamp, capacity map[TierID]int) *Trip {
	remaining := make(map[TierID]int, len(capacity))
	baseline := make(map[TierID]int, len(capacity))
	original := make(map[TierID]int, len(capacity))
	for tier, seats := range capacity {
		remaining[tier] = seats
		baseline[tier] = seats
		original[tier] = seats
	}
	return &Trip{
		ID:          TripKey(category, origin, destination),
		Category:    CanonicalName(category),
		Origin:      CanonicalName(origin),
		Destination: CanonicalName(destination),
		Departure:   departure,
		Remaining:   remaining,
		Baseline:    baseline,
		Original:    original,
		AgeCeiling:  NoAgeCeiling,
	}
}

// HasTier reports whether the trip offers the given seat tier.
func (t *Trip) HasTier(tier TierID) bool {
	_, ok := t.Remaining[tier]
	return ok
}

// Departed reports whether the trip has already departed at the instant.
// Departure exactly at the instant counts as departed for bookings but not
// for cancellations; callers pick the comparison they need.
func (t *Trip) Departed(at time.Time) bool {
	return !t.Departure.After(at)
}

// CanonicalName upper-cases the first letter of every word. Lookups and trip
// identity use this normalization so "express tehran qom" and
// "Express Tehran Qom" name the same trip.
func CanonicalName(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// TripKey builds the canonical identity of a trip from its category, origin
// and destination.
func TripKey(category, origin, destination string) string {
	return CanonicalName(category + " " + origin + " " + destination)
}
