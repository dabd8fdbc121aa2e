package models

// CommandKind tags a record in the command stream.
type CommandKind string

const (
	CommandBooking        CommandKind = "booking"
	CommandCancellation   CommandKind = "cancellation"
	CommandCapacityCut    CommandKind = "capacity_cut"
	CommandAgeCeiling     CommandKind = "age_ceiling"
	CommandBlackoutWindow CommandKind = "blackout_window"
	CommandQuota          CommandKind = "quota"
)

// Command is one tagged record of the command stream. Exactly one of the
// payload fields matching Kind is set. At orders the stream; Seq preserves
// original submission order for tie-breaking and is assigned by the
// sequencer.
type Command struct {
	Kind CommandKind `json:"kind" validate:"required,oneof=booking cancellation capacity_cut age_ceiling blackout_window quota"`
	At   Timestamp   `json:"at" validate:"required"`
	Seq  int         `json:"-"`

	Booking      *BookingCommand      `json:"booking,omitempty"`
	Cancellation *CancellationCommand `json:"cancellation,omitempty"`
	Policy       *PolicyCommand       `json:"policy,omitempty"`
}

// BookingCommand requests a seat. Category empty means "any": the pipeline
// resolves the earliest departing trip on the route with the tier available.
type BookingCommand struct {
	User        string `json:"user" validate:"required"`
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	Category    string `json:"category,omitempty"`
	Tier        TierID `json:"tier" validate:"gte=0"`
	Age         int    `json:"age" validate:"gte=0"`
}

// CancellationCommand requests release of an active reservation. Category
// empty matches any trip on the route.
type CancellationCommand struct {
	User        string `json:"user" validate:"required"`
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	Category    string `json:"category,omitempty"`
	Tier        TierID `json:"tier" validate:"gte=0"`
}

// PolicyCommand is the payload of the four administrative directive kinds.
// Category scopes the directive to every trip of that vehicle category.
type PolicyCommand struct {
	Category string `json:"category" validate:"required"`

	// RetainedPercent (capacity_cut): percentage of original capacity kept.
	RetainedPercent int `json:"retained_percent,omitempty" validate:"gte=0,lte=100"`

	// AgeCeiling (age_ceiling): new maximum age for the category's trips.
	AgeCeiling int `json:"age_ceiling,omitempty" validate:"gte=0"`

	// Window (blackout_window): daily interval blocking new bookings.
	Window *BlackoutWindow `json:"window,omitempty"`

	// Limit and Period (quota): bookings allowed per period.
	Limit  int         `json:"limit,omitempty" validate:"gte=0"`
	Period QuotaPeriod `json:"period,omitempty" validate:"omitempty,oneof=week day month"`
}

// TripRecord is one catalog-load record. PremiumTiers lists capacities for
// tiers 1..n in order; it must have exactly PremiumTierCount entries.
type TripRecord struct {
	Category         string `json:"category" validate:"required"`
	Origin           string `json:"origin" validate:"required"`
	Destination      string `json:"destination" validate:"required"`
	Departure        string `json:"departure" validate:"required"`
	StandardCapacity int    `json:"standard_capacity" validate:"gte=0"`
	PremiumTierCount int    `json:"premium_tier_count,omitempty" validate:"gte=0"`
	PremiumTiers     []int  `json:"premium_tiers,omitempty"`
}
