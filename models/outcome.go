package models

// OutcomeKind is the semantic category of an engine outcome.
type OutcomeKind string

const (
	OutcomeAccepted         OutcomeKind = "accepted"
	OutcomeRejected         OutcomeKind = "rejected"
	OutcomeCancelled        OutcomeKind = "cancelled"
	OutcomeQueued           OutcomeKind = "queued"
	OutcomePolicyRegistered OutcomeKind = "policy_registered"
	OutcomeEvicted          OutcomeKind = "evicted"
)

// RejectionReason names the admission or cancellation rule that failed.
// Rejections are expected business outcomes, not errors.
type RejectionReason string

const (
	ReasonRouteNotFound          RejectionReason = "route_not_found"
	ReasonCapacityExhausted      RejectionReason = "capacity_exhausted"
	ReasonVipIneligible          RejectionReason = "vip_ineligible"
	ReasonBookingBlocked         RejectionReason = "booking_blocked"
	ReasonTripDeparted           RejectionReason = "trip_departed"
	ReasonDuplicateCancelRequest RejectionReason = "duplicate_cancel_request"
	ReasonCancelCooldown         RejectionReason = "cancel_cooldown"
	ReasonReservationNotFound    RejectionReason = "reservation_not_found"
)

// Outcome is one entry of the outcome stream: exactly one per command, plus
// one per eviction a directive causes. The payload is structured so a
// presentation layer can render any message format without the engine
// knowing about formatting.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`
	At   Timestamp   `json:"at"`

	User   string          `json:"user,omitempty"`
	TripID string          `json:"trip_id,omitempty"`
	Tier   TierID          `json:"tier"`
	Reason RejectionReason `json:"reason,omitempty"`

	// PolicyIndex is set on policy_registered and evicted outcomes.
	PolicyIndex int `json:"policy_index,omitempty"`

	// Promoted marks an accepted booking that released a queued cancellation;
	// PromotedUser names the holder whose deferred cancellation completed.
	Promoted     bool   `json:"promoted,omitempty"`
	PromotedUser string `json:"promoted_user,omitempty"`
}

// Rejected builds a rejection outcome for a command at an instant.
func Rejected(at Timestamp, user string, tier TierID, reason RejectionReason) Outcome {
	return Outcome{
		Kind:   OutcomeRejected,
		At:     at,
		User:   user,
		Tier:   tier,
		Reason: reason,
	}
}
