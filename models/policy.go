package models

// DirectiveKind is one of the four administrative policy kinds.
type DirectiveKind string

const (
	DirectiveCapacityCut    DirectiveKind = "capacity_cut"
	DirectiveAgeCeiling     DirectiveKind = "age_ceiling"
	DirectiveBlackoutWindow DirectiveKind = "blackout_window"
	DirectiveQuota          DirectiveKind = "quota"
)

// PolicyDirective is the applied record of an administrative directive. Each
// directive receives a monotonically increasing index used in eviction
// outcomes. Directives are retained after application: they scope to all
// current and future trips of their category.
type PolicyDirective struct {
	Index    int           `json:"index"`
	Kind     DirectiveKind `json:"kind"`
	Category string        `json:"category"`
	At       Timestamp     `json:"at"`

	RetainedPercent int             `json:"retained_percent,omitempty"`
	AgeCeiling      int             `json:"age_ceiling,omitempty"`
	Window          *BlackoutWindow `json:"window,omitempty"`
	Limit           int             `json:"limit,omitempty"`
	Period          QuotaPeriod     `json:"period,omitempty"`

	// Evictions counts the reservations the directive removed on application.
	Evictions int `json:"evictions"`
}
