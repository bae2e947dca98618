package effect

import (
	"time"

	"github.com/google/uuid"
)

// DurationKind distinguishes effects that expire from permanent ones.
type DurationKind string

const (
	DurationPermanent DurationKind = "permanent"
	DurationDays      DurationKind = "days"
)

// CountryEffect is a persisted per-country effect row. Day-scoped rows are
// decremented by the tick job and deleted once they reach zero.
type CountryEffect struct {
	ID            uuid.UUID    `json:"id"`
	CountryID     int          `json:"country_id"`
	Kind          Kind         `json:"kind"`
	Target        string       `json:"target,omitempty"`
	Value         float64      `json:"value"`
	DurationKind  DurationKind `json:"duration_kind"`
	DaysRemaining int          `json:"days_remaining"`
	Name          string       `json:"name"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Active reports whether the row still contributes to calculations.
func (e *CountryEffect) Active() bool {
	return e.DurationKind == DurationPermanent || e.DaysRemaining > 0
}

// Spec is a configuration-defined effect, as found in the
// global_growth_effects and mobilisation_level_effects rule values.
type Spec struct {
	Kind   Kind    `json:"kind"`
	Target string  `json:"target,omitempty"`
	Value  float64 `json:"value"`
	Label  string  `json:"label,omitempty"`
}

// Source identifies which resolver source produced a resolved effect.
// Aggregation is source-order-independent; the source is only used for
// rendering labels.
type Source string

const (
	SourceCountry      Source = "country"
	SourceMobilisation Source = "mobilisation"
	SourceGlobal       Source = "global"
)

// ResolvedEffect is the normalized, source-agnostic representation every
// downstream calculation consumes.
type ResolvedEffect struct {
	Kind          Kind    `json:"kind"`
	Target        string  `json:"target,omitempty"`
	Value         float64 `json:"value"`
	Source        Source  `json:"source"`
	Label         string  `json:"label"`
	Permanent     bool    `json:"permanent"`
	DaysRemaining int     `json:"days_remaining,omitempty"`
}

// Active reports whether the effect still applies. Permanent sources never
// carry a remaining-days counter; absence of the counter means always-active.
func (e *ResolvedEffect) Active() bool {
	return e.Permanent || e.DaysRemaining > 0
}
