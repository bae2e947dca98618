// Package projection implements the tick projection engine and the
// breakdown builder: pure calculations over a country snapshot, a budget
// allocation, the rule set, the world averages and the resolved effects.
// The same functions preview the next tick for the cabinet pages and
// drive the tick job, so the two can never disagree.
package projection

import (
	"nations-server/internal/country"
	"nations-server/internal/rules"
)

// GravityInfo records every number that went into one gravity adjustment,
// so the debug view can re-render the exact formula.
type GravityInfo struct {
	Base       float64 `json:"base"`
	WorldAvg   float64 `json:"world_avg"`
	CountryVal float64 `json:"country_val"`
	GravityPct float64 `json:"gravity_pct"`
	Factor     float64 `json:"factor"`
}

// SourceContribution is one ministry's contribution toward one target.
// Value is the applied contribution (after gravity where it applies), Raw
// the contribution before gravity.
type SourceContribution struct {
	MinistryID rules.MinistryID `json:"ministry_id"`
	Label      string           `json:"label"`
	Value      float64          `json:"value"`
	Raw        float64          `json:"raw"`
	Gravity    *GravityInfo     `json:"gravity,omitempty"`
}

// SourceMap holds per-ministry contributions toward one target, keyed by
// ministry id. Display labels ride along in the values.
type SourceMap map[rules.MinistryID]SourceContribution

// Total sums the applied contributions.
func (m SourceMap) Total() float64 {
	total := 0.0
	for _, c := range m {
		total += c.Value
	}
	return total
}

// Inputs exposes every intermediate of a projection. The breakdown
// builder and the admin debug view re-render these numbers verbatim; they
// must be exact, not approximated.
type Inputs struct {
	PopulationBaseRate float64 `json:"population_base_rate"`
	GDPBaseRate        float64 `json:"gdp_base_rate"`

	PopulationStatRates map[country.StatKey]float64 `json:"population_stat_rates"`
	GDPStatRates        map[country.StatKey]float64 `json:"gdp_stat_rates"`

	PopulationEffectRate float64                     `json:"population_effect_rate"`
	GDPEffectRate        float64                     `json:"gdp_effect_rate"`
	StatEffectDeltas     map[country.StatKey]float64 `json:"stat_effect_deltas"`

	BudgetPopulationSources SourceMap                     `json:"budget_population_sources"`
	BudgetGDPSources        SourceMap                     `json:"budget_gdp_sources"`
	BudgetStatSources       map[country.StatKey]SourceMap `json:"budget_stat_sources"`

	PopulationTotalRate float64 `json:"population_total_rate"`
	GDPTotalRate        float64 `json:"gdp_total_rate"`
}

// Projection is the expected next tick of a country.
type Projection struct {
	Population int64   `json:"population"`
	GDP        float64 `json:"gdp"`
	Militarism float64 `json:"militarism"`
	Industry   float64 `json:"industry"`
	Science    float64 `json:"science"`
	Stability  float64 `json:"stability"`
	Inputs     Inputs  `json:"inputs"`
}

// Stat returns a projected bounded stat by key.
func (p *Projection) Stat(key country.StatKey) float64 {
	switch key {
	case country.StatMilitarism:
		return p.Militarism
	case country.StatIndustry:
		return p.Industry
	case country.StatScience:
		return p.Science
	case country.StatStability:
		return p.Stability
	}
	return 0
}
