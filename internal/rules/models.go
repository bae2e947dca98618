package rules

import (
	"encoding/json"
	"math"

	"nations-server/internal/country"
	"nations-server/internal/effect"
)

// Rule parameter keys. Scalar keys hold a single JSON number; the budget_*
// keys hold a BudgetMinistryValue; the remaining keys hold arrays/maps.
const (
	KeyPopulationGrowthBaseRate = "population_growth_base_rate"
	KeyGDPGrowthBaseRate        = "gdp_growth_base_rate"

	KeyGlobalGrowthEffects         = "global_growth_effects"
	KeyMobilisationLevelEffects    = "mobilisation_level_effects"
	KeyMobilisationLevelThresholds = "mobilisation_level_thresholds"
)

// Documented fallback defaults. Missing or malformed rule values silently
// degrade to these; the calculation layer never fails on configuration
// gaps.
const (
	DefaultPopulationGrowthBaseRate = 0.001
	DefaultGDPGrowthBaseRate        = 0.0005
	DefaultMinistryMinPct           = 5.0
)

// PopulationPerStatKey returns the rule key of the population-growth
// coefficient linked to a stat, e.g. population_growth_per_science.
func PopulationPerStatKey(stat country.StatKey) string {
	return "population_growth_per_" + string(stat)
}

// GDPPerStatKey returns the rule key of the GDP-growth coefficient linked
// to a stat.
func GDPPerStatKey(stat country.StatKey) string {
	return "gdp_growth_per_" + string(stat)
}

// BudgetKey returns the rule key holding a ministry's BudgetMinistryValue.
func BudgetKey(id MinistryID) string {
	return "budget_" + string(id)
}

// BudgetMinistryValue is the structured rule value of one ministry:
// the minimum allocation threshold, the gravity sensitivity, and the
// per-target bonus and malus rates.
type BudgetMinistryValue struct {
	MinPct     float64               `json:"min_pct"`
	GravityPct float64               `json:"gravity_pct"`
	Bonuses    map[TargetKey]float64 `json:"bonuses"`
	Maluses    map[TargetKey]float64 `json:"maluses"`
}

// Parameter is one persisted rule row.
type Parameter struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// RuleSet is the keyed rule store the calculation layer reads from. It is
// read-only to the core; admins edit the underlying rows.
type RuleSet map[string]json.RawMessage

// Rate reads a scalar rate, falling back to def when the key is missing
// or not a finite number.
func (rs RuleSet) Rate(key string, def float64) float64 {
	raw, ok := rs[key]
	if !ok {
		return def
	}

	var value float64
	if err := json.Unmarshal(raw, &value); err != nil {
		return def
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return def
	}
	return value
}

// Ministry reads a ministry's budget rule, substituting documented
// defaults for missing or malformed fields. An absent min_pct field gets
// the default; an explicit zero is honoured. The returned maps are never
// nil.
func (rs RuleSet) Ministry(id MinistryID) BudgetMinistryValue {
	value := BudgetMinistryValue{
		MinPct: DefaultMinistryMinPct,
	}

	if raw, ok := rs[BudgetKey(id)]; ok {
		var parsed struct {
			MinPct     *float64              `json:"min_pct"`
			GravityPct float64               `json:"gravity_pct"`
			Bonuses    map[TargetKey]float64 `json:"bonuses"`
			Maluses    map[TargetKey]float64 `json:"maluses"`
		}
		if err := json.Unmarshal(raw, &parsed); err == nil {
			value.GravityPct = parsed.GravityPct
			value.Bonuses = parsed.Bonuses
			value.Maluses = parsed.Maluses
			if parsed.MinPct != nil {
				value.MinPct = *parsed.MinPct
			}
			if math.IsNaN(value.MinPct) || math.IsInf(value.MinPct, 0) || value.MinPct < 0 {
				value.MinPct = DefaultMinistryMinPct
			}
			if math.IsNaN(value.GravityPct) || math.IsInf(value.GravityPct, 0) {
				value.GravityPct = 0
			}
		}
	}

	if value.Bonuses == nil {
		value.Bonuses = map[TargetKey]float64{}
	}
	if value.Maluses == nil {
		value.Maluses = map[TargetKey]float64{}
	}
	return value
}

// GlobalEffects reads the always-on growth effect list. Malformed entries
// collapse to an empty list.
func (rs RuleSet) GlobalEffects() []effect.Spec {
	raw, ok := rs[KeyGlobalGrowthEffects]
	if !ok {
		return nil
	}

	var specs []effect.Spec
	if err := json.Unmarshal(raw, &specs); err != nil {
		return nil
	}
	return specs
}

// LevelEffects reads the per-mobilisation-level effect lists.
func (rs RuleSet) LevelEffects() []effect.LevelEffects {
	raw, ok := rs[KeyMobilisationLevelEffects]
	if !ok {
		return nil
	}

	var levels []effect.LevelEffects
	if err := json.Unmarshal(raw, &levels); err != nil {
		return nil
	}
	return levels
}

// LevelThresholds reads the mobilisation level threshold map.
func (rs RuleSet) LevelThresholds() map[string]int {
	raw, ok := rs[KeyMobilisationLevelThresholds]
	if !ok {
		return nil
	}

	var thresholds map[string]int
	if err := json.Unmarshal(raw, &thresholds); err != nil {
		return nil
	}
	return thresholds
}
