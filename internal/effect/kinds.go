// Package effect defines the effect taxonomy shared by the rules
// configuration, the per-country effect rows, the mobilisation levels and
// the tick projection, plus the resolver that flattens all of those
// sources into one list per country.
package effect

// Kind enumerates every effect kind the simulation understands. The set
// is closed: downstream switches are exhaustive and an unknown kind read
// from storage resolves to a no-op rather than an error.
type Kind string

const (
	KindPopulationGrowth       Kind = "population_growth"
	KindGDPGrowth              Kind = "gdp_growth"
	KindPopulationDelta        Kind = "population_delta"
	KindStatDelta              Kind = "stat_delta"
	KindBudgetMinistryMinPct   Kind = "budget_ministry_min_pct"
	KindBudgetAllocationCap    Kind = "budget_allocation_cap"
	KindUnitExtra              Kind = "military_unit_extra"
	KindUnitLimitModifier      Kind = "military_unit_limit_modifier"
	KindUnitCostMultiplier     Kind = "military_unit_cost_multiplier"
	KindUnitUpkeepMultiplier   Kind = "military_unit_upkeep_multiplier"
	KindMobilisationScoreDelta Kind = "mobilisation_score_delta"
)

// TargetType describes what an effect's target field refers to.
type TargetType string

const (
	TargetNone     TargetType = "none"
	TargetStat     TargetType = "stat"
	TargetMinistry TargetType = "ministry"
	TargetUnit     TargetType = "unit"
	TargetBranch   TargetType = "branch"
)

// ValueFormat describes how an effect's numeric value is encoded.
type ValueFormat string

const (
	// FormatRate is a stored fraction (0.01 = +1%) displayed as a signed percent.
	FormatRate ValueFormat = "rate"
	// FormatDecimal is a raw signed delta, two decimals.
	FormatDecimal ValueFormat = "decimal"
	// FormatPercent is stored and displayed in percent points.
	FormatPercent ValueFormat = "percent"
	// FormatMultiplier is a factor around 1.0 displayed as a signed percent around 100.
	FormatMultiplier ValueFormat = "multiplier"
	// FormatInteger is a whole number, floored on parse.
	FormatInteger ValueFormat = "integer"
)

// KindMeta drives admin form generation, value (de)serialization and the
// breakdown branch an effect feeds into.
type KindMeta struct {
	Target TargetType  `json:"target"`
	Format ValueFormat `json:"format"`
	Label  string      `json:"label"`
}

var kindMeta = map[Kind]KindMeta{
	KindPopulationGrowth:       {Target: TargetNone, Format: FormatRate, Label: "Croissance démographique"},
	KindGDPGrowth:              {Target: TargetNone, Format: FormatRate, Label: "Croissance du PIB"},
	KindPopulationDelta:        {Target: TargetNone, Format: FormatInteger, Label: "Variation de population"},
	KindStatDelta:              {Target: TargetStat, Format: FormatDecimal, Label: "Variation de statistique"},
	KindBudgetMinistryMinPct:   {Target: TargetMinistry, Format: FormatPercent, Label: "Allocation minimale imposée"},
	KindBudgetAllocationCap:    {Target: TargetNone, Format: FormatPercent, Label: "Plafond d'allocation"},
	KindUnitExtra:              {Target: TargetUnit, Format: FormatInteger, Label: "Unités supplémentaires"},
	KindUnitLimitModifier:      {Target: TargetBranch, Format: FormatPercent, Label: "Modificateur de limite d'unités"},
	KindUnitCostMultiplier:     {Target: TargetUnit, Format: FormatMultiplier, Label: "Multiplicateur de coût d'unité"},
	KindUnitUpkeepMultiplier:   {Target: TargetUnit, Format: FormatMultiplier, Label: "Multiplicateur d'entretien d'unité"},
	KindMobilisationScoreDelta: {Target: TargetNone, Format: FormatInteger, Label: "Variation du score de mobilisation"},
}

// Kinds lists every known effect kind in a stable order.
var Kinds = []Kind{
	KindPopulationGrowth,
	KindGDPGrowth,
	KindPopulationDelta,
	KindStatDelta,
	KindBudgetMinistryMinPct,
	KindBudgetAllocationCap,
	KindUnitExtra,
	KindUnitLimitModifier,
	KindUnitCostMultiplier,
	KindUnitUpkeepMultiplier,
	KindMobilisationScoreDelta,
}

// MetaFor returns the static metadata for a kind. The second return is
// false for kinds this build does not know about.
func MetaFor(kind Kind) (KindMeta, bool) {
	meta, ok := kindMeta[kind]
	return meta, ok
}

// IsKnown reports whether kind is part of the closed kind set.
func IsKnown(kind Kind) bool {
	_, ok := kindMeta[kind]
	return ok
}
