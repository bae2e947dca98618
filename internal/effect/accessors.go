package effect

import "math"

// ForcedMinPcts returns the forced minimum allocation per ministry id,
// taking the maximum when several effects target the same ministry so a
// later, smaller forced minimum never overrides a larger one. Only
// positive values count.
func ForcedMinPcts(effects []ResolvedEffect) map[string]float64 {
	forced := make(map[string]float64)
	for _, e := range effects {
		if e.Kind != KindBudgetMinistryMinPct || !e.Active() {
			continue
		}
		if math.IsNaN(e.Value) || e.Value <= 0 {
			continue
		}
		if e.Value > forced[e.Target] {
			forced[e.Target] = e.Value
		}
	}
	return forced
}

// AllocationCapPercent returns 100 plus the sum of every allocation-cap
// effect value. Negative values (debt) shrink the cap, positive values
// (surplus) grow it.
func AllocationCapPercent(effects []ResolvedEffect) float64 {
	cap := 100.0
	for _, e := range effects {
		if e.Kind != KindBudgetAllocationCap || !e.Active() {
			continue
		}
		if math.IsNaN(e.Value) {
			continue
		}
		cap += e.Value
	}
	return cap
}

// FlatDeltaSum totals the integer-format flat deltas of one kind. Values
// are floored the same way the display codec floors them, so what the
// player reads is what gets applied.
func FlatDeltaSum(effects []ResolvedEffect, kind Kind) int64 {
	total := 0.0
	for _, e := range effects {
		if e.Kind != kind || !e.Active() {
			continue
		}
		if math.IsNaN(e.Value) {
			continue
		}
		total += math.Floor(e.Value)
	}
	return int64(total)
}

// UnitExtraSum returns the summed extra-unit count for one roster unit.
func UnitExtraSum(effects []ResolvedEffect, unitID string) float64 {
	sum := 0.0
	for _, e := range effects {
		if e.Kind != KindUnitExtra || e.Target != unitID || !e.Active() {
			continue
		}
		if math.IsNaN(e.Value) {
			continue
		}
		sum += e.Value
	}
	return sum
}

// LimitModifierPercent returns the summed limit modifier for one branch,
// in percent points.
func LimitModifierPercent(effects []ResolvedEffect, branchID string) float64 {
	sum := 0.0
	for _, e := range effects {
		if e.Kind != KindUnitLimitModifier || e.Target != branchID || !e.Active() {
			continue
		}
		if math.IsNaN(e.Value) {
			continue
		}
		sum += e.Value
	}
	return sum
}

// MultiplierProduct returns the product of every active multiplier effect
// of the given kind targeting unitID, 1 when none apply.
func MultiplierProduct(effects []ResolvedEffect, kind Kind, unitID string) float64 {
	product := 1.0
	for _, e := range effects {
		if e.Kind != kind || e.Target != unitID || !e.Active() {
			continue
		}
		if math.IsNaN(e.Value) {
			continue
		}
		product *= e.Value
	}
	return product
}
