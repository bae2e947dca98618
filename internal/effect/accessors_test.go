package effect

import (
	"math"
	"reflect"
	"testing"
)

func TestForcedMinPcts(t *testing.T) {
	effects := []ResolvedEffect{
		{Kind: KindBudgetMinistryMinPct, Target: "defense", Value: 10, Permanent: true},
		{Kind: KindBudgetMinistryMinPct, Target: "defense", Value: 25, DaysRemaining: 3},
		{Kind: KindBudgetMinistryMinPct, Target: "defense", Value: 15, Permanent: true},
		{Kind: KindBudgetMinistryMinPct, Target: "health", Value: 40, DaysRemaining: 0}, // expired
		{Kind: KindBudgetMinistryMinPct, Target: "interior", Value: -5, Permanent: true},
		{Kind: KindBudgetAllocationCap, Target: "education", Value: 30, Permanent: true},
	}

	forced := ForcedMinPcts(effects)

	if got := forced["defense"]; got != 25 {
		t.Errorf("defense forced minimum = %v, want 25 (the maximum)", got)
	}
	if _, ok := forced["health"]; ok {
		t.Error("expired effect counted toward forced minimums")
	}
	if _, ok := forced["interior"]; ok {
		t.Error("non-positive forced minimum kept")
	}
	if _, ok := forced["education"]; ok {
		t.Error("wrong kind counted toward forced minimums")
	}
}

func TestAllocationCapPercent(t *testing.T) {
	tests := []struct {
		name    string
		effects []ResolvedEffect
		want    float64
	}{
		{name: "no effects", effects: nil, want: 100},
		{
			name: "debt shrinks the cap",
			effects: []ResolvedEffect{
				{Kind: KindBudgetAllocationCap, Value: -20, Permanent: true},
			},
			want: 80,
		},
		{
			name: "debt and surplus stack",
			effects: []ResolvedEffect{
				{Kind: KindBudgetAllocationCap, Value: -20, Permanent: true},
				{Kind: KindBudgetAllocationCap, Value: 30, DaysRemaining: 5},
			},
			want: 110,
		},
		{
			name: "expired and NaN skipped",
			effects: []ResolvedEffect{
				{Kind: KindBudgetAllocationCap, Value: -50, DaysRemaining: 0},
				{Kind: KindBudgetAllocationCap, Value: math.NaN(), Permanent: true},
			},
			want: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AllocationCapPercent(tt.effects); got != tt.want {
				t.Errorf("AllocationCapPercent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFlatDeltaSum(t *testing.T) {
	effects := []ResolvedEffect{
		{Kind: KindPopulationDelta, Value: 2.7, Permanent: true},
		{Kind: KindPopulationDelta, Value: -1.2, Permanent: true},
		{Kind: KindPopulationDelta, Value: 100, DaysRemaining: 0},       // expired
		{Kind: KindPopulationDelta, Value: math.NaN(), Permanent: true}, // skipped
		{Kind: KindMobilisationScoreDelta, Value: 50, Permanent: true},  // other kind
	}

	// Each value floors individually: 2.7 -> 2, -1.2 -> -2.
	if got := FlatDeltaSum(effects, KindPopulationDelta); got != 0 {
		t.Errorf("FlatDeltaSum(population_delta) = %d, want 0", got)
	}
	if got := FlatDeltaSum(effects, KindMobilisationScoreDelta); got != 50 {
		t.Errorf("FlatDeltaSum(mobilisation_score_delta) = %d, want 50", got)
	}
}

func TestMultiplierProduct(t *testing.T) {
	effects := []ResolvedEffect{
		{Kind: KindUnitCostMultiplier, Target: "unit-1", Value: 1.25, Permanent: true},
		{Kind: KindUnitCostMultiplier, Target: "unit-1", Value: 0.8, DaysRemaining: 2},
		{Kind: KindUnitCostMultiplier, Target: "unit-2", Value: 3, Permanent: true},
		{Kind: KindUnitCostMultiplier, Target: "", Value: 10, Permanent: true},
		{Kind: KindUnitUpkeepMultiplier, Target: "unit-1", Value: 2, Permanent: true},
	}

	got := MultiplierProduct(effects, KindUnitCostMultiplier, "unit-1")
	if math.Abs(got-1.0) > 1e-12 {
		t.Errorf("cost multiplier for unit-1 = %v, want 1.0", got)
	}
	if got := MultiplierProduct(effects, KindUnitCostMultiplier, "unit-3"); got != 1 {
		t.Errorf("multiplier with no matching effects = %v, want 1", got)
	}
}

func TestAggregationOrderInvariance(t *testing.T) {
	effects := []ResolvedEffect{
		{Kind: KindBudgetMinistryMinPct, Target: "defense", Value: 10, Permanent: true},
		{Kind: KindBudgetMinistryMinPct, Target: "defense", Value: 25, DaysRemaining: 3},
		{Kind: KindBudgetAllocationCap, Value: -20, Permanent: true},
		{Kind: KindBudgetAllocationCap, Value: 30, DaysRemaining: 5},
		{Kind: KindPopulationDelta, Value: 2.7, Permanent: true},
		{Kind: KindPopulationDelta, Value: -1.2, Permanent: true},
		{Kind: KindUnitCostMultiplier, Target: "unit-1", Value: 1.25, Permanent: true},
		{Kind: KindUnitCostMultiplier, Target: "unit-1", Value: 0.8, DaysRemaining: 2},
		{Kind: KindUnitLimitModifier, Target: "land", Value: 10, Permanent: true},
		{Kind: KindUnitLimitModifier, Target: "land", Value: -25, Permanent: true},
	}

	// A handful of distinct orderings: reversed, and two rotations.
	orderings := [][]ResolvedEffect{effects}
	reversed := make([]ResolvedEffect, len(effects))
	for i, e := range effects {
		reversed[len(effects)-1-i] = e
	}
	orderings = append(orderings, reversed)
	for _, shift := range []int{3, 7} {
		rotated := make([]ResolvedEffect, 0, len(effects))
		rotated = append(rotated, effects[shift:]...)
		rotated = append(rotated, effects[:shift]...)
		orderings = append(orderings, rotated)
	}

	wantForced := ForcedMinPcts(effects)
	wantCap := AllocationCapPercent(effects)
	wantDelta := FlatDeltaSum(effects, KindPopulationDelta)
	wantProduct := MultiplierProduct(effects, KindUnitCostMultiplier, "unit-1")
	wantLimit := LimitModifierPercent(effects, "land")

	for i, perm := range orderings[1:] {
		if got := ForcedMinPcts(perm); !reflect.DeepEqual(got, wantForced) {
			t.Errorf("ordering %d: ForcedMinPcts = %v, want %v", i+1, got, wantForced)
		}
		if got := AllocationCapPercent(perm); got != wantCap {
			t.Errorf("ordering %d: AllocationCapPercent = %v, want %v", i+1, got, wantCap)
		}
		if got := FlatDeltaSum(perm, KindPopulationDelta); got != wantDelta {
			t.Errorf("ordering %d: FlatDeltaSum = %d, want %d", i+1, got, wantDelta)
		}
		if got := MultiplierProduct(perm, KindUnitCostMultiplier, "unit-1"); math.Abs(got-wantProduct) > 1e-12 {
			t.Errorf("ordering %d: MultiplierProduct = %v, want %v", i+1, got, wantProduct)
		}
		if got := LimitModifierPercent(perm, "land"); got != wantLimit {
			t.Errorf("ordering %d: LimitModifierPercent = %v, want %v", i+1, got, wantLimit)
		}
	}
}

func TestLimitModifierPercent(t *testing.T) {
	effects := []ResolvedEffect{
		{Kind: KindUnitLimitModifier, Target: "land", Value: 10, Permanent: true},
		{Kind: KindUnitLimitModifier, Target: "land", Value: -25, Permanent: true},
		{Kind: KindUnitLimitModifier, Target: "navy", Value: 40, Permanent: true},
	}

	if got := LimitModifierPercent(effects, "land"); got != -15 {
		t.Errorf("land limit modifier = %v, want -15", got)
	}
	if got := LimitModifierPercent(effects, "air"); got != 0 {
		t.Errorf("air limit modifier = %v, want 0", got)
	}
}
