package projection

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"nations-server/internal/budget"
	"nations-server/internal/country"
	"nations-server/internal/effect"
	"nations-server/internal/rules"
)

func TestMinistryContribution(t *testing.T) {
	tests := []struct {
		name   string
		pct    float64
		minPct float64
		bonus  float64
		malus  float64
		want   float64
	}{
		{name: "above minimum scales bonus", pct: 50, minPct: 5, bonus: 0.06, malus: -0.05, want: 0.03},
		{name: "at minimum takes bonus branch", pct: 5, minPct: 5, bonus: 0.06, malus: -0.05, want: 0.003},
		{name: "below minimum scales malus with shortfall", pct: 2.5, minPct: 5, bonus: 0.06, malus: -0.05, want: -0.025},
		{name: "zero allocation gets full malus", pct: 0, minPct: 5, bonus: 0.06, malus: -0.05, want: -0.05},
		{name: "zero minimum never penalizes", pct: 0, minPct: 0, bonus: 0.06, malus: -0.05, want: 0},
		{name: "full allocation full bonus", pct: 100, minPct: 5, bonus: 0.06, malus: -0.05, want: 0.06},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinistryContribution(tt.pct, tt.minPct, tt.bonus, tt.malus)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("MinistryContribution(%v, %v, %v, %v) = %v, want %v",
					tt.pct, tt.minPct, tt.bonus, tt.malus, got, tt.want)
			}
		})
	}
}

func TestGravityFactor(t *testing.T) {
	tests := []struct {
		name         string
		gravityPct   float64
		worldAvg     float64
		countryVal   float64
		contribution float64
		want         float64
	}{
		{name: "zero world average disables gravity", gravityPct: 50, worldAvg: 0, countryVal: 4, contribution: 0.03, want: 1},
		{name: "behind the world amplifies a positive contribution", gravityPct: 30, worldAvg: 6, countryVal: 3, contribution: 0.03, want: 1.15},
		{name: "ahead of the world dampens a positive contribution", gravityPct: 30, worldAvg: 4, countryVal: 6, contribution: 0.03, want: 0.85},
		{name: "behind the world dampens a negative contribution", gravityPct: 30, worldAvg: 6, countryVal: 3, contribution: -0.03, want: 0.85},
		{name: "clamped at the upper bound", gravityPct: 500, worldAvg: 10, countryVal: 1, contribution: 0.03, want: 2},
		{name: "clamped at the lower bound", gravityPct: 500, worldAvg: 1, countryVal: 10, contribution: 0.03, want: 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gravityFactor(tt.gravityPct, tt.worldAvg, tt.countryVal, tt.contribution)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("gravityFactor(%v, %v, %v, %v) = %v, want %v",
					tt.gravityPct, tt.worldAvg, tt.countryVal, tt.contribution, got, tt.want)
			}
		})
	}
}

func TestProjectNextTickDefaults(t *testing.T) {
	snap := &country.Snapshot{
		Population: 1000,
		GDP:        1000,
		Militarism: 5,
		Industry:   5,
		Science:    5,
		Stability:  0,
	}
	pcts := &budget.Allocation{}
	world := &country.WorldAverages{}

	p := ProjectNextTick(snap, pcts, rules.RuleSet{}, world, nil)

	if p.Population != 1001 {
		t.Errorf("population = %d, want 1001", p.Population)
	}
	if math.Abs(p.GDP-1000.5) > 1e-9 {
		t.Errorf("gdp = %v, want 1000.5", p.GDP)
	}
	if p.Militarism != 5 || p.Industry != 5 || p.Science != 5 || p.Stability != 0 {
		t.Errorf("stats changed with no rules and no effects: %+v", p)
	}
}

func TestProjectNextTickMaluses(t *testing.T) {
	snap := &country.Snapshot{
		Population: 1000,
		GDP:        1000,
		Militarism: 5,
		Industry:   5,
		Science:    5,
		Stability:  0,
	}
	pcts := &budget.Allocation{}
	rs := rules.RuleSet{
		"budget_education": json.RawMessage(`{"min_pct": 5, "maluses": {"science": -0.05}}`),
		"budget_research":  json.RawMessage(`{"min_pct": 5, "maluses": {"science": -0.05}}`),
	}

	p := ProjectNextTick(snap, pcts, rs, &country.WorldAverages{}, nil)

	// Both ministries at 0% of a 5% minimum contribute their full malus.
	if math.Abs(p.Science-4.90) > 1e-9 {
		t.Errorf("science = %v, want 4.90", p.Science)
	}
}

func TestProjectNextTickGravityPerSource(t *testing.T) {
	snap := &country.Snapshot{
		Population: 1000,
		GDP:        1000,
		Militarism: 4,
		Industry:   5,
		Science:    5,
		Stability:  0,
	}
	pcts := &budget.Allocation{Defense: 50}
	rs := rules.RuleSet{
		"budget_defense": json.RawMessage(`{"min_pct": 5, "gravity_pct": 10, "bonuses": {"militarism": 0.06}}`),
	}
	world := &country.WorldAverages{Militarism: 6}

	p := ProjectNextTick(snap, pcts, rs, world, nil)

	c, ok := p.Inputs.BudgetStatSources[country.StatMilitarism][rules.MinistryDefense]
	if !ok {
		t.Fatal("defense contribution toward militarism missing")
	}
	if math.Abs(c.Raw-0.03) > 1e-9 {
		t.Errorf("raw contribution = %v, want 0.03", c.Raw)
	}
	if c.Gravity == nil {
		t.Fatal("gravity info missing on a militarism contribution")
	}
	wantFactor := 1 + 0.10*(6.0-4.0)/6.0
	if math.Abs(c.Gravity.Factor-wantFactor) > 1e-9 {
		t.Errorf("gravity factor = %v, want %v", c.Gravity.Factor, wantFactor)
	}
	if math.Abs(c.Value-0.03*wantFactor) > 1e-9 {
		t.Errorf("applied contribution = %v, want %v", c.Value, 0.03*wantFactor)
	}
}

func TestProjectNextTickNoGravityOnStability(t *testing.T) {
	snap := &country.Snapshot{Population: 1000, GDP: 1000, Stability: 0}
	pcts := &budget.Allocation{Interior: 20}
	rs := rules.RuleSet{
		"budget_interior": json.RawMessage(`{"min_pct": 5, "gravity_pct": 50, "bonuses": {"stability": 0.04}}`),
	}
	world := &country.WorldAverages{Stability: 2}

	p := ProjectNextTick(snap, pcts, rs, world, nil)

	c, ok := p.Inputs.BudgetStatSources[country.StatStability][rules.MinistryInterior]
	if !ok {
		t.Fatal("interior contribution toward stability missing")
	}
	if c.Gravity != nil {
		t.Error("gravity applied to a stability contribution")
	}
	if c.Value != c.Raw {
		t.Errorf("stability contribution adjusted: value %v, raw %v", c.Value, c.Raw)
	}
}

func TestProjectNextTickEffectRates(t *testing.T) {
	snap := &country.Snapshot{Population: 100000, GDP: 1000, Science: 5}
	effects := []effect.ResolvedEffect{
		{Kind: effect.KindPopulationGrowth, Value: 0.001, Permanent: true},
		{Kind: effect.KindPopulationGrowth, Value: 2, Permanent: true},   // percent points, normalized to 0.02
		{Kind: effect.KindGDPGrowth, Value: -0.5, DaysRemaining: 0},      // expired, skipped
		{Kind: effect.KindGDPGrowth, Value: math.NaN(), Permanent: true}, // NaN, skipped
		{Kind: effect.KindStatDelta, Target: "science", Value: 0.25, Permanent: true},
		{Kind: effect.KindStatDelta, Target: "unknown", Value: 9, Permanent: true}, // unknown target, no-op
		{Kind: effect.KindPopulationDelta, Value: 500, Permanent: true},            // flat delta, not an engine concern
	}

	p := ProjectNextTick(snap, &budget.Allocation{}, rules.RuleSet{}, &country.WorldAverages{}, effects)

	if math.Abs(p.Inputs.PopulationEffectRate-0.021) > 1e-12 {
		t.Errorf("population effect rate = %v, want 0.021", p.Inputs.PopulationEffectRate)
	}
	if p.Inputs.GDPEffectRate != 0 {
		t.Errorf("gdp effect rate = %v, want 0", p.Inputs.GDPEffectRate)
	}
	if math.Abs(p.Science-5.25) > 1e-9 {
		t.Errorf("science = %v, want 5.25", p.Science)
	}
}

func TestProjectNextTickClampsStats(t *testing.T) {
	snap := &country.Snapshot{Population: 1000, GDP: 1000, Militarism: 9.8, Stability: -2.9}
	effects := []effect.ResolvedEffect{
		{Kind: effect.KindStatDelta, Target: "militarism", Value: 5, Permanent: true},
		{Kind: effect.KindStatDelta, Target: "stability", Value: -5, Permanent: true},
	}

	p := ProjectNextTick(snap, &budget.Allocation{}, rules.RuleSet{}, &country.WorldAverages{}, effects)

	if p.Militarism != 10 {
		t.Errorf("militarism = %v, want 10", p.Militarism)
	}
	if p.Stability != -3 {
		t.Errorf("stability = %v, want -3", p.Stability)
	}
}

func TestProjectNextTickDeterministic(t *testing.T) {
	snap := &country.Snapshot{Population: 123456, GDP: 98765.43, Militarism: 3.2, Industry: 6.1, Science: 4.4, Stability: 1.5}
	pcts := &budget.Allocation{Health: 10, Education: 15, Defense: 20}
	rs := rules.RuleSet{
		"budget_defense": json.RawMessage(`{"min_pct": 5, "gravity_pct": 15, "bonuses": {"militarism": 0.06}}`),
	}
	world := &country.WorldAverages{Militarism: 5, Industry: 5, Science: 5, Stability: 0}
	effects := []effect.ResolvedEffect{
		{Kind: effect.KindGDPGrowth, Value: 0.002, Permanent: true},
	}

	a := ProjectNextTick(snap, pcts, rs, world, effects)
	b := ProjectNextTick(snap, pcts, rs, world, effects)
	if !reflect.DeepEqual(a, b) {
		t.Error("identical inputs produced different projections")
	}
}
