package projection

import (
	"encoding/json"
	"strings"
	"testing"

	"nations-server/internal/budget"
	"nations-server/internal/country"
	"nations-server/internal/effect"
	"nations-server/internal/rules"
)

func TestBuildBreakdownBudgetLinesMatchEngine(t *testing.T) {
	snap := &country.Snapshot{Population: 1000, GDP: 1000, Militarism: 4}
	pcts := &budget.Allocation{Defense: 50}
	rs := rules.RuleSet{
		"budget_defense": json.RawMessage(`{"min_pct": 5, "gravity_pct": 10, "bonuses": {"militarism": 0.06}}`),
	}
	world := &country.WorldAverages{Militarism: 6}

	b, expected := BuildBreakdown(snap, pcts, rs, world, nil, BreakdownOptions{})

	source := expected.Inputs.BudgetStatSources[country.StatMilitarism][rules.MinistryDefense]

	var line *Contribution
	for i := range b.Categories[CategoryMilitarismDelta] {
		if b.Categories[CategoryMilitarismDelta][i].Label == "Défense" {
			line = &b.Categories[CategoryMilitarismDelta][i]
			break
		}
	}
	if line == nil {
		t.Fatal("no militarism line for the defense ministry")
	}
	if line.Value != source.Value {
		t.Errorf("breakdown value %v differs from engine value %v", line.Value, source.Value)
	}
	if !strings.Contains(line.Tooltip, "Gravité") {
		t.Errorf("gravity tooltip missing: %q", line.Tooltip)
	}
	if !strings.Contains(line.Tooltip, "10.00") {
		t.Errorf("tooltip does not carry the configured sensitivity: %q", line.Tooltip)
	}
}

func TestBuildBreakdownSideLists(t *testing.T) {
	snap := &country.Snapshot{Population: 1000, GDP: 1000}
	effects := []effect.ResolvedEffect{
		{Kind: effect.KindGDPGrowth, Value: 0.002, Source: effect.SourceGlobal, Label: "Commerce", Permanent: true},
		{Kind: effect.KindBudgetAllocationCap, Value: -20, Source: effect.SourceCountry, Label: "Dette", Permanent: true},
		{Kind: effect.KindUnitCostMultiplier, Target: "u1", Value: 1.25, Source: effect.SourceMobilisation, Label: "Économie de guerre", Permanent: true},
	}

	b, _ := BuildBreakdown(snap, &budget.Allocation{}, rules.RuleSet{}, &country.WorldAverages{}, effects, BreakdownOptions{})

	// The GDP growth effect has a category line, never a side entry.
	if len(b.GlobalEffects) != 0 {
		t.Errorf("categorized global effect duplicated in the side list: %v", b.GlobalEffects)
	}
	found := false
	for _, c := range b.Categories[CategoryGDPRate] {
		if c.Label == "Commerce" {
			found = true
		}
	}
	if !found {
		t.Error("global GDP effect missing from the category list")
	}

	if len(b.CountryEffects) != 1 || !strings.Contains(b.CountryEffects[0], "Dette") {
		t.Errorf("country side list = %v", b.CountryEffects)
	}
	if len(b.MobilisationEffects) != 1 || !strings.Contains(b.MobilisationEffects[0], "+25.00%") {
		t.Errorf("mobilisation side list = %v", b.MobilisationEffects)
	}

	if b.AllocationCapPct != 80 {
		t.Errorf("allocation cap = %v, want 80", b.AllocationCapPct)
	}
}

func TestBuildBreakdownForcedMinimums(t *testing.T) {
	snap := &country.Snapshot{Population: 1000, GDP: 1000}
	effects := []effect.ResolvedEffect{
		{Kind: effect.KindBudgetMinistryMinPct, Target: "defense", Value: 20, Source: effect.SourceCountry, Label: "Traité", Permanent: true},
	}

	b, _ := BuildBreakdown(snap, &budget.Allocation{}, rules.RuleSet{}, &country.WorldAverages{}, effects, BreakdownOptions{})

	if len(b.ForcedMinimums) != 1 {
		t.Fatalf("forced minimums = %v", b.ForcedMinimums)
	}
	fm := b.ForcedMinimums[0]
	if fm.MinistryID != rules.MinistryDefense || fm.Pct != 20 {
		t.Errorf("forced minimum = %+v", fm)
	}
	if fm.Label != "Défense" {
		t.Errorf("forced minimum label = %q", fm.Label)
	}
}
