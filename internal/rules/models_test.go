package rules

import (
	"encoding/json"
	"testing"
)

func TestRuleSetRate(t *testing.T) {
	rs := RuleSet{
		"population_growth_base_rate": json.RawMessage(`0.002`),
		"gdp_growth_base_rate":        json.RawMessage(`"not a number"`),
	}

	if got := rs.Rate(KeyPopulationGrowthBaseRate, 0.001); got != 0.002 {
		t.Errorf("Rate(population) = %v, want 0.002", got)
	}
	if got := rs.Rate(KeyGDPGrowthBaseRate, 0.0005); got != 0.0005 {
		t.Errorf("malformed rate did not fall back: %v", got)
	}
	if got := rs.Rate("missing_key", 0.42); got != 0.42 {
		t.Errorf("missing rate did not fall back: %v", got)
	}
}

func TestRuleSetMinistry(t *testing.T) {
	rs := RuleSet{
		"budget_defense":  json.RawMessage(`{"min_pct": 10, "gravity_pct": 15, "bonuses": {"militarism": 0.06}}`),
		"budget_interior": json.RawMessage(`{"min_pct": -3}`),
		"budget_health":   json.RawMessage(`{broken`),
		"budget_research": json.RawMessage(`{"gravity_pct": 10, "maluses": {"science": 0.05}}`),
		"budget_industry": json.RawMessage(`{"min_pct": 0}`),
	}

	defense := rs.Ministry(MinistryDefense)
	if defense.MinPct != 10 || defense.GravityPct != 15 {
		t.Errorf("defense rule = %+v", defense)
	}
	if defense.Bonuses[TargetMilitarism] != 0.06 {
		t.Errorf("defense bonus = %v, want 0.06", defense.Bonuses[TargetMilitarism])
	}

	interior := rs.Ministry(MinistryInterior)
	if interior.MinPct != DefaultMinistryMinPct {
		t.Errorf("negative min_pct kept: %v", interior.MinPct)
	}

	research := rs.Ministry(MinistryResearch)
	if research.MinPct != DefaultMinistryMinPct {
		t.Errorf("absent min_pct = %v, want the default", research.MinPct)
	}
	if research.GravityPct != 10 || research.Maluses[TargetScience] != 0.05 {
		t.Errorf("research rule = %+v", research)
	}

	industry := rs.Ministry(MinistryIndustry)
	if industry.MinPct != 0 {
		t.Errorf("explicit zero min_pct = %v, want 0", industry.MinPct)
	}

	for _, id := range []MinistryID{MinistryHealth, MinistryEducation} {
		m := rs.Ministry(id)
		if m.MinPct != DefaultMinistryMinPct {
			t.Errorf("%s min_pct = %v, want the default", id, m.MinPct)
		}
		if m.Bonuses == nil || m.Maluses == nil {
			t.Errorf("%s returned nil maps", id)
		}
	}
}

func TestRuleSetLevelThresholds(t *testing.T) {
	rs := RuleSet{
		"mobilisation_level_thresholds": json.RawMessage(`{"peace": 0, "war": 400}`),
	}
	thresholds := rs.LevelThresholds()
	if thresholds["war"] != 400 {
		t.Errorf("war threshold = %d, want 400", thresholds["war"])
	}

	broken := RuleSet{"mobilisation_level_thresholds": json.RawMessage(`[1,2]`)}
	if got := broken.LevelThresholds(); got != nil {
		t.Errorf("malformed thresholds = %v, want nil", got)
	}
}

func TestGravityApplies(t *testing.T) {
	if !GravityApplies(TargetMilitarism) || !GravityApplies(TargetIndustry) || !GravityApplies(TargetScience) {
		t.Error("gravity must apply to militarism, industry and science")
	}
	if GravityApplies(TargetStability) || GravityApplies(TargetPopulation) || GravityApplies(TargetGDP) {
		t.Error("gravity must not apply to stability, population or gdp")
	}
}
