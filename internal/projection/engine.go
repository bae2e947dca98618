package projection

import (
	"math"

	"nations-server/internal/budget"
	"nations-server/internal/country"
	"nations-server/internal/effect"
	"nations-server/internal/rules"
)

// Stat bounds applied after every tick.
const (
	statMin      = 0.0
	statMax      = 10.0
	stabilityMin = -3.0
	stabilityMax = 3.0
)

// ProjectNextTick computes the expected values of the next simulation tick
// for one country. It is a pure function of its arguments: malformed rule
// values fall back to documented defaults and degenerate effect values
// contribute nothing, so it never fails.
func ProjectNextTick(
	snap *country.Snapshot,
	pcts *budget.Allocation,
	rs rules.RuleSet,
	world *country.WorldAverages,
	effects []effect.ResolvedEffect,
) *Projection {
	inputs := Inputs{
		PopulationBaseRate:      rs.Rate(rules.KeyPopulationGrowthBaseRate, rules.DefaultPopulationGrowthBaseRate),
		GDPBaseRate:             rs.Rate(rules.KeyGDPGrowthBaseRate, rules.DefaultGDPGrowthBaseRate),
		PopulationStatRates:     make(map[country.StatKey]float64, len(country.StatKeys)),
		GDPStatRates:            make(map[country.StatKey]float64, len(country.StatKeys)),
		StatEffectDeltas:        make(map[country.StatKey]float64, len(country.StatKeys)),
		BudgetPopulationSources: make(SourceMap),
		BudgetGDPSources:        make(SourceMap),
		BudgetStatSources:       make(map[country.StatKey]SourceMap, len(country.StatKeys)),
	}
	for _, stat := range country.StatKeys {
		inputs.BudgetStatSources[stat] = make(SourceMap)
	}

	// Stat-linked growth rates: one coefficient per stat per rate.
	for _, stat := range country.StatKeys {
		inputs.PopulationStatRates[stat] = rs.Rate(rules.PopulationPerStatKey(stat), 0) * snap.Stat(stat)
		inputs.GDPStatRates[stat] = rs.Rate(rules.GDPPerStatKey(stat), 0) * snap.Stat(stat)
	}

	// Effect-linked rates and deltas.
	for _, e := range effects {
		if !e.Active() || math.IsNaN(e.Value) {
			continue
		}

		switch e.Kind {
		case effect.KindPopulationGrowth:
			inputs.PopulationEffectRate += normalizeRate(e.Value)
		case effect.KindGDPGrowth:
			inputs.GDPEffectRate += normalizeRate(e.Value)
		case effect.KindStatDelta:
			// Raw delta, no normalization. Unknown targets fall through.
			switch stat := country.StatKey(e.Target); stat {
			case country.StatMilitarism, country.StatIndustry, country.StatScience, country.StatStability:
				inputs.StatEffectDeltas[stat] += e.Value
			}
		case effect.KindPopulationDelta,
			effect.KindBudgetMinistryMinPct,
			effect.KindBudgetAllocationCap,
			effect.KindUnitExtra,
			effect.KindUnitLimitModifier,
			effect.KindUnitCostMultiplier,
			effect.KindUnitUpkeepMultiplier,
			effect.KindMobilisationScoreDelta:
			// Applied elsewhere: flat deltas by the tick job, the rest by
			// the budget and military constraint accessors.
		}
	}

	// Budget contributions, ministry by ministry.
	for _, m := range rules.Ministries {
		rule := rs.Ministry(m.ID)
		pct := pcts.Pct(m.ID)

		for _, target := range rules.TargetKeys {
			bonus := rule.Bonuses[target]
			malus := rule.Maluses[target]
			if bonus == 0 && malus == 0 {
				continue
			}

			raw := MinistryContribution(pct, rule.MinPct, bonus, malus)
			if math.IsNaN(raw) {
				continue
			}

			contribution := SourceContribution{
				MinistryID: m.ID,
				Label:      m.Label,
				Value:      raw,
				Raw:        raw,
			}

			// Gravity applies per ministry source, before summing, and
			// only to the militarism/industry/science contributions.
			if rules.GravityApplies(target) {
				stat := country.StatKey(target)
				factor := gravityFactor(rule.GravityPct, world.Stat(stat), snap.Stat(stat), raw)
				contribution.Value = raw * factor
				contribution.Gravity = &GravityInfo{
					Base:       raw,
					WorldAvg:   world.Stat(stat),
					CountryVal: snap.Stat(stat),
					GravityPct: rule.GravityPct,
					Factor:     factor,
				}
			}

			switch target {
			case rules.TargetPopulation:
				inputs.BudgetPopulationSources[m.ID] = contribution
			case rules.TargetGDP:
				inputs.BudgetGDPSources[m.ID] = contribution
			default:
				inputs.BudgetStatSources[country.StatKey(target)][m.ID] = contribution
			}
		}
	}

	// Totals.
	inputs.PopulationTotalRate = inputs.PopulationBaseRate +
		sumStatRates(inputs.PopulationStatRates) +
		inputs.PopulationEffectRate +
		inputs.BudgetPopulationSources.Total()
	inputs.GDPTotalRate = inputs.GDPBaseRate +
		sumStatRates(inputs.GDPStatRates) +
		inputs.GDPEffectRate +
		inputs.BudgetGDPSources.Total()

	projection := &Projection{Inputs: inputs}

	population := float64(snap.Population) + float64(snap.Population)*inputs.PopulationTotalRate
	projection.Population = int64(math.Max(0, math.Round(population)))

	projection.GDP = math.Max(0, snap.GDP+snap.GDP*inputs.GDPTotalRate)

	projection.Militarism = clampStat(round2(
		snap.Militarism+inputs.StatEffectDeltas[country.StatMilitarism]+
			inputs.BudgetStatSources[country.StatMilitarism].Total()), statMin, statMax)
	projection.Industry = clampStat(round2(
		snap.Industry+inputs.StatEffectDeltas[country.StatIndustry]+
			inputs.BudgetStatSources[country.StatIndustry].Total()), statMin, statMax)
	projection.Science = clampStat(round2(
		snap.Science+inputs.StatEffectDeltas[country.StatScience]+
			inputs.BudgetStatSources[country.StatScience].Total()), statMin, statMax)
	projection.Stability = clampStat(round2(
		snap.Stability+inputs.StatEffectDeltas[country.StatStability]+
			inputs.BudgetStatSources[country.StatStability].Total()), stabilityMin, stabilityMax)

	return projection
}

// MinistryContribution is the two-regime allocation function. At or above
// the minimum the bonus scales with the allocation; below it the malus
// scales with the shortfall. The boundary is inclusive on the bonus side,
// and the jump at pct = minPct when bonus and malus are not tuned to meet
// is intended rulebook behavior.
func MinistryContribution(pct, minPct, bonus, malus float64) float64 {
	if pct >= minPct {
		return pct / 100 * bonus
	}
	if minPct <= 0 {
		return 0
	}
	return (minPct - pct) / minPct * malus
}

// normalizeRate interprets effect growth values: magnitudes above 1 are
// percent points, anything else already a fraction.
func normalizeRate(value float64) float64 {
	if math.Abs(value) > 1 {
		return value / 100
	}
	return value
}

func sumStatRates(rates map[country.StatKey]float64) float64 {
	total := 0.0
	for _, r := range rates {
		total += r
	}
	return total
}

// round2 rounds to two decimals, the precision of the stored stats.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampStat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
