package projection

import (
	"fmt"
	"math"

	"nations-server/internal/budget"
	"nations-server/internal/country"
	"nations-server/internal/effect"
	"nations-server/internal/military"
	"nations-server/internal/rules"
)

// Category identifies one contribution list of the breakdown.
type Category string

const (
	CategoryPopulationRate  Category = "population_rate"
	CategoryGDPRate         Category = "gdp_rate"
	CategoryMilitarismDelta Category = "militarism_delta"
	CategoryIndustryDelta   Category = "industry_delta"
	CategoryScienceDelta    Category = "science_delta"
	CategoryStabilityDelta  Category = "stability_delta"
)

func categoryForStat(stat country.StatKey) Category {
	switch stat {
	case country.StatMilitarism:
		return CategoryMilitarismDelta
	case country.StatIndustry:
		return CategoryIndustryDelta
	case country.StatScience:
		return CategoryScienceDelta
	default:
		return CategoryStabilityDelta
	}
}

// Contribution is one labeled line of a category.
type Contribution struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Tooltip string  `json:"tooltip,omitempty"`
}

// ForcedMinimum is one ministry's forced minimum allocation.
type ForcedMinimum struct {
	MinistryID rules.MinistryID `json:"ministry_id"`
	Label      string           `json:"label"`
	Pct        float64          `json:"pct"`
}

// LimitModifier is one branch's summed unit-limit modifier.
type LimitModifier struct {
	BranchID military.BranchID `json:"branch_id"`
	Label    string            `json:"label"`
	Percent  float64           `json:"percent"`
}

// UnitExtra is one roster unit's summed extra-unit count.
type UnitExtra struct {
	UnitID string `json:"unit_id"`
	Name   string `json:"name"`
	Count  int    `json:"count"`
}

// Breakdown is the itemized view of one projection, for the admin debug
// page and the cabinet report.
type Breakdown struct {
	Categories map[Category][]Contribution `json:"categories"`

	ForcedMinimums   []ForcedMinimum `json:"forced_minimums"`
	AllocationCapPct float64         `json:"allocation_cap_pct"`
	LimitModifiers   []LimitModifier `json:"limit_modifiers"`
	UnitExtras       []UnitExtra     `json:"unit_extras"`

	// Per-source effect descriptions for kinds not already reflected in
	// the category lists above.
	GlobalEffects       []string `json:"global_effects"`
	CountryEffects      []string `json:"country_effects"`
	MobilisationEffects []string `json:"mobilisation_effects"`
}

// BreakdownOptions carries the optional roster context.
type BreakdownOptions struct {
	Units []military.RosterUnit
}

// intensity threshold below which a limit modifier is treated as noise.
const limitModifierEpsilon = 1e-9

// BuildBreakdown expands a country's projection into labeled contribution
// lists. Budget lines are pulled verbatim from the projection's source
// maps so the two views cannot disagree; the effect sources are re-walked
// independently of the engine's aggregation.
func BuildBreakdown(
	snap *country.Snapshot,
	pcts *budget.Allocation,
	rs rules.RuleSet,
	world *country.WorldAverages,
	effects []effect.ResolvedEffect,
	opts BreakdownOptions,
) (*Breakdown, *Projection) {
	expected := ProjectNextTick(snap, pcts, rs, world, effects)

	b := &Breakdown{
		Categories:       make(map[Category][]Contribution),
		AllocationCapPct: effect.AllocationCapPercent(effects),
	}

	// Base rates.
	b.add(CategoryPopulationRate, Contribution{Label: "Taux de base", Value: expected.Inputs.PopulationBaseRate})
	b.add(CategoryGDPRate, Contribution{Label: "Taux de base", Value: expected.Inputs.GDPBaseRate})

	// Stat-linked rates.
	for _, stat := range country.StatKeys {
		if v := expected.Inputs.PopulationStatRates[stat]; v != 0 {
			b.add(CategoryPopulationRate, Contribution{Label: "Influence : " + statDisplayName(stat), Value: v})
		}
		if v := expected.Inputs.GDPStatRates[stat]; v != 0 {
			b.add(CategoryGDPRate, Contribution{Label: "Influence : " + statDisplayName(stat), Value: v})
		}
	}

	// Effect contributions, walked per source so labels stay attributable.
	for _, e := range effects {
		if !e.Active() || math.IsNaN(e.Value) {
			continue
		}
		b.addEffect(e)
	}

	// Budget contributions, verbatim from the engine's source maps.
	for _, m := range rules.Ministries {
		if c, ok := expected.Inputs.BudgetPopulationSources[m.ID]; ok {
			b.add(CategoryPopulationRate, Contribution{Label: c.Label, Value: c.Value})
		}
		if c, ok := expected.Inputs.BudgetGDPSources[m.ID]; ok {
			b.add(CategoryGDPRate, Contribution{Label: c.Label, Value: c.Value})
		}
		for _, stat := range country.StatKeys {
			c, ok := expected.Inputs.BudgetStatSources[stat][m.ID]
			if !ok {
				continue
			}
			b.add(categoryForStat(stat), Contribution{
				Label:   c.Label,
				Value:   c.Value,
				Tooltip: gravityTooltip(c.Gravity),
			})
		}
	}

	// Auxiliary constraints.
	forced := effect.ForcedMinPcts(effects)
	for _, m := range rules.Ministries {
		if pct, ok := forced[string(m.ID)]; ok {
			b.ForcedMinimums = append(b.ForcedMinimums, ForcedMinimum{
				MinistryID: m.ID,
				Label:      m.Label,
				Pct:        pct,
			})
		}
	}

	for _, branch := range military.Branches {
		pct := effect.LimitModifierPercent(effects, string(branch.ID))
		if math.Abs(pct) <= limitModifierEpsilon {
			continue
		}
		b.LimitModifiers = append(b.LimitModifiers, LimitModifier{
			BranchID: branch.ID,
			Label:    branch.Label,
			Percent:  pct,
		})
	}

	for _, unit := range opts.Units {
		extra := effect.UnitExtraSum(effects, unit.ID.String())
		if extra == 0 {
			continue
		}
		b.UnitExtras = append(b.UnitExtras, UnitExtra{
			UnitID: unit.ID.String(),
			Name:   unit.Name,
			Count:  int(math.Floor(extra)),
		})
	}

	return b, expected
}

func (b *Breakdown) add(category Category, c Contribution) {
	b.Categories[category] = append(b.Categories[category], c)
}

// addEffect routes one resolved effect into its category, or into the
// per-source side list when its kind has no category of its own.
func (b *Breakdown) addEffect(e effect.ResolvedEffect) {
	switch e.Kind {
	case effect.KindPopulationGrowth:
		b.add(CategoryPopulationRate, Contribution{Label: e.Label, Value: normalizeRate(e.Value), Tooltip: durationTooltip(e)})
	case effect.KindGDPGrowth:
		b.add(CategoryGDPRate, Contribution{Label: e.Label, Value: normalizeRate(e.Value), Tooltip: durationTooltip(e)})
	case effect.KindStatDelta:
		switch stat := country.StatKey(e.Target); stat {
		case country.StatMilitarism, country.StatIndustry, country.StatScience, country.StatStability:
			b.add(categoryForStat(stat), Contribution{Label: e.Label, Value: e.Value, Tooltip: durationTooltip(e)})
		}
	case effect.KindPopulationDelta,
		effect.KindBudgetMinistryMinPct,
		effect.KindBudgetAllocationCap,
		effect.KindUnitExtra,
		effect.KindUnitLimitModifier,
		effect.KindUnitCostMultiplier,
		effect.KindUnitUpkeepMultiplier,
		effect.KindMobilisationScoreDelta:
		description := fmt.Sprintf("%s : %s", e.Label, effect.FormatValue(e.Kind, e.Value))
		switch e.Source {
		case effect.SourceGlobal:
			b.GlobalEffects = append(b.GlobalEffects, description)
		case effect.SourceMobilisation:
			b.MobilisationEffects = append(b.MobilisationEffects, description)
		default:
			b.CountryEffects = append(b.CountryEffects, description)
		}
	}
}

func durationTooltip(e effect.ResolvedEffect) string {
	if e.Permanent {
		return ""
	}
	if e.DaysRemaining == 1 {
		return "Expire dans 1 jour"
	}
	return fmt.Sprintf("Expire dans %d jours", e.DaysRemaining)
}

// gravityTooltip renders the gravity formula with the exact numbers of
// the adjustment, matching the engine's arithmetic to two-three decimals.
func gravityTooltip(g *GravityInfo) string {
	if g == nil {
		return ""
	}

	high, low := g.WorldAvg, g.CountryVal
	if g.Base < 0 {
		high, low = g.CountryVal, g.WorldAvg
	}

	return fmt.Sprintf(
		"Gravité : facteur = borné(1 + (%.2f/100) × (%.2f − %.2f)/%.2f, 0.1, 2) = %.3f\n"+
			"Contribution : %.3f × %.3f = %.3f",
		g.GravityPct, high, low, g.WorldAvg, g.Factor,
		g.Base, g.Factor, g.Base*g.Factor,
	)
}

func statDisplayName(stat country.StatKey) string {
	switch stat {
	case country.StatMilitarism:
		return "militarisme"
	case country.StatIndustry:
		return "industrie"
	case country.StatScience:
		return "science"
	case country.StatStability:
		return "stabilité"
	}
	return string(stat)
}
