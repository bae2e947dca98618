package rules

import "nations-server/internal/country"

// MinistryID is the stable identifier of a spending ministry. Calculation
// maps are keyed by MinistryID; the French display label is only attached
// at the presentation boundary.
type MinistryID string

const (
	MinistryHealth         MinistryID = "health"
	MinistryEducation      MinistryID = "education"
	MinistryResearch       MinistryID = "research"
	MinistryInfrastructure MinistryID = "infrastructure"
	MinistryIndustry       MinistryID = "industry"
	MinistryDefense        MinistryID = "defense"
	MinistryInterior       MinistryID = "interior"
	MinistryForeignAffairs MinistryID = "foreign_affairs"
)

// Ministry describes one budget category.
type Ministry struct {
	ID    MinistryID `json:"id"`
	Label string     `json:"label"`
}

// Ministries lists the eight spending ministries in display order.
var Ministries = []Ministry{
	{ID: MinistryHealth, Label: "Santé"},
	{ID: MinistryEducation, Label: "Éducation"},
	{ID: MinistryResearch, Label: "Recherche"},
	{ID: MinistryInfrastructure, Label: "Infrastructure"},
	{ID: MinistryIndustry, Label: "Industrie"},
	{ID: MinistryDefense, Label: "Défense"},
	{ID: MinistryInterior, Label: "Intérieur"},
	{ID: MinistryForeignAffairs, Label: "Affaires étrangères"},
}

// LabelFor returns the display label for a ministry id, or the id itself
// when unknown.
func LabelFor(id MinistryID) string {
	for _, m := range Ministries {
		if m.ID == id {
			return m.Label
		}
	}
	return string(id)
}

// IsMinistry reports whether id names a known ministry.
func IsMinistry(id MinistryID) bool {
	for _, m := range Ministries {
		if m.ID == id {
			return true
		}
	}
	return false
}

// TargetKey identifies what a ministry bonus or malus applies to: one of
// the bounded stats, or the population / gdp growth rates.
type TargetKey string

const (
	TargetPopulation TargetKey = "population"
	TargetGDP        TargetKey = "gdp"
	TargetMilitarism TargetKey = TargetKey(country.StatMilitarism)
	TargetIndustry   TargetKey = TargetKey(country.StatIndustry)
	TargetScience    TargetKey = TargetKey(country.StatScience)
	TargetStability  TargetKey = TargetKey(country.StatStability)
)

// TargetKeys lists every valid bonus/malus target.
var TargetKeys = []TargetKey{
	TargetPopulation,
	TargetGDP,
	TargetMilitarism,
	TargetIndustry,
	TargetScience,
	TargetStability,
}

// IsStatTarget reports whether key names one of the four bounded stats
// (as opposed to the population or GDP growth rates).
func IsStatTarget(key TargetKey) bool {
	switch key {
	case TargetMilitarism, TargetIndustry, TargetScience, TargetStability:
		return true
	}
	return false
}

// GravityApplies reports whether the gravity adjustment applies to budget
// contributions toward this target. Population, GDP and stability are
// deliberately excluded ("pas de multiplicateur" in the rulebook).
func GravityApplies(key TargetKey) bool {
	switch key {
	case TargetMilitarism, TargetIndustry, TargetScience:
		return true
	}
	return false
}
