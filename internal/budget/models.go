package budget

import (
	"time"

	"nations-server/internal/rules"
)

// Allocation holds a country's eight ministry spending percentages. Each
// percentage lives in [0,100] independently; the sum constraint (the
// allocation cap) and forced minimums are enforced by the budget service
// using values the effect accessors expose, not by this struct.
type Allocation struct {
	CountryID      int       `json:"country_id"`
	Health         float64   `json:"pct_health"`
	Education      float64   `json:"pct_education"`
	Research       float64   `json:"pct_research"`
	Infrastructure float64   `json:"pct_infrastructure"`
	Industry       float64   `json:"pct_industry"`
	Defense        float64   `json:"pct_defense"`
	Interior       float64   `json:"pct_interior"`
	ForeignAffairs float64   `json:"pct_foreign_affairs"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Pct returns the allocation of one ministry, 0 for unknown ids.
func (a *Allocation) Pct(id rules.MinistryID) float64 {
	switch id {
	case rules.MinistryHealth:
		return a.Health
	case rules.MinistryEducation:
		return a.Education
	case rules.MinistryResearch:
		return a.Research
	case rules.MinistryInfrastructure:
		return a.Infrastructure
	case rules.MinistryIndustry:
		return a.Industry
	case rules.MinistryDefense:
		return a.Defense
	case rules.MinistryInterior:
		return a.Interior
	case rules.MinistryForeignAffairs:
		return a.ForeignAffairs
	}
	return 0
}

// SetPct sets the allocation of one ministry. Unknown ids are ignored.
func (a *Allocation) SetPct(id rules.MinistryID, pct float64) {
	switch id {
	case rules.MinistryHealth:
		a.Health = pct
	case rules.MinistryEducation:
		a.Education = pct
	case rules.MinistryResearch:
		a.Research = pct
	case rules.MinistryInfrastructure:
		a.Infrastructure = pct
	case rules.MinistryIndustry:
		a.Industry = pct
	case rules.MinistryDefense:
		a.Defense = pct
	case rules.MinistryInterior:
		a.Interior = pct
	case rules.MinistryForeignAffairs:
		a.ForeignAffairs = pct
	}
}

// Total returns the summed allocation over all ministries.
func (a *Allocation) Total() float64 {
	total := 0.0
	for _, m := range rules.Ministries {
		total += a.Pct(m.ID)
	}
	return total
}
