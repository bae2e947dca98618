package military

import (
	"time"

	"github.com/google/uuid"
)

// BranchID identifies a military branch.
type BranchID string

const (
	BranchLand BranchID = "land"
	BranchNavy BranchID = "navy"
	BranchAir  BranchID = "air"
)

// Branch describes one military branch.
type Branch struct {
	ID    BranchID `json:"id"`
	Label string   `json:"label"`
}

// Branches lists the branches in display order.
var Branches = []Branch{
	{ID: BranchLand, Label: "Armée de terre"},
	{ID: BranchNavy, Label: "Marine"},
	{ID: BranchAir, Label: "Armée de l'air"},
}

// BranchLabelFor returns the display label of a branch id, or the id
// itself when unknown.
func BranchLabelFor(id BranchID) string {
	for _, b := range Branches {
		if b.ID == id {
			return b.Label
		}
	}
	return string(id)
}

// RosterUnit is an admin-defined unit type players can recruit.
type RosterUnit struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Branch    BranchID  `json:"branch"`
	BaseLimit int       `json:"base_limit"`
	Cost      float64   `json:"cost"`
	Upkeep    float64   `json:"upkeep"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CountryUnit is a country's holding of one roster unit.
type CountryUnit struct {
	CountryID int       `json:"country_id"`
	UnitID    uuid.UUID `json:"unit_id"`
	Count     int       `json:"count"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UnitStatus is the effect-adjusted view of one roster unit for a
// country: the effective recruitment limit and the adjusted prices.
type UnitStatus struct {
	Unit            RosterUnit `json:"unit"`
	Count           int        `json:"count"`
	EffectiveLimit  int        `json:"effective_limit"`
	EffectiveCost   float64    `json:"effective_cost"`
	EffectiveUpkeep float64    `json:"effective_upkeep"`
	ExtraUnits      int        `json:"extra_units"`
	LimitModifier   float64    `json:"limit_modifier_pct"`
}
