package military

import (
	"math"
	"testing"

	"github.com/google/uuid"

	"nations-server/internal/effect"
)

func TestUnitStatusFor(t *testing.T) {
	unit := RosterUnit{
		ID:        uuid.MustParse("4f1a2b3c-0001-4000-8000-000000000001"),
		Name:      "Infanterie",
		Branch:    BranchLand,
		BaseLimit: 100,
		Cost:      10,
		Upkeep:    1,
	}
	unitID := unit.ID.String()

	effects := []effect.ResolvedEffect{
		{Kind: effect.KindUnitLimitModifier, Target: "land", Value: -25, Permanent: true},
		{Kind: effect.KindUnitExtra, Target: unitID, Value: 5, Permanent: true},
		{Kind: effect.KindUnitCostMultiplier, Target: unitID, Value: 1.25, Permanent: true},
		{Kind: effect.KindUnitUpkeepMultiplier, Target: unitID, Value: 0.5, Permanent: true},
		{Kind: effect.KindUnitCostMultiplier, Target: "other", Value: 3, Permanent: true},
	}

	status := UnitStatusFor(unit, 42, effects)

	// 100 × 0.75 = 75, plus 5 flat extras.
	if status.EffectiveLimit != 80 {
		t.Errorf("effective limit = %d, want 80", status.EffectiveLimit)
	}
	if status.Count != 42 {
		t.Errorf("count = %d, want 42", status.Count)
	}
	if math.Abs(status.EffectiveCost-12.5) > 1e-9 {
		t.Errorf("effective cost = %v, want 12.5", status.EffectiveCost)
	}
	if math.Abs(status.EffectiveUpkeep-0.5) > 1e-9 {
		t.Errorf("effective upkeep = %v, want 0.5", status.EffectiveUpkeep)
	}
	if status.ExtraUnits != 5 || status.LimitModifier != -25 {
		t.Errorf("extras = %d, modifier = %v", status.ExtraUnits, status.LimitModifier)
	}
}

func TestUnitStatusForNeverNegativeLimit(t *testing.T) {
	unit := RosterUnit{ID: uuid.New(), Branch: BranchAir, BaseLimit: 10}
	effects := []effect.ResolvedEffect{
		{Kind: effect.KindUnitLimitModifier, Target: "air", Value: -100, Permanent: true},
		{Kind: effect.KindUnitExtra, Target: unit.ID.String(), Value: -50, Permanent: true},
	}

	status := UnitStatusFor(unit, 0, effects)
	if status.EffectiveLimit != 0 {
		t.Errorf("effective limit = %d, want 0", status.EffectiveLimit)
	}
}

func TestBranchLabelFor(t *testing.T) {
	if got := BranchLabelFor(BranchNavy); got != "Marine" {
		t.Errorf("BranchLabelFor(navy) = %q", got)
	}
	if got := BranchLabelFor(BranchID("space")); got != "space" {
		t.Errorf("unknown branch label = %q", got)
	}
}
