package military

import (
	"context"
	"log/slog"
	"math"

	"nations-server/internal/effect"
)

type Service struct {
	repo   *Repository
	logger *slog.Logger
}

func NewService(repo *Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetUnitStatuses returns the effect-adjusted roster view for one
// country: effective limits and prices per unit, given the country's
// resolved effects.
func (s *Service) GetUnitStatuses(ctx context.Context, countryID int, effects []effect.ResolvedEffect) ([]UnitStatus, error) {
	logger := s.logger.With("component", "military_service", "operation", "unit_statuses", "country_id", countryID)

	units, err := s.repo.GetRosterUnits(ctx)
	if err != nil {
		return nil, err
	}

	holdings, err := s.repo.GetCountryUnits(ctx, countryID)
	if err != nil {
		return nil, err
	}

	statuses := make([]UnitStatus, 0, len(units))
	for _, unit := range units {
		statuses = append(statuses, UnitStatusFor(unit, holdings[unit.ID.String()].Count, effects))
	}

	logger.Debug("Unit statuses computed", "count", len(statuses))
	return statuses, nil
}

// UnitStatusFor computes one unit's effective limit and prices. The limit
// scales with the branch modifier before the flat extras are added, and
// never drops below zero.
func UnitStatusFor(unit RosterUnit, count int, effects []effect.ResolvedEffect) UnitStatus {
	unitID := unit.ID.String()

	limitModifier := effect.LimitModifierPercent(effects, string(unit.Branch))
	extras := int(math.Floor(effect.UnitExtraSum(effects, unitID)))

	limit := int(math.Floor(float64(unit.BaseLimit)*(1+limitModifier/100))) + extras
	if limit < 0 {
		limit = 0
	}

	return UnitStatus{
		Unit:            unit,
		Count:           count,
		EffectiveLimit:  limit,
		EffectiveCost:   unit.Cost * effect.MultiplierProduct(effects, effect.KindUnitCostMultiplier, unitID),
		EffectiveUpkeep: unit.Upkeep * effect.MultiplierProduct(effects, effect.KindUnitUpkeepMultiplier, unitID),
		ExtraUnits:      extras,
		LimitModifier:   limitModifier,
	}
}
