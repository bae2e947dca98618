package budget

import (
	"context"
	"fmt"
	"log/slog"

	"nations-server/internal/effect"
	"nations-server/internal/rules"
	"nations-server/internal/shared/errors"
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

// GetAllocation returns a country's current allocation.
func (s *Service) GetAllocation(ctx context.Context, countryID int) (*Allocation, error) {
	return s.repo.GetByCountryID(ctx, countryID, nil)
}

// UpdateAllocation validates and stores a new allocation. Validation uses
// the country's resolved effects: each ministry must stay at or above its
// forced minimum, and the sum must not exceed the allocation cap.
func (s *Service) UpdateAllocation(ctx context.Context, a *Allocation, effects []effect.ResolvedEffect) (*Allocation, error) {
	logger := s.logger.With("component", "budget_service", "operation", "update_allocation", "country_id", a.CountryID)
	logger.Debug("Validating budget allocation")

	if err := Validate(a, effects); err != nil {
		return nil, err
	}

	updated, err := s.repo.Upsert(ctx, a)
	if err != nil {
		logger.Error("Failed to store allocation", "error", err)
		return nil, fmt.Errorf("failed to store allocation: %w", err)
	}

	logger.Info("Budget allocation updated", "total_pct", updated.Total())
	return updated, nil
}

// Validate checks an allocation against the per-ministry range, the
// forced minimums and the allocation cap derived from effects.
func Validate(a *Allocation, effects []effect.ResolvedEffect) error {
	for _, m := range rules.Ministries {
		pct := a.Pct(m.ID)
		if pct < 0 || pct > 100 {
			return errors.Validationf("allocation for %s must be between 0 and 100, got %.2f", m.ID, pct)
		}
	}

	forced := effect.ForcedMinPcts(effects)
	for ministryID, minPct := range forced {
		if a.Pct(rules.MinistryID(ministryID)) < minPct {
			return errors.Validationf("allocation for %s is forced to at least %.2f%%", ministryID, minPct)
		}
	}

	cap := effect.AllocationCapPercent(effects)
	if total := a.Total(); total > cap {
		return errors.Validationf("total allocation %.2f%% exceeds the cap of %.2f%%", total, cap)
	}

	return nil
}
