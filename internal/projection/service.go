package projection

import (
	"context"
	"fmt"
	"log/slog"

	"nations-server/internal/budget"
	"nations-server/internal/country"
	"nations-server/internal/effect"
	"nations-server/internal/military"
	"nations-server/internal/mobilisation"
	"nations-server/internal/rules"
)

// TickInputs is the consistent point-in-time view everything downstream
// computes from: snapshot, allocation, rules, world averages, resolved
// effects and roster.
type TickInputs struct {
	Snapshot          *country.Snapshot
	Allocation        *budget.Allocation
	Rules             rules.RuleSet
	World             *country.WorldAverages
	Effects           []effect.ResolvedEffect
	Units             []military.RosterUnit
	MobilisationLevel string
}

// Service gathers the inputs of a projection from the persistence layer
// and runs the pure calculation over them.
type Service struct {
	countryService *country.Service
	budgetRepo     *budget.Repository
	rulesRepo      *rules.Repository
	effectRepo     *effect.Repository
	militaryRepo   *military.Repository
	resolver       *effect.Resolver
	logger         *slog.Logger
}

func NewService(
	countryService *country.Service,
	budgetRepo *budget.Repository,
	rulesRepo *rules.Repository,
	effectRepo *effect.Repository,
	militaryRepo *military.Repository,
	resolver *effect.Resolver,
	logger *slog.Logger,
) *Service {
	return &Service{
		countryService: countryService,
		budgetRepo:     budgetRepo,
		rulesRepo:      rulesRepo,
		effectRepo:     effectRepo,
		militaryRepo:   militaryRepo,
		resolver:       resolver,
		logger:         logger,
	}
}

// LoadInputs reads every input of a projection for one country.
func (s *Service) LoadInputs(ctx context.Context, countryID int) (*TickInputs, error) {
	logger := s.logger.With("component", "projection_service", "operation", "load_inputs", "country_id", countryID)
	logger.Debug("Loading projection inputs")

	snapshot, err := s.countryService.GetSnapshot(ctx, countryID)
	if err != nil {
		return nil, err
	}

	allocation, err := s.budgetRepo.GetByCountryID(ctx, countryID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load allocation: %w", err)
	}

	ruleSet, err := s.rulesRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	world, err := s.countryService.GetWorldAverages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load world averages: %w", err)
	}

	countryEffects, err := s.effectRepo.GetActiveByCountryID(ctx, countryID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load country effects: %w", err)
	}

	units, err := s.militaryRepo.GetRosterUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster units: %w", err)
	}

	level := mobilisation.LevelForScore(snapshot.MobilisationScore, ruleSet.LevelThresholds())

	effects := s.resolver.EffectsForCountry(effect.ResolveContext{
		CountryEffects:    countryEffects,
		MobilisationLevel: level,
		LevelEffects:      ruleSet.LevelEffects(),
		GlobalEffects:     ruleSet.GlobalEffects(),
	})

	logger.Debug("Projection inputs loaded",
		"effects", len(effects),
		"mobilisation_level", level,
	)

	return &TickInputs{
		Snapshot:          snapshot,
		Allocation:        allocation,
		Rules:             ruleSet,
		World:             world,
		Effects:           effects,
		Units:             units,
		MobilisationLevel: level,
	}, nil
}

// Preview computes the expected next tick and its breakdown for one
// country.
func (s *Service) Preview(ctx context.Context, countryID int) (*Breakdown, *Projection, error) {
	inputs, err := s.LoadInputs(ctx, countryID)
	if err != nil {
		return nil, nil, err
	}

	breakdown, expected := BuildBreakdown(
		inputs.Snapshot,
		inputs.Allocation,
		inputs.Rules,
		inputs.World,
		inputs.Effects,
		BreakdownOptions{Units: inputs.Units},
	)
	return breakdown, expected, nil
}
