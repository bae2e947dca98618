// Package tick runs the simulation: one tick advances the game calendar
// by one day and moves every country to its projected next values.
package tick

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"nations-server/internal/budget"
	"nations-server/internal/country"
	"nations-server/internal/effect"
	"nations-server/internal/mobilisation"
	"nations-server/internal/projection"
	"nations-server/internal/rules"
	"nations-server/internal/shared/database"
	"nations-server/internal/world"
)

// Result summarizes one tick run.
type Result struct {
	Tick      int64          `json:"tick"`
	Date      world.GameDate `json:"date"`
	Countries int            `json:"countries"`
	Failed    int            `json:"failed"`
	Duration  string         `json:"duration"`
}

type Service struct {
	db             *database.DB
	countryRepo    *country.Repository
	countryService *country.Service
	budgetRepo     *budget.Repository
	rulesRepo      *rules.Repository
	effectRepo     *effect.Repository
	worldService   *world.Service
	resolver       *effect.Resolver
	logger         *slog.Logger
}

func NewService(
	db *database.DB,
	countryRepo *country.Repository,
	countryService *country.Service,
	budgetRepo *budget.Repository,
	rulesRepo *rules.Repository,
	effectRepo *effect.Repository,
	worldService *world.Service,
	resolver *effect.Resolver,
	logger *slog.Logger,
) *Service {
	return &Service{
		db:             db,
		countryRepo:    countryRepo,
		countryService: countryService,
		budgetRepo:     budgetRepo,
		rulesRepo:      rulesRepo,
		effectRepo:     effectRepo,
		worldService:   worldService,
		resolver:       resolver,
		logger:         logger,
	}
}

// RunTick simulates one day for every country, then advances the game
// calendar. Countries are processed in their own transactions so one
// corrupt nation cannot stall the rest of the world; the world averages
// used for gravity are fixed once at the start of the run.
func (s *Service) RunTick(ctx context.Context) (*Result, error) {
	start := time.Now()
	logger := s.logger.With("component", "tick_service", "operation", "run_tick")
	logger.Info("Starting simulation tick")

	ruleSet, err := s.rulesRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	averages, err := s.countryRepo.ComputeWorldAverages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute world averages: %w", err)
	}

	ids, err := s.countryRepo.GetIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}

	failed := 0
	for _, id := range ids {
		if err := s.tickCountry(ctx, id, ruleSet, averages); err != nil {
			logger.Error("Failed to tick country", "country_id", id, "error", err)
			failed++
		}
	}

	state, err := s.advanceCalendar(ctx)
	if err != nil {
		return nil, err
	}

	// Every country moved, so the cached averages are stale.
	s.countryService.InvalidateWorldAverages(ctx)

	result := &Result{
		Tick:      state.TickCount,
		Date:      state.Date,
		Countries: len(ids) - failed,
		Failed:    failed,
		Duration:  time.Since(start).String(),
	}

	logger.Info("Simulation tick completed",
		"tick", result.Tick,
		"date", result.Date.String(),
		"countries", result.Countries,
		"failed", result.Failed,
		"duration", result.Duration,
	)
	return result, nil
}

// tickCountry applies one simulated day to a single country inside its
// own transaction. The row is locked first and the allocation and effect
// reads run in the same transaction, so a concurrent budget save cannot
// interleave with the update.
func (s *Service) tickCountry(ctx context.Context, countryID int, ruleSet rules.RuleSet, averages *country.WorldAverages) error {
	tx, err := s.db.BeginTxContext(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	snap, err := s.countryRepo.GetByIDForUpdate(ctx, countryID, tx)
	if err != nil {
		return fmt.Errorf("failed to lock country: %w", err)
	}

	allocation, err := s.budgetRepo.GetByCountryID(ctx, countryID, tx)
	if err != nil {
		return fmt.Errorf("failed to load allocation: %w", err)
	}

	countryEffects, err := s.effectRepo.GetActiveByCountryID(ctx, countryID, tx)
	if err != nil {
		return fmt.Errorf("failed to load effects: %w", err)
	}

	level := mobilisation.LevelForScore(snap.MobilisationScore, ruleSet.LevelThresholds())
	effects := s.resolver.EffectsForCountry(effect.ResolveContext{
		CountryEffects:    countryEffects,
		MobilisationLevel: level,
		LevelEffects:      ruleSet.LevelEffects(),
		GlobalEffects:     ruleSet.GlobalEffects(),
	})

	expected := projection.ProjectNextTick(snap, allocation, ruleSet, averages, effects)

	next := *snap
	next.Population = expected.Population
	next.GDP = expected.GDP
	next.Militarism = expected.Militarism
	next.Industry = expected.Industry
	next.Science = expected.Science
	next.Stability = expected.Stability

	// Flat deltas sit outside the rate projection and land once per tick.
	if delta := effect.FlatDeltaSum(effects, effect.KindPopulationDelta); delta != 0 {
		next.Population += delta
		if next.Population < 0 {
			next.Population = 0
		}
	}
	if delta := effect.FlatDeltaSum(effects, effect.KindMobilisationScoreDelta); delta != 0 {
		next.MobilisationScore = mobilisation.ClampScore(next.MobilisationScore + int(delta))
	}

	if err := s.countryRepo.UpdateSimulatedValues(ctx, &next, tx); err != nil {
		return err
	}

	if err := s.effectRepo.DecrementDurations(ctx, countryID, tx); err != nil {
		return err
	}
	if _, err := s.effectRepo.DeleteExpired(ctx, countryID, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tick for country %d: %w", countryID, err)
	}
	committed = true
	return nil
}

func (s *Service) advanceCalendar(ctx context.Context) (*world.State, error) {
	tx, err := s.db.BeginTxContext(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	state, err := s.worldService.Advance(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit calendar advance: %w", err)
	}
	committed = true
	return state, nil
}
