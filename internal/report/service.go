// Package report turns a projection into the monthly cabinet report:
// French prose blocks, one per ministry, chosen deterministically from
// an embedded phrase bank.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"

	"nations-server/internal/projection"
	"nations-server/internal/shared/redis"
	"nations-server/internal/world"
)

const reportCacheTTL = 10 * time.Minute

// Report is the full cabinet report for one country on one game date.
type Report struct {
	CountryID int             `json:"country_id"`
	Country   string          `json:"country"`
	Date      world.GameDate  `json:"date"`
	Headline  string          `json:"headline"`
	Blocks    []MinistryBlock `json:"blocks"`
}

type Service struct {
	projectionService *projection.Service
	worldService      *world.Service
	cache             *redis.Client
	logger            *slog.Logger
}

func NewService(
	projectionService *projection.Service,
	worldService *world.Service,
	cache *redis.Client,
	logger *slog.Logger,
) *Service {
	return &Service{
		projectionService: projectionService,
		worldService:      worldService,
		cache:             cache,
		logger:            logger,
	}
}

// reportSeed derives the phrase seed from the country and the game
// month. Every report of the same country in the same month picks the
// same variants, so re-reading the page never reshuffles the prose.
func reportSeed(countryID, year, month int) int64 {
	return int64(countryID)*10000 + int64(year)*12 + int64(month)
}

// GetCabinetReport builds (or serves from cache) the cabinet report for
// one country at the current game date.
func (s *Service) GetCabinetReport(ctx context.Context, countryID int) (*Report, error) {
	logger := s.logger.With("component", "report_service", "operation", "cabinet_report", "country_id", countryID)

	state, err := s.worldService.GetState(ctx)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("report:%d:%04d-%02d-%02d", countryID, state.Date.Year, state.Date.Month, state.Date.Day)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var report Report
			if err := json.Unmarshal(cached, &report); err == nil {
				logger.Debug("Cabinet report served from cache")
				return &report, nil
			}
		}
	}

	inputs, err := s.projectionService.LoadInputs(ctx, countryID)
	if err != nil {
		return nil, err
	}
	expected := projection.ProjectNextTick(inputs.Snapshot, inputs.Allocation, inputs.Rules, inputs.World, inputs.Effects)

	seed := reportSeed(countryID, state.Date.Year, state.Date.Month)
	blocks, err := BuildCabinetReport(expected, seed)
	if err != nil {
		logger.Error("Failed to build cabinet report", "error", err)
		return nil, err
	}

	report := &Report{
		CountryID: countryID,
		Country:   inputs.Snapshot.Name,
		Date:      state.Date,
		Headline: fmt.Sprintf("La nation compte %s habitants pour un PIB de %s.",
			humanize.Comma(inputs.Snapshot.Population),
			humanize.CommafWithDigits(inputs.Snapshot.GDP, 2)),
		Blocks: blocks,
	}

	if s.cache != nil {
		if data, err := json.Marshal(report); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, reportCacheTTL).Err(); err != nil {
				logger.Warn("Failed to cache cabinet report", "error", err)
			}
		}
	}

	logger.Debug("Cabinet report built", "blocks", len(blocks))
	return report, nil
}
