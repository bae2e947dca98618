package country

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"nations-server/internal/shared/errors"
	"nations-server/internal/shared/redis"
)

const worldAveragesCacheKey = "world:averages"
const worldAveragesCacheTTL = 15 * time.Minute

type Service struct {
	repo   *Repository
	cache  *redis.Client
	logger *slog.Logger
}

func NewService(repo *Repository, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// GetSnapshot returns one country's current snapshot.
func (s *Service) GetSnapshot(ctx context.Context, id int) (*Snapshot, error) {
	snapshot, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFoundf("country not found with id: %d", id)
		}
		return nil, err
	}
	return snapshot, nil
}

// GetAll returns every country.
func (s *Service) GetAll(ctx context.Context) ([]Snapshot, error) {
	return s.repo.GetAll(ctx)
}

// GetWorldAverages returns the cached world averages, recomputing on a
// cache miss. With redis disabled it always computes directly.
func (s *Service) GetWorldAverages(ctx context.Context) (*WorldAverages, error) {
	logger := s.logger.With("component", "country_service", "operation", "world_averages")

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, worldAveragesCacheKey).Bytes()
		if err == nil {
			var averages WorldAverages
			if err := json.Unmarshal(cached, &averages); err == nil {
				logger.Debug("World averages served from cache")
				return &averages, nil
			}
			logger.Warn("Discarding unreadable cached world averages", "error", err)
		}
	}

	averages, err := s.repo.ComputeWorldAverages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute world averages: %w", err)
	}

	if s.cache != nil {
		if payload, err := json.Marshal(averages); err == nil {
			if err := s.cache.Set(ctx, worldAveragesCacheKey, payload, worldAveragesCacheTTL).Err(); err != nil {
				logger.Warn("Failed to cache world averages", "error", err)
			}
		}
	}

	return averages, nil
}

// InvalidateWorldAverages drops the cached averages. Called after a tick
// mutates country rows.
func (s *Service) InvalidateWorldAverages(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, worldAveragesCacheKey).Err(); err != nil {
		s.logger.Warn("Failed to invalidate world averages cache", "error", err)
	}
}

// SetMobilisationScore validates and stores a new mobilisation score.
func (s *Service) SetMobilisationScore(ctx context.Context, countryID, score int) error {
	if score < 0 || score > 500 {
		return errors.Validationf("mobilisation score must be between 0 and 500, got %d", score)
	}

	if err := s.repo.SetMobilisationScore(ctx, countryID, score); err != nil {
		if err == sql.ErrNoRows {
			return errors.NotFoundf("country not found with id: %d", countryID)
		}
		return err
	}

	s.logger.Info("Mobilisation score updated", "country_id", countryID, "score", score)
	return nil
}
