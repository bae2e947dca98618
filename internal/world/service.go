package world

import (
	"context"
	"log/slog"

	"nations-server/internal/shared/database"
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

// GetState returns the current calendar and tick count.
func (s *Service) GetState(ctx context.Context) (*State, error) {
	state, err := s.repo.GetState(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch game state", "component", "world_service", "error", err)
		return nil, errors.Internalf("failed to fetch game state: %v", err)
	}
	return state, nil
}

// Advance moves the calendar one day forward and bumps the tick count,
// using the provided executor so the write joins the tick transaction.
func (s *Service) Advance(ctx context.Context, exec database.Executor) (*State, error) {
	state, err := s.repo.GetState(ctx)
	if err != nil {
		return nil, errors.Internalf("failed to fetch game state: %v", err)
	}

	state.Date = state.Date.Next()
	state.TickCount++

	if err := s.repo.UpdateState(ctx, exec, state); err != nil {
		s.logger.Error("Failed to advance game state", "component", "world_service", "error", err)
		return nil, errors.Internalf("failed to advance game state: %v", err)
	}

	return state, nil
}
