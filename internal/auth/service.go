package auth

import (
	"context"
	"log/slog"
)

// Service manages the link rows between players and their external OAuth
// identities. Account creation itself lives in the player service; this
// one only answers "which player is this provider identity".
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

// CreateAuthProvider records a provider identity for a player after a
// first login through that provider.
func (s *Service) CreateAuthProvider(ctx context.Context, playerID int, provider, providerUserID, providerEmail string) error {
	s.logger.Debug("Linking auth provider", "player_id", playerID, "provider", provider)
	return s.repo.CreateAuthProvider(ctx, playerID, provider, providerUserID, providerEmail)
}

// FindPlayerByAuthProvider resolves a provider identity to a player id,
// or a not-found error for identities never seen before.
func (s *Service) FindPlayerByAuthProvider(ctx context.Context, provider, providerUserID string) (int, error) {
	return s.repo.FindPlayerByAuthProvider(ctx, provider, providerUserID)
}
