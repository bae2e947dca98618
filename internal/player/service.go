package player

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"nations-server/internal/shared/config"
)

type Service struct {
	repo   *Repository
	logger *slog.Logger
}

func NewService(repo *Repository, logger *slog.Logger) *Service {
	logger.Debug("Initializing player service")

	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetPlayerCount(ctx context.Context) (int, error) {
	return s.repo.GetPlayerCount(ctx)
}

func (s *Service) GetAllPlayers(ctx context.Context) ([]Player, error) {
	return s.repo.GetAllPlayers(ctx)
}

func (s *Service) GetPlayerByID(ctx context.Context, id int) (*Player, error) {
	return s.repo.GetPlayerByID(ctx, id)
}

// FindOrCreatePlayerByOAuth returns the player for an OAuth identity,
// creating the account and assigning a free country on first login.
// The configured admin email always ends up with the admin role.
func (s *Service) FindOrCreatePlayerByOAuth(ctx context.Context, provider, providerUserID, email, displayName string, avatarURL *string) (*Player, error) {
	logger := s.logger.With(
		"component", "player_service",
		"operation", "find_or_create_oauth",
		"provider", provider,
	)
	logger.Debug("Finding or creating player by OAuth")

	cfg := config.GlobalConfig
	isAdminEmail := cfg != nil && cfg.Admin.Email != "" && email == cfg.Admin.Email

	existing, err := s.repo.FindPlayerByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if existing != nil {
		if isAdminEmail && existing.Role != PlayerRoleAdmin {
			logger.Info("Upgrading player to admin role", "player_id", existing.ID)
			if err := s.repo.UpdatePlayerRole(ctx, existing.ID, PlayerRoleAdmin); err != nil {
				return nil, fmt.Errorf("failed to upgrade to admin: %w", err)
			}
			existing.Role = PlayerRoleAdmin
		}
		return existing, nil
	}

	username := generateUsernameFromEmail(email)
	role := PlayerRoleUser
	if isAdminEmail {
		role = PlayerRoleAdmin
		if cfg.Admin.Username != "" {
			username = cfg.Admin.Username
		}
		if cfg.Admin.DisplayName != "" {
			displayName = cfg.Admin.DisplayName
		}
	}

	created, err := s.repo.CreatePlayer(ctx, username, email, displayName, avatarURL, role)
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	// New accounts receive the first unowned nation. Running out of
	// free countries is not fatal: the player can browse the world and
	// an admin can seed more nations later.
	countryID, err := s.repo.ClaimFreeCountry(ctx, created.ID)
	if err != nil {
		if err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to assign country: %w", err)
		}
	} else {
		created.CountryID = &countryID
	}

	logger.Info("Player created via OAuth",
		"player_id", created.ID,
		"username", created.Username,
		"role", created.Role,
	)
	return created, nil
}

func generateUsernameFromEmail(email string) string {
	if idx := strings.Index(email, "@"); idx > 0 {
		return email[:idx]
	}
	return "player"
}
