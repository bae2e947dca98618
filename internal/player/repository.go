package player

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"nations-server/internal/shared/database"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing player repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

// The governed country lives on the countries table (player_id), so the
// player queries join it in rather than duplicating the link.
const playerColumns = `p.id, p.username, p.email, p.display_name, p.avatar_url, p.role,
	c.id AS country_id, p.created_at, p.updated_at`

const playerFrom = `FROM players p
	LEFT JOIN countries c ON c.player_id = p.id`

func scanPlayer(row interface{ Scan(...interface{}) error }) (*Player, error) {
	var p Player
	var role string
	err := row.Scan(
		&p.ID,
		&p.Username,
		&p.Email,
		&p.DisplayName,
		&p.AvatarURL,
		&role,
		&p.CountryID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Role = ParsePlayerRole(role)
	return &p, nil
}

func (r *Repository) GetPlayerCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM players").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get player count: %w", err)
	}
	return count, nil
}

func (r *Repository) GetAllPlayers(ctx context.Context) ([]Player, error) {
	logger := r.logger.With("component", "player_repository", "operation", "get_all")

	query := fmt.Sprintf("SELECT %s %s ORDER BY p.created_at DESC", playerColumns, playerFrom)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query players", "error", err)
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}

	logger.Debug("Players retrieved", "count", len(players))
	return players, nil
}

func (r *Repository) GetPlayerByID(ctx context.Context, id int) (*Player, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE p.id = $1", playerColumns, playerFrom)

	p, err := scanPlayer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return p, nil
}

func (r *Repository) FindPlayerByEmail(ctx context.Context, email string) (*Player, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE p.email = $1", playerColumns, playerFrom)

	p, err := scanPlayer(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find player by email: %w", err)
	}
	return p, nil
}

func (r *Repository) CreatePlayer(ctx context.Context, username, email, displayName string, avatarURL *string, role PlayerRole) (*Player, error) {
	logger := r.logger.With(
		"component", "player_repository",
		"operation", "create",
		"username", username,
	)
	logger.Info("Creating new player")

	query := `
		INSERT INTO players (username, email, display_name, avatar_url, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, username, email, display_name, avatar_url, role, NULL::int AS country_id, created_at, updated_at`

	p, err := scanPlayer(r.db.QueryRowContext(ctx, query, username, email, displayName, avatarURL, role.String()))
	if err != nil {
		logger.Error("Failed to create player", "error", err)
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	logger.Info("Player created", "player_id", p.ID)
	return p, nil
}

func (r *Repository) UpdatePlayerRole(ctx context.Context, id int, role PlayerRole) error {
	query := `UPDATE players SET role = $1, updated_at = NOW() WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, role.String(), id)
	if err != nil {
		return fmt.Errorf("failed to update player role: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check role update: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ClaimFreeCountry assigns the lowest-id unowned country to the player
// and returns its id. Returns sql.ErrNoRows when every country is taken.
func (r *Repository) ClaimFreeCountry(ctx context.Context, playerID int) (int, error) {
	logger := r.logger.With("component", "player_repository", "operation", "claim_country", "player_id", playerID)

	query := `
		UPDATE countries
		SET player_id = $1, updated_at = NOW()
		WHERE id = (
			SELECT id FROM countries
			WHERE player_id IS NULL
			ORDER BY id
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id`

	var countryID int
	err := r.db.QueryRowContext(ctx, query, playerID).Scan(&countryID)
	if err != nil {
		if err == sql.ErrNoRows {
			logger.Warn("No free country left to assign")
			return 0, err
		}
		logger.Error("Failed to claim country", "error", err)
		return 0, fmt.Errorf("failed to claim country: %w", err)
	}

	logger.Info("Country assigned to player", "country_id", countryID)
	return countryID, nil
}
