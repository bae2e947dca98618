package world

import (
	"context"
	"fmt"

	"nations-server/internal/shared/database"
)

type Repository struct {
	db *database.DB
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// GetState returns the single game_state row.
func (r *Repository) GetState(ctx context.Context) (*State, error) {
	query := `
		SELECT day, month, year, tick_count
		FROM game_state
		WHERE id = 1`

	var s State
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.Date.Day,
		&s.Date.Month,
		&s.Date.Year,
		&s.TickCount,
	)
	if err != nil {
		return nil, fmt.Errorf("error fetching game state: %w", err)
	}

	return &s, nil
}

// UpdateState writes the calendar and tick count back. Runs inside the
// tick transaction when tx is non-nil.
func (r *Repository) UpdateState(ctx context.Context, exec database.Executor, s *State) error {
	if exec == nil {
		exec = r.db
	}

	query := `
		UPDATE game_state
		SET day = $1, month = $2, year = $3, tick_count = $4, updated_at = NOW()
		WHERE id = 1`

	result, err := exec.ExecContext(ctx, query,
		s.Date.Day,
		s.Date.Month,
		s.Date.Year,
		s.TickCount,
	)
	if err != nil {
		return fmt.Errorf("error updating game state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking game state update: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("game state row missing")
	}

	return nil
}
