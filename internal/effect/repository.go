package effect

import (
	"context"
	"fmt"
	"log/slog"

	"nations-server/internal/shared/database"

	"github.com/google/uuid"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing effect repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) getExecutor(tx *database.Tx) database.Executor {
	if tx != nil {
		return tx
	}
	return r.db
}

const effectColumns = `id, country_id, kind, target, value, duration_kind, days_remaining, name, created_at, updated_at`

func scanEffect(row interface{ Scan(...interface{}) error }) (*CountryEffect, error) {
	var e CountryEffect
	err := row.Scan(
		&e.ID,
		&e.CountryID,
		&e.Kind,
		&e.Target,
		&e.Value,
		&e.DurationKind,
		&e.DaysRemaining,
		&e.Name,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetActiveByCountryID returns the country's effect rows that still apply:
// permanent rows and day-scoped rows with days remaining. Pass the tick
// transaction to read inside the country row lock; nil reads the pool.
func (r *Repository) GetActiveByCountryID(ctx context.Context, countryID int, tx *database.Tx) ([]CountryEffect, error) {
	logger := r.logger.With("component", "effect_repository", "operation", "get_active", "country_id", countryID)
	logger.Debug("Getting active country effects")

	query := fmt.Sprintf(`
		SELECT %s
		FROM country_effects
		WHERE country_id = $1
		  AND (duration_kind = 'permanent' OR days_remaining > 0)
		ORDER BY created_at, id
	`, effectColumns)

	rows, err := r.getExecutor(tx).QueryContext(ctx, query, countryID)
	if err != nil {
		logger.Error("Failed to query country effects", "error", err)
		return nil, fmt.Errorf("failed to query country effects: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var effects []CountryEffect
	for rows.Next() {
		e, err := scanEffect(rows)
		if err != nil {
			logger.Error("Failed to scan effect row", "error", err)
			return nil, fmt.Errorf("failed to scan effect: %w", err)
		}
		effects = append(effects, *e)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating effects: %w", err)
	}

	logger.Debug("Country effects retrieved", "count", len(effects))
	return effects, nil
}

// Create inserts a new country effect row.
func (r *Repository) Create(ctx context.Context, e *CountryEffect) (*CountryEffect, error) {
	logger := r.logger.With(
		"component", "effect_repository",
		"operation", "create",
		"country_id", e.CountryID,
		"kind", e.Kind,
	)
	logger.Debug("Creating country effect")

	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	query := fmt.Sprintf(`
		INSERT INTO country_effects (id, country_id, kind, target, value, duration_kind, days_remaining, name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, effectColumns)

	created, err := scanEffect(r.db.QueryRowContext(ctx, query,
		e.ID, e.CountryID, e.Kind, e.Target, e.Value, e.DurationKind, e.DaysRemaining, e.Name))
	if err != nil {
		logger.Error("Failed to create country effect", "error", err)
		return nil, fmt.Errorf("failed to create country effect: %w", err)
	}

	logger.Debug("Country effect created successfully", "effect_id", created.ID)
	return created, nil
}

// Delete removes an effect row by id. Returns the number of rows deleted.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	logger := r.logger.With("component", "effect_repository", "operation", "delete", "effect_id", id)
	logger.Debug("Deleting country effect")

	result, err := r.db.ExecContext(ctx, `DELETE FROM country_effects WHERE id = $1`, id)
	if err != nil {
		logger.Error("Failed to delete country effect", "error", err)
		return 0, fmt.Errorf("failed to delete country effect: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.Error("Failed to read rows affected", "error", err)
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	logger.Debug("Country effect deleted", "rows", affected)
	return affected, nil
}

// DecrementDurations ages every day-scoped effect of one country by one
// day. Ran by the tick job inside the per-country transaction.
func (r *Repository) DecrementDurations(ctx context.Context, countryID int, tx *database.Tx) error {
	exec := r.getExecutor(tx)

	logger := r.logger.With("component", "effect_repository", "operation", "decrement_durations", "country_id", countryID)
	logger.Debug("Decrementing effect durations")

	query := `
		UPDATE country_effects
		SET days_remaining = days_remaining - 1, updated_at = NOW()
		WHERE country_id = $1 AND duration_kind = 'days' AND days_remaining > 0
	`

	if _, err := exec.ExecContext(ctx, query, countryID); err != nil {
		logger.Error("Failed to decrement effect durations", "error", err)
		return fmt.Errorf("failed to decrement effect durations: %w", err)
	}

	return nil
}

// DeleteExpired removes day-scoped rows that reached zero days remaining.
func (r *Repository) DeleteExpired(ctx context.Context, countryID int, tx *database.Tx) (int64, error) {
	exec := r.getExecutor(tx)

	logger := r.logger.With("component", "effect_repository", "operation", "delete_expired", "country_id", countryID)

	query := `
		DELETE FROM country_effects
		WHERE country_id = $1 AND duration_kind = 'days' AND days_remaining <= 0
	`

	result, err := exec.ExecContext(ctx, query, countryID)
	if err != nil {
		logger.Error("Failed to delete expired effects", "error", err)
		return 0, fmt.Errorf("failed to delete expired effects: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}

	if affected > 0 {
		logger.Debug("Expired effects deleted", "count", affected)
	}
	return affected, nil
}
