package country

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
	logger.Debug("Initializing country repository")

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

const countryColumns = `id, name, player_id, population, gdp, militarism, industry, science, stability,
	mobilisation_score, created_at, updated_at`

func scanCountry(row interface{ Scan(...interface{}) error }) (*Snapshot, error) {
	var c Snapshot
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.PlayerID,
		&c.Population,
		&c.GDP,
		&c.Militarism,
		&c.Industry,
		&c.Science,
		&c.Stability,
		&c.MobilisationScore,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID returns one country snapshot.
func (r *Repository) GetByID(ctx context.Context, id int) (*Snapshot, error) {
	logger := r.logger.With("component", "country_repository", "operation", "get_by_id", "country_id", id)
	logger.Debug("Getting country")

	query := fmt.Sprintf(`SELECT %s FROM countries WHERE id = $1`, countryColumns)

	snapshot, err := scanCountry(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		logger.Error("Failed to query country", "error", err)
		return nil, fmt.Errorf("failed to query country: %w", err)
	}

	return snapshot, nil
}

// GetByIDForUpdate loads a country inside a transaction with a row lock,
// so one tick cannot race another for the same country.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int, tx *database.Tx) (*Snapshot, error) {
	exec := r.getExecutor(tx)

	query := fmt.Sprintf(`SELECT %s FROM countries WHERE id = $1 FOR UPDATE`, countryColumns)

	snapshot, err := scanCountry(exec.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to lock country %d: %w", id, err)
	}
	return snapshot, nil
}

// GetAll returns every country ordered by id.
func (r *Repository) GetAll(ctx context.Context) ([]Snapshot, error) {
	logger := r.logger.With("component", "country_repository", "operation", "get_all")
	logger.Debug("Getting all countries")

	query := fmt.Sprintf(`SELECT %s FROM countries ORDER BY id`, countryColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query countries", "error", err)
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var countries []Snapshot
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			logger.Error("Failed to scan country row", "error", err)
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		countries = append(countries, *c)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating countries: %w", err)
	}

	logger.Debug("Countries retrieved", "count", len(countries))
	return countries, nil
}

// GetIDs returns every country id, for the tick job's per-country loop.
func (r *Repository) GetIDs(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM countries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query country ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan country id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating country ids: %w", err)
	}
	return ids, nil
}

// UpdateSimulatedValues writes one tick's results back to the country row.
func (r *Repository) UpdateSimulatedValues(ctx context.Context, c *Snapshot, tx *database.Tx) error {
	exec := r.getExecutor(tx)

	logger := r.logger.With("component", "country_repository", "operation", "update_simulated", "country_id", c.ID)
	logger.Debug("Updating simulated values")

	query := `
		UPDATE countries
		SET population = $2, gdp = $3, militarism = $4, industry = $5, science = $6,
			stability = $7, mobilisation_score = $8, updated_at = NOW()
		WHERE id = $1
	`

	if _, err := exec.ExecContext(ctx, query,
		c.ID, c.Population, c.GDP, c.Militarism, c.Industry, c.Science,
		c.Stability, c.MobilisationScore); err != nil {
		logger.Error("Failed to update simulated values", "error", err)
		return fmt.Errorf("failed to update country %d: %w", c.ID, err)
	}

	return nil
}

// SetMobilisationScore stores a country's mobilisation score.
func (r *Repository) SetMobilisationScore(ctx context.Context, countryID, score int) error {
	logger := r.logger.With("component", "country_repository", "operation", "set_mobilisation_score",
		"country_id", countryID, "score", score)
	logger.Debug("Setting mobilisation score")

	result, err := r.db.ExecContext(ctx,
		`UPDATE countries SET mobilisation_score = $2, updated_at = NOW() WHERE id = $1`,
		countryID, score)
	if err != nil {
		logger.Error("Failed to set mobilisation score", "error", err)
		return fmt.Errorf("failed to set mobilisation score: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ComputeWorldAverages aggregates the mean of every simulated value over
// all countries.
func (r *Repository) ComputeWorldAverages(ctx context.Context) (*WorldAverages, error) {
	logger := r.logger.With("component", "country_repository", "operation", "world_averages")
	logger.Debug("Computing world averages")

	query := `
		SELECT COALESCE(AVG(population), 0),
			COALESCE(AVG(gdp), 0),
			COALESCE(AVG(militarism), 0),
			COALESCE(AVG(industry), 0),
			COALESCE(AVG(science), 0),
			COALESCE(AVG(stability), 0)
		FROM countries
	`

	var averages WorldAverages
	err := r.db.QueryRowContext(ctx, query).Scan(
		&averages.Population,
		&averages.GDP,
		&averages.Militarism,
		&averages.Industry,
		&averages.Science,
		&averages.Stability,
	)
	if err != nil {
		logger.Error("Failed to compute world averages", "error", err)
		return nil, fmt.Errorf("failed to compute world averages: %w", err)
	}

	return &averages, nil
}
