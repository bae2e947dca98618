package military

import (
	"context"
	"fmt"
	"log/slog"

	"nations-server/internal/shared/database"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing military repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

const unitColumns = `id, name, branch, base_limit, cost, upkeep, created_at, updated_at`

// GetRosterUnits returns every admin-defined unit type.
func (r *Repository) GetRosterUnits(ctx context.Context) ([]RosterUnit, error) {
	logger := r.logger.With("component", "military_repository", "operation", "get_roster_units")
	logger.Debug("Getting roster units")

	query := fmt.Sprintf(`SELECT %s FROM roster_units ORDER BY branch, name`, unitColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query roster units", "error", err)
		return nil, fmt.Errorf("failed to query roster units: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	var units []RosterUnit
	for rows.Next() {
		var u RosterUnit
		err := rows.Scan(
			&u.ID,
			&u.Name,
			&u.Branch,
			&u.BaseLimit,
			&u.Cost,
			&u.Upkeep,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
		if err != nil {
			logger.Error("Failed to scan roster unit row", "error", err)
			return nil, fmt.Errorf("failed to scan roster unit: %w", err)
		}
		units = append(units, u)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating roster units: %w", err)
	}

	logger.Debug("Roster units retrieved", "count", len(units))
	return units, nil
}

// GetCountryUnits returns a country's unit holdings keyed by unit id.
func (r *Repository) GetCountryUnits(ctx context.Context, countryID int) (map[string]CountryUnit, error) {
	logger := r.logger.With("component", "military_repository", "operation", "get_country_units", "country_id", countryID)
	logger.Debug("Getting country units")

	query := `
		SELECT country_id, unit_id, count, updated_at
		FROM country_units
		WHERE country_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, countryID)
	if err != nil {
		logger.Error("Failed to query country units", "error", err)
		return nil, fmt.Errorf("failed to query country units: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	holdings := make(map[string]CountryUnit)
	for rows.Next() {
		var cu CountryUnit
		if err := rows.Scan(&cu.CountryID, &cu.UnitID, &cu.Count, &cu.UpdatedAt); err != nil {
			logger.Error("Failed to scan country unit row", "error", err)
			return nil, fmt.Errorf("failed to scan country unit: %w", err)
		}
		holdings[cu.UnitID.String()] = cu
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating country units: %w", err)
	}

	return holdings, nil
}
