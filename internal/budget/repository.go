package budget

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
	logger.Debug("Initializing budget repository")

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

const allocationColumns = `country_id, pct_health, pct_education, pct_research, pct_infrastructure,
	pct_industry, pct_defense, pct_interior, pct_foreign_affairs, updated_at`

func scanAllocation(row interface{ Scan(...interface{}) error }) (*Allocation, error) {
	var a Allocation
	err := row.Scan(
		&a.CountryID,
		&a.Health,
		&a.Education,
		&a.Research,
		&a.Infrastructure,
		&a.Industry,
		&a.Defense,
		&a.Interior,
		&a.ForeignAffairs,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetByCountryID returns the country's allocation row. Countries are
// created with an all-zero allocation, so absence maps to zeros rather
// than an error. Pass the tick transaction to read inside the country
// row lock; nil reads the pool.
func (r *Repository) GetByCountryID(ctx context.Context, countryID int, tx *database.Tx) (*Allocation, error) {
	logger := r.logger.With("component", "budget_repository", "operation", "get_by_country", "country_id", countryID)
	logger.Debug("Getting budget allocation")

	query := fmt.Sprintf(`SELECT %s FROM budget_allocations WHERE country_id = $1`, allocationColumns)

	allocation, err := scanAllocation(r.getExecutor(tx).QueryRowContext(ctx, query, countryID))
	if err != nil {
		logger.Debug("No allocation row, falling back to zeros", "error", err)
		return &Allocation{CountryID: countryID}, nil
	}

	return allocation, nil
}

// Upsert stores the country's allocation.
func (r *Repository) Upsert(ctx context.Context, a *Allocation) (*Allocation, error) {
	logger := r.logger.With("component", "budget_repository", "operation", "upsert", "country_id", a.CountryID)
	logger.Debug("Upserting budget allocation")

	query := fmt.Sprintf(`
		INSERT INTO budget_allocations (country_id, pct_health, pct_education, pct_research,
			pct_infrastructure, pct_industry, pct_defense, pct_interior, pct_foreign_affairs)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (country_id) DO UPDATE SET
			pct_health = EXCLUDED.pct_health,
			pct_education = EXCLUDED.pct_education,
			pct_research = EXCLUDED.pct_research,
			pct_infrastructure = EXCLUDED.pct_infrastructure,
			pct_industry = EXCLUDED.pct_industry,
			pct_defense = EXCLUDED.pct_defense,
			pct_interior = EXCLUDED.pct_interior,
			pct_foreign_affairs = EXCLUDED.pct_foreign_affairs,
			updated_at = NOW()
		RETURNING %s
	`, allocationColumns)

	updated, err := scanAllocation(r.db.QueryRowContext(ctx, query,
		a.CountryID, a.Health, a.Education, a.Research, a.Infrastructure,
		a.Industry, a.Defense, a.Interior, a.ForeignAffairs))
	if err != nil {
		logger.Error("Failed to upsert budget allocation", "error", err)
		return nil, fmt.Errorf("failed to upsert budget allocation: %w", err)
	}

	logger.Debug("Budget allocation upserted")
	return updated, nil
}
