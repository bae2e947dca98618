package rules

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"nations-server/internal/shared/database"
)

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing rules repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

// GetAll loads every rule parameter into a RuleSet.
func (r *Repository) GetAll(ctx context.Context) (RuleSet, error) {
	logger := r.logger.With("component", "rules_repository", "operation", "get_all")
	logger.Debug("Loading rule parameters")

	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM rule_parameters ORDER BY key`)
	if err != nil {
		logger.Error("Failed to query rule parameters", "error", err)
		return nil, fmt.Errorf("failed to query rule parameters: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	ruleSet := make(RuleSet)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			logger.Error("Failed to scan rule row", "error", err)
			return nil, fmt.Errorf("failed to scan rule parameter: %w", err)
		}
		ruleSet[key] = json.RawMessage(value)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating rule parameters: %w", err)
	}

	logger.Debug("Rule parameters loaded", "count", len(ruleSet))
	return ruleSet, nil
}

// Get returns a single rule parameter, or sql.ErrNoRows when absent.
func (r *Repository) Get(ctx context.Context, key string) (*Parameter, error) {
	logger := r.logger.With("component", "rules_repository", "operation", "get", "key", key)
	logger.Debug("Loading rule parameter")

	var param Parameter
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT key, value FROM rule_parameters WHERE key = $1`, key).
		Scan(&param.Key, &value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		logger.Error("Failed to query rule parameter", "error", err)
		return nil, fmt.Errorf("failed to query rule parameter: %w", err)
	}

	param.Value = json.RawMessage(value)
	return &param, nil
}

// Upsert creates or replaces a rule parameter.
func (r *Repository) Upsert(ctx context.Context, key string, value json.RawMessage) (*Parameter, error) {
	logger := r.logger.With("component", "rules_repository", "operation", "upsert", "key", key)
	logger.Debug("Upserting rule parameter")

	query := `
		INSERT INTO rule_parameters (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		RETURNING key, value
	`

	var param Parameter
	var stored []byte
	if err := r.db.QueryRowContext(ctx, query, key, []byte(value)).Scan(&param.Key, &stored); err != nil {
		logger.Error("Failed to upsert rule parameter", "error", err)
		return nil, fmt.Errorf("failed to upsert rule parameter: %w", err)
	}

	param.Value = json.RawMessage(stored)
	logger.Debug("Rule parameter upserted")
	return &param, nil
}
