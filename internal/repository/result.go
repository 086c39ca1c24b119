package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lk16/reversi/internal/models"
	"github.com/lk16/reversi/internal/services"
)

const (
	defaultResultsLimit = 50
	maxResultsLimit     = 500
)

const createResultsTable = `
	CREATE TABLE IF NOT EXISTS results (
		id          UUID PRIMARY KEY,
		mode        TEXT NOT NULL,
		difficulty  TEXT NOT NULL,
		human_color TEXT NOT NULL,
		winner      TEXT NOT NULL,
		black       INTEGER NOT NULL,
		white       INTEGER NOT NULL,
		moves       TEXT[] NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS results_finished_at_idx ON results (finished_at DESC);
`

// ResultRepository handles database operations for archived game results.
type ResultRepository struct {
	db *sqlx.DB
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// NewResultRepositoryFromServices creates a ResultRepository, or returns nil if Postgres is not configured.
func NewResultRepositoryFromServices(services *services.Services) *ResultRepository {
	if services.Postgres == nil {
		return nil
	}
	return NewResultRepository(services.Postgres)
}

// CreateSchema creates the results table if it does not exist.
func (repo *ResultRepository) CreateSchema(ctx context.Context) error {
	if _, err := repo.db.ExecContext(ctx, createResultsTable); err != nil {
		return fmt.Errorf("error creating results table: %w", err)
	}
	return nil
}

// SaveResult archives a game result. Saving the same game twice has no effect.
func (repo *ResultRepository) SaveResult(ctx context.Context, result models.GameResult) error {
	query := `
		INSERT INTO results (id, mode, difficulty, human_color, winner, black, white, moves, finished_at)
		VALUES (:id, :mode, :difficulty, :human_color, :winner, :black, :white, :moves, :finished_at)
		ON CONFLICT (id) DO NOTHING;
	`

	if _, err := repo.db.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("error saving result: %w", err)
	}

	return nil
}

// ClampResultsLimit returns a valid number of results to list.
func ClampResultsLimit(limit int) int {
	if limit <= 0 {
		return defaultResultsLimit
	}
	return min(limit, maxResultsLimit)
}

// ListResults returns the most recently finished games first.
func (repo *ResultRepository) ListResults(ctx context.Context, limit int) ([]models.GameResult, error) {
	query := `
		SELECT id, mode, difficulty, human_color, winner, black, white, moves, finished_at
		FROM results
		ORDER BY finished_at DESC
		LIMIT $1;
	`

	results := make([]models.GameResult, 0)
	if err := repo.db.SelectContext(ctx, &results, query, ClampResultsLimit(limit)); err != nil {
		return nil, fmt.Errorf("error listing results: %w", err)
	}

	return results, nil
}
