// Package postgres provides a Postgres-backed implementation of the snippet repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roguepikachu/synopsis/internal/domain"
	"github.com/roguepikachu/synopsis/internal/repository"
	"github.com/roguepikachu/synopsis/pkg/logger"
)

// SnippetRepository implements repository.SnippetRepository using Postgres.
type SnippetRepository struct {
	pool *pgxpool.Pool
}

// NewSnippetRepository creates a new Postgres-backed snippet repository.
func NewSnippetRepository(pool *pgxpool.Pool) *SnippetRepository {
	return &SnippetRepository{pool: pool}
}

// EnsureSchema creates the snippets table if it doesn't exist.
func (r *SnippetRepository) EnsureSchema(ctx context.Context) error {
	schema := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS snippets (
    id CHAR(24) PRIMARY KEY,
    text TEXT NOT NULL CHECK (char_length(text) BETWEEN 1 AND %d),
    summary TEXT NOT NULL CHECK (char_length(summary) BETWEEN 1 AND %d),
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);
`, domain.MaxTextLength, domain.MaxSummaryLength)
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	logger.Info(ctx, "postgres schema ensured")
	return nil
}

// Insert adds a new snippet to Postgres.
func (r *SnippetRepository) Insert(ctx context.Context, s domain.Snippet) error {
	const q = `
INSERT INTO snippets (id, text, summary, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)
`
	if _, err := r.pool.Exec(ctx, q, s.ID, s.Text, s.Summary, s.CreatedAt, s.UpdatedAt); err != nil {
		return fmt.Errorf("insert snippet: %w", err)
	}
	return nil
}

// FindByID retrieves a snippet by its ID from Postgres.
func (r *SnippetRepository) FindByID(ctx context.Context, id string) (domain.Snippet, error) {
	const q = `
SELECT id, text, summary, created_at, updated_at
FROM snippets
WHERE id = $1
`
	var s domain.Snippet
	err := r.pool.QueryRow(ctx, q, id).Scan(&s.ID, &s.Text, &s.Summary, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Snippet{}, repository.ErrNotFound
		}
		return domain.Snippet{}, fmt.Errorf("query snippet: %w", err)
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}

// Ping checks connectivity for readiness probes.
func (r *SnippetRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

var _ repository.SnippetRepository = (*SnippetRepository)(nil)
