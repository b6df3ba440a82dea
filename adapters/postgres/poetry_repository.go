package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"poemnames/ports"
)

// poetryRepository implements the PoetryRepository interface
type poetryRepository struct {
	db *sqlx.DB
}

// NewPoetryRepository creates a new poetry repository
func NewPoetryRepository(db *sqlx.DB) ports.PoetryRepository {
	return &poetryRepository{db: db}
}

// SourcesForCharacter returns titles of source texts containing ch.
func (r *poetryRepository) SourcesForCharacter(ctx context.Context, ch string) ([]string, error) {
	query := `SELECT title FROM poetry_sources
	WHERE content LIKE '%' || $1 || '%'
	ORDER BY title ASC
	LIMIT 5`

	var titles []string
	if err := r.db.SelectContext(ctx, &titles, query, ch); err != nil {
		return nil, fmt.Errorf("failed to find sources for %q: %w", ch, err)
	}
	return titles, nil
}
