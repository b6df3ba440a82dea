package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"poemnames/models"
	"poemnames/ports"
)

// surnameRepository implements the SurnameRepository interface
type surnameRepository struct {
	db *sqlx.DB
}

// NewSurnameRepository creates a new surname repository
func NewSurnameRepository(db *sqlx.DB) ports.SurnameRepository {
	return &surnameRepository{db: db}
}

// GetSurname looks up a surname by its rendered form. A miss returns
// (nil, nil); callers treat unknown surnames as empty results, not errors.
func (r *surnameRepository) GetSurname(ctx context.Context, name string) (*models.Surname, error) {
	query := `SELECT
		name, pinyin, COALESCE(meaning, '') AS meaning, COALESCE(origin, '') AS origin, created_at
	FROM surnames WHERE name = $1`

	var s models.Surname
	if err := r.db.GetContext(ctx, &s, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get surname %q: %w", name, err)
	}
	return &s, nil
}

// RandomSurname returns one surname chosen by the database.
func (r *surnameRepository) RandomSurname(ctx context.Context) (*models.Surname, error) {
	query := `SELECT
		name, pinyin, COALESCE(meaning, '') AS meaning, COALESCE(origin, '') AS origin, created_at
	FROM surnames ORDER BY random() LIMIT 1`

	var s models.Surname
	if err := r.db.GetContext(ctx, &s, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pick random surname: %w", err)
	}
	return &s, nil
}
