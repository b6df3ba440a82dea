package migration

import (
	"context"

	"github.com/jmoiron/sqlx"

	"poemnames/internal/errors"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createUsersTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create users table")
	}
	if err := r.createWordsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create words table")
	}
	if err := r.createSurnamesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create surnames table")
	}
	if err := r.createPoetrySourcesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create poetry_sources table")
	}
	if err := r.createGeneratedNamesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create generated_names table")
	}
	if err := r.createFavoriteNamesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create favorite_names table")
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}
	return nil
}

func (r *MigrationRunner) createUsersTable(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(64) NOT NULL UNIQUE,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createWordsTable(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE TABLE IF NOT EXISTS words (
		character VARCHAR(4) PRIMARY KEY,
		pinyin VARCHAR(16) NOT NULL DEFAULT '',
		element VARCHAR(16) NOT NULL DEFAULT 'unknown',
		gender_preference VARCHAR(16) NOT NULL DEFAULT 'neutral',
		affinity_strength VARCHAR(16) NOT NULL DEFAULT 'weak',
		meaning TEXT,
		tags TEXT[] NOT NULL DEFAULT '{}',
		frequency INTEGER NOT NULL DEFAULT 0,
		function_word BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createSurnamesTable(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE TABLE IF NOT EXISTS surnames (
		name VARCHAR(4) PRIMARY KEY,
		pinyin VARCHAR(16) NOT NULL DEFAULT '',
		meaning TEXT,
		origin TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createPoetrySourcesTable(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE TABLE IF NOT EXISTS poetry_sources (
		id SERIAL PRIMARY KEY,
		title VARCHAR(128) NOT NULL,
		author VARCHAR(64),
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createGeneratedNamesTable(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE TABLE IF NOT EXISTS generated_names (
		user_id UUID NOT NULL REFERENCES users(id),
		full_name VARCHAR(8) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, full_name)
	)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createFavoriteNamesTable(ctx context.Context, db *sqlx.DB) error {
	query := `CREATE TABLE IF NOT EXISTS favorite_names (
		user_id UUID NOT NULL REFERENCES users(id),
		full_name VARCHAR(8) NOT NULL,
		given_name VARCHAR(8) NOT NULL,
		gender VARCHAR(16) NOT NULL DEFAULT 'neutral',
		element_counts JSONB NOT NULL DEFAULT '{}',
		total_score DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, full_name)
	)`
	_, err := db.ExecContext(ctx, query)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	queries := []string{
		`CREATE INDEX IF NOT EXISTS idx_words_frequency ON words (frequency DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_words_element ON words (element)`,
		`CREATE INDEX IF NOT EXISTS idx_favorite_names_created ON favorite_names (created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_favorite_names_full_name ON favorite_names (full_name)`,
	}
	for _, q := range queries {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
