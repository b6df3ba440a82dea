package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"poemnames/models"
)

// HistoryRepository reads and writes per-user generation and favorite
// history. It satisfies both ports.HistoryRepository and ports.HistoryWriter.
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// GeneratedNames returns full names previously delivered to the user.
func (r *HistoryRepository) GeneratedNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `SELECT full_name FROM generated_names WHERE user_id = $1`

	var names []string
	if err := r.db.SelectContext(ctx, &names, query, userID); err != nil {
		return nil, fmt.Errorf("failed to load generated names: %w", err)
	}
	return names, nil
}

// Favorites returns the user's favorited name records, newest first.
func (r *HistoryRepository) Favorites(ctx context.Context, userID uuid.UUID) ([]models.FavoriteName, error) {
	query := `SELECT
		user_id, full_name, given_name, gender, element_counts, total_score, created_at
	FROM favorite_names WHERE user_id = $1 ORDER BY created_at DESC`

	var favs []models.FavoriteName
	if err := r.db.SelectContext(ctx, &favs, query, userID); err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	return favs, nil
}

// FavoriteCountsExcluding tallies favorites per full name across all other
// users.
func (r *HistoryRepository) FavoriteCountsExcluding(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	query := `SELECT full_name, COUNT(*) AS favorite_count
	FROM favorite_names WHERE user_id != $1
	GROUP BY full_name`

	var rows []models.PopularName
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.FullName] = row.FavoriteCount
	}
	return counts, nil
}

// PopularNames returns the most-favorited names since the given time.
func (r *HistoryRepository) PopularNames(ctx context.Context, since time.Time, limit int) ([]models.PopularName, error) {
	query := `SELECT full_name, COUNT(*) AS favorite_count
	FROM favorite_names WHERE created_at >= $1
	GROUP BY full_name
	ORDER BY favorite_count DESC, full_name ASC
	LIMIT $2`

	var rows []models.PopularName
	if err := r.db.SelectContext(ctx, &rows, query, since, limit); err != nil {
		return nil, fmt.Errorf("failed to load popular names: %w", err)
	}
	return rows, nil
}

// RecordGenerated stores delivered names in one batch.
func (r *HistoryRepository) RecordGenerated(ctx context.Context, userID uuid.UUID, fullNames []string) error {
	if len(fullNames) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO generated_names (user_id, full_name, created_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id, full_name) DO NOTHING`

	now := time.Now().UTC()
	for _, name := range fullNames {
		if _, err := tx.ExecContext(ctx, query, userID, name, now); err != nil {
			return fmt.Errorf("failed to record generated name %q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit generated names: %w", err)
	}
	return nil
}

// AddFavorite stores a favorited name with its scoring snapshot.
func (r *HistoryRepository) AddFavorite(ctx context.Context, fav models.FavoriteName) error {
	query := `INSERT INTO favorite_names (
		user_id, full_name, given_name, gender, element_counts, total_score, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (user_id, full_name) DO UPDATE SET
		element_counts = EXCLUDED.element_counts,
		total_score = EXCLUDED.total_score`

	createdAt := fav.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, query,
		fav.UserID, fav.FullName, fav.GivenName, fav.Gender,
		fav.ElementCounts, fav.TotalScore, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add favorite %q: %w", fav.FullName, err)
	}
	return nil
}

// RemoveFavorite deletes the user's favorite by full name.
func (r *HistoryRepository) RemoveFavorite(ctx context.Context, userID uuid.UUID, fullName string) error {
	query := `DELETE FROM favorite_names WHERE user_id = $1 AND full_name = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, fullName); err != nil {
		return fmt.Errorf("failed to remove favorite %q: %w", fullName, err)
	}
	return nil
}
