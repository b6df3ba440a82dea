package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"poemnames/models"
)

// HistoryRepository reads a user's generation and favorite history.
// Generated names feed request-time dedup; favorites feed the preference
// profile. The core never mutates history.
type HistoryRepository interface {
	// GeneratedNames returns full names previously delivered to the user.
	GeneratedNames(ctx context.Context, userID uuid.UUID) ([]string, error)

	// Favorites returns the user's favorited name records.
	Favorites(ctx context.Context, userID uuid.UUID) ([]models.FavoriteName, error)

	// FavoriteCountsExcluding tallies favorites per full name across all
	// other users, for collaborative ranking.
	FavoriteCountsExcluding(ctx context.Context, userID uuid.UUID) (map[string]int, error)

	// PopularNames returns the most-favorited names since the given time.
	PopularNames(ctx context.Context, since time.Time, limit int) ([]models.PopularName, error)
}

// HistoryWriter records delivered names and favorite changes. Split from
// HistoryRepository so the scoring core can only read.
type HistoryWriter interface {
	// RecordGenerated stores names delivered to the user in one batch.
	RecordGenerated(ctx context.Context, userID uuid.UUID, fullNames []string) error

	// AddFavorite stores a favorited name with its scoring snapshot.
	AddFavorite(ctx context.Context, fav models.FavoriteName) error

	// RemoveFavorite deletes the user's favorite by full name.
	RemoveFavorite(ctx context.Context, userID uuid.UUID, fullName string) error
}
