package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account row. Authentication is out of scope; the core only
// needs a stable identity for history and preference lookups.
type User struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FavoriteName is one favorited-name row joined with its scoring snapshot,
// the raw material for a preference profile.
type FavoriteName struct {
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	FullName      string    `db:"full_name" json:"full_name"`
	GivenName     string    `db:"given_name" json:"given_name"`
	Gender        string    `db:"gender" json:"gender"`
	ElementCounts []byte    `db:"element_counts" json:"-"` // JSON map[element]count
	TotalScore    float64   `db:"total_score" json:"total_score"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// PopularName is an aggregated favorite count for trending queries.
type PopularName struct {
	FullName      string `db:"full_name" json:"full_name"`
	FavoriteCount int    `db:"favorite_count" json:"favorite_count"`
}
