package container

import (
	"context"
	"time"

	"github.com/google/uuid"

	"poemnames/models"
)

// emptyPoetry serves workbook deployments that carry no source texts.
type emptyPoetry struct{}

func (emptyPoetry) SourcesForCharacter(ctx context.Context, ch string) ([]string, error) {
	return nil, nil
}

// noHistory disables per-user history when no database is configured.
// Reads are empty, writes succeed silently.
type noHistory struct{}

func (noHistory) GeneratedNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return nil, nil
}

func (noHistory) Favorites(ctx context.Context, userID uuid.UUID) ([]models.FavoriteName, error) {
	return nil, nil
}

func (noHistory) FavoriteCountsExcluding(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	return map[string]int{}, nil
}

func (noHistory) PopularNames(ctx context.Context, since time.Time, limit int) ([]models.PopularName, error) {
	return nil, nil
}

func (noHistory) RecordGenerated(ctx context.Context, userID uuid.UUID, fullNames []string) error {
	return nil
}

func (noHistory) AddFavorite(ctx context.Context, fav models.FavoriteName) error {
	return nil
}

func (noHistory) RemoveFavorite(ctx context.Context, userID uuid.UUID, fullName string) error {
	return nil
}
