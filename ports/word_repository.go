package ports

import (
	"context"

	"poemnames/models"
)

// WordRepository is the bulk read path from the external word store.
// The core never writes words.
type WordRepository interface {
	// ListWords returns every character record in the store.
	ListWords(ctx context.Context) ([]models.Word, error)
}

// SurnameRepository resolves surnames by exact match.
type SurnameRepository interface {
	// GetSurname looks up a surname record by its rendered form.
	GetSurname(ctx context.Context, name string) (*models.Surname, error)

	// RandomSurname returns any surname, for requests that name none.
	RandomSurname(ctx context.Context) (*models.Surname, error)
}

// PoetryRepository supplies provenance only: which source texts contain a
// character. Output feeds human-readable origin strings, never scoring.
type PoetryRepository interface {
	// SourcesForCharacter returns titles of source texts containing ch.
	SourcesForCharacter(ctx context.Context, ch string) ([]string, error)
}
