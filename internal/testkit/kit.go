package testkit

import (
	"context"

	"poemnames/adapters/rng"
	"poemnames/domain/lexicon"
	"poemnames/internal"
	"poemnames/internal/config"
	"poemnames/ports"
)

// Kit bundles in-memory collaborators for service and handler tests.
type Kit struct {
	Lexicon   *lexicon.Lexicon
	Words     *InMemoryWordRepository
	Surnames  *InMemorySurnameRepository
	History   *InMemoryHistoryRepository
	Poetry    *InMemoryPoetryRepository
	RNG       ports.RNGPort
	Logger    *internal.Logger
	Generator config.GeneratorConfig
}

// NewKit builds a kit seeded with the fixture lexicon and surnames.
func NewKit() *Kit {
	entries := FixtureEntries()
	return &Kit{
		Lexicon:   lexicon.New(entries),
		Words:     NewInMemoryWordRepository(entries),
		Surnames:  NewInMemorySurnameRepository(FixtureSurnames()),
		History:   NewInMemoryHistoryRepository(),
		Poetry:    NewInMemoryPoetryRepository(FixturePoetry()),
		RNG:       rng.New(),
		Logger:    internal.NewLogger(internal.LogLevelError),
		Generator: config.DefaultGeneratorConfig(),
	}
}

// LoadLexicon exercises the Source path instead of direct construction.
func (k *Kit) LoadLexicon(ctx context.Context) (*lexicon.Lexicon, error) {
	return lexicon.Load(ctx, sourceFunc(func(ctx context.Context) ([]lexicon.Entry, error) {
		return FixtureEntries(), nil
	}))
}

type sourceFunc func(ctx context.Context) ([]lexicon.Entry, error)

func (f sourceFunc) LoadEntries(ctx context.Context) ([]lexicon.Entry, error) {
	return f(ctx)
}
