package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"poemnames/domain/lexicon"
	"poemnames/models"
	"poemnames/ports"
)

// wordRepository implements the WordRepository interface
type wordRepository struct {
	db *sqlx.DB
}

// NewWordRepository creates a new word repository
func NewWordRepository(db *sqlx.DB) ports.WordRepository {
	return &wordRepository{db: db}
}

// ListWords returns every character record, frequency-descending so pool
// building downstream stays deterministic.
func (r *wordRepository) ListWords(ctx context.Context) ([]models.Word, error) {
	query := `SELECT
		character, pinyin, element, gender_preference, affinity_strength,
		COALESCE(meaning, '') AS meaning, tags, frequency, function_word, created_at
	FROM words
	ORDER BY frequency DESC, character ASC`

	var words []models.Word
	if err := r.db.SelectContext(ctx, &words, query); err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	return words, nil
}

// LexiconSource adapts a WordRepository into a lexicon.Source.
type LexiconSource struct {
	repo ports.WordRepository
}

func NewLexiconSource(repo ports.WordRepository) *LexiconSource {
	return &LexiconSource{repo: repo}
}

func (s *LexiconSource) LoadEntries(ctx context.Context) ([]lexicon.Entry, error) {
	words, err := s.repo.ListWords(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]lexicon.Entry, 0, len(words))
	for _, w := range words {
		gender, _ := lexicon.ParseGender(w.Gender)
		entries = append(entries, lexicon.Entry{
			Character:    w.Character,
			Pinyin:       w.Pinyin,
			Element:      lexicon.ParseElement(w.Element),
			Gender:       gender,
			Affinity:     lexicon.ParseAffinity(w.Affinity),
			Tags:         []string(w.Tags),
			Frequency:    w.Frequency,
			Meaning:      w.Meaning,
			FunctionWord: w.FunctionWord,
		})
	}
	return entries, nil
}
