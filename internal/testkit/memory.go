package testkit

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"poemnames/domain/lexicon"
	"poemnames/models"
)

// InMemoryWordRepository serves word rows from a slice.
type InMemoryWordRepository struct {
	words []models.Word
	Err   error // set to force failures
}

func NewInMemoryWordRepository(entries []lexicon.Entry) *InMemoryWordRepository {
	words := make([]models.Word, 0, len(entries))
	for _, e := range entries {
		words = append(words, models.Word{
			Character:    e.Character,
			Pinyin:       e.Pinyin,
			Element:      string(e.Element),
			Gender:       string(e.Gender),
			Affinity:     string(e.Affinity),
			Meaning:      e.Meaning,
			Tags:         pq.StringArray(e.Tags),
			Frequency:    e.Frequency,
			FunctionWord: e.FunctionWord,
		})
	}
	return &InMemoryWordRepository{words: words}
}

func (r *InMemoryWordRepository) ListWords(ctx context.Context) ([]models.Word, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]models.Word, len(r.words))
	copy(out, r.words)
	return out, nil
}

// InMemorySurnameRepository resolves surnames from a map.
type InMemorySurnameRepository struct {
	byName  map[string]models.Surname
	ordered []string
	Err     error // set to force failures
}

func NewInMemorySurnameRepository(surnames []models.Surname) *InMemorySurnameRepository {
	byName := make(map[string]models.Surname, len(surnames))
	ordered := make([]string, 0, len(surnames))
	for _, s := range surnames {
		byName[s.Name] = s
		ordered = append(ordered, s.Name)
	}
	sort.Strings(ordered)
	return &InMemorySurnameRepository{byName: byName, ordered: ordered}
}

func (r *InMemorySurnameRepository) GetSurname(ctx context.Context, name string) (*models.Surname, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if s, ok := r.byName[name]; ok {
		out := s
		return &out, nil
	}
	return nil, nil
}

func (r *InMemorySurnameRepository) RandomSurname(ctx context.Context) (*models.Surname, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	if len(r.ordered) == 0 {
		return nil, nil
	}
	out := r.byName[r.ordered[0]]
	return &out, nil
}

// InMemoryHistoryRepository backs history reads and writes with maps.
type InMemoryHistoryRepository struct {
	mu        sync.Mutex
	generated map[uuid.UUID]map[string]bool
	favorites map[uuid.UUID][]models.FavoriteName
	Err       error // set to force failures
}

func NewInMemoryHistoryRepository() *InMemoryHistoryRepository {
	return &InMemoryHistoryRepository{
		generated: make(map[uuid.UUID]map[string]bool),
		favorites: make(map[uuid.UUID][]models.FavoriteName),
	}
}

func (r *InMemoryHistoryRepository) GeneratedNames(ctx context.Context, userID uuid.UUID) ([]string, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.generated[userID]))
	for name := range r.generated[userID] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *InMemoryHistoryRepository) Favorites(ctx context.Context, userID uuid.UUID) ([]models.FavoriteName, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.FavoriteName, len(r.favorites[userID]))
	copy(out, r.favorites[userID])
	return out, nil
}

func (r *InMemoryHistoryRepository) FavoriteCountsExcluding(ctx context.Context, userID uuid.UUID) (map[string]int, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int)
	for uid, favs := range r.favorites {
		if uid == userID {
			continue
		}
		for _, f := range favs {
			counts[f.FullName]++
		}
	}
	return counts, nil
}

func (r *InMemoryHistoryRepository) PopularNames(ctx context.Context, since time.Time, limit int) ([]models.PopularName, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int)
	for _, favs := range r.favorites {
		for _, f := range favs {
			if f.CreatedAt.Before(since) {
				continue
			}
			counts[f.FullName]++
		}
	}
	rows := make([]models.PopularName, 0, len(counts))
	for name, c := range counts {
		rows = append(rows, models.PopularName{FullName: name, FavoriteCount: c})
	}
	sort.Slice(rows, func(a, b int) bool {
		if rows[a].FavoriteCount != rows[b].FavoriteCount {
			return rows[a].FavoriteCount > rows[b].FavoriteCount
		}
		return rows[a].FullName < rows[b].FullName
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (r *InMemoryHistoryRepository) RecordGenerated(ctx context.Context, userID uuid.UUID, fullNames []string) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generated[userID] == nil {
		r.generated[userID] = make(map[string]bool)
	}
	for _, name := range fullNames {
		r.generated[userID][name] = true
	}
	return nil
}

func (r *InMemoryHistoryRepository) AddFavorite(ctx context.Context, fav models.FavoriteName) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if fav.CreatedAt.IsZero() {
		fav.CreatedAt = time.Now().UTC()
	}
	favs := r.favorites[fav.UserID]
	for i, existing := range favs {
		if existing.FullName == fav.FullName {
			favs[i] = fav
			return nil
		}
	}
	r.favorites[fav.UserID] = append(favs, fav)
	return nil
}

func (r *InMemoryHistoryRepository) RemoveFavorite(ctx context.Context, userID uuid.UUID, fullName string) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	favs := r.favorites[userID]
	for i, f := range favs {
		if f.FullName == fullName {
			r.favorites[userID] = append(favs[:i], favs[i+1:]...)
			return nil
		}
	}
	return nil
}

// InMemoryPoetryRepository serves origin lookups from a fixed map.
type InMemoryPoetryRepository struct {
	sources map[string][]string
}

func NewInMemoryPoetryRepository(sources map[string][]string) *InMemoryPoetryRepository {
	return &InMemoryPoetryRepository{sources: sources}
}

func (r *InMemoryPoetryRepository) SourcesForCharacter(ctx context.Context, ch string) ([]string, error) {
	return r.sources[ch], nil
}
