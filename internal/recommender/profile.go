package recommender

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"poemnames/domain/lexicon"
	"poemnames/internal"
	"poemnames/ports"
)

// Default match weights for dimensions a user's history never touched.
const (
	defaultGenderWeight  = 0.5
	defaultLengthWeight  = 0.2
	defaultElementWeight = 0.2
	defaultAverageScore  = 70.0
)

// PreferenceProfile summarizes one user's favorite selections as weighted
// distributions per dimension. Weights are normalized to sum to 1 within
// each dimension. Rebuilt lazily; invalidated when favorites change.
type PreferenceProfile struct {
	GenderWeights  map[lexicon.Gender]float64
	LengthWeights  map[int]float64
	ElementWeights map[lexicon.Element]float64
	AverageScore   float64
	FavoriteCount  int
}

// GenderWeight returns the user's weight for a gender, defaulted when unseen.
func (p *PreferenceProfile) GenderWeight(g lexicon.Gender) float64 {
	if w, ok := p.GenderWeights[g]; ok {
		return w
	}
	return defaultGenderWeight
}

// LengthWeight returns the user's weight for a name length, defaulted when unseen.
func (p *PreferenceProfile) LengthWeight(n int) float64 {
	if w, ok := p.LengthWeights[n]; ok {
		return w
	}
	return defaultLengthWeight
}

// ElementWeight returns the user's weight for a category, defaulted when unseen.
func (p *PreferenceProfile) ElementWeight(el lexicon.Element) float64 {
	if w, ok := p.ElementWeights[el]; ok {
		return w
	}
	return defaultElementWeight
}

// profileStore caches preference profiles per user. Reads are concurrent;
// rebuilds collapse to a single flight per user so invalidation storms
// cannot stampede the history store.
type profileStore struct {
	history ports.HistoryRepository
	cache   ports.CachePort
	log     *internal.Logger

	mu       sync.RWMutex
	profiles map[uuid.UUID]*PreferenceProfile
	group    singleflight.Group
}

func newProfileStore(history ports.HistoryRepository, cache ports.CachePort, log *internal.Logger) *profileStore {
	return &profileStore{
		history:  history,
		cache:    cache,
		log:      log,
		profiles: make(map[uuid.UUID]*PreferenceProfile),
	}
}

// get returns the user's profile, building it on first use. A user with no
// favorites has no profile (nil, false) — callers fall back to composite
// ordering. History-store failures degrade the same way.
func (s *profileStore) get(ctx context.Context, userID uuid.UUID) (*PreferenceProfile, bool) {
	s.mu.RLock()
	p, ok := s.profiles[userID]
	s.mu.RUnlock()
	if ok {
		return p, p != nil
	}

	v, err, _ := s.group.Do(userID.String(), func() (any, error) {
		return s.build(ctx, userID)
	})
	if err != nil {
		s.log.Warn("preference profile build failed for user %s: %v", userID, err)
		return nil, false
	}

	profile, _ := v.(*PreferenceProfile)
	s.mu.Lock()
	s.profiles[userID] = profile
	s.mu.Unlock()
	if profile != nil {
		s.cache.Set("user_prefs", userID.String(), profile)
	}
	return profile, profile != nil
}

// invalidate drops the cached profile so the next call recomputes it.
func (s *profileStore) invalidate(userID uuid.UUID) {
	s.mu.Lock()
	delete(s.profiles, userID)
	s.mu.Unlock()
	s.cache.Delete("user_prefs", userID.String())
}

// build derives a profile from the user's favorites.
func (s *profileStore) build(ctx context.Context, userID uuid.UUID) (*PreferenceProfile, error) {
	if cached, ok := s.cache.Get("user_prefs", userID.String()); ok {
		if p, ok := cached.(*PreferenceProfile); ok {
			return p, nil
		}
	}

	favorites, err := s.history.Favorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	if len(favorites) == 0 {
		return nil, nil
	}

	genderCounts := map[lexicon.Gender]float64{}
	lengthCounts := map[int]float64{}
	elementCounts := map[lexicon.Element]float64{}
	scoreSum := 0.0

	for _, fav := range favorites {
		if g, ok := lexicon.ParseGender(fav.Gender); ok {
			genderCounts[g]++
		}
		lengthCounts[len([]rune(fav.GivenName))]++

		var counts map[string]int
		if len(fav.ElementCounts) > 0 {
			if err := json.Unmarshal(fav.ElementCounts, &counts); err == nil {
				for el, c := range counts {
					elementCounts[lexicon.ParseElement(el)] += float64(c)
				}
			}
		}
		scoreSum += fav.TotalScore
	}

	return &PreferenceProfile{
		GenderWeights:  normalizeGender(genderCounts),
		LengthWeights:  normalizeLength(lengthCounts),
		ElementWeights: normalizeElement(elementCounts),
		AverageScore:   scoreSum / float64(len(favorites)),
		FavoriteCount:  len(favorites),
	}, nil
}

func normalizeGender(counts map[lexicon.Gender]float64) map[lexicon.Gender]float64 {
	total := 0.0
	for _, c := range counts {
		total += c
	}
	out := make(map[lexicon.Gender]float64, len(counts))
	if total == 0 {
		return out
	}
	for k, c := range counts {
		out[k] = c / total
	}
	return out
}

func normalizeLength(counts map[int]float64) map[int]float64 {
	total := 0.0
	for _, c := range counts {
		total += c
	}
	out := make(map[int]float64, len(counts))
	if total == 0 {
		return out
	}
	for k, c := range counts {
		out[k] = c / total
	}
	return out
}

func normalizeElement(counts map[lexicon.Element]float64) map[lexicon.Element]float64 {
	total := 0.0
	for _, c := range counts {
		total += c
	}
	out := make(map[lexicon.Element]float64, len(counts))
	if total == 0 {
		return out
	}
	for k, c := range counts {
		out[k] = c / total
	}
	return out
}
