package recommender

import (
	"context"
	"math"
	"sort"

	"github.com/google/uuid"

	"poemnames/domain/naming"
	"poemnames/internal"
	"poemnames/ports"
)

// Personalized score composition. The base composite keeps a reduced weight
// so a strong user preference can reorder near-ties without drowning out
// name quality entirely.
const (
	baseWeight        = 0.3
	genderBoost       = 20.0
	lengthBoost       = 15.0
	elementBoost      = 10.0
	outlierTolerance  = 10.0
	outlierPenaltyPer = 0.5

	jitterLow  = 0.8
	jitterHigh = 1.2
)

// Recommender reorders scored candidates per user. Users without history
// keep the composite ordering.
type Recommender struct {
	profiles *profileStore
	history  ports.HistoryRepository
	rng      ports.RNGPort
	log      *internal.Logger
}

func New(history ports.HistoryRepository, cache ports.CachePort, rng ports.RNGPort, log *internal.Logger) *Recommender {
	return &Recommender{
		profiles: newProfileStore(history, cache, log),
		history:  history,
		rng:      rng,
		log:      log,
	}
}

// Rank orders candidates for a user and truncates to limit; limit <= 0
// keeps all. With no profile the candidates are sorted by composite score
// descending. With a profile each candidate gets a personalized score and
// the slice is stably re-sorted on it, descending.
func (r *Recommender) Rank(ctx context.Context, userID uuid.UUID, candidates []naming.Candidate, limit int) []naming.Candidate {
	if len(candidates) == 0 {
		return candidates
	}

	scores := make([]float64, len(candidates))
	if profile, ok := r.profiles.get(ctx, userID); ok {
		for i, c := range candidates {
			scores[i] = PersonalizedScore(profile, c)
		}
	} else {
		for i, c := range candidates {
			scores[i] = c.Score.Total
		}
	}
	return truncate(sortByScores(candidates, scores), limit)
}

// CollaborativeRank orders candidates by how often other users favorited
// them, each count multiplied by a uniform jitter in [0.8, 1.2) so the most
// popular name does not win every request. The jitter stream is seeded, so
// the ordering is reproducible. When popularity data or the jitter stream
// is unavailable the personalized ordering applies instead.
func (r *Recommender) CollaborativeRank(ctx context.Context, userID uuid.UUID, candidates []naming.Candidate, seed int64) []naming.Candidate {
	if len(candidates) == 0 {
		return candidates
	}
	counts, err := r.history.FavoriteCountsExcluding(ctx, userID)
	if err != nil {
		r.log.Warn("favorite counts unavailable, keeping personalized order: %v", err)
		return r.Rank(ctx, userID, candidates, 0)
	}
	stream, err := r.rng.SeededStream(ctx, "collaborative", seed)
	if err != nil {
		r.log.Warn("collaborative jitter unavailable, keeping personalized order: %v", err)
		return r.Rank(ctx, userID, candidates, 0)
	}

	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		jitter := jitterLow + stream.Float64()*(jitterHigh-jitterLow)
		scores[i] = float64(counts[c.FullName()]) * jitter
	}
	return sortByScores(candidates, scores)
}

// sortByScores returns the candidates stably sorted on the parallel score
// slice, descending. Equal scores keep their input order.
func sortByScores(candidates []naming.Candidate, scores []float64) []naming.Candidate {
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	out := make([]naming.Candidate, len(candidates))
	for i, idx := range order {
		out[i] = candidates[idx]
	}
	return out
}

func truncate(candidates []naming.Candidate, limit int) []naming.Candidate {
	if limit > 0 && len(candidates) > limit {
		return candidates[:limit]
	}
	return candidates
}

// OnUserFavoriteChanged invalidates the user's cached profile. Call after
// any favorite is added or removed.
func (r *Recommender) OnUserFavoriteChanged(userID uuid.UUID) {
	r.profiles.invalidate(userID)
}

// PersonalizedScore blends the composite score with the user's observed
// preferences and penalizes names far from the user's usual quality band.
func PersonalizedScore(p *PreferenceProfile, c naming.Candidate) float64 {
	score := baseWeight * c.Score.Total
	score += genderBoost * p.GenderWeight(c.Gender)
	score += lengthBoost * p.LengthWeight(len(c.Chars))

	elementSum := 0.0
	for el, n := range c.Elemental.Counts {
		elementSum += p.ElementWeight(el) * float64(n)
	}
	score += elementBoost * elementSum

	if dev := math.Abs(c.Score.Total-p.AverageScore) - outlierTolerance; dev > 0 {
		score -= dev * outlierPenaltyPer
	}
	return math.Round(score*100) / 100
}
