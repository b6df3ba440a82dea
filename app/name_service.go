package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"poemnames/domain/lexicon"
	"poemnames/domain/naming"
	"poemnames/internal"
	"poemnames/internal/errors"
	"poemnames/internal/generator"
	"poemnames/internal/recommender"
	"poemnames/models"
	"poemnames/ports"
)

// GenerateParams is the request surface handed to NameService. Gender uses
// the wire codes "M"/"F"/"" rather than lexicon constants.
type GenerateParams struct {
	Surname       string
	Gender        string
	Count         int
	Length        int
	Preferences   naming.Preferences
	Seed          int64
	UserID        uuid.UUID // uuid.Nil means anonymous
	Collaborative bool      // rank by other users' favorites instead of the profile
}

// NameService orchestrates one generation call: surname resolution, pool
// generation, origin enrichment, personalization, history recording.
type NameService struct {
	gen      *generator.Generator
	surnames ports.SurnameRepository
	poetry   ports.PoetryRepository
	history  ports.HistoryRepository
	writer   ports.HistoryWriter
	ranker   *recommender.Recommender
	explain  recommender.Explainer
	cache    ports.CachePort
	log      *internal.Logger
}

func NewNameService(
	gen *generator.Generator,
	surnames ports.SurnameRepository,
	poetry ports.PoetryRepository,
	history ports.HistoryRepository,
	writer ports.HistoryWriter,
	ranker *recommender.Recommender,
	explain recommender.Explainer,
	cache ports.CachePort,
	log *internal.Logger,
) *NameService {
	return &NameService{
		gen:      gen,
		surnames: surnames,
		poetry:   poetry,
		history:  history,
		writer:   writer,
		ranker:   ranker,
		explain:  explain,
		cache:    cache,
		log:      log,
	}
}

// Generate produces ranked name candidates. Malformed parameters error;
// sparse data and collaborator failures degrade to fewer or unpersonalized
// results.
func (s *NameService) Generate(ctx context.Context, params GenerateParams) ([]naming.Candidate, error) {
	gender, ok := lexicon.ParseGender(params.Gender)
	if !ok {
		return nil, fmt.Errorf("%w: %q", naming.ErrUnknownGender, params.Gender)
	}

	surname, err := s.resolveSurname(ctx, params.Surname)
	if err != nil {
		return nil, err
	}
	if surname == nil {
		s.log.Info("unknown surname %q, returning no candidates", params.Surname)
		return []naming.Candidate{}, nil
	}

	req := naming.Request{
		Surname:     surname.Name,
		Gender:      gender,
		Count:       params.Count,
		Length:      params.Length,
		Preferences: params.Preferences,
		Seed:        params.Seed,
		UserHistory: s.loadHistory(ctx, params.UserID),
	}

	candidates, err := s.gen.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	s.enrichOrigins(ctx, surname, candidates)

	switch {
	case params.Collaborative:
		candidates = s.ranker.CollaborativeRank(ctx, params.UserID, candidates, params.Seed)
	case params.UserID != uuid.Nil:
		candidates = s.ranker.Rank(ctx, params.UserID, candidates, params.Count)
	}
	if params.UserID != uuid.Nil {
		s.recordDelivery(ctx, params.UserID, candidates)
	}
	return candidates, nil
}

// Explain produces a prose explanation for one candidate. The explainer
// already degrades to a deterministic fallback; a nil explainer means the
// feature is disabled and the fallback is used directly.
func (s *NameService) Explain(ctx context.Context, card recommender.NameCard) (string, error) {
	if s.explain == nil {
		return recommender.FallbackExplanation(card), nil
	}
	return s.explain.GenerateExplanation(ctx, card)
}

// AddFavorite persists a favorited candidate and invalidates the user's
// preference profile.
func (s *NameService) AddFavorite(ctx context.Context, userID uuid.UUID, c naming.Candidate) error {
	counts := make(map[string]int, len(c.Elemental.Counts))
	for el, n := range c.Elemental.Counts {
		counts[string(el)] = n
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		return fmt.Errorf("marshal element counts: %w", err)
	}

	fav := models.FavoriteName{
		UserID:        userID,
		FullName:      c.FullName(),
		GivenName:     c.GivenName,
		Gender:        string(c.Gender),
		ElementCounts: raw,
		TotalScore:    c.Score.Total,
	}
	if err := s.writer.AddFavorite(ctx, fav); err != nil {
		return err
	}
	s.ranker.OnUserFavoriteChanged(userID)
	return nil
}

// RemoveFavorite deletes a favorite and invalidates the user's profile.
func (s *NameService) RemoveFavorite(ctx context.Context, userID uuid.UUID, fullName string) error {
	if err := s.writer.RemoveFavorite(ctx, userID, fullName); err != nil {
		return err
	}
	s.ranker.OnUserFavoriteChanged(userID)
	return nil
}

// Favorites lists the user's favorited names.
func (s *NameService) Favorites(ctx context.Context, userID uuid.UUID) ([]models.FavoriteName, error) {
	return s.history.Favorites(ctx, userID)
}

// resolveSurname maps the requested surname to a record. An empty request
// picks any surname; an unknown one returns (nil, nil).
func (s *NameService) resolveSurname(ctx context.Context, name string) (*models.Surname, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		sn, err := s.surnames.RandomSurname(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "pick surname")
		}
		return sn, nil
	}

	if cached, ok := s.cache.Get("surnames", name); ok {
		if sn, ok := cached.(*models.Surname); ok {
			return sn, nil
		}
	}
	sn, err := s.surnames.GetSurname(ctx, name)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve surname %q", name)
	}
	if sn != nil {
		s.cache.Set("surnames", name, sn)
	}
	return sn, nil
}

// loadHistory fetches delivered names for dedup. Failures log and degrade
// to no dedup rather than failing the request.
func (s *NameService) loadHistory(ctx context.Context, userID uuid.UUID) map[string]bool {
	if userID == uuid.Nil {
		return nil
	}
	names, err := s.history.GeneratedNames(ctx, userID)
	if err != nil {
		s.log.Warn("history unavailable for user %s, skipping dedup: %v", userID, err)
		return nil
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	return seen
}

// enrichOrigins attaches source-text provenance to each candidate. The
// first character with a known source wins; surname origin is the fallback.
func (s *NameService) enrichOrigins(ctx context.Context, surname *models.Surname, candidates []naming.Candidate) {
	for i := range candidates {
		origin := s.originFor(ctx, candidates[i].Chars)
		if origin == "" {
			origin = surname.Origin
		}
		if origin == "" {
			origin = "classical poetry corpus"
		}
		candidates[i].Origin = origin
	}
}

func (s *NameService) originFor(ctx context.Context, chars []string) string {
	for _, ch := range chars {
		if cached, ok := s.cache.Get("poetry", ch); ok {
			if titles, ok := cached.([]string); ok && len(titles) > 0 {
				return titles[0]
			}
			continue
		}
		titles, err := s.poetry.SourcesForCharacter(ctx, ch)
		if err != nil {
			s.log.Warn("poetry lookup failed for %q: %v", ch, err)
			continue
		}
		s.cache.Set("poetry", ch, titles)
		if len(titles) > 0 {
			return titles[0]
		}
	}
	return ""
}

// recordDelivery stores delivered names so later requests dedup against
// them. Failures log only.
func (s *NameService) recordDelivery(ctx context.Context, userID uuid.UUID, candidates []naming.Candidate) {
	if s.writer == nil || len(candidates) == 0 {
		return
	}
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.FullName())
	}
	if err := s.writer.RecordGenerated(ctx, userID, names); err != nil {
		s.log.Warn("failed to record delivered names for user %s: %v", userID, err)
	}
}
