package app

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"poemnames/domain/naming"
	"poemnames/internal/cache"
	apperrors "poemnames/internal/errors"
	"poemnames/internal/generator"
	"poemnames/internal/recommender"
	"poemnames/internal/testkit"
	"poemnames/models"
)

func newTestNameService(t *testing.T) (*NameService, *testkit.Kit) {
	t.Helper()
	kit := testkit.NewKit()
	gen := generator.New(kit.Lexicon, kit.Generator, kit.RNG, kit.Logger)
	ranker := recommender.New(kit.History, cache.NewMemory(), kit.RNG, kit.Logger)
	svc := NewNameService(gen, kit.Surnames, kit.Poetry, kit.History, kit.History,
		ranker, nil, cache.NewMemory(), kit.Logger)
	return svc, kit
}

func TestGenerateHappyPath(t *testing.T) {
	svc, _ := newTestNameService(t)

	got, err := svc.Generate(context.Background(), GenerateParams{
		Surname: "李",
		Gender:  "F",
		Count:   3,
		Length:  2,
		Seed:    42,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(got) == 0 || len(got) > 3 {
		t.Fatalf("got %d candidates, want 1..3", len(got))
	}
	for _, c := range got {
		if c.Surname != "李" {
			t.Errorf("surname = %q", c.Surname)
		}
		if c.Origin == "" {
			t.Errorf("%s has no origin", c.FullName())
		}
		if c.Score.Grade == "" {
			t.Errorf("%s has no grade", c.FullName())
		}
	}
}

func TestGenerateUnknownSurname(t *testing.T) {
	svc, _ := newTestNameService(t)

	got, err := svc.Generate(context.Background(), GenerateParams{
		Surname: "赵",
		Gender:  "F",
		Count:   3,
		Length:  2,
		Seed:    1,
	})
	if err != nil {
		t.Fatalf("unknown surname must not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d candidates for an unknown surname", len(got))
	}
}

func TestGenerateEmptySurnamePicksOne(t *testing.T) {
	svc, _ := newTestNameService(t)

	got, err := svc.Generate(context.Background(), GenerateParams{
		Gender: "",
		Count:  2,
		Length: 2,
		Seed:   7,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected candidates when surname is omitted")
	}
	if got[0].Surname == "" {
		t.Error("candidates carry no surname")
	}
}

func TestGenerateRejectsBadGender(t *testing.T) {
	svc, _ := newTestNameService(t)

	_, err := svc.Generate(context.Background(), GenerateParams{
		Surname: "李",
		Gender:  "X",
		Count:   3,
		Length:  2,
	})
	if !errors.Is(err, naming.ErrUnknownGender) {
		t.Errorf("err = %v, want ErrUnknownGender", err)
	}
}

func TestGenerateRecordsDeliveryForKnownUser(t *testing.T) {
	svc, kit := newTestNameService(t)
	userID := uuid.New()

	got, err := svc.Generate(context.Background(), GenerateParams{
		Surname: "李",
		Gender:  "F",
		Count:   2,
		Length:  2,
		Seed:    42,
		UserID:  userID,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	delivered, err := kit.History.GeneratedNames(context.Background(), userID)
	if err != nil {
		t.Fatalf("GeneratedNames: %v", err)
	}
	if len(delivered) != len(got) {
		t.Fatalf("recorded %d names, delivered %d", len(delivered), len(got))
	}

	// A second run against the same history must not repeat delivered names.
	again, err := svc.Generate(context.Background(), GenerateParams{
		Surname: "李",
		Gender:  "F",
		Count:   2,
		Length:  2,
		Seed:    42,
		UserID:  userID,
	})
	if err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	seen := make(map[string]bool, len(got))
	for _, c := range got {
		seen[c.FullName()] = true
	}
	for _, c := range again {
		if seen[c.FullName()] {
			t.Errorf("%s was delivered twice", c.FullName())
		}
	}
}

func TestGenerateCollaborativeFollowsPopularity(t *testing.T) {
	svc, kit := newTestNameService(t)
	ctx := context.Background()

	base, err := svc.Generate(ctx, GenerateParams{
		Surname: "李",
		Gender:  "F",
		Count:   3,
		Length:  2,
		Seed:    42,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(base) < 2 {
		t.Fatalf("need at least 2 candidates to rerank, got %d", len(base))
	}

	// Several other users favorite the composite-worst candidate.
	last := base[len(base)-1]
	for i := 0; i < 5; i++ {
		fav := models.FavoriteName{
			UserID:        uuid.New(),
			FullName:      last.FullName(),
			GivenName:     last.GivenName,
			ElementCounts: []byte(`{}`),
		}
		if err := kit.History.AddFavorite(ctx, fav); err != nil {
			t.Fatal(err)
		}
	}

	out, err := svc.Generate(ctx, GenerateParams{
		Surname:       "李",
		Gender:        "F",
		Count:         3,
		Length:        2,
		Seed:          42,
		Collaborative: true,
	})
	if err != nil {
		t.Fatalf("collaborative Generate: %v", err)
	}
	if out[0].FullName() != last.FullName() {
		t.Errorf("most-favorited name %q not first, got %q", last.FullName(), out[0].FullName())
	}
}

func TestGenerateSurnameLookupFailureIsStructured(t *testing.T) {
	svc, kit := newTestNameService(t)
	kit.Surnames.Err = errors.New("db down")

	_, err := svc.Generate(context.Background(), GenerateParams{
		Surname: "李",
		Gender:  "F",
		Count:   2,
		Length:  2,
		Seed:    1,
	})
	if err == nil {
		t.Fatal("surname store failure must surface an error")
	}
	if !apperrors.IsAppError(err) {
		t.Errorf("err = %T, want a wrapped app error", err)
	}
	if !errors.Is(err, kit.Surnames.Err) {
		t.Error("wrapped error lost its cause")
	}
}

func TestGenerateDegradesWhenHistoryFails(t *testing.T) {
	svc, kit := newTestNameService(t)
	kit.History.Err = errors.New("db down")

	got, err := svc.Generate(context.Background(), GenerateParams{
		Surname: "李",
		Gender:  "F",
		Count:   2,
		Length:  2,
		Seed:    42,
		UserID:  uuid.New(),
	})
	if err != nil {
		t.Fatalf("history failure must degrade, not error: %v", err)
	}
	if len(got) == 0 {
		t.Error("expected candidates despite history failure")
	}
}

func TestOriginEnrichmentPrefersPoetry(t *testing.T) {
	svc, _ := newTestNameService(t)

	// 梅 is in the poetry fixtures; force it in via a required tag-free pool
	// by generating repeatedly and checking any candidate containing it.
	got, err := svc.Generate(context.Background(), GenerateParams{
		Surname: "王",
		Gender:  "F",
		Count:   8,
		Length:  1,
		Seed:    3,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, c := range got {
		if c.GivenName == "梅" && c.Origin != "墨梅" {
			t.Errorf("梅 origin = %q, want 墨梅", c.Origin)
		}
		if c.Origin == "" {
			t.Errorf("%s has empty origin, fallback chain missed", c.FullName())
		}
	}
}

func TestAddFavoriteRoundTrip(t *testing.T) {
	svc, kit := newTestNameService(t)
	userID := uuid.New()

	got, err := svc.Generate(context.Background(), GenerateParams{
		Surname: "李",
		Gender:  "F",
		Count:   1,
		Length:  2,
		Seed:    42,
	})
	if err != nil || len(got) == 0 {
		t.Fatalf("Generate: %v (%d candidates)", err, len(got))
	}

	if err := svc.AddFavorite(context.Background(), userID, got[0]); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}
	favs, err := svc.Favorites(context.Background(), userID)
	if err != nil {
		t.Fatalf("Favorites: %v", err)
	}
	if len(favs) != 1 || favs[0].FullName != got[0].FullName() {
		t.Fatalf("favorites = %+v", favs)
	}
	if len(favs[0].ElementCounts) == 0 {
		t.Error("element counts were not persisted")
	}

	if err := svc.RemoveFavorite(context.Background(), userID, got[0].FullName()); err != nil {
		t.Fatalf("RemoveFavorite: %v", err)
	}
	favs, err = kit.History.Favorites(context.Background(), userID)
	if err != nil {
		t.Fatalf("Favorites after remove: %v", err)
	}
	if len(favs) != 0 {
		t.Errorf("favorite survived removal: %+v", favs)
	}
}

func TestExplainWithoutExplainerUsesFallback(t *testing.T) {
	svc, _ := newTestNameService(t)

	text, err := svc.Explain(context.Background(), recommender.NameCard{
		FullName:  "李慧涵",
		GivenName: "慧涵",
		Meaning:   "wisdom、depth",
	})
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if text == "" {
		t.Fatal("empty explanation")
	}
	if want := recommender.FallbackExplanation(recommender.NameCard{
		FullName:  "李慧涵",
		GivenName: "慧涵",
		Meaning:   "wisdom、depth",
	}); text != want {
		t.Errorf("text = %q, want the deterministic fallback", text)
	}
}
