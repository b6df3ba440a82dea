package generator

import (
	"context"
	"errors"
	"testing"

	"poemnames/domain/lexicon"
	"poemnames/domain/naming"
	"poemnames/internal/testkit"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	kit := testkit.NewKit()
	return New(kit.Lexicon, kit.Generator, kit.RNG, kit.Logger)
}

func baseRequest() naming.Request {
	return naming.Request{
		Surname: "李",
		Gender:  lexicon.GenderFemale,
		Count:   5,
		Length:  2,
		Seed:    42,
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	g := newTestGenerator(t)
	ctx := context.Background()

	first, err := g.Generate(ctx, baseRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := g.Generate(ctx, baseRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].GivenName != second[i].GivenName {
			t.Errorf("position %d differs: %q vs %q", i, first[i].GivenName, second[i].GivenName)
		}
		if first[i].Score.Total != second[i].Score.Total {
			t.Errorf("position %d score differs: %v vs %v", i, first[i].Score.Total, second[i].Score.Total)
		}
	}
}

func TestGenerateRespectsCountBound(t *testing.T) {
	g := newTestGenerator(t)

	for _, count := range []int{1, 3, 8} {
		req := baseRequest()
		req.Count = count
		out, err := g.Generate(context.Background(), req)
		if err != nil {
			t.Fatalf("Generate(count=%d): %v", count, err)
		}
		if len(out) > count {
			t.Errorf("count=%d returned %d candidates", count, len(out))
		}
	}
}

func TestGenerateRejectsInvalidParams(t *testing.T) {
	g := newTestGenerator(t)
	ctx := context.Background()

	req := baseRequest()
	req.Length = 0
	if _, err := g.Generate(ctx, req); !errors.Is(err, naming.ErrInvalidLength) {
		t.Errorf("length 0: got %v, want ErrInvalidLength", err)
	}

	req = baseRequest()
	req.Count = 0
	if _, err := g.Generate(ctx, req); !errors.Is(err, naming.ErrInvalidCount) {
		t.Errorf("count 0: got %v, want ErrInvalidCount", err)
	}
}

func TestEmptyLexiconYieldsEmptyResult(t *testing.T) {
	kit := testkit.NewKit()
	g := New(lexicon.Empty(), kit.Generator, kit.RNG, kit.Logger)

	out, err := g.Generate(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("empty lexicon must not error: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("empty lexicon produced %d candidates", len(out))
	}
}

func TestTinyLexiconStillProduces(t *testing.T) {
	kit := testkit.NewKit()
	lex := lexicon.New([]lexicon.Entry{
		{Character: "安", Pinyin: "an1", Element: lexicon.ElementEarth, Gender: lexicon.GenderNeutral, Frequency: 100},
		{Character: "宁", Pinyin: "ning2", Element: lexicon.ElementFire, Gender: lexicon.GenderNeutral, Frequency: 90},
	})
	g := New(lex, kit.Generator, kit.RNG, kit.Logger)

	req := baseRequest()
	req.Count = 10
	out, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("two-entry lexicon produced nothing")
	}
	// Only three distinct two-char multisets exist, and anagrams are
	// suppressed once the requested count is met.
	if len(out) > 4 {
		t.Errorf("expected a handful of results from a two-entry lexicon, got %d", len(out))
	}
}

func TestUserHistoryExcluded(t *testing.T) {
	g := newTestGenerator(t)
	ctx := context.Background()

	first, err := g.Generate(ctx, baseRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(first) == 0 {
		t.Fatal("no candidates to build history from")
	}

	history := map[string]bool{first[0].FullName(): true}
	req := baseRequest()
	req.UserHistory = history
	second, err := g.Generate(ctx, req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, c := range second {
		if history[c.FullName()] {
			t.Errorf("history name %q delivered again", c.FullName())
		}
	}
}

func TestCandidatesAreAnnotated(t *testing.T) {
	g := newTestGenerator(t)

	out, err := g.Generate(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, c := range out {
		if c.Score.Grade == "" {
			t.Errorf("%s: missing grade", c.GivenName)
		}
		if c.Elemental.TotalChars != len(c.Chars) {
			t.Errorf("%s: elemental profile covers %d chars, want %d", c.GivenName, c.Elemental.TotalChars, len(c.Chars))
		}
		if len(c.Phonology.ToneSequence) != len(c.Chars) {
			t.Errorf("%s: tone sequence covers %d chars, want %d", c.GivenName, len(c.Phonology.ToneSequence), len(c.Chars))
		}
		if c.Meaning == "" {
			t.Errorf("%s: missing meaning", c.GivenName)
		}
	}
}

func TestScoresAreNonIncreasing(t *testing.T) {
	g := newTestGenerator(t)

	out, err := g.Generate(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for i := 1; i < len(out); i++ {
		if out[i].Score.Total > out[i-1].Score.Total {
			t.Errorf("position %d (%v) outranks position %d (%v)",
				i, out[i].Score.Total, i-1, out[i-1].Score.Total)
		}
	}
}

func TestPreferenceFilterRelaxesOnStarvation(t *testing.T) {
	kit := testkit.NewKit()
	cfg := kit.Generator
	cfg.RelaxThreshold = 2
	g := New(kit.Lexicon, cfg, kit.RNG, kit.Logger)

	// No fixture entry carries this tag; the filter would empty the pool
	// and must be dropped instead.
	req := baseRequest()
	req.Preferences.MeaningTags = []string{"不存在的标签"}
	out, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(out) == 0 {
		t.Error("starved preference filter was not relaxed")
	}
}

func TestAvoidedElementsHonoredWhenPoolAllows(t *testing.T) {
	kit := testkit.NewKit()
	cfg := kit.Generator
	cfg.RelaxThreshold = 2
	g := New(kit.Lexicon, cfg, kit.RNG, kit.Logger)

	req := baseRequest()
	req.Gender = lexicon.GenderNeutral
	req.Preferences.Avoided = []lexicon.Element{lexicon.ElementWater}
	out, err := g.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, c := range out {
		if c.Elemental.Counts[lexicon.ElementWater] > 0 {
			t.Errorf("%s contains an avoided water character", c.GivenName)
		}
	}
}
