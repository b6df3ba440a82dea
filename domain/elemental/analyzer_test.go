package elemental

import (
	"reflect"
	"testing"

	"poemnames/domain/lexicon"
)

func testLexicon() *lexicon.Lexicon {
	return lexicon.New([]lexicon.Entry{
		{Character: "金", Element: lexicon.ElementMetal},
		{Character: "木", Element: lexicon.ElementWood},
		{Character: "水", Element: lexicon.ElementWater},
		{Character: "火", Element: lexicon.ElementFire},
		{Character: "土", Element: lexicon.ElementEarth},
		{Character: "林", Element: lexicon.ElementWood},
	})
}

func TestAnalyzeCountsAreAdditive(t *testing.T) {
	a := New(testLexicon())
	p := a.Analyze([]string{"木", "林", "水"})

	total := 0
	for _, c := range p.Counts {
		total += c
	}
	if total != p.Resolved {
		t.Errorf("sum of counts = %d, want Resolved = %d", total, p.Resolved)
	}
	if p.Counts[lexicon.ElementWood] != 2 {
		t.Errorf("wood count = %d, want 2", p.Counts[lexicon.ElementWood])
	}
	if p.Resolved != 3 || p.TotalChars != 3 {
		t.Errorf("Resolved/TotalChars = %d/%d, want 3/3", p.Resolved, p.TotalChars)
	}
}

func TestAnalyzeUnknownCharactersDiluteDistribution(t *testing.T) {
	a := New(testLexicon())
	p := a.Analyze([]string{"水", "無"})

	if p.TotalChars != 2 || p.Resolved != 1 {
		t.Fatalf("TotalChars/Resolved = %d/%d, want 2/1", p.TotalChars, p.Resolved)
	}
	if p.Percentages[lexicon.ElementWater] != 50 {
		t.Errorf("water percentage = %v, want 50 (denominator is all characters)", p.Percentages[lexicon.ElementWater])
	}
}

func TestAnalyzeAllUnknownKeepsEvennessFloor(t *testing.T) {
	a := New(lexicon.Empty())
	p := a.Analyze([]string{"之", "乎"})

	if p.Resolved != 0 || p.TotalChars != 2 {
		t.Fatalf("Resolved/TotalChars = %d/%d, want 0/2", p.Resolved, p.TotalChars)
	}
	// No category resolves: completeness and harmony are zero, but the
	// flat zero distribution keeps the full evenness term.
	if p.BalanceScore != 40 {
		t.Errorf("all-unknown balance = %v, want 40", p.BalanceScore)
	}
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	a := New(testLexicon())
	chars := []string{"金", "水", "木"}
	first := a.Analyze(chars)
	second := a.Analyze(chars)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated analysis of the same sequence diverged")
	}
}

func TestGenerativeChainBeatsDestructivePairs(t *testing.T) {
	a := New(testLexicon())

	// metal -> water -> wood is a pure generative chain
	generative := a.Analyze([]string{"金", "水", "木"})
	// metal suppresses wood, wood suppresses earth
	destructive := a.Analyze([]string{"金", "木", "土"})

	if generative.BalanceScore <= destructive.BalanceScore {
		t.Errorf("generative chain scored %v, destructive-heavy %v; want strictly higher",
			generative.BalanceScore, destructive.BalanceScore)
	}
	foundDestructive := false
	for _, f := range destructive.Findings {
		if f.Kind == "destructive" {
			foundDestructive = true
		}
	}
	if !foundDestructive {
		t.Error("expected a destructive finding for 金木土")
	}
}

func TestHarmonyDeductionAboveTwoDestructivePairs(t *testing.T) {
	// 金木土水: metal->wood, wood->earth and earth->water co-occur, so the
	// third pair costs a point off the chains-plus-diversity baseline of 9.
	threePairs := map[Element]int{
		lexicon.ElementMetal: 1,
		lexicon.ElementWood:  1,
		lexicon.ElementEarth: 1,
		lexicon.ElementWater: 2,
	}
	if got := harmonyScore(threePairs); got != 8 {
		t.Errorf("three destructive pairs: harmony = %v, want 8", got)
	}

	// 金水木 holds a single destructive pair and keeps its full baseline.
	onePair := map[Element]int{
		lexicon.ElementMetal: 1,
		lexicon.ElementWater: 2,
		lexicon.ElementWood:  2,
	}
	if got := harmonyScore(onePair); got != 6 {
		t.Errorf("single destructive pair: harmony = %v, want undeducted 6", got)
	}

	// All five categories stack five destructive pairs: three points off
	// the baseline of 14. The deduction grows with each pair past two.
	allFive := map[Element]int{
		lexicon.ElementMetal: 1,
		lexicon.ElementWood:  1,
		lexicon.ElementWater: 1,
		lexicon.ElementFire:  1,
		lexicon.ElementEarth: 1,
	}
	if got := harmonyScore(allFive); got != 11 {
		t.Errorf("five destructive pairs: harmony = %v, want 11", got)
	}
}

func TestEmptyInputYieldsZeroProfile(t *testing.T) {
	a := New(testLexicon())
	p := a.Analyze(nil)
	if p.BalanceScore != 0 || p.Resolved != 0 {
		t.Errorf("empty input gave BalanceScore=%v Resolved=%d, want zeros", p.BalanceScore, p.Resolved)
	}
	if len(p.AddElements) != 5 {
		t.Errorf("AddElements = %v, want all five categories", p.AddElements)
	}
}

func TestConcentrationDetected(t *testing.T) {
	a := New(testLexicon())
	p := a.Analyze([]string{"木", "林", "水"})

	found := false
	for _, el := range p.Concentrated {
		if el == lexicon.ElementWood {
			found = true
		}
	}
	if !found {
		t.Errorf("wood holds 2/3 of the name, expected concentration flag; got %v", p.Concentrated)
	}
}

func TestGetScoreGrading(t *testing.T) {
	a := New(testLexicon())

	full := a.Analyze([]string{"金", "木", "水", "火", "土"})
	score := a.GetScore(full)
	if score.Completeness != 100 {
		t.Errorf("five distinct categories gave completeness %v, want 100", score.Completeness)
	}
	if score.Total < 0 || score.Total > 100 {
		t.Errorf("total %v out of range", score.Total)
	}
	if score.Grade == "" {
		t.Error("grade must not be empty")
	}

	single := a.GetScore(a.Analyze([]string{"金"}))
	if single.Completeness != 20 {
		t.Errorf("single category completeness = %v, want 20", single.Completeness)
	}
	if single.Total >= score.Total {
		t.Errorf("single-category total %v should be below full-spread total %v", single.Total, score.Total)
	}
}

func TestSuggestDirections(t *testing.T) {
	a := New(testLexicon())

	// Two categories present, three missing: hints target the missing ones.
	p := a.Analyze([]string{"金", "水"})
	hints := a.SuggestDirections(p)
	if len(hints.Suggestions) == 0 {
		t.Fatal("expected direction suggestions for missing categories")
	}
	for _, s := range hints.Suggestions {
		if s.Priority != "high" {
			t.Errorf("missing-element suggestion priority = %q, want high", s.Priority)
		}
	}
	if len(hints.Favorable) == 0 {
		t.Error("expected favorable directions for present categories")
	}
}
