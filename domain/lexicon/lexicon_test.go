package lexicon

import (
	"context"
	"errors"
	"testing"
)

func TestParseElement(t *testing.T) {
	cases := []struct {
		in   string
		want Element
	}{
		{"jin", ElementMetal},
		{"metal", ElementMetal},
		{"mu", ElementWood},
		{"shui", ElementWater},
		{"huo", ElementFire},
		{"tu", ElementEarth},
		{"earth", ElementEarth},
		{"", ElementUnknown},
		{"bogus", ElementUnknown},
	}
	for _, tc := range cases {
		if got := ParseElement(tc.in); got != tc.want {
			t.Errorf("ParseElement(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseGender(t *testing.T) {
	cases := []struct {
		in   string
		want Gender
		ok   bool
	}{
		{"M", GenderMale, true},
		{"f", GenderFemale, true},
		{"male", GenderMale, true},
		{"neutral", GenderNeutral, true},
		{"", GenderNeutral, true},
		{"X", GenderNeutral, false},
	}
	for _, tc := range cases {
		got, ok := ParseGender(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseGender(%q) = (%v, %v), want (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestClassifyTone(t *testing.T) {
	cases := []struct {
		pinyin string
		want   Tone
	}{
		{"ma1", ToneLevel},
		{"ma2", ToneLevel},
		{"ma3", ToneRising},
		{"ma4", ToneDeparting},
		{"ma5", ToneEntering},
		{"ma", ToneLevel},
		{"", ToneLevel},
	}
	for _, tc := range cases {
		if got := ClassifyTone(tc.pinyin); got != tc.want {
			t.Errorf("ClassifyTone(%q) = %v, want %v", tc.pinyin, got, tc.want)
		}
	}
}

func TestCyclesAreComplete(t *testing.T) {
	for _, el := range Elements {
		if _, ok := Generates[el]; !ok {
			t.Errorf("Generates missing entry for %v", el)
		}
		if _, ok := Suppresses[el]; !ok {
			t.Errorf("Suppresses missing entry for %v", el)
		}
		if Generates[el] == Suppresses[el] {
			t.Errorf("%v generates and suppresses the same element", el)
		}
	}
}

func TestLexiconLookup(t *testing.T) {
	lex := New([]Entry{
		{Character: "慧", Pinyin: "hui4", Element: ElementWater, Tags: []string{"智慧"}},
	})

	entry, ok := lex.Lookup("慧")
	if !ok {
		t.Fatal("expected 慧 to resolve")
	}
	if entry.Tone() != ToneDeparting {
		t.Errorf("Tone() = %v, want departing", entry.Tone())
	}
	if !entry.HasAnyTag([]string{"智慧", "missing"}) {
		t.Error("HasAnyTag should match 智慧")
	}
	if entry.HasAnyTag([]string{"missing"}) {
		t.Error("HasAnyTag matched a tag the entry does not carry")
	}

	if _, ok := lex.Lookup("無"); ok {
		t.Error("unexpected hit for a character outside the lexicon")
	}
}

func TestLoadFailureYieldsEmptyLexicon(t *testing.T) {
	wantErr := errors.New("store offline")
	lex, err := Load(context.Background(), failingSource{err: wantErr})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Load error = %v, want %v", err, wantErr)
	}
	if lex == nil {
		t.Fatal("Load must return a usable empty lexicon on failure")
	}
	if lex.Len() != 0 {
		t.Errorf("Len() = %d, want 0", lex.Len())
	}
}

type failingSource struct{ err error }

func (s failingSource) LoadEntries(ctx context.Context) ([]Entry, error) {
	return nil, s.err
}

func TestParseAffinity(t *testing.T) {
	if got := ParseAffinity("Strong"); got != AffinityStrong {
		t.Errorf("ParseAffinity(Strong) = %v", got)
	}
	if got := ParseAffinity("medium"); got != AffinityMedium {
		t.Errorf("ParseAffinity(medium) = %v", got)
	}
	if got := ParseAffinity("anything"); got != AffinityWeak {
		t.Errorf("ParseAffinity(anything) = %v", got)
	}
}
