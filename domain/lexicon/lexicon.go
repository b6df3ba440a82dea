package lexicon

import (
	"context"
	"strings"
	"unicode"
)

// Element is one of the five-phase categories assigned to a character.
type Element string

const (
	ElementMetal   Element = "metal"
	ElementWood    Element = "wood"
	ElementWater   Element = "water"
	ElementFire    Element = "fire"
	ElementEarth   Element = "earth"
	ElementUnknown Element = "unknown"
)

// Elements lists the five categories in canonical order.
var Elements = []Element{ElementMetal, ElementWood, ElementWater, ElementFire, ElementEarth}

// Generative cycle: each element produces the next.
var Generates = map[Element]Element{
	ElementMetal: ElementWater,
	ElementWater: ElementWood,
	ElementWood:  ElementFire,
	ElementFire:  ElementEarth,
	ElementEarth: ElementMetal,
}

// Destructive cycle: each element suppresses another.
var Suppresses = map[Element]Element{
	ElementMetal: ElementWood,
	ElementWood:  ElementEarth,
	ElementEarth: ElementWater,
	ElementWater: ElementFire,
	ElementFire:  ElementMetal,
}

// ParseElement normalizes an element tag from the word store. The corpus
// carries the classical pinyin codes; exported names are the English forms.
func ParseElement(s string) Element {
	switch s {
	case "jin", "metal":
		return ElementMetal
	case "mu", "wood":
		return ElementWood
	case "shui", "water":
		return ElementWater
	case "huo", "fire":
		return ElementFire
	case "tu", "earth":
		return ElementEarth
	default:
		return ElementUnknown
	}
}

// Gender is a character's affinity toward a requested gender.
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderNeutral Gender = "neutral"
)

// ParseGender maps request codes ("M"/"F") and store values to a Gender.
func ParseGender(s string) (Gender, bool) {
	switch s {
	case "M", "m", "male":
		return GenderMale, true
	case "F", "f", "female":
		return GenderFemale, true
	case "neutral", "N", "n", "":
		return GenderNeutral, true
	default:
		return GenderNeutral, false
	}
}

// Opposite returns the opposing affinity; neutral has none.
func (g Gender) Opposite() Gender {
	switch g {
	case GenderMale:
		return GenderFemale
	case GenderFemale:
		return GenderMale
	default:
		return GenderNeutral
	}
}

// AffinityStrength grades how strongly a character leans toward its gender.
type AffinityStrength string

const (
	AffinityWeak   AffinityStrength = "weak"
	AffinityMedium AffinityStrength = "medium"
	AffinityStrong AffinityStrength = "strong"
)

// ParseAffinity maps a stored affinity string to a strength, defaulting
// unrecognized values to weak.
func ParseAffinity(s string) AffinityStrength {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strong":
		return AffinityStrong
	case "medium":
		return AffinityMedium
	default:
		return AffinityWeak
	}
}

// Tone is one of the four classical tone buckets.
type Tone string

const (
	ToneLevel     Tone = "level"     // ping: modern tones 1-2
	ToneRising    Tone = "rising"    // shang: modern tone 3
	ToneDeparting Tone = "departing" // qu: modern tone 4
	ToneEntering  Tone = "entering"  // ru: everything else numeric
)

// Tones lists the buckets in canonical order.
var Tones = []Tone{ToneLevel, ToneRising, ToneDeparting, ToneEntering}

// ClassifyTone buckets a pronunciation code by its terminal digit.
// Non-numeric codes default to level.
func ClassifyTone(pinyin string) Tone {
	if pinyin == "" {
		return ToneLevel
	}
	runes := []rune(pinyin)
	last := runes[len(runes)-1]
	if !unicode.IsDigit(last) {
		return ToneLevel
	}
	switch last {
	case '1', '2':
		return ToneLevel
	case '3':
		return ToneRising
	case '4':
		return ToneDeparting
	default:
		return ToneEntering
	}
}

// Entry is the immutable attribute record for one character.
type Entry struct {
	Character    string
	Pinyin       string
	Element      Element
	Gender       Gender
	Affinity     AffinityStrength
	Tags         []string
	Frequency    int
	Meaning      string
	FunctionWord bool
}

// Tone returns the entry's tone bucket derived from its pronunciation code.
func (e Entry) Tone() Tone {
	return ClassifyTone(e.Pinyin)
}

// HasAnyTag reports whether the entry carries at least one of the given tags.
func (e Entry) HasAnyTag(tags []string) bool {
	for _, want := range tags {
		for _, have := range e.Tags {
			if want == have {
				return true
			}
		}
	}
	return false
}

// Source provides the one-time bulk read that populates a Lexicon.
type Source interface {
	LoadEntries(ctx context.Context) ([]Entry, error)
}

// Lexicon is the read-only in-memory character table. It is built once from
// a Source and shared across requests; a failed load leaves it empty and
// downstream scoring degrades to neutral defaults.
type Lexicon struct {
	entries map[string]Entry
}

// New builds a lexicon from preloaded entries.
func New(entries []Entry) *Lexicon {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		if e.Character != "" {
			m[e.Character] = e
		}
	}
	return &Lexicon{entries: m}
}

// Empty returns a lexicon with no entries.
func Empty() *Lexicon {
	return &Lexicon{entries: map[string]Entry{}}
}

// Load bulk-reads a source into a fresh lexicon. A source failure is not an
// error to the caller: it yields an empty lexicon.
func Load(ctx context.Context, src Source) (*Lexicon, error) {
	entries, err := src.LoadEntries(ctx)
	if err != nil {
		return Empty(), err
	}
	return New(entries), nil
}

// Lookup resolves a character to its entry.
func (l *Lexicon) Lookup(character string) (Entry, bool) {
	e, ok := l.entries[character]
	return e, ok
}

// Len reports the number of loaded characters.
func (l *Lexicon) Len() int {
	return len(l.entries)
}

// All returns every entry. The slice is freshly allocated; entries are
// value copies, so callers cannot mutate lexicon state.
func (l *Lexicon) All() []Entry {
	out := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	return out
}
