package naming

import (
	"errors"
	"fmt"
	"strings"

	"poemnames/domain/elemental"
	"poemnames/domain/lexicon"
	"poemnames/domain/phonology"
)

// Request parameter errors: the one failure class reported to the caller
// instead of being absorbed into an empty result.
var (
	ErrInvalidLength = errors.New("name length must be between 1 and 3")
	ErrUnknownGender = errors.New("unknown gender code")
	ErrInvalidCount  = errors.New("count must be positive")
)

// Preferences narrow the character pool before generation. Filters that
// would starve the pool are dropped rather than honored.
type Preferences struct {
	TonePreference string            `json:"tone_preference,omitempty"` // "ping" | "ze" | ""
	MeaningTags    []string          `json:"meaning_tags,omitempty"`
	Required       []lexicon.Element `json:"required_elements,omitempty"`
	Avoided        []lexicon.Element `json:"avoided_elements,omitempty"`
}

// Request describes one generation call.
type Request struct {
	Surname     string
	Gender      lexicon.Gender
	Count       int
	Length      int
	Preferences Preferences
	Seed        int64
	UserHistory map[string]bool // full names already delivered to this user
}

// Validate rejects malformed parameters before generation begins.
func (r Request) Validate() error {
	if r.Length < 1 || r.Length > 3 {
		return fmt.Errorf("%w: got %d", ErrInvalidLength, r.Length)
	}
	switch r.Gender {
	case lexicon.GenderMale, lexicon.GenderFemale, lexicon.GenderNeutral:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownGender, r.Gender)
	}
	if r.Count < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, r.Count)
	}
	return nil
}

// CompositeScore is the weighted rating that ranks a candidate.
type CompositeScore struct {
	Total          float64 `json:"total"`
	Elemental      float64 `json:"elemental"`
	Phonological   float64 `json:"phonological"`
	LexicalQuality float64 `json:"lexical_quality"`
	LengthFitness  float64 `json:"length_fitness"`
	PairHarmony    float64 `json:"pair_harmony"`
	DiversityBonus float64 `json:"diversity_bonus"`
	GenderBonus    float64 `json:"gender_bonus"`
	Grade          string  `json:"grade"`
}

// GradeFor maps a composite total onto the six-grade ladder.
func GradeFor(total float64) string {
	switch {
	case total >= 85:
		return "A+"
	case total >= 75:
		return "A"
	case total >= 65:
		return "B"
	case total >= 55:
		return "C"
	case total >= 45:
		return "D"
	default:
		return "E"
	}
}

// Candidate is one generated name with its annotations. Transient: created
// and discarded within a single request, never persisted here.
type Candidate struct {
	Surname   string                     `json:"surname"`
	Chars     []string                   `json:"chars"`
	GivenName string                     `json:"given_name"`
	Gender    lexicon.Gender             `json:"gender"`
	Score     CompositeScore             `json:"score"`
	Elemental elemental.Profile          `json:"elemental"`
	Phonology phonology.Profile          `json:"phonology"`
	Hints     elemental.DirectionalHints `json:"hints"`
	Meaning   string                     `json:"meaning"`
	Origin    string                     `json:"origin"`
	Tags      []string                   `json:"tags"`
}

// FullName renders surname plus given name.
func (c Candidate) FullName() string {
	return c.Surname + c.GivenName
}

// SplitFullName recovers the given-name character sequence from a rendered
// full name, given the surname it was rendered with.
func SplitFullName(fullName, surname string) []string {
	given := strings.TrimPrefix(fullName, surname)
	chars := make([]string, 0, len(given))
	for _, r := range given {
		chars = append(chars, string(r))
	}
	return chars
}

// MultisetKey is the order-insensitive identity of a character selection,
// used to suppress anagram duplicates within one request.
func MultisetKey(chars []string) string {
	sorted := make([]string, len(chars))
	copy(sorted, chars)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j] < sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return strings.Join(sorted, "")
}
