package phonology

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"gonum.org/v1/gonum/stat"

	"poemnames/domain/lexicon"
)

// Tone aliases the lexicon bucket for readability in this package.
type Tone = lexicon.Tone

// Finding is one secondary euphony signal detected in a sequence.
type Finding struct {
	Kind  string `json:"kind"` // "alliteration" | "assonance" | "hard_to_pronounce"
	Chars string `json:"chars"`
}

// Profile is the phonological shape of one character sequence. Like the
// elemental profile it is a pure function of its inputs.
type Profile struct {
	ToneSequence    []Tone           `json:"tone_sequence"`
	ToneCounts      map[Tone]int     `json:"tone_counts"`
	TonePercentages map[Tone]float64 `json:"tone_percentages"`
	Alternation     float64          `json:"alternation"`
	Findings        []Finding        `json:"findings"`
	Suggestions     []string         `json:"suggestions"`
}

// Score is the headline phonological rating for a profile.
type Score struct {
	Total       float64 `json:"total"`
	Rhythm      float64 `json:"rhythm"`
	ToneBalance float64 `json:"tone_balance"`
	Grade       string  `json:"grade"`
}

// Confusable initial pairs: sharing or adjoining these makes two
// consecutive characters hard to articulate.
var confusableInitials = map[string]string{
	"z": "zh", "zh": "z",
	"c": "ch", "ch": "c",
	"s": "sh", "sh": "s",
	"n": "l", "l": "n",
	"f": "h", "h": "f",
}

// Analyzer computes tone harmony over a shared read-only lexicon.
type Analyzer struct {
	lex *lexicon.Lexicon
}

// New creates an analyzer bound to a lexicon.
func New(lex *lexicon.Lexicon) *Analyzer {
	return &Analyzer{lex: lex}
}

// Analyze computes the phonological profile of a character sequence.
// Pronunciation codes may be supplied directly; otherwise they are resolved
// through the lexicon, with absent characters defaulting to a level tone.
func (a *Analyzer) Analyze(chars []string, pinyin []string) Profile {
	if len(pinyin) != len(chars) {
		pinyin = make([]string, len(chars))
		for i, ch := range chars {
			if entry, ok := a.lex.Lookup(ch); ok {
				pinyin[i] = entry.Pinyin
			}
		}
	}

	tones := make([]Tone, len(pinyin))
	counts := map[Tone]int{}
	for i, p := range pinyin {
		tones[i] = lexicon.ClassifyTone(p)
		counts[tones[i]]++
	}

	percentages := make(map[Tone]float64, 4)
	for _, t := range lexicon.Tones {
		pct := 0.0
		if len(tones) > 0 {
			pct = float64(counts[t]) / float64(len(tones)) * 100
		}
		percentages[t] = round1(pct)
	}

	p := Profile{
		ToneSequence:    tones,
		ToneCounts:      counts,
		TonePercentages: percentages,
		Alternation:     alternationScore(tones),
		Findings:        euphonyFindings(chars, pinyin),
	}
	p.Suggestions = suggestions(p)
	return p
}

// alternationScore rates level/oblique alternation over adjacent pairs.
// A one-character sequence scores 100: there is nothing to alternate.
func alternationScore(tones []Tone) float64 {
	if len(tones) < 2 {
		return 100
	}
	earned := 0
	for i := 0; i < len(tones)-1; i++ {
		cur, next := tones[i] == lexicon.ToneLevel, tones[i+1] == lexicon.ToneLevel
		switch {
		case cur != next:
			earned += 25
		case !cur && !next:
			earned += 15
		default:
			earned += 5
		}
	}
	max := 25 * (len(tones) - 1)
	return round1(float64(earned) / float64(max) * 100)
}

// euphonyFindings detects alliteration, assonance and confusable-initial
// clusters between adjacent characters.
func euphonyFindings(chars, pinyin []string) []Finding {
	var findings []Finding
	for i := 0; i < len(pinyin)-1; i++ {
		cur, next := pinyin[i], pinyin[i+1]
		if cur == "" || next == "" {
			continue
		}
		pair := chars[i] + chars[i+1]

		curInit, nextInit := initialOf(cur), initialOf(next)
		if curInit != "" && curInit == nextInit {
			findings = append(findings, Finding{Kind: "alliteration", Chars: pair})
			if _, confusable := confusableInitials[curInit]; confusable {
				findings = append(findings, Finding{Kind: "hard_to_pronounce", Chars: pair})
			}
		} else if confusableInitials[curInit] == nextInit && nextInit != "" {
			findings = append(findings, Finding{Kind: "hard_to_pronounce", Chars: pair})
		}

		curVowel, nextVowel := finalOf(cur), finalOf(next)
		if curVowel != "" && nextVowel != "" && curVowel[len(curVowel)-1] == nextVowel[len(nextVowel)-1] {
			findings = append(findings, Finding{Kind: "assonance", Chars: pair})
		}
	}
	return findings
}

// initialOf extracts the initial consonant cluster of a pinyin code.
func initialOf(pinyin string) string {
	lower := strings.ToLower(pinyin)
	for _, two := range []string{"zh", "ch", "sh"} {
		if strings.HasPrefix(lower, two) {
			return two
		}
	}
	if len(lower) == 0 {
		return ""
	}
	first := rune(lower[0])
	if unicode.IsLetter(first) && !strings.ContainsRune("aeiouü", first) {
		return string(first)
	}
	return ""
}

// finalOf extracts the vowel portion of a pinyin code.
func finalOf(pinyin string) string {
	var vowels strings.Builder
	for _, r := range strings.ToLower(pinyin) {
		if strings.ContainsRune("aeiouü", r) {
			vowels.WriteRune(r)
		}
	}
	return vowels.String()
}

func suggestions(p Profile) []string {
	var out []string
	if p.TonePercentages[lexicon.ToneLevel] > 70 {
		out = append(out, "mostly level tones; an oblique tone would add rhythmic variety")
	} else if p.TonePercentages[lexicon.ToneLevel] < 30 {
		out = append(out, "few level tones; a level tone would soften the rhythm")
	}
	if p.Alternation < 60 {
		out = append(out, "tones do not alternate well; consider reordering or swapping characters")
	}
	for _, f := range p.Findings {
		switch f.Kind {
		case "alliteration":
			out = append(out, fmt.Sprintf("alliteration in %q", f.Chars))
		case "assonance":
			out = append(out, fmt.Sprintf("assonance in %q", f.Chars))
		case "hard_to_pronounce":
			out = append(out, fmt.Sprintf("%q pairs confusable initials and may be hard to pronounce", f.Chars))
		}
	}
	return out
}

// GetScore rates a profile: alternation weighted 70%, tone balance 30%.
func (a *Analyzer) GetScore(p Profile) Score {
	values := make([]float64, 0, 4)
	for _, t := range lexicon.Tones {
		values = append(values, p.TonePercentages[t])
	}
	variance := stat.Variance(values, nil)
	// stat.Variance is sample variance; the policy counts all four buckets.
	variance *= float64(len(values)-1) / float64(len(values))
	toneBalance := math.Max(0, 100-variance*2)

	total := round1(p.Alternation*0.7 + toneBalance*0.3)
	return Score{
		Total:       total,
		Rhythm:      p.Alternation,
		ToneBalance: round1(toneBalance),
		Grade:       gradeFor(total),
	}
}

func gradeFor(total float64) string {
	switch {
	case total >= 80:
		return "A"
	case total >= 70:
		return "B"
	case total >= 60:
		return "C"
	default:
		return "D"
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
