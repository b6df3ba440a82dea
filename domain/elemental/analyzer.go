package elemental

import (
	"math"

	"github.com/montanaflynn/stats"

	"poemnames/domain/lexicon"
)

// Finding describes one generative or destructive relation present in a name.
type Finding struct {
	From Element `json:"from"`
	To   Element `json:"to"`
	Kind string  `json:"kind"` // "generative" | "destructive"
}

// Element aliases the lexicon category for readability in this package.
type Element = lexicon.Element

// Profile is the five-phase distribution of one character sequence.
// It is a pure function of the sequence and is recomputed per request.
type Profile struct {
	Counts       map[Element]int     `json:"counts"`
	Percentages  map[Element]float64 `json:"percentages"`
	TotalChars   int                 `json:"total_chars"`
	Resolved     int                 `json:"resolved"`
	BalanceScore float64             `json:"balance_score"`
	Findings     []Finding           `json:"findings"`
	AddElements  []Element           `json:"add_elements"`
	Concentrated []Element           `json:"concentrated"`
}

// Score is the headline five-phase rating for a profile.
type Score struct {
	Total        float64 `json:"total"`
	Balance      float64 `json:"balance"`
	Completeness float64 `json:"completeness"`
	Grade        string  `json:"grade"`
}

// Analyzer computes five-phase balance over a shared read-only lexicon.
type Analyzer struct {
	lex *lexicon.Lexicon
}

// New creates an analyzer bound to a lexicon.
func New(lex *lexicon.Lexicon) *Analyzer {
	return &Analyzer{lex: lex}
}

// Analyze computes the elemental profile of an ordered character sequence.
// Characters missing from the lexicon count toward TotalChars and the
// percentage denominator; they simply contribute to no category.
func (a *Analyzer) Analyze(chars []string) Profile {
	counts := make(map[Element]int, 5)
	resolved := 0
	for _, ch := range chars {
		entry, ok := a.lex.Lookup(ch)
		if !ok || entry.Element == lexicon.ElementUnknown {
			continue
		}
		counts[entry.Element]++
		resolved++
	}

	total := len(chars)
	percentages := make(map[Element]float64, 5)
	for _, el := range lexicon.Elements {
		pct := 0.0
		if total > 0 {
			pct = float64(counts[el]) / float64(total) * 100
		}
		percentages[el] = round1(pct)
	}

	p := Profile{
		Counts:      counts,
		Percentages: percentages,
		TotalChars:  total,
		Resolved:    resolved,
	}
	p.BalanceScore = a.balanceScore(counts, total)
	p.Findings = relationFindings(counts)
	p.AddElements, p.Concentrated = recommendations(counts, total)
	return p
}

// balanceScore combines completeness (40), evenness (40) and harmony (20).
// An all-unknown sequence keeps the full evenness term: zero counts are a
// perfectly flat distribution, not a failure.
func (a *Analyzer) balanceScore(counts map[Element]int, total int) float64 {
	if total == 0 {
		return 0
	}

	present := 0
	for _, el := range lexicon.Elements {
		if counts[el] > 0 {
			present++
		}
	}
	completeness := float64(present) / 5 * 40

	proportions := make([]float64, 0, 5)
	for _, el := range lexicon.Elements {
		proportions = append(proportions, float64(counts[el])/float64(total))
	}
	stdDev, err := stats.StandardDeviation(proportions)
	if err != nil {
		stdDev = 0
	}
	evenness := math.Max(0, 40-stdDev*100)

	harmony := harmonyScore(counts)

	return round1(math.Min(100, completeness+evenness+harmony))
}

// harmonyScore rewards generative chains and diversity, and penalizes a
// sequence once more than two destructive pairs co-occur. Clamped to [0,20].
func harmonyScore(counts map[Element]int) float64 {
	present := make(map[Element]bool, 5)
	for el, c := range counts {
		if c > 0 {
			present[el] = true
		}
	}
	if len(present) == 0 {
		return 0
	}

	chains := 0
	for el := range present {
		if present[lexicon.Generates[el]] {
			chains++
		}
	}
	conflicts := 0
	for el := range present {
		if present[lexicon.Suppresses[el]] {
			conflicts++
		}
	}

	score := float64(chains*2 + (len(present) - 1))
	if conflicts > 2 {
		score -= float64(conflicts - 2)
	}
	return math.Max(0, math.Min(20, score))
}

func relationFindings(counts map[Element]int) []Finding {
	var findings []Finding
	for _, el := range lexicon.Elements {
		if counts[el] == 0 {
			continue
		}
		if target := lexicon.Generates[el]; counts[target] > 0 {
			findings = append(findings, Finding{From: el, To: target, Kind: "generative"})
		}
		if target := lexicon.Suppresses[el]; counts[target] > 0 {
			findings = append(findings, Finding{From: el, To: target, Kind: "destructive"})
		}
	}
	return findings
}

// recommendations lists absent categories to add and categories holding
// more than 40% of the characters.
func recommendations(counts map[Element]int, total int) (add, concentrated []Element) {
	for _, el := range lexicon.Elements {
		if counts[el] == 0 {
			add = append(add, el)
		}
	}
	if total > 0 {
		for _, el := range lexicon.Elements {
			if float64(counts[el]) > float64(total)*0.4 {
				concentrated = append(concentrated, el)
			}
		}
	}
	return add, concentrated
}

// GetScore rates a profile: balance weighted 60%, completeness 40%.
func (a *Analyzer) GetScore(p Profile) Score {
	present := 0
	for _, el := range lexicon.Elements {
		if p.Counts[el] > 0 {
			present++
		}
	}
	completeness := float64(present) / 5 * 100
	total := round1(p.BalanceScore*0.6 + completeness*0.4)

	return Score{
		Total:        total,
		Balance:      p.BalanceScore,
		Completeness: completeness,
		Grade:        gradeFor(total),
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
