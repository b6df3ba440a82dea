package elemental

import "poemnames/domain/lexicon"

// Trigram is one of the eight symbolic direction associations.
type Trigram struct {
	Name      string  `json:"name"`
	Direction string  `json:"direction"`
	Element   Element `json:"element"`
	Meaning   string  `json:"meaning"`
}

// The eight trigram-to-direction associations, fixed folklore data.
var trigrams = []Trigram{
	{Name: "qian", Direction: "northwest", Element: lexicon.ElementMetal, Meaning: "heaven, leadership"},
	{Name: "kun", Direction: "southwest", Element: lexicon.ElementEarth, Meaning: "earth, receptivity"},
	{Name: "zhen", Direction: "east", Element: lexicon.ElementWood, Meaning: "thunder, initiative"},
	{Name: "xun", Direction: "southeast", Element: lexicon.ElementWood, Meaning: "wind, subtlety"},
	{Name: "li", Direction: "south", Element: lexicon.ElementFire, Meaning: "fire, clarity"},
	{Name: "kan", Direction: "north", Element: lexicon.ElementWater, Meaning: "water, depth"},
	{Name: "gen", Direction: "northeast", Element: lexicon.ElementEarth, Meaning: "mountain, stillness"},
	{Name: "dui", Direction: "west", Element: lexicon.ElementMetal, Meaning: "lake, joy"},
}

// DirectionSuggestion recommends one trigram direction for a name.
type DirectionSuggestion struct {
	Trigram  Trigram `json:"trigram"`
	Element  Element `json:"element"`
	Priority string  `json:"priority"` // "high" | "medium"
}

// DirectionHint is a favorable or unfavorable direction with its cause.
type DirectionHint struct {
	Trigram Trigram `json:"trigram"`
	Element Element `json:"element"`
}

// DirectionalHints are the symbolic direction recommendations derived from
// a five-phase profile. UX sugar on top of the profile, no effect on scores.
type DirectionalHints struct {
	Suggestions []DirectionSuggestion `json:"suggestions"`
	Favorable   []DirectionHint       `json:"favorable"`
	Unfavorable []DirectionHint       `json:"unfavorable"`
}

// SuggestDirections maps missing or dominant categories to trigram
// directions. Filling the most critical missing categories wins; with
// nothing missing, the dominant category is reinforced.
func (a *Analyzer) SuggestDirections(p Profile) DirectionalHints {
	var hints DirectionalHints

	missing := make([]Element, 0, 5)
	for _, el := range lexicon.Elements {
		if p.Counts[el] == 0 {
			missing = append(missing, el)
		}
	}

	if len(missing) > 0 {
		limit := len(missing)
		if limit > 2 {
			limit = 2
		}
		for _, el := range missing[:limit] {
			if tg, ok := bestTrigramFor(el, p.Counts); ok {
				hints.Suggestions = append(hints.Suggestions, DirectionSuggestion{
					Trigram: tg, Element: el, Priority: "high",
				})
			}
		}
	} else if dominant, ok := strongestElement(p.Counts); ok {
		if tg, ok := bestTrigramFor(dominant, p.Counts); ok {
			hints.Suggestions = append(hints.Suggestions, DirectionSuggestion{
				Trigram: tg, Element: dominant, Priority: "medium",
			})
		}
	}

	for _, tg := range trigrams {
		if p.Counts[tg.Element] > 0 && len(hints.Favorable) < 2 {
			hints.Favorable = append(hints.Favorable, DirectionHint{Trigram: tg, Element: tg.Element})
		}
		if p.Counts[tg.Element] == 0 && len(hints.Unfavorable) < 2 {
			hints.Unfavorable = append(hints.Unfavorable, DirectionHint{Trigram: tg, Element: tg.Element})
		}
	}
	return hints
}

// bestTrigramFor picks the highest-rated trigram carrying the target element.
func bestTrigramFor(target Element, counts map[Element]int) (Trigram, bool) {
	best := Trigram{}
	bestScore := -1
	for _, tg := range trigrams {
		if tg.Element != target {
			continue
		}
		score := trigramScore(tg, counts)
		if score > bestScore {
			best, bestScore = tg, score
		}
	}
	return best, bestScore >= 0
}

// trigramScore: 10 base, +20 if the element is missing from the name,
// +15 if it holds under a fifth of the resolved characters.
func trigramScore(tg Trigram, counts map[Element]int) int {
	score := 10
	if counts[tg.Element] == 0 {
		score += 20
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	if total > 0 && float64(counts[tg.Element])/float64(total) < 0.2 {
		score += 15
	}
	return score
}

func strongestElement(counts map[Element]int) (Element, bool) {
	best := lexicon.ElementUnknown
	bestCount := 0
	for _, el := range lexicon.Elements {
		if counts[el] > bestCount {
			best, bestCount = el, counts[el]
		}
	}
	return best, bestCount > 0
}
