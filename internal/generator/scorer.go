package generator

import (
	"math"

	"poemnames/domain/lexicon"
	"poemnames/domain/naming"
)

// Composite weights. The five weighted axes sum to 1; the two bonus terms
// ride on top and genderBonus may go negative.
const (
	weightElemental = 0.25
	weightPhonology = 0.20
	weightLexical   = 0.30
	weightLength    = 0.15
	weightPair      = 0.10
)

// neutralCharScore stands in for characters absent from the lexicon:
// scored, not excluded, so small lexicons still produce names.
const neutralCharScore = 50.0

// scoreCandidate computes the composite score for a character sequence.
// Deterministic for a fixed lexicon, sequence and target gender; all
// randomness stays in candidate selection.
func (g *Generator) scoreCandidate(chars []string, gender lexicon.Gender) naming.CompositeScore {
	elementalProfile := g.elements.Analyze(chars)
	phonologyProfile := g.phonology.Analyze(chars, nil)

	score := naming.CompositeScore{
		Elemental:      elementalProfile.BalanceScore,
		Phonological:   phonologyProfile.Alternation,
		LexicalQuality: g.lexicalQuality(chars, gender),
		LengthFitness:  lengthFitness(len(chars)),
		PairHarmony:    g.pairHarmony(chars),
		DiversityBonus: g.diversityBonus(chars),
		GenderBonus:    g.genderConsistencyBonus(chars, gender),
	}

	total := weightElemental*score.Elemental +
		weightPhonology*score.Phonological +
		weightLexical*score.LexicalQuality +
		weightLength*score.LengthFitness +
		weightPair*score.PairHarmony +
		score.DiversityBonus + score.GenderBonus

	score.Total = round1(total)
	score.Grade = naming.GradeFor(score.Total)
	return score
}

// lexicalQuality averages per-character quality: a diminishing-returns
// frequency transform scaled by word category, plus tag and affinity
// adjustments, minus a geometric repetition penalty within the same name.
func (g *Generator) lexicalQuality(chars []string, gender lexicon.Gender) float64 {
	if len(chars) == 0 {
		return 0
	}
	uses := map[string]int{}
	sum := 0.0
	for _, ch := range chars {
		entry, ok := g.lex.Lookup(ch)
		if !ok {
			sum += neutralCharScore
			continue
		}

		base := 30 + math.Min(40, 8*math.Log1p(float64(entry.Frequency)))
		switch categoryOf(entry) {
		case CategoryFunction:
			base *= 0.4
		case CategoryContent:
			base *= 1.4
		}

		tagCount := len(entry.Tags)
		if tagCount > 4 {
			tagCount = 4
		}
		base += float64(4 * tagCount)
		base += affinityAdjustment(entry, gender)

		if n := uses[ch]; n > 0 {
			base -= 12 * (1 - math.Pow(0.5, float64(n)))
		}
		uses[ch]++

		sum += clamp(base, 0, 100)
	}
	return round1(sum / float64(len(chars)))
}

// affinityAdjustment rewards a match with the requested gender and
// penalizes opposition, scaled by affinity strength.
func affinityAdjustment(e lexicon.Entry, gender lexicon.Gender) float64 {
	if gender == lexicon.GenderNeutral || e.Gender == lexicon.GenderNeutral {
		return 0
	}
	step := 1.0
	switch e.Affinity {
	case lexicon.AffinityMedium:
		step = 2
	case lexicon.AffinityStrong:
		step = 3
	}
	if e.Gender == gender {
		return 4 * step
	}
	return -6 * step
}

// lengthFitness is a fixed lookup: two characters is the sweet spot.
func lengthFitness(length int) float64 {
	switch length {
	case 2:
		return 100
	case 1, 3:
		return 70
	default:
		return 40
	}
}

// pairHarmony averages pairwise compatibility over all unordered pairs:
// elemental kinship, shared tags, and comparable frequency magnitudes.
// A single-character name has no pairs and scores the neutral midpoint.
func (g *Generator) pairHarmony(chars []string) float64 {
	type resolved struct {
		entry lexicon.Entry
		ok    bool
	}
	entries := make([]resolved, len(chars))
	for i, ch := range chars {
		e, ok := g.lex.Lookup(ch)
		entries[i] = resolved{entry: e, ok: ok}
	}

	sum, pairs := 0.0, 0
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			pairs++
			if !entries[i].ok || !entries[j].ok {
				sum += neutralCharScore
				continue
			}
			sum += pairScore(entries[i].entry, entries[j].entry)
		}
	}
	if pairs == 0 {
		return neutralCharScore
	}
	return round1(sum / float64(pairs))
}

func pairScore(a, b lexicon.Entry) float64 {
	score := 50.0

	switch {
	case a.Element != lexicon.ElementUnknown && a.Element == b.Element:
		score += 20
	case lexicon.Generates[a.Element] == b.Element || lexicon.Generates[b.Element] == a.Element:
		score += 15
	case lexicon.Suppresses[a.Element] == b.Element || lexicon.Suppresses[b.Element] == a.Element:
		score -= 15
	}

	shared := 0
	for _, tag := range a.Tags {
		for _, other := range b.Tags {
			if tag == other {
				shared++
			}
		}
	}
	if shared > 2 {
		shared = 2
	}
	score += float64(10 * shared)

	if math.Abs(math.Log1p(float64(a.Frequency))-math.Log1p(float64(b.Frequency))) < 0.7 {
		score += 10
	}
	return clamp(score, 0, 100)
}

// diversityBonus rewards names spanning several semantic buckets, dense in
// content words, or carrying deep classical tags. Capped at 10.
func (g *Generator) diversityBonus(chars []string) float64 {
	buckets := map[string]bool{}
	content, cultural := 0, 0
	resolved := 0
	for _, ch := range chars {
		entry, ok := g.lex.Lookup(ch)
		if !ok {
			continue
		}
		resolved++
		for _, b := range bucketsOf(entry) {
			buckets[b] = true
		}
		if categoryOf(entry) == CategoryContent {
			content++
		}
		if hasDeepCulturalTag(entry) {
			cultural++
		}
	}
	if resolved == 0 {
		return 0
	}

	bonus := math.Min(6, float64(2*len(buckets)))
	bonus += 2 * float64(content) / float64(resolved)
	bonus += math.Min(2, float64(cultural))
	return round1(math.Min(10, bonus))
}

// genderConsistencyBonus tracks how much of the name agrees with the
// requested gender; consistently opposing characters drive it negative.
func (g *Generator) genderConsistencyBonus(chars []string, gender lexicon.Gender) float64 {
	if gender == lexicon.GenderNeutral {
		return 0
	}
	resolved, matches, strong, opposing := 0, 0, 0, 0
	for _, ch := range chars {
		entry, ok := g.lex.Lookup(ch)
		if !ok || entry.Gender == lexicon.GenderNeutral {
			continue
		}
		resolved++
		if entry.Gender == gender {
			matches++
			if entry.Affinity == lexicon.AffinityStrong {
				strong++
			}
		} else {
			opposing++
		}
	}
	if resolved == 0 {
		return 0
	}
	bonus := float64(matches)/float64(resolved)*8 +
		float64(2*strong) -
		float64(opposing)/float64(resolved)*8
	return round1(bonus)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
