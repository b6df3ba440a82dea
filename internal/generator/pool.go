package generator

import (
	"sort"

	"poemnames/domain/lexicon"
	"poemnames/domain/naming"
)

// buildPool partitions the lexicon into gender-affinity tiers and applies
// preference filters. The returned slice is deterministically ordered
// (frequency descending, character ascending) so that a fixed RNG seed
// yields a fixed output.
func (g *Generator) buildPool(gender lexicon.Gender, prefs naming.Preferences) []lexicon.Entry {
	entries := g.lex.All()
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Frequency != entries[j].Frequency {
			return entries[i].Frequency > entries[j].Frequency
		}
		return entries[i].Character < entries[j].Character
	})

	pool := g.tieredPool(entries, gender)
	pool = g.applyPreferences(pool, prefs)
	return pool
}

// tieredPool stacks strong/medium affinity matches first, weak matches
// next, then neutral characters under a ceiling. Opposite-affinity
// characters never enter the pool; undersized pools are remedied with a
// deeper neutral backfill instead.
func (g *Generator) tieredPool(entries []lexicon.Entry, gender lexicon.Gender) []lexicon.Entry {
	if gender == lexicon.GenderNeutral {
		return entries
	}

	var primary, weak, neutral []lexicon.Entry
	for _, e := range entries {
		switch {
		case e.Gender == gender && (e.Affinity == lexicon.AffinityStrong || e.Affinity == lexicon.AffinityMedium):
			primary = append(primary, e)
		case e.Gender == gender:
			weak = append(weak, e)
		case e.Gender == lexicon.GenderNeutral:
			neutral = append(neutral, e)
		}
	}

	pool := append(primary, weak...)
	if len(pool) > g.cfg.AffinityCeiling {
		pool = pool[:g.cfg.AffinityCeiling]
	}

	neutralCap := len(pool)
	if len(pool) < g.cfg.MinPool {
		neutralCap = g.cfg.NeutralCeiling - len(pool)
	}
	if neutralCap > len(neutral) {
		neutralCap = len(neutral)
	}
	return append(pool, neutral[:neutralCap]...)
}

// applyPreferences runs each filter with the relax-on-starvation policy:
// a filter leaving fewer than RelaxThreshold candidates is dropped
// entirely rather than producing a degenerate pool.
func (g *Generator) applyPreferences(pool []lexicon.Entry, prefs naming.Preferences) []lexicon.Entry {
	pool = g.relaxed(pool, g.toneFilter(prefs.TonePreference))
	pool = g.relaxed(pool, g.tagFilter(prefs.MeaningTags))
	pool = g.relaxed(pool, g.requiredElementFilter(prefs.Required))
	pool = g.relaxed(pool, g.avoidedElementFilter(prefs.Avoided))
	return pool
}

type entryFilter func(lexicon.Entry) bool

func (g *Generator) relaxed(pool []lexicon.Entry, keep entryFilter) []lexicon.Entry {
	if keep == nil {
		return pool
	}
	filtered := make([]lexicon.Entry, 0, len(pool))
	for _, e := range pool {
		if keep(e) {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) < g.cfg.RelaxThreshold {
		g.log.Debug("preference filter relaxed: %d candidates below threshold %d", len(filtered), g.cfg.RelaxThreshold)
		return pool
	}
	return filtered
}

func (g *Generator) toneFilter(pref string) entryFilter {
	switch pref {
	case "ping":
		return func(e lexicon.Entry) bool { return e.Tone() == lexicon.ToneLevel }
	case "ze":
		return func(e lexicon.Entry) bool {
			t := e.Tone()
			return t == lexicon.ToneRising || t == lexicon.ToneDeparting
		}
	default:
		return nil
	}
}

func (g *Generator) tagFilter(tags []string) entryFilter {
	if len(tags) == 0 {
		return nil
	}
	return func(e lexicon.Entry) bool { return e.HasAnyTag(tags) }
}

func (g *Generator) requiredElementFilter(required []lexicon.Element) entryFilter {
	if len(required) == 0 {
		return nil
	}
	want := make(map[lexicon.Element]bool, len(required))
	for _, el := range required {
		want[el] = true
	}
	return func(e lexicon.Entry) bool { return want[e.Element] }
}

func (g *Generator) avoidedElementFilter(avoided []lexicon.Element) entryFilter {
	if len(avoided) == 0 {
		return nil
	}
	skip := make(map[lexicon.Element]bool, len(avoided))
	for _, el := range avoided {
		skip[el] = true
	}
	return func(e lexicon.Entry) bool { return !skip[e.Element] }
}
