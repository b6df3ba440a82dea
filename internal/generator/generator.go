package generator

import (
	"context"
	"sort"
	"strings"

	"poemnames/domain/elemental"
	"poemnames/domain/lexicon"
	"poemnames/domain/naming"
	"poemnames/domain/phonology"
	"poemnames/internal"
	"poemnames/internal/config"
	"poemnames/ports"
)

// Rejection probabilities for the per-slot sampling heuristics.
const (
	rejectDuplicateChar = 0.9 // same character already placed in this name
	rejectFunctionWord  = 0.8 // function word already used once this request
	rejectOverusedChar  = 0.7 // high-frequency character used more than twice
	rejectNeutralWord   = 0.3 // mild bias toward content words
)

// highFrequency marks characters common enough that repetition across one
// request's output reads monotonous.
const highFrequency = 500

// Generator synthesizes scored name candidates from the lexicon. It holds
// no per-request state: the target gender and every other request value is
// threaded through parameters, so one Generator serves concurrent requests
// against the shared read-only lexicon.
type Generator struct {
	lex       *lexicon.Lexicon
	elements  *elemental.Analyzer
	phonology *phonology.Analyzer
	cfg       config.GeneratorConfig
	rng       ports.RNGPort
	log       *internal.Logger
}

// New creates a generator over a lexicon.
func New(lex *lexicon.Lexicon, cfg config.GeneratorConfig, rng ports.RNGPort, log *internal.Logger) *Generator {
	return &Generator{
		lex:       lex,
		elements:  elemental.New(lex),
		phonology: phonology.New(lex),
		cfg:       cfg,
		rng:       rng,
		log:       log,
	}
}

// Elements exposes the shared elemental analyzer for annotation reuse.
func (g *Generator) Elements() *elemental.Analyzer { return g.elements }

// Phonology exposes the shared phonological analyzer.
func (g *Generator) Phonology() *phonology.Analyzer { return g.phonology }

// Generate produces up to req.Count scored, de-duplicated candidates.
// An empty pool yields an empty, non-error result; only malformed request
// parameters are reported as errors.
func (g *Generator) Generate(ctx context.Context, req naming.Request) ([]naming.Candidate, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pool := g.buildPool(req.Gender, req.Preferences)
	if len(pool) == 0 {
		g.log.Info("empty character pool for gender=%s; returning no candidates", req.Gender)
		return []naming.Candidate{}, nil
	}

	rng, err := g.rng.SeededStream(ctx, "generate", req.Seed)
	if err != nil {
		return nil, err
	}

	nonFunction := make([]int, 0, len(pool))
	for i, e := range pool {
		if !e.FunctionWord {
			nonFunction = append(nonFunction, i)
		}
	}

	target := candidateCap(req.Count)
	maxAttempts := target * 10
	if maxAttempts > 1000 {
		maxAttempts = 1000
	}

	usage := map[string]int{} // per-request character usage across candidates
	seen := map[string]bool{} // multiset keys already produced
	var raw [][]string

	for attempt := 0; attempt < maxAttempts && len(raw) < target; attempt++ {
		chars := g.pickChars(rng, pool, nonFunction, req.Length, usage)

		key := naming.MultisetKey(chars)
		if len(raw) >= req.Count && seen[key] {
			continue
		}
		seen[key] = true
		for _, ch := range chars {
			usage[ch]++
		}
		raw = append(raw, chars)
	}

	return g.rank(raw, req), nil
}

// pickChars fills the name's slots by rejection sampling, falling back to
// an unconditional non-function-word pick when a slot's budget runs out.
// Generation never deadlocks.
func (g *Generator) pickChars(rng randSource, pool []lexicon.Entry, nonFunction []int, length int, usage map[string]int) []string {
	chars := make([]string, 0, length)
	inName := map[string]bool{}

	for slot := 0; slot < length; slot++ {
		picked := ""
		for try := 0; try < g.cfg.SlotAttempts; try++ {
			entry := pool[rng.Intn(len(pool))]
			if g.rejects(rng, entry, inName, usage) {
				continue
			}
			picked = entry.Character
			break
		}
		if picked == "" {
			if len(nonFunction) > 0 {
				picked = pool[nonFunction[rng.Intn(len(nonFunction))]].Character
			} else {
				picked = pool[rng.Intn(len(pool))].Character
			}
		}
		chars = append(chars, picked)
		inName[picked] = true
	}
	return chars
}

// rejects applies the probabilistic diversity heuristics to one draw.
func (g *Generator) rejects(rng randSource, entry lexicon.Entry, inName map[string]bool, usage map[string]int) bool {
	if inName[entry.Character] && rng.Float64() < rejectDuplicateChar {
		return true
	}
	if entry.FunctionWord && usage[entry.Character] >= 1 && rng.Float64() < rejectFunctionWord {
		return true
	}
	if entry.Frequency > highFrequency && usage[entry.Character] > 2 && rng.Float64() < rejectOverusedChar {
		return true
	}
	if categoryOf(entry) == CategoryNeutral && rng.Float64() < rejectNeutralWord {
		return true
	}
	return false
}

// randSource is the subset of *rand.Rand the generator draws from.
type randSource interface {
	Intn(n int) int
	Float64() float64
}

// rank scores every raw candidate, orders by composite score, and drops
// names already in the user's history or earlier in this output.
func (g *Generator) rank(raw [][]string, req naming.Request) []naming.Candidate {
	candidates := make([]naming.Candidate, 0, len(raw))
	for _, chars := range raw {
		c := naming.Candidate{
			Surname:   req.Surname,
			Chars:     chars,
			GivenName: strings.Join(chars, ""),
			Gender:    req.Gender,
			Score:     g.scoreCandidate(chars, req.Gender),
		}
		candidates = append(candidates, c)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score.Total != candidates[j].Score.Total {
			return candidates[i].Score.Total > candidates[j].Score.Total
		}
		return candidates[i].GivenName < candidates[j].GivenName
	})

	delivered := map[string]bool{}
	out := make([]naming.Candidate, 0, req.Count)
	for _, c := range candidates {
		full := c.FullName()
		if delivered[full] || req.UserHistory[full] {
			continue
		}
		delivered[full] = true

		c.Elemental = g.elements.Analyze(c.Chars)
		c.Phonology = g.phonology.Analyze(c.Chars, nil)
		c.Hints = g.elements.SuggestDirections(c.Elemental)
		c.Meaning = g.meaningOf(c.Chars)
		c.Tags = g.tagsOf(c.Chars)

		out = append(out, c)
		if len(out) == req.Count {
			break
		}
	}
	return out
}

// candidateCap sizes the internal raw-candidate buffer: larger than the
// requested output so downstream dedup has room, bounded on both ends.
func candidateCap(count int) int {
	n := count * 3
	if n < 24 {
		n = 24
	}
	if n > 60 {
		n = 60
	}
	return n
}

// meaningOf joins up to three per-character meanings.
func (g *Generator) meaningOf(chars []string) string {
	var meanings []string
	for _, ch := range chars {
		if entry, ok := g.lex.Lookup(ch); ok && entry.Meaning != "" {
			meanings = append(meanings, entry.Meaning)
			if len(meanings) == 3 {
				break
			}
		}
	}
	if len(meanings) == 0 {
		return "poetic name"
	}
	return strings.Join(meanings, "、")
}

// tagsOf collects up to five distinct tags across the name's characters.
func (g *Generator) tagsOf(chars []string) []string {
	seen := map[string]bool{}
	var tags []string
	for _, ch := range chars {
		entry, ok := g.lex.Lookup(ch)
		if !ok {
			continue
		}
		for _, tag := range entry.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
				if len(tags) == 5 {
					return tags
				}
			}
		}
	}
	return tags
}
