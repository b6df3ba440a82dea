package almanac

import (
	"strings"

	"poemnames/domain/lexicon"
)

// Element aliases the lexicon category for readability in this package.
type Element = lexicon.Element

// Zodiac animal to element, the fixed twelve-entry cycle.
var zodiacElements = map[string]Element{
	"rat":     lexicon.ElementWater,
	"ox":      lexicon.ElementEarth,
	"tiger":   lexicon.ElementWood,
	"rabbit":  lexicon.ElementWood,
	"dragon":  lexicon.ElementEarth,
	"snake":   lexicon.ElementFire,
	"horse":   lexicon.ElementFire,
	"goat":    lexicon.ElementEarth,
	"monkey":  lexicon.ElementMetal,
	"rooster": lexicon.ElementMetal,
	"dog":     lexicon.ElementEarth,
	"pig":     lexicon.ElementWater,
}

// Two-hour period name to element, the fixed twelve-entry cycle.
var periodElements = map[string]Element{
	"zi":   lexicon.ElementWater, // 23:00-01:00
	"chou": lexicon.ElementEarth, // 01:00-03:00
	"yin":  lexicon.ElementWood,  // 03:00-05:00
	"mao":  lexicon.ElementWood,  // 05:00-07:00
	"chen": lexicon.ElementEarth, // 07:00-09:00
	"si":   lexicon.ElementFire,  // 09:00-11:00
	"wu":   lexicon.ElementFire,  // 11:00-13:00
	"wei":  lexicon.ElementEarth, // 13:00-15:00
	"shen": lexicon.ElementMetal, // 15:00-17:00
	"you":  lexicon.ElementMetal, // 17:00-19:00
	"xu":   lexicon.ElementEarth, // 19:00-21:00
	"hai":  lexicon.ElementWater, // 21:00-23:00
}

// Lunar month to element, seasonal with earth closing each season.
var lunarMonthElements = map[int]Element{
	1: lexicon.ElementWood, 2: lexicon.ElementWood, 3: lexicon.ElementEarth,
	4: lexicon.ElementFire, 5: lexicon.ElementFire, 6: lexicon.ElementEarth,
	7: lexicon.ElementMetal, 8: lexicon.ElementMetal, 9: lexicon.ElementEarth,
	10: lexicon.ElementWater, 11: lexicon.ElementWater, 12: lexicon.ElementEarth,
}

// Solar month to element, simplified by season.
var solarMonthElements = map[int]Element{
	1: lexicon.ElementWater, 2: lexicon.ElementWood, 3: lexicon.ElementWood,
	4: lexicon.ElementWood, 5: lexicon.ElementFire, 6: lexicon.ElementFire,
	7: lexicon.ElementFire, 8: lexicon.ElementMetal, 9: lexicon.ElementMetal,
	10: lexicon.ElementMetal, 11: lexicon.ElementWater, 12: lexicon.ElementWater,
}

// Signal weights: zodiac dominates, then period, then month.
const (
	zodiacWeight = 1.0
	periodWeight = 0.8
	monthWeight  = 0.6
)

// Input carries the optional birth-context signals.
type Input struct {
	Zodiac string `json:"zodiac,omitempty"`
	Period string `json:"period,omitempty"`
	Month  int    `json:"month,omitempty"`
	Lunar  bool   `json:"lunar"`
}

// SignalInfo records how one input signal resolved.
type SignalInfo struct {
	Element Element `json:"element"`
	Weight  float64 `json:"weight"`
}

// Context is the combined birth-context analysis, usable as a generation
// constraint (recommended and avoided categories).
type Context struct {
	Signals     map[string]SignalInfo `json:"signals"`
	Dominant    Element               `json:"dominant"`
	Recommended []Element             `json:"recommended"`
	Avoided     []Element             `json:"avoided"`
}

// ZodiacElement resolves a zodiac animal name.
func ZodiacElement(animal string) (Element, bool) {
	el, ok := zodiacElements[strings.ToLower(animal)]
	return el, ok
}

// PeriodElement resolves a two-hour period name.
func PeriodElement(period string) (Element, bool) {
	el, ok := periodElements[strings.ToLower(period)]
	return el, ok
}

// MonthElement resolves a month number against the lunar or solar table.
func MonthElement(month int, lunar bool) (Element, bool) {
	if lunar {
		el, ok := lunarMonthElements[month]
		return el, ok
	}
	el, ok := solarMonthElements[month]
	return el, ok
}

// Analyze combines the provided signals into one dominant category via
// weighted counting, then recommends the dominant's generative target and
// avoids its destructive target. A missing category is recommended only
// when it is the dominant's generative target. All inputs are optional;
// with none resolvable the context is empty.
func Analyze(in Input) Context {
	weights := map[Element]float64{}
	signals := map[string]SignalInfo{}

	if in.Zodiac != "" {
		if el, ok := ZodiacElement(in.Zodiac); ok {
			weights[el] += zodiacWeight
			signals["zodiac"] = SignalInfo{Element: el, Weight: zodiacWeight}
		}
	}
	if in.Period != "" {
		if el, ok := PeriodElement(in.Period); ok {
			weights[el] += periodWeight
			signals["period"] = SignalInfo{Element: el, Weight: periodWeight}
		}
	}
	if in.Month != 0 {
		if el, ok := MonthElement(in.Month, in.Lunar); ok {
			weights[el] += monthWeight
			signals["month"] = SignalInfo{Element: el, Weight: monthWeight}
		}
	}

	ctx := Context{Signals: signals, Dominant: lexicon.ElementUnknown}
	if len(weights) == 0 {
		return ctx
	}

	// Canonical element order breaks weight ties deterministically.
	best := 0.0
	for _, el := range lexicon.Elements {
		if weights[el] > best {
			best = weights[el]
			ctx.Dominant = el
		}
	}

	// The generative target is recommended whether or not the inputs touch
	// it; an absent category earns a recommendation only through this rule.
	ctx.Recommended = append(ctx.Recommended, lexicon.Generates[ctx.Dominant])
	ctx.Avoided = append(ctx.Avoided, lexicon.Suppresses[ctx.Dominant])
	return ctx
}
