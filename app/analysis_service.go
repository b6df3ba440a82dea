package app

import (
	"poemnames/domain/almanac"
	"poemnames/domain/elemental"
	"poemnames/domain/naming"
	"poemnames/domain/phonology"
)

// AnalysisService exposes the standalone analyzers for direct inspection of
// an existing name, outside the generation pipeline.
type AnalysisService struct {
	elements  *elemental.Analyzer
	phonology *phonology.Analyzer
}

func NewAnalysisService(elements *elemental.Analyzer, phon *phonology.Analyzer) *AnalysisService {
	return &AnalysisService{elements: elements, phonology: phon}
}

// ElementReport bundles the elemental profile with its score and
// directional hints.
type ElementReport struct {
	Profile elemental.Profile          `json:"profile"`
	Score   elemental.Score            `json:"score"`
	Hints   elemental.DirectionalHints `json:"hints"`
}

// Elements analyzes the five-phase makeup of a full name.
func (s *AnalysisService) Elements(fullName, surname string) ElementReport {
	chars := analysisChars(fullName, surname)
	profile := s.elements.Analyze(chars)
	return ElementReport{
		Profile: profile,
		Score:   s.elements.GetScore(profile),
		Hints:   s.elements.SuggestDirections(profile),
	}
}

// PhonologyReport bundles the tonal profile with its score.
type PhonologyReport struct {
	Profile phonology.Profile `json:"profile"`
	Score   phonology.Score   `json:"score"`
}

// Phonology analyzes the tonal pattern of a full name.
func (s *AnalysisService) Phonology(fullName, surname string) PhonologyReport {
	chars := analysisChars(fullName, surname)
	profile := s.phonology.Analyze(chars, nil)
	return PhonologyReport{
		Profile: profile,
		Score:   s.phonology.GetScore(profile),
	}
}

// Context evaluates birth-context signals into elemental guidance.
func (s *AnalysisService) Context(input almanac.Input) almanac.Context {
	return almanac.Analyze(input)
}

// analysisChars splits a name into characters, dropping the surname when
// one is supplied so analysis covers the given name only when asked.
func analysisChars(fullName, surname string) []string {
	if surname != "" {
		return naming.SplitFullName(fullName, surname)
	}
	chars := make([]string, 0, len(fullName))
	for _, r := range fullName {
		chars = append(chars, string(r))
	}
	return chars
}
