package excel

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"poemnames/domain/lexicon"
)

// Expected column order on the Words sheet. A header row is required; rows
// shorter than the character column are skipped.
const (
	colCharacter = iota
	colPinyin
	colElement
	colGender
	colAffinity
	colMeaning
	colTags
	colFrequency
	colFunctionWord
)

const wordsSheet = "Words"

// LexiconSource loads character entries from a curated workbook. It backs
// deployments that run without a word database.
type LexiconSource struct {
	filePath string
}

// NewLexiconSource creates a workbook-backed lexicon source
func NewLexiconSource(filePath string) *LexiconSource {
	return &LexiconSource{filePath: filePath}
}

// LoadEntries reads every character row from the Words sheet.
func (s *LexiconSource) LoadEntries(ctx context.Context) ([]lexicon.Entry, error) {
	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("lexicon workbook not found: %s", s.filePath)
	}

	f, err := excelize.OpenFile(s.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open lexicon workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(wordsSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", wordsSheet, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %s must have a header row and at least one data row", wordsSheet)
	}

	entries := make([]lexicon.Entry, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) <= colCharacter || strings.TrimSpace(row[colCharacter]) == "" {
			continue
		}
		entry := lexicon.Entry{
			Character: strings.TrimSpace(row[colCharacter]),
			Pinyin:    cell(row, colPinyin),
			Element:   lexicon.ParseElement(cell(row, colElement)),
			Affinity:  lexicon.ParseAffinity(cell(row, colAffinity)),
			Meaning:   cell(row, colMeaning),
		}
		entry.Gender, _ = lexicon.ParseGender(cell(row, colGender))
		if raw := cell(row, colTags); raw != "" {
			entry.Tags = splitTags(raw)
		}
		if raw := cell(row, colFrequency); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil {
				entry.Frequency = n
			}
		}
		if raw := cell(row, colFunctionWord); raw != "" {
			entry.FunctionWord, _ = strconv.ParseBool(raw)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// splitTags accepts comma or Chinese-comma separated tag lists.
func splitTags(raw string) []string {
	raw = strings.ReplaceAll(raw, "，", ",")
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
