package excel

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"poemnames/models"
)

const surnamesSheet = "Surnames"

// SurnameSource serves surname lookups from the workbook's Surnames sheet.
// The sheet is read once on first use and held in memory.
type SurnameSource struct {
	filePath string

	once    sync.Once
	loadErr error
	byName  map[string]models.Surname
	ordered []string
}

// NewSurnameSource creates a workbook-backed surname repository
func NewSurnameSource(filePath string) *SurnameSource {
	return &SurnameSource{filePath: filePath}
}

func (s *SurnameSource) load() error {
	s.once.Do(func() {
		f, err := excelize.OpenFile(s.filePath)
		if err != nil {
			s.loadErr = fmt.Errorf("failed to open lexicon workbook: %w", err)
			return
		}
		defer f.Close()

		rows, err := f.GetRows(surnamesSheet)
		if err != nil {
			s.loadErr = fmt.Errorf("failed to read sheet %s: %w", surnamesSheet, err)
			return
		}

		s.byName = make(map[string]models.Surname)
		for i, row := range rows {
			if i == 0 || len(row) == 0 {
				continue
			}
			name := strings.TrimSpace(row[0])
			if name == "" {
				continue
			}
			s.byName[name] = models.Surname{
				Name:    name,
				Pinyin:  cell(row, 1),
				Meaning: cell(row, 2),
				Origin:  cell(row, 3),
			}
		}
		s.ordered = make([]string, 0, len(s.byName))
		for name := range s.byName {
			s.ordered = append(s.ordered, name)
		}
		sort.Strings(s.ordered)
	})
	return s.loadErr
}

// GetSurname looks up a surname by its rendered form. A miss returns
// (nil, nil) to match the database-backed repository.
func (s *SurnameSource) GetSurname(ctx context.Context, name string) (*models.Surname, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	if sn, ok := s.byName[name]; ok {
		out := sn
		return &out, nil
	}
	return nil, nil
}

// RandomSurname returns the first surname in sorted order. Workbook
// deployments favor reproducibility over variety.
func (s *SurnameSource) RandomSurname(ctx context.Context) (*models.Surname, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	if len(s.ordered) == 0 {
		return nil, nil
	}
	out := s.byName[s.ordered[0]]
	return &out, nil
}
