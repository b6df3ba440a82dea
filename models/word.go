package models

import (
	"time"

	"github.com/lib/pq"
)

// Word is one character row in the word store. Attribute semantics live in
// domain/lexicon; this type mirrors the persistence schema.
type Word struct {
	Character    string         `db:"character" json:"character"`
	Pinyin       string         `db:"pinyin" json:"pinyin"`
	Element      string         `db:"element" json:"element"`
	Gender       string         `db:"gender_preference" json:"gender_preference"`
	Affinity     string         `db:"affinity_strength" json:"affinity_strength"`
	Meaning      string         `db:"meaning" json:"meaning"`
	Tags         pq.StringArray `db:"tags" json:"tags"`
	Frequency    int            `db:"frequency" json:"frequency"`
	FunctionWord bool           `db:"function_word" json:"function_word"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// Surname is one surname row, with provenance strings for origin text.
type Surname struct {
	Name      string    `db:"name" json:"name"`
	Pinyin    string    `db:"pinyin" json:"pinyin"`
	Meaning   string    `db:"meaning" json:"meaning"`
	Origin    string    `db:"origin" json:"origin"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
