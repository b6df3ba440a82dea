package generator

import "poemnames/domain/lexicon"

// WordCategory classifies a character for scoring: grammatical function
// words are heavily penalized, semantically loaded content words rewarded.
type WordCategory string

const (
	CategoryFunction WordCategory = "function"
	CategoryContent  WordCategory = "content"
	CategoryNeutral  WordCategory = "neutral"
)

// Semantic buckets over the corpus's meaning tags. A name spanning several
// buckets reads richer than one hammering a single theme.
var semanticBuckets = map[string][]string{
	"beauty":     {"美好", "美丽", "优雅", "秀美"},
	"wisdom":     {"智慧", "贤能", "优秀", "聪颖"},
	"strength":   {"勇敢", "刚强", "坚毅", "男性"},
	"gentleness": {"温柔", "贤惠", "文静", "女性"},
	"nobility":   {"高贵", "尊贵", "君子", "德行"},
}

// Tags marking characters with deep classical provenance.
var deepCulturalTags = map[string]bool{
	"古典": true,
	"诗意": true,
	"典故": true,
}

// categoryOf buckets an entry. Content requires at least one semantic
// bucket tag; generic corpus tags alone leave a character neutral.
func categoryOf(e lexicon.Entry) WordCategory {
	if e.FunctionWord {
		return CategoryFunction
	}
	for _, tags := range semanticBuckets {
		if e.HasAnyTag(tags) {
			return CategoryContent
		}
	}
	return CategoryNeutral
}

// bucketsOf returns the distinct semantic buckets an entry's tags touch.
func bucketsOf(e lexicon.Entry) []string {
	var out []string
	for bucket, tags := range semanticBuckets {
		if e.HasAnyTag(tags) {
			out = append(out, bucket)
		}
	}
	return out
}

func hasDeepCulturalTag(e lexicon.Entry) bool {
	for _, tag := range e.Tags {
		if deepCulturalTags[tag] {
			return true
		}
	}
	return false
}
