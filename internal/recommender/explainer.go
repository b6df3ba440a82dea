package recommender

import (
	"context"
	"fmt"
	"strings"
)

// NameCard is the value handed to an explainer. It carries everything the
// explanation needs so implementations never reach back into services.
type NameCard struct {
	FullName  string
	GivenName string
	Gender    string
	Meaning   string
	Origin    string
}

// Explainer produces a short prose explanation of why a name suits.
// Implementations may call external models; failures surface as errors and
// callers fall back to FallbackExplanation.
type Explainer interface {
	GenerateExplanation(ctx context.Context, card NameCard) (string, error)
}

// FallbackExplanation builds a deterministic explanation from the card's
// own fields, used when no explainer is configured or the call fails.
func FallbackExplanation(card NameCard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s is a carefully chosen name.", card.FullName)
	if card.Meaning != "" {
		fmt.Fprintf(&b, " The characters carry the sense of %s.", card.Meaning)
	}
	if card.Origin != "" {
		fmt.Fprintf(&b, " It echoes the line %s.", card.Origin)
	}
	return b.String()
}
