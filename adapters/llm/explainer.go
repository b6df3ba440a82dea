package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"poemnames/internal"
	"poemnames/internal/config"
	"poemnames/internal/recommender"
	"poemnames/ports"
)

const (
	explainAttempts = 2
	explainTimeout  = 30 * time.Second
)

// Explainer asks the model why a name suits. Failures after retries fall
// back to a deterministic explanation built from the card itself, so the
// endpoint always answers.
type Explainer struct {
	client ports.LLMClient
	cfg    config.LLMConfig
	log    *internal.Logger
}

func NewExplainer(client ports.LLMClient, cfg config.LLMConfig, log *internal.Logger) *Explainer {
	return &Explainer{client: client, cfg: cfg, log: log}
}

func (e *Explainer) GenerateExplanation(ctx context.Context, card recommender.NameCard) (string, error) {
	prompt := buildPrompt(card)

	for attempt := 1; attempt <= explainAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, explainTimeout)
		text, err := e.client.ChatCompletion(callCtx, e.cfg.Model, prompt, e.cfg.MaxTokens)
		cancel()
		if err == nil && strings.TrimSpace(text) != "" {
			return strings.TrimSpace(text), nil
		}
		e.log.Warn("explanation attempt %d/%d failed for %s: %v", attempt, explainAttempts, card.FullName, err)
	}

	e.log.Info("using fallback explanation for %s", card.FullName)
	return recommender.FallbackExplanation(card), nil
}

func buildPrompt(card recommender.NameCard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Explain in 2-3 sentences why the Chinese name %s suits", card.FullName)
	switch card.Gender {
	case "M":
		b.WriteString(" a boy")
	case "F":
		b.WriteString(" a girl")
	default:
		b.WriteString(" a child")
	}
	b.WriteString(".")
	if card.Meaning != "" {
		fmt.Fprintf(&b, " The given name %s carries the meaning: %s.", card.GivenName, card.Meaning)
	}
	if card.Origin != "" {
		fmt.Fprintf(&b, " It draws on the classical line: %s.", card.Origin)
	}
	b.WriteString(" Mention the sound and the imagery, and keep the tone warm.")
	return b.String()
}
