package llm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"poemnames/internal"
	"poemnames/internal/config"
	"poemnames/internal/recommender"
)

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{Model: "gpt-4o-mini", MaxTokens: 500}
}

func testCard() recommender.NameCard {
	return recommender.NameCard{
		FullName:  "李慧涵",
		GivenName: "慧涵",
		Gender:    "F",
		Meaning:   "wisdom、depth",
		Origin:    "离骚",
	}
}

func TestExplainerPassesThroughSuccess(t *testing.T) {
	mock := &MockLLMClient{Response: "A luminous name."}
	e := NewExplainer(mock, testLLMConfig(), internal.NewLogger(internal.LogLevelError))

	text, err := e.GenerateExplanation(context.Background(), testCard())
	if err != nil {
		t.Fatalf("GenerateExplanation: %v", err)
	}
	if text != "A luminous name." {
		t.Errorf("text = %q", text)
	}
	if mock.Calls != 1 {
		t.Errorf("calls = %d, want 1", mock.Calls)
	}
}

func TestExplainerRetriesThenFallsBack(t *testing.T) {
	mock := &MockLLMClient{Error: errors.New("upstream down")}
	e := NewExplainer(mock, testLLMConfig(), internal.NewLogger(internal.LogLevelError))

	text, err := e.GenerateExplanation(context.Background(), testCard())
	if err != nil {
		t.Fatalf("fallback path must not error: %v", err)
	}
	if mock.Calls != explainAttempts {
		t.Errorf("calls = %d, want %d", mock.Calls, explainAttempts)
	}
	if !strings.Contains(text, "李慧涵") {
		t.Errorf("fallback text missing the name: %s", text)
	}
	if !strings.Contains(text, "离骚") {
		t.Errorf("fallback text missing the origin: %s", text)
	}
}

func TestExplainerTreatsBlankResponseAsFailure(t *testing.T) {
	mock := &MockLLMClient{Response: "   "}
	e := NewExplainer(mock, testLLMConfig(), internal.NewLogger(internal.LogLevelError))

	text, err := e.GenerateExplanation(context.Background(), testCard())
	if err != nil {
		t.Fatalf("GenerateExplanation: %v", err)
	}
	if strings.TrimSpace(text) == "" {
		t.Error("blank model output leaked through instead of the fallback")
	}
	if mock.Calls != explainAttempts {
		t.Errorf("calls = %d, want %d", mock.Calls, explainAttempts)
	}
}

func TestPromptMentionsCardFields(t *testing.T) {
	p := buildPrompt(testCard())
	for _, want := range []string{"李慧涵", "慧涵", "girl", "wisdom、depth", "离骚"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
