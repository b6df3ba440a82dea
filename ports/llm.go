package ports

import "context"

// LLMClient is the boundary to the external free-text generation service.
// The service is optional and unreliable: callers must treat every failure
// as equivalent to the feature being disabled.
type LLMClient interface {
	ChatCompletion(ctx context.Context, model string, prompt string, maxTokens int) (string, error)
}
