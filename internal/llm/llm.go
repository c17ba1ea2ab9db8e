// Package llm wraps the language-model providers the agent can talk to
// behind a single blocking Generate call.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/Shiva143-debug/backend-exp/internal/config"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("llm: empty response")

// Generator turns a prompt into the model's raw text answer.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// NewFromConfig builds the generator selected by LLM_PROVIDER.
func NewFromConfig(ctx context.Context, cfg *config.Config) (Generator, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return NewGeminiClient(ctx, GeminiOptions{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel})
	case config.ProviderOpenAI:
		return NewOpenAIClient(OpenAIOptions{APIKey: cfg.OpenAIAPIKey, BaseURL: cfg.OpenAIBaseURL, Model: cfg.OpenAIModel})
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.LLMProvider)
	}
}
