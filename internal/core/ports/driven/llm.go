// Package driven provides interfaces for infrastructure adapters (secondary/outbound ports).
package driven

import (
	"context"

	"github.com/zaibi117/readme-maker/internal/core/domain"
)

// LLMService provides language model completions.
//
// Implementations may include:
//   - Anthropic (Claude)
//   - OpenAI (GPT-4o)
//   - Gemini
//   - Ollama (local models)
type LLMService interface {
	// Generate produces text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the LLM model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// System is an optional system prompt.
	System string

	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

// LLMValidator checks that an LLM configuration can reach its provider.
type LLMValidator interface {
	ValidateLLM(settings *domain.LLMSettings) error
}
