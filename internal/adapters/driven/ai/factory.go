// Package ai provides factory functions for creating LLM service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	anthropicllm "github.com/zaibi117/readme-maker/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/zaibi117/readme-maker/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/zaibi117/readme-maker/internal/adapters/driven/llm/ollama"
	openaillm "github.com/zaibi117/readme-maker/internal/adapters/driven/llm/openai"
	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 10 * time.Second

// configureHint is appended to LLM setup errors.
const configureHint = "Run 'readme-maker config set llm.provider <provider>' to fix"

// CreateLLMService creates the LLM service selected by settings.
// Unconfigured settings yield domain.ErrLLMUnavailable.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || settings.Provider == "" {
		return nil, fmt.Errorf("%w: no provider configured. %s", domain.ErrLLMUnavailable, configureHint)
	}
	if !settings.Provider.IsValid() {
		return nil, fmt.Errorf("%w: LLM provider %q", domain.ErrUnsupportedType, settings.Provider)
	}
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: %s requires an API key. %s",
			domain.ErrLLMUnavailable, settings.Provider, configureHint)
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaLLM(settings), nil
	case domain.AIProviderOpenAI:
		return createOpenAILLM(settings)
	case domain.AIProviderAnthropic:
		return createAnthropicLLM(settings)
	case domain.AIProviderGemini:
		return createGeminiLLM(settings)
	default:
		return nil, fmt.Errorf("%w: LLM provider %q", domain.ErrUnsupportedType, settings.Provider)
	}
}

// CreateAndValidateLLMService creates an LLM service and validates connectivity.
// Returns the service if successful, or an error with guidance.
func CreateAndValidateLLMService(ctx context.Context, settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). %s",
			domain.ErrLLMUnavailable, err, configureHint)
	}

	return svc, nil
}

// ValidateLLMConfig validates an LLM configuration by creating a service and pinging it.
func ValidateLLMConfig(settings *domain.LLMSettings) error {
	svc, err := CreateAndValidateLLMService(context.Background(), settings)
	if err != nil {
		return err
	}
	return svc.Close()
}

// createOllamaLLM creates an Ollama LLM service.
func createOllamaLLM(settings *domain.LLMSettings) driven.LLMService {
	return ollamallm.NewLLMService(ollamallm.LLMConfig{
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createOpenAILLM creates an OpenAI LLM service.
func createOpenAILLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return openaillm.NewLLMService(openaillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createAnthropicLLM creates an Anthropic LLM service.
func createAnthropicLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return anthropicllm.NewLLMService(anthropicllm.Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}

// createGeminiLLM creates a Gemini LLM service.
func createGeminiLLM(settings *domain.LLMSettings) (driven.LLMService, error) {
	return geminillm.NewLLMService(geminillm.LLMConfig{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
	})
}
