package ai

import (
	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
)

// Ensure ConfigValidator implements the interface.
var _ driven.LLMValidator = (*ConfigValidator)(nil)

// ConfigValidator validates LLM provider configurations.
type ConfigValidator struct{}

// NewConfigValidator creates a new LLM config validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// ValidateLLM validates an LLM configuration by pinging the provider.
func (v *ConfigValidator) ValidateLLM(settings *domain.LLMSettings) error {
	return ValidateLLMConfig(settings)
}
