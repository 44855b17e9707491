package driving

import "github.com/zaibi117/readme-maker/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with environment overrides applied.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetLLMProvider configures the LLM provider.
	SetLLMProvider(provider domain.AIProvider, model, apiKey string) error

	// SetTier selects the summarizer preset.
	SetTier(tier domain.Tier) error

	// Validate checks that settings can drive a processing run.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Keys returns every recognised setting key.
	Keys() []string

	// Value returns the effective value of one setting.
	Value(key string) (string, error)

	// SetValue validates and persists one setting.
	SetValue(key, value string) error
}
