package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
	"github.com/zaibi117/readme-maker/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyLLMProvider       = "llm.provider"
	KeyLLMModel          = "llm.model"
	KeyLLMBaseURL        = "llm.base_url"
	KeyLLMAPIKey         = "llm.api_key"
	KeyGitHubToken       = "github.token"
	KeyLimiterMax        = "limiter.max_requests"
	KeyLimiterWindowMs   = "limiter.window_ms"
	KeyPipelineMaxFiles  = "pipeline.max_files"
	KeyPipelineDownload  = "pipeline.download_batch_size"
	KeyPipelineSummary   = "pipeline.summary_batch_size"
	KeyPipelineTier      = "pipeline.tier"
	KeyFilterIgnore      = "filter.ignore"
	KeyStorageBackend    = "storage.backend"
	KeyStorageDataDir    = "storage.data_dir"
	envGitHubToken       = "GITHUB_TOKEN"
	envAnthropicAPIKey   = "ANTHROPIC_API_KEY"
	envOpenAIAPIKey      = "OPENAI_API_KEY"
	envGeminiAPIKey      = "GEMINI_API_KEY"
	defaultOllamaBaseURL = "http://localhost:11434"
)

// providerKeyEnv maps cloud providers to their API key environment variable.
var providerKeyEnv = map[domain.AIProvider]string{
	domain.AIProviderAnthropic: envAnthropicAPIKey,
	domain.AIProviderOpenAI:    envOpenAIAPIKey,
	domain.AIProviderGemini:    envGeminiAPIKey,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// SettingsOption configures the settings service.
type SettingsOption func(*SettingsService)

// WithEnv replaces os.Getenv for environment overrides.
func WithEnv(getenv func(string) string) SettingsOption {
	return func(s *SettingsService) {
		if getenv != nil {
			s.getenv = getenv
		}
	}
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, opts ...SettingsOption) *SettingsService {
	s := &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get retrieves current application settings. Environment variables fill
// in API keys and the GitHub token when the config file leaves them empty.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		LLM: domain.LLMSettings{
			Provider: s.getProvider(),
			Model:    s.configStore.GetString(KeyLLMModel),
			BaseURL:  s.configStore.GetString(KeyLLMBaseURL),
			APIKey:   s.configStore.GetString(KeyLLMAPIKey),
		},
		Limiter: domain.LimiterSettings{
			MaxRequests: s.getInt(KeyLimiterMax, defaults.Limiter.MaxRequests),
			Window:      time.Duration(s.getInt(KeyLimiterWindowMs, int(defaults.Limiter.Window.Milliseconds()))) * time.Millisecond,
		},
		Pipeline: domain.PipelineSettings{
			MaxFiles:          s.getInt(KeyPipelineMaxFiles, defaults.Pipeline.MaxFiles),
			DownloadBatchSize: s.getInt(KeyPipelineDownload, defaults.Pipeline.DownloadBatchSize),
			SummaryBatchSize:  s.getInt(KeyPipelineSummary, defaults.Pipeline.SummaryBatchSize),
			Tier:              s.getTier(defaults.Pipeline.Tier),
		},
		GitHubToken:    s.configStore.GetString(KeyGitHubToken),
		IgnorePatterns: s.configStore.GetStringSlice(KeyFilterIgnore),
		Storage:        s.getBackend(defaults.Storage),
		DataDir:        s.configStore.GetString(KeyStorageDataDir),
	}

	if settings.LLM.Model == "" {
		settings.LLM.Model = domain.DefaultLLMModels()[settings.LLM.Provider]
	}
	if settings.LLM.Provider == domain.AIProviderOllama && settings.LLM.BaseURL == "" {
		settings.LLM.BaseURL = defaultOllamaBaseURL
	}
	if settings.LLM.APIKey == "" {
		if env, ok := providerKeyEnv[settings.LLM.Provider]; ok {
			settings.LLM.APIKey = s.getenv(env)
		}
	}
	if settings.GitHubToken == "" {
		settings.GitHubToken = s.getenv(envGitHubToken)
	}

	return settings, nil
}

// Save persists application settings. Empty secrets are not written so
// that environment-provided keys never land in the config file.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{KeyLLMProvider, settings.LLM.Provider.String()},
		{KeyLLMModel, settings.LLM.Model},
		{KeyLLMBaseURL, settings.LLM.BaseURL},
		{KeyLimiterMax, settings.Limiter.MaxRequests},
		{KeyLimiterWindowMs, int(settings.Limiter.Window.Milliseconds())},
		{KeyPipelineMaxFiles, settings.Pipeline.MaxFiles},
		{KeyPipelineDownload, settings.Pipeline.DownloadBatchSize},
		{KeyPipelineSummary, settings.Pipeline.SummaryBatchSize},
		{KeyPipelineTier, string(settings.Pipeline.Tier)},
		{KeyStorageBackend, string(settings.Storage)},
	}
	if settings.LLM.APIKey != "" {
		values = append(values, struct {
			key   string
			value any
		}{KeyLLMAPIKey, settings.LLM.APIKey})
	}
	if len(settings.IgnorePatterns) > 0 {
		values = append(values, struct {
			key   string
			value any
		}{KeyFilterIgnore, settings.IgnorePatterns})
	}

	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	// An environment key satisfies the requirement without being persisted.
	envKey := ""
	if env, ok := providerKeyEnv[provider]; ok {
		envKey = s.getenv(env)
	}
	if provider.RequiresAPIKey() && apiKey == "" && envKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings.LLM.Provider = provider
	settings.LLM.Model = model
	if model == "" {
		settings.LLM.Model = domain.DefaultLLMModels()[provider]
	}

	if provider == domain.AIProviderOllama {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = defaultOllamaBaseURL
		}
	} else {
		settings.LLM.BaseURL = ""
	}
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetTier selects the summarizer preset.
func (s *SettingsService) SetTier(tier domain.Tier) error {
	if !tier.IsValid() {
		return fmt.Errorf("%w: invalid tier: %s", domain.ErrInvalidInput, tier)
	}
	if err := s.configStore.Set(KeyPipelineTier, string(tier)); err != nil {
		return fmt.Errorf("save %s: %w", KeyPipelineTier, err)
	}
	return nil
}

// Validate checks that settings can drive a processing run.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.LLM.Provider == "" {
		return fmt.Errorf("%w: no LLM provider configured (set %s)", domain.ErrLLMUnavailable, KeyLLMProvider)
	}
	if !settings.LLM.IsConfigured() {
		hint := KeyLLMAPIKey
		if env, ok := providerKeyEnv[settings.LLM.Provider]; ok {
			hint += " or " + env
		}
		return fmt.Errorf("%w: %s requires an API key (set %s)", domain.ErrLLMUnavailable, settings.LLM.Provider, hint)
	}
	if settings.Limiter.MaxRequests <= 0 || settings.Limiter.Window <= 0 {
		return fmt.Errorf("%w: limiter allowance must be positive", domain.ErrInvalidInput)
	}
	if settings.Pipeline.MaxFiles <= 0 || settings.Pipeline.DownloadBatchSize <= 0 || settings.Pipeline.SummaryBatchSize <= 0 {
		return fmt.Errorf("%w: pipeline sizes must be positive", domain.ErrInvalidInput)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// settingKeys lists the recognised keys in display order.
var settingKeys = []string{
	KeyLLMProvider, KeyLLMModel, KeyLLMBaseURL, KeyLLMAPIKey,
	KeyGitHubToken,
	KeyLimiterMax, KeyLimiterWindowMs,
	KeyPipelineMaxFiles, KeyPipelineDownload, KeyPipelineSummary, KeyPipelineTier,
	KeyFilterIgnore,
	KeyStorageBackend, KeyStorageDataDir,
}

// Keys returns every recognised setting key.
func (s *SettingsService) Keys() []string {
	return append([]string(nil), settingKeys...)
}

// Value returns the effective value of key, after defaults and environment
// overrides, formatted as a string.
func (s *SettingsService) Value(key string) (string, error) {
	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	switch key {
	case KeyLLMProvider:
		return settings.LLM.Provider.String(), nil
	case KeyLLMModel:
		return settings.LLM.Model, nil
	case KeyLLMBaseURL:
		return settings.LLM.BaseURL, nil
	case KeyLLMAPIKey:
		return settings.LLM.APIKey, nil
	case KeyGitHubToken:
		return settings.GitHubToken, nil
	case KeyLimiterMax:
		return strconv.Itoa(settings.Limiter.MaxRequests), nil
	case KeyLimiterWindowMs:
		return strconv.FormatInt(settings.Limiter.Window.Milliseconds(), 10), nil
	case KeyPipelineMaxFiles:
		return strconv.Itoa(settings.Pipeline.MaxFiles), nil
	case KeyPipelineDownload:
		return strconv.Itoa(settings.Pipeline.DownloadBatchSize), nil
	case KeyPipelineSummary:
		return strconv.Itoa(settings.Pipeline.SummaryBatchSize), nil
	case KeyPipelineTier:
		return string(settings.Pipeline.Tier), nil
	case KeyFilterIgnore:
		return strings.Join(settings.IgnorePatterns, ","), nil
	case KeyStorageBackend:
		return string(settings.Storage), nil
	case KeyStorageDataDir:
		return settings.DataDir, nil
	}
	return "", fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
}

// SetValue validates value for key and persists it.
func (s *SettingsService) SetValue(key, value string) error {
	value = strings.TrimSpace(value)

	var stored any = value
	switch key {
	case KeyLLMProvider:
		if !domain.AIProvider(value).IsValid() {
			return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, value)
		}
	case KeyLLMModel, KeyLLMBaseURL, KeyLLMAPIKey, KeyGitHubToken, KeyStorageDataDir:
	case KeyLimiterMax, KeyLimiterWindowMs, KeyPipelineMaxFiles, KeyPipelineDownload, KeyPipelineSummary:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		stored = n
	case KeyPipelineTier:
		if !domain.Tier(value).IsValid() {
			return fmt.Errorf("%w: invalid tier: %s", domain.ErrInvalidInput, value)
		}
	case KeyStorageBackend:
		if !domain.StorageBackend(value).IsValid() {
			return fmt.Errorf("%w: invalid storage backend: %s", domain.ErrInvalidInput, value)
		}
	case KeyFilterIgnore:
		stored = splitPatterns(value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func splitPatterns(value string) []string {
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getProvider() domain.AIProvider {
	provider := domain.AIProvider(s.configStore.GetString(KeyLLMProvider))
	if !provider.IsValid() {
		return ""
	}
	return provider
}

func (s *SettingsService) getTier(defaultVal domain.Tier) domain.Tier {
	tier := domain.Tier(s.configStore.GetString(KeyPipelineTier))
	if !tier.IsValid() {
		return defaultVal
	}
	return tier
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.configStore.GetString(KeyStorageBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
