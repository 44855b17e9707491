package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an LLM service provider.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"

	// AIProviderGemini is Google Gemini cloud API.
	AIProviderGemini AIProvider = "gemini"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic, AIProviderGemini:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p != AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	case AIProviderGemini:
		return "Gemini (cloud)"
	default:
		return unknownDescription
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
		AIProviderGemini,
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-haiku-latest",
		AIProviderGemini:    "gemini-2.0-flash",
	}
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint override.
	BaseURL string

	// APIKey is the API key for cloud providers.
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// Tier selects retry and pacing presets for the summarizer.
type Tier string

// Available tiers.
const (
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// IsValid returns true if the tier is recognised.
func (t Tier) IsValid() bool {
	return t == TierStandard || t == TierPremium
}

// MaxRetries returns the backend retry budget for the tier.
func (t Tier) MaxRetries() int {
	if t == TierPremium {
		return 5
	}
	return 3
}

// InterRequestDelay returns the pause inserted between summarisation batches.
func (t Tier) InterRequestDelay() time.Duration {
	if t == TierPremium {
		return 300 * time.Millisecond
	}
	return time.Second
}

// StorageBackend selects the persistence adapter.
type StorageBackend string

// Available storage backends.
const (
	StorageSQLite StorageBackend = "sqlite"
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageSQLite || b == StorageMemory
}

// LimiterSettings configures the fixed-window backend rate limiter.
type LimiterSettings struct {
	MaxRequests int
	Window      time.Duration
}

// PipelineSettings configures the processing run.
type PipelineSettings struct {
	MaxFiles          int
	DownloadBatchSize int
	SummaryBatchSize  int
	Tier              Tier
}

// AppSettings holds all application settings.
type AppSettings struct {
	LLM      LLMSettings
	Limiter  LimiterSettings
	Pipeline PipelineSettings

	// GitHubToken authenticates repository access. Optional for public repos.
	GitHubToken string

	// IgnorePatterns are extra gitignore-style patterns excluded from selection.
	IgnorePatterns []string

	Storage StorageBackend

	// DataDir holds the database and prompts. Empty means ~/.readme-maker.
	DataDir string
}

// DefaultAppSettings returns settings with sensible defaults.
// The LLM is left unconfigured; users set it via config or environment.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Limiter: LimiterSettings{
			MaxRequests: 15,
			Window:      time.Minute,
		},
		Pipeline: PipelineSettings{
			MaxFiles:          30,
			DownloadBatchSize: 10,
			SummaryBatchSize:  3,
			Tier:              TierStandard,
		},
		Storage: StorageSQLite,
	}
}
