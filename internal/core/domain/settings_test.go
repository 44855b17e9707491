package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestAIProvider_IsValid tests all valid and invalid providers
func TestAIProvider_IsValid(t *testing.T) {
	for _, p := range AllLLMProviders() {
		assert.True(t, p.IsValid(), p.String())
		assert.NotEqual(t, unknownDescription, p.Description())
	}
	assert.False(t, AIProvider("").IsValid())
	assert.False(t, AIProvider("cohere").IsValid())
	assert.Equal(t, unknownDescription, AIProvider("cohere").Description())
}

func TestAIProvider_RequiresAPIKey(t *testing.T) {
	assert.False(t, AIProviderOllama.RequiresAPIKey())
	assert.True(t, AIProviderOpenAI.RequiresAPIKey())
	assert.True(t, AIProviderAnthropic.RequiresAPIKey())
	assert.True(t, AIProviderGemini.RequiresAPIKey())
}

func TestDefaultLLMModels_CoversAllProviders(t *testing.T) {
	models := DefaultLLMModels()
	for _, p := range AllLLMProviders() {
		assert.NotEmpty(t, models[p], p.String())
	}
}

func TestLLMSettings_IsConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings LLMSettings
		expected bool
	}{
		{"empty", LLMSettings{}, false},
		{"ollama without key", LLMSettings{Provider: AIProviderOllama}, true},
		{"anthropic without key", LLMSettings{Provider: AIProviderAnthropic}, false},
		{"anthropic with key", LLMSettings{Provider: AIProviderAnthropic, APIKey: "sk"}, true},
		{"unknown provider", LLMSettings{Provider: "x", APIKey: "sk"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.settings.IsConfigured())
		})
	}
}

func TestTier_Presets(t *testing.T) {
	assert.Equal(t, 3, TierStandard.MaxRetries())
	assert.Equal(t, time.Second, TierStandard.InterRequestDelay())
	assert.Equal(t, 5, TierPremium.MaxRetries())
	assert.Equal(t, 300*time.Millisecond, TierPremium.InterRequestDelay())
	assert.False(t, Tier("gold").IsValid())
}

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.Equal(t, 15, s.Limiter.MaxRequests)
	assert.Equal(t, time.Minute, s.Limiter.Window)
	assert.Equal(t, 30, s.Pipeline.MaxFiles)
	assert.Equal(t, 10, s.Pipeline.DownloadBatchSize)
	assert.Equal(t, 3, s.Pipeline.SummaryBatchSize)
	assert.Equal(t, TierStandard, s.Pipeline.Tier)
	assert.Equal(t, StorageSQLite, s.Storage)
	assert.False(t, s.LLM.IsConfigured())
}
