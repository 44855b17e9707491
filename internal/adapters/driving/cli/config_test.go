package cli

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaibi117/readme-maker/internal/core/domain"
)

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Short key", "abc123", "****"},
		{"Exactly 8 chars", "12345678", "****"},
		{"Long key", "sk-1234567890abcdef", "sk-1...cdef"},
		{"Empty key", "", "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskAPIKey(tt.input))
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{"Empty input returns default", "", 5, 1, 1},
		{"Valid choice within range", "3", 5, 1, 3},
		{"Choice below minimum returns default", "0", 5, 1, 1},
		{"Choice above maximum returns default", "6", 5, 1, 1},
		{"Invalid input returns default", "abc", 5, 2, 2},
		{"Whitespace returns default", "   ", 5, 1, 1},
		{"Maximum value is valid", "5", 5, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, tt.maxVal, tt.defaultVal))
		})
	}
}

func TestDisplayValue(t *testing.T) {
	assert.Equal(t, "(not set)", displayValue("llm.model", ""))
	assert.Equal(t, "sk-a...wxyz", displayValue("llm.api_key", "sk-abcdefuvwxyz"))
	assert.Equal(t, "anthropic", displayValue("llm.provider", "anthropic"))
}

func TestConfigSetAndGet(t *testing.T) {
	setupServices(t, nil)

	stdout, _, err := executeCommand(t, "config", "set", "pipeline.max_files", "42")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Set pipeline.max_files = 42")

	stdout, _, err = executeCommand(t, "config", "get", "pipeline.max_files")
	require.NoError(t, err)
	assert.Equal(t, "42\n", stdout)

	_, _, err = executeCommand(t, "config", "set", "pipeline.max_files", "-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = executeCommand(t, "config", "get", "nope")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigSet_MasksSecrets(t *testing.T) {
	setupServices(t, nil)

	stdout, _, err := executeCommand(t, "config", "set", "llm.api_key", "sk-ant-1234567890")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Set llm.api_key = sk-a...7890")
	assert.NotContains(t, stdout, "1234567890")
}

func TestConfigList(t *testing.T) {
	env := setupServices(t, nil)
	require.NoError(t, env.settings.SetValue("github.token", "ghp_abcdefghijkl"))

	stdout, _, err := executeCommand(t, "config", "list")

	require.NoError(t, err)
	assert.Contains(t, stdout, "llm.provider = (not set)")
	assert.Contains(t, stdout, "github.token = ghp_...ijkl")
	assert.Contains(t, stdout, "pipeline.max_files = 30")
	assert.Contains(t, stdout, "Warning:")
}

func TestConfigTier(t *testing.T) {
	setupServices(t, nil)

	stdout, _, err := executeCommand(t, "config", "tier", "Premium")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Tier set to: premium (5 retries, 300ms between batches)")

	_, _, err = executeCommand(t, "config", "tier", "gold")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigTest(t *testing.T) {
	t.Run("unconfigured", func(t *testing.T) {
		setupServices(t, nil)

		_, _, err := executeCommand(t, "config", "test")

		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	})

	t.Run("pings provider", func(t *testing.T) {
		env := setupServices(t, nil)
		validator := &MockValidator{}
		llmValidator = validator
		require.NoError(t, env.settings.SetLLMProvider(domain.AIProviderOllama, "", ""))

		stdout, _, err := executeCommand(t, "config", "test")

		require.NoError(t, err)
		assert.Contains(t, stdout, "OK")
		assert.Equal(t, domain.AIProviderOllama, validator.Provider)
	})

	t.Run("ping failure", func(t *testing.T) {
		env := setupServices(t, nil)
		llmValidator = &MockValidator{Err: errors.New("connection refused")}
		require.NoError(t, env.settings.SetLLMProvider(domain.AIProviderOllama, "", ""))

		stdout, _, err := executeCommand(t, "config", "test")

		assert.EqualError(t, err, "connection refused")
		assert.Contains(t, stdout, "FAILED")
	})
}

func TestConfigProvider_Interactive(t *testing.T) {
	env := setupServices(t, nil)

	var choice int
	for i, p := range domain.AllLLMProviders() {
		if p == domain.AIProviderAnthropic {
			choice = i + 1
		}
	}
	require.NotZero(t, choice)

	resetFlags()
	rootCmd.SetArgs([]string{"config", "provider"})
	rootCmd.SetIn(strings.NewReader(strconv.Itoa(choice) + "\n\nsk-ant-test-key\n"))
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	require.NoError(t, rootCmd.Execute())

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderAnthropic, settings.LLM.Provider)
	assert.Equal(t, domain.DefaultLLMModels()[domain.AIProviderAnthropic], settings.LLM.Model)
	assert.Equal(t, "sk-ant-test-key", settings.LLM.APIKey)
	assert.Contains(t, out.String(), "LLM provider configured")
}
