package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrRateLimited", ErrRateLimited},
		{"ErrAuthRequired", ErrAuthRequired},
		{"ErrProcessingInProgress", ErrProcessingInProgress},
		{"ErrNoRelevantFiles", ErrNoRelevantFiles},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrNotFound_Wrapped tests that wrapped sentinels remain detectable
func TestErrNotFound_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("load summaries: %w", ErrNotFound)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrInvalidInput))
}

func TestIsSkippableError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil", nil, false},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped deadline", fmt.Errorf("generate: %w", context.DeadlineExceeded), true},
		{"rate limited sentinel", fmt.Errorf("call: %w", ErrRateLimited), true},
		{"overloaded", errors.New("Overloaded: please retry"), true},
		{"503 status", errors.New("anthropic API error (status 503): busy"), true},
		{"429 status", errors.New("status 429"), true},
		{"quota", errors.New("RESOURCE_EXHAUSTED: quota exceeded"), true},
		{"service unavailable", errors.New("Service Unavailable"), true},
		{"invalid api key", errors.New("invalid x-api-key"), false},
		{"bad request", errors.New("status 400: prompt too long"), false},
		{"canceled", context.Canceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsSkippableError(tt.err))
		})
	}
}
