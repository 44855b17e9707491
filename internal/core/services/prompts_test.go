package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
)

func TestFormatVerbs(t *testing.T) {
	tests := []struct {
		name     string
		template string
		expected []string
	}{
		{"none", "plain text", nil},
		{"in order", "file %s chunk %d: %s", []string{"%s", "%d", "%s"}},
		{"escaped percent", "100%% of %s", []string{"%s"}},
		{"width and flags", "%-10s %03d", []string{"%s", "%d"}},
		{"stray percent", "50% done %s", []string{"%d", "%s"}},
		{"trailing percent", "%s at 100%", []string{"%s", "%!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatVerbs(tt.template))
		})
	}
}

func TestDefaultPrompts_Verbs(t *testing.T) {
	prompts := DefaultPrompts()

	assert.Equal(t, []string{"%s", "%d", "%s"}, formatVerbs(prompts[driven.PromptSummariseChunk]))
	assert.Equal(t, []string{"%s", "%s", "%s"}, formatVerbs(prompts[driven.PromptGenerateReadme]))
}

func TestLoadPrompt(t *testing.T) {
	builtin := DefaultPrompts()[driven.PromptSummariseChunk]

	tests := []struct {
		name     string
		store    driven.PromptStore
		expected string
	}{
		{"no store", nil, builtin},
		{"custom template", &mockPrompts{prompts: map[string]string{
			driven.PromptSummariseChunk: "Summarise %s part %d:\n%s",
		}}, "Summarise %s part %d:\n%s"},
		{"empty template", &mockPrompts{prompts: map[string]string{
			driven.PromptSummariseChunk: "",
		}}, builtin},
		{"missing verb", &mockPrompts{prompts: map[string]string{
			driven.PromptSummariseChunk: "Summarise %s:\n%s",
		}}, builtin},
		{"extra verb", &mockPrompts{prompts: map[string]string{
			driven.PromptSummariseChunk: "Summarise 100% of %s part %d:\n%s",
		}}, builtin},
		{"reordered verbs", &mockPrompts{prompts: map[string]string{
			driven.PromptSummariseChunk: "Part %d of %s:\n%s",
		}}, builtin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, loadPrompt(tt.store, driven.PromptSummariseChunk))
		})
	}
}

func TestChunkSummarizer_MalformedPromptFallsBack(t *testing.T) {
	llm := &mockLLM{}
	prompts := &mockPrompts{prompts: map[string]string{
		driven.PromptSummariseChunk: "Summarise 50% of this: %s",
	}}
	s := NewChunkSummarizer(llm, nil, prompts, testSummarizerConfig())

	_, err := s.SummarizeBatch(context.Background(), []domain.Chunk{{File: "a.go", Index: 0, Content: "x"}})

	require.NoError(t, err)
	require.Len(t, llm.calls(), 1)
	assert.True(t, strings.HasPrefix(llm.calls()[0], "Analyze and summarize"))
	assert.NotContains(t, llm.calls()[0], "%!")
}
