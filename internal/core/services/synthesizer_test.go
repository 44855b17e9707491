package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaibi117/readme-maker/internal/core/domain"
)

func testSynthesizerConfig() SynthesizerConfig {
	return SynthesizerConfig{MaxRetries: 3, BaseDelay: time.Millisecond}
}

func TestReadmeSynthesizer_BuildPromptBody(t *testing.T) {
	s := NewReadmeSynthesizer(&mockLLM{}, nil, nil, testSynthesizerConfig())

	chunks := []domain.Chunk{
		{File: "b.go", Index: 1, Summary: "B one."},
		{File: "a.go", Index: 1, Summary: "A one."},
		{File: "b.go", Index: 2, Summary: "B two."},
		{File: "c.go", Index: 1, Summary: domain.FailureMarker(errors.New("bad"))},
		{File: "d.go", Index: 1, Summary: ""},
	}

	body, files := s.BuildPromptBody(chunks)

	assert.Equal(t, 2, files)
	assert.Equal(t, "**b.go**:\nB one. B two.\n\n**a.go**:\nA one.", body)
}

func TestReadmeSynthesizer_FallbackWithoutBackendCall(t *testing.T) {
	llm := &mockLLM{}
	s := NewReadmeSynthesizer(llm, nil, nil, testSynthesizerConfig())

	doc, err := s.Synthesize(context.Background(), []domain.Chunk{
		{File: "a.go", Summary: domain.FailureMarker(errors.New("x"))},
	}, domain.RepoInfo{Owner: "octo", Name: "hello"})

	require.NoError(t, err)
	assert.Equal(t, domain.FallbackReadme("octo", "hello"), doc)
	assert.Empty(t, llm.calls())
}

func TestReadmeSynthesizer_Synthesize(t *testing.T) {
	llm := &mockLLM{respond: func(context.Context, string) (string, error) {
		return "```markdown\n# Hello\n\nA project.\n```", nil
	}}
	limiter := NewRateLimiter(5, time.Minute)
	s := NewReadmeSynthesizer(llm, limiter, nil, testSynthesizerConfig())

	doc, err := s.Synthesize(context.Background(),
		[]domain.Chunk{{File: "main.go", Index: 1, Summary: "Entry point."}},
		domain.RepoInfo{Owner: "octo", Name: "hello", Description: "Greets", Language: "Go"})

	require.NoError(t, err)
	assert.Equal(t, "# Hello\n\nA project.", doc)

	calls := llm.calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0], `"octo/hello"`)
	assert.Contains(t, calls[0], "Repository Description: Greets\n")
	assert.Contains(t, calls[0], "Primary Language: Go\n")
	assert.Contains(t, calls[0], "**main.go**:\nEntry point.")
	assert.Equal(t, 4, limiter.RemainingRequests(DefaultRateLimitKey))
}

func TestReadmeSynthesizer_RetriesThenFails(t *testing.T) {
	llm := &mockLLM{respond: func(context.Context, string) (string, error) {
		return "", errors.New("status 500")
	}}
	s := NewReadmeSynthesizer(llm, nil, nil, testSynthesizerConfig())

	_, err := s.Synthesize(context.Background(),
		[]domain.Chunk{{File: "a.go", Summary: "ok"}}, domain.RepoInfo{Owner: "o", Name: "r"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
	assert.Len(t, llm.calls(), 3)
}

func TestNewReadmeSynthesizer_Defaults(t *testing.T) {
	s := NewReadmeSynthesizer(&mockLLM{}, nil, nil, SynthesizerConfig{})
	assert.Equal(t, DefaultRateLimitKey, s.cfg.RateLimitKey)
	assert.Equal(t, 3, s.cfg.MaxRetries)
	assert.Equal(t, 2048, s.cfg.MaxTokens)
}
