package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
	"github.com/zaibi117/readme-maker/internal/logger"
)

// SynthesizerConfig configures README synthesis.
type SynthesizerConfig struct {
	RateLimitKey string
	MaxRetries   int
	BaseDelay    time.Duration
	MaxTokens    int
}

// DefaultSynthesizerConfig returns three attempts with a two second base delay.
func DefaultSynthesizerConfig() SynthesizerConfig {
	return SynthesizerConfig{
		RateLimitKey: DefaultRateLimitKey,
		MaxRetries:   3,
		BaseDelay:    2 * time.Second,
		MaxTokens:    2048,
	}
}

// ReadmeSynthesizer writes a README from chunk summaries.
type ReadmeSynthesizer struct {
	llm     driven.LLMService
	limiter *RateLimiter
	prompts driven.PromptStore
	cfg     SynthesizerConfig
}

// NewReadmeSynthesizer creates a synthesizer. prompts may be nil.
func NewReadmeSynthesizer(llm driven.LLMService, limiter *RateLimiter, prompts driven.PromptStore, cfg SynthesizerConfig) *ReadmeSynthesizer {
	defaults := DefaultSynthesizerConfig()
	if cfg.RateLimitKey == "" {
		cfg.RateLimitKey = defaults.RateLimitKey
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaults.MaxRetries
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaults.MaxTokens
	}
	return &ReadmeSynthesizer{
		llm:     llm,
		limiter: limiter,
		prompts: prompts,
		cfg:     cfg,
	}
}

// BuildPromptBody groups valid summaries by file in first-seen order and
// returns the rendered body with the number of files it covers.
func (s *ReadmeSynthesizer) BuildPromptBody(chunks []domain.Chunk) (string, int) {
	var order []string
	groups := make(map[string][]string)

	for _, c := range chunks {
		if !c.HasValidSummary() {
			continue
		}
		if _, seen := groups[c.File]; !seen {
			order = append(order, c.File)
		}
		groups[c.File] = append(groups[c.File], strings.TrimSpace(c.Summary))
	}

	blocks := make([]string, 0, len(order))
	for _, file := range order {
		blocks = append(blocks, fmt.Sprintf("**%s**:\n%s", file, strings.Join(groups[file], " ")))
	}
	return strings.Join(blocks, "\n\n"), len(order)
}

// Synthesize returns the README for repo. Without any valid summary the
// fallback document is returned and the backend is not called.
func (s *ReadmeSynthesizer) Synthesize(ctx context.Context, chunks []domain.Chunk, repo domain.RepoInfo) (string, error) {
	body, files := s.BuildPromptBody(chunks)
	if files == 0 {
		logger.Info("No valid summaries for %s, using fallback README", repo.FullName())
		return domain.FallbackReadme(repo.Owner, repo.Name), nil
	}
	if s.llm == nil {
		return "", domain.ErrLLMUnavailable
	}

	if s.limiter != nil {
		if err := s.limiter.Acquire(ctx, s.cfg.RateLimitKey); err != nil {
			return "", err
		}
	}

	var repoContext strings.Builder
	if repo.Description != "" {
		fmt.Fprintf(&repoContext, "Repository Description: %s\n", repo.Description)
	}
	if repo.Language != "" {
		fmt.Fprintf(&repoContext, "Primary Language: %s\n", repo.Language)
	}

	prompt := fmt.Sprintf(loadPrompt(s.prompts, driven.PromptGenerateReadme), repo.FullName(), repoContext.String(), body)
	opts := driven.GenerateOptions{MaxTokens: s.cfg.MaxTokens, Temperature: 0.3}

	logger.Info("Synthesising README for %s from %d files", repo.FullName(), files)

	text, err := retryWithBackoff(ctx, RetryConfig{MaxRetries: s.cfg.MaxRetries, BaseDelay: s.cfg.BaseDelay}, "generate README",
		func(ctx context.Context) (string, error) {
			return s.llm.Generate(ctx, prompt, opts)
		})
	if err != nil {
		return "", fmt.Errorf("generate README: %w", err)
	}

	return domain.StripCodeFence(text), nil
}
