package services

import (
	"context"
	"fmt"
	"time"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
	"github.com/zaibi117/readme-maker/internal/logger"
)

// DefaultRateLimitKey is the limiter key shared by summarisation and synthesis.
const DefaultRateLimitKey = "llm"

// SummarizerConfig configures the chunk summarizer.
type SummarizerConfig struct {
	// RateLimitKey is the limiter bucket consulted once per batch.
	RateLimitKey string

	// MaxRetries is the number of backend attempts per chunk.
	MaxRetries int

	// BaseDelay is the first backoff delay.
	BaseDelay time.Duration

	// InterRequestDelay is the pause the caller inserts between batches.
	InterRequestDelay time.Duration

	// MaxTokens bounds each summary.
	MaxTokens int
}

// SummarizerConfigForTier returns the preset for a tier.
func SummarizerConfigForTier(tier domain.Tier) SummarizerConfig {
	return SummarizerConfig{
		RateLimitKey:      DefaultRateLimitKey,
		MaxRetries:        tier.MaxRetries(),
		BaseDelay:         time.Second,
		InterRequestDelay: tier.InterRequestDelay(),
		MaxTokens:         200,
	}
}

// BatchResult is the outcome of summarising one batch.
type BatchResult struct {
	// Chunks holds successful and recorded-failure chunks in input order.
	// Skipped chunks are absent.
	Chunks []domain.Chunk

	Stats domain.SummaryStats
}

// ChunkSummarizer summarises chunks through an LLM backend.
type ChunkSummarizer struct {
	llm     driven.LLMService
	limiter *RateLimiter
	prompts driven.PromptStore
	cfg     SummarizerConfig
}

// NewChunkSummarizer creates a summarizer. prompts may be nil.
func NewChunkSummarizer(llm driven.LLMService, limiter *RateLimiter, prompts driven.PromptStore, cfg SummarizerConfig) *ChunkSummarizer {
	if cfg.RateLimitKey == "" {
		cfg.RateLimitKey = DefaultRateLimitKey
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = domain.TierStandard.MaxRetries()
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 200
	}
	return &ChunkSummarizer{
		llm:     llm,
		limiter: limiter,
		prompts: prompts,
		cfg:     cfg,
	}
}

// InterRequestDelay returns the pause to insert between batches.
func (s *ChunkSummarizer) InterRequestDelay() time.Duration {
	return s.cfg.InterRequestDelay
}

// SummarizeBatch summarises each chunk in order. Transient backend failures
// drop the chunk; other failures keep it with a failure marker summary.
// If ctx is cancelled the partial result is returned with ctx.Err().
func (s *ChunkSummarizer) SummarizeBatch(ctx context.Context, chunks []domain.Chunk) (BatchResult, error) {
	result := BatchResult{
		Chunks: make([]domain.Chunk, 0, len(chunks)),
		Stats:  domain.SummaryStats{Total: len(chunks)},
	}
	if len(chunks) == 0 {
		return result, nil
	}
	if s.llm == nil {
		return result, domain.ErrLLMUnavailable
	}

	if s.limiter != nil {
		if err := s.limiter.Acquire(ctx, s.cfg.RateLimitKey); err != nil {
			return result, err
		}
	}

	template := loadPrompt(s.prompts, driven.PromptSummariseChunk)
	retry := RetryConfig{MaxRetries: s.cfg.MaxRetries, BaseDelay: s.cfg.BaseDelay}
	opts := driven.GenerateOptions{MaxTokens: s.cfg.MaxTokens, Temperature: 0.1}

	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		prompt := fmt.Sprintf(template, chunk.File, chunk.Index, chunk.Content)
		label := fmt.Sprintf("summarise %s#%d", chunk.File, chunk.Index)

		summary, err := retryWithBackoff(ctx, retry, label, func(ctx context.Context) (string, error) {
			return s.llm.Generate(ctx, prompt, opts)
		})

		switch {
		case err == nil:
			chunk.Summary = summary
			result.Chunks = append(result.Chunks, chunk)
			result.Stats.Successful++
		case ctx.Err() != nil:
			return result, ctx.Err()
		case domain.IsSkippableError(err):
			logger.Warn("Skipping %s#%d: %v", chunk.File, chunk.Index, err)
			result.Stats.Skipped++
		default:
			logger.Warn("Summarisation failed for %s#%d: %v", chunk.File, chunk.Index, err)
			chunk.Summary = domain.FailureMarker(err)
			result.Chunks = append(result.Chunks, chunk)
			result.Stats.Failed++
		}
	}

	return result, nil
}
