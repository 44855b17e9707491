package driven

import (
	"context"

	"github.com/zaibi117/readme-maker/internal/core/domain"
)

// SummaryCache persists summarised chunks per repository key.
type SummaryCache interface {
	// SaveSummaries replaces the record for key.
	SaveSummaries(ctx context.Context, key string, chunks []domain.Chunk, stats domain.SummaryStats) error

	// LoadSummaries returns the record for key, or domain.ErrNotFound.
	LoadSummaries(ctx context.Context, key string) (*domain.CacheRecord, error)

	// ClearSummaries removes the record for key. Clearing a missing key is not an error.
	ClearSummaries(ctx context.Context, key string) error

	// ListSummaries returns all records without their chunk contents.
	ListSummaries(ctx context.Context) ([]domain.CacheRecord, error)
}
