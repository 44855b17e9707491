package driving

import (
	"context"

	"github.com/zaibi117/readme-maker/internal/core/domain"
)

// ReadmeLibrary reads and prunes persisted results.
type ReadmeLibrary interface {
	// Readme returns the stored README for owner/repo, or domain.ErrNotFound.
	Readme(ctx context.Context, owner, repo string) (*domain.Document, error)

	// Summaries returns the cached summaries for owner/repo, or domain.ErrNotFound.
	Summaries(ctx context.Context, owner, repo string) (*domain.CacheRecord, error)

	// ListSummaries returns every cached repository, newest first, without chunks.
	ListSummaries(ctx context.Context) ([]domain.CacheRecord, error)

	// ClearSummaries drops the cached summaries for owner/repo.
	ClearSummaries(ctx context.Context, owner, repo string) error

	// DeleteReadme drops the stored README for owner/repo.
	DeleteReadme(ctx context.Context, owner, repo string) error
}
