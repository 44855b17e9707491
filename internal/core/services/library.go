package services

import (
	"context"
	"fmt"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
	"github.com/zaibi117/readme-maker/internal/core/ports/driving"
)

// Ensure LibraryService implements the interface.
var _ driving.ReadmeLibrary = (*LibraryService)(nil)

// LibraryService exposes stored READMEs and cached summaries.
type LibraryService struct {
	cache driven.SummaryCache
	docs  driven.DocumentStore
}

// NewLibraryService creates a library over the given stores. Either may be
// nil, in which case reads report domain.ErrNotFound and deletes are no-ops.
func NewLibraryService(cache driven.SummaryCache, docs driven.DocumentStore) *LibraryService {
	return &LibraryService{cache: cache, docs: docs}
}

// Readme returns the stored README for owner/repo.
func (l *LibraryService) Readme(ctx context.Context, owner, repo string) (*domain.Document, error) {
	if l.docs == nil {
		return nil, domain.ErrNotFound
	}
	doc, err := l.docs.LoadDocument(ctx, domain.RepoKey(owner, repo))
	if err != nil {
		return nil, fmt.Errorf("load readme %s: %w", domain.RepoKey(owner, repo), err)
	}
	return doc, nil
}

// Summaries returns the cached summaries for owner/repo.
func (l *LibraryService) Summaries(ctx context.Context, owner, repo string) (*domain.CacheRecord, error) {
	if l.cache == nil {
		return nil, domain.ErrNotFound
	}
	rec, err := l.cache.LoadSummaries(ctx, domain.RepoKey(owner, repo))
	if err != nil {
		return nil, fmt.Errorf("load summaries %s: %w", domain.RepoKey(owner, repo), err)
	}
	return rec, nil
}

// ListSummaries returns every cached repository.
func (l *LibraryService) ListSummaries(ctx context.Context) ([]domain.CacheRecord, error) {
	if l.cache == nil {
		return nil, nil
	}
	records, err := l.cache.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	return records, nil
}

// ClearSummaries drops the cached summaries for owner/repo.
func (l *LibraryService) ClearSummaries(ctx context.Context, owner, repo string) error {
	if l.cache == nil {
		return nil
	}
	if err := l.cache.ClearSummaries(ctx, domain.RepoKey(owner, repo)); err != nil {
		return fmt.Errorf("clear summaries %s: %w", domain.RepoKey(owner, repo), err)
	}
	return nil
}

// DeleteReadme drops the stored README for owner/repo.
func (l *LibraryService) DeleteReadme(ctx context.Context, owner, repo string) error {
	if l.docs == nil {
		return nil
	}
	if err := l.docs.DeleteDocument(ctx, domain.RepoKey(owner, repo)); err != nil {
		return fmt.Errorf("delete readme %s: %w", domain.RepoKey(owner, repo), err)
	}
	return nil
}
