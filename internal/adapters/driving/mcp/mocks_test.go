package mcp

import (
	"context"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driving"
)

// mockLibrary is a mock implementation of driving.ReadmeLibrary.
type mockLibrary struct {
	docs    map[string]*domain.Document
	records map[string]*domain.CacheRecord
	list    []domain.CacheRecord
	err     error
}

func (m *mockLibrary) Readme(_ context.Context, owner, repo string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	doc, ok := m.docs[domain.RepoKey(owner, repo)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (m *mockLibrary) Summaries(_ context.Context, owner, repo string) (*domain.CacheRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	rec, ok := m.records[domain.RepoKey(owner, repo)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (m *mockLibrary) ListSummaries(_ context.Context) ([]domain.CacheRecord, error) {
	return m.list, m.err
}

func (m *mockLibrary) ClearSummaries(_ context.Context, _, _ string) error {
	return m.err
}

func (m *mockLibrary) DeleteReadme(_ context.Context, _, _ string) error {
	return m.err
}

// mockProcessor is a mock implementation of driving.RepositoryProcessor.
type mockProcessor struct {
	result    *driving.Result
	err       error
	owner     string
	repo      string
	fromCache bool
}

func (m *mockProcessor) Process(_ context.Context, owner, repo string) (*driving.Result, error) {
	m.owner, m.repo = owner, repo
	return m.result, m.err
}

func (m *mockProcessor) ProcessFromCache(_ context.Context, owner, repo string) (*driving.Result, error) {
	m.owner, m.repo, m.fromCache = owner, repo, true
	return m.result, m.err
}

func (m *mockProcessor) Stop() {}

func (m *mockProcessor) Status() domain.ProcessingStatus { return domain.NewStatus() }

func (m *mockProcessor) Subscribe(_ int) (<-chan domain.ProcessingStatus, func()) {
	ch := make(chan domain.ProcessingStatus)
	return ch, func() { close(ch) }
}

func (m *mockProcessor) Partial() []domain.Chunk { return nil }
