package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driven"
)

// mockLLM answers prompts through a caller-supplied function and records calls.
type mockLLM struct {
	mu      sync.Mutex
	prompts []string
	respond func(ctx context.Context, prompt string) (string, error)
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()
	if m.respond == nil {
		return "summary", nil
	}
	return m.respond(ctx, prompt)
}

func (m *mockLLM) ModelName() string { return "mock" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error { return nil }

func (m *mockLLM) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

func (m *mockLLM) readmeCalls() []string {
	var out []string
	for _, p := range m.calls() {
		if isReadmePrompt(p) {
			out = append(out, p)
		}
	}
	return out
}

func isReadmePrompt(p string) bool {
	return strings.HasPrefix(p, "Generate a comprehensive")
}

// mockHost serves an in-memory repository.
type mockHost struct {
	mu       sync.Mutex
	info     *domain.RepoInfo
	infoErr  error
	tree     []domain.FileEntry
	treeErr  error
	files    map[string]string
	fetchErr error
	fetched  [][]string
}

func (h *mockHost) FetchRepoInfo(_ context.Context, owner, repo string) (*domain.RepoInfo, error) {
	if h.infoErr != nil {
		return nil, h.infoErr
	}
	if h.info != nil {
		return h.info, nil
	}
	return &domain.RepoInfo{Owner: owner, Name: repo}, nil
}

func (h *mockHost) FetchTree(ctx context.Context, _, _ string) ([]domain.FileEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return h.tree, h.treeErr
}

func (h *mockHost) FetchFileContents(ctx context.Context, _, _ string, paths []string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h.mu.Lock()
	h.fetched = append(h.fetched, paths)
	h.mu.Unlock()
	if h.fetchErr != nil {
		return nil, h.fetchErr
	}
	out := make(map[string]string)
	for _, p := range paths {
		if c, ok := h.files[p]; ok {
			out[p] = c
		}
	}
	return out, nil
}

// mockPrompts serves fixed templates.
type mockPrompts struct {
	prompts map[string]string
	err     error
}

func (m *mockPrompts) Load(name string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	p, ok := m.prompts[name]
	if !ok {
		return "", fmt.Errorf("prompt %q: %w", name, domain.ErrNotFound)
	}
	return p, nil
}

func (m *mockPrompts) Reload() {}

// failingCache rejects every write.
type failingCache struct{}

func (failingCache) SaveSummaries(context.Context, string, []domain.Chunk, domain.SummaryStats) error {
	return errors.New("disk full")
}

func (failingCache) LoadSummaries(context.Context, string) (*domain.CacheRecord, error) {
	return nil, domain.ErrNotFound
}

func (failingCache) ClearSummaries(context.Context, string) error { return nil }

func (failingCache) ListSummaries(context.Context) ([]domain.CacheRecord, error) { return nil, nil }

// recordingObserver keeps every status it receives.
type recordingObserver struct {
	mu       sync.Mutex
	statuses []domain.ProcessingStatus
}

func (o *recordingObserver) OnStatus(s domain.ProcessingStatus) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.statuses = append(o.statuses, s)
}

func (o *recordingObserver) stages() []domain.Stage {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []domain.Stage
	for _, s := range o.statuses {
		if len(out) == 0 || out[len(out)-1] != s.Stage {
			out = append(out, s.Stage)
		}
	}
	return out
}

func (o *recordingObserver) last() domain.ProcessingStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.statuses[len(o.statuses)-1]
}
