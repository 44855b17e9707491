package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/zaibi117/readme-maker/internal/adapters/driven/storage/memory"
	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driving"
	"github.com/zaibi117/readme-maker/internal/core/services"
)

// MockProcessor implements driving.RepositoryProcessor for command tests.
type MockProcessor struct {
	Result   *driving.Result
	Err      error
	Statuses []domain.ProcessingStatus

	mu        sync.Mutex
	calls     []string
	stopped   bool
}

func (m *MockProcessor) Process(_ context.Context, owner, repo string) (*driving.Result, error) {
	m.record("process " + owner + "/" + repo)
	return m.Result, m.Err
}

func (m *MockProcessor) ProcessFromCache(_ context.Context, owner, repo string) (*driving.Result, error) {
	m.record("cache " + owner + "/" + repo)
	return m.Result, m.Err
}

func (m *MockProcessor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockProcessor) Status() domain.ProcessingStatus { return domain.NewStatus() }

func (m *MockProcessor) Subscribe(_ int) (<-chan domain.ProcessingStatus, func()) {
	ch := make(chan domain.ProcessingStatus, len(m.Statuses))
	for _, s := range m.Statuses {
		ch <- s
	}
	var once sync.Once
	return ch, func() { once.Do(func() { close(ch) }) }
}

func (m *MockProcessor) Partial() []domain.Chunk { return nil }

func (m *MockProcessor) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockProcessor) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

// MockValidator implements driven.LLMValidator.
type MockValidator struct {
	Err      error
	Provider domain.AIProvider
}

func (m *MockValidator) ValidateLLM(settings *domain.LLMSettings) error {
	m.Provider = settings.Provider
	return m.Err
}

// testEnv holds the in-memory services installed for one test.
type testEnv struct {
	settings *services.SettingsService
	cache    *memory.SummaryCache
	docs     *memory.DocumentStore
	options  []ProcessorOptions
}

// setupServices installs in-memory services and a processor factory
// returning proc, restoring the previous services on cleanup.
func setupServices(t *testing.T, proc driving.RepositoryProcessor) *testEnv {
	t.Helper()

	prev := Services{
		Settings:     settingsService,
		Library:      libraryService,
		Validator:    llmValidator,
		NewProcessor: processorFactory,
		WatchPrompts: promptWatcher,
	}

	env := &testEnv{
		settings: services.NewSettingsService(memory.NewConfigStore(), services.WithEnv(func(string) string { return "" })),
		cache:    memory.NewSummaryCache(),
		docs:     memory.NewDocumentStore(),
	}
	s := Services{
		Settings: env.settings,
		Library:  services.NewLibraryService(env.cache, env.docs),
	}
	if proc != nil {
		s.NewProcessor = func(opts ProcessorOptions) (driving.RepositoryProcessor, error) {
			env.options = append(env.options, opts)
			return proc, nil
		}
	}
	SetServices(s)

	t.Cleanup(func() { SetServices(prev) })
	return env
}

// executeCommand runs rootCmd with args and returns stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags() {
	verbose = false
	generateFromCache = false
	generateOut = ""
	generateTUI = false
	generateIgnore = nil
	generateMaxFiles = 0
	showRender = false
	showInfo = false
	cacheClearAll = false
	cacheClearReadme = false
	mcpHTTPAddr = ""
}
