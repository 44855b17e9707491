package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driving"
)

func TestGenerateCmd_Registered(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"generate"})
	require.NoError(t, err)
	assert.Equal(t, "generate <owner/repo|url>", cmd.Use)

	for _, name := range []string{"from-cache", "out", "tui", "ignore", "max-files"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestGenerateCmd_WritesReadmeToStdout(t *testing.T) {
	proc := &MockProcessor{
		Result: &driving.Result{
			Document:   "# hello\n\nA tool.",
			DocumentID: "doc-1",
			Stats:      domain.SummaryStats{Total: 4, Successful: 3, Skipped: 1},
			Duration:   2 * time.Second,
		},
		Statuses: []domain.ProcessingStatus{
			domain.NewStatus(),
			domain.NewStatus().Transition(domain.StageFetchingTree, "Fetching repository tree", 10),
			domain.NewStatus().Transition(domain.StageComplete, "README generated", 100),
		},
	}
	setupServices(t, proc)

	stdout, stderr, err := executeCommand(t, "generate", "https://github.com/octo/hello")

	require.NoError(t, err)
	assert.Equal(t, "# hello\n\nA tool.\n", stdout)
	assert.Contains(t, stderr, "[ 10%] Fetching repository tree")
	assert.Contains(t, stderr, "[100%] README generated")
	assert.Contains(t, stderr, "Built from repository: 4 chunks (3 summarised, 1 skipped, 0 failed)")
	assert.NotContains(t, stderr, "Warning")
	assert.Equal(t, []string{"process octo/hello"}, proc.Calls())
}

func TestGenerateCmd_FromCacheToFile(t *testing.T) {
	proc := &MockProcessor{Result: &driving.Result{Document: "# cached\n", FromCache: true}}
	setupServices(t, proc)
	out := filepath.Join(t.TempDir(), "README.md")

	stdout, stderr, err := executeCommand(t, "generate", "octo/hello", "--from-cache", "-o", out)

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "README written to "+out)
	assert.Contains(t, stderr, "Built from cache")
	assert.Contains(t, stderr, "Warning: README was not saved")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "# cached\n", string(data))
	assert.Equal(t, []string{"cache octo/hello"}, proc.Calls())
}

func TestGenerateCmd_ReportsFallbackWarning(t *testing.T) {
	proc := &MockProcessor{Result: &driving.Result{
		Document:   domain.FallbackReadme("octo", "hello"),
		DocumentID: "doc-2",
		Warning:    fmt.Errorf("octo/hello: %w", domain.ErrNoRelevantFiles),
	}}
	setupServices(t, proc)

	_, stderr, err := executeCommand(t, "generate", "octo/hello")

	require.NoError(t, err)
	assert.Contains(t, stderr, "Warning: fallback README written (octo/hello: no relevant files)")
}

func TestGenerateCmd_PassesProcessorOptions(t *testing.T) {
	proc := &MockProcessor{Result: &driving.Result{Document: "# x"}}
	env := setupServices(t, proc)

	_, _, err := executeCommand(t, "generate", "octo/hello", "--ignore", "docs/**", "--ignore", "*.pb.go", "--max-files", "12")

	require.NoError(t, err)
	require.Len(t, env.options, 1)
	assert.Equal(t, []string{"docs/**", "*.pb.go"}, env.options[0].IgnorePatterns)
	assert.Equal(t, 12, env.options[0].MaxFiles)
}

func TestGenerateCmd_Stopped(t *testing.T) {
	proc := &MockProcessor{Result: &driving.Result{
		Stopped: true,
		Chunks:  []domain.Chunk{{File: "a.go", Index: 1}, {File: "a.go", Index: 2}},
	}}
	setupServices(t, proc)

	stdout, stderr, err := executeCommand(t, "generate", "octo/hello")

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Stopped after 2 summarised chunks")
}

func TestGenerateCmd_Errors(t *testing.T) {
	t.Run("invalid repository", func(t *testing.T) {
		setupServices(t, &MockProcessor{})

		_, _, err := executeCommand(t, "generate", "not-a-repo")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("nothing cached", func(t *testing.T) {
		setupServices(t, &MockProcessor{Err: domain.ErrNotFound})

		_, _, err := executeCommand(t, "generate", "octo/hello", "--from-cache")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no cached summaries for octo/hello")
	})

	t.Run("pipeline failure", func(t *testing.T) {
		setupServices(t, &MockProcessor{
			Err: errors.New("boom"),
			Statuses: []domain.ProcessingStatus{
				domain.NewStatus().Failed("Processing failed", errors.New("boom")),
			},
		})

		_, stderr, err := executeCommand(t, "generate", "octo/hello")

		assert.EqualError(t, err, "boom")
		assert.Contains(t, stderr, "Processing failed: boom")
	})

	t.Run("no processor", func(t *testing.T) {
		setupServices(t, nil)

		_, _, err := executeCommand(t, "generate", "octo/hello")

		assert.EqualError(t, err, "processor not configured")
	})
}

func TestPrintStatuses_CollapsesRepeatedStages(t *testing.T) {
	ch := make(chan domain.ProcessingStatus, 4)
	base := domain.NewStatus()
	ch <- base.Transition(domain.StageSummarizingChunks, "Summarizing", 40)
	ch <- base.Transition(domain.StageSummarizingChunks, "Summarizing", 60)
	ch <- base.Transition(domain.StageGeneratingReadme, "Generating README", 95)
	close(ch)

	var sb strings.Builder
	printStatuses(&sb, ch)

	assert.Equal(t, "[ 40%] Summarizing\n[ 95%] Generating README\n", sb.String())
}
