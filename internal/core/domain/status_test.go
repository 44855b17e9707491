package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStage_IsTerminal(t *testing.T) {
	terminal := []Stage{StageComplete, StageError, StageStopped}
	for _, s := range terminal {
		assert.True(t, s.IsTerminal(), s.String())
	}

	active := []Stage{
		StageIdle, StageLoadingCache, StageFetchingTree, StageFilteringFiles,
		StageDownloadingContent, StageChunkingFiles, StageSummarizingChunks, StageGeneratingReadme,
	}
	for _, s := range active {
		assert.False(t, s.IsTerminal(), s.String())
	}
}

func TestNewStatus(t *testing.T) {
	s := NewStatus()
	assert.Equal(t, StageIdle, s.Stage)
	assert.Equal(t, "Ready", s.Message)
	assert.Zero(t, s.Progress)
	assert.False(t, s.UpdatedAt.IsZero())
}

func TestProcessingStatus_TransitionDoesNotMutate(t *testing.T) {
	base := NewStatus().WithFiles(2, 10)

	next := base.Transition(StageDownloadingContent, "Downloading", 30).WithCurrentFile("main.go")

	assert.Equal(t, StageIdle, base.Stage)
	assert.Empty(t, base.CurrentFile)
	assert.Equal(t, StageDownloadingContent, next.Stage)
	assert.Equal(t, 30, next.Progress)
	assert.Equal(t, 2, next.ProcessedFiles)
	assert.Equal(t, 10, next.TotalFiles)
	assert.Equal(t, "main.go", next.CurrentFile)
}

func TestProcessingStatus_ProgressClamped(t *testing.T) {
	assert.Equal(t, 0, NewStatus().Transition(StageFetchingTree, "", -5).Progress)
	assert.Equal(t, 100, NewStatus().Transition(StageComplete, "", 140).Progress)
}

func TestProcessingStatus_Failed(t *testing.T) {
	s := NewStatus().Transition(StageFetchingTree, "Fetching", 10).Failed("Processing failed", errors.New("404"))

	assert.Equal(t, StageError, s.Stage)
	assert.Equal(t, "404", s.Error)
	assert.Zero(t, s.Progress)
}

func TestProcessingStatus_Stopped(t *testing.T) {
	s := NewStatus().Transition(StageSummarizingChunks, "Summarizing", 78).WithChunks(4, 9).Stopped()

	assert.Equal(t, StageStopped, s.Stage)
	assert.Equal(t, 78, s.Progress)
	assert.Equal(t, 4, s.ProcessedChunks)
}
