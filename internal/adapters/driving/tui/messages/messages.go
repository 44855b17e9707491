// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driving"
)

// StatusUpdated carries one processor status transition.
type StatusUpdated struct {
	Status domain.ProcessingStatus
}

// StatusClosed is sent when the status subscription ends.
type StatusClosed struct{}

// RunFinished carries the outcome of a processing run.
type RunFinished struct {
	Result *driving.Result
	Err    error
}

// StageLabel returns a human readable name for a stage.
func StageLabel(stage domain.Stage) string {
	switch stage {
	case domain.StageIdle:
		return "Idle"
	case domain.StageLoadingCache:
		return "Loading cache"
	case domain.StageFetchingTree:
		return "Fetching tree"
	case domain.StageFilteringFiles:
		return "Filtering files"
	case domain.StageDownloadingContent:
		return "Downloading"
	case domain.StageChunkingFiles:
		return "Chunking"
	case domain.StageSummarizingChunks:
		return "Summarizing"
	case domain.StageGeneratingReadme:
		return "Writing README"
	case domain.StageComplete:
		return "Complete"
	case domain.StageError:
		return "Failed"
	case domain.StageStopped:
		return "Stopped"
	default:
		return string(stage)
	}
}
