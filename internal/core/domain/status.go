package domain

import "time"

// Stage is a state of the processing state machine.
type Stage string

// Processing stages, in pipeline order. StageLoadingCache is the alternate
// entry for cache replay; StageComplete, StageError and StageStopped are terminal.
const (
	StageIdle               Stage = "idle"
	StageLoadingCache       Stage = "loading-cache"
	StageFetchingTree       Stage = "fetching-tree"
	StageFilteringFiles     Stage = "filtering-files"
	StageDownloadingContent Stage = "downloading-content"
	StageChunkingFiles      Stage = "chunking-files"
	StageSummarizingChunks  Stage = "summarizing-chunks"
	StageGeneratingReadme   Stage = "generating-readme"
	StageComplete           Stage = "complete"
	StageError              Stage = "error"
	StageStopped            Stage = "stopped"
)

// IsTerminal reports whether no further transitions may follow.
func (s Stage) IsTerminal() bool {
	return s == StageComplete || s == StageError || s == StageStopped
}

// String returns the string representation.
func (s Stage) String() string {
	return string(s)
}

// ProcessingStatus is an immutable snapshot of a run's observable state.
// Transition methods return a new value and never modify the receiver.
type ProcessingStatus struct {
	Stage   Stage
	Message string

	// Progress is an estimate in [0, 100].
	Progress int

	TotalFiles      int
	ProcessedFiles  int
	TotalChunks     int
	ProcessedChunks int
	CurrentFile     string

	// Error holds the failure message when Stage is StageError.
	Error string

	UpdatedAt time.Time
}

// NewStatus returns the idle status.
func NewStatus() ProcessingStatus {
	return ProcessingStatus{Stage: StageIdle, Message: "Ready", UpdatedAt: time.Now()}
}

// Transition moves to a stage with a message and progress estimate.
func (s ProcessingStatus) Transition(stage Stage, message string, progress int) ProcessingStatus {
	s.Stage = stage
	s.Message = message
	s.Progress = clampProgress(progress)
	s.UpdatedAt = time.Now()
	return s
}

// WithFiles sets the file counters.
func (s ProcessingStatus) WithFiles(processed, total int) ProcessingStatus {
	s.ProcessedFiles = processed
	s.TotalFiles = total
	return s
}

// WithChunks sets the chunk counters.
func (s ProcessingStatus) WithChunks(processed, total int) ProcessingStatus {
	s.ProcessedChunks = processed
	s.TotalChunks = total
	return s
}

// WithCurrentFile sets the file being worked on.
func (s ProcessingStatus) WithCurrentFile(path string) ProcessingStatus {
	s.CurrentFile = path
	return s
}

// Failed moves to StageError carrying the error text.
func (s ProcessingStatus) Failed(message string, err error) ProcessingStatus {
	s = s.Transition(StageError, message, 0)
	if err != nil {
		s.Error = err.Error()
	}
	return s
}

// Stopped moves to StageStopped, keeping counters and progress.
func (s ProcessingStatus) Stopped() ProcessingStatus {
	progress := s.Progress
	s = s.Transition(StageStopped, "Processing stopped", progress)
	return s
}

func clampProgress(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
