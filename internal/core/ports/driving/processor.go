package driving

import (
	"context"
	"time"

	"github.com/zaibi117/readme-maker/internal/core/domain"
)

// RepositoryProcessor turns a repository into a generated README.
// A processor runs at most one pipeline at a time.
type RepositoryProcessor interface {
	// Process runs the full pipeline. A stopped run returns a Result with
	// Stopped set and a nil error.
	Process(ctx context.Context, owner, repo string) (*Result, error)

	// ProcessFromCache synthesises a README from previously cached summaries.
	// Returns domain.ErrNotFound when nothing is cached.
	ProcessFromCache(ctx context.Context, owner, repo string) (*Result, error)

	// Stop cancels the active run and forces the stopped stage.
	Stop()

	// Status returns the current status snapshot.
	Status() domain.ProcessingStatus

	// Subscribe returns a channel receiving every status transition and a
	// function that ends the subscription.
	Subscribe(buffer int) (<-chan domain.ProcessingStatus, func())

	// Partial returns the chunks summarised so far in the active or last run.
	Partial() []domain.Chunk
}

// Result is the outcome of a processing run.
type Result struct {
	// Document is the README markdown. Empty when Stopped.
	Document string

	// Chunks are the summarised chunks the document was built from.
	Chunks []domain.Chunk

	Stats domain.SummaryStats

	// DocumentID is the stored document ID, empty if saving failed.
	DocumentID string

	FromCache bool
	Stopped   bool

	// Warning explains why Document is the fallback README, e.g.
	// domain.ErrNoRelevantFiles. Nil for a synthesised document.
	Warning error

	Duration time.Duration
}
