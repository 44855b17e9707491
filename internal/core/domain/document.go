package domain

import "time"

// Document is a generated README persisted by the document store.
type Document struct {
	// ID is assigned by the store on save.
	ID string

	// Key is the RepoKey of the repository.
	Key string

	Owner string
	Repo  string

	// Content is the README markdown.
	Content string

	// ChunkCount is the number of summarised chunks the README was built from.
	ChunkCount int

	// ProcessingTime is the wall time of the run that produced the document.
	ProcessingTime time.Duration

	// FromCache is true when the document was synthesised from cached summaries.
	FromCache bool

	GeneratedAt time.Time
}

// CacheRecord holds the summarised chunks of one repository.
type CacheRecord struct {
	// Key is the RepoKey of the repository.
	Key string

	Owner string
	Repo  string

	Chunks []Chunk
	Stats  SummaryStats

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RateLimitEntry is the fixed-window state of one limiter key.
type RateLimitEntry struct {
	// Count is the number of requests admitted in the current window.
	Count int

	// ResetTime is when the current window ends.
	ResetTime time.Time
}
