package domain

import "strings"

// failureMarkerPrefix opens every summary that records a failed summarisation.
const failureMarkerPrefix = "[Summarization failed"

// Chunk is a contiguous, ordered slice of one file's content.
// Concatenating a file's chunks in Index order, joined by newlines,
// reconstructs the file exactly.
type Chunk struct {
	// File is the source path within the repository.
	File string

	// Index is 1-based and unique per file.
	Index int

	// Content is the raw text slice.
	Content string

	// Summary is set once by the summarizer. It may hold a failure marker.
	Summary string
}

// HasValidSummary reports whether the chunk carries a usable summary.
func (c Chunk) HasValidSummary() bool {
	return strings.TrimSpace(c.Summary) != "" && !IsFailureMarker(c.Summary)
}

// FailureMarker renders the summary placeholder for a recorded failure.
func FailureMarker(err error) string {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return failureMarkerPrefix + ": " + msg + "]"
}

// IsFailureMarker reports whether a summary is a failure placeholder.
func IsFailureMarker(summary string) bool {
	return strings.HasPrefix(strings.TrimSpace(summary), failureMarkerPrefix)
}

// SummaryStats counts the outcome of a summarisation pass.
type SummaryStats struct {
	Total      int
	Successful int
	Skipped    int
	Failed     int
}

// Add accumulates another set of counts.
func (s SummaryStats) Add(o SummaryStats) SummaryStats {
	return SummaryStats{
		Total:      s.Total + o.Total,
		Successful: s.Successful + o.Successful,
		Skipped:    s.Skipped + o.Skipped,
		Failed:     s.Failed + o.Failed,
	}
}

// CountSummaries derives stats from a stored chunk list. Skipped chunks are
// absent from such lists, so Skipped is always zero here.
func CountSummaries(chunks []Chunk) SummaryStats {
	stats := SummaryStats{Total: len(chunks)}
	for _, c := range chunks {
		if c.HasValidSummary() {
			stats.Successful++
		} else {
			stats.Failed++
		}
	}
	return stats
}
