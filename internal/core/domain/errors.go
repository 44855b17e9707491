package domain

import (
	"context"
	"errors"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown provider or backend type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates an API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrAuthRequired indicates the operation requires a token but none is configured.
	ErrAuthRequired = errors.New("authentication required")

	// ErrProcessingInProgress indicates a run is already active on this processor.
	ErrProcessingInProgress = errors.New("processing in progress")

	// ErrNoRelevantFiles indicates filtering left nothing to summarise.
	ErrNoRelevantFiles = errors.New("no relevant files")
)

// skippableMarkers are lowercase fragments of transient backend failures.
// A chunk whose summarisation fails with one of these is dropped, not recorded.
var skippableMarkers = []string{
	"overloaded",
	"unavailable",
	"timeout",
	"timed out",
	"rate limit",
	"rate_limit",
	"ratelimit",
	"quota",
	"resource_exhausted",
	"too many requests",
	"internal server error",
	"bad gateway",
	"gateway timeout",
	"429",
	"500",
	"502",
	"503",
	"504",
}

// IsSkippableError reports whether a backend error is transient enough that
// the affected chunk should be skipped rather than recorded as failed.
func IsSkippableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrRateLimited) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range skippableMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
