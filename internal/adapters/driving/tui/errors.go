package tui

import "errors"

// ErrMissingProcessor is returned when the processor is not provided.
var ErrMissingProcessor = errors.New("tui: processor is required")

// ErrInvalidJob is returned when the job names no repository.
var ErrInvalidJob = errors.New("tui: owner and repo are required")
