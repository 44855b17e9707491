// Package tui provides the terminal progress view for readme-maker.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/zaibi117/readme-maker/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Processor runs the pipeline and publishes status.
	Processor driving.RepositoryProcessor
}

// Job names the repository a TUI session processes.
type Job struct {
	Owner string
	Repo  string

	// FromCache synthesises from cached summaries instead of running the pipeline.
	FromCache bool
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Processor == nil {
		return ErrMissingProcessor
	}
	return nil
}

// Validate ensures the job names a repository.
func (j Job) Validate() error {
	if j.Owner == "" || j.Repo == "" {
		return ErrInvalidJob
	}
	return nil
}
