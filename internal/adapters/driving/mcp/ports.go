package mcp

import (
	"github.com/zaibi117/readme-maker/internal/core/ports/driving"
)

// ProcessorFactory builds a processor for one tool call. A processor runs
// one pipeline at a time, so concurrent calls each get their own.
type ProcessorFactory func() (driving.RepositoryProcessor, error)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Library reads stored READMEs and cached summaries.
	Library driving.ReadmeLibrary

	// NewProcessor enables the generate_readme tool. Optional.
	NewProcessor ProcessorFactory
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Library == nil {
		return ErrMissingLibrary
	}
	return nil
}
