// Package mcp provides an MCP (Model Context Protocol) server adapter for readme-maker.
// It lets AI assistants generate READMEs and read cached results.
package mcp

import "errors"

// ErrMissingLibrary is returned when the readme library is not provided.
var ErrMissingLibrary = errors.New("mcp: readme library is required")

// ErrGenerationDisabled is returned by generate_readme when no processor factory is set.
var ErrGenerationDisabled = errors.New("mcp: README generation is not configured")
