// Package domain defines the core business entities for readme-maker.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FileEntry: One blob in a repository tree listing
//   - Chunk: A summarizable slice of one file's content
//   - ProcessingStatus: Observable state of a processing run
//   - CacheRecord: Stored chunk summaries for a repository
//   - Document: A generated README
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
