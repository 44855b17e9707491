// Package chunker splits source files into summarizable chunks along
// structural boundaries.
package chunker

import (
	"strings"

	"github.com/zaibi117/readme-maker/internal/core/domain"
)

// Default line thresholds.
const (
	DefaultSmallFileLines = 300
	DefaultSoftMin        = 80
	DefaultSoftMax        = 120
	DefaultHardMax        = 150
)

// Chunker performs a greedy structure-aware split of file content.
// It is safe for concurrent use once built.
type Chunker struct {
	classifiers    []Classifier
	smallFileLines int
	softMin        int
	softMax        int
	hardMax        int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithClassifiers replaces the default structure classifiers.
func WithClassifiers(classifiers ...Classifier) Option {
	return func(c *Chunker) {
		c.classifiers = classifiers
	}
}

// WithSmallFileLines sets the line count up to which a file is one chunk.
func WithSmallFileLines(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.smallFileLines = n
		}
	}
}

// WithSoftMin sets the smallest chunk that may end at a structural boundary.
func WithSoftMin(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.softMin = n
		}
	}
}

// WithSoftMax sets the largest chunk that may end at a structural boundary.
func WithSoftMax(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.softMax = n
		}
	}
}

// WithHardMax sets the line count at which a chunk is always cut.
func WithHardMax(n int) Option {
	return func(c *Chunker) {
		if n > 0 {
			c.hardMax = n
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		classifiers:    DefaultClassifiers(),
		smallFileLines: DefaultSmallFileLines,
		softMin:        DefaultSoftMin,
		softMax:        DefaultSoftMax,
		hardMax:        DefaultHardMax,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Keep the soft window inside the hard cap.
	if c.softMax > c.hardMax {
		c.softMax = c.hardMax
	}
	if c.softMin > c.softMax {
		c.softMin = c.softMax
	}

	return c
}

// Chunk splits content into chunks with 1-based indices. Joining the
// chunk contents with "\n" reproduces content exactly.
func (c *Chunker) Chunk(path, content string) []domain.Chunk {
	lines := strings.Split(content, "\n")

	if len(lines) <= c.smallFileLines {
		return []domain.Chunk{{File: path, Index: 1, Content: content}}
	}

	var (
		chunks  []domain.Chunk
		current []string
		depth   int
		open    = make(map[Kind]bool, 3)
	)

	flush := func() {
		chunks = append(chunks, domain.Chunk{
			File:    path,
			Index:   len(chunks) + 1,
			Content: strings.Join(current, "\n"),
		})
		current = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		depth += strings.Count(trimmed, "{") - strings.Count(trimmed, "}")

		for _, cl := range c.classifiers {
			if cl.Matches(trimmed) {
				open[cl.Kind()] = true
			}
		}

		current = append(current, line)

		n := len(current)
		atBoundary := n >= c.softMin && n <= c.softMax &&
			depth == 0 && !anyOpen(open) && isBreakLine(trimmed)

		if atBoundary || n >= c.hardMax {
			flush()
			clear(open)
		}

		if depth == 0 {
			clear(open)
		}
	}

	if len(current) > 0 {
		flush()
	}

	return chunks
}

func anyOpen(open map[Kind]bool) bool {
	for _, v := range open {
		if v {
			return true
		}
	}
	return false
}

// isBreakLine reports whether a trimmed line is blank or comment-only.
func isBreakLine(trimmed string) bool {
	return trimmed == "" || strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*")
}
