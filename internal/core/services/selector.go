package services

import (
	"path"
	"slices"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/logger"
)

// FileSelector picks the repository files worth summarising.
type FileSelector struct {
	filter domain.FileFilter
	extra  *ignore.GitIgnore

	ignoredFiles map[string]bool
	important    map[string]bool
}

// SelectorOption configures the file selector.
type SelectorOption func(*FileSelector)

// WithFileFilter replaces the default selection rules.
func WithFileFilter(f domain.FileFilter) SelectorOption {
	return func(s *FileSelector) {
		s.filter = f
	}
}

// WithIgnorePatterns adds gitignore-style patterns. Matching paths are dropped.
func WithIgnorePatterns(patterns ...string) SelectorOption {
	return func(s *FileSelector) {
		var lines []string
		for _, p := range patterns {
			if p = strings.TrimSpace(p); p != "" {
				lines = append(lines, p)
			}
		}
		if len(lines) > 0 {
			s.extra = ignore.CompileIgnoreLines(lines...)
		}
	}
}

// NewFileSelector creates a selector using domain.DefaultFileFilter unless overridden.
func NewFileSelector(opts ...SelectorOption) *FileSelector {
	s := &FileSelector{filter: domain.DefaultFileFilter()}
	for _, opt := range opts {
		opt(s)
	}
	if s.filter.MaxFileSize <= 0 {
		s.filter.MaxFileSize = domain.DefaultMaxFileSize
	}

	s.ignoredFiles = toSet(s.filter.IgnoredFiles)
	s.important = toSet(s.filter.ImportantFiles)
	return s
}

// FilterRelevantFiles drops ignored, binary, oversized and non-source
// entries and orders the rest: important files first, then by ascending size.
// The input slice is not modified.
func (s *FileSelector) FilterRelevantFiles(files []domain.FileEntry) []domain.FileEntry {
	selected := make([]domain.FileEntry, 0, len(files))
	for _, f := range files {
		if s.keep(f) {
			selected = append(selected, f)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		a, b := s.important[selected[i].Name()], s.important[selected[j].Name()]
		if a != b {
			return a
		}
		return selected[i].Size < selected[j].Size
	})

	logger.Debug("Selected %d of %d tree entries", len(selected), len(files))
	return selected
}

func (s *FileSelector) keep(f domain.FileEntry) bool {
	if !f.IsBlob() {
		return false
	}

	segments := strings.Split(path.Dir(f.Path), "/")
	for _, dir := range s.filter.IgnoredDirectories {
		if containsSegments(segments, strings.Split(dir, "/")) {
			return false
		}
	}

	name := f.Name()
	if s.ignoredFiles[name] {
		return false
	}

	lower := strings.ToLower(name)
	if hasAnySuffix(lower, s.filter.BinaryExtensions) {
		return false
	}

	if s.extra != nil && s.extra.MatchesPath(f.Path) {
		return false
	}

	if !hasAnySuffix(lower, s.filter.SourceExtensions) && strings.Contains(name, ".") {
		return false
	}

	return f.Size <= s.filter.MaxFileSize
}

// containsSegments reports whether want occurs as a consecutive run in segments.
func containsSegments(segments, want []string) bool {
	if len(want) == 0 || len(want) > len(segments) {
		return false
	}
	for i := 0; i+len(want) <= len(segments); i++ {
		if slices.Equal(segments[i:i+len(want)], want) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
