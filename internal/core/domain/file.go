package domain

import (
	"fmt"
	"path"
	"strings"
)

// Tree entry types as reported by the tree listing.
const (
	EntryTypeBlob = "blob"
	EntryTypeTree = "tree"
)

// FileEntry represents one entry in a repository tree snapshot.
type FileEntry struct {
	// Path is unique within a tree snapshot, slash separated.
	Path string

	// Size is the blob size in bytes.
	Size int64

	// Type is EntryTypeBlob or EntryTypeTree.
	Type string
}

// Name returns the final path segment.
func (f FileEntry) Name() string {
	return path.Base(f.Path)
}

// IsBlob reports whether the entry is a file. An empty type is treated as a blob.
func (f FileEntry) IsBlob() bool {
	return f.Type == "" || f.Type == EntryTypeBlob
}

// RepoInfo carries optional descriptive metadata about a repository.
type RepoInfo struct {
	Owner         string
	Name          string
	Description   string
	Language      string
	DefaultBranch string
	Private       bool
}

// FullName returns owner/name.
func (r RepoInfo) FullName() string {
	return r.Owner + "/" + r.Name
}

// RepoKey returns the case-insensitive storage key for a repository.
func RepoKey(owner, repo string) string {
	return strings.ToLower(owner + "/" + repo)
}

// ParseRepoRef parses "owner/repo", "github.com/owner/repo" or a full
// https URL into owner and repository name.
func ParseRepoRef(ref string) (owner, repo string, err error) {
	s := strings.TrimSpace(ref)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "github.com/")
	s = strings.TrimSuffix(s, "/")
	s = strings.TrimSuffix(s, ".git")

	parts := strings.Split(s, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: expected owner/repo, got %q", ErrInvalidInput, ref)
	}
	return parts[0], parts[1], nil
}
