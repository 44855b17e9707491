package driven

import (
	"context"

	"github.com/zaibi117/readme-maker/internal/core/domain"
)

// RepositoryHost lists and downloads files of a hosted repository.
type RepositoryHost interface {
	// FetchRepoInfo returns descriptive metadata. Callers treat failures as non-fatal.
	FetchRepoInfo(ctx context.Context, owner, repo string) (*domain.RepoInfo, error)

	// FetchTree returns every entry of the repository's default branch tree.
	FetchTree(ctx context.Context, owner, repo string) ([]domain.FileEntry, error)

	// FetchFileContents downloads the given paths.
	// Paths that could not be downloaded are absent from the result.
	FetchFileContents(ctx context.Context, owner, repo string, paths []string) (map[string]string, error)
}
