package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/core/ports/driving"
)

// GenerateInput is the input schema for the generate_readme tool.
type GenerateInput struct {
	Repository string `json:"repository" jsonschema:"GitHub repository as owner/repo or URL"`
	FromCache  bool   `json:"from_cache,omitempty" jsonschema:"build from cached summaries instead of re-reading the repository"`
}

// StatsOutput mirrors domain.SummaryStats.
type StatsOutput struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}

// GenerateOutput is the output schema for the generate_readme tool.
type GenerateOutput struct {
	Repository string      `json:"repository"`
	Document   string      `json:"document"`
	DocumentID string      `json:"document_id,omitempty"`
	Stats      StatsOutput `json:"stats"`
	FromCache  bool        `json:"from_cache"`
	Stopped    bool        `json:"stopped"`
	Warning    string      `json:"warning,omitempty"`
	DurationMs int64       `json:"duration_ms"`
}

// RepositoryInput names one repository.
type RepositoryInput struct {
	Repository string `json:"repository" jsonschema:"GitHub repository as owner/repo or URL"`
}

// ReadmeOutput is the output schema for the get_readme tool.
type ReadmeOutput struct {
	Repository  string    `json:"repository"`
	DocumentID  string    `json:"document_id"`
	Content     string    `json:"content"`
	ChunkCount  int       `json:"chunk_count"`
	FromCache   bool      `json:"from_cache"`
	GeneratedAt time.Time `json:"generated_at"`
}

// SummariesInput is the input schema for the cached_summaries tool.
type SummariesInput struct {
	Repository string `json:"repository,omitempty" jsonschema:"repository to show; empty lists every cached repository"`
}

// FileSummaryOutput holds the chunk summaries of one file.
type FileSummaryOutput struct {
	File      string   `json:"file"`
	Summaries []string `json:"summaries"`
}

// CacheEntryOutput describes one cached repository.
type CacheEntryOutput struct {
	Repository string              `json:"repository"`
	Stats      StatsOutput         `json:"stats"`
	UpdatedAt  time.Time           `json:"updated_at"`
	Files      []FileSummaryOutput `json:"files,omitempty"`
}

// SummariesOutput is the output schema for the cached_summaries tool.
type SummariesOutput struct {
	Entries []CacheEntryOutput `json:"entries"`
	Count   int                `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	if s.ports.NewProcessor != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "generate_readme",
			Description: "Generate a README.md for a GitHub repository by summarising its source files",
		}, s.handleGenerate)
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_readme",
		Description: "Return the most recently generated README for a repository",
	}, s.handleGetReadme)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "cached_summaries",
		Description: "Show cached per-file summaries for a repository, or list cached repositories",
	}, s.handleCachedSummaries)
}

// handleGenerate runs the pipeline for one repository.
func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, GenerateOutput, error) {
	if s.ports.NewProcessor == nil {
		return nil, GenerateOutput{}, ErrGenerationDisabled
	}
	owner, repo, err := domain.ParseRepoRef(input.Repository)
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	proc, err := s.ports.NewProcessor()
	if err != nil {
		return nil, GenerateOutput{}, fmt.Errorf("creating processor: %w", err)
	}

	var res *driving.Result
	if input.FromCache {
		res, err = proc.ProcessFromCache(ctx, owner, repo)
	} else {
		res, err = proc.Process(ctx, owner, repo)
	}
	if err != nil {
		return nil, GenerateOutput{}, err
	}

	out := GenerateOutput{
		Repository: domain.RepoKey(owner, repo),
		Document:   res.Document,
		DocumentID: res.DocumentID,
		Stats:      statsOutput(res.Stats),
		FromCache:  res.FromCache,
		Stopped:    res.Stopped,
		DurationMs: res.Duration.Milliseconds(),
	}
	if res.Warning != nil {
		out.Warning = res.Warning.Error()
	}
	return nil, out, nil
}

// handleGetReadme returns the stored README.
func (s *Server) handleGetReadme(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RepositoryInput,
) (*mcp.CallToolResult, ReadmeOutput, error) {
	owner, repo, err := domain.ParseRepoRef(input.Repository)
	if err != nil {
		return nil, ReadmeOutput{}, err
	}

	doc, err := s.ports.Library.Readme(ctx, owner, repo)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ReadmeOutput{}, fmt.Errorf("no README generated yet for %s", domain.RepoKey(owner, repo))
	}
	if err != nil {
		return nil, ReadmeOutput{}, err
	}

	return nil, ReadmeOutput{
		Repository:  doc.Key,
		DocumentID:  doc.ID,
		Content:     doc.Content,
		ChunkCount:  doc.ChunkCount,
		FromCache:   doc.FromCache,
		GeneratedAt: doc.GeneratedAt,
	}, nil
}

// handleCachedSummaries shows one cache record or lists all of them.
func (s *Server) handleCachedSummaries(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummariesInput,
) (*mcp.CallToolResult, SummariesOutput, error) {
	if input.Repository == "" {
		records, err := s.ports.Library.ListSummaries(ctx)
		if err != nil {
			return nil, SummariesOutput{}, err
		}
		out := SummariesOutput{Entries: make([]CacheEntryOutput, len(records)), Count: len(records)}
		for i := range records {
			out.Entries[i] = cacheEntry(&records[i], false)
		}
		return nil, out, nil
	}

	owner, repo, err := domain.ParseRepoRef(input.Repository)
	if err != nil {
		return nil, SummariesOutput{}, err
	}
	rec, err := s.ports.Library.Summaries(ctx, owner, repo)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, SummariesOutput{Entries: []CacheEntryOutput{}}, nil
	}
	if err != nil {
		return nil, SummariesOutput{}, err
	}

	return nil, SummariesOutput{Entries: []CacheEntryOutput{cacheEntry(rec, true)}, Count: 1}, nil
}

func statsOutput(s domain.SummaryStats) StatsOutput {
	return StatsOutput{Total: s.Total, Successful: s.Successful, Skipped: s.Skipped, Failed: s.Failed}
}

// cacheEntry converts a record, grouping valid summaries by file in first-seen order.
func cacheEntry(rec *domain.CacheRecord, withFiles bool) CacheEntryOutput {
	entry := CacheEntryOutput{
		Repository: rec.Key,
		Stats:      statsOutput(rec.Stats),
		UpdatedAt:  rec.UpdatedAt,
	}
	if !withFiles {
		return entry
	}

	index := make(map[string]int)
	for _, c := range rec.Chunks {
		if !c.HasValidSummary() {
			continue
		}
		i, ok := index[c.File]
		if !ok {
			i = len(entry.Files)
			index[c.File] = i
			entry.Files = append(entry.Files, FileSummaryOutput{File: c.File})
		}
		entry.Files[i].Summaries = append(entry.Files[i].Summaries, c.Summary)
	}
	return entry
}
