package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/zaibi117/readme-maker/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for readme-maker resources.
	uriScheme = "readme://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "repos",
		Name:        "repos",
		Description: "Repositories with cached summaries",
		MIMEType:    "application/json",
	}, s.handleReposResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "repos/{owner}/{repo}/readme",
		Name:        "readme",
		Description: "Generated README of a repository",
		MIMEType:    "text/markdown",
	}, s.handleReadmeResource)
}

// handleReposResource lists cached repositories.
func (s *Server) handleReposResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	records, err := s.ports.Library.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing cached repositories: %w", err)
	}

	entries := make([]CacheEntryOutput, len(records))
	for i := range records {
		entries[i] = cacheEntry(&records[i], false)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling repositories: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleReadmeResource returns a stored README.
func (s *Server) handleReadmeResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	owner, repo := extractRepo(req.Params.URI)
	if owner == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Library.Readme(ctx, owner, repo)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("loading readme: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     doc.Content,
		}},
	}, nil
}

// extractRepo extracts owner and repo from readme://repos/{owner}/{repo}/readme.
func extractRepo(uri string) (owner, repo string) {
	const prefix = uriScheme + "repos/"
	const suffix = "/readme"

	if !strings.HasPrefix(uri, prefix) || !strings.HasSuffix(uri, suffix) {
		return "", ""
	}

	path := strings.TrimSuffix(strings.TrimPrefix(uri, prefix), suffix)
	owner, repo, ok := strings.Cut(path, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", ""
	}
	return owner, repo
}
