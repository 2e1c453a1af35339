package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
)

// ResolveInput is the input schema for the resolve_discovery_documents tool.
type ResolveInput struct {
	RepoDir       string   `json:"repo_dir,omitempty" jsonschema:"working copy root; defaults to the server's repository"`
	PreferredOnly bool     `json:"preferred_only,omitempty" jsonschema:"keep only APIs marked preferred in the index"`
	Skip          []string `json:"skip,omitempty" jsonschema:"API ids to leave out of the result"`
}

// ResolveOutput is the output schema for the resolve_discovery_documents tool.
type ResolveOutput struct {
	Documents []DocumentOutput `json:"documents"`
	Count     int              `json:"count"`
}

// DocumentOutput is one resolved API.
type DocumentOutput struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}

// IndexInput is the input schema for the list_discovery_index tool.
type IndexInput struct {
	RepoDir string `json:"repo_dir,omitempty" jsonschema:"working copy root; defaults to the server's repository"`
}

// IndexOutput is the output schema for the list_discovery_index tool.
type IndexOutput struct {
	Entries []IndexEntryOutput `json:"entries"`
	Count   int                `json:"count"`
}

// IndexEntryOutput is one index entry.
type IndexEntryOutput struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Preferred bool   `json:"preferred"`
	Override  bool   `json:"override"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "resolve_discovery_documents",
		Description: "Map each API id in the discovery corpus to its document path",
	}, s.handleResolve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_discovery_index",
		Description: "List the APIs in the discovery index and whether each is preferred",
	}, s.handleListIndex)
}

// handleResolve handles the resolve_discovery_documents tool invocation.
func (s *Server) handleResolve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolveInput,
) (*mcp.CallToolResult, ResolveOutput, error) {
	dir, err := s.ports.repoDir(input.RepoDir)
	if err != nil {
		return nil, ResolveOutput{}, err
	}

	opts := domain.ResolveOptions{PreferredOnly: input.PreferredOnly, Skip: input.Skip}
	docs, err := s.ports.Resolver.Resolve(ctx, dir, opts)
	if err != nil {
		return nil, ResolveOutput{}, err
	}

	sorted := docs.Documents()
	output := ResolveOutput{
		Documents: make([]DocumentOutput, len(sorted)),
		Count:     len(sorted),
	}
	for i, d := range sorted {
		output.Documents[i] = DocumentOutput{ID: d.ID, Path: d.Path}
	}

	return nil, output, nil
}

// handleListIndex handles the list_discovery_index tool invocation.
func (s *Server) handleListIndex(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexInput,
) (*mcp.CallToolResult, IndexOutput, error) {
	dir, err := s.ports.repoDir(input.RepoDir)
	if err != nil {
		return nil, IndexOutput{}, err
	}

	index, err := s.ports.Resolver.LoadIndex(ctx, dir)
	if err != nil {
		return nil, IndexOutput{}, err
	}

	output := IndexOutput{
		Entries: make([]IndexEntryOutput, len(index.Items)),
		Count:   len(index.Items),
	}
	for i, e := range index.Items {
		output.Entries[i] = IndexEntryOutput{
			ID:        e.ID,
			Title:     e.Title,
			Preferred: e.EffectivelyPreferred(),
			Override:  domain.IsPreferredOverride(e.ID),
		}
	}

	return nil, output, nil
}
