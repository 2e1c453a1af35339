package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
)

// uriScheme is the custom URI scheme for discovery resources.
const uriScheme = "discovery://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "documents",
		Name:        "documents",
		Description: "API id to document path mapping of the server's repository",
		MIMEType:    "application/json",
	}, s.handleDocumentsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{apiId}",
		Name:        "discovery-document",
		Description: "Raw discovery document serving an API id",
		MIMEType:    "application/json",
	}, s.handleDocumentContentResource)
}

// handleDocumentsResource returns the full mapping for the server's repository.
func (s *Server) handleDocumentsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.RepoDir == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docs, err := s.ports.Resolver.Resolve(ctx, s.ports.RepoDir, domain.ResolveOptions{})
	if err != nil {
		return nil, fmt.Errorf("resolving documents: %w", err)
	}

	data, err := json.MarshalIndent(docs.Documents(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling documents: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentContentResource returns the document serving one API id.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	apiID := extractAPIID(req.Params.URI)
	if apiID == "" || s.ports.RepoDir == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	docs, err := s.ports.Resolver.Resolve(ctx, s.ports.RepoDir, domain.ResolveOptions{})
	if err != nil {
		return nil, fmt.Errorf("resolving documents: %w", err)
	}

	path, ok := docs[apiID]
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(content),
		}},
	}, nil
}

// extractAPIID extracts the API id from a URI like discovery://documents/{apiId}.
func extractAPIID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
