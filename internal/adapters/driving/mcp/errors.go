// Package mcp provides an MCP (Model Context Protocol) server adapter for the
// discovery updater. It lets AI assistants look up which discovery document
// serves an API without shelling out to the CLI.
package mcp

import "errors"

var (
	// ErrMissingResolver is returned when the resolver is not provided.
	ErrMissingResolver = errors.New("mcp: document resolver is required")

	// ErrMissingRepoDir is returned when neither the request nor the server
	// names a working copy.
	ErrMissingRepoDir = errors.New("mcp: repo_dir is required")
)
