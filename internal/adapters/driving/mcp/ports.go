package mcp

import (
	"github.com/custodia-labs/discovery-updater/internal/core/ports/driving"
)

// Ports aggregates the driving ports the MCP server needs.
type Ports struct {
	// Resolver answers document mapping and index queries.
	Resolver driving.DocumentResolver

	// RepoDir is the working copy used when a request names none.
	RepoDir string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Resolver == nil {
		return ErrMissingResolver
	}
	return nil
}

// repoDir returns requested, falling back to the configured working copy.
func (p *Ports) repoDir(requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	if p.RepoDir != "" {
		return p.RepoDir, nil
	}
	return "", ErrMissingRepoDir
}
