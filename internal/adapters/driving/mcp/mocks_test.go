package mcp

import (
	"context"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
)

// mockResolver is a mock implementation of driving.DocumentResolver.
type mockResolver struct {
	docs     domain.DocumentMap
	index    *domain.DiscoveryIndex
	err      error
	lastDir  string
	lastOpts domain.ResolveOptions
}

func (m *mockResolver) Resolve(
	_ context.Context,
	repoDir string,
	opts domain.ResolveOptions,
) (domain.DocumentMap, error) {
	m.lastDir = repoDir
	m.lastOpts = opts
	return m.docs, m.err
}

func (m *mockResolver) LoadIndex(_ context.Context, repoDir string) (*domain.DiscoveryIndex, error) {
	m.lastDir = repoDir
	return m.index, m.err
}
