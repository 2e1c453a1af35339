package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
)

func TestServer_handleResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns sorted documents", func(t *testing.T) {
		resolver := &mockResolver{
			docs: domain.DocumentMap{
				"storage:v1":         "/dam/discoveries/storage.v1.json",
				"admin:directory_v1": "/dam/discoveries/admin.directory_v1.json",
			},
		}
		server, err := NewServer(&Ports{Resolver: resolver, RepoDir: "/dam"})
		require.NoError(t, err)

		input := ResolveInput{PreferredOnly: true, Skip: []string{"foo:v1"}}
		_, output, err := server.handleResolve(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, "admin:directory_v1", output.Documents[0].ID)
		assert.Equal(t, "storage:v1", output.Documents[1].ID)
		assert.Equal(t, "/dam", resolver.lastDir)
		assert.True(t, resolver.lastOpts.PreferredOnly)
		assert.Equal(t, []string{"foo:v1"}, resolver.lastOpts.Skip)
	})

	t.Run("uses requested repo dir", func(t *testing.T) {
		resolver := &mockResolver{docs: domain.DocumentMap{}}
		server, err := NewServer(&Ports{Resolver: resolver, RepoDir: "/dam"})
		require.NoError(t, err)

		_, output, err := server.handleResolve(ctx, nil, ResolveInput{RepoDir: "/elsewhere"})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Equal(t, "/elsewhere", resolver.lastDir)
	})

	t.Run("missing repo dir", func(t *testing.T) {
		server, err := NewServer(&Ports{Resolver: &mockResolver{}})
		require.NoError(t, err)

		_, _, err = server.handleResolve(ctx, nil, ResolveInput{})

		assert.ErrorIs(t, err, ErrMissingRepoDir)
	})

	t.Run("returns error on resolve failure", func(t *testing.T) {
		resolver := &mockResolver{err: domain.ErrMalformedIndex}
		server, err := NewServer(&Ports{Resolver: resolver, RepoDir: "/dam"})
		require.NoError(t, err)

		_, _, err = server.handleResolve(ctx, nil, ResolveInput{})

		assert.ErrorIs(t, err, domain.ErrMalformedIndex)
	})
}

func TestServer_handleListIndex(t *testing.T) {
	ctx := context.Background()

	t.Run("marks overrides as preferred", func(t *testing.T) {
		resolver := &mockResolver{
			index: &domain.DiscoveryIndex{Items: []domain.IndexEntry{
				{ID: "storage:v1", Title: "Cloud Storage", Preferred: true},
				{ID: "admin:directory_v1", Preferred: false},
				{ID: "storage:v1beta2", Preferred: false},
			}},
		}
		server, err := NewServer(&Ports{Resolver: resolver, RepoDir: "/dam"})
		require.NoError(t, err)

		_, output, err := server.handleListIndex(ctx, nil, IndexInput{})

		require.NoError(t, err)
		require.Equal(t, 3, output.Count)
		assert.Equal(t, IndexEntryOutput{ID: "storage:v1", Title: "Cloud Storage", Preferred: true}, output.Entries[0])
		assert.Equal(t, IndexEntryOutput{ID: "admin:directory_v1", Preferred: true, Override: true}, output.Entries[1])
		assert.False(t, output.Entries[2].Preferred)
	})

	t.Run("returns error on index failure", func(t *testing.T) {
		resolver := &mockResolver{err: errors.New("boom")}
		server, err := NewServer(&Ports{Resolver: resolver, RepoDir: "/dam"})
		require.NoError(t, err)

		_, _, err = server.handleListIndex(ctx, nil, IndexInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}
