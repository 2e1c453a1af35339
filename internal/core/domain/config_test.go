package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "discovery-artifact-manager", cfg.RepoName)
	assert.Equal(t, "googleapis/discovery-artifact-manager", cfg.RepoPath)
	assert.Equal(t, "master", cfg.BaseBranch)
}

func TestConfig_WithDefaults_KeepsOverrides(t *testing.T) {
	cfg := Config{RepoName: "dam-fork", RepoPath: "me/dam-fork"}.WithDefaults()

	assert.Equal(t, "dam-fork", cfg.RepoName)
	assert.Equal(t, "me/dam-fork", cfg.RepoPath)
	assert.Equal(t, DefaultDocumentsDir, cfg.DocumentsDir)
	assert.Equal(t, DefaultRegenerateCommand, cfg.RegenerateCommand)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty name", func(c *Config) { c.RepoName = "" }},
		{"name with separator", func(c *Config) { c.RepoName = "a/b" }},
		{"path without owner", func(c *Config) { c.RepoPath = "discovery-artifact-manager" }},
		{"path with extra segment", func(c *Config) { c.RepoPath = "a/b/c" }},
		{"empty owner", func(c *Config) { c.RepoPath = "/repo" }},
		{"empty documents dir", func(c *Config) { c.DocumentsDir = "" }},
		{"blank command", func(c *Config) { c.RegenerateCommand = "   " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfig_OwnerRepo(t *testing.T) {
	owner, repo, err := DefaultConfig().OwnerRepo()

	require.NoError(t, err)
	assert.Equal(t, "googleapis", owner)
	assert.Equal(t, "discovery-artifact-manager", repo)
}

func TestRemote_URL(t *testing.T) {
	r := DefaultConfig().Remote()

	assert.Equal(t, "https://github.com/googleapis/discovery-artifact-manager.git", r.URL())
}

func TestAccount(t *testing.T) {
	a := Account{Name: "Bot", Email: "bot@example.com"}

	assert.NoError(t, a.Validate())
	assert.False(t, a.HasToken())
	assert.Equal(t, "Bot <bot@example.com>", a.Author())
	assert.ErrorIs(t, Account{Email: "x@example.com"}.Validate(), ErrMissingAccount)
}

func TestUpdateOutcome_Updated(t *testing.T) {
	assert.False(t, OutcomeNoChange.Updated())
	assert.False(t, UpdateOutcome("").Updated())
	assert.True(t, OutcomeCommittedDirect.Updated())
	assert.True(t, OutcomeCommittedPendingReview.Updated())

	var result *UpdateResult
	assert.False(t, result.Updated())
}
