package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/discovery-updater/internal/adapters/driven/config/file"
)

func setupConfigStore(t *testing.T) (*file.ConfigStore, func()) {
	t.Helper()
	store, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)

	old := configStore
	configStore = store
	return store, func() { configStore = old }
}

func TestConfigCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, cmd := range configCmd.Commands() {
		names = append(names, cmd.Name())
	}

	assert.Contains(t, names, "show")
	assert.Contains(t, names, "set")
	assert.Contains(t, names, "keys")
}

func TestConfigShow_Empty(t *testing.T) {
	store, cleanup := setupConfigStore(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), store.Path())
	assert.Contains(t, buf.String(), "No settings stored; defaults apply.")
}

func TestConfigSet_ThenShowMasksToken(t *testing.T) {
	store, cleanup := setupConfigStore(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "set", "account.token", "ghp_abcdefghijkl"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "Set account.token = ghp_...ijkl")
	assert.Equal(t, "ghp_abcdefghijkl", store.GetString("account.token"))

	buf.Reset()
	rootCmd.SetArgs([]string{"config", "set", "repo.path", "me/fork"})
	require.NoError(t, rootCmd.Execute())

	buf.Reset()
	rootCmd.SetArgs([]string{"config"})
	require.NoError(t, rootCmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "account.token = ghp_...ijkl")
	assert.Contains(t, out, "repo.path = me/fork")
	assert.NotContains(t, out, "ghp_abcdefghijkl")
}

func TestConfigSet_UnknownKey(t *testing.T) {
	_, cleanup := setupConfigStore(t)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "set", "repo.colour", "blue"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown key "repo.colour"`)
}

func TestConfigSet_RequiresTwoArgs(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "set", "repo.path"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestConfigKeys(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"config", "keys"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "repo.base_branch")
	assert.Contains(t, buf.String(), "regen.command")
}

func TestConfigShow_NotConfigured(t *testing.T) {
	old := configStore
	configStore = nil
	defer func() { configStore = old }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"config", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "config store not configured")
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "****", maskToken("short"))
	assert.Equal(t, "ghp_...ijkl", maskToken("ghp_abcdefghijkl"))
}
