package file

import (
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
	"github.com/custodia-labs/discovery-updater/internal/core/ports/driven"
)

// Environment variables that override the config file.
const (
	EnvRepoName     = "DISCOVERY_ARTIFACT_MANAGER_REPO_NAME"
	EnvRepoPath     = "DISCOVERY_ARTIFACT_MANAGER_REPO_PATH"
	EnvGitHubToken  = "GITHUB_TOKEN"
	EnvAccountName  = "DISCOVERY_UPDATER_ACCOUNT_NAME"
	EnvAccountEmail = "DISCOVERY_UPDATER_ACCOUNT_EMAIL"
)

// Config keys understood by the updater.
const (
	KeyRepoName          = "repo.name"
	KeyRepoPath          = "repo.path"
	KeyRepoHost          = "repo.host"
	KeyRepoBaseBranch    = "repo.base_branch"
	KeyDocumentsDir      = "corpus.documents_dir"
	KeyIndexFile         = "corpus.index_file"
	KeyRegenerateCommand = "regen.command"
	KeyGoModuleName      = "regen.module_name"
	KeyBranchPrefix      = "review.branch_prefix"
	KeyAccountName       = "account.name"
	KeyAccountEmail      = "account.email"
	KeyAccountToken      = "account.token"
)

// knownKeys maps each key to its description.
var knownKeys = map[string]string{
	KeyRepoName:          "local directory name of the working copy",
	KeyRepoPath:          "owner/repo path of the tracked repository",
	KeyRepoHost:          "git host serving the repository",
	KeyRepoBaseBranch:    "branch pull requests target",
	KeyDocumentsDir:      "corpus directory relative to the repository root",
	KeyIndexFile:         "index file name inside the corpus directory",
	KeyRegenerateCommand: "command line of the regeneration tool",
	KeyGoModuleName:      "source tree name inside the temporary GOPATH",
	KeyBranchPrefix:      "prefix of timestamped review branches",
	KeyAccountName:       "commit author name",
	KeyAccountEmail:      "commit author email",
	KeyAccountToken:      "GitHub personal access token",
}

// KnownKeys returns the supported config keys in sorted order.
func KnownKeys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DescribeKey returns the description of key, or false if it is unknown.
func DescribeKey(key string) (string, bool) {
	d, ok := knownKeys[key]
	return d, ok
}

// IsSecretKey reports whether key holds a credential that must not be printed.
func IsSecretKey(key string) bool {
	return key == KeyAccountToken
}

// ResolveConfig builds the updater configuration from defaults, the store
// and the environment. store may be nil; getenv is usually os.Getenv.
func ResolveConfig(store driven.ConfigStore, getenv func(string) string) (domain.Config, error) {
	cfg := domain.Config{
		RepoName:          lookup(store, getenv, KeyRepoName, EnvRepoName),
		RepoPath:          lookup(store, getenv, KeyRepoPath, EnvRepoPath),
		RemoteHost:        lookup(store, getenv, KeyRepoHost, ""),
		BaseBranch:        lookup(store, getenv, KeyRepoBaseBranch, ""),
		DocumentsDir:      lookup(store, getenv, KeyDocumentsDir, ""),
		IndexFile:         lookup(store, getenv, KeyIndexFile, ""),
		RegenerateCommand: lookup(store, getenv, KeyRegenerateCommand, ""),
		GoModuleName:      lookup(store, getenv, KeyGoModuleName, ""),
		BranchPrefix:      lookup(store, getenv, KeyBranchPrefix, ""),
	}.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// ResolveAccount builds the commit and GitHub identity from the store and
// the environment.
func ResolveAccount(store driven.ConfigStore, getenv func(string) string) (domain.Account, error) {
	account := domain.Account{
		Name:                lookup(store, getenv, KeyAccountName, EnvAccountName),
		Email:               lookup(store, getenv, KeyAccountEmail, EnvAccountEmail),
		PersonalAccessToken: lookup(store, getenv, KeyAccountToken, EnvGitHubToken),
	}
	if err := account.Validate(); err != nil {
		return domain.Account{}, fmt.Errorf("%w (set %s and %s)", err, KeyAccountName, KeyAccountEmail)
	}
	return account, nil
}

// lookup returns the environment value if set, else the stored value.
func lookup(store driven.ConfigStore, getenv func(string) string, key, env string) string {
	if env != "" && getenv != nil {
		if v := strings.TrimSpace(getenv(env)); v != "" {
			return v
		}
	}
	if store == nil {
		return ""
	}
	return strings.TrimSpace(store.GetString(key))
}
