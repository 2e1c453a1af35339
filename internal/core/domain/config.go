package domain

import (
	"fmt"
	"strings"
)

// Defaults for the tracked repository and update cycle.
const (
	DefaultRepoName          = "discovery-artifact-manager"
	DefaultRepoPath          = "googleapis/discovery-artifact-manager"
	DefaultRemoteHost        = "github.com"
	DefaultBaseBranch        = "master"
	DefaultDocumentsDir      = "discoveries"
	DefaultIndexFile         = "index.json"
	DefaultRegenerateCommand = "go run src/main/updatedisco/main.go"
	DefaultGoModuleName      = "discovery-artifact-manager"
	DefaultBranchPrefix      = "update-discovery-artifacts-"

	// CommitMessage is the fixed message of every autogenerated commit.
	CommitMessage = "Autogenerated Discovery document update"

	// PullRequestTitle is the fixed title of every autogenerated pull request.
	PullRequestTitle = "chore: autogenerated discovery document update"

	// BranchTimestampLayout formats the UTC timestamp suffix of update branches.
	BranchTimestampLayout = "20060102-150405"
)

// Config holds the settings of one updater invocation.
// It is resolved once by the caller (file and environment) and passed
// explicitly; core code never reads the environment.
type Config struct {
	// RepoName is the local directory name of the working copy.
	RepoName string
	// RepoPath is the "owner/repo" path of the tracked repository.
	RepoPath string
	// RemoteHost is the git host serving RepoPath.
	RemoteHost string
	// BaseBranch is the branch pull requests target.
	BaseBranch string
	// DocumentsDir is the corpus directory relative to the repository root.
	DocumentsDir string
	// IndexFile is the index file name inside DocumentsDir.
	IndexFile string
	// RegenerateCommand is the command line of the regeneration tool.
	RegenerateCommand string
	// GoModuleName is the directory the repository's src tree is linked
	// to inside the temporary GOPATH.
	GoModuleName string
	// BranchPrefix prefixes the timestamped review branch name.
	BranchPrefix string
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		RepoName:          DefaultRepoName,
		RepoPath:          DefaultRepoPath,
		RemoteHost:        DefaultRemoteHost,
		BaseBranch:        DefaultBaseBranch,
		DocumentsDir:      DefaultDocumentsDir,
		IndexFile:         DefaultIndexFile,
		RegenerateCommand: DefaultRegenerateCommand,
		GoModuleName:      DefaultGoModuleName,
		BranchPrefix:      DefaultBranchPrefix,
	}
}

// WithDefaults fills empty fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	fill := func(v *string, def string) {
		if strings.TrimSpace(*v) == "" {
			*v = def
		}
	}
	fill(&c.RepoName, d.RepoName)
	fill(&c.RepoPath, d.RepoPath)
	fill(&c.RemoteHost, d.RemoteHost)
	fill(&c.BaseBranch, d.BaseBranch)
	fill(&c.DocumentsDir, d.DocumentsDir)
	fill(&c.IndexFile, d.IndexFile)
	fill(&c.RegenerateCommand, d.RegenerateCommand)
	fill(&c.GoModuleName, d.GoModuleName)
	fill(&c.BranchPrefix, d.BranchPrefix)
	return c
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if c.RepoName == "" {
		return fmt.Errorf("%w: repository name is required", ErrInvalidConfig)
	}
	if strings.ContainsAny(c.RepoName, `/\`) {
		return fmt.Errorf("%w: repository name %q must not contain path separators", ErrInvalidConfig, c.RepoName)
	}
	if _, _, err := c.OwnerRepo(); err != nil {
		return err
	}
	if c.DocumentsDir == "" || c.IndexFile == "" {
		return fmt.Errorf("%w: documents directory and index file are required", ErrInvalidConfig)
	}
	if len(strings.Fields(c.RegenerateCommand)) == 0 {
		return fmt.Errorf("%w: regenerate command is required", ErrInvalidConfig)
	}
	return nil
}

// OwnerRepo splits RepoPath into its owner and repository name.
func (c Config) OwnerRepo() (owner, repo string, err error) {
	parts := strings.Split(c.RepoPath, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: repository path %q must be owner/repo", ErrInvalidConfig, c.RepoPath)
	}
	return parts[0], parts[1], nil
}

// Remote returns the remote location of the tracked repository.
func (c Config) Remote() Remote {
	return Remote{Host: c.RemoteHost, Path: c.RepoPath}
}

// Remote identifies a repository on a git host.
type Remote struct {
	Host string
	Path string
}

// URL returns the HTTPS clone URL without credentials.
func (r Remote) URL() string {
	return fmt.Sprintf("https://%s/%s.git", r.Host, r.Path)
}
