package git

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
	"github.com/custodia-labs/discovery-updater/internal/core/ports/driven"
	"github.com/custodia-labs/discovery-updater/internal/logger"
)

// Ensure the adapters implement the interfaces.
var (
	_ driven.RepositoryCloner = (*CLI)(nil)
	_ driven.Repository       = (*Repository)(nil)
)

const (
	// tokenUser is the username GitHub accepts alongside a token.
	tokenUser = "x-access-token"

	// authHeaderKey carries the token per invocation so it never reaches .git/config.
	authHeaderKey = "http.extraHeader"
)

// CLI clones repositories using the git executable.
type CLI struct {
	gitPath string
	// urlFor builds clone URLs; tests replace it to clone local paths.
	urlFor func(remote domain.Remote) string
}

// NewCLI locates git on PATH and verifies it runs.
func NewCLI(ctx context.Context) (*CLI, error) {
	gitPath, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGitNotFound, err)
	}

	cmd := exec.CommandContext(ctx, gitPath, "version")
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git version: %w", err)
	}

	return &CLI{gitPath: gitPath, urlFor: domain.Remote.URL}, nil
}

// Clone clones remote into dest. An account with a token authenticates the
// clone and every later push through a per-command header, leaving the stored
// origin URL free of credentials. Its name and email become the local committer.
func (c *CLI) Clone(
	ctx context.Context,
	remote domain.Remote,
	dest string,
	account *domain.Account,
) (driven.Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, fmt.Errorf("create clone parent: %w", err)
	}

	auth := authArgs(account)
	logger.Debug("git clone %s %s", remote.URL(), dest)
	args := append(append([]string{}, auth...), "clone", c.urlFor(remote), dest)
	if _, err := c.run(ctx, "", args...); err != nil {
		return nil, err
	}

	repo := &Repository{gitPath: c.gitPath, dir: dest, auth: auth}
	if account != nil {
		if _, err := repo.git(ctx, "config", "user.name", account.Name); err != nil {
			return nil, err
		}
		if _, err := repo.git(ctx, "config", "user.email", account.Email); err != nil {
			return nil, err
		}
	}
	return repo, nil
}

// Open wraps an existing working copy at dir. Pushes authenticate with the
// account token when one is set.
func (c *CLI) Open(ctx context.Context, dir string, account *domain.Account) (*Repository, error) {
	if _, err := c.run(ctx, dir, "rev-parse", "--show-toplevel"); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotRepository, dir, err)
	}
	return &Repository{gitPath: c.gitPath, dir: dir, auth: authArgs(account)}, nil
}

// authArgs returns the config override that sends account's token as HTTP
// basic credentials, or nil when there is no token.
func authArgs(account *domain.Account) []string {
	if account == nil || !account.HasToken() {
		return nil
	}
	cred := base64.StdEncoding.EncodeToString([]byte(tokenUser + ":" + account.PersonalAccessToken))
	return []string{"-c", authHeaderKey + "=Authorization: Basic " + cred}
}

// Repository is a git working copy.
type Repository struct {
	gitPath string
	dir     string
	// auth is prepended to network commands only.
	auth []string
}

// Path returns the working copy root.
func (r *Repository) Path() string {
	return r.dir
}

// CheckoutNewBranch creates name from HEAD and switches to it.
func (r *Repository) CheckoutNewBranch(ctx context.Context, name string) error {
	_, err := r.git(ctx, "checkout", "-b", name)
	return err
}

// Add stages paths.
func (r *Repository) Add(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	_, err := r.git(ctx, args...)
	return err
}

// DiffNameStatus lists staged changes relative to HEAD.
func (r *Repository) DiffNameStatus(ctx context.Context) ([]domain.FileChange, error) {
	out, err := r.git(ctx, "diff", "--cached", "--name-status")
	if err != nil {
		return nil, err
	}
	return parseNameStatus(out)
}

// Commit records the staged changes authored by name <email> and returns
// the new commit hash.
func (r *Repository) Commit(ctx context.Context, message, authorName, authorEmail string) (string, error) {
	if message == "" {
		return "", fmt.Errorf("commit message is required")
	}

	author := domain.Account{Name: authorName, Email: authorEmail}.Author()
	if _, err := r.git(ctx,
		"-c", "user.name="+authorName,
		"-c", "user.email="+authorEmail,
		"commit", "-m", message, "--author", author,
	); err != nil {
		return "", err
	}

	hash, err := r.git(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(hash), nil
}

// Push pushes the current branch to its upstream, or branch to origin under
// the same name when branch is set.
func (r *Repository) Push(ctx context.Context, branch string) error {
	args := append(append([]string{}, r.auth...), "push")
	if branch != "" {
		args = append(args, "--set-upstream", "origin", branch)
	}
	_, err := r.git(ctx, args...)
	return err
}

// CurrentBranch returns the checked out branch name.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	out, err := r.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (r *Repository) git(ctx context.Context, args ...string) (string, error) {
	return run(ctx, r.gitPath, r.dir, args...)
}

func (c *CLI) run(ctx context.Context, dir string, args ...string) (string, error) {
	return run(ctx, c.gitPath, dir, args...)
}

// run executes git in dir ("" for the process working directory).
func run(ctx context.Context, gitPath, dir string, args ...string) (string, error) {
	full := args
	if dir != "" {
		full = append([]string{"-C", dir}, args...)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, gitPath, full...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	if err := cmd.Run(); err != nil {
		return "", &CommandError{
			Args:   redactArgs(args),
			Stderr: redact(strings.TrimSpace(stderr.String())),
			Cause:  err,
		}
	}
	return stdout.String(), nil
}

// parseNameStatus parses `git diff --name-status` output.
// Renames and copies report the destination path.
func parseNameStatus(out string) ([]domain.FileChange, error) {
	var changes []domain.FileChange

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("unexpected name-status line %q", line)
		}
		changes = append(changes, domain.FileChange{
			Status: fields[0],
			Path:   fields[len(fields)-1],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse name-status: %w", err)
	}

	return changes, nil
}

func redactArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if strings.HasPrefix(a, authHeaderKey+"=") {
			out[i] = authHeaderKey + "=***"
			continue
		}
		out[i] = redact(a)
	}
	return out
}

// redact strips credentials from any URL embedded in s.
func redact(s string) string {
	for {
		at := strings.Index(s, tokenUser+":")
		if at < 0 {
			return s
		}
		end := strings.Index(s[at:], "@")
		if end < 0 {
			return s
		}
		s = s[:at] + "***" + s[at+end:]
	}
}
