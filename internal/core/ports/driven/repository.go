package driven

import (
	"context"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
)

// RepositoryCloner obtains working copies of remote repositories.
type RepositoryCloner interface {
	// Clone clones remote into dest. When account is non-nil its token
	// authenticates the clone and later pushes, and its identity is
	// configured as the local committer.
	Clone(ctx context.Context, remote domain.Remote, dest string, account *domain.Account) (Repository, error)
}

// Repository is a local working copy exclusively owned by one update cycle.
// Implementations are not safe for concurrent use.
type Repository interface {
	// Path returns the working copy's root directory.
	Path() string

	// CheckoutNewBranch creates name from HEAD and switches to it.
	CheckoutNewBranch(ctx context.Context, name string) error

	// Add stages paths relative to the repository root.
	Add(ctx context.Context, paths ...string) error

	// DiffNameStatus lists staged changes relative to HEAD.
	DiffNameStatus(ctx context.Context) ([]domain.FileChange, error)

	// Commit records the staged changes and returns the new commit hash.
	Commit(ctx context.Context, message, authorName, authorEmail string) (string, error)

	// Push pushes to the remote. An empty branch pushes the current branch
	// to its configured upstream; otherwise branch is pushed under its own
	// name and set as upstream.
	Push(ctx context.Context, branch string) error
}
