package driving

import (
	"context"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
	"github.com/custodia-labs/discovery-updater/internal/core/ports/driven"
)

// CorpusPublisher regenerates the discovery corpus and publishes changes.
type CorpusPublisher interface {
	// RunUpdateCycle regenerates the corpus in repo and commits any change.
	// It reports whether a commit was created. Nothing is pushed.
	RunUpdateCycle(ctx context.Context, repo driven.Repository, account domain.Account) (bool, error)

	// PublishDirect runs an update cycle and pushes the commit to the
	// current branch's upstream.
	PublishDirect(ctx context.Context, repo driven.Repository, account domain.Account) (*domain.UpdateResult, error)

	// PublishViaReviewRequest runs an update cycle on a fresh timestamped
	// branch, pushes it and opens a pull request against the base branch.
	PublishViaReviewRequest(ctx context.Context, repo driven.Repository, account domain.Account) (*domain.UpdateResult, error)

	// Update clones the tracked repository into workDir and publishes directly.
	Update(ctx context.Context, workDir string, account domain.Account) (*domain.UpdateResult, error)

	// CreatePullRequest clones the tracked repository into workDir and
	// publishes via a pull request.
	CreatePullRequest(ctx context.Context, workDir string, account domain.Account) (*domain.UpdateResult, error)

	// Discover clones the tracked repository into workDir and resolves
	// its document mapping.
	Discover(ctx context.Context, workDir string, opts domain.ResolveOptions) (domain.DocumentMap, error)
}
