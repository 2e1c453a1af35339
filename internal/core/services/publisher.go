package services

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
	"github.com/custodia-labs/discovery-updater/internal/core/ports/driven"
	"github.com/custodia-labs/discovery-updater/internal/core/ports/driving"
	"github.com/custodia-labs/discovery-updater/internal/logger"
)

// Ensure PublisherService implements the interface.
var _ driving.CorpusPublisher = (*PublisherService)(nil)

// PublisherService regenerates the discovery corpus in a working copy and
// publishes the result, either by pushing directly or through a pull request.
//
// Every cycle is sequential and owns its working copy. Failures are returned
// unchanged; the working copy should be discarded afterwards.
type PublisherService struct {
	cfg         domain.Config
	cloner      driven.RepositoryCloner
	regenerator driven.Regenerator
	resolver    driving.DocumentResolver
	reviews     driven.ReviewRequestCreator
	now         func() time.Time
	newRunID    func() string
}

// NewPublisherService creates a publisher for the repository described by cfg.
func NewPublisherService(
	cfg domain.Config,
	cloner driven.RepositoryCloner,
	regenerator driven.Regenerator,
	resolver driving.DocumentResolver,
) *PublisherService {
	return &PublisherService{
		cfg:         cfg.WithDefaults(),
		cloner:      cloner,
		regenerator: regenerator,
		resolver:    resolver,
		now:         time.Now,
		newRunID:    func() string { return uuid.NewString()[:8] },
	}
}

// SetReviewRequestCreator sets the pull request backend used by
// PublishViaReviewRequest.
func (s *PublisherService) SetReviewRequestCreator(reviews driven.ReviewRequestCreator) {
	s.reviews = reviews
}

// SetClock overrides the time source used for review branch names.
func (s *PublisherService) SetClock(now func() time.Time) {
	s.now = now
}

// BranchName returns the review branch name for the given instant.
func (s *PublisherService) BranchName(at time.Time) string {
	return s.cfg.BranchPrefix + at.UTC().Format(domain.BranchTimestampLayout)
}

// RunUpdateCycle regenerates the corpus and commits any staged change.
func (s *PublisherService) RunUpdateCycle(
	ctx context.Context,
	repo driven.Repository,
	account domain.Account,
) (bool, error) {
	c, err := s.runCycle(ctx, repo, account, logger.With(s.newRunID()))
	if err != nil {
		return false, err
	}
	return c.committed(), nil
}

// PublishDirect runs an update cycle and pushes the commit to the current
// branch's upstream.
func (s *PublisherService) PublishDirect(
	ctx context.Context,
	repo driven.Repository,
	account domain.Account,
) (*domain.UpdateResult, error) {
	log := logger.With(s.newRunID())

	c, err := s.runCycle(ctx, repo, account, log)
	if err != nil {
		return nil, err
	}
	if !c.committed() {
		return &domain.UpdateResult{Outcome: domain.OutcomeNoChange}, nil
	}

	if err := repo.Push(ctx, ""); err != nil {
		return nil, fmt.Errorf("push: %w", err)
	}
	log.Info("PUBLISHED: pushed %s to upstream", c.hash)

	return &domain.UpdateResult{
		Outcome:    domain.OutcomeCommittedDirect,
		CommitHash: c.hash,
		Changes:    c.changes,
	}, nil
}

// PublishViaReviewRequest runs an update cycle on a fresh timestamped branch.
// If a commit was made, the branch is pushed and a pull request is opened
// against the base branch.
//
// A pull request failure is returned after the push has succeeded; the
// returned result still names the pushed branch so the caller can clean up.
func (s *PublisherService) PublishViaReviewRequest(
	ctx context.Context,
	repo driven.Repository,
	account domain.Account,
) (*domain.UpdateResult, error) {
	if s.reviews == nil {
		return nil, fmt.Errorf("review request creator: %w", domain.ErrNotImplemented)
	}

	log := logger.With(s.newRunID())
	branch := s.BranchName(s.now())

	if err := repo.CheckoutNewBranch(ctx, branch); err != nil {
		return nil, fmt.Errorf("checkout %s: %w", branch, err)
	}
	log.Debug("CLONED: checked out %s", branch)

	c, err := s.runCycle(ctx, repo, account, log)
	if err != nil {
		return nil, err
	}
	if !c.committed() {
		return &domain.UpdateResult{Outcome: domain.OutcomeNoChange}, nil
	}

	if err := repo.Push(ctx, branch); err != nil {
		return nil, fmt.Errorf("push %s: %w", branch, err)
	}
	log.Info("PUBLISHED: pushed branch %s", branch)

	result := &domain.UpdateResult{
		Outcome:    domain.OutcomeCommittedPendingReview,
		Branch:     branch,
		CommitHash: c.hash,
		Changes:    c.changes,
	}

	ref, err := s.reviews.CreateReviewRequest(ctx, account, domain.ReviewRequest{
		Repo:  s.cfg.RepoPath,
		Title: domain.PullRequestTitle,
		Body:  "",
		Base:  s.cfg.BaseBranch,
		Head:  branch,
	})
	if err != nil {
		log.Warn("branch %s pushed but pull request failed", branch)
		return result, fmt.Errorf("%w for branch %s: %w", domain.ErrReviewRequestFailed, branch, err)
	}
	log.Info("opened pull request #%d %s", ref.Number, ref.URL)

	result.ReviewRequest = ref
	return result, nil
}

// Update clones the tracked repository into workDir and publishes directly.
func (s *PublisherService) Update(
	ctx context.Context,
	workDir string,
	account domain.Account,
) (*domain.UpdateResult, error) {
	repo, err := s.clone(ctx, workDir, &account)
	if err != nil {
		return nil, err
	}
	return s.PublishDirect(ctx, repo, account)
}

// CreatePullRequest clones the tracked repository into workDir and publishes
// through a pull request.
func (s *PublisherService) CreatePullRequest(
	ctx context.Context,
	workDir string,
	account domain.Account,
) (*domain.UpdateResult, error) {
	repo, err := s.clone(ctx, workDir, &account)
	if err != nil {
		return nil, err
	}
	return s.PublishViaReviewRequest(ctx, repo, account)
}

// Discover clones the tracked repository into workDir and resolves its
// document mapping.
func (s *PublisherService) Discover(
	ctx context.Context,
	workDir string,
	opts domain.ResolveOptions,
) (domain.DocumentMap, error) {
	if s.resolver == nil {
		return nil, fmt.Errorf("document resolver: %w", domain.ErrNotImplemented)
	}
	repo, err := s.clone(ctx, workDir, nil)
	if err != nil {
		return nil, err
	}
	return s.resolver.Resolve(ctx, repo.Path(), opts)
}

func (s *PublisherService) clone(ctx context.Context, workDir string, account *domain.Account) (driven.Repository, error) {
	if s.cloner == nil {
		return nil, fmt.Errorf("repository cloner: %w", domain.ErrNotImplemented)
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	dest := filepath.Join(workDir, s.cfg.RepoName)
	logger.Debug("cloning %s into %s", s.cfg.RepoPath, dest)
	repo, err := s.cloner.Clone(ctx, s.cfg.Remote(), dest, account)
	if err != nil {
		return nil, fmt.Errorf("clone %s: %w", s.cfg.RepoPath, err)
	}
	return repo, nil
}

// cycle is the outcome of the shared regenerate, stage, diff, commit sequence.
type cycle struct {
	commit  bool
	hash    string
	changes []domain.FileChange
}

func (c cycle) committed() bool {
	return c.commit
}

func (s *PublisherService) runCycle(
	ctx context.Context,
	repo driven.Repository,
	account domain.Account,
	log logger.Entry,
) (cycle, error) {
	if s.regenerator == nil {
		return cycle{}, fmt.Errorf("regenerator: %w", domain.ErrNotImplemented)
	}
	if err := account.Validate(); err != nil {
		return cycle{}, err
	}

	if err := s.regenerator.Regenerate(ctx, repo.Path()); err != nil {
		return cycle{}, err
	}
	log.Debug("REGENERATED: %s", repo.Path())

	if err := repo.Add(ctx, s.cfg.DocumentsDir); err != nil {
		return cycle{}, fmt.Errorf("stage %s: %w", s.cfg.DocumentsDir, err)
	}

	changes, err := repo.DiffNameStatus(ctx)
	if err != nil {
		return cycle{}, fmt.Errorf("diff: %w", err)
	}
	log.Debug("CHANGE_CHECKED: %d staged change(s)", len(changes))
	if len(changes) == 0 {
		log.Info("NO_CHANGE: discovery documents are up to date")
		return cycle{}, nil
	}

	hash, err := repo.Commit(ctx, domain.CommitMessage, account.Name, account.Email)
	if err != nil {
		return cycle{}, fmt.Errorf("commit: %w", err)
	}
	log.Info("COMMITTED: %s (%d file(s))", hash, len(changes))

	return cycle{commit: true, hash: hash, changes: changes}, nil
}
