package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
	"github.com/custodia-labs/discovery-updater/internal/core/ports/driven"
)

// mockResolver is a mock implementation of driving.DocumentResolver.
type mockResolver struct {
	docs     domain.DocumentMap
	index    *domain.DiscoveryIndex
	err      error
	lastDir  string
	lastOpts domain.ResolveOptions
}

func (m *mockResolver) Resolve(_ context.Context, repoDir string, opts domain.ResolveOptions) (domain.DocumentMap, error) {
	m.lastDir = repoDir
	m.lastOpts = opts
	return m.docs, m.err
}

func (m *mockResolver) LoadIndex(_ context.Context, repoDir string) (*domain.DiscoveryIndex, error) {
	m.lastDir = repoDir
	return m.index, m.err
}

// mockPublisher is a mock implementation of driving.CorpusPublisher.
type mockPublisher struct {
	result      *domain.UpdateResult
	docs        domain.DocumentMap
	err         error
	lastWorkDir string
	lastAccount domain.Account
	lastRepo    driven.Repository
	calls       []string
}

func (m *mockPublisher) RunUpdateCycle(_ context.Context, _ driven.Repository, _ domain.Account) (bool, error) {
	m.calls = append(m.calls, "RunUpdateCycle")
	return m.result.Updated(), m.err
}

func (m *mockPublisher) PublishDirect(_ context.Context, repo driven.Repository, account domain.Account) (*domain.UpdateResult, error) {
	m.calls = append(m.calls, "PublishDirect")
	m.lastRepo = repo
	m.lastAccount = account
	return m.result, m.err
}

func (m *mockPublisher) PublishViaReviewRequest(
	_ context.Context,
	repo driven.Repository,
	account domain.Account,
) (*domain.UpdateResult, error) {
	m.calls = append(m.calls, "PublishViaReviewRequest")
	m.lastRepo = repo
	m.lastAccount = account
	return m.result, m.err
}

func (m *mockPublisher) Update(_ context.Context, workDir string, account domain.Account) (*domain.UpdateResult, error) {
	m.calls = append(m.calls, "Update")
	m.lastWorkDir = workDir
	m.lastAccount = account
	return m.result, m.err
}

func (m *mockPublisher) CreatePullRequest(
	_ context.Context,
	workDir string,
	account domain.Account,
) (*domain.UpdateResult, error) {
	m.calls = append(m.calls, "CreatePullRequest")
	m.lastWorkDir = workDir
	m.lastAccount = account
	return m.result, m.err
}

func (m *mockPublisher) Discover(_ context.Context, workDir string, _ domain.ResolveOptions) (domain.DocumentMap, error) {
	m.calls = append(m.calls, "Discover")
	m.lastWorkDir = workDir
	return m.docs, m.err
}

var testAccount = domain.Account{Name: "Update Bot", Email: "bot@example.com", PersonalAccessToken: "ghp_secret"}

// setupTestServices installs mocks and returns them with a cleanup func.
func setupTestServices() (*mockResolver, *mockPublisher, func()) {
	oldResolver, oldPublisher, oldStore, oldAccount := resolverService, publisherService, configStore, accountResolver
	oldOpener := repositoryOpener

	resolver := &mockResolver{
		docs: domain.DocumentMap{
			"storage:v1":         "discoveries/storage.v1.json",
			"admin:directory_v1": "discoveries/admin.directory_v1.json",
		},
		index: &domain.DiscoveryIndex{Items: []domain.IndexEntry{
			{ID: "storage:v1", Title: "Cloud Storage JSON API", Preferred: true},
			{ID: "admin:directory_v1", Preferred: false},
			{ID: "storage:v1beta2", Preferred: false},
		}},
	}
	publisher := &mockPublisher{}

	Configure(Services{
		Resolver:  resolver,
		Publisher: publisher,
		Account:   func() (domain.Account, error) { return testAccount, nil },
	})

	return resolver, publisher, func() {
		resolverService, publisherService, configStore, accountResolver = oldResolver, oldPublisher, oldStore, oldAccount
		repositoryOpener = oldOpener
	}
}

var errBoom = errors.New("boom")

// mockRepository is a working copy stub handed to the publisher.
type mockRepository struct {
	dir    string
	branch string
}

func (m *mockRepository) Path() string                                    { return m.dir }
func (m *mockRepository) CheckoutNewBranch(context.Context, string) error { return nil }
func (m *mockRepository) Add(context.Context, ...string) error            { return nil }
func (m *mockRepository) Push(context.Context, string) error              { return nil }
func (m *mockRepository) CurrentBranch(context.Context) (string, error)   { return m.branch, nil }
func (m *mockRepository) DiffNameStatus(context.Context) ([]domain.FileChange, error) {
	return nil, nil
}

func (m *mockRepository) Commit(context.Context, string, string, string) (string, error) {
	return "", nil
}
