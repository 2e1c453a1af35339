package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
	"github.com/custodia-labs/discovery-updater/internal/core/ports/driven"
)

// mockRepository records every call made against a working copy.
type mockRepository struct {
	path      string
	changes   []domain.FileChange
	calls     []string
	commits   []string
	pushes    []string
	branches  []string
	author    string
	addErr    error
	diffErr   error
	commitErr error
	pushErr   error
}

func (m *mockRepository) Path() string {
	return m.path
}

func (m *mockRepository) CheckoutNewBranch(_ context.Context, name string) error {
	m.calls = append(m.calls, "checkout "+name)
	m.branches = append(m.branches, name)
	return nil
}

func (m *mockRepository) Add(_ context.Context, paths ...string) error {
	m.calls = append(m.calls, fmt.Sprintf("add %v", paths))
	return m.addErr
}

func (m *mockRepository) DiffNameStatus(_ context.Context) ([]domain.FileChange, error) {
	m.calls = append(m.calls, "diff")
	return m.changes, m.diffErr
}

func (m *mockRepository) Commit(_ context.Context, message, name, email string) (string, error) {
	m.calls = append(m.calls, "commit")
	if m.commitErr != nil {
		return "", m.commitErr
	}
	m.commits = append(m.commits, message)
	m.author = name + " <" + email + ">"
	return fmt.Sprintf("c0ffee%d", len(m.commits)), nil
}

func (m *mockRepository) Push(_ context.Context, branch string) error {
	m.calls = append(m.calls, "push "+branch)
	if m.pushErr != nil {
		return m.pushErr
	}
	m.pushes = append(m.pushes, branch)
	return nil
}

// mockRegenerator simulates the regeneration tool.
type mockRegenerator struct {
	dirs []string
	err  error
}

func (m *mockRegenerator) Regenerate(_ context.Context, repoDir string) error {
	m.dirs = append(m.dirs, repoDir)
	return m.err
}

// mockCloner hands out a prepared repository.
type mockCloner struct {
	repo    *mockRepository
	remote  domain.Remote
	dest    string
	account *domain.Account
	err     error
}

func (m *mockCloner) Clone(
	_ context.Context,
	remote domain.Remote,
	dest string,
	account *domain.Account,
) (driven.Repository, error) {
	m.remote = remote
	m.dest = dest
	m.account = account
	if m.err != nil {
		return nil, m.err
	}
	if m.repo.path == "" {
		m.repo.path = dest
	}
	return m.repo, nil
}

// mockReviewCreator records pull request requests.
type mockReviewCreator struct {
	requests []domain.ReviewRequest
	account  domain.Account
	err      error
}

func (m *mockReviewCreator) CreateReviewRequest(
	_ context.Context,
	account domain.Account,
	req domain.ReviewRequest,
) (*domain.ReviewRequestRef, error) {
	m.account = account
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.ReviewRequestRef{Number: 7, URL: "https://github.com/" + req.Repo + "/pull/7"}, nil
}
