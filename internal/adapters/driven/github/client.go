package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/discovery-updater/internal/core/domain"
	"github.com/custodia-labs/discovery-updater/internal/core/ports/driven"
	"github.com/custodia-labs/discovery-updater/internal/logger"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// Ensure PullRequestCreator implements the interface.
var _ driven.ReviewRequestCreator = (*PullRequestCreator)(nil)

// PullRequestCreator opens pull requests with go-github.
// A client is built per call from the calling account's token.
type PullRequestCreator struct {
	baseURL     string
	rateLimiter *RateLimiter
}

// NewPullRequestCreator creates a creator targeting github.com.
func NewPullRequestCreator() *PullRequestCreator {
	return &PullRequestCreator{rateLimiter: NewRateLimiter()}
}

// NewPullRequestCreatorWithBaseURL targets a GitHub Enterprise or test API
// root such as "https://ghe.example.com/api/v3/".
func NewPullRequestCreatorWithBaseURL(baseURL string, limiter *RateLimiter) *PullRequestCreator {
	if limiter == nil {
		limiter = NewRateLimiter()
	}
	return &PullRequestCreator{baseURL: baseURL, rateLimiter: limiter}
}

// CreateReviewRequest looks up req.Repo and opens a pull request from
// req.Head into req.Base. An empty base targets the repository's default
// branch.
func (p *PullRequestCreator) CreateReviewRequest(
	ctx context.Context,
	account domain.Account,
	req domain.ReviewRequest,
) (*domain.ReviewRequestRef, error) {
	owner, name, ok := strings.Cut(req.Repo, "/")
	if !ok || owner == "" || name == "" {
		return nil, fmt.Errorf("%w: repository %q must be owner/repo", domain.ErrInvalidConfig, req.Repo)
	}

	client, err := p.client(ctx, account)
	if err != nil {
		return nil, err
	}

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	repo, resp, err := client.Repositories.Get(ctx, owner, name)
	p.updateRateLimit(resp)
	if err != nil {
		return nil, p.wrapError(err, "get repo")
	}

	base := req.Base
	if base == "" {
		base = repo.GetDefaultBranch()
	}

	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	pr, resp, err := client.PullRequests.Create(ctx, owner, name, &gh.NewPullRequest{
		Title: gh.Ptr(req.Title),
		Body:  gh.Ptr(req.Body),
		Base:  gh.Ptr(base),
		Head:  gh.Ptr(req.Head),
	})
	p.updateRateLimit(resp)
	if err != nil {
		return nil, p.wrapError(err, "create pull request")
	}

	logger.Debug("created pull request %s#%d", req.Repo, pr.GetNumber())
	return &domain.ReviewRequestRef{
		Number: pr.GetNumber(),
		URL:    pr.GetHTMLURL(),
	}, nil
}

// client builds a go-github client authenticated with the account token.
func (p *PullRequestCreator) client(ctx context.Context, account domain.Account) (*gh.Client, error) {
	if !account.HasToken() {
		return nil, ErrMissingToken
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: account.PersonalAccessToken},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout

	client := gh.NewClient(tc)
	if p.baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(p.baseURL, p.baseURL)
		if err != nil {
			return nil, fmt.Errorf("github base URL: %w", err)
		}
	}
	return client, nil
}

func (p *PullRequestCreator) updateRateLimit(resp *gh.Response) {
	if resp == nil || resp.Response == nil {
		return
	}
	p.rateLimiter.UpdateFromResponse(resp.Response)
}

// wrapError converts go-github errors to our error types.
func (p *PullRequestCreator) wrapError(err error, operation string) error {
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		for _, e := range ghErr.Errors {
			if e.Message != "" {
				apiErr.Details = append(apiErr.Details, e.Message)
			}
		}
		if apiErr.StatusCode == http.StatusNotFound && operation == "get repo" {
			return fmt.Errorf("%w: %w", ErrRepoNotFound, apiErr)
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
