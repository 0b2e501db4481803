// Package gateway answers the remote questions the linter asks about a
// repository hosted on GitHub. Answers are resolved through the shared
// Fetcher, so identical questions asked concurrently cost one round trip.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"repolint/internal/check"
	"repolint/internal/data"
	"repolint/internal/data/models"
	"repolint/internal/fetcher"
	gh "repolint/internal/github"
)

// RecentReleaseWindow is how old the latest release may be and still count
// as recent.
const RecentReleaseWindow = 365 * 24 * time.Hour

type Gateway struct {
	fetcher *fetcher.Fetcher
	repo    data.RepoRef
	repoURL string
	now     func() time.Time
}

type Option func(*Gateway)

// WithClock overrides the time source used by HasRecentRelease.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

func New(f *fetcher.Fetcher, repoURL string, opts ...Option) (*Gateway, error) {
	if f == nil {
		return nil, fmt.Errorf("gateway: nil fetcher")
	}
	owner, name, err := gh.ParseRepositoryURL(repoURL)
	if err != nil {
		return nil, err
	}

	g := &Gateway{
		fetcher: f,
		repo:    data.RepoRef{Owner: owner, Name: name},
		repoURL: repoURL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *Gateway) Repo() data.RepoRef {
	return g.repo
}

func (g *Gateway) FetchRepositoryMetadata(ctx context.Context) (*models.RepositoryMetadata, error) {
	md, err := fetchAs[*models.RepositoryMetadata](ctx, g, g.repo, data.DepRepoMetadata, nil)
	if err != nil {
		return nil, err
	}
	if md == nil {
		return nil, g.fail(fmt.Errorf("empty repository metadata"))
	}
	return md, nil
}

// HasDefaultCommunityHealthFile reports whether the owner's ".github"
// repository provides name as a default community health file. md supplies
// the owner; when nil, the owner parsed from the repository URL is used.
func (g *Gateway) HasDefaultCommunityHealthFile(ctx context.Context, md *models.RepositoryMetadata, name string) (bool, error) {
	repo := g.repo
	if md != nil && md.Owner != "" {
		repo.Owner = md.Owner
	}
	p, err := fetchAs[*models.CommunityHealthFilePresence](ctx, g, repo, data.DepOrgCommunityHealthFile, map[string]string{data.ParamPath: name})
	if err != nil {
		return false, err
	}
	return p != nil && p.Found, nil
}

// LastReleaseBodyMatches reports whether the latest release notes match re.
// A repository without releases does not match.
func (g *Gateway) LastReleaseBodyMatches(ctx context.Context, re *regexp.Regexp) (bool, error) {
	rel, err := g.lastRelease(ctx)
	if err != nil || rel == nil {
		return false, err
	}
	return re.MatchString(rel.Body), nil
}

// HasRecentRelease reports whether the latest release is younger than
// RecentReleaseWindow.
func (g *Gateway) HasRecentRelease(ctx context.Context) (bool, error) {
	rel, err := g.lastRelease(ctx)
	if err != nil || rel == nil {
		return false, err
	}
	at := rel.ReleasedAt()
	if at.IsZero() {
		return false, nil
	}
	return g.now().Sub(at) <= RecentReleaseWindow, nil
}

// LastPullRequestHasCheck reports whether the most recent pull request ran a
// check called name. Names compare case-insensitively.
func (g *Gateway) LastPullRequestHasCheck(ctx context.Context, name string) (bool, error) {
	checks, err := fetchAs[*models.PullRequestChecks](ctx, g, g.repo, data.DepRepoLastPullRequestChecks, nil)
	if err != nil {
		return false, err
	}
	return checks.Has(name), nil
}

func (g *Gateway) lastRelease(ctx context.Context) (*models.Release, error) {
	return fetchAs[*models.Release](ctx, g, g.repo, data.DepRepoLastRelease, nil)
}

func (g *Gateway) fail(err error) error {
	var fe *check.FetchError
	if errors.As(err, &fe) {
		return err
	}
	return &check.FetchError{URL: g.repoURL, Err: err}
}

func fetchAs[T any](ctx context.Context, g *Gateway, repo data.RepoRef, key data.DependencyKey, params map[string]string) (T, error) {
	var zero T
	val, err := g.fetcher.Fetch(ctx, repo, key, params)
	if err != nil {
		return zero, g.fail(fmt.Errorf("%s: %w", key, err))
	}
	if val == nil {
		return zero, nil
	}
	typed, ok := val.(T)
	if !ok {
		return zero, g.fail(fmt.Errorf("%s: unexpected type %T", key, val))
	}
	return typed, nil
}
