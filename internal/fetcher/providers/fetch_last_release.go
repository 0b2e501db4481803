package providers

import (
	"context"

	"github.com/google/go-github/v81/github"

	"repolint/internal/data"
	"repolint/internal/data/models"
	"repolint/internal/fetcher"
)

type lastReleaseFetcher struct{}

func (l *lastReleaseFetcher) Key() data.DependencyKey { return data.DepRepoLastRelease }

func (l *lastReleaseFetcher) Scope() data.FetchScope { return data.ScopeRepo }

// Fetch returns the most recent release, or a nil *models.Release when the
// repository has not released yet.
func (l *lastReleaseFetcher) Fetch(ctx context.Context, repo data.RepoRef, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	releases, _, err := restCall(ctx, f, func(c *github.Client) ([]*github.RepositoryRelease, *github.Response, error) {
		return c.Repositories.ListReleases(ctx, repo.Owner, repo.Name, &github.ListOptions{PerPage: 1})
	})
	if err != nil {
		return nil, err
	}
	if len(releases) == 0 || releases[0] == nil {
		return (*models.Release)(nil), nil
	}

	r := releases[0]
	return &models.Release{
		TagName:     r.GetTagName(),
		Body:        r.GetBody(),
		CreatedAt:   r.GetCreatedAt().Time,
		PublishedAt: r.GetPublishedAt().Time,
	}, nil
}

func init() {
	fetcher.RegisterDataFetcher(&lastReleaseFetcher{})
}
