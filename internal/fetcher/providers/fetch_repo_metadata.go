package providers

import (
	"context"

	"github.com/google/go-github/v81/github"

	"repolint/internal/data"
	"repolint/internal/data/models"
	"repolint/internal/fetcher"
)

type repoMetadataFetcher struct{}

func (r *repoMetadataFetcher) Key() data.DependencyKey { return data.DepRepoMetadata }

func (r *repoMetadataFetcher) Scope() data.FetchScope { return data.ScopeRepo }

func (r *repoMetadataFetcher) Fetch(ctx context.Context, repo data.RepoRef, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	result, _, err := restCall(ctx, f, func(c *github.Client) (*github.Repository, *github.Response, error) {
		return c.Repositories.Get(ctx, repo.Owner, repo.Name)
	})
	if err != nil {
		return nil, err
	}
	return toRepositoryMetadata(repo, result), nil
}

// toRepositoryMetadata falls back to the requested owner/name when GitHub
// omits them.
func toRepositoryMetadata(repo data.RepoRef, r *github.Repository) *models.RepositoryMetadata {
	owner, name := r.GetOwner().GetLogin(), r.GetName()
	if owner == "" {
		owner = repo.Owner
	}
	if name == "" {
		name = repo.Name
	}
	return &models.RepositoryMetadata{
		Owner:         owner,
		Name:          name,
		Homepage:      r.GetHomepage(),
		DefaultBranch: r.GetDefaultBranch(),
		Archived:      r.GetArchived(),
		LicenseSPDXID: r.GetLicense().GetSPDXID(),
	}
}

func init() {
	fetcher.RegisterDataFetcher(&repoMetadataFetcher{})
}
