package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v81/github"

	"repolint/internal/data"
	"repolint/internal/data/models"
	"repolint/internal/fetcher"
)

// communityHealthRepo is the repository GitHub reads default community health
// files from when a repository has none of its own.
const communityHealthRepo = ".github"

type communityHealthFileFetcher struct{}

func (c *communityHealthFileFetcher) Key() data.DependencyKey {
	return data.DepOrgCommunityHealthFile
}

func (c *communityHealthFileFetcher) Scope() data.FetchScope {
	return data.ScopeOrg
}

func (c *communityHealthFileFetcher) Fetch(ctx context.Context, repo data.RepoRef, params map[string]string, f *fetcher.Fetcher) (any, error) {
	name := strings.TrimSpace(params[data.ParamPath])
	if name == "" {
		return nil, fmt.Errorf("community health file: missing %q param", data.ParamPath)
	}

	presence := &models.CommunityHealthFilePresence{}

	for _, path := range []string{name, ".github/" + name, "docs/" + name} {
		_, resp, err := restCall(ctx, f, func(client *github.Client) (*github.RepositoryContent, *github.Response, error) {
			file, _, resp, err := client.Repositories.GetContents(ctx, repo.Owner, communityHealthRepo, path, nil)
			return file, resp, err
		})
		if isNotFound(resp) {
			continue
		}
		if err != nil {
			return nil, err
		}

		presence.Found = true
		presence.Path = path
		break
	}

	return presence, nil
}

func init() {
	fetcher.RegisterDataFetcher(&communityHealthFileFetcher{})
}
