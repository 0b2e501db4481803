package providers

import (
	"context"
	"net/http"

	"github.com/google/go-github/v81/github"

	"repolint/internal/data"
	"repolint/internal/data/models"
	"repolint/internal/fetcher"
	gh "repolint/internal/github"
)

const lastPullRequestChecksQuery = `query($owner: String!, $name: String!) {
  repository(owner: $owner, name: $name) {
    pullRequests(last: 1) {
      nodes {
        number
        commits(last: 1) {
          nodes {
            commit {
              statusCheckRollup {
                contexts(first: 100) {
                  nodes {
                    __typename
                    ... on CheckRun { name }
                    ... on StatusContext { context }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

type lastPullRequestChecksResponse struct {
	Repository *struct {
		PullRequests struct {
			Nodes []struct {
				Number  int `json:"number"`
				Commits struct {
					Nodes []struct {
						Commit struct {
							StatusCheckRollup *struct {
								Contexts struct {
									Nodes []struct {
										Typename string `json:"__typename"`
										Name     string `json:"name"`
										Context  string `json:"context"`
									} `json:"nodes"`
								} `json:"contexts"`
							} `json:"statusCheckRollup"`
						} `json:"commit"`
					} `json:"nodes"`
				} `json:"commits"`
			} `json:"nodes"`
		} `json:"pullRequests"`
	} `json:"repository"`
}

type lastPullRequestChecksFetcher struct{}

func (l *lastPullRequestChecksFetcher) Key() data.DependencyKey {
	return data.DepRepoLastPullRequestChecks
}

func (l *lastPullRequestChecksFetcher) Scope() data.FetchScope { return data.ScopeRepo }

// Fetch uses one GraphQL query when authenticated. Anonymous clients cannot
// use GraphQL and fall back to three REST calls.
func (l *lastPullRequestChecksFetcher) Fetch(ctx context.Context, repo data.RepoRef, _ map[string]string, f *fetcher.Fetcher) (any, error) {
	if !f.Client().Authenticated {
		return fetchPullRequestChecksREST(ctx, repo, f)
	}

	var out gh.GraphQLResponse[lastPullRequestChecksResponse]
	err := f.Spend(ctx, func() (*http.Response, error) {
		var (
			resp *http.Response
			err  error
		)
		out, resp, err = gh.DoGraphQL[lastPullRequestChecksResponse](ctx, f.Client(), gh.GraphQLRequest{
			Query: lastPullRequestChecksQuery,
			Variables: map[string]any{
				"owner": repo.Owner,
				"name":  repo.Name,
			},
		})
		return resp, err
	})
	if err != nil {
		return nil, err
	}

	return toPullRequestChecks(out.Data), nil
}

func fetchPullRequestChecksREST(ctx context.Context, repo data.RepoRef, f *fetcher.Fetcher) (*models.PullRequestChecks, error) {
	prs, _, err := restCall(ctx, f, func(c *github.Client) ([]*github.PullRequest, *github.Response, error) {
		return c.PullRequests.List(ctx, repo.Owner, repo.Name, &github.PullRequestListOptions{
			State:       "all",
			Sort:        "created",
			Direction:   "desc",
			ListOptions: github.ListOptions{PerPage: 1},
		})
	})
	if err != nil {
		return nil, err
	}

	checks := &models.PullRequestChecks{}
	if len(prs) == 0 || prs[0] == nil {
		return checks, nil
	}
	checks.Number = prs[0].GetNumber()
	sha := prs[0].GetHead().GetSHA()
	if sha == "" {
		return checks, nil
	}

	runs, _, err := restCall(ctx, f, func(c *github.Client) (*github.ListCheckRunsResults, *github.Response, error) {
		return c.Checks.ListCheckRunsForRef(ctx, repo.Owner, repo.Name, sha, &github.ListCheckRunsOptions{
			ListOptions: github.ListOptions{PerPage: 100},
		})
	})
	if err != nil {
		return nil, err
	}
	statuses, _, err := restCall(ctx, f, func(c *github.Client) ([]*github.RepoStatus, *github.Response, error) {
		return c.Repositories.ListStatuses(ctx, repo.Owner, repo.Name, sha, &github.ListOptions{PerPage: 100})
	})
	if err != nil {
		return nil, err
	}

	// Statuses are listed once per update; keep each context once.
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			checks.Names = append(checks.Names, name)
		}
	}
	if runs != nil {
		for _, run := range runs.CheckRuns {
			add(run.GetName())
		}
	}
	for _, st := range statuses {
		add(st.GetContext())
	}
	return checks, nil
}

func toPullRequestChecks(resp lastPullRequestChecksResponse) *models.PullRequestChecks {
	checks := &models.PullRequestChecks{}
	if resp.Repository == nil || len(resp.Repository.PullRequests.Nodes) == 0 {
		return checks
	}

	pr := resp.Repository.PullRequests.Nodes[0]
	checks.Number = pr.Number
	for _, c := range pr.Commits.Nodes {
		rollup := c.Commit.StatusCheckRollup
		if rollup == nil {
			continue
		}
		for _, n := range rollup.Contexts.Nodes {
			switch n.Typename {
			case "CheckRun":
				if n.Name != "" {
					checks.Names = append(checks.Names, n.Name)
				}
			case "StatusContext":
				if n.Context != "" {
					checks.Names = append(checks.Names, n.Context)
				}
			}
		}
	}
	return checks
}

func init() {
	fetcher.RegisterDataFetcher(&lastPullRequestChecksFetcher{})
}
