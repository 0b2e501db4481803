package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"repolint/internal/data"
	"repolint/internal/data/models"
	"repolint/internal/fetcher"
	gh "repolint/internal/github"
)

func newTestFetcher(t *testing.T, mux *http.ServeMux) *fetcher.Fetcher {
	t.Helper()
	return newTestFetcherWithToken(t, mux, "dummy-token")
}

func newTestFetcherWithToken(t *testing.T, mux *http.ServeMux, token string) *fetcher.Fetcher {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := gh.NewClient(context.Background(), token)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	baseURL, err := url.Parse(server.URL + "/")
	if err != nil {
		t.Fatalf("parse server URL: %v", err)
	}
	client.Client.BaseURL = baseURL
	client.Client.UploadURL = baseURL
	return fetcher.NewFetcher(client, fetcher.NewRequestBudget())
}

var acme = data.RepoRef{Owner: "acme", Name: "widget"}

func TestRepoMetadataFetcher(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantHome    string
		wantLicense string
		wantOwner   string
	}{
		{
			name:        "full metadata",
			body:        `{"name":"widget","owner":{"login":"acme"},"homepage":"https://widget.dev","default_branch":"main","license":{"spdx_id":"Apache-2.0"}}`,
			wantHome:    "https://widget.dev",
			wantLicense: "Apache-2.0",
			wantOwner:   "acme",
		},
		{
			name:        "no homepage no license",
			body:        `{"name":"widget","owner":{"login":"acme"},"homepage":null,"license":null}`,
			wantHome:    "",
			wantLicense: "",
			wantOwner:   "acme",
		},
		{
			name:        "owner falls back to reference",
			body:        `{"name":"widget","license":{"spdx_id":"NOASSERTION"}}`,
			wantLicense: "NOASSERTION",
			wantOwner:   "acme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/repos/acme/widget", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			})
			f := newTestFetcher(t, mux)

			val, err := f.Fetch(context.Background(), acme, data.DepRepoMetadata, nil)
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			md, ok := val.(*models.RepositoryMetadata)
			if !ok {
				t.Fatalf("unexpected type %T", val)
			}
			if md.Homepage != tt.wantHome {
				t.Errorf("Homepage = %q, want %q", md.Homepage, tt.wantHome)
			}
			if md.LicenseSPDXID != tt.wantLicense {
				t.Errorf("LicenseSPDXID = %q, want %q", md.LicenseSPDXID, tt.wantLicense)
			}
			if md.Owner != tt.wantOwner {
				t.Errorf("Owner = %q, want %q", md.Owner, tt.wantOwner)
			}
		})
	}
}

func TestCommunityHealthFileFetcher(t *testing.T) {
	tests := []struct {
		name      string
		existing  string
		wantFound bool
		wantPath  string
		wantCalls int32
	}{
		{name: "root", existing: "SECURITY.md", wantFound: true, wantPath: "SECURITY.md", wantCalls: 1},
		{name: "github dir", existing: ".github/SECURITY.md", wantFound: true, wantPath: ".github/SECURITY.md", wantCalls: 2},
		{name: "docs dir", existing: "docs/SECURITY.md", wantFound: true, wantPath: "docs/SECURITY.md", wantCalls: 3},
		{name: "missing", existing: "", wantFound: false, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			mux := http.NewServeMux()
			mux.HandleFunc("/repos/acme/.github/contents/", func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				path := strings.TrimPrefix(r.URL.Path, "/repos/acme/.github/contents/")
				if tt.existing == "" || path != tt.existing {
					w.WriteHeader(http.StatusNotFound)
					fmt.Fprint(w, `{"message":"Not Found"}`)
					return
				}
				fmt.Fprintf(w, `{"type":"file","name":"SECURITY.md","path":%q}`, path)
			})
			f := newTestFetcher(t, mux)

			val, err := f.Fetch(context.Background(), acme, data.DepOrgCommunityHealthFile, map[string]string{data.ParamPath: "SECURITY.md"})
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			p := val.(*models.CommunityHealthFilePresence)
			if p.Found != tt.wantFound || p.Path != tt.wantPath {
				t.Errorf("got %+v, want found=%v path=%q", p, tt.wantFound, tt.wantPath)
			}
			if got := atomic.LoadInt32(&calls); got != tt.wantCalls {
				t.Errorf("calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestCommunityHealthFileFetcher_ServerErrorPropagates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/.github/contents/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message":"boom"}`)
	})
	f := newTestFetcher(t, mux)

	_, err := f.Fetch(context.Background(), acme, data.DepOrgCommunityHealthFile, map[string]string{data.ParamPath: "CONTRIBUTING.md"})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestCommunityHealthFileFetcher_RequiresPath(t *testing.T) {
	f := newTestFetcher(t, http.NewServeMux())
	if _, err := f.Fetch(context.Background(), acme, data.DepOrgCommunityHealthFile, nil); err == nil {
		t.Fatalf("expected error for missing path param")
	}
}

func TestLastReleaseFetcher(t *testing.T) {
	t.Run("latest release", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/acme/widget/releases", func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("per_page"); got != "1" {
				t.Errorf("per_page = %q, want 1", got)
			}
			fmt.Fprint(w, `[{"tag_name":"v1.2.0","body":"See CHANGELOG.md","created_at":"2026-01-01T00:00:00Z","published_at":"2026-01-02T00:00:00Z"}]`)
		})
		f := newTestFetcher(t, mux)

		val, err := f.Fetch(context.Background(), acme, data.DepRepoLastRelease, nil)
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		rel := val.(*models.Release)
		if rel == nil || rel.TagName != "v1.2.0" || rel.Body != "See CHANGELOG.md" {
			t.Fatalf("unexpected release %+v", rel)
		}
		if rel.ReleasedAt().Day() != 2 {
			t.Errorf("ReleasedAt = %v, want published date", rel.ReleasedAt())
		}
	})

	t.Run("no releases", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/repos/acme/widget/releases", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `[]`)
		})
		f := newTestFetcher(t, mux)

		val, err := f.Fetch(context.Background(), acme, data.DepRepoLastRelease, nil)
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if rel := val.(*models.Release); rel != nil {
			t.Fatalf("expected nil release, got %+v", rel)
		}
	})
}

func TestLastPullRequestChecksFetcher(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), `"owner":"acme"`) {
			t.Errorf("unexpected request body: %s", body)
		}
		fmt.Fprint(w, `{"data":{"repository":{"pullRequests":{"nodes":[{"number":42,"commits":{"nodes":[{"commit":{"statusCheckRollup":{"contexts":{"nodes":[
			{"__typename":"CheckRun","name":"build"},
			{"__typename":"StatusContext","context":"DCO"}
		]}}}}]}}]}}}}`)
	})
	f := newTestFetcher(t, mux)

	val, err := f.Fetch(context.Background(), acme, data.DepRepoLastPullRequestChecks, nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	checks := val.(*models.PullRequestChecks)
	if checks.Number != 42 {
		t.Errorf("Number = %d, want 42", checks.Number)
	}
	if !checks.Has("dco") || !checks.Has("build") || checks.Has("lint") {
		t.Errorf("unexpected names %v", checks.Names)
	}
}

func TestToPullRequestChecks_NoPullRequests(t *testing.T) {
	checks := toPullRequestChecks(lastPullRequestChecksResponse{})
	if checks.Number != 0 || len(checks.Names) != 0 {
		t.Fatalf("expected empty checks, got %+v", checks)
	}
}

func TestLastPullRequestChecksFetcher_GraphQLErrorPropagates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":null,"errors":[{"type":"NOT_FOUND","message":"Could not resolve to a Repository"}]}`)
	})
	f := newTestFetcher(t, mux)

	if _, err := f.Fetch(context.Background(), acme, data.DepRepoLastPullRequestChecks, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLastPullRequestChecksFetcher_AnonymousUsesREST(t *testing.T) {
	var graphqlCalls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&graphqlCalls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"This endpoint requires you to be authenticated."}`)
	})
	mux.HandleFunc("/repos/acme/widget/pulls", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != "all" || q.Get("sort") != "created" || q.Get("direction") != "desc" || q.Get("per_page") != "1" {
			t.Errorf("unexpected pulls query: %s", r.URL.RawQuery)
		}
		fmt.Fprint(w, `[{"number":42,"head":{"sha":"abc123"}}]`)
	})
	mux.HandleFunc("/repos/acme/widget/commits/abc123/check-runs", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total_count":1,"check_runs":[{"id":1,"name":"build"}]}`)
	})
	mux.HandleFunc("/repos/acme/widget/commits/abc123/statuses", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"context":"DCO","state":"pending"},{"context":"DCO","state":"success"}]`)
	})
	f := newTestFetcherWithToken(t, mux, "")

	val, err := f.Fetch(context.Background(), acme, data.DepRepoLastPullRequestChecks, nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	checks := val.(*models.PullRequestChecks)
	if checks.Number != 42 {
		t.Errorf("Number = %d, want 42", checks.Number)
	}
	if len(checks.Names) != 2 || !checks.Has("dco") || !checks.Has("build") {
		t.Errorf("unexpected names %v", checks.Names)
	}
	if n := atomic.LoadInt32(&graphqlCalls); n != 0 {
		t.Errorf("anonymous fetch hit GraphQL %d times", n)
	}
}

func TestLastPullRequestChecksFetcher_AnonymousNoPullRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget/pulls", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	f := newTestFetcherWithToken(t, mux, "")

	val, err := f.Fetch(context.Background(), acme, data.DepRepoLastPullRequestChecks, nil)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if checks := val.(*models.PullRequestChecks); checks.Number != 0 || len(checks.Names) != 0 {
		t.Fatalf("expected empty checks, got %+v", checks)
	}
}
