package gateway_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repolint/internal/check"
	"repolint/internal/data/models"
	"repolint/internal/fetcher"
	_ "repolint/internal/fetcher/providers"
	"repolint/internal/gateway"
	gh "repolint/internal/github"
)

var now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newGateway(t *testing.T, mux *http.ServeMux) *gateway.Gateway {
	t.Helper()
	return newGatewayWithToken(t, mux, "")
}

// newGatewayWithToken is needed for anything served by GraphQL.
func newGatewayWithToken(t *testing.T, mux *http.ServeMux, token string) *gateway.Gateway {
	t.Helper()

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := gh.NewClient(context.Background(), token)
	require.NoError(t, err)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.Client.BaseURL = baseURL

	g, err := gateway.New(fetcher.NewFetcher(client, fetcher.NewRequestBudget()), "https://github.com/acme/widget", gateway.WithClock(func() time.Time { return now }))
	require.NoError(t, err)
	return g
}

func releaseHandler(calls *int32, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		fmt.Fprint(w, body)
	}
}

func TestNew_RejectsInvalidURL(t *testing.T) {
	client, err := gh.NewClient(context.Background(), "")
	require.NoError(t, err)

	_, err = gateway.New(fetcher.NewFetcher(client, fetcher.NewRequestBudget()), "not a url")
	assert.Error(t, err)

	_, err = gateway.New(nil, "https://github.com/acme/widget")
	assert.Error(t, err)
}

func TestFetchRepositoryMetadata(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"widget","owner":{"login":"acme"},"homepage":"https://widget.dev","license":{"spdx_id":"MIT"}}`)
	})
	g := newGateway(t, mux)

	md, err := g.FetchRepositoryMetadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://widget.dev", md.Homepage)
	id, ok := md.DeclaredLicense()
	assert.True(t, ok)
	assert.Equal(t, "MIT", id)
}

func TestFetchRepositoryMetadata_FailureIsFetchError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})
	g := newGateway(t, mux)

	_, err := g.FetchRepositoryMetadata(context.Background())
	require.Error(t, err)
	var fe *check.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "https://github.com/acme/widget", fe.URL)
}

func TestHasDefaultCommunityHealthFile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/.github/contents/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/acme/.github/contents/CODE_OF_CONDUCT.md" {
			fmt.Fprint(w, `{"type":"file","path":"CODE_OF_CONDUCT.md"}`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	})
	g := newGateway(t, mux)
	md := &models.RepositoryMetadata{Owner: "acme", Name: "widget"}

	ok, err := g.HasDefaultCommunityHealthFile(context.Background(), md, "CODE_OF_CONDUCT.md")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.HasDefaultCommunityHealthFile(context.Background(), md, "SECURITY.md")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLastReleaseBodyMatches(t *testing.T) {
	changelog := regexp.MustCompile(`(?i)changelog`)

	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "mentions changelog", body: `[{"tag_name":"v1","body":"Full Changelog: v0...v1"}]`, want: true},
		{name: "no mention", body: `[{"tag_name":"v1","body":"Bug fixes"}]`, want: false},
		{name: "no releases", body: `[]`, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/repos/acme/widget/releases", releaseHandler(nil, tt.body))
			g := newGateway(t, mux)

			got, err := g.LastReleaseBodyMatches(context.Background(), changelog)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasRecentRelease(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "published last month", body: `[{"tag_name":"v2","published_at":"2026-05-01T00:00:00Z"}]`, want: true},
		{name: "published two years ago", body: `[{"tag_name":"v1","published_at":"2024-05-01T00:00:00Z"}]`, want: false},
		{name: "draft uses creation time", body: `[{"tag_name":"v3","created_at":"2026-04-01T00:00:00Z"}]`, want: true},
		{name: "no releases", body: `[]`, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/repos/acme/widget/releases", releaseHandler(nil, tt.body))
			g := newGateway(t, mux)

			got, err := g.HasRecentRelease(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRelease_SharedAcrossConcurrentQuestions(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget/releases", releaseHandler(&calls, `[{"tag_name":"v2","body":"changelog","published_at":"2026-05-01T00:00:00Z"}]`))
	g := newGateway(t, mux)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := g.HasRecentRelease(context.Background())
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := g.LastReleaseBodyMatches(context.Background(), regexp.MustCompile(`changelog`))
		assert.NoError(t, err)
	}()
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestLastPullRequestHasCheck(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"repository":{"pullRequests":{"nodes":[{"number":7,"commits":{"nodes":[{"commit":{"statusCheckRollup":{"contexts":{"nodes":[{"__typename":"CheckRun","name":"DCO"}]}}}}]}}]}}}}`)
	})
	g := newGatewayWithToken(t, mux, "gho_test")

	ok, err := g.LastPullRequestHasCheck(context.Background(), "dco")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.LastPullRequestHasCheck(context.Background(), "build")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLastPullRequestHasCheck_ServerErrorIsFetchError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	g := newGatewayWithToken(t, mux, "gho_test")

	_, err := g.LastPullRequestHasCheck(context.Background(), "DCO")
	var fe *check.FetchError
	assert.True(t, errors.As(err, &fe))
}

func TestLastPullRequestHasCheck_AnonymousUsesREST(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/graphql", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/repos/acme/widget/pulls", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"number":7,"head":{"sha":"f00d"}}]`)
	})
	mux.HandleFunc("/repos/acme/widget/commits/f00d/check-runs", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"total_count":1,"check_runs":[{"id":1,"name":"DCO"}]}`)
	})
	mux.HandleFunc("/repos/acme/widget/commits/f00d/statuses", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	})
	g := newGateway(t, mux)

	ok, err := g.LastPullRequestHasCheck(context.Background(), "dco")
	require.NoError(t, err)
	assert.True(t, ok)
}
