package fetcher

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"repolint/internal/data"
	gh "repolint/internal/github"
)

// Fetcher resolves forge data by dependency key. Values are cached for the
// lifetime of the Fetcher and concurrent identical requests share one call.
type Fetcher struct {
	client *gh.Client
	budget *RequestBudget
	group  Group
	cache  *Cache
}

type fetchChainKey struct{}

func NewFetcher(client *gh.Client, budget *RequestBudget) *Fetcher {
	return &Fetcher{
		client: client,
		budget: budget,
		cache:  NewCache(),
	}
}

func (f *Fetcher) Client() *gh.Client {
	return f.client
}

// Stats summarizes how much of a run was served without new requests.
type Stats struct {
	CachedResults int
	CacheHits     int64
	CacheMisses   int64
	SharedFlights int64
	Remaining     int
}

func (f *Fetcher) Stats() Stats {
	return Stats{
		CachedResults: f.cache.Len(),
		CacheHits:     f.cache.Hits(),
		CacheMisses:   f.cache.Misses(),
		SharedFlights: f.group.Shared(),
		Remaining:     f.budget.Remaining(),
	}
}

func (f *Fetcher) Fetch(ctx context.Context, repo data.RepoRef, key data.DependencyKey, params map[string]string) (any, error) {
	if ctx == nil {
		return nil, fmt.Errorf("Fetch: nil context")
	}
	if f == nil {
		return nil, fmt.Errorf("Fetch: nil Fetcher")
	}
	if f.client == nil || f.client.Client == nil {
		return nil, fmt.Errorf("Fetch: nil GitHub client (use NewFetcher)")
	}
	if f.budget == nil {
		return nil, fmt.Errorf("Fetch: nil request budget (use NewFetcher)")
	}
	if f.cache == nil {
		return nil, fmt.Errorf("Fetch: nil cache (use NewFetcher)")
	}
	if key == "" {
		return nil, fmt.Errorf("Fetch: empty dependency key")
	}
	if repo.Owner == "" || repo.Name == "" {
		return nil, fmt.Errorf("Fetch: repo owner/name is required")
	}

	fetchImpl, ok := ResolveDataFetcher(key)
	if !ok {
		return nil, fmt.Errorf("unsupported dependency key: %s", key)
	}

	flightKey, err := makeFlightKey(repo, fetchImpl.Scope(), key, params)
	if err != nil {
		return nil, err
	}

	ctx, err = withFetchChain(ctx, flightKey)
	if err != nil {
		return nil, err
	}

	if val, ok := f.cache.Get(flightKey); ok {
		return val, nil
	}

	// Dedupe concurrent identical requests (e.g. the last release is needed by
	// two report sections running in parallel).
	val, err, _ := f.group.Do(flightKey, func() (any, error) {
		return fetchImpl.Fetch(ctx, repo, params, f)
	})

	if err == nil {
		f.cache.Set(flightKey, val)
	}

	return val, err
}

func withFetchChain(ctx context.Context, flightKey string) (context.Context, error) {
	chain := getFetchChain(ctx)
	for _, existing := range chain {
		if existing == flightKey {
			return nil, fmt.Errorf("Fetch: dependency cycle detected: %s -> %s", strings.Join(chain, " -> "), flightKey)
		}
	}

	updated := make([]string, 0, len(chain)+1)
	updated = append(updated, chain...)
	updated = append(updated, flightKey)
	return context.WithValue(ctx, fetchChainKey{}, updated), nil
}

func getFetchChain(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	chain, ok := ctx.Value(fetchChainKey{}).([]string)
	if !ok {
		return nil
	}
	return chain
}

func makeFlightKey(repo data.RepoRef, scope data.FetchScope, key data.DependencyKey, params map[string]string) (string, error) {
	var prefix string
	switch scope {
	case data.ScopeOrg:
		prefix = strings.ToLower(repo.Owner)
	case data.ScopeRepo:
		prefix = repo.CacheID()
	default:
		return "", fmt.Errorf("Fetch: unknown fetch scope %q for dependency: %s", scope, key)
	}
	if prefix == "" {
		return "", fmt.Errorf("Fetch: repo owner/name is required for %s-scoped dependency: %s", scope, key)
	}

	return prefix + ":" + string(key) + ":" + stableParamsKey(params), nil
}

func stableParamsKey(params map[string]string) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+params[k])
	}
	return strings.Join(parts, "&")
}
