package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"

	"repolint/internal/data"
)

// DataFetcher retrieves one kind of forge data. Providers register
// themselves from init.
type DataFetcher interface {
	Key() data.DependencyKey
	Scope() data.FetchScope
	Fetch(ctx context.Context, repo data.RepoRef, params map[string]string, f *Fetcher) (any, error)
}

type registry struct {
	mu       sync.RWMutex
	fetchers map[data.DependencyKey]DataFetcher
}

var providers = &registry{fetchers: make(map[data.DependencyKey]DataFetcher)}

// RegisterDataFetcher panics on a nil provider, an empty key or a duplicate key.
func RegisterDataFetcher(df DataFetcher) {
	if df == nil {
		panic("fetcher: nil data fetcher")
	}
	key := df.Key()
	if key == "" {
		panic("fetcher: data fetcher with empty key")
	}

	providers.mu.Lock()
	defer providers.mu.Unlock()
	if _, dup := providers.fetchers[key]; dup {
		panic(fmt.Sprintf("fetcher: data fetcher %s registered twice", key))
	}
	providers.fetchers[key] = df
}

func ResolveDataFetcher(key data.DependencyKey) (DataFetcher, bool) {
	providers.mu.RLock()
	defer providers.mu.RUnlock()
	df, ok := providers.fetchers[key]
	return df, ok
}

// RegisteredKeys lists every registered dependency key in sorted order.
func RegisteredKeys() []data.DependencyKey {
	providers.mu.RLock()
	defer providers.mu.RUnlock()
	keys := make([]data.DependencyKey, 0, len(providers.fetchers))
	for k := range providers.fetchers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Spend takes one request from the budget, runs call and feeds the response's
// rate-limit headers back. call may return a nil response alongside an error.
func (f *Fetcher) Spend(ctx context.Context, call func() (*http.Response, error)) error {
	if err := f.budget.Acquire(ctx, 1); err != nil {
		return err
	}
	resp, err := call()
	if resp != nil {
		f.budget.UpdateFromResponse(resp)
	}
	return err
}
