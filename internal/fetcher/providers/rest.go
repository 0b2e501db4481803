package providers

import (
	"context"
	"net/http"

	"github.com/google/go-github/v81/github"

	"repolint/internal/fetcher"
)

// restCall runs one go-github request against the fetcher's budget. The
// *github.Response is returned even on error so callers can inspect the status.
func restCall[T any](ctx context.Context, f *fetcher.Fetcher, call func(*github.Client) (T, *github.Response, error)) (T, *github.Response, error) {
	var (
		out  T
		resp *github.Response
	)
	err := f.Spend(ctx, func() (*http.Response, error) {
		var err error
		out, resp, err = call(f.Client().Client)
		if resp == nil {
			return nil, err
		}
		return resp.Response, err
	})
	return out, resp, err
}

func isNotFound(resp *github.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusNotFound
}
