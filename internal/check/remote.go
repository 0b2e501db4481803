package check

import (
	"context"
	"io"
	"net/http"
	"regexp"
)

// maxRemoteBody bounds how much of a remote page is inspected.
const maxRemoteBody = 10 << 20

// RemoteMatches fetches url and reports whether the response body matches re.
//
// The HTTP status is not interpreted: an error page is simply content that does
// not match. Transport failures are returned as *FetchError.
func RemoteMatches(ctx context.Context, client *http.Client, url string, re *regexp.Regexp) (bool, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, &FetchError{URL: url, Err: err}
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, &FetchError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBody))
	if err != nil {
		return false, &FetchError{URL: url, Err: err}
	}
	return re.Match(body), nil
}
