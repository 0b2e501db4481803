package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type GraphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type GraphQLError struct {
	Message string   `json:"message"`
	Type    string   `json:"type,omitempty"`
	Path    []string `json:"path,omitempty"`
}

type GraphQLResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []GraphQLError `json:"errors"`
}

// GraphQLErrors is returned when the endpoint answered but reported errors.
type GraphQLErrors []GraphQLError

func (e GraphQLErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ge := range e {
		msgs = append(msgs, ge.Message)
	}
	return "graphql: " + strings.Join(msgs, "; ")
}

// NotFound reports whether every error is of type NOT_FOUND.
func (e GraphQLErrors) NotFound() bool {
	if len(e) == 0 {
		return false
	}
	for _, ge := range e {
		if ge.Type != "NOT_FOUND" {
			return false
		}
	}
	return true
}

func graphqlEndpoint(base *url.URL) (*url.URL, error) {
	if base == nil {
		return nil, fmt.Errorf("graphql: base url is nil")
	}

	u := *base
	u.RawQuery = ""
	u.Fragment = ""

	// GitHub.com REST base: https://api.github.com/
	// GitHub.com GraphQL:   https://api.github.com/graphql
	//
	// GHES REST base is typically: https://<host>/api/v3/
	// GHES GraphQL:               https://<host>/api/graphql
	path := strings.TrimSuffix(u.Path, "/")
	if strings.HasSuffix(path, "/api/v3") {
		u.Path = "/api/graphql"
		return &u, nil
	}

	u.Path = "/graphql"
	return &u, nil
}

// DoGraphQL executes a GraphQL POST against the GitHub API using the same
// transport as the REST client (auth, verbose logging).
//
// Request-budget accounting (Acquire/UpdateFromResponse) is the caller's job.
// Endpoint-reported errors are returned as GraphQLErrors.
func DoGraphQL[T any](ctx context.Context, c *Client, req GraphQLRequest) (GraphQLResponse[T], *http.Response, error) {
	var zero GraphQLResponse[T]
	if ctx == nil {
		return zero, nil, fmt.Errorf("graphql: ctx is nil")
	}
	if c == nil || c.Client == nil {
		return zero, nil, fmt.Errorf("graphql: client is nil")
	}
	if c.HTTP == nil {
		return zero, nil, fmt.Errorf("graphql: http client is nil")
	}

	endpoint, err := graphqlEndpoint(c.Client.BaseURL)
	if err != nil {
		return zero, nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return zero, nil, fmt.Errorf("graphql: marshal request: %w", err)
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return zero, nil, fmt.Errorf("graphql: build request: %w", err)
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Accept", "application/json")
	hreq.Header.Set("User-Agent", userAgent)

	hresp, err := c.HTTP.Do(hreq)
	if err != nil {
		return zero, nil, fmt.Errorf("graphql: do request: %w", err)
	}
	defer func() { _ = hresp.Body.Close() }()

	if hresp.StatusCode < 200 || hresp.StatusCode >= 300 {
		return zero, hresp, fmt.Errorf("graphql: http %d", hresp.StatusCode)
	}

	var out GraphQLResponse[T]
	if err := json.NewDecoder(hresp.Body).Decode(&out); err != nil {
		return zero, hresp, fmt.Errorf("graphql: decode response: %w", err)
	}
	if len(out.Errors) > 0 {
		return zero, hresp, GraphQLErrors(out.Errors)
	}

	return out, hresp, nil
}
