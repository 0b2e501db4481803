package engine

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v81/github"

	"repolint/internal/check"
	"repolint/internal/metadata"
)

// presentLintError renders a failed lint run for the terminal. Unless verbose
// is set it drops the GitHub API request line so messages stay short and do
// not echo request URLs.
func presentLintError(err error, verbose bool) string {
	if err == nil {
		return "unknown error"
	}

	full := err.Error()
	if verbose {
		return full
	}

	var cfgErr *metadata.ConfigError
	if errors.As(err, &cfgErr) {
		return full
	}

	var fe *check.FetchError
	if !errors.As(err, &fe) {
		if scrubbed := scrubGitHubRequestFromErrorString(full); scrubbed != "" {
			return scrubbed
		}
		return full
	}

	// Keep the section prefix ("documentation: ", "legal: ", ...) wrapped
	// around the FetchError.
	prefix := ""
	if i := strings.Index(full, fe.Error()); i > 0 {
		prefix = full[:i]
	}

	target := fe.URL
	if target == "" {
		target = "remote source"
	}
	return prefix + fmt.Sprintf("could not fetch %s: %s", target, describeFetchCause(fe.Err))
}

func describeFetchCause(err error) string {
	if err == nil {
		return "unknown error"
	}

	var rl *github.RateLimitError
	if errors.As(err, &rl) {
		reset := rl.Rate.Reset.Time
		if reset.IsZero() {
			return "GitHub API rate limit exceeded; set GITHUB_TOKEN or GH_TOKEN for a higher limit"
		}
		return fmt.Sprintf("GitHub API rate limit exceeded (resets at %s); set GITHUB_TOKEN or GH_TOKEN for a higher limit", reset.UTC().Format("15:04:05 MST"))
	}

	var er *github.ErrorResponse
	if errors.As(err, &er) {
		msg := strings.TrimSpace(er.Message)
		if msg == "" {
			msg = "GitHub API request failed"
		}
		if er.Response != nil {
			status := fmt.Sprintf("%d %s", er.Response.StatusCode, http.StatusText(er.Response.StatusCode))
			return fmt.Sprintf("GitHub API request failed (%s): %s", status, msg)
		}
		return fmt.Sprintf("GitHub API request failed: %s", msg)
	}

	s := strings.TrimSpace(err.Error())
	if scrubbed := scrubGitHubRequestFromErrorString(s); scrubbed != "" {
		return scrubbed
	}
	return s
}

func scrubGitHubRequestFromErrorString(s string) string {
	// Typical go-github error format:
	//   GET https://api.github.com/...: 403 Some message. [..]
	// We want to drop the leading "GET https://...: " part.
	methods := []string{"GET ", "POST ", "PUT ", "PATCH ", "DELETE "}
	for _, m := range methods {
		if strings.HasPrefix(s, m) {
			if i := strings.Index(s, "https://"); i >= 0 {
				if j := strings.Index(s[i:], ": "); j >= 0 {
					return strings.TrimSpace(s[i+j+2:])
				}
			}
			if j := strings.Index(s, ": "); j >= 0 {
				return strings.TrimSpace(s[j+2:])
			}
			break
		}
	}
	return ""
}
