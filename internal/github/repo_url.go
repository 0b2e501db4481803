package github

import (
	"fmt"
	"net/url"
	"strings"
)

// ParseRepositoryURL extracts OWNER and NAME from a repository reference.
//
// Accepted forms:
//
//	https://github.com/<owner>/<name>[.git][/...]
//	github.com/<owner>/<name>
//	<owner>/<name>
func ParseRepositoryURL(raw string) (owner, name string, err error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", "", fmt.Errorf("repository url is empty")
	}

	if strings.HasPrefix(s, "github.com/") || strings.HasPrefix(s, "www.github.com/") {
		s = "https://" + s
	}

	var parts []string
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		u, perr := url.Parse(s)
		if perr != nil {
			return "", "", fmt.Errorf("invalid repository url %q: %w", raw, perr)
		}
		host := strings.ToLower(u.Hostname())
		if host != "github.com" && host != "www.github.com" {
			return "", "", fmt.Errorf("unsupported repository host %q (only github.com is supported)", u.Hostname())
		}
		parts = strings.FieldsFunc(strings.Trim(u.Path, "/"), func(r rune) bool { return r == '/' })
	} else {
		parts = strings.Split(strings.Trim(s, "/"), "/")
		if len(parts) != 2 {
			return "", "", fmt.Errorf("invalid repository %q: expected OWNER/REPO or a github.com URL", raw)
		}
	}

	if len(parts) < 2 {
		return "", "", fmt.Errorf("invalid repository url %q: missing owner or name", raw)
	}
	owner = parts[0]
	name = strings.TrimSuffix(parts[1], ".git")
	if owner == "" || name == "" {
		return "", "", fmt.Errorf("invalid repository url %q: missing owner or name", raw)
	}
	return owner, name, nil
}
