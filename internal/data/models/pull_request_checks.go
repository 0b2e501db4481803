package models

import "strings"

// PullRequestChecks lists the check run names and commit status contexts
// reported on the head commit of the most recent pull request.
//
// A repository without pull requests has Number 0 and no names.
type PullRequestChecks struct {
	Number int
	Names  []string
}

// Has reports whether a check named name (case-insensitive) was reported.
func (c *PullRequestChecks) Has(name string) bool {
	if c == nil {
		return false
	}
	for _, n := range c.Names {
		if strings.EqualFold(strings.TrimSpace(n), name) {
			return true
		}
	}
	return false
}
