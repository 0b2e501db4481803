package data

import "strings"

// DependencyKey uniquely identifies a piece of forge data.
type DependencyKey string

// FetchScope controls how widely a fetched value is shared. Org-scoped values
// are cached per owner, repo-scoped values per repository.
type FetchScope string

const (
	ScopeRepo FetchScope = "repo"
	ScopeOrg  FetchScope = "org"
)

// RepoRef identifies a repository on the forge.
type RepoRef struct {
	Owner string
	Name  string
}

// FullName returns OWNER/NAME.
func (r RepoRef) FullName() string {
	if r.Owner == "" || r.Name == "" {
		return ""
	}
	return r.Owner + "/" + r.Name
}

// CacheID is the lower-cased FullName used for cache keys.
func (r RepoRef) CacheID() string {
	return strings.ToLower(r.FullName())
}
