package models

import "time"

// Release is the most recent release of a repository.
type Release struct {
	TagName     string
	Body        string
	CreatedAt   time.Time
	PublishedAt time.Time
}

// ReleasedAt is the publication time, falling back to the creation time for
// releases that were never published.
func (r *Release) ReleasedAt() time.Time {
	if r == nil {
		return time.Time{}
	}
	if !r.PublishedAt.IsZero() {
		return r.PublishedAt
	}
	return r.CreatedAt
}
