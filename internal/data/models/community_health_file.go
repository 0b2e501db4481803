package models

// CommunityHealthFilePresence captures whether a default community health file
// is inherited from the owner's ".github" repository, and where it was found.
type CommunityHealthFilePresence struct {
	Found bool
	Path  string
}
