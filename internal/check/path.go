package check

// PathExists reports whether at least one entry under g.Root matches any of
// g.Patterns.
func PathExists(g Globs) (bool, error) {
	matches, err := g.Expand()
	if err != nil {
		return false, err
	}
	return len(matches) > 0, nil
}
