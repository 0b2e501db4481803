package check

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Globs describes a search for files below Root.
//
// Patterns use forward slashes and path.Match syntax per segment, e.g.
// "README*" or ".github/code*of*conduct.md". When CaseSensitive is false, both
// the pattern and the entry names are compared lower-cased.
type Globs struct {
	Root          string
	Patterns      []string
	CaseSensitive bool
}

// Expand returns the sorted, de-duplicated paths of every entry matching any of
// the patterns. Directories that do not exist contribute no matches.
func (g Globs) Expand() ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, pattern := range g.Patterns {
		pattern = strings.Trim(strings.TrimSpace(pattern), "/")
		if pattern == "" {
			continue
		}
		matches, err := g.expandPattern(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (g Globs) expandPattern(pattern string) ([]string, error) {
	segments := strings.Split(pattern, "/")
	current := []string{""}
	for i, seg := range segments {
		last := i == len(segments)-1
		var next []string
		for _, rel := range current {
			dir := filepath.Join(g.Root, filepath.FromSlash(rel))
			entries, err := os.ReadDir(dir)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return nil, &IOError{Path: dir, Err: err}
			}
			for _, e := range entries {
				ok, err := g.matchSegment(seg, e.Name())
				if err != nil {
					return nil, err
				}
				if !ok {
					continue
				}
				if !last && !e.IsDir() {
					continue
				}
				next = append(next, path.Join(rel, e.Name()))
			}
		}
		if len(next) == 0 {
			return nil, nil
		}
		current = next
	}

	out := make([]string, 0, len(current))
	for _, rel := range current {
		out = append(out, filepath.Join(g.Root, filepath.FromSlash(rel)))
	}
	return out, nil
}

func (g Globs) matchSegment(pattern, name string) (bool, error) {
	if !g.CaseSensitive {
		pattern = strings.ToLower(pattern)
		name = strings.ToLower(name)
	}
	ok, err := path.Match(pattern, name)
	if err != nil {
		return false, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return ok, nil
}
