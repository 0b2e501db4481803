package check

import (
	"errors"
	"io/fs"
	"os"
	"regexp"
)

// ContentMatches reports whether the content of any file selected by g matches
// re. Files are inspected in path order and the search stops at the first hit.
func ContentMatches(g Globs, re *regexp.Regexp) (bool, error) {
	paths, err := g.Expand()
	if err != nil {
		return false, err
	}
	for _, p := range paths {
		content, ok, err := readCandidate(p)
		if err != nil {
			return false, err
		}
		if ok && re.Match(content) {
			return true, nil
		}
	}
	return false, nil
}

// ContentFind returns the first value extracted by res from the files selected
// by g. Regexps are tried in order; for each one every file is tried in path
// order. The first capture group is returned when the regexp has one,
// otherwise the whole match.
func ContentFind(g Globs, res []*regexp.Regexp) (string, bool, error) {
	paths, err := g.Expand()
	if err != nil {
		return "", false, err
	}

	var contents [][]byte
	for _, p := range paths {
		content, ok, err := readCandidate(p)
		if err != nil {
			return "", false, err
		}
		if ok {
			contents = append(contents, content)
		}
	}

	for _, re := range res {
		for _, content := range contents {
			m := re.FindSubmatch(content)
			if m == nil {
				continue
			}
			if len(m) > 1 {
				return string(m[1]), true, nil
			}
			return string(m[0]), true, nil
		}
	}
	return "", false, nil
}

// readCandidate reads a regular file. A file removed after listing, or a
// directory, yields ok=false.
func readCandidate(p string) ([]byte, bool, error) {
	info, err := os.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, &IOError{Path: p, Err: err}
	}
	if info.IsDir() {
		return nil, false, nil
	}
	content, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, &IOError{Path: p, Err: err}
	}
	return content, true, nil
}
