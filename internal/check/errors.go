package check

import "fmt"

// IOError reports that a local path could not be read. A path that simply does
// not exist is never an IOError; absence is a valid negative result.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FetchError reports that a remote source could not be reached or returned an
// unusable response. Unlike a negative result it means "could not determine".
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("fetch: %v", e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
