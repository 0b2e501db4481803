package check

import (
	"context"
	"regexp"
)

// Source is one piece of evidence for a checklist item. It returns true when
// the evidence was found, false when it was not, and an error only when the
// answer could not be determined.
type Source func(ctx context.Context) (bool, error)

// Any evaluates sources strictly in order and returns true at the first source
// that finds evidence; later sources are not invoked. The first error aborts
// the evaluation.
func Any(ctx context.Context, sources ...Source) (bool, error) {
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		found, err := src(ctx)
		if err != nil {
			return false, err
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

// BestEffort turns a failure of src into a negative result.
func BestEffort(src Source) Source {
	return func(ctx context.Context) (bool, error) {
		found, err := src(ctx)
		if err != nil {
			return false, nil
		}
		return found, nil
	}
}

// Exists is the Source form of PathExists.
func Exists(g Globs) Source {
	return func(context.Context) (bool, error) {
		return PathExists(g)
	}
}

// Matches is the Source form of ContentMatches.
func Matches(g Globs, re *regexp.Regexp) Source {
	return func(context.Context) (bool, error) {
		return ContentMatches(g, re)
	}
}
