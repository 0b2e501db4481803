package check

import (
	"github.com/google/licensecheck"
)

// minLicenseCoverage is the share of a license file (in percent) that must be
// covered by known license text before an identifier is reported.
const minLicenseCoverage = 75.0

var approvedLicenses = map[string]struct{}{
	"Apache-2.0":           {},
	"BSD-2-Clause":         {},
	"BSD-2-Clause-FreeBSD": {},
	"BSD-3-Clause":         {},
	"ISC":                  {},
	"MIT":                  {},
	"PostgreSQL":           {},
	"Python-2.0":           {},
	"X11":                  {},
	"Zlib":                 {},
}

// DetectLicense classifies the files selected by g and returns the SPDX
// identifier of the first one that is confidently recognized.
func DetectLicense(g Globs) (string, bool, error) {
	paths, err := g.Expand()
	if err != nil {
		return "", false, err
	}
	for _, p := range paths {
		content, ok, err := readCandidate(p)
		if err != nil {
			return "", false, err
		}
		if !ok {
			continue
		}
		if id, ok := classify(content); ok {
			return id, true, nil
		}
	}
	return "", false, nil
}

func classify(content []byte) (string, bool) {
	cov := licensecheck.Scan(content)
	if cov.Percent < minLicenseCoverage {
		return "", false
	}

	best := ""
	bestLen := 0
	for _, m := range cov.Match {
		if m.IsURL || m.ID == "" {
			continue
		}
		if n := m.End - m.Start; n > bestLen {
			best, bestLen = m.ID, n
		}
	}
	return best, best != ""
}

// IsApproved reports whether id is on the approved license list.
func IsApproved(id string) bool {
	_, ok := approvedLicenses[id]
	return ok
}
