package linter

import (
	"regexp"

	"repolint/internal/check"
)

// lintLicense derives the license section. The identifier detected in the
// checkout wins over the one declared on the forge.
func (r *run) lintLicense() (License, error) {
	var lic License

	id, ok, err := check.DetectLicense(check.Globs{Root: r.opts.Root, Patterns: r.p.LicenseFiles, CaseSensitive: true})
	if err != nil {
		return License{}, err
	}
	if !ok {
		id, ok = r.ghMD.DeclaredLicense()
	}
	if ok {
		approved := check.IsApproved(id)
		lic.SPDXID = &id
		lic.Approved = &approved
	}

	if url, ok := r.md.ScanningURL(); ok {
		lic.Scanning = &url
		return lic, nil
	}
	url, ok, err := check.ContentFind(r.readme(), []*regexp.Regexp{r.p.FossaURL, r.p.SnykURL})
	if err != nil {
		return License{}, err
	}
	if ok {
		lic.Scanning = &url
	}

	return lic, nil
}
