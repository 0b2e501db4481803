// Package checklist is the catalog of items a Report answers, used to list,
// describe, select and flatten report values.
package checklist

import (
	"fmt"
	"strings"

	"repolint/internal/linter"
)

type Section string

const (
	SectionDocumentation Section = "documentation"
	SectionLicense       Section = "license"
	SectionBestPractices Section = "best_practices"
	SectionSecurity      Section = "security"
	SectionLegal         Section = "legal"
)

// Item is one checklist entry. ID matches the report field name.
type Item struct {
	ID          string
	Section     Section
	Title       string
	Description string

	// value extracts the item from a report. ok reports whether the item is
	// satisfied; value is set for items that carry one.
	value func(r *linter.Report) (ok bool, value string)
}

func flag(b bool) (bool, string) { return b, "" }

func optional(s *string) (bool, string) {
	if s == nil {
		return false, ""
	}
	return true, *s
}

var catalog = []Item{
	{
		ID: "adopters", Section: SectionDocumentation, Title: "Adopters",
		Description: "An ADOPTERS file exists, or the README has an Adopters heading.",
		value:       func(r *linter.Report) (bool, string) { return flag(r.Documentation.Adopters) },
	},
	{
		ID: "code_of_conduct", Section: SectionDocumentation, Title: "Code of conduct",
		Description: "A CODE_OF_CONDUCT file exists, the README has a Code of Conduct heading, or the organization provides a default one.",
		value:       func(r *linter.Report) (bool, string) { return flag(r.Documentation.CodeOfConduct) },
	},
	{
		ID: "contributing", Section: SectionDocumentation, Title: "Contributing",
		Description: "A CONTRIBUTING file exists, the README has a Contributing heading, or the organization provides a default one.",
		value:       func(r *linter.Report) (bool, string) { return flag(r.Documentation.Contributing) },
	},
	{
		ID: "changelog", Section: SectionDocumentation, Title: "Changelog",
		Description: "A CHANGELOG file exists, the README has a Changelog heading, or the last release notes mention a changelog.",
		value:       func(r *linter.Report) (bool, string) { return flag(r.Documentation.Changelog) },
	},
	{
		ID: "governance", Section: SectionDocumentation, Title: "Governance",
		Description: "A GOVERNANCE file exists, or the README has a Governance heading.",
		value:       func(r *linter.Report) (bool, string) { return flag(r.Documentation.Governance) },
	},
	{
		ID: "maintainers", Section: SectionDocumentation, Title: "Maintainers",
		Description: "A MAINTAINERS, OWNERS or CODEOWNERS file exists.",
		value:       func(r *linter.Report) (bool, string) { return flag(r.Documentation.Maintainers) },
	},
	{
		ID: "readme", Section: SectionDocumentation, Title: "Readme",
		Description: "A README file exists at the repository root.",
		value:       func(r *linter.Report) (bool, string) { return flag(r.Documentation.Readme) },
	},
	{
		ID: "roadmap", Section: SectionDocumentation, Title: "Roadmap",
		Description: "A ROADMAP file exists, or the README has a Roadmap heading.",
		value:       func(r *linter.Report) (bool, string) { return flag(r.Documentation.Roadmap) },
	},
	{
		ID: "website", Section: SectionDocumentation, Title: "Website",
		Description: "The repository declares a homepage.",
		value:       func(r *linter.Report) (bool, string) { return flag(r.Documentation.Website) },
	},
	{
		ID: "spdx_id", Section: SectionLicense, Title: "License",
		Description: "A license was detected in the LICENSE/COPYING file or declared on the repository.",
		value:       func(r *linter.Report) (bool, string) { return optional(r.License.SPDXID) },
	},
	{
		ID: "approved", Section: SectionLicense, Title: "Approved license",
		Description: "The license is on the approved list.",
		value: func(r *linter.Report) (bool, string) {
			if r.License.Approved == nil {
				return false, ""
			}
			return *r.License.Approved, fmt.Sprint(*r.License.Approved)
		},
	},
	{
		ID: "scanning", Section: SectionLicense, Title: "License scanning",
		Description: "License scanning is configured in the metadata file or linked from the README (FOSSA, Snyk).",
		value:       func(r *linter.Report) (bool, string) { return optional(r.License.Scanning) },
	},
	{
		ID: "artifacthub_badge", Section: SectionBestPractices, Title: "Artifact Hub badge",
		Description: "The README includes an Artifact Hub badge.",
		value:       func(r *linter.Report) (bool, string) { return flag(r.BestPractices.ArtifactHubBadge) },
	},
	{
		ID: "community_meeting", Section: SectionBestPractices, Title: "Community meeting",
		Description: "The README mentions a community meeting.",
		value:       func(r *linter.Report) (bool, string) { return flag(r.BestPractices.CommunityMeeting) },
	},
	{
		ID: "dco", Section: SectionBestPractices, Title: "Developer Certificate of Origin",
		Description: "Recent commits are signed off, or the last pull request ran the DCO check.",
		value:       func(r *linter.Report) (bool, string) { return flag(r.BestPractices.DCO) },
	},
	{
		ID: "openssf_badge", Section: SectionBestPractices, Title: "OpenSSF badge",
		Description: "The README includes an OpenSSF Best Practices badge.",
		value:       func(r *linter.Report) (bool, string) { return flag(r.BestPractices.OpenSSFBadge) },
	},
	{
		ID: "recent_release", Section: SectionBestPractices, Title: "Recent release",
		Description: "A release was published within the last year.",
		value:       func(r *linter.Report) (bool, string) { return flag(r.BestPractices.RecentRelease) },
	},
	{
		ID: "security_policy", Section: SectionSecurity, Title: "Security policy",
		Description: "A SECURITY file exists, the README has a Security heading, or the organization provides a default one.",
		value:       func(r *linter.Report) (bool, string) { return flag(r.Security.SecurityPolicy) },
	},
	{
		ID: "trademark_footer", Section: SectionLegal, Title: "Trademark footer",
		Description: "The project website displays the Linux Foundation trademark usage footer.",
		value:       func(r *linter.Report) (bool, string) { return flag(r.Legal.TrademarkFooter) },
	},
}

// List returns every item in report order.
func List() []Item {
	out := make([]Item, len(catalog))
	copy(out, catalog)
	return out
}

func Lookup(id string) (Item, bool) {
	for _, it := range catalog {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

func Sections() []Section {
	return []Section{SectionDocumentation, SectionLicense, SectionBestPractices, SectionSecurity, SectionLegal}
}

// Resolve selects items by a comma-separated list of item IDs or section
// names. An empty selector selects everything.
func Resolve(selector string) ([]Item, error) {
	if strings.TrimSpace(selector) == "" {
		return List(), nil
	}

	seen := make(map[string]bool)
	var selected []Item
	add := func(it Item) {
		if !seen[it.ID] {
			seen[it.ID] = true
			selected = append(selected, it)
		}
	}

	for _, tok := range strings.Split(selector, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if it, ok := Lookup(tok); ok {
			add(it)
			continue
		}
		matched := false
		for _, it := range catalog {
			if string(it.Section) == tok {
				add(it)
				matched = true
			}
		}
		if !matched {
			return nil, fmt.Errorf("check not found: %s", tok)
		}
	}
	return selected, nil
}
