package linter

import "regexp"

// Patterns holds the file globs and content expressions the resolvers look
// for. It is built once and shared read-only across concurrent sections.
type Patterns struct {
	AdoptersFiles      []string
	ChangelogFiles     []string
	CodeOfConductFiles []string
	ContributingFiles  []string
	GovernanceFiles    []string
	LicenseFiles       []string
	MaintainersFiles   []string
	ReadmeFiles        []string
	RoadmapFiles       []string
	SecurityFiles      []string

	AdoptersHeader      *regexp.Regexp
	ChangelogHeader     *regexp.Regexp
	CodeOfConductHeader *regexp.Regexp
	ContributingHeader  *regexp.Regexp
	GovernanceHeader    *regexp.Regexp
	RoadmapHeader       *regexp.Regexp
	SecurityHeader      *regexp.Regexp

	ChangelogRelease *regexp.Regexp
	CommunityMeeting *regexp.Regexp
	ArtifactHubBadge *regexp.Regexp
	OpenSSFBadge     *regexp.Regexp
	FossaURL         *regexp.Regexp
	SnykURL          *regexp.Regexp
	TrademarkFooter  *regexp.Regexp
}

// Community health file names looked up in the owner's ".github" repository.
const (
	CodeOfConductHealthFile = "CODE_OF_CONDUCT.md"
	ContributingHealthFile  = "CONTRIBUTING.md"
	SecurityHealthFile      = "SECURITY.md"
)

// DCOCheckName is the pull request check reported by the DCO app.
const DCOCheckName = "DCO"

var defaultPatterns = &Patterns{
	AdoptersFiles:      []string{"adopters*", "users*"},
	ChangelogFiles:     []string{"changelog*"},
	CodeOfConductFiles: []string{"code*of*conduct.md", "docs/code*of*conduct.md", ".github/code*of*conduct.md"},
	ContributingFiles:  []string{"contributing*", "docs/contributing*", ".github/contributing*"},
	GovernanceFiles:    []string{"governance*", "docs/governance*"},
	LicenseFiles:       []string{"LICENSE*", "COPYING*"},
	MaintainersFiles: []string{
		"maintainers*", "docs/maintainers*",
		"owners*", "docs/owners*",
		"codeowners*", ".github/codeowners*", "docs/codeowners*",
	},
	ReadmeFiles:   []string{"README*"},
	RoadmapFiles:  []string{"roadmap*"},
	SecurityFiles: []string{"security*", "docs/security*", ".github/security*"},

	AdoptersHeader:      header("adopters"),
	ChangelogHeader:     header("changelog"),
	CodeOfConductHeader: header("code of conduct"),
	ContributingHeader:  header("contributing"),
	GovernanceHeader:    header("governance"),
	RoadmapHeader:       header("roadmap"),
	SecurityHeader:      header("security"),

	ChangelogRelease: regexp.MustCompile(`(?i)changelog`),
	CommunityMeeting: regexp.MustCompile(`(?i)(community|developer|development) (call|event|meeting|session)`),
	ArtifactHubBadge: regexp.MustCompile(`https://artifacthub.io/badge/repository/.*`),
	OpenSSFBadge:     regexp.MustCompile(`https://bestpractices.coreinfrastructure.org/projects/\d+`),
	FossaURL:         regexp.MustCompile(`(https://app.fossa.(?:io|com)/projects/[^"'\)]+)`),
	SnykURL:          regexp.MustCompile(`(https://snyk.io/test/github/[^/]+/[^/"\)]+)`),
	TrademarkFooter:  regexp.MustCompile(`https://(?:w{3}\.)?linuxfoundation.org/(?:legal/)?trademark-usage`),
}

// header matches a markdown heading line containing words.
func header(words string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^#+.*` + regexp.QuoteMeta(words) + `.*$`)
}

// DefaultPatterns returns the built-in patterns. The result is shared and
// must not be modified.
func DefaultPatterns() *Patterns {
	return defaultPatterns
}
