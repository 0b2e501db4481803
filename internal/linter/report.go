package linter

// Report is the result of linting one repository. Every field is always
// serialized; optional license values serialize as null.
type Report struct {
	Documentation Documentation `json:"documentation"`
	License       License       `json:"license"`
	BestPractices BestPractices `json:"best_practices"`
	Security      Security      `json:"security"`
	Legal         Legal         `json:"legal"`
}

type Documentation struct {
	Adopters      bool `json:"adopters"`
	CodeOfConduct bool `json:"code_of_conduct"`
	Contributing  bool `json:"contributing"`
	Changelog     bool `json:"changelog"`
	Governance    bool `json:"governance"`
	Maintainers   bool `json:"maintainers"`
	Readme        bool `json:"readme"`
	Roadmap       bool `json:"roadmap"`
	Website       bool `json:"website"`
}

// License holds derived values. Approved is nil exactly when SPDXID is nil.
type License struct {
	Approved *bool   `json:"approved"`
	Scanning *string `json:"scanning"`
	SPDXID   *string `json:"spdx_id"`
}

type BestPractices struct {
	ArtifactHubBadge bool `json:"artifacthub_badge"`
	CommunityMeeting bool `json:"community_meeting"`
	DCO              bool `json:"dco"`
	OpenSSFBadge     bool `json:"openssf_badge"`
	RecentRelease    bool `json:"recent_release"`
}

type Security struct {
	SecurityPolicy bool `json:"security_policy"`
}

type Legal struct {
	TrademarkFooter bool `json:"trademark_footer"`
}
