package models

// RepositoryMetadata is the subset of forge repository metadata used as
// evidence. It is fetched once per lint run and only read afterwards.
type RepositoryMetadata struct {
	Owner         string
	Name          string
	Homepage      string
	DefaultBranch string
	Archived      bool

	// LicenseSPDXID is the license identifier declared by the forge. The forge
	// reports LicenseNoAssertion when it could not assess the license.
	LicenseSPDXID string
}

// LicenseNoAssertion is the SPDX placeholder for an unassessed license.
const LicenseNoAssertion = "NOASSERTION"

// DeclaredLicense returns the declared SPDX identifier, ignoring the
// unassessed placeholder.
func (m *RepositoryMetadata) DeclaredLicense() (string, bool) {
	if m == nil || m.LicenseSPDXID == "" || m.LicenseSPDXID == LicenseNoAssertion {
		return "", false
	}
	return m.LicenseSPDXID, true
}
