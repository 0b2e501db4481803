package output

import (
	"repolint/internal/checklist"
	"repolint/internal/linter"
)

func sampleReport() *linter.Report {
	id := "Apache-2.0"
	approved := true
	return &linter.Report{
		Documentation: linter.Documentation{Readme: true, Contributing: true},
		License:       linter.License{SPDXID: &id, Approved: &approved},
		BestPractices: linter.BestPractices{DCO: true},
	}
}

func sampleResults() []checklist.Result {
	return checklist.Flatten(sampleReport(), "acme/widget", nil)
}
