package checklist

import "repolint/internal/linter"

type Status string

const (
	StatusPass Status = "PASS"
	StatusFail Status = "FAIL"
)

// Result is one item of a report.
type Result struct {
	CheckID string  `json:"check_id"`
	Repo    string  `json:"repo"`
	Section Section `json:"section"`
	Status  Status  `json:"status"`
	Value   string  `json:"value,omitempty"`
}

// Flatten turns a report into one result per item, in items order. A nil
// items slice means every item.
func Flatten(r *linter.Report, repo string, items []Item) []Result {
	if r == nil {
		return nil
	}
	if items == nil {
		items = catalog
	}

	out := make([]Result, 0, len(items))
	for _, it := range items {
		ok, value := it.value(r)
		status := StatusFail
		if ok {
			status = StatusPass
		}
		out = append(out, Result{
			CheckID: it.ID,
			Repo:    repo,
			Section: it.Section,
			Status:  status,
			Value:   value,
		})
	}
	return out
}

// Failing counts results that did not pass.
func Failing(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Status != StatusPass {
			n++
		}
	}
	return n
}
