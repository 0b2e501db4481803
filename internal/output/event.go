package output

import "repolint/internal/checklist"

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line):
// - lint.started
// - check.result
// - lint.finished
//
// JSON mode writes the report tree instead.
type Event struct {
	Type string `json:"type"`
	Repo string `json:"repo,omitempty"`
	*checklist.Result
	Checks  int `json:"checks,omitempty"`
	Failing int `json:"failing,omitempty"`
	// ExitCode is set on lint.finished only, where 0 is still emitted.
	ExitCode *int `json:"exit_code,omitempty"`
}

const (
	EventLintStarted  = "lint.started"
	EventCheckResult  = "check.result"
	EventLintFinished = "lint.finished"
)

// Finished builds the lint.finished event.
func Finished(repo string, checks, failing, exitCode int) Event {
	return Event{Type: EventLintFinished, Repo: repo, Checks: checks, Failing: failing, ExitCode: &exitCode}
}

func eventFromResult(r checklist.Result) Event {
	return Event{Type: EventCheckResult, Repo: r.Repo, Result: &r}
}
