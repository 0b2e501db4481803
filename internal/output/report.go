package output

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"repolint/internal/checklist"
)

// ReportSink writes a Markdown summary of the lint run on Close.
type ReportSink struct {
	path         string
	file         *os.File
	mu           sync.Mutex
	results      []checklist.Result
	repo         string
	exitCode     int
	haveExitCode bool
}

func NewReportSink(path string) (*ReportSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	return &ReportSink{path: path, file: f}, nil
}

func (s *ReportSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t := v.(type) {
	case checklist.Result:
		s.results = append(s.results, t)
		if s.repo == "" {
			s.repo = t.Repo
		}
	case Event:
		if t.Repo != "" && s.repo == "" {
			s.repo = t.Repo
		}
		if t.Type == EventLintFinished && t.ExitCode != nil {
			s.exitCode = *t.ExitCode
			s.haveExitCode = true
		}
	}
	return nil
}

func (s *ReportSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.file.WriteString(renderMarkdown(s.repo, s.results, s.exitCode, s.haveExitCode))
	if closeErr := s.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func renderMarkdown(repo string, results []checklist.Result, exitCode int, haveExitCode bool) string {
	var b strings.Builder

	title := "repolint report"
	if repo != "" {
		title += ": " + repo
	}
	fmt.Fprintf(&b, "# %s\n\n", title)

	stats := computeSectionStats(results)
	passing := 0
	for _, st := range stats {
		passing += st.Pass
	}
	fmt.Fprintf(&b, "**%d of %d checks passing.**", passing, len(results))
	if haveExitCode {
		fmt.Fprintf(&b, " Exit code: %d.", exitCode)
	}
	b.WriteString("\n\n")

	if len(results) == 0 {
		b.WriteString("No results.\n")
		return b.String()
	}

	b.WriteString("| Section | Pass | Fail | Score |\n")
	b.WriteString("| --- | ---: | ---: | ---: |\n")
	for _, st := range stats {
		fmt.Fprintf(&b, "| %s | %d | %d | %d%% |\n", sectionTitle(st.Section), st.Pass, st.Fail, st.Percent())
	}
	b.WriteString("\n")

	for _, st := range stats {
		fmt.Fprintf(&b, "## %s\n\n", sectionTitle(st.Section))
		b.WriteString("| Check | Status | Value |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, r := range st.Results {
			mark := "❌"
			if r.Status == checklist.StatusPass {
				mark = "✅"
			}
			value := r.Value
			if value == "" {
				value = "-"
			}
			fmt.Fprintf(&b, "| %s | %s %s | %s |\n", checkTitle(r.CheckID), mark, r.Status, escapeCell(value))
		}
		b.WriteString("\n")
	}

	failing := failingResults(results)
	b.WriteString("## How to improve\n\n")
	if len(failing) == 0 {
		b.WriteString("Every check passes.\n")
		return b.String()
	}
	for _, r := range failing {
		it, ok := checklist.Lookup(r.CheckID)
		if !ok {
			fmt.Fprintf(&b, "- `%s`\n", r.CheckID)
			continue
		}
		fmt.Fprintf(&b, "- **%s** (`%s`): %s\n", it.Title, it.ID, it.Description)
	}
	return b.String()
}
