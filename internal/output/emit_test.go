package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"repolint/internal/checklist"
)

func TestNewEmitSink_Validation(t *testing.T) {
	if _, err := NewEmitSink(nil, "json"); err == nil {
		t.Fatalf("expected error for nil writer")
	}
	if _, err := NewEmitSink(&bytes.Buffer{}, "text"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestEmitSink_JSON_FallsBackToResults(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewEmitSink(&buf, "json")
	if err != nil {
		t.Fatalf("NewEmitSink: %v", err)
	}
	if err := s.Write(Event{Type: EventLintStarted}); err != nil {
		t.Fatalf("Write event: %v", err)
	}
	if err := s.Write(checklist.Result{CheckID: "dco", Repo: "acme/widget", Section: checklist.SectionBestPractices, Status: checklist.StatusFail}); err != nil {
		t.Fatalf("Write result: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var got []checklist.Result
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v\n%s", err, buf.String())
	}
	if len(got) != 1 || got[0].CheckID != "dco" || got[0].Status != checklist.StatusFail {
		t.Fatalf("unexpected results %+v", got)
	}
}

func TestEmitSink_NDJSON_Events(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewEmitSink(&buf, "ndjson")
	if err != nil {
		t.Fatalf("NewEmitSink: %v", err)
	}

	writes := []any{
		Event{Type: EventLintStarted, Repo: "acme/widget", Checks: 2},
		checklist.Result{CheckID: "readme", Repo: "acme/widget", Section: checklist.SectionDocumentation, Status: checklist.StatusPass},
		sampleReport(),
		Finished("acme/widget", 2, 1, 1),
	}
	for _, v := range writes {
		if err := s.Write(v); err != nil {
			t.Fatalf("Write(%T): %v", v, err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines (report tree is not streamed), got %d:\n%s", len(lines), buf.String())
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result["type"] != EventCheckResult || result["check_id"] != "readme" || result["section"] != "documentation" {
		t.Fatalf("unexpected check.result event: %v", result)
	}
	if !strings.Contains(lines[2], `"exit_code":1`) {
		t.Fatalf("lint.finished missing exit code: %s", lines[2])
	}
}

func TestEmitSink_JSON_WritesNothingWithoutResults(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewEmitSink(&buf, "json")
	if err != nil {
		t.Fatalf("NewEmitSink: %v", err)
	}
	if err := s.Write(Event{Type: EventLintStarted, Repo: "acme/widget", Checks: 19}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Write(Finished("acme/widget", 0, 0, 3)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestEmitSink_NDJSON_ExitCodeOnlyOnFinished(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewEmitSink(&buf, "ndjson")
	if err != nil {
		t.Fatalf("NewEmitSink: %v", err)
	}
	writes := []any{
		Event{Type: EventLintStarted, Repo: "acme/widget", Checks: 1},
		checklist.Result{CheckID: "readme", Repo: "acme/widget", Section: checklist.SectionDocumentation, Status: checklist.StatusPass},
		Finished("acme/widget", 1, 0, 0),
	}
	for _, v := range writes {
		if err := s.Write(v); err != nil {
			t.Fatalf("Write(%T): %v", v, err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("want 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	for _, line := range lines[:2] {
		if strings.Contains(line, "exit_code") {
			t.Errorf("unexpected exit_code outside lint.finished: %s", line)
		}
	}
	var finished map[string]any
	if err := json.Unmarshal([]byte(lines[2]), &finished); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if code, ok := finished["exit_code"]; !ok || code != float64(0) {
		t.Fatalf("lint.finished exit_code = %v (present=%v), want 0", code, ok)
	}
}
