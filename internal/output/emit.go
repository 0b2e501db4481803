package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"repolint/internal/checklist"
	"repolint/internal/linter"
)

// EmitSink writes structured output to a writer.
//
// Formats:
//   - json: writes the report tree on Close (or the result list when no
//     report was written)
//   - ndjson: streams Event values (one JSON object per line)
type EmitSink struct {
	writer  io.Writer
	format  string // "json" | "ndjson"
	mu      sync.Mutex
	report  *linter.Report
	results []checklist.Result
}

func NewEmitSink(w io.Writer, format string) (*EmitSink, error) {
	if w == nil {
		return nil, fmt.Errorf("emit sink writer must not be nil")
	}
	if format != "json" && format != "ndjson" {
		return nil, fmt.Errorf("unsupported emit format: %s", format)
	}
	return &EmitSink{writer: w, format: format}, nil
}

func (s *EmitSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.format {
	case "json":
		switch t := v.(type) {
		case *linter.Report:
			s.report = t
		case checklist.Result:
			s.results = append(s.results, t)
		}
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case checklist.Result:
			if err := encoder.Encode(eventFromResult(t)); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	default:
		return fmt.Errorf("unsupported emit format: %s", s.format)
	}
}

func (s *EmitSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Nothing to write after a fatal run.
	if s.format != "json" || (s.report == nil && len(s.results) == 0) {
		return nil
	}
	encoder := json.NewEncoder(s.writer)
	encoder.SetIndent("", "  ")
	var err error
	if s.report != nil {
		err = encoder.Encode(s.report)
	} else {
		err = encoder.Encode(s.results)
	}
	if err != nil {
		return err
	}
	return flushIfPossible(s.writer)
}
