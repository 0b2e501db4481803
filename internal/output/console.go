package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"repolint/internal/checklist"
)

// ConsoleSink renders results for a terminal. The text format prints a table
// once all results are in; json and ndjson behave like EmitSink.
type ConsoleSink struct {
	writer          io.Writer
	format          string // "text", "json", "ndjson"
	mu              sync.Mutex
	results         []checklist.Result
	allowedStatuses map[string]bool
	emit            *EmitSink
}

func NewConsoleSink(w io.Writer, format string, filterStatuses []string) (*ConsoleSink, error) {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}

	s := &ConsoleSink{
		writer: w,
		format: format,
	}

	switch format {
	case "text":
	case "json", "ndjson":
		emit, err := NewEmitSink(w, format)
		if err != nil {
			return nil, err
		}
		s.emit = emit
	default:
		return nil, fmt.Errorf("unsupported console format: %s", format)
	}

	if len(filterStatuses) > 0 {
		s.allowedStatuses = make(map[string]bool)
		for _, st := range filterStatuses {
			s.allowedStatuses[strings.ToUpper(strings.TrimSpace(st))] = true
		}
	}

	return s, nil
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := v.(checklist.Result); ok && len(s.allowedStatuses) > 0 {
		if !s.allowedStatuses[string(r.Status)] {
			return nil
		}
	}

	if s.emit != nil {
		return s.emit.Write(v)
	}

	if r, ok := v.(checklist.Result); ok {
		s.results = append(s.results, r)
	}
	return nil
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emit != nil {
		return s.emit.Close()
	}
	if err := s.renderTable(); err != nil {
		return err
	}
	return flushIfPossible(s.writer)
}

func (s *ConsoleSink) renderTable() error {
	if len(s.results) == 0 {
		_, err := fmt.Fprintln(s.writer, "No results.")
		return err
	}

	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	table := tablewriter.NewWriter(s.writer)
	table.Header([]string{"Section", "Check", "Status", "Value"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var rows [][]string
	passing := 0
	for _, r := range s.results {
		status := fail(string(r.Status))
		if r.Status == checklist.StatusPass {
			status = pass(string(r.Status))
			passing++
		}
		rows = append(rows, []string{string(r.Section), r.CheckID, status, faint(r.Value)})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	repo := s.results[0].Repo
	_, err := fmt.Fprintf(s.writer, "%s: %d/%d checks passing\n", repo, passing, len(s.results))
	return err
}
