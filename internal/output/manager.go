package output

import (
	"errors"
	"fmt"
)

// Sink is a destination for lint output. Sinks receive Event,
// checklist.Result and *linter.Report values and ignore what they do not
// render.
type Sink interface {
	Write(v any) error
	Close() error
}

// Manager fans writes out to every sink.
type Manager struct {
	sinks []Sink
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) AddSink(s Sink) error {
	if m == nil {
		return fmt.Errorf("output manager is nil")
	}
	if s == nil {
		return fmt.Errorf("sink must not be nil")
	}
	m.sinks = append(m.sinks, s)
	return nil
}

func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.sinks)
}

// Write sends v to every sink; a failing sink does not stop the others.
func (m *Manager) Write(v any) error {
	if m == nil {
		return fmt.Errorf("output manager is nil")
	}
	var errs []error
	for _, s := range m.sinks {
		if err := s.Write(v); err != nil {
			errs = append(errs, fmt.Errorf("write %T: %w", s, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors writing to sinks: %w", errors.Join(errs...))
	}
	return nil
}

// WriteAll writes each value in order and returns the first error.
func (m *Manager) WriteAll(vs ...any) error {
	for _, v := range vs {
		if err := m.Write(v); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) Close() error {
	if m == nil {
		return fmt.Errorf("output manager is nil")
	}
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %T: %w", s, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing sinks: %w", errors.Join(errs...))
	}
	return nil
}
