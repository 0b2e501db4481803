package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileSink is an EmitSink writing to a file it owns.
type FileSink struct {
	*EmitSink
	path string
	file *os.File
}

func NewFileSink(path string, format string) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("output path required")
	}

	format, err := InferFileFormat(path, format)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	emit, err := NewEmitSink(f, format)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &FileSink{EmitSink: emit, path: path, file: f}, nil
}

// InferFileFormat returns format, or the format implied by the extension of
// path when format is empty.
func InferFileFormat(path, format string) (string, error) {
	if format == "" {
		ext := strings.ToLower(filepath.Ext(path))
		switch ext {
		case ".json":
			format = "json"
		case ".ndjson", ".jsonl":
			format = "ndjson"
		default:
			return "", fmt.Errorf("cannot infer output format from file extension %q", ext)
		}
	}
	if format != "json" && format != "ndjson" {
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
	return format, nil
}

func (s *FileSink) Close() error {
	err := s.EmitSink.Close()
	if closeErr := s.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
