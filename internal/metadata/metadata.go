// Package metadata loads the optional project-local metadata file that
// repositories use to override linter evidence.
package metadata

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"repolint/internal/check"
)

// File is the metadata file name, relative to the repository root.
const File = ".clomonitor.yml"

// Metadata is the content of File.
type Metadata struct {
	LicenseScanning *LicenseScanning `yaml:"license_scanning"`
}

// LicenseScanning points at an external license scanning report.
type LicenseScanning struct {
	URL *string `yaml:"url"`
}

// ScanningURL returns the configured license scanning URL, if any.
func (m *Metadata) ScanningURL() (string, bool) {
	if m == nil || m.LicenseScanning == nil || m.LicenseScanning.URL == nil {
		return "", false
	}
	if *m.LicenseScanning.URL == "" {
		return "", false
	}
	return *m.LicenseScanning.URL, true
}

// ConfigError reports malformed metadata content.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid metadata file %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Load reads File from root. A missing file is not an error: Load returns nil
// metadata.
func Load(root string) (*Metadata, error) {
	path := filepath.Join(root, File)
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, &check.IOError{Path: path, Err: err}
	}

	var md Metadata
	if err := yaml.Unmarshal(content, &md); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return &md, nil
}
