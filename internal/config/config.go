package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	gh "repolint/internal/github"
	"repolint/internal/store"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect lint
	// behavior, keep the CLI flags in internal/cli/lint.go and the flag names in
	// internal/flags in sync.
	Target  Target
	Checks  Checks
	Output  Output
	Store   Store
	Runtime Runtime
}

type Target struct {
	// Path is the local checkout to lint (see --path). Defaults to ".".
	Path string

	// URL is the GitHub repository the checkout belongs to (see --url).
	// Accepts https://github.com/OWNER/REPO, github.com/OWNER/REPO or OWNER/REPO;
	// Validate rewrites it to the https form.
	URL string
}

type Checks struct {
	// Selector limits which checklist items are reported (see --checks).
	// Empty means all items; otherwise a comma-separated list of item IDs
	// and/or section names. The full report is always computed.
	Selector string
}

type Output struct {
	// ConsoleFormat controls the human-facing console sink format (see --console-format).
	// Allowed values: text, json, ndjson.
	ConsoleFormat string

	// ConsoleFilterStatus filters console output by result status (see --console-filter-status).
	// Allowed values: PASS, FAIL.
	ConsoleFilterStatus []string

	// Report writes a Markdown report to this path (see --report).
	Report string

	// Out writes structured output to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, it is inferred from the --out file extension.
	OutFormat string

	// NoConsole suppresses the console sink (see --no-console).
	NoConsole bool
}

type Store struct {
	// Backend selects where lint runs are recorded (see --store-backend).
	// Allowed values: none, sqlite, postgresql, mysql.
	Backend string

	// DSN is the backend connection string (see --store-dsn). For sqlite it is
	// a file path and defaults to ~/.repolint/history.db.
	DSN string
}

type Runtime struct {
	// Timeout bounds the whole lint run (see --timeout). Must be > 0.
	Timeout time.Duration

	// Verbose logs every HTTP request and prints full error details (see --verbose).
	Verbose bool
}

func New() *Config {
	return &Config{
		Target: Target{
			Path: ".",
		},
		Output: Output{
			ConsoleFormat: "text",
		},
		Store: Store{
			Backend: string(store.BackendNone),
		},
		Runtime: Runtime{
			Timeout: 5 * time.Minute,
		},
	}
}

func (c *Config) Validate() error {
	// Target validation
	c.Target.Path = strings.TrimSpace(c.Target.Path)
	if c.Target.Path == "" {
		c.Target.Path = "."
	}
	info, err := os.Stat(c.Target.Path)
	if err != nil {
		return fmt.Errorf("invalid --path value: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid --path value: %s is not a directory", c.Target.Path)
	}

	if strings.TrimSpace(c.Target.URL) == "" {
		return errors.New("--url must be provided")
	}
	url, err := NormalizeRepositoryURL(c.Target.URL)
	if err != nil {
		return fmt.Errorf("invalid --url value: %w", err)
	}
	c.Target.URL = url

	c.Checks.Selector = strings.TrimSpace(c.Checks.Selector)

	// Output validation
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		return errors.New("--console-format must be one of: text, json, ndjson")
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}

	c.Output.ConsoleFilterStatus = splitCommaList(c.Output.ConsoleFilterStatus)
	for i, st := range c.Output.ConsoleFilterStatus {
		st = strings.ToUpper(st)
		if st != "PASS" && st != "FAIL" {
			return fmt.Errorf("unsupported --console-filter-status: %s (must be one of: PASS, FAIL)", st)
		}
		c.Output.ConsoleFilterStatus[i] = st
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
			return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
		}
	}

	if c.Output.NoConsole && c.Output.Out == "" && c.Output.Report == "" {
		return errors.New("--no-console requires --out or --report")
	}

	// Store validation
	backend, err := store.ParseBackend(c.Store.Backend)
	if err != nil {
		return fmt.Errorf("invalid --store-backend value: %w", err)
	}
	c.Store.Backend = string(backend)
	if (backend == store.BackendPostgreSQL || backend == store.BackendMySQL) && strings.TrimSpace(c.Store.DSN) == "" {
		return fmt.Errorf("--store-dsn is required for the %s store backend", backend)
	}

	// Runtime validation
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}

	return nil
}

// NormalizeRepositoryURL rewrites any accepted repository reference to
// https://github.com/OWNER/REPO.
func NormalizeRepositoryURL(raw string) (string, error) {
	owner, name, err := gh.ParseRepositoryURL(raw)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://github.com/%s/%s", owner, name), nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
