package engine

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"repolint/internal/check"
	"repolint/internal/checklist"
	"repolint/internal/config"
	"repolint/internal/fetcher"
	"repolint/internal/gateway"
	gh "repolint/internal/github"
	"repolint/internal/linter"
	"repolint/internal/output"
	"repolint/internal/store"
)

func exitCodeForRun(fatal, failing bool) int {
	// Exit code contract:
	// 0 = every selected check passes
	// 1 = at least one selected check fails
	// 3 = fatal error (no report was produced)
	if fatal {
		return 3
	}
	if failing {
		return 1
	}
	return 0
}

func setupOutputManager(cfg *config.Config, stdout io.Writer) (*output.Manager, error) {
	outMgr := output.NewManager()

	// Console Sink
	if !cfg.Output.NoConsole {
		cs, err := output.NewConsoleSink(stdout, cfg.Output.ConsoleFormat, cfg.Output.ConsoleFilterStatus)
		if err != nil {
			_ = outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(cs); err != nil {
			_ = outMgr.Close()
			return nil, err
		}
	}

	// File Sink
	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			_ = outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			_ = outMgr.Close()
			return nil, err
		}
	}

	// Report Sink
	if cfg.Output.Report != "" {
		rs, err := output.NewReportSink(cfg.Output.Report)
		if err != nil {
			_ = outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(rs); err != nil {
			_ = outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

type Engine struct {
	Client *gh.Client

	// HTTPClient fetches project homepages. It must not carry GitHub credentials.
	HTTPClient *http.Client

	Stdout io.Writer
	Stderr io.Writer

	// RateLimit seeds the request budget until GitHub reports the real one.
	RateLimit int

	// Test seams. Nil means the local git binary and time.Now.
	git check.GitRunner
	now func() time.Time
}

func NewEngine(client *gh.Client, httpClient *http.Client) *Engine {
	return &Engine{
		Client:     client,
		HTTPClient: httpClient,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		RateLimit:  fetcher.AuthenticatedRateLimit,
		now:        time.Now,
	}
}

func (e *Engine) stderr() io.Writer {
	if e.Stderr == nil {
		return os.Stderr
	}
	return e.Stderr
}

func (e *Engine) stdout() io.Writer {
	if e.Stdout == nil {
		return os.Stdout
	}
	return e.Stdout
}

func (e *Engine) clock() time.Time {
	if e.now == nil {
		return time.Now()
	}
	return e.now()
}

func (e *Engine) fatalf(format string, args ...any) int {
	fmt.Fprintf(e.stderr(), "Error: "+format+"\n", args...)
	return exitCodeForRun(true, false)
}

// Run lints cfg.Target and writes results to the configured sinks. It returns
// the process exit code. cfg must already be validated.
func (e *Engine) Run(ctx context.Context, cfg *config.Config) int {
	if e.Client == nil {
		return e.fatalf("GitHub client is not configured")
	}

	items, err := checklist.Resolve(cfg.Checks.Selector)
	if err != nil {
		return e.fatalf("resolving checks: %v", err)
	}

	st, err := store.Open(ctx, store.Backend(cfg.Store.Backend), cfg.Store.DSN)
	if err != nil {
		return e.fatalf("opening store: %v", err)
	}
	defer func() { _ = st.Close() }()

	f := fetcher.NewFetcher(e.Client, fetcher.NewRequestBudgetWithLimit(e.RateLimit))
	gw, err := gateway.New(f, cfg.Target.URL, gateway.WithClock(e.now))
	if err != nil {
		return e.fatalf("%v", err)
	}

	outMgr, err := setupOutputManager(cfg, e.stdout())
	if err != nil {
		return e.fatalf("creating output sinks: %v", err)
	}
	defer func() {
		if err := outMgr.Close(); err != nil {
			fmt.Fprintf(e.stderr(), "Error: %v\n", err)
		}
	}()

	repo := cfg.Target.URL
	_ = outMgr.Write(output.Event{Type: output.EventLintStarted, Repo: repo, Checks: len(items)})

	var progress io.Writer
	if !cfg.Output.NoConsole {
		progress = e.stderr()
	}

	report, err := linter.Lint(ctx, linter.Options{
		Root:       cfg.Target.Path,
		URL:        repo,
		Gateway:    gw,
		Git:        e.git,
		HTTPClient: e.HTTPClient,
		Progress:   progress,
	})
	if err != nil {
		code := e.fatalf("%s", presentLintError(err, cfg.Runtime.Verbose))
		_ = outMgr.Write(output.Finished(repo, 0, 0, code))
		return code
	}

	results := checklist.Flatten(report, repo, items)
	for _, res := range results {
		_ = outMgr.Write(res)
	}
	_ = outMgr.Write(report)

	failing := checklist.Failing(results)
	code := exitCodeForRun(false, failing > 0)

	if cfg.Runtime.Verbose {
		s := f.Stats()
		fmt.Fprintf(e.stderr(), "[verbose] fetcher: %d cached, %d hits, %d misses, %d shared, %d requests remaining\n",
			s.CachedResults, s.CacheHits, s.CacheMisses, s.SharedFlights, s.Remaining)
	}

	if st.Enabled() {
		all := checklist.Flatten(report, repo, nil)
		allFailing := checklist.Failing(all)
		if err := st.Save(ctx, repo, report, len(all)-allFailing, allFailing, e.clock()); err != nil {
			fmt.Fprintf(e.stderr(), "Warning: %v\n", err)
		}
	}

	_ = outMgr.Write(output.Finished(repo, len(results), failing, code))
	return code
}
