package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"repolint/internal/engine"
	"repolint/internal/fetcher"
	"repolint/internal/flags"
	gh "repolint/internal/github"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Lint a repository checkout",
	Long: `Lint a local repository checkout against the checklist.

Local files are inspected first; GitHub is consulted only for the items
that local evidence cannot settle (repository metadata, organization-wide
community health files, releases and pull request checks). The project
homepage is fetched to look for a trademark footer.

Authentication:
  A GitHub token is optional but recommended: anonymous requests share a
  low rate limit. Sources (in order): REPOLINT_GITHUB_TOKEN, GITHUB_TOKEN,
  GH_TOKEN, then the GitHub CLI (gh auth token).

Output:
	Console output is controlled by --console-format (default: text).
	Structured outputs can be written via:
	- --out / --out-format: write the JSON report tree or an NDJSON event stream to a file
	- --report: write a Markdown summary
	- --no-console: suppress the console sink (use with --out or --report)

	NDJSON mode emits one JSON object per line with a "type" field
	(lint.started, check.result, lint.finished).

History:
	--store-backend sqlite|postgresql|mysql records each run; see "repolint history".

Exit codes:
	0 = every selected check passes
	1 = at least one selected check fails
	3 = fatal error (no report was produced)

Examples:
  # Lint the current directory
  repolint lint --url https://github.com/org/repo

  # Only documentation items, as JSON
  repolint lint --path ./repo --url org/repo --checks documentation --console-format json

  # Machine-readable stream for CI
  repolint lint --url org/repo --no-console --out lint.ndjson
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runLint(cmd))
	},
}

func runLint(cmd *cobra.Command) int {
	stderr := cmd.ErrOrStderr()

	if err := loadConfigDefaults(cmd, viper.New(), configFile); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 3
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 3
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Runtime.Timeout)
	defer cancel()

	token, err := gh.ResolveAuthToken(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to resolve GitHub auth token: %v\n", err)
		return 3
	}
	logAuth(stderr, token)

	verbose := gh.WithVerbose(cfg.Runtime.Verbose, stderr)
	client, err := gh.NewClient(ctx, token.Value, verbose)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create GitHub client: %v\n", err)
		return 3
	}

	eng := engine.NewEngine(client, gh.NewHTTPClient(verbose))
	eng.Stdout = cmd.OutOrStdout()
	eng.Stderr = stderr
	if token.Anonymous() {
		eng.RateLimit = fetcher.AnonymousRateLimit
	}
	return eng.Run(ctx, cfg)
}

func logAuth(w io.Writer, token gh.AuthToken) {
	switch {
	case token.Anonymous() && !cfg.Output.NoConsole:
		fmt.Fprintln(w, "Warning: no GitHub token found; using the anonymous API rate limit (set GITHUB_TOKEN or run 'gh auth login')")
	case !token.Anonymous() && cfg.Runtime.Verbose:
		fmt.Fprintf(w, "[verbose] auth: token from %s\n", token.Source)
	}
}

func init() {
	rootCmd.AddCommand(lintCmd)

	// Target
	lintCmd.Flags().StringVar(&cfg.Target.Path, flags.FlagPath, cfg.Target.Path, "Local checkout to lint")
	lintCmd.Flags().StringVar(&cfg.Target.URL, flags.FlagURL, "", "GitHub repository URL (https://github.com/OWNER/REPO or OWNER/REPO)")

	// Checks
	lintCmd.Flags().StringVar(&cfg.Checks.Selector, flags.FlagChecks, "", "Checks to report: comma-separated item IDs and/or section names (empty = all)")

	// Output
	lintCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, "text", "Console output format: text|json|ndjson")
	lintCmd.Flags().StringSliceVar(&cfg.Output.ConsoleFilterStatus, flags.FlagConsoleFilterStatus, nil, "Filter console output by status (PASS, FAIL). Comma-separated.")
	lintCmd.Flags().StringVar(&cfg.Output.Report, flags.FlagReport, "", "Write a Markdown report to this path")
	lintCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	lintCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	lintCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --out/--report)")

	// Store
	lintCmd.Flags().StringVar(&cfg.Store.Backend, flags.FlagStoreBackend, cfg.Store.Backend, "Record runs in: none|sqlite|postgresql|mysql")
	lintCmd.Flags().StringVar(&cfg.Store.DSN, flags.FlagStoreDSN, "", "Store connection string (sqlite: file path, default ~/.repolint/history.db)")

	// Runtime
	lintCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Global timeout")
}
