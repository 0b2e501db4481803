package flags

// Package flags defines canonical CLI flag names shared across the CLI and the
// config-file/environment binding.
// IMPORTANT: These are flag *names* without leading dashes. The matching
// environment variable is REPOLINT_ followed by the upper-cased name with
// dashes replaced by underscores (e.g. REPOLINT_CONSOLE_FORMAT).
// Example usage:
//
//	cmd.Flags().StringVar(&cfg.Target.URL, flags.FlagURL, "", "...")
//	arg := "--" + flags.FlagURL
const (
	// Target
	FlagPath = "path"
	FlagURL  = "url"

	// Checks
	FlagChecks = "checks"

	// Output
	FlagConsoleFormat       = "console-format"
	FlagConsoleFilterStatus = "console-filter-status"
	FlagReport              = "report"
	FlagOut                 = "out"
	FlagOutFormat           = "out-format"
	FlagNoConsole           = "no-console"

	// Store
	FlagStoreBackend = "store-backend"
	FlagStoreDSN     = "store-dsn"

	// Runtime
	FlagTimeout = "timeout"
	FlagVerbose = "verbose"
	FlagConfig  = "config"

	// History
	FlagLimit = "limit"
)

// EnvPrefix is the prefix of environment variables that supply flag defaults.
const EnvPrefix = "REPOLINT"
