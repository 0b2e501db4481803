package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"repolint/internal/config"
	"repolint/internal/flags"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var (
	cfg        = config.New()
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "repolint",
	Short: "Lint a repository checkout against an open source project checklist",
	Long: `repolint checks a local repository checkout, together with its GitHub
metadata, against a checklist of open source best practices (documentation,
license, best practices, security, legal) and reports which items pass.

repolint is read-only: it never modifies the checkout or the GitHub repository.

Examples:
	# Show available commands and global flags
	repolint --help

	# Lint the current directory
	repolint lint --url https://github.com/org/repo

	# List checklist items
	repolint checks list

	# Print build info
	repolint version

Configuration:
	Flag defaults may also come from REPOLINT_* environment variables
	(e.g. REPOLINT_CONSOLE_FORMAT=json) or a .repolint.yaml file in the
	current or home directory. Explicit flags always win.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, flags.FlagVerbose, false, "Enable verbose logging (prints every HTTP request and full error details)")
	rootCmd.PersistentFlags().StringVar(&configFile, flags.FlagConfig, "", "Config file (default: .repolint.yaml in the current or home directory)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
