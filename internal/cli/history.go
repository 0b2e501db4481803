package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"repolint/internal/config"
	"repolint/internal/flags"
	"repolint/internal/store"
)

var historyOpts = struct {
	URL     string
	Backend string
	DSN     string
	Limit   int
}{
	Backend: string(store.BackendSQLite),
	Limit:   10,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded lint runs for a repository",
	Long: `Show lint runs recorded with "repolint lint --store-backend ...", newest first.

Examples:
  repolint history --url org/repo
  repolint history --url org/repo --store-backend postgresql --store-dsn postgres://u:p@localhost/repolint
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfigDefaults(cmd, viper.New(), configFile); err != nil {
			return err
		}

		url, err := config.NormalizeRepositoryURL(historyOpts.URL)
		if err != nil {
			return fmt.Errorf("invalid --%s value: %w", flags.FlagURL, err)
		}
		backend, err := store.ParseBackend(historyOpts.Backend)
		if err != nil {
			return err
		}
		if backend == store.BackendNone {
			return fmt.Errorf("--%s none keeps no history", flags.FlagStoreBackend)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		st, err := store.Open(ctx, backend, historyOpts.DSN)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		runs, err := st.Recent(ctx, url, historyOpts.Limit)
		if err != nil {
			return err
		}
		return renderHistory(cmd.OutOrStdout(), url, runs)
	},
}

func renderHistory(w io.Writer, url string, runs []store.Run) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintf(w, "No recorded runs for %s.\n", url)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Run", "Linted At", "Passing", "Failing", "Score"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		total := r.Passing + r.Failing
		score := 0
		if total > 0 {
			score = r.Passing * 100 / total
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.ID),
			r.LintedAt.Format("2006-01-02 15:04:05 MST"),
			fmt.Sprintf("%d", r.Passing),
			fmt.Sprintf("%d", r.Failing),
			fmt.Sprintf("%d%%", score),
		})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s: %d recorded run(s)\n", url, len(runs))
	return err
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyOpts.URL, flags.FlagURL, "", "GitHub repository URL (https://github.com/OWNER/REPO or OWNER/REPO)")
	historyCmd.Flags().StringVar(&historyOpts.Backend, flags.FlagStoreBackend, historyOpts.Backend, "Store backend: sqlite|postgresql|mysql")
	historyCmd.Flags().StringVar(&historyOpts.DSN, flags.FlagStoreDSN, "", "Store connection string (sqlite: file path, default ~/.repolint/history.db)")
	historyCmd.Flags().IntVar(&historyOpts.Limit, flags.FlagLimit, historyOpts.Limit, "Maximum number of runs to show (0 = all)")
}
