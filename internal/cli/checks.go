package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"repolint/internal/checklist"
)

var checksListQuiet bool
var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List checklist items",
	Long: `Inspect the checklist.

Checklist items are evaluated during lint runs (see "repolint lint --help").
Item IDs and section names can be passed to "repolint lint --checks".

Examples:
  # List all checklist items
  repolint checks list
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var checksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List checklist items",
	Long: `List every checklist item in report order.

Examples:
  repolint checks list
  repolint checks list -q

Output:
  A vertical list of items:
    ----------------------------------------
    CHECK: {ID}
    ----------------------------------------
    {TITLE} ({SECTION})
    {DESCRIPTION}
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, it := range checklist.List() {
			if checksListQuiet {
				fmt.Fprintln(cmd.OutOrStdout(), it.ID)
			} else {
				printCheck(cmd.OutOrStdout(), it)
			}
		}
		return nil
	},
}

var checksShowCmd = &cobra.Command{
	Use:   "show [check-id]",
	Short: "Show details of a checklist item",
	Long: `Show details of a checklist item by its ID.

Examples:
  repolint checks show security_policy
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		it, ok := checklist.Lookup(args[0])
		if !ok {
			return fmt.Errorf("check not found: %s", args[0])
		}
		printCheck(cmd.OutOrStdout(), it)
		return nil
	},
}

func printCheck(w io.Writer, it checklist.Item) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "CHECK: %s\n", it.ID)
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintf(w, "%s (%s)\n", it.Title, it.Section)
	fmt.Fprintln(w, it.Description)
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(checksCmd)
	checksCmd.AddCommand(checksListCmd)
	checksListCmd.Flags().BoolVarP(&checksListQuiet, "quiet", "q", false, "Only print check IDs")
	checksCmd.AddCommand(checksShowCmd)
}
