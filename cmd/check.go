package cmd

import (
	"fmt"

	"github.com/KaramelBytes/tidyrep/internal/analysis"
	"github.com/spf13/cobra"
)

var (
	chkColumns []string
	chkLabel   string
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Verify that columns exist in a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := readTable(args[0])
		if err != nil {
			return err
		}
		cols := analysis.Cols(chkColumns...)
		if err := analysis.CheckColumns(t, cols, chkLabel); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if cols.IsNone() {
			fmt.Fprintf(out, "✓ No columns requested; %s has %d columns\n", t.Name, len(t.Names()))
			return nil
		}
		fmt.Fprintf(out, "✓ %d column(s) present in %s (%d rows)\n", len(cols.Names()), t.Name, t.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringSliceVarP(&chkColumns, "columns", "c", nil, "comma-separated column names to require (repeatable)")
	checkCmd.Flags().StringVar(&chkLabel, "label", "", "role of the columns, used in error messages (e.g. variable, condition)")
}
