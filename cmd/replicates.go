package cmd

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KaramelBytes/tidyrep/internal/analysis"
	"github.com/KaramelBytes/tidyrep/internal/table"
	"github.com/KaramelBytes/tidyrep/internal/utils"
	"github.com/spf13/cobra"
)

var (
	repVariable string
	repValue    string
	repGroup    []string
	repFormat   string
	repOutput   string
)

var replicatesCmd = &cobra.Command{
	Use:   "replicates <file>",
	Short: "Detect replicate measurements and add per-group means",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := readTable(args[0])
		if err != nil {
			return err
		}
		if err := analysis.CheckColumns(t, analysis.Col(repVariable), "variable"); err != nil {
			return err
		}
		if err := analysis.CheckColumns(t, analysis.Col(repValue), "value"); err != nil {
			return err
		}
		if err := analysis.CheckColumns(t, analysis.Cols(repGroup...), "group"); err != nil {
			return err
		}
		rep, err := analysis.Summarize(t, repVariable, repValue, analysis.Cols(repGroup...))
		if err != nil {
			return err
		}
		slog.Debug("replicate check", "id", rep.ID, "groups", len(rep.Groups), "mean_std", rep.MeanStd, "replicates", rep.Replicates)

		var body []byte
		switch strings.ToLower(repFormat) {
		case "", "markdown", "md":
			body = []byte(rep.Markdown())
		case "csv":
			var buf bytes.Buffer
			if err := table.WriteCSV(&buf, rep.Table); err != nil {
				return err
			}
			body = buf.Bytes()
		case "json":
			body, err = utils.PrettyJSON(rep)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported --format: %s (use markdown|csv|json)", repFormat)
		}

		out := cmd.OutOrStdout()
		if repOutput != "" {
			if err := utils.SafeWriteFile(repOutput, body); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(out, "✓ Wrote %s output to %s (replicates: %t)\n", strings.ToLower(repFormat), repOutput, rep.Replicates)
			return nil
		}
		fmt.Fprintln(out, strings.TrimRight(string(body), "\n"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replicatesCmd)
	replicatesCmd.Flags().StringVar(&repVariable, "variable", "", "independent variable column (e.g. time)")
	replicatesCmd.Flags().StringVar(&repValue, "value", "", "dependent value column (e.g. OD600)")
	replicatesCmd.Flags().StringSliceVarP(&repGroup, "group", "g", nil, "additional grouping columns (repeatable)")
	replicatesCmd.Flags().StringVarP(&repFormat, "format", "f", "markdown", "output format: markdown|csv|json")
	replicatesCmd.Flags().StringVarP(&repOutput, "output", "o", "", "optional path to write output")
	_ = replicatesCmd.MarkFlagRequired("variable")
	_ = replicatesCmd.MarkFlagRequired("value")
}
