package cmd

import (
	"fmt"

	cfgpkg "github.com/KaramelBytes/tidyrep/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set tidyrep configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		if cfg.Delimiter != "" {
			fmt.Fprintf(out, "delimiter: %s\n", cfg.Delimiter)
		}
		if cfg.DecimalSeparator != "" {
			fmt.Fprintf(out, "decimal_separator: %s\n", cfg.DecimalSeparator)
		}
		if cfg.ThousandsSeparator != "" {
			fmt.Fprintf(out, "thousands_separator: %q\n", cfg.ThousandsSeparator)
		}
		fmt.Fprintf(out, "max_rows: %d\n", cfg.MaxRows)
		fmt.Fprintf(out, "chart_width: %d\n", cfg.ChartWidth)
		fmt.Fprintf(out, "chart_height: %d\n", cfg.ChartHeight)
		fmt.Fprintf(out, "chart_palette: %s\n", cfg.ChartPalette)
		if cfg.ChartLegend != "" {
			fmt.Fprintf(out, "chart_legend: %s\n", cfg.ChartLegend)
		}
		fmt.Fprintf(out, "chart_format: %s\n", cfg.ChartFormat)
		if cfg.OutputDir != "" {
			fmt.Fprintf(out, "output_dir: %s\n", cfg.OutputDir)
		}
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", cfg.LogFormat)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
