package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	cfgpkg "github.com/KaramelBytes/tidyrep/internal/config"
	"github.com/KaramelBytes/tidyrep/internal/logging"
	"github.com/KaramelBytes/tidyrep/internal/parser"
	"github.com/KaramelBytes/tidyrep/internal/table"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logFormat string
	// Table loading flags (override config if set)
	flagDelimiter  string
	flagDecimal    string
	flagThousands  string
	flagMaxRows    int
	flagSheetName  string
	flagSheetIndex int

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "tidyrep",
	Short: "tidyrep: replicate checks and timecourse charts for tidy tables",
	Long: `tidyrep works on tidy CSV/TSV/XLSX tables (one observation per row). It checks that
expected columns exist, detects replicate measurements and averages them per group,
and renders timecourse data as mean lines with the raw points overlaid.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.tidyrep/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
	pf.StringVar(&logFormat, "log-format", "", "log format: text|json (overrides config)")
	pf.StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab'")
	pf.StringVar(&flagDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	pf.StringVar(&flagThousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	pf.IntVar(&flagMaxRows, "max-rows", 0, "maximum rows to read, 0 for unlimited (default from config)")
	pf.StringVar(&flagSheetName, "sheet-name", "", "XLSX: sheet name to read")
	pf.IntVar(&flagSheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{ChartWidth: 500, ChartHeight: 350, ChartPalette: "default", ChartFormat: "png", MaxRows: 100000}
	}
	cfg = c

	level, format := cfg.LogLevel, cfg.LogFormat
	if debug {
		level = "debug"
	}
	if logFormat != "" {
		format = logFormat
	}
	slog.SetDefault(logging.New(level, format, os.Stderr))
	slog.Debug("configuration loaded", "config", cfgFile, "level", level)
}

// loaderOptions merges config values with flags; flags win when set.
func loaderOptions() (parser.Options, error) {
	opt := parser.DefaultOptions()
	delim, dec, thou := flagDelimiter, flagDecimal, flagThousands
	if cfg != nil {
		if delim == "" {
			delim = cfg.Delimiter
		}
		if dec == "" {
			dec = cfg.DecimalSeparator
		}
		if thou == "" {
			thou = cfg.ThousandsSeparator
		}
		// 0 means unlimited
		if cfg.MaxRows >= 0 {
			opt.Table.MaxRows = cfg.MaxRows
		}
	}
	if rootCmd.PersistentFlags().Changed("max-rows") {
		if flagMaxRows < 0 {
			return opt, fmt.Errorf("invalid --max-rows: %d", flagMaxRows)
		}
		opt.Table.MaxRows = flagMaxRows
	}
	switch delim {
	case "":
	case ",":
		opt.Table.Delimiter = ','
	case "\t", "tab":
		opt.Table.Delimiter = '\t'
	case ";":
		opt.Table.Delimiter = ';'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", delim)
	}
	switch strings.ToLower(strings.TrimSpace(dec)) {
	case ",", "comma":
		opt.Table.DecimalSeparator = ','
	case ".", "dot":
		opt.Table.DecimalSeparator = '.'
	case "":
	default:
		return opt, fmt.Errorf("unsupported --decimal: %s (use '.'|'comma')", dec)
	}
	switch strings.ToLower(thou) {
	case ",":
		opt.Table.ThousandsSeparator = ','
	case ".":
		opt.Table.ThousandsSeparator = '.'
	case "space", " ":
		opt.Table.ThousandsSeparator = ' '
	case "":
	default:
		return opt, fmt.Errorf("unsupported --thousands: %s (use ','|'.'|'space')", thou)
	}
	opt.SheetName = flagSheetName
	opt.SheetIndex = flagSheetIndex
	return opt, nil
}

func readTable(path string) (*table.Table, error) {
	opt, err := loaderOptions()
	if err != nil {
		return nil, err
	}
	t, err := parser.LoadTable(path, opt)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	slog.Debug("table loaded", "file", path, "rows", t.Len(), "columns", len(t.Names()))
	return t, nil
}
