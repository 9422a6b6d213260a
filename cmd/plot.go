package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/tidyrep/internal/plot"
	"github.com/spf13/cobra"
)

var (
	pltVariable  string
	pltValue     string
	pltCondition string
	pltSplit     string
	pltSort      string
	pltPoints    string
	pltShowAll   bool
	pltPanel     string
	pltLegend    string
	pltPalette   string
	pltWidth     int
	pltHeight    int
	pltFormat    string
	pltOutput    string
	pltExtra     map[string]string
)

var plotCmd = &cobra.Command{
	Use:   "plot <file>",
	Short: "Render timecourse data as mean lines with raw points overlaid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := readTable(args[0])
		if err != nil {
			return err
		}
		opt := plot.DefaultOptions()
		format := "png"
		outDir := ""
		if cfg != nil {
			if cfg.ChartWidth > 0 {
				opt.Width = cfg.ChartWidth
			}
			if cfg.ChartHeight > 0 {
				opt.Height = cfg.ChartHeight
			}
			if cfg.ChartPalette != "" {
				opt.Palette = cfg.ChartPalette
			}
			opt.Legend = cfg.ChartLegend
			if cfg.ChartFormat != "" {
				format = cfg.ChartFormat
			}
			outDir = cfg.OutputDir
		}
		f := cmd.Flags()
		if f.Changed("width") {
			opt.Width = pltWidth
		}
		if f.Changed("height") {
			opt.Height = pltHeight
		}
		if f.Changed("palette") {
			opt.Palette = pltPalette
		}
		if f.Changed("legend") {
			opt.Legend = pltLegend
		}
		if f.Changed("format") {
			format = pltFormat
		}
		imgFormat, err := plot.ParseFormat(format)
		if err != nil {
			return err
		}
		opt.ShowPoints, err = plot.ParsePointsMode(pltPoints)
		if err != nil {
			return err
		}
		opt.Variable = pltVariable
		opt.Value = pltValue
		opt.Condition = pltCondition
		opt.Split = pltSplit
		opt.Sort = pltSort
		opt.ShowAll = pltShowAll
		opt.Panel = pltPanel
		opt.Extra = pltExtra

		tc, err := plot.PlotTimecourse(t, opt)
		if err != nil {
			return err
		}

		out := pltOutput
		if out == "" {
			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			out = filepath.Join(outDir, base+"-timecourse."+string(imgFormat))
		}
		files, err := tc.WriteFiles(out, imgFormat)
		if err != nil {
			return err
		}
		slog.Debug("chart rendered", "panels", len(tc.Panels), "replicates", tc.Replicates, "points", tc.Points)
		for _, p := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote chart to %s\n", p)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(plotCmd)
	fl := plotCmd.Flags()
	fl.StringVar(&pltVariable, "variable", "", "timecourse-like column plotted on the x-axis")
	fl.StringVar(&pltValue, "value", "", "quantitative column plotted on the y-axis")
	fl.StringVar(&pltCondition, "condition", "", "column grouping the lines within one chart")
	fl.StringVar(&pltSplit, "split", "", "column splitting the data into separate charts")
	fl.StringVar(&pltSort, "sort", "", "column that orders the data (default: condition, then variable)")
	fl.StringVar(&pltPoints, "points", "default", "overlay raw points: default (only with replicates)|always|never")
	fl.BoolVar(&pltShowAll, "show-all", false, "with --split, render every panel instead of one")
	fl.StringVar(&pltPanel, "panel", "", "with --split and without --show-all, the split value to render")
	fl.StringVar(&pltLegend, "legend", "", "legend: false|true|top|top_left|left")
	fl.StringVar(&pltPalette, "palette", "default", "colours: default|viridis|none or comma-separated hex")
	fl.IntVar(&pltWidth, "width", 500, "chart width in pixels")
	fl.IntVar(&pltHeight, "height", 350, "chart height in pixels")
	fl.StringVar(&pltFormat, "format", "png", "image format: png|svg")
	fl.StringVarP(&pltOutput, "output", "o", "", "output image path (default: <file>-timecourse.<format>)")
	fl.StringToStringVar(&pltExtra, "opt", nil, "extra chart options key=value (title, x_label, y_label, stroke_width, dot_width, padding)")
	_ = plotCmd.MarkFlagRequired("variable")
	_ = plotCmd.MarkFlagRequired("value")
}
