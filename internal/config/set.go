package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Set assigns one configuration key from its string form.
func (c *Global) Set(key, val string) error {
	switch key {
	case "delimiter":
		switch val {
		case "", ",", ";":
			c.Delimiter = val
		case "\t", "tab":
			c.Delimiter = "tab"
		default:
			return fmt.Errorf("invalid delimiter: %q (use ',' | ';' | 'tab')", val)
		}
	case "decimal_separator":
		c.DecimalSeparator = val
	case "thousands_separator":
		c.ThousandsSeparator = val
	case "max_rows":
		i, err := strconv.Atoi(val)
		if err != nil || i < 0 {
			return fmt.Errorf("invalid int for max_rows: %v", val)
		}
		c.MaxRows = i
	case "chart_width", "chart_height":
		i, err := strconv.Atoi(val)
		if err != nil || i <= 0 {
			return fmt.Errorf("invalid int for %s: %v", key, val)
		}
		if key == "chart_width" {
			c.ChartWidth = i
		} else {
			c.ChartHeight = i
		}
	case "chart_palette":
		c.ChartPalette = val
	case "chart_legend":
		c.ChartLegend = val
	case "chart_format":
		switch strings.ToLower(val) {
		case "png", "svg":
			c.ChartFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid chart_format: %s (use png or svg)", val)
		}
	case "output_dir":
		c.OutputDir = val
	case "log_level":
		switch strings.ToLower(val) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
		}
	case "log_format":
		switch strings.ToLower(val) {
		case "text", "json":
			c.LogFormat = strings.ToLower(val)
		default:
			return fmt.Errorf("invalid log_format: %s (use text or json)", val)
		}
	default:
		return fmt.Errorf("unknown key: %s", key)
	}
	return nil
}
