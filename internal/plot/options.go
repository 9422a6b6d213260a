package plot

import (
	"fmt"
	"strings"
)

// PointsMode controls whether raw data points are drawn over the mean line.
type PointsMode int

const (
	// PointsDefault draws points only when replicates are present.
	PointsDefault PointsMode = iota
	PointsAlways
	PointsNever
)

// ParsePointsMode accepts default|always|never (and true/false).
func ParsePointsMode(s string) (PointsMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default", "auto":
		return PointsDefault, nil
	case "always", "true", "yes":
		return PointsAlways, nil
	case "never", "false", "no":
		return PointsNever, nil
	default:
		return PointsDefault, fmt.Errorf("unsupported points mode: %s (use default|always|never)", s)
	}
}

// Options describes a timecourse chart. Variable and Value are required; the
// other column names are optional.
type Options struct {
	Variable  string // x axis
	Value     string // y axis
	Condition string // one line per value, overlaid in a panel
	Split     string // one panel per value
	Sort      string // row order; defaults to Condition, then Variable

	// Palette is default|viridis|none or a comma-separated list of hex colours.
	Palette string
	// Legend is "" or "false" to hide, or true|top|top_left|left to place it.
	Legend     string
	ShowAll    bool   // with Split, keep every panel instead of only Panel
	Panel      string // with Split and !ShowAll, the split value to keep; first if empty
	ShowPoints PointsMode
	Width      int
	Height     int

	// Extra holds optional presentation settings: title, x_label, y_label,
	// stroke_width, dot_width, padding. Unrecognised or malformed entries are
	// skipped.
	Extra map[string]string
}

// DefaultOptions returns the presentation defaults.
func DefaultOptions() Options {
	return Options{
		Palette: "default",
		Width:   500,
		Height:  350,
	}
}

// Format selects the image encoding.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts png or svg.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("unsupported chart format: %s (use png|svg)", s)
	}
}
