package plot

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/KaramelBytes/tidyrep/internal/analysis"
	"github.com/KaramelBytes/tidyrep/internal/table"
	"github.com/KaramelBytes/tidyrep/internal/utils"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	defaultPadding     = 0.1
	defaultStrokeWidth = 2.0
	defaultDotWidth    = 3.0
)

// Timecourse is a rendered-ready set of chart panels.
type Timecourse struct {
	// Replicates reports the replicate decision that drove point overlay.
	Replicates bool
	// Points reports whether raw points were drawn.
	Points bool
	// Data is the (possibly aggregated) table behind the chart, in plotted order.
	Data   *table.Table
	Panels []*Panel
}

// Panel is one chart; Key is its split value, empty without a split.
type Panel struct {
	Key   string
	Chart *chart.Chart
}

// PlotTimecourse validates the requested columns, checks for replicates and
// lays out one mean line per condition, overlaid with raw points when
// replicates are present or requested.
func PlotTimecourse(t *table.Table, opt Options) (*Timecourse, error) {
	for _, c := range []struct{ name, label string }{
		{opt.Variable, "variable"},
		{opt.Value, "value"},
		{opt.Condition, "condition"},
		{opt.Split, "split"},
		{opt.Sort, "sort"},
	} {
		if err := analysis.CheckColumns(t, analysis.Col(c.name), c.label); err != nil {
			return nil, err
		}
	}
	if opt.Variable == "" || opt.Value == "" {
		return nil, fmt.Errorf("variable and value columns are required")
	}

	reps, data, err := analysis.CheckReplicates(t, opt.Variable, opt.Value, analysis.Cols(opt.Condition, opt.Split))
	if err != nil {
		return nil, err
	}
	sortKey := opt.Sort
	if sortKey == "" {
		sortKey = opt.Condition
	}
	keys := []string{opt.Variable}
	if sortKey != "" && sortKey != opt.Variable {
		keys = []string{sortKey, opt.Variable}
	}
	data, err = data.SortBy(keys...)
	if err != nil {
		return nil, err
	}

	lineCol := opt.Value
	if reps {
		lineCol = analysis.MeanColumnName(opt.Value)
	}
	showPoints := opt.ShowPoints == PointsAlways || (opt.ShowPoints == PointsDefault && reps)

	l := &layout{
		opt:        opt,
		data:       data,
		showPoints: showPoints,
		strokeW:    defaultStrokeWidth,
		dotW:       defaultDotWidth,
		padding:    defaultPadding,
	}
	l.x, _ = data.Column(opt.Variable)
	l.y, _ = data.Column(opt.Value)
	l.line, _ = data.Column(lineCol)
	if opt.Condition != "" {
		l.cond, _ = data.Column(opt.Condition)
	}
	l.applyExtra(opt.Extra)
	l.indexX()

	conds := distinct(data, l.cond)
	l.conds = conds
	l.palette, err = resolvePalette(opt.Palette, len(conds), opt.Condition != "")
	if err != nil {
		return nil, err
	}

	tc := &Timecourse{Replicates: reps, Points: showPoints, Data: data}
	var split *table.Column
	if opt.Split != "" {
		split, _ = data.Column(opt.Split)
	}
	found := false
	for _, key := range distinct(data, split) {
		if split != nil && !opt.ShowAll {
			if opt.Panel != "" && key != opt.Panel {
				continue
			}
			if len(tc.Panels) == 1 {
				break
			}
		}
		found = true
		rows := make([]int, 0, data.Len())
		for i := 0; i < data.Len(); i++ {
			if split == nil || split.String(i) == key {
				rows = append(rows, i)
			}
		}
		c := l.panel(key, rows)
		if len(c.Series) == 0 {
			slog.Warn("skipping chart panel without plottable values", "split", opt.Split, "panel", key)
			continue
		}
		tc.Panels = append(tc.Panels, &Panel{Key: key, Chart: c})
	}
	if len(tc.Panels) == 0 {
		switch {
		case !found:
			return nil, fmt.Errorf("split value %q not found in column '%s'", opt.Panel, opt.Split)
		case split != nil && opt.Panel != "":
			return nil, fmt.Errorf("no plottable values of '%s' for %s=%s", opt.Value, opt.Split, opt.Panel)
		default:
			return nil, fmt.Errorf("no plottable values of '%s'", opt.Value)
		}
	}
	return tc, nil
}

type layout struct {
	opt        Options
	data       *table.Table
	x, y, line *table.Column
	cond       *table.Column
	conds      []string
	palette    []drawing.Color
	showPoints bool

	// categorical x positions, nil when the variable is numeric
	xPos  map[string]float64
	ticks []chart.Tick

	title, xLabel, yLabel string
	strokeW, dotW        float64
	padding              float64
}

func (l *layout) applyExtra(extra map[string]string) {
	for k, v := range extra {
		switch strings.ToLower(k) {
		case "title":
			l.title = v
		case "x_label", "xlabel":
			l.xLabel = v
		case "y_label", "ylabel":
			l.yLabel = v
		case "stroke_width", "line_width":
			if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
				l.strokeW = f
				continue
			}
			slog.Debug("ignoring chart option", "key", k, "value", v)
		case "dot_width", "size":
			if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
				l.dotW = f
				continue
			}
			slog.Debug("ignoring chart option", "key", k, "value", v)
		case "padding":
			if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
				l.padding = f
				continue
			}
			slog.Debug("ignoring chart option", "key", k, "value", v)
		default:
			slog.Debug("ignoring chart option", "key", k, "value", v)
		}
	}
}

// indexX assigns ordinal x positions to a text variable in plotted order.
func (l *layout) indexX() {
	if l.x.Kind() == table.KindNumeric {
		return
	}
	l.xPos = map[string]float64{}
	for _, v := range distinct(l.data, l.x) {
		pos := float64(len(l.xPos))
		l.xPos[v] = pos
		l.ticks = append(l.ticks, chart.Tick{Value: pos, Label: v})
	}
}

func (l *layout) xAt(i int) (float64, bool) {
	if l.xPos == nil {
		return l.x.Float(i)
	}
	pos, ok := l.xPos[l.x.String(i)]
	return pos, ok
}

func (l *layout) panel(key string, rows []int) *chart.Chart {
	c := &chart.Chart{
		Width:  l.opt.Width,
		Height: l.opt.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
	}
	title := l.title
	if l.opt.Split != "" {
		if title != "" {
			title += " "
		}
		title += fmt.Sprintf("%s=%s", l.opt.Split, key)
	}
	c.Title = title

	xr, yr := newBounds(), newBounds()
	for ci, cond := range l.conds {
		var lx, ly, px, py []float64
		seen := map[float64]bool{}
		for _, i := range rows {
			if l.cond != nil && l.cond.String(i) != cond {
				continue
			}
			x, ok := l.xAt(i)
			if !ok {
				continue
			}
			if v, ok := l.y.Float(i); ok {
				px = append(px, x)
				py = append(py, v)
			}
			if m, ok := l.line.Float(i); ok && !seen[x] {
				seen[x] = true
				lx = append(lx, x)
				ly = append(ly, m)
			}
		}
		if len(lx) == 0 && len(px) == 0 {
			continue
		}
		name := l.opt.Value
		if l.cond != nil {
			name = cond
		}
		sortByX(lx, ly)
		col := colorAt(l.palette, ci)
		// go-chart rejects series without values
		if len(lx) > 0 {
			c.Series = append(c.Series, chart.ContinuousSeries{
				Name:    name,
				XValues: lx,
				YValues: ly,
				Style:   chart.Style{StrokeColor: col, StrokeWidth: l.strokeW},
			})
			xr.add(lx...)
			yr.add(ly...)
		}
		if l.showPoints && len(px) > 0 {
			c.Series = append(c.Series, chart.ContinuousSeries{
				Name:    name + " points",
				XValues: px,
				YValues: py,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    l.dotW,
					DotColor:    col.WithAlpha(191),
				},
			})
			xr.add(px...)
			yr.add(py...)
		}
	}

	xName := l.opt.Variable
	if l.xLabel != "" {
		xName = l.xLabel
	}
	yName := l.opt.Value
	if l.yLabel != "" {
		yName = l.yLabel
	}
	c.XAxis = chart.XAxis{Name: xName, Range: xr.padded(l.padding), Ticks: l.ticks}
	c.YAxis = chart.YAxis{Name: yName, Range: yr.padded(l.padding)}

	if pos, ok := legendPosition(l.opt.Legend); ok {
		switch pos {
		case "left":
			c.Elements = []chart.Renderable{chart.LegendLeft(c)}
		case "top", "bottom":
			c.Elements = []chart.Renderable{chart.LegendThin(c)}
		default:
			c.Elements = []chart.Renderable{chart.Legend(c)}
		}
	}
	return c
}

func legendPosition(s string) (string, bool) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "false", "no", "none":
		return "", false
	case "true", "yes":
		return "top_left", true
	default:
		return v, true
	}
}

// distinct returns the values of c in order of first appearance; a nil column
// yields a single empty key.
func distinct(t *table.Table, c *table.Column) []string {
	if c == nil {
		return []string{""}
	}
	seen := map[string]bool{}
	var out []string
	for i := 0; i < t.Len(); i++ {
		v := c.String(i)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// sortByX orders paired x/y values by x so lines do not double back.
func sortByX(xs, ys []float64) {
	sort.Stable(xyPairs{xs, ys})
}

type xyPairs struct{ x, y []float64 }

func (p xyPairs) Len() int           { return len(p.x) }
func (p xyPairs) Less(i, j int) bool { return p.x[i] < p.x[j] }
func (p xyPairs) Swap(i, j int) {
	p.x[i], p.x[j] = p.x[j], p.x[i]
	p.y[i], p.y[j] = p.y[j], p.y[i]
}

type bounds struct{ min, max float64 }

func newBounds() *bounds { return &bounds{min: math.Inf(1), max: math.Inf(-1)} }

func (b *bounds) add(vs ...float64) {
	for _, v := range vs {
		if v < b.min {
			b.min = v
		}
		if v > b.max {
			b.max = v
		}
	}
}

// padded widens the range by frac of its span on each side. go-chart rejects
// zero-width ranges, so a single value gets a unit (or 10%) margin.
func (b *bounds) padded(frac float64) *chart.ContinuousRange {
	if math.IsInf(b.min, 1) {
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	span := b.max - b.min
	if span == 0 {
		m := math.Abs(b.min) * 0.1
		if m == 0 {
			m = 1
		}
		return &chart.ContinuousRange{Min: b.min - m, Max: b.max + m}
	}
	return &chart.ContinuousRange{Min: b.min - span*frac, Max: b.max + span*frac}
}

// Render encodes the panel.
func (p *Panel) Render(w io.Writer, f Format) error {
	if f == FormatSVG {
		return p.Chart.Render(chart.SVG, w)
	}
	return p.Chart.Render(chart.PNG, w)
}

// WriteFiles renders every panel. A single panel goes to path; several panels
// go to path with "-<split value>" inserted before the extension.
func (tc *Timecourse) WriteFiles(path string, f Format) ([]string, error) {
	var written []string
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for _, p := range tc.Panels {
		out := path
		if len(tc.Panels) > 1 {
			out = base + "-" + safeFileKey(p.Key) + ext
		}
		var buf bytes.Buffer
		if err := p.Render(&buf, f); err != nil {
			return written, fmt.Errorf("render panel %q: %w", p.Key, err)
		}
		if err := utils.SafeWriteFile(out, buf.Bytes()); err != nil {
			return written, err
		}
		written = append(written, out)
	}
	return written, nil
}

func safeFileKey(s string) string {
	if s == "" {
		return "missing"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}
