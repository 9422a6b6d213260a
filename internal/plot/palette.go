package plot

import (
	"fmt"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// viridis anchors at evenly spaced positions 0, 1/9, ..., 1.
var viridisAnchors = []string{
	"440154", "482878", "3e4989", "31688e", "26828e",
	"1f9e89", "35b779", "6ece58", "b5de2b", "fde725",
}

// Viridis samples n evenly spaced colours from the viridis colormap.
func Viridis(n int) []drawing.Color {
	if n <= 0 {
		return nil
	}
	anchors := make([]drawing.Color, len(viridisAnchors))
	for i, h := range viridisAnchors {
		anchors[i] = drawing.ColorFromHex(h)
	}
	out := make([]drawing.Color, n)
	if n == 1 {
		out[0] = anchors[0]
		return out
	}
	segs := float64(len(anchors) - 1)
	for i := 0; i < n; i++ {
		pos := float64(i) / float64(n-1) * segs
		lo := int(pos)
		if lo >= len(anchors)-1 {
			out[i] = anchors[len(anchors)-1]
			continue
		}
		w := pos - float64(lo)
		a, b := anchors[lo], anchors[lo+1]
		out[i] = drawing.Color{
			R: lerp(a.R, b.R, w),
			G: lerp(a.G, b.G, w),
			B: lerp(a.B, b.B, w),
			A: 255,
		}
	}
	return out
}

func lerp(a, b uint8, w float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*w + 0.5)
}

// resolvePalette returns n colours for the named palette. A nil result means
// go-chart's default colour sequence.
//
//	default  viridis without its darkest and lightest ends when conditions exist
//	viridis  the full viridis range
//	none     go-chart defaults
//	a comma-separated list of hex colours, cycled
func resolvePalette(name string, n int, hasCondition bool) ([]drawing.Color, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		if !hasCondition {
			return nil, nil
		}
		return Viridis(n + 3)[1 : n+1], nil
	case "viridis":
		return Viridis(n), nil
	case "none":
		return nil, nil
	}
	var out []drawing.Color
	for _, h := range strings.Split(name, ",") {
		h = strings.TrimPrefix(strings.TrimSpace(h), "#")
		if !isHex(h) {
			return nil, fmt.Errorf("unknown palette %q (use default|viridis|none or hex colours)", name)
		}
		out = append(out, drawing.ColorFromHex(h))
	}
	return out, nil
}

func isHex(s string) bool {
	if len(s) != 6 && len(s) != 3 {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

func colorAt(pal []drawing.Color, i int) drawing.Color {
	if len(pal) == 0 {
		return chart.GetDefaultColor(i)
	}
	return pal[i%len(pal)]
}
