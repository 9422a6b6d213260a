package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.ChartWidth != 500 || c.ChartHeight != 350 {
		t.Fatalf("chart size = %dx%d, want 500x350", c.ChartWidth, c.ChartHeight)
	}
	if c.ChartPalette != "default" || c.ChartFormat != "png" {
		t.Fatalf("palette/format = %q/%q", c.ChartPalette, c.ChartFormat)
	}
	if c.MaxRows != 100000 {
		t.Fatalf("max_rows = %d", c.MaxRows)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.yaml")
	c := &Global{ChartWidth: 800, ChartHeight: 600, ChartPalette: "viridis", ChartFormat: "svg", LogLevel: "debug", LogFormat: "json"}
	if err := Save(c, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ChartWidth != 800 || got.ChartPalette != "viridis" || got.ChartFormat != "svg" {
		t.Fatalf("unexpected config: %+v", got)
	}
	if got.LogFormat != "json" {
		t.Fatalf("log_format = %q", got.LogFormat)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("chart_width: 640\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("TIDYREP_CHART_WIDTH", "900")
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ChartWidth != 900 {
		t.Fatalf("chart_width = %d, want 900", got.ChartWidth)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("chart_width: [\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed config")
	}
}

func TestSet(t *testing.T) {
	var c Global
	tests := []struct {
		key, val string
		wantErr  bool
	}{
		{"chart_width", "720", false},
		{"chart_width", "-1", true},
		{"chart_format", "SVG", false},
		{"chart_format", "gif", true},
		{"delimiter", "tab", false},
		{"delimiter", "|", true},
		{"log_level", "debug", false},
		{"nope", "x", true},
	}
	for _, tt := range tests {
		err := c.Set(tt.key, tt.val)
		if (err != nil) != tt.wantErr {
			t.Fatalf("Set(%q, %q) err = %v, wantErr %v", tt.key, tt.val, err, tt.wantErr)
		}
	}
	if c.ChartWidth != 720 || c.ChartFormat != "svg" || c.Delimiter != "tab" || c.LogLevel != "debug" {
		t.Fatalf("unexpected config after Set: %+v", c)
	}
}
