package parser_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/tidyrep/internal/parser"
	"github.com/KaramelBytes/tidyrep/internal/table"
)

func TestLoadTableCSV(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "growth.csv")
	content := "time,strain,od\n" +
		"0,wt,0.10\n" +
		"1,wt,0.35\n" +
		"2,wt,0.80\n"
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tb, err := parser.LoadTable(p, parser.DefaultOptions())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if tb.Len() != 3 {
		t.Fatalf("rows = %d, want 3", tb.Len())
	}
	od, ok := tb.Column("od")
	if !ok || od.Kind() != table.KindNumeric {
		t.Fatalf("expected numeric od column, got %#v", od)
	}
	strain, _ := tb.Column("strain")
	if strain.Kind() != table.KindText {
		t.Fatalf("expected text strain column")
	}
}

func TestLoadTableUnsupported(t *testing.T) {
	p := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(p, []byte("# notes"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := parser.LoadTable(p, parser.DefaultOptions())
	if !errors.Is(err, parser.ErrUnsupported) {
		t.Fatalf("err = %v, want ErrUnsupported", err)
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := parser.LoadTable(filepath.Join(t.TempDir(), "nope.csv"), parser.DefaultOptions())
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
