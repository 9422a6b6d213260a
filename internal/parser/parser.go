package parser

import (
	"errors"
	"fmt"
	"os"

	"github.com/KaramelBytes/tidyrep/internal/table"
)

// Loader turns a file into a table.
type Loader interface {
	CanLoad(filename string) bool
	Load(path string, opt Options) (*table.Table, error)
}

// Options carries the table options plus spreadsheet sheet selection.
type Options struct {
	Table      table.Options
	SheetName  string
	SheetIndex int // 1-based; used when SheetName is empty
}

// DefaultOptions returns loader defaults.
func DefaultOptions() Options {
	return Options{Table: table.DefaultOptions(), SheetIndex: 1}
}

var registry []Loader

// Register adds a loader implementation to the registry.
func Register(l Loader) {
	registry = append(registry, l)
}

// LoadTable selects a loader based on filename and reads the file into a table.
func LoadTable(path string, opt Options) (*table.Table, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat input: %w", err)
	}
	for _, l := range registry {
		if l.CanLoad(path) {
			return l.Load(path, opt)
		}
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
}

func init() {
	Register(csvLoader{})
	Register(xlsxLoader{})
}

// ErrUnsupported indicates a format is not supported.
var ErrUnsupported = errors.New("unsupported table format (use .csv, .tsv or .xlsx)")
