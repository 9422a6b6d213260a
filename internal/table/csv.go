package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Options controls how delimited and spreadsheet files are turned into tables.
type Options struct {
	// MaxRows limits rows read; 0 means unlimited.
	MaxRows int
	// Delimiter for CSV. If 0, picks '\t' for .tsv files and ',' otherwise.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune // optional; if 0, auto-detect common separators (',' '.' space)
}

// DefaultOptions returns reasonable defaults for loading tables.
func DefaultOptions() Options {
	return Options{MaxRows: 100000}
}

// ReadCSVFile opens path and reads it with ReadCSV. The table is named after the file.
func ReadCSVFile(path string, opt Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	if opt.Delimiter == 0 {
		opt.Delimiter = sniffDelimiter(path)
	}
	t, err := ReadCSV(f, opt)
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// ReadCSV reads a header row followed by data rows.
func ReadCSV(rd io.Reader, opt Options) (*Table, error) {
	r := csv.NewReader(rd)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	if opt.Delimiter != 0 {
		r.Comma = opt.Delimiter
	}

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return New()
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)

	var records [][]string
	total := 0
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", total+1, err)
		}
		total++
		if opt.MaxRows > 0 && len(records) >= opt.MaxRows {
			continue
		}
		records = append(records, rec)
	}
	if len(records) < total {
		slog.Warn("row limit reached", "processed", len(records), "rows", total)
	}
	return FromRecords(header, records, opt)
}

// FromRecords infers column kinds from raw string cells. A column is numeric
// when every non-empty cell parses as a number and at least one does.
func FromRecords(header []string, records [][]string, opt Options) (*Table, error) {
	ncol := len(header)
	cols := make([]*Column, 0, ncol)
	for j := 0; j < ncol; j++ {
		raw := make([]string, len(records))
		for i, rec := range records {
			if j < len(rec) {
				raw[i] = strings.TrimSpace(rec[j])
			}
		}
		name := strings.TrimSpace(header[j])
		_, unit := splitUnits(name)
		col := inferColumn(name, raw, opt)
		col.Unit = unit
		cols = append(cols, col)
	}
	return New(cols...)
}

func inferColumn(name string, raw []string, opt Options) *Column {
	nums := make([]float64, len(raw))
	seen := 0
	for i, v := range raw {
		if isMissing(v) {
			nums[i] = math.NaN()
			continue
		}
		x, ok := parseNumeric(v, opt)
		if !ok {
			return NewText(name, raw)
		}
		nums[i] = x
		seen++
	}
	if seen == 0 {
		return NewText(name, raw)
	}
	return NewNumeric(name, nums)
}

// missingMarkers are cell values read as missing in numeric columns.
var missingMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"none": true,
	"#n/a": true,
}

func isMissing(v string) bool {
	return missingMarkers[strings.ToLower(v)]
}

// WriteCSV writes the header and every row of t.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < t.Len(); i++ {
		if err := cw.Write(t.Row(i)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.TrimSpace(s)
	if strings.Contains(raw, "%") {
		raw = strings.ReplaceAll(raw, "%", "")
	}
	// Normalize spaces
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		if cpos >= 0 && dpos >= 0 {
			if cpos > dpos {
				dec = ','
				thou = '.'
			} else {
				dec = '.'
				thou = ','
			}
		} else if cpos >= 0 {
			dec = ','
		} else {
			dec = '.'
		}
	}
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

var unitPatterns = []struct {
	re   *regexp.Regexp
	pick int
}{
	{regexp.MustCompile(`^(.*)\s*\(([^)]+)\)\s*$`), 2},  // e.g., OD600 (AU)
	{regexp.MustCompile(`^(.*)\s*\[([^\]]+)\]\s*$`), 2}, // e.g., Mass [mg/L]
	{regexp.MustCompile(`^(.*?)[_\s-]+(mg/L|g/L|ug/L|°[CF]|min|h|%|ppm|ppb)$`), 2},
}

func splitUnits(name string) (clean string, unit string) {
	s := strings.TrimSpace(name)
	for _, p := range unitPatterns {
		if m := p.re.FindStringSubmatch(s); len(m) >= 3 {
			base := strings.TrimSpace(m[1])
			u := strings.TrimSpace(m[p.pick])
			if base != "" && u != "" {
				return base, u
			}
		}
	}
	return s, ""
}
