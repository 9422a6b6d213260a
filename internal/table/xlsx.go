package table

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSXFile loads one sheet of a workbook. The first non-empty row is the header.
// If sheetName is empty and sheetIndex <= 0, it defaults to the first sheet.
// sheetIndex is 1-based (Sheet1 == 1).
func ReadXLSXFile(path string, sheetName string, sheetIndex int, opt Options) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx %s has no sheets", filepath.Base(path))
	}
	target := ""
	if sheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, sheetName) {
				target = s
				break
			}
		}
		if target == "" {
			return nil, fmt.Errorf("sheet %q not found; available: %v", sheetName, sheets)
		}
	} else {
		idx := sheetIndex
		if idx <= 0 {
			idx = 1
		}
		if idx > len(sheets) {
			return nil, fmt.Errorf("sheet index %d out of range (workbook has %d sheets)", idx, len(sheets))
		}
		target = sheets[idx-1]
	}

	rows, err := f.GetRows(target)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", target, err)
	}
	// skip leading blank rows
	start := 0
	for start < len(rows) && isBlankRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		t, _ := New()
		t.Name = filepath.Base(path)
		return t, nil
	}
	header := rows[start]
	data := rows[start+1:]
	if opt.MaxRows > 0 && len(data) > opt.MaxRows {
		slog.Warn("row limit reached", "sheet", target, "processed", opt.MaxRows, "rows", len(data))
		data = data[:opt.MaxRows]
	}
	t, err := FromRecords(header, data, opt)
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(path)
	return t, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
