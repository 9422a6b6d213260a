package parser

import (
	"strings"

	"github.com/KaramelBytes/tidyrep/internal/table"
)

type xlsxLoader struct{}

func (xlsxLoader) CanLoad(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".xlsx")
}

func (xlsxLoader) Load(path string, opt Options) (*table.Table, error) {
	return table.ReadXLSXFile(path, opt.SheetName, opt.SheetIndex, opt.Table)
}
