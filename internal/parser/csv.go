package parser

import (
	"strings"

	"github.com/KaramelBytes/tidyrep/internal/table"
)

type csvLoader struct{}

func (csvLoader) CanLoad(filename string) bool {
	name := strings.ToLower(filename)
	return strings.HasSuffix(name, ".csv") || strings.HasSuffix(name, ".tsv") || strings.HasSuffix(name, ".txt")
}

func (csvLoader) Load(path string, opt Options) (*table.Table, error) {
	return table.ReadCSVFile(path, opt.Table)
}
