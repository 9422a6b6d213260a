package analysis

// Columns names zero or more table columns. Build one with Col, Cols or use
// NoColumns; the zero value is NoColumns.
type Columns struct {
	names []string
}

// NoColumns requests nothing: validation passes and no grouping is applied.
var NoColumns = Columns{}

// Col names a single column. An empty name is the same as NoColumns.
func Col(name string) Columns {
	if name == "" {
		return NoColumns
	}
	return Columns{names: []string{name}}
}

// Cols names an ordered list of columns. Empty names are dropped.
func Cols(names ...string) Columns {
	var out []string
	for _, n := range names {
		if n != "" {
			out = append(out, n)
		}
	}
	return Columns{names: out}
}

// Names returns a copy of the requested names.
func (c Columns) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// IsNone reports whether no column is requested.
func (c Columns) IsNone() bool { return len(c.names) == 0 }
