package table

import (
	"fmt"
	"sort"
)

// Table is an ordered set of equal-length named columns. Rows correspond by
// position. A Table is never modified after construction; derived tables are
// returned as new values.
type Table struct {
	Name string

	cols  []*Column
	index map[string]int
	rows  int
}

// New builds a table from columns, rejecting duplicate names and unequal lengths.
func New(cols ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(cols))}
	for i, c := range cols {
		if c == nil {
			return nil, fmt.Errorf("column %d is nil", i)
		}
		if _, dup := t.index[c.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", c.Name)
		}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", c.Name, c.Len(), t.rows)
		}
		t.index[c.Name] = i
		t.cols = append(t.cols, c)
	}
	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Names returns the column names in order.
func (t *Table) Names() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

// Has reports whether a column with the given name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// Columns returns the columns in order.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.cols))
	copy(out, t.cols)
	return out
}

// WithColumn returns a new table with c appended, or replacing the column of
// the same name in place.
func (t *Table) WithColumn(c *Column) (*Table, error) {
	cols := t.Columns()
	if i, ok := t.index[c.Name]; ok {
		cols[i] = c
	} else {
		cols = append(cols, c)
	}
	out, err := New(cols...)
	if err != nil {
		return nil, err
	}
	out.Name = t.Name
	return out, nil
}

// Take returns a new table holding the rows at idx, in that order.
func (t *Table) Take(idx []int) *Table {
	cols := make([]*Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = c.take(idx)
	}
	index := make(map[string]int, len(t.index))
	for k, v := range t.index {
		index[k] = v
	}
	return &Table{Name: t.Name, cols: cols, index: index, rows: len(idx)}
}

// SortBy returns a copy stably sorted by the named columns, first name most
// significant.
func (t *Table) SortBy(names ...string) (*Table, error) {
	keys := make([]*Column, 0, len(names))
	for _, n := range names {
		c, ok := t.Column(n)
		if !ok {
			return nil, fmt.Errorf("sort column %q not found", n)
		}
		keys = append(keys, c)
	}
	idx := make([]int, t.rows)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		for _, c := range keys {
			if c.less(idx[a], idx[b]) {
				return true
			}
			if c.less(idx[b], idx[a]) {
				return false
			}
		}
		return false
	})
	return t.Take(idx), nil
}

// Row returns the formatted values of row i in column order.
func (t *Table) Row(i int) []string {
	out := make([]string, len(t.cols))
	for j, c := range t.cols {
		out[j] = c.String(i)
	}
	return out
}
