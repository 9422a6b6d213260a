package table

import (
	"math"
	"strconv"
)

// Kind is the inferred storage type of a column.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	default:
		return "text"
	}
}

// Column is a named, typed sequence of values. Columns are immutable once built;
// constructors copy their input.
type Column struct {
	Name string
	// Unit is the unit parsed from a header such as "Mass [mg/L]"; empty if none.
	Unit string

	kind Kind
	nums []float64
	text []string
}

// NewNumeric builds a numeric column. NaN marks a missing value.
func NewNumeric(name string, vals []float64) *Column {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	return &Column{Name: name, kind: KindNumeric, nums: cp}
}

// NewText builds a text column.
func NewText(name string, vals []string) *Column {
	cp := make([]string, len(vals))
	copy(cp, vals)
	return &Column{Name: name, kind: KindText, text: cp}
}

func (c *Column) Kind() Kind { return c.kind }

func (c *Column) Len() int {
	if c.kind == KindNumeric {
		return len(c.nums)
	}
	return len(c.text)
}

// Float returns the numeric value at row i. ok is false for text columns and
// missing numeric cells.
func (c *Column) Float(i int) (v float64, ok bool) {
	if c.kind != KindNumeric {
		return 0, false
	}
	v = c.nums[i]
	return v, !math.IsNaN(v)
}

// String formats the value at row i. Missing numeric cells format as "".
func (c *Column) String(i int) string {
	if c.kind == KindNumeric {
		v := c.nums[i]
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return c.text[i]
}

// Floats returns a copy of the numeric values, or nil for text columns.
func (c *Column) Floats() []float64 {
	if c.kind != KindNumeric {
		return nil
	}
	cp := make([]float64, len(c.nums))
	copy(cp, c.nums)
	return cp
}

// Strings returns every value formatted with String.
func (c *Column) Strings() []string {
	out := make([]string, c.Len())
	for i := range out {
		out[i] = c.String(i)
	}
	return out
}

// Equal reports whether two columns hold the same name, kind and values.
// Missing numeric cells compare equal to each other.
func (c *Column) Equal(o *Column) bool {
	if c == nil || o == nil {
		return c == o
	}
	if c.Name != o.Name || c.kind != o.kind || c.Len() != o.Len() {
		return false
	}
	for i := 0; i < c.Len(); i++ {
		if c.kind == KindNumeric {
			a, b := c.nums[i], o.nums[i]
			if a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
				return false
			}
			continue
		}
		if c.text[i] != o.text[i] {
			return false
		}
	}
	return true
}

// less orders rows i and j: numerically for numeric columns (missing last),
// lexically otherwise.
func (c *Column) less(i, j int) bool {
	if c.kind == KindNumeric {
		a, b := c.nums[i], c.nums[j]
		if math.IsNaN(a) {
			return false
		}
		if math.IsNaN(b) {
			return true
		}
		return a < b
	}
	return c.text[i] < c.text[j]
}

func (c *Column) take(idx []int) *Column {
	out := &Column{Name: c.Name, Unit: c.Unit, kind: c.kind}
	if c.kind == KindNumeric {
		out.nums = make([]float64, len(idx))
		for k, i := range idx {
			out.nums[k] = c.nums[i]
		}
		return out
	}
	out.text = make([]string, len(idx))
	for k, i := range idx {
		out.text[k] = c.text[i]
	}
	return out
}
