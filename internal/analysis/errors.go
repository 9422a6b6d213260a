package analysis

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is matched by errors.Is for every *EmptyInputError.
var ErrEmptyInput = errors.New("table has no rows")

// MissingColumnError reports a requested column that the table lacks.
type MissingColumnError struct {
	Column    string
	Label     string // semantic role such as "variable" or "condition"; optional
	Available []string
}

func (e *MissingColumnError) Error() string {
	var b strings.Builder
	if e.Label == "" {
		fmt.Fprintf(&b, "The value '%s' is not present in any of the columns of your table.", e.Column)
	} else {
		fmt.Fprintf(&b, "Your %s value '%s' is not present in any of the columns of your table.", e.Label, e.Column)
	}
	b.WriteString("\nYou may be looking for:\n  ")
	b.WriteString(quoteList(e.Available))
	return b.String()
}

// GroupingError reports a column the replicate analyzer cannot group or
// aggregate by.
type GroupingError struct {
	Role      string // "variable", "value" or "grouping"
	Column    string
	Reason    string
	Available []string
}

func (e *GroupingError) Error() string {
	msg := fmt.Sprintf("cannot group by %s column '%s': %s", e.Role, e.Column, e.Reason)
	if len(e.Available) > 0 {
		msg += "; available columns: " + quoteList(e.Available)
	}
	return msg
}

// EmptyInputError reports a table with no rows, for which group statistics are
// undefined.
type EmptyInputError struct {
	Table string
}

func (e *EmptyInputError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%s: %v", e.Table, ErrEmptyInput)
	}
	return ErrEmptyInput.Error()
}

func (e *EmptyInputError) Is(target error) bool { return target == ErrEmptyInput }

func quoteList(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = "'" + n + "'"
	}
	return "[" + strings.Join(q, ", ") + "]"
}
