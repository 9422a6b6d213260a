package analysis

import "github.com/KaramelBytes/tidyrep/internal/table"

// CheckColumns verifies that every requested column exists in t, in order, and
// returns a *MissingColumnError for the first one that does not. label describes
// the columns' role in the error message and may be empty. NoColumns always passes.
func CheckColumns(t *table.Table, cols Columns, label string) error {
	for _, name := range cols.names {
		if !t.Has(name) {
			return &MissingColumnError{Column: name, Label: label, Available: t.Names()}
		}
	}
	return nil
}
