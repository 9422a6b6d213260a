package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/tidyrep/internal/table"
	"github.com/montanaflynn/stats"
)

// MeanColumnName is the name of the per-group mean column added to an
// aggregated table.
func MeanColumnName(value string) string { return "Mean of " + value }

// CheckReplicates decides whether the value column holds replicate measurements
// when rows are grouped by variable plus the grouping columns. Replicates are
// present when the mean of the per-group sample standard deviations is greater
// than zero; a single-row group contributes zero.
//
// With replicates, the returned table is a new table holding every row and
// column of t plus MeanColumnName(value), the mean of the row's group.
// Without replicates, t itself is returned. t is never modified.
func CheckReplicates(t *table.Table, variable, value string, grouping Columns) (bool, *table.Table, error) {
	g, err := groupRows(t, variable, value, grouping)
	if err != nil {
		return false, nil, err
	}
	if !g.replicates {
		return false, t, nil
	}
	agg, err := g.aggregate(t)
	if err != nil {
		return false, nil, err
	}
	return true, agg, nil
}

type group struct {
	values []string // group key values, aligned with groupedRows.keyCols
	rows   []int
	n      int // non-missing values
	mean   float64
	std    float64
}

type groupedRows struct {
	value      string
	keyCols    []string
	groups     []*group
	rowGroup   []int
	meanStd    float64
	replicates bool
}

func groupRows(t *table.Table, variable, value string, grouping Columns) (*groupedRows, error) {
	avail := t.Names()
	if !t.Has(variable) {
		return nil, &GroupingError{Role: "variable", Column: variable, Reason: "column not found", Available: avail}
	}
	valCol, ok := t.Column(value)
	if !ok {
		return nil, &GroupingError{Role: "value", Column: value, Reason: "column not found", Available: avail}
	}
	if valCol.Kind() != table.KindNumeric {
		return nil, &GroupingError{Role: "value", Column: value, Reason: "column is not numeric"}
	}
	keyCols := append([]string{variable}, grouping.names...)
	keys := make([]*table.Column, len(keyCols))
	for i, name := range keyCols {
		c, ok := t.Column(name)
		if !ok {
			return nil, &GroupingError{Role: "grouping", Column: name, Reason: "column not found", Available: avail}
		}
		keys[i] = c
	}
	if t.Len() == 0 {
		return nil, &EmptyInputError{Table: t.Name}
	}

	g := &groupedRows{value: value, keyCols: keyCols, rowGroup: make([]int, t.Len())}
	index := map[string]int{}
	parts := make([]string, len(keys))
	for i := 0; i < t.Len(); i++ {
		for k, c := range keys {
			parts[k] = c.String(i)
		}
		key := strings.Join(parts, "\x1f")
		gi, ok := index[key]
		if !ok {
			gi = len(g.groups)
			index[key] = gi
			g.groups = append(g.groups, &group{values: append([]string(nil), parts...)})
		}
		g.groups[gi].rows = append(g.groups[gi].rows, i)
		g.rowGroup[i] = gi
	}

	stds := make([]float64, 0, len(g.groups))
	for gi, gr := range g.groups {
		vals := make([]float64, 0, len(gr.rows))
		for _, i := range gr.rows {
			// non-finite cells count as missing
			if v, ok := valCol.Float(i); ok && !math.IsInf(v, 0) {
				vals = append(vals, v)
			}
		}
		gr.n = len(vals)
		gr.mean = math.NaN()
		if len(vals) > 0 {
			m, err := stats.Mean(vals)
			if err != nil {
				return nil, fmt.Errorf("mean of group %d: %w", gi, err)
			}
			gr.mean = m
		}
		if len(vals) > 1 {
			sd, err := stats.StandardDeviationSample(vals)
			if err != nil {
				return nil, fmt.Errorf("std of group %d: %w", gi, err)
			}
			gr.std = sd
		}
		// overflowing groups are left out of the mean std
		if math.IsNaN(gr.std) || math.IsInf(gr.std, 0) {
			gr.std = 0
			continue
		}
		stds = append(stds, gr.std)
	}
	if len(stds) > 0 {
		ms, err := stats.Mean(stds)
		if err != nil {
			return nil, fmt.Errorf("mean std: %w", err)
		}
		g.meanStd = ms
	}
	g.replicates = g.meanStd > 0
	return g, nil
}

func (g *groupedRows) aggregate(t *table.Table) (*table.Table, error) {
	means := make([]float64, len(g.rowGroup))
	for i, gi := range g.rowGroup {
		means[i] = g.groups[gi].mean
	}
	return t.WithColumn(table.NewNumeric(MeanColumnName(g.value), means))
}
