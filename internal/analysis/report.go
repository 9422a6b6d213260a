package analysis

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/KaramelBytes/tidyrep/internal/table"
	"github.com/google/uuid"
)

// Report describes one replicate check in a markdown- and JSON-friendly form.
type Report struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	Variable   string      `json:"variable"`
	Value      string      `json:"value"`
	GroupKey   []string    `json:"group_key"`
	Rows       int         `json:"rows"`
	Groups     []GroupStat `json:"groups"`
	MeanStd    float64     `json:"mean_std"`
	Replicates bool        `json:"replicates"`
	MeanColumn string      `json:"mean_column,omitempty"`

	// Table is the aggregated table when Replicates is true, otherwise the input.
	Table *table.Table `json:"-"`
}

// GroupStat captures the value statistics of one group.
type GroupStat struct {
	Key   []string `json:"key"`
	Size  int      `json:"size"`
	Count int      `json:"count"` // rows with a non-missing value
	Mean  float64  `json:"mean"`  // zero when Count is zero or the mean overflows
	Std   float64  `json:"std"`
}

// Summarize runs CheckReplicates and keeps the per-group statistics behind the decision.
func Summarize(t *table.Table, variable, value string, grouping Columns) (*Report, error) {
	g, err := groupRows(t, variable, value, grouping)
	if err != nil {
		return nil, err
	}
	rep := &Report{
		ID:         uuid.New(),
		Name:       t.Name,
		CreatedAt:  time.Now().UTC(),
		Variable:   variable,
		Value:      value,
		GroupKey:   g.keyCols,
		Rows:       t.Len(),
		MeanStd:    g.meanStd,
		Replicates: g.replicates,
		Table:      t,
	}
	for _, gr := range g.groups {
		gs := GroupStat{Key: gr.values, Size: len(gr.rows), Count: gr.n, Std: gr.std}
		if gr.n > 0 && !math.IsInf(gr.mean, 0) {
			gs.Mean = gr.mean
		}
		rep.Groups = append(rep.Groups, gs)
	}
	if g.replicates {
		agg, err := g.aggregate(t)
		if err != nil {
			return nil, err
		}
		rep.Table = agg
		rep.MeanColumn = MeanColumnName(value)
	}
	return rep, nil
}

// Markdown renders a compact summary of the replicate check.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[REPLICATE SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Group key: %s\n", strings.Join(r.GroupKey, ", ")))
	b.WriteString(fmt.Sprintf("Groups: %d\n", len(r.Groups)))
	b.WriteString(fmt.Sprintf("Mean within-group std of %s: %.4g\n", r.Value, r.MeanStd))
	if r.Replicates {
		b.WriteString(fmt.Sprintf("Replicates: yes (added column '%s')\n", r.MeanColumn))
	} else {
		b.WriteString("Replicates: no\n")
	}

	if len(r.Groups) > 0 {
		b.WriteString("\n[GROUPS]\n")
		for _, g := range r.Groups {
			parts := make([]string, len(g.Key))
			for i, v := range g.Key {
				parts[i] = fmt.Sprintf("%s=%s", r.GroupKey[i], safeVal(v))
			}
			b.WriteString(fmt.Sprintf("- %s (n=%d): mean %s, std %.4g\n", strings.Join(parts, " | "), g.Size, fmtMean(g), g.Std))
		}
	}
	return b.String()
}

func fmtMean(g GroupStat) string {
	if g.Count == 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.4g", g.Mean)
}

func safeVal(s string) string {
	if s == "" {
		return "(missing)"
	}
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
