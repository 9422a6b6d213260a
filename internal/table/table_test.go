package table

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestNewRejectsBadShapes(t *testing.T) {
	_, err := New(NewText("a", []string{"x", "y"}), NewNumeric("b", []float64{1}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "b" has 1 rows, want 2`)

	_, err = New(NewText("a", []string{"x"}), NewText("a", []string{"y"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column name")
}

func TestColumnsAreCopied(t *testing.T) {
	vals := []float64{1, 2, 3}
	c := NewNumeric("v", vals)
	vals[0] = 99
	got, ok := c.Float(0)
	require.True(t, ok)
	assert.Equal(t, 1.0, got)

	out := c.Floats()
	out[1] = 42
	got, _ = c.Float(1)
	assert.Equal(t, 2.0, got)
}

func TestWithColumnLeavesOriginal(t *testing.T) {
	tb, err := New(NewText("a", []string{"x", "y"}))
	require.NoError(t, err)

	next, err := tb.WithColumn(NewNumeric("b", []float64{1, 2}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, tb.Names())
	assert.Equal(t, []string{"a", "b"}, next.Names())

	replaced, err := next.WithColumn(NewNumeric("a", []float64{5, 6}))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, replaced.Names())
	c, _ := replaced.Column("a")
	assert.Equal(t, KindNumeric, c.Kind())
}

func TestSortByIsStableAndTyped(t *testing.T) {
	tb, err := New(
		NewNumeric("time", []float64{10, 2, 10, 1}),
		NewText("tag", []string{"a", "b", "c", "d"}),
	)
	require.NoError(t, err)

	sorted, err := tb.SortBy("time")
	require.NoError(t, err)
	tag, _ := sorted.Column("tag")
	assert.Equal(t, []string{"d", "b", "a", "c"}, tag.Strings())

	_, err = tb.SortBy("nope")
	assert.Error(t, err)
}

func TestReadCSVInfersKinds(t *testing.T) {
	in := strings.Join([]string{
		"variable,value,strain,OD600 (AU)",
		"1,0.5,wt,1",
		"2,0.75,wt,",
		"3,1.25,mut,2.5",
	}, "\n")
	opt := DefaultOptions()
	opt.Delimiter = ','
	tb, err := ReadCSV(strings.NewReader(in), opt)
	require.NoError(t, err)
	require.Equal(t, 3, tb.Len())
	assert.Equal(t, []string{"variable", "value", "strain", "OD600 (AU)"}, tb.Names())

	v, _ := tb.Column("variable")
	assert.Equal(t, KindNumeric, v.Kind())
	s, _ := tb.Column("strain")
	assert.Equal(t, KindText, s.Kind())

	od, _ := tb.Column("OD600 (AU)")
	assert.Equal(t, "AU", od.Unit)
	x, ok := od.Float(0)
	require.True(t, ok)
	assert.Equal(t, 1.0, x)
	_, ok = od.Float(1)
	assert.False(t, ok)
	assert.True(t, math.IsNaN(od.Floats()[1]))
}

func TestReadCSVMissingMarkers(t *testing.T) {
	for _, marker := range []string{"", "NA", "na", "n/a", "N/A", "NaN", "null", "NULL", "None", "#N/A"} {
		t.Run("marker="+marker, func(t *testing.T) {
			in := "time,od\n0,0.1\n0," + marker + "\n1,0.3\n"
			opt := DefaultOptions()
			opt.Delimiter = ','
			tb, err := ReadCSV(strings.NewReader(in), opt)
			require.NoError(t, err)
			od, _ := tb.Column("od")
			require.Equal(t, KindNumeric, od.Kind())
			_, ok := od.Float(1)
			assert.False(t, ok)
			assert.Equal(t, "", od.String(1))
		})
	}

	opt := DefaultOptions()
	opt.Delimiter = ','
	tb, err := ReadCSV(strings.NewReader("tag\nNA\nn/a\n"), opt)
	require.NoError(t, err)
	tag, _ := tb.Column("tag")
	assert.Equal(t, KindText, tag.Kind())
	assert.Equal(t, "NA", tag.String(0))
}

func TestReadCSVLocaleAndMaxRows(t *testing.T) {
	in := "Group;Score\nA;10,5\nB;1.000,25\nC;3\n"
	opt := Options{Delimiter: ';', DecimalSeparator: ',', ThousandsSeparator: '.', MaxRows: 2}
	tb, err := ReadCSV(strings.NewReader(in), opt)
	require.NoError(t, err)
	require.Equal(t, 2, tb.Len())
	score, _ := tb.Column("Score")
	assert.Equal(t, []float64{10.5, 1000.25}, score.Floats())
}

func TestReadCSVFileNamesTableAndSniffsTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "growth.tsv")
	require.NoError(t, os.WriteFile(path, []byte("t\tod\n0\t0.1\n1\t0.2\n"), 0o644))
	tb, err := ReadCSVFile(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "growth.tsv", tb.Name)
	assert.Equal(t, []string{"t", "od"}, tb.Names())
}

func TestReadCSVEmpty(t *testing.T) {
	tb, err := ReadCSV(strings.NewReader(""), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, tb.Len())
	assert.Empty(t, tb.Names())
}

func TestWriteCSVRoundTrip(t *testing.T) {
	tb, err := New(
		NewText("variable", []string{"1", "2"}),
		NewNumeric("value", []float64{0.5, math.NaN()}),
	)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tb))
	assert.Equal(t, "variable,value\n1,0.5\n2,\n", buf.String())
}

func TestReadXLSXFile(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("Data")
	require.NoError(t, err)
	rows := [][]interface{}{
		{"variable", "value", "condition"},
		{1, 0.5, "wt"},
		{2, 0.7, "wt"},
		{1, 0.4, "mut"},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Data", cell, &r))
	}
	path := filepath.Join(t.TempDir(), "plate.xlsx")
	require.NoError(t, f.SaveAs(path))

	byName, err := ReadXLSXFile(path, "data", 0, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "plate.xlsx", byName.Name)
	assert.Equal(t, []string{"variable", "value", "condition"}, byName.Names())
	require.Equal(t, 3, byName.Len())
	val, _ := byName.Column("value")
	assert.Equal(t, KindNumeric, val.Kind())

	byIndex, err := ReadXLSXFile(path, "", 2, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, byName.Names(), byIndex.Names())

	_, err = ReadXLSXFile(path, "missing", 0, DefaultOptions())
	assert.Error(t, err)
	_, err = ReadXLSXFile(path, "", 9, DefaultOptions())
	assert.Error(t, err)
}
