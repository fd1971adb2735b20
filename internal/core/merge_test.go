package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkTable(t *testing.T, columns []string, rows ...[]string) *Table {
	t.Helper()
	table := NewTable(columns)
	for _, row := range rows {
		require.Len(t, row, len(columns))
		table.AppendRow(row)
	}
	return table
}

func smartOpts(how Strategy) MergeOptions {
	opts := DefaultMergeOptions()
	opts.Mode = ModeSmart
	opts.How = how
	return opts
}

func TestMerge_FastIdenticalColumns(t *testing.T) {
	a := mkTable(t, []string{"A", "B"}, []string{"1", "2"}, []string{"3", "4"})
	b := mkTable(t, []string{"A", "B"}, []string{"5", "6"}, []string{"7", "8"}, []string{"9", "10"})

	merged, err := Merge([]*Table{a, b}, []string{"a.csv", "b.csv"}, DefaultMergeOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B"}, merged.Columns())
	require.Equal(t, 5, merged.RowCount())
	// File order, then original row order within file.
	assert.Equal(t, []string{"1", "2"}, merged.Row(0))
	assert.Equal(t, []string{"5", "6"}, merged.Row(2))
	assert.Equal(t, []string{"9", "10"}, merged.Row(4))
}

func TestMerge_FastColumnOrderMismatch(t *testing.T) {
	a := mkTable(t, []string{"A", "B"}, []string{"1", "2"})
	b := mkTable(t, []string{"B", "A"}, []string{"2", "1"})

	_, err := Merge([]*Table{a, b}, []string{"a.csv", "b.csv"}, DefaultMergeOptions())

	var mismatch *SchemaMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 2, mismatch.FilePos)
	assert.Equal(t, "b.csv", mismatch.FileName)
	assert.Equal(t, []string{"A", "B"}, mismatch.Expected)
	assert.Equal(t, []string{"B", "A"}, mismatch.Found)
	assert.Contains(t, err.Error(), "#2")
}

func TestMerge_SmartUnion(t *testing.T) {
	a := mkTable(t, []string{"A", "B"}, []string{"a1", "b1"})
	b := mkTable(t, []string{"B", "C"}, []string{"b2", "c2"})

	merged, err := Merge([]*Table{a, b}, []string{"a.csv", "b.csv"}, smartOpts(HowUnion))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, merged.Columns())
	require.Equal(t, 2, merged.RowCount())
	assert.Equal(t, []string{"a1", "b1", ""}, merged.Row(0))
	assert.Equal(t, []string{"", "b2", "c2"}, merged.Row(1))
}

func TestMerge_SmartIntersection(t *testing.T) {
	a := mkTable(t, []string{"A", "B"}, []string{"a1", "b1"})
	b := mkTable(t, []string{"B", "C"}, []string{"b2", "c2"})

	merged, err := Merge([]*Table{a, b}, []string{"a.csv", "b.csv"}, smartOpts(HowIntersection))
	require.NoError(t, err)

	assert.Equal(t, []string{"B"}, merged.Columns())
	require.Equal(t, 2, merged.RowCount())
	assert.Equal(t, []string{"b1"}, merged.Row(0))
	assert.Equal(t, []string{"b2"}, merged.Row(1))
}

func TestMerge_SmartStrictMatchesFastErrorFormat(t *testing.T) {
	a := mkTable(t, []string{"A", "B"}, []string{"1", "2"})
	b := mkTable(t, []string{"B", "A"}, []string{"2", "1"})
	tables := []*Table{a, b}
	names := []string{"a.csv", "b.csv"}

	_, fastErr := Merge(tables, names, DefaultMergeOptions())
	_, strictErr := Merge(tables, names, smartOpts(HowStrict))

	require.Error(t, fastErr)
	require.Error(t, strictErr)
	assert.Equal(t, fastErr.Error(), strictErr.Error())
}

func TestMerge_SmartStrictIdenticalColumnsBehavesLikeFast(t *testing.T) {
	a := mkTable(t, []string{"A", "B"}, []string{"1", "2"})
	b := mkTable(t, []string{"A", "B"}, []string{"3", "4"})

	merged, err := Merge([]*Table{a, b}, []string{"a.csv", "b.csv"}, smartOpts(HowStrict))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, merged.Columns())
	assert.Equal(t, 2, merged.RowCount())
}

func TestMerge_Dedupe(t *testing.T) {
	a := mkTable(t, []string{"A", "B"},
		[]string{"1", "2"},
		[]string{"1", "2"},
		[]string{"1", "3"},
	)

	opts := smartOpts(HowUnion)
	opts.Dedupe = true

	merged, err := Merge([]*Table{a}, []string{"a.csv"}, opts)
	require.NoError(t, err)
	require.Equal(t, 2, merged.RowCount())
	assert.Equal(t, []string{"1", "2"}, merged.Row(0))
	assert.Equal(t, []string{"1", "3"}, merged.Row(1))
}

func TestMerge_DedupeAcrossFiles(t *testing.T) {
	a := mkTable(t, []string{"A"}, []string{"x"})
	b := mkTable(t, []string{"A"}, []string{"x"}, []string{"y"})

	opts := smartOpts(HowUnion)
	opts.Dedupe = true

	merged, err := Merge([]*Table{a, b}, []string{"a.csv", "b.csv"}, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, merged.RowCount())
}

func TestMerge_DedupeAppliesAfterIntersection(t *testing.T) {
	// Rows differ only in column A; after intersecting down to B they become
	// duplicates and collapse.
	a := mkTable(t, []string{"A", "B"}, []string{"1", "same"}, []string{"2", "same"})
	b := mkTable(t, []string{"B", "C"}, []string{"same", "c"})

	opts := smartOpts(HowIntersection)
	opts.Dedupe = true

	merged, err := Merge([]*Table{a, b}, []string{"a.csv", "b.csv"}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, merged.Columns())
	assert.Equal(t, 1, merged.RowCount())
}

func TestMerge_SourceColumn(t *testing.T) {
	a := mkTable(t, []string{"A"}, []string{"1"}, []string{"2"})
	b := mkTable(t, []string{"A"}, []string{"3"})

	for _, mode := range []Mode{ModeFast, ModeSmart} {
		opts := DefaultMergeOptions()
		opts.Mode = mode
		opts.AddSourceColumn = true

		merged, err := Merge([]*Table{a, b}, []string{"a.csv", "b.csv"}, opts)
		require.NoError(t, err, "mode %s", mode)

		idx := merged.ColumnIndex(SourceColumn)
		require.GreaterOrEqual(t, idx, 0, "mode %s", mode)
		assert.Equal(t, "a.csv", merged.Cell(0, idx))
		assert.Equal(t, "a.csv", merged.Cell(1, idx))
		assert.Equal(t, "b.csv", merged.Cell(2, idx))
	}
}

func TestMerge_SourceColumnDoesNotMutateInputs(t *testing.T) {
	a := mkTable(t, []string{"A"}, []string{"1"})
	opts := DefaultMergeOptions()
	opts.AddSourceColumn = true

	_, err := Merge([]*Table{a}, []string{"a.csv"}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, a.Columns())
	assert.Equal(t, []string{"1"}, a.Row(0))
}

func TestMerge_SourceColumnParticipatesInSchemaCheck(t *testing.T) {
	// Identical data columns plus uniform tagging still pass the fast check:
	// both tables gain _source_file in the same position.
	a := mkTable(t, []string{"A"}, []string{"1"})
	b := mkTable(t, []string{"A"}, []string{"2"})

	opts := DefaultMergeOptions()
	opts.AddSourceColumn = true

	merged, err := Merge([]*Table{a, b}, []string{"a.csv", "b.csv"}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", SourceColumn}, merged.Columns())
}

func TestMerge_UnionWithDuplicateColumnNames(t *testing.T) {
	a := mkTable(t, []string{"A", "A"}, []string{"1", "2"})
	b := mkTable(t, []string{"A"}, []string{"3"})

	merged, err := Merge([]*Table{a, b}, []string{"a.csv", "b.csv"}, smartOpts(HowUnion))
	require.NoError(t, err)

	// Duplicate names stay distinct positionally; b's single A maps to the
	// first occurrence.
	assert.Equal(t, []string{"A", "A"}, merged.Columns())
	assert.Equal(t, []string{"1", "2"}, merged.Row(0))
	assert.Equal(t, []string{"3", ""}, merged.Row(1))
}

func TestMerge_UsageErrors(t *testing.T) {
	a := mkTable(t, []string{"A"}, []string{"1"})

	var usage *UsageError

	_, err := Merge(nil, nil, DefaultMergeOptions())
	require.ErrorAs(t, err, &usage)

	_, err = Merge([]*Table{a}, []string{"a.csv", "extra"}, DefaultMergeOptions())
	require.ErrorAs(t, err, &usage)

	opts := DefaultMergeOptions()
	opts.Mode = "turbo"
	_, err = Merge([]*Table{a}, []string{"a.csv"}, opts)
	require.ErrorAs(t, err, &usage)

	_, err = Merge([]*Table{a}, []string{"a.csv"}, smartOpts("outer-join"))
	require.ErrorAs(t, err, &usage)
}

func TestMerge_Deterministic(t *testing.T) {
	a := mkTable(t, []string{"A", "B"}, []string{"1", "2"})
	b := mkTable(t, []string{"C", "B"}, []string{"3", "4"})
	c := mkTable(t, []string{"D"}, []string{"5"})
	tables := []*Table{a, b, c}
	names := []string{"a.csv", "b.csv", "c.csv"}

	first, err := Merge(tables, names, smartOpts(HowUnion))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, first.Columns())

	for i := 0; i < 10; i++ {
		again, err := Merge(tables, names, smartOpts(HowUnion))
		require.NoError(t, err)
		assert.Equal(t, first.Columns(), again.Columns())
		for r := 0; r < first.RowCount(); r++ {
			assert.Equal(t, first.Row(r), again.Row(r))
		}
	}
}
