package core

import "strconv"

// Table is an in-memory delimited text file: an ordered column-name list and
// rows stored as fixed-width value slices indexed positionally against it.
// Every cell is text; empty string stands in for null. Duplicate header
// names are preserved verbatim and handled positionally.
type Table struct {
	columns []string
	rows    [][]string
}

// NewTable creates an empty table with the given column sequence.
func NewTable(columns []string) *Table {
	return &Table{columns: append([]string(nil), columns...)}
}

// Columns returns a copy of the ordered column-name sequence.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.columns) }

// RowCount returns the number of data rows (excluding the header).
func (t *Table) RowCount() int { return len(t.rows) }

// Row returns the i-th row. The returned slice is the table's backing
// storage; callers must not modify it.
func (t *Table) Row(i int) []string { return t.rows[i] }

// Cell returns the value at (row, col).
func (t *Table) Cell(row, col int) string { return t.rows[row][col] }

// ColumnIndex returns the position of the first column with the given name,
// or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// AppendRow adds a row, padding missing trailing fields with empty strings.
// Rows wider than the column sequence are truncated; the reader rejects such
// rows before they reach a Table, so truncation only guards direct callers.
func (t *Table) AppendRow(row []string) {
	fixed := make([]string, len(t.columns))
	copy(fixed, row)
	t.rows = append(t.rows, fixed)
}

// withColumn returns a copy of the table with one extra column appended,
// filled uniformly with value. Used for provenance tagging; the receiver is
// left untouched so callers keep exclusive ownership of their inputs.
func (t *Table) withColumn(name, value string) *Table {
	out := &Table{
		columns: append(t.Columns(), name),
		rows:    make([][]string, len(t.rows)),
	}
	for i, row := range t.rows {
		r := make([]string, len(row)+1)
		copy(r, row)
		r[len(row)] = value
		out.rows[i] = r
	}
	return out
}

// selectColumns returns a copy restricted to the columns at the given
// positions, in the given order.
func (t *Table) selectColumns(positions []int) *Table {
	cols := make([]string, len(positions))
	for i, p := range positions {
		cols[i] = t.columns[p]
	}
	out := &Table{columns: cols, rows: make([][]string, len(t.rows))}
	for i, row := range t.rows {
		r := make([]string, len(positions))
		for j, p := range positions {
			r[j] = row[p]
		}
		out.rows[i] = r
	}
	return out
}

// dedupeRows returns a copy with exact duplicate rows removed, keeping the
// first occurrence. Two rows are duplicates when every cell matches.
func (t *Table) dedupeRows() *Table {
	out := &Table{columns: t.Columns()}
	seen := make(map[string]struct{}, len(t.rows))
	for _, row := range t.rows {
		key := rowKey(row)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out.rows = append(out.rows, row)
	}
	return out
}

// rowKey builds a collision-free map key from a row by length-prefixing each
// cell, so cell contents cannot fake a separator.
func rowKey(row []string) string {
	n := 0
	for _, c := range row {
		n += len(c) + 8
	}
	b := make([]byte, 0, n)
	for _, c := range row {
		b = strconv.AppendInt(b, int64(len(c)), 10)
		b = append(b, ':')
		b = append(b, c...)
	}
	return string(b)
}

// columnsEqual reports whether two column sequences are identical in both
// names and order.
func columnsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
