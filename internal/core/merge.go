package core

import "fmt"

// Merge combines N tables into one according to opts. tables and names must
// have the same length; names are the display names used for provenance
// tagging and error messages. Inputs are never mutated.
//
// The merge is total and deterministic: identical inputs and options always
// produce the identical table, and row order is file order, then original
// row order within each file.
func Merge(tables []*Table, names []string, opts MergeOptions) (*Table, error) {
	if len(tables) == 0 {
		return nil, &UsageError{Message: "no tables to merge"}
	}
	if len(tables) != len(names) {
		return nil, &UsageError{
			Message: fmt.Sprintf("tables/names length mismatch: %d tables, %d names", len(tables), len(names)),
		}
	}

	// Provenance tagging happens before any schema check so _source_file
	// participates in column-sequence comparison like any other column.
	if opts.AddSourceColumn {
		tagged := make([]*Table, len(tables))
		for i, t := range tables {
			tagged[i] = t.withColumn(SourceColumn, names[i])
		}
		tables = tagged
	}

	switch opts.Mode {
	case ModeFast:
		if err := requireIdenticalColumns(tables, names); err != nil {
			return nil, err
		}
		return concatIdentical(tables), nil

	case ModeSmart:
		merged := concatUnion(tables)
		switch opts.How {
		case HowUnion:
			// The concatenation result stands.
		case HowIntersection:
			merged = merged.selectColumns(intersectionPositions(tables, merged))
		case HowStrict:
			if err := requireIdenticalColumns(tables, names); err != nil {
				return nil, err
			}
		default:
			return nil, &UsageError{
				Message: fmt.Sprintf("unknown how %q (expected union, intersection, or strict)", opts.How),
			}
		}
		if opts.Dedupe {
			merged = merged.dedupeRows()
		}
		return merged, nil

	default:
		return nil, &UsageError{
			Message: fmt.Sprintf("unknown mode %q (expected fast or smart)", opts.Mode),
		}
	}
}

// requireIdenticalColumns enforces that every table's column sequence is
// byte-identical to the first table's. Fast mode and the strict strategy
// share this check so both produce the identical error format.
func requireIdenticalColumns(tables []*Table, names []string) error {
	first := tables[0].columns
	for i, t := range tables[1:] {
		if !columnsEqual(t.columns, first) {
			return &SchemaMismatchError{
				FilePos:  i + 2,
				FileName: names[i+1],
				Expected: append([]string(nil), first...),
				Found:    t.Columns(),
			}
		}
	}
	return nil
}

// concatIdentical concatenates tables whose column sequences are already
// known to match, preserving the first table's column order.
func concatIdentical(tables []*Table) *Table {
	out := NewTable(tables[0].columns)
	total := 0
	for _, t := range tables {
		total += len(t.rows)
	}
	out.rows = make([][]string, 0, total)
	for _, t := range tables {
		out.rows = append(out.rows, t.rows...)
	}
	return out
}

// columnKey identifies a column by name and occurrence, so duplicate header
// names stay distinct positionally instead of collapsing in the union.
type columnKey struct {
	name string
	nth  int
}

// concatUnion concatenates all rows into a table whose column set is the
// union of all input columns in first-seen order across files. Rows missing
// a union column get the empty string for it.
func concatUnion(tables []*Table) *Table {
	var unionCols []string
	unionPos := make(map[columnKey]int)

	for _, t := range tables {
		occurrence := make(map[string]int)
		for _, name := range t.columns {
			key := columnKey{name: name, nth: occurrence[name]}
			occurrence[name]++
			if _, ok := unionPos[key]; !ok {
				unionPos[key] = len(unionCols)
				unionCols = append(unionCols, name)
			}
		}
	}

	out := NewTable(unionCols)
	for _, t := range tables {
		// Map each source column to its union position.
		mapping := make([]int, len(t.columns))
		occurrence := make(map[string]int)
		for i, name := range t.columns {
			key := columnKey{name: name, nth: occurrence[name]}
			occurrence[name]++
			mapping[i] = unionPos[key]
		}
		for _, row := range t.rows {
			wide := make([]string, len(unionCols))
			for i, v := range row {
				wide[mapping[i]] = v
			}
			out.rows = append(out.rows, wide)
		}
	}
	return out
}

// intersectionPositions returns the positions (in union order) of the merged
// table's columns whose names appear in every input table.
func intersectionPositions(tables []*Table, merged *Table) []int {
	common := make(map[string]bool)
	for _, name := range tables[0].columns {
		common[name] = true
	}
	for _, t := range tables[1:] {
		present := make(map[string]bool, len(t.columns))
		for _, name := range t.columns {
			present[name] = true
		}
		for name := range common {
			if !present[name] {
				delete(common, name)
			}
		}
	}

	var positions []int
	for i, name := range merged.columns {
		if common[name] {
			positions = append(positions, i)
		}
	}
	return positions
}
