package core

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// WriteTable renders a table as delimited text encoded with the named
// encoding ("" or "auto" resolve to DefaultEncoding). The output starts with
// the header row and has no index column; fields are quoted only as needed
// to preserve delimiter, newline, and quote characters literally. Never
// fails for well-formed tables.
func WriteTable(t *Table, delim rune, encodingName string) ([]byte, error) {
	switch strings.ToLower(encodingName) {
	case "", "auto":
		encodingName = DefaultEncoding
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = delim

	if err := w.Write(t.columns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return encodeText(sb.String(), encodingName)
}
