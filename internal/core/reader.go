package core

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ReadTable decodes raw bytes into a Table using the given delimiter and
// ordered encoding-attempt list, returning the encoding that succeeded.
//
// Candidates are tried in order with strict decoding; the first that decodes
// cleanly is used. If every candidate fails, a final pass decodes with the
// last candidate replacing undecodable bytes, which cannot fail on decoding.
// A structural parse failure (for example an unterminated quote, or a data
// row wider than the header) is fatal: no further remediation is defined.
//
// Every field is kept as text. Missing trailing fields become empty strings.
// Header row values become column names verbatim; duplicate names are
// preserved as-is for downstream positional handling.
func ReadTable(data []byte, delim rune, encodings []string) (*Table, string, error) {
	if len(encodings) == 0 {
		encodings = EncodingCandidates(AutoEncoding())
	}

	text := ""
	used := ""
	for _, enc := range encodings {
		decoded, err := decodeStrict(data, enc)
		if err != nil {
			continue
		}
		text, used = decoded, enc
		break
	}
	if used == "" {
		last := encodings[len(encodings)-1]
		text, used = decodeReplace(data, last), last
	}

	table, err := parseDelimited(text, delim)
	if err != nil {
		return nil, "", &DecodeError{Encodings: append([]string(nil), encodings...), Cause: err}
	}
	return table, used, nil
}

// parseDelimited parses decoded text as delimited rows with a header line.
func parseDelimited(text string, delim rune) (*Table, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty input: no header row")
	}
	if err != nil {
		return nil, err
	}

	table := NewTable(header)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) > len(header) {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("line %d: row has %d fields, header has %d", line, len(record), len(header))
		}
		table.AppendRow(record)
	}
	return table, nil
}
