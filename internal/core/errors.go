package core

import (
	"fmt"
	"strings"
)

// UsageError reports an invalid configuration or call: unknown mode/how
// values, mismatched table/name list lengths, no files supplied. Always
// fatal; surfaced verbatim to the caller before any output is produced.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

// SchemaMismatchError reports a column-sequence mismatch under fast mode or
// the strict strategy. It carries structured context so callers can render
// an actionable message. FilePos is the 1-based position of the offending
// file in the input list (the second file is #2).
type SchemaMismatchError struct {
	FilePos  int
	FileName string
	Expected []string
	Found    []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf(
		"identical column order required.\nmismatch in file #%d: %s\nexpected: [%s]\nfound: [%s]\nhint: use smart mode with how=union",
		e.FilePos,
		e.FileName,
		strings.Join(e.Expected, ", "),
		strings.Join(e.Found, ", "),
	)
}

// DecodeError reports that a file's bytes could not be turned into a table:
// either the byte-replacement pass produced text that cannot be structurally
// parsed (Cause is the parse error), or, in theory, every candidate encoding
// failed to decode. Fatal for the whole merge; there is no partial-success
// mode across files.
//
// FileName is filled in by the Service; ReadTable itself is a pure function
// of bytes and does not know the display name.
type DecodeError struct {
	FileName  string
	Encodings []string
	Cause     error
}

func (e *DecodeError) Error() string {
	name := e.FileName
	if name == "" {
		name = "input"
	}
	if e.Cause != nil {
		return fmt.Sprintf("file %s: malformed delimited text (tried encodings %s): %v",
			name, strings.Join(e.Encodings, ", "), e.Cause)
	}
	return fmt.Sprintf("file %s: cannot decode with any of %s",
		name, strings.Join(e.Encodings, ", "))
}

func (e *DecodeError) Unwrap() error { return e.Cause }
