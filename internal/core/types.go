package core

import (
	"fmt"
	"strings"
)

// Mode is the top-level merge strategy.
type Mode string

const (
	// ModeFast requires every input to have the exact column sequence of the
	// first input and simply concatenates rows.
	ModeFast Mode = "fast"

	// ModeSmart reconciles diverging column sets according to a Strategy.
	ModeSmart Mode = "smart"
)

// Strategy is the smart-mode column-set policy.
type Strategy string

const (
	// HowUnion keeps the union of all input columns (default).
	HowUnion Strategy = "union"

	// HowIntersection keeps only columns present in every input.
	HowIntersection Strategy = "intersection"

	// HowStrict validates identical column sequences, like fast mode.
	HowStrict Strategy = "strict"
)

// SourceColumn is the provenance column recording each row's originating file.
const SourceColumn = "_source_file"

// DelimiterOption is either an explicit field delimiter or "auto".
// The auto sentinel is resolved per file by DetectDelimiter; it is never
// re-checked as a string downstream.
type DelimiterOption struct {
	delim rune
	auto  bool
}

// AutoDelimiter returns the option that triggers per-file detection.
func AutoDelimiter() DelimiterOption { return DelimiterOption{auto: true} }

// ExplicitDelimiter returns an option fixed to the given rune.
func ExplicitDelimiter(r rune) DelimiterOption { return DelimiterOption{delim: r} }

// IsAuto reports whether the delimiter should be detected per file.
func (o DelimiterOption) IsAuto() bool { return o.auto }

// Rune returns the explicit delimiter. Only meaningful when !IsAuto().
func (o DelimiterOption) Rune() rune { return o.delim }

// String renders the option for display ("auto", ",", "\t", ...).
func (o DelimiterOption) String() string {
	if o.auto {
		return "auto"
	}
	return string(o.delim)
}

// ParseDelimiterOption parses a user-supplied delimiter token.
// Recognized: "auto" or empty (detection), ",", ";", "|", a literal tab, or
// the two-character escape "\t" as sent by HTML forms and shells.
func ParseDelimiterOption(s string) (DelimiterOption, error) {
	switch s {
	case "", "auto":
		return AutoDelimiter(), nil
	case ",", ";", "|", "\t":
		return ExplicitDelimiter(rune(s[0])), nil
	case `\t`:
		return ExplicitDelimiter('\t'), nil
	default:
		return DelimiterOption{}, &UsageError{
			Message: fmt.Sprintf("unknown delimiter %q (expected auto, ',', ';', tab, or '|')", s),
		}
	}
}

// EncodingOption is either an explicit encoding name or "auto".
type EncodingOption struct {
	name string
	auto bool
}

// AutoEncoding returns the option that tries the full fallback list.
func AutoEncoding() EncodingOption { return EncodingOption{auto: true} }

// ExplicitEncoding returns an option fixed to the given encoding name.
// The name must be one of the recognized encodings (see ParseEncodingOption).
func ExplicitEncoding(name string) EncodingOption {
	return EncodingOption{name: strings.ToLower(name)}
}

// IsAuto reports whether the fallback list should be used as-is.
func (o EncodingOption) IsAuto() bool { return o.auto }

// Name returns the explicit encoding name. Only meaningful when !IsAuto().
func (o EncodingOption) Name() string { return o.name }

// String renders the option for display.
func (o EncodingOption) String() string {
	if o.auto {
		return "auto"
	}
	return o.name
}

// ParseEncodingOption parses a user-supplied encoding token.
// Recognized (case-insensitive): "auto" or empty, "utf-8-sig", "utf-8",
// "cp1252", "latin1".
func ParseEncodingOption(s string) (EncodingOption, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch lower {
	case "", "auto":
		return AutoEncoding(), nil
	case EncodingUTF8SIG, EncodingUTF8, EncodingCP1252, EncodingLatin1:
		return EncodingOption{name: lower}, nil
	default:
		return EncodingOption{}, &UsageError{
			Message: fmt.Sprintf("unknown encoding %q (expected auto, utf-8-sig, utf-8, cp1252, or latin1)", s),
		}
	}
}

// ParseMode validates a mode token.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeFast:
		return ModeFast, nil
	case ModeSmart:
		return ModeSmart, nil
	default:
		return "", &UsageError{Message: fmt.Sprintf("unknown mode %q (expected fast or smart)", s)}
	}
}

// ParseStrategy validates a how token.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case HowUnion:
		return HowUnion, nil
	case HowIntersection:
		return HowIntersection, nil
	case HowStrict:
		return HowStrict, nil
	default:
		return "", &UsageError{Message: fmt.Sprintf("unknown how %q (expected union, intersection, or strict)", s)}
	}
}

// MergeOptions is the immutable configuration snapshot for one merge
// invocation.
type MergeOptions struct {
	Mode            Mode
	How             Strategy // meaningful only under ModeSmart
	Delimiter       DelimiterOption
	Encoding        EncodingOption
	AddSourceColumn bool
	Dedupe          bool // meaningful only under ModeSmart
}

// DefaultMergeOptions returns the documented defaults: fast mode, union
// strategy, auto-detected delimiter and encoding, no provenance column,
// no deduplication.
func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		Mode:      ModeFast,
		How:       HowUnion,
		Delimiter: AutoDelimiter(),
		Encoding:  AutoEncoding(),
	}
}

// Input is one raw file handed to the pipeline: an immutable byte buffer
// plus a display name used for provenance tagging and error messages.
type Input struct {
	Name string
	Data []byte
}

// FileDetection records what the detector and reader decided for one input.
type FileDetection struct {
	Name      string `json:"name"`
	Delimiter string `json:"delimiter"`
	Encoding  string `json:"encoding"`
}

// MergeResult is the merged table plus the metadata front ends display.
type MergeResult struct {
	Table      *Table
	Detections []FileDetection

	// OutputDelimiter and OutputEncoding are what the serializer used.
	OutputDelimiter rune
	OutputEncoding  string

	// Output is the serialized merged table.
	Output []byte
}

// Rows returns the final row count of the merged table.
func (r *MergeResult) Rows() int { return r.Table.RowCount() }

// Columns returns the final column count of the merged table.
func (r *MergeResult) Columns() int { return r.Table.ColumnCount() }
