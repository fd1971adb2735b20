package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/csvmerge/csvmerge/internal/logging"
)

// Service runs the full merge pipeline for a set of raw inputs. It holds no
// mutable state: every call operates on its own tables and options, so
// independent merges may run concurrently without synchronization.
type Service struct {
	// maxTotalSize caps the combined byte size of all inputs per merge.
	// Zero means unlimited (the CLI reads from the local filesystem and
	// enforces no cap; the web front end configures one).
	maxTotalSize int64
}

// NewService creates a Service with the given total-input-size cap in bytes.
// Pass 0 for no cap.
func NewService(maxTotalSize int64) *Service {
	return &Service{maxTotalSize: maxTotalSize}
}

// Merge runs detect → read → merge → serialize over the inputs and returns
// the merged table, per-file detection results, and the serialized output.
// Serialization happens only after the full merge succeeds; no partial
// output is ever produced.
//
// The output delimiter is the explicit option if set, else the first input's
// detected delimiter; the output encoding is the explicit option if set,
// else DefaultEncoding.
func (s *Service) Merge(ctx context.Context, inputs []Input, opts MergeOptions) (*MergeResult, error) {
	if len(inputs) == 0 {
		return nil, &UsageError{Message: "no input files supplied"}
	}
	if s.maxTotalSize > 0 {
		var total int64
		for _, in := range inputs {
			total += int64(len(in.Data))
		}
		if total > s.maxTotalSize {
			return nil, &UsageError{
				Message: fmt.Sprintf("combined input size %d bytes exceeds limit of %d bytes", total, s.maxTotalSize),
			}
		}
	}

	logger := logging.FromContext(ctx)
	encodings := EncodingCandidates(opts.Encoding)

	tables := make([]*Table, len(inputs))
	names := make([]string, len(inputs))
	detections := make([]FileDetection, len(inputs))

	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		delim := DetectDelimiter(in.Data, opts.Delimiter)
		table, usedEncoding, err := ReadTable(in.Data, delim, encodings)
		if err != nil {
			var de *DecodeError
			if errors.As(err, &de) && de.FileName == "" {
				de.FileName = in.Name
			}
			return nil, err
		}

		tables[i] = table
		names[i] = in.Name
		detections[i] = FileDetection{
			Name:      in.Name,
			Delimiter: string(delim),
			Encoding:  usedEncoding,
		}
		logger.Debug("file read",
			"file", in.Name,
			"delimiter", string(delim),
			"encoding", usedEncoding,
			"rows", table.RowCount(),
			"cols", table.ColumnCount(),
		)
	}

	merged, err := Merge(tables, names, opts)
	if err != nil {
		return nil, err
	}

	outDelim := outputDelimiter(opts.Delimiter, detections)
	outEncoding := ResolveOutputEncoding(opts.Encoding)

	output, err := WriteTable(merged, outDelim, outEncoding)
	if err != nil {
		return nil, err
	}

	logger.Info("merge complete",
		"files", len(inputs),
		"rows", merged.RowCount(),
		"cols", merged.ColumnCount(),
		"mode", string(opts.Mode),
		"delimiter", string(outDelim),
		"encoding", outEncoding,
	)

	return &MergeResult{
		Table:           merged,
		Detections:      detections,
		OutputDelimiter: outDelim,
		OutputEncoding:  outEncoding,
		Output:          output,
	}, nil
}

// outputDelimiter resolves the serialization delimiter: explicit option,
// else the first file's detected delimiter, else the default.
func outputDelimiter(opt DelimiterOption, detections []FileDetection) rune {
	if !opt.IsAuto() {
		return opt.Rune()
	}
	if len(detections) > 0 && detections[0].Delimiter != "" {
		return []rune(detections[0].Delimiter)[0]
	}
	return DefaultDelimiter
}
