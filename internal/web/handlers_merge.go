package web

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/csvmerge/csvmerge/internal/core"
	"github.com/csvmerge/csvmerge/internal/logging"
	"github.com/go-chi/chi/v5"
)

// mergeResponse is the JSON body returned by a successful merge.
type mergeResponse struct {
	MergeID    string               `json:"merge_id"`
	Rows       int                  `json:"rows"`
	Columns    int                  `json:"columns"`
	Delimiter  string               `json:"delimiter"`
	Encoding   string               `json:"encoding"`
	Detections []core.FileDetection `json:"detections"`
	Preview    previewData          `json:"preview"`
}

// previewData is a bounded slice of the merged table for display.
type previewData struct {
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
	Truncated bool       `json:"truncated"`
}

// handleMerge accepts a multipart upload of delimited files plus merge
// options, runs the merge, and returns detection results, a preview, and a
// download token. Files are fully materialized in memory; the configured
// total-size cap bounds that.
func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	// Allow some slack over the data cap for multipart framing; the service
	// enforces the exact payload limit.
	maxBody := s.cfg.Upload.MaxTotalSize + 1<<20
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large or invalid form")
		return
	}

	opts, err := s.parseMergeOptions(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	if len(files) > s.cfg.Upload.MaxFiles {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("too many files: %d (limit %d)", len(files), s.cfg.Upload.MaxFiles))
		return
	}

	inputs := make([]core.Input, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			s.respondError(w, r, fmt.Errorf("open upload %q: %w", fh.Filename, err))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			s.respondError(w, r, fmt.Errorf("read upload %q: %w", fh.Filename, err))
			return
		}
		inputs = append(inputs, core.Input{Name: fh.Filename, Data: data})
	}

	result, err := s.service.Merge(r.Context(), inputs, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	mergeID := s.results.Put(&storedResult{
		data:      result.Output,
		delimiter: string(result.OutputDelimiter),
		encoding:  result.OutputEncoding,
		rows:      result.Rows(),
		cols:      result.Columns(),
	})

	logging.FromContext(r.Context()).Info("merge stored",
		"merge_id", mergeID,
		"files", len(inputs),
		"rows", result.Rows(),
		"cols", result.Columns(),
	)

	writeJSON(w, mergeResponse{
		MergeID:    mergeID,
		Rows:       result.Rows(),
		Columns:    result.Columns(),
		Delimiter:  string(result.OutputDelimiter),
		Encoding:   result.OutputEncoding,
		Detections: result.Detections,
		Preview:    buildPreview(result.Table, s.cfg.Upload.PreviewRows),
	})
}

// handleDownload streams a stored merge result as a CSV attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	mergeID := chi.URLParam(r, "mergeID")
	if mergeID == "" {
		writeError(w, http.StatusBadRequest, "missing merge ID")
		return
	}

	res, ok := s.results.Get(mergeID)
	if !ok {
		writeError(w, http.StatusNotFound, "merge result not found or expired")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="merged.csv"`)
	w.Write(res.data)
}

// parseMergeOptions builds MergeOptions from form values, falling back to
// the configured defaults for absent fields.
func (s *Server) parseMergeOptions(r *http.Request) (core.MergeOptions, error) {
	formOr := func(key, def string) string {
		if v := r.FormValue(key); v != "" {
			return v
		}
		return def
	}

	mode, err := core.ParseMode(formOr("mode", s.cfg.Merge.Mode))
	if err != nil {
		return core.MergeOptions{}, err
	}
	how, err := core.ParseStrategy(formOr("how", s.cfg.Merge.How))
	if err != nil {
		return core.MergeOptions{}, err
	}
	delim, err := core.ParseDelimiterOption(formOr("delimiter", s.cfg.Merge.Delimiter))
	if err != nil {
		return core.MergeOptions{}, err
	}
	enc, err := core.ParseEncodingOption(formOr("encoding", s.cfg.Merge.Encoding))
	if err != nil {
		return core.MergeOptions{}, err
	}

	return core.MergeOptions{
		Mode:            mode,
		How:             how,
		Delimiter:       delim,
		Encoding:        enc,
		AddSourceColumn: parseBoolForm(r.FormValue("add_source_column"), s.cfg.Merge.AddSourceColumn),
		Dedupe:          parseBoolForm(r.FormValue("dedupe"), s.cfg.Merge.Dedupe),
	}, nil
}

// parseBoolForm interprets checkbox-style form values; absent means default.
func parseBoolForm(value string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return def
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

// buildPreview copies up to limit rows of the merged table.
func buildPreview(t *core.Table, limit int) previewData {
	n := t.RowCount()
	truncated := false
	if limit > 0 && n > limit {
		n = limit
		truncated = true
	}

	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		rows[i] = append([]string(nil), t.Row(i)...)
	}

	return previewData{
		Columns:   t.Columns(),
		Rows:      rows,
		Truncated: truncated,
	}
}
