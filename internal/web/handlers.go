package web

import "net/http"

// indexData feeds the merge form template.
type indexData struct {
	Mode            string
	How             string
	Delimiter       string
	Encoding        string
	AddSourceColumn bool
	Dedupe          bool
	MaxTotalSizeMB  int64
}

// handleIndex renders the merge form with the configured defaults.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Mode:            s.cfg.Merge.Mode,
		How:             s.cfg.Merge.How,
		Delimiter:       s.cfg.Merge.Delimiter,
		Encoding:        s.cfg.Merge.Encoding,
		AddSourceColumn: s.cfg.Merge.AddSourceColumn,
		Dedupe:          s.cfg.Merge.Dedupe,
		MaxTotalSizeMB:  s.cfg.Upload.MaxTotalSize / (1024 * 1024),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.index.Execute(w, data); err != nil {
		s.respondError(w, r, err)
	}
}

// handleHealthz reports liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
