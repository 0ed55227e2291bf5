package web

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/JonMunkholm/RegionAnalyzer/internal/core"
	"github.com/JonMunkholm/RegionAnalyzer/internal/logging"
)

// uploadField is the multipart form field carrying the CSV.
const uploadField = "file"

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string             `json:"status"`
	Analyses core.LimiterStatus `json:"analyses"`
}

// handleAnalyze aggregates an uploaded CSV by region.
// The file part is streamed straight into the summarizer; memory stays
// proportional to the number of distinct regions regardless of file size.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Analysis.MaxFileSize)

	part, err := openUpload(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	defer part.Close()

	analysis, err := s.service.Analyze(r.Context(), part.FileName(), part)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Debug("analysis served",
		"analysis_id", analysis.ID,
		"regions", len(analysis.Regions),
	)

	w.Header().Set("X-Analysis-ID", analysis.ID)
	writeJSON(w, r, http.StatusOK, analysis.Report())
}

// openUpload advances the multipart body to the file part. Parts before it
// are skipped; parts after it are never read.
func openUpload(r *http.Request) (*multipart.Part, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidForm, err)
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			return nil, errNoFile
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errInvalidForm, err)
		}
		if part.FormName() == uploadField {
			return part, nil
		}
		part.Close()
	}
}

// handleHealth reports liveness and analysis slot usage.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, HealthResponse{
		Status:   "ok",
		Analyses: s.service.LimiterStatus(),
	})
}
