package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/qualifab/fieldentry/internal/core"
	"github.com/qualifab/fieldentry/internal/logging"
)

// xlsxContentType is the MIME type for .xlsx downloads.
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleLoadDocument ingests a new source extract from a multipart upload
// and replaces the current document wholesale. A failed load leaves the
// prior document untouched.
func (s *Server) handleLoadDocument(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestMetadata(r.Context(), r)
	logger := logging.FromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Workbook.MaxFileSize)
	if err := r.ParseMultipartForm(s.cfg.Workbook.MaxFileSize); err != nil {
		s.respondError(w, r, fmt.Errorf("file too large or malformed upload: %w", err), http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, errors.New("no file provided"), http.StatusBadRequest)
		return
	}
	defer file.Close()

	summary, err := s.service.Load(ctx, file, header.Filename)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	logger.Info("document loaded",
		"document_id", summary.ID,
		"source", summary.Source,
		"sheet", summary.Sheet,
		"rows", summary.Rows,
		"excluded", summary.Excluded,
	)
	writeJSON(w, summary)
}

// handleDocument returns the current document summary.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.Current()
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, summary)
}

// handleJobs lists the jobs of the working set in first-appearance order.
func (s *Server) handleJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.service.Jobs()
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, map[string][]string{"jobs": jobs})
}

// handleJobView returns the grouped editable view for one job.
func (s *Server) handleJobView(w http.ResponseWriter, r *http.Request) {
	job := chi.URLParam(r, "job")
	if decoded, err := url.PathUnescape(job); err == nil {
		job = decoded
	}

	operations, err := s.service.JobView(job)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, map[string]interface{}{
		"job":        job,
		"operations": operations,
	})
}

// formatDateTimeRequest is the body for POST /api/datetime/format.
type formatDateTimeRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM
}

// handleFormatDateTime encodes a date/time pair into the DateTermine text
// the shell submits as an edit value.
func (s *Server) handleFormatDateTime(w http.ResponseWriter, r *http.Request) {
	var req formatDateTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("decode request: %w", err), http.StatusBadRequest)
		return
	}
	value, err := s.service.FormatCompletionValue(req.Date, req.Time)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]string{"value": value})
}

// editPayload is one pending edit in the wire format: a replacement value or
// an explicit clear.
type editPayload struct {
	Value string `json:"value"`
	Clear bool   `json:"clear"`
}

// applyEditsRequest is the body for POST /api/edits. Keys are original
// positions, so edits land on the right rows no matter how the shell has
// regrouped them for display.
type applyEditsRequest struct {
	Edits map[string]editPayload `json:"edits"`
}

// handleApplyEdits reconciles pending edits into the working table.
func (s *Server) handleApplyEdits(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestMetadata(r.Context(), r)

	var req applyEditsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("decode request: %w", err), http.StatusBadRequest)
		return
	}

	edits := make(core.PendingEdits, len(req.Edits))
	for key, p := range req.Edits {
		pos, err := strconv.Atoi(key)
		if err != nil {
			s.respondError(w, r, fmt.Errorf("invalid edit position %q", key), http.StatusBadRequest)
			return
		}
		edits[pos] = core.Edit{Value: p.Value, Clear: p.Clear}
	}

	applied, err := s.service.ApplyEdits(ctx, edits)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, map[string]int{
		"submitted": len(edits),
		"applied":   applied,
	})
}

// saveRequest is the body for POST /api/save.
type saveRequest struct {
	Path string `json:"path"`
}

// handleSave writes the full export to disk at the normalized path.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx := withRequestMetadata(r.Context(), r)

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, fmt.Errorf("decode request: %w", err), http.StatusBadRequest)
		return
	}

	resolved, err := s.service.Save(ctx, req.Path)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, map[string]string{"path": resolved})
}

// handleExport downloads the full export.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	s.serveExport(w, r, s.service.ExportBytes)
}

// handleExportFilled downloads the filled-only export.
func (s *Server) handleExportFilled(w http.ResponseWriter, r *http.Request) {
	s.serveExport(w, r, s.service.ExportFilledBytes)
}

func (s *Server) serveExport(w http.ResponseWriter, r *http.Request,
	render func(ctx context.Context) ([]byte, string, error)) {
	ctx := withRequestMetadata(r.Context(), r)

	data, name, err := render(ctx)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// handleAuditLog returns the newest audit entries.
func (s *Server) handleAuditLog(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := s.service.RecentAudit(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []core.AuditEntry{}
	}
	writeJSON(w, map[string]interface{}{
		"enabled": s.service.AuditEnabled(),
		"entries": entries,
	})
}
