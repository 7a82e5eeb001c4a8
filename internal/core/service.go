package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TableCodec is the boundary to the concrete tabular container format.
// Read returns the first sheet's contents (header row first) plus its name;
// Write serializes one table under one sheet label.
type TableCodec interface {
	Read(r io.Reader) (records [][]string, sheet string, err error)
	Write(w io.Writer, sheet string, columns []string, rows [][]string) error
}

// Options configures session behavior.
type Options struct {
	// DefaultHour/DefaultMinute is the time-of-day suggested for a
	// completion date when no prior value exists (the shop closes entry at
	// 15:00, hence the default).
	DefaultHour   int
	DefaultMinute int

	// FilledPrefix is prepended to the filled-only export's file name.
	FilledPrefix string

	// DefaultFileName is used when a destination can't be derived from the
	// loaded source.
	DefaultFileName string
}

// document is the single current-document slot: the working table plus its
// identity. It is replaced wholesale on every successful load and never
// merged with a predecessor.
type document struct {
	id       string
	source   string // original file name of the extract
	table    *WorkingTable
	loadedAt time.Time
}

// Service is the session facade over the core: one document slot, loaded,
// edited, saved and exported through discrete synchronous calls. The mutex
// only guards against concurrent HTTP handlers; the core computations
// themselves are pure and non-blocking.
type Service struct {
	codec TableCodec
	audit *AuditService // nil disables auditing
	opts  Options
	now   func() time.Time

	mu  sync.RWMutex
	doc *document
}

// NewService creates a session service. audit may be nil.
func NewService(codec TableCodec, audit *AuditService, opts Options) *Service {
	if opts.DefaultFileName == "" {
		opts.DefaultFileName = "workorders" + WorkbookExt
	}
	return &Service{
		codec: codec,
		audit: audit,
		opts:  opts,
		now:   time.Now,
	}
}

// DocumentSummary describes the current document to the shell.
type DocumentSummary struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	Sheet    string    `json:"sheet"`
	Columns  []string  `json:"columns"`
	Rows     int       `json:"rows"`
	Excluded int       `json:"excluded"`
	Jobs     []string  `json:"jobs"`
	LoadedAt time.Time `json:"loadedAt"`
}

// Load ingests a new source extract and replaces the document slot
// wholesale. On any failure (unreadable workbook, missing columns) the prior
// document, if any, is left untouched.
func (s *Service) Load(ctx context.Context, r io.Reader, source string) (DocumentSummary, error) {
	records, sheet, err := s.codec.Read(r)
	if err != nil {
		return DocumentSummary{}, err
	}
	table, err := NewWorkingTable(records, sheet)
	if err != nil {
		return DocumentSummary{}, err
	}

	doc := &document{
		id:       uuid.New().String(),
		source:   source,
		table:    table,
		loadedAt: s.now(),
	}

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()

	s.recordAudit(ctx, AuditEntry{
		Action:       ActionLoad,
		DocumentID:   doc.id,
		Sheet:        sheet,
		Source:       source,
		RowsAffected: len(table.Rows),
		Detail:       fmt.Sprintf("kept %d rows, excluded %d", len(table.Rows), table.Excluded),
	})
	return summarize(doc), nil
}

// Current returns the summary of the loaded document, or ErrNoDocument.
func (s *Service) Current() (DocumentSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return DocumentSummary{}, ErrNoDocument
	}
	return summarize(s.doc), nil
}

// Jobs returns the job keys of the working set in first-appearance order.
func (s *Service) Jobs() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, ErrNoDocument
	}
	return s.doc.table.Jobs(), nil
}

// DateEntry is the shell's view of one operation's completion-date rows:
// the positions an entry fans out to, the raw existing value if any, and the
// date/time the shell should pre-fill (decoded from the existing value, or
// today plus the configured default time).
type DateEntry struct {
	Positions []int  `json:"positions"`
	Existing  string `json:"existing,omitempty"`
	Applied   bool   `json:"applied"`
	Date      string `json:"date"` // YYYY-MM-DD
	Time      string `json:"time"` // HH:MM
}

// OperationEntry is the grouped editable view of one operation for the shell.
type OperationEntry struct {
	OperationCode string       `json:"operationCode"`
	Date          *DateEntry   `json:"date,omitempty"`
	Fields        []FieldGroup `json:"fields"`
}

// JobView builds the editable view for one job, resolving date defaults.
func (s *Service) JobView(job string) ([]OperationEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.doc == nil {
		return nil, ErrNoDocument
	}

	views := s.doc.table.JobView(job)
	entries := make([]OperationEntry, 0, len(views))
	for _, v := range views {
		entry := OperationEntry{OperationCode: v.OperationCode, Fields: v.Fields}
		if v.Date != nil {
			de := &DateEntry{
				Positions: v.Date.Positions,
				Existing:  v.Date.Existing,
				Applied:   v.Date.Existing != "",
			}
			when := time.Date(0, 1, 1,
				s.opts.DefaultHour, s.opts.DefaultMinute, 0, 0, time.UTC)
			today := s.now()
			when = time.Date(today.Year(), today.Month(), today.Day(),
				when.Hour(), when.Minute(), 0, 0, time.UTC)
			if parsed, ok := ParseCompletion(v.Date.Existing); ok {
				when = parsed
			}
			de.Date = when.Format("2006-01-02")
			de.Time = when.Format("15:04")
			entry.Date = de
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// FormatCompletionValue encodes a date ("2006-01-02") and time ("15:04")
// pair into DateTermine text for the shell to submit as an edit value.
func (s *Service) FormatCompletionValue(date, clock string) (string, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", date, err)
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return "", fmt.Errorf("invalid time %q: %w", clock, err)
	}
	return FormatCompletion(time.Date(
		d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)), nil
}

// ApplyEdits reconciles pending edits into the working table and swaps in
// the result. It returns how many positions actually named a row; positions
// unknown to the table are ignored.
func (s *Service) ApplyEdits(ctx context.Context, edits PendingEdits) (int, error) {
	s.mu.Lock()
	if s.doc == nil {
		s.mu.Unlock()
		return 0, ErrNoDocument
	}
	applied := 0
	known := make(map[int]struct{}, len(s.doc.table.Rows))
	for _, r := range s.doc.table.Rows {
		known[r.OrigIndex] = struct{}{}
	}
	for pos := range edits {
		if _, ok := known[pos]; ok {
			applied++
		}
	}
	s.doc.table = Reconcile(s.doc.table, edits)
	docID, sheet := s.doc.id, s.doc.table.Sheet
	s.mu.Unlock()

	s.recordAudit(ctx, AuditEntry{
		Action:       ActionEdit,
		DocumentID:   docID,
		Sheet:        sheet,
		RowsAffected: applied,
		Detail:       fmt.Sprintf("%d edits submitted, %d applied", len(edits), applied),
	})
	return applied, nil
}

// Save writes the full export to disk. The path is normalized first (home
// expansion, directory default name, extension); the resolved path is
// returned. Exports are computed from an independent copy, so a failed write
// never corrupts the in-memory table.
func (s *Service) Save(ctx context.Context, path string) (string, error) {
	s.mu.RLock()
	if s.doc == nil {
		s.mu.RUnlock()
		return "", ErrNoDocument
	}
	export := s.doc.table.FullExport()
	docID := s.doc.id
	defaultName := s.defaultFileName(s.doc)
	s.mu.RUnlock()

	if path == "" {
		return "", ErrMissingPath
	}
	resolved := NormalizeSavePath(path, defaultName)

	if dir := filepath.Dir(resolved); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("write workbook: create directory: %w", err)
		}
	}
	f, err := os.Create(resolved)
	if err != nil {
		return "", fmt.Errorf("write workbook: %w", err)
	}
	defer f.Close()
	if err := s.codec.Write(f, export.Sheet, export.Columns, export.Rows); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write workbook: %w", err)
	}

	s.recordAudit(ctx, AuditEntry{
		Action:       ActionSave,
		DocumentID:   docID,
		Sheet:        export.Sheet,
		RowsAffected: len(export.Rows),
		Detail:       resolved,
	})
	return resolved, nil
}

// ExportBytes renders the full export to workbook bytes plus a download
// file name.
func (s *Service) ExportBytes(ctx context.Context) ([]byte, string, error) {
	return s.exportBytes(ctx, ActionExport)
}

// ExportFilledBytes renders the filled-only export to workbook bytes. The
// download name carries the configured prefix so the two exports are easy to
// tell apart.
func (s *Service) ExportFilledBytes(ctx context.Context) ([]byte, string, error) {
	return s.exportBytes(ctx, ActionExportFilled)
}

func (s *Service) exportBytes(ctx context.Context, action AuditAction) ([]byte, string, error) {
	s.mu.RLock()
	if s.doc == nil {
		s.mu.RUnlock()
		return nil, "", ErrNoDocument
	}
	var export Export
	if action == ActionExportFilled {
		export = s.doc.table.FilledExport()
	} else {
		export = s.doc.table.FullExport()
	}
	docID := s.doc.id
	name := s.defaultFileName(s.doc)
	s.mu.RUnlock()

	if action == ActionExportFilled {
		name = s.opts.FilledPrefix + name
	}

	var buf bytes.Buffer
	if err := s.codec.Write(&buf, export.Sheet, export.Columns, export.Rows); err != nil {
		return nil, "", err
	}

	s.recordAudit(ctx, AuditEntry{
		Action:       action,
		DocumentID:   docID,
		Sheet:        export.Sheet,
		RowsAffected: len(export.Rows),
		Detail:       name,
	})
	return buf.Bytes(), name, nil
}

// RecentAudit returns the newest audit entries, or nil when auditing is
// disabled.
func (s *Service) RecentAudit(ctx context.Context, limit int) ([]AuditEntry, error) {
	if s.audit == nil {
		return nil, nil
	}
	return s.audit.Recent(ctx, limit)
}

// AuditEnabled reports whether an audit backend is configured.
func (s *Service) AuditEnabled() bool {
	return s.audit != nil
}

// defaultFileName derives the download/save default from the loaded source,
// falling back to the configured name.
func (s *Service) defaultFileName(doc *document) string {
	if doc.source != "" {
		return filepath.Base(doc.source)
	}
	return s.opts.DefaultFileName
}

// recordAudit writes an audit entry when auditing is enabled. Audit failures
// are logged and swallowed; they never fail the operator's action.
func (s *Service) recordAudit(ctx context.Context, entry AuditEntry) {
	if s.audit == nil {
		return
	}
	if _, err := s.audit.Log(ctx, entry); err != nil {
		slog.Warn("audit write failed",
			"action", string(entry.Action),
			"document_id", entry.DocumentID,
			"error", err,
		)
	}
}

func summarize(doc *document) DocumentSummary {
	return DocumentSummary{
		ID:       doc.id,
		Source:   doc.source,
		Sheet:    doc.table.Sheet,
		Columns:  append([]string(nil), doc.table.Columns...),
		Rows:     len(doc.table.Rows),
		Excluded: doc.table.Excluded,
		Jobs:     doc.table.Jobs(),
		LoadedAt: doc.loadedAt,
	}
}
