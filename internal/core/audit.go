package core

import "time"

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionLoad         AuditAction = "load"
	ActionEdit         AuditAction = "edit"
	ActionSave         AuditAction = "save"
	ActionExport       AuditAction = "export"
	ActionExportFilled AuditAction = "export_filled"
)

// AuditEntry is one recorded operator action. Entries are written after the
// action succeeds; a failed audit write is logged and never fails the action
// itself.
type AuditEntry struct {
	ID           string      `json:"id"`
	Action       AuditAction `json:"action"`
	DocumentID   string      `json:"documentId"`
	Sheet        string      `json:"sheet,omitempty"`
	Source       string      `json:"source,omitempty"`
	RowsAffected int         `json:"rowsAffected,omitempty"`
	Detail       string      `json:"detail,omitempty"`
	IPAddress    string      `json:"ipAddress,omitempty"`
	UserAgent    string      `json:"userAgent,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}
