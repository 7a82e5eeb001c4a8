package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AuditService persists audit entries to Postgres. It is optional: a session
// service with a nil *AuditService simply records nothing.
type AuditService struct {
	pool *pgxpool.Pool
}

// NewAuditService creates an audit service backed by the given pool.
func NewAuditService(pool *pgxpool.Pool) *AuditService {
	return &AuditService{pool: pool}
}

// EnsureSchema creates the audit table if it does not exist yet.
func (a *AuditService) EnsureSchema(ctx context.Context) error {
	_, err := a.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS field_entry_audit (
			id            uuid PRIMARY KEY,
			action        text NOT NULL,
			document_id   text NOT NULL,
			sheet         text NOT NULL DEFAULT '',
			source        text NOT NULL DEFAULT '',
			rows_affected int  NOT NULL DEFAULT 0,
			detail        text NOT NULL DEFAULT '',
			ip_address    text NOT NULL DEFAULT '',
			user_agent    text NOT NULL DEFAULT '',
			created_at    timestamptz NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	return nil
}

// Log writes one audit entry. The entry's ID and CreatedAt are assigned
// here; IP and User-Agent are taken from the context when present.
func (a *AuditService) Log(ctx context.Context, entry AuditEntry) (AuditEntry, error) {
	entry.ID = uuid.New().String()
	entry.CreatedAt = time.Now().UTC()
	if entry.IPAddress == "" {
		entry.IPAddress = IPAddressFromContext(ctx)
	}
	if entry.UserAgent == "" {
		entry.UserAgent = UserAgentFromContext(ctx)
	}

	_, err := a.pool.Exec(ctx, `
		INSERT INTO field_entry_audit
			(id, action, document_id, sheet, source, rows_affected, detail, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID, string(entry.Action), entry.DocumentID, entry.Sheet, entry.Source,
		entry.RowsAffected, entry.Detail, entry.IPAddress, entry.UserAgent, entry.CreatedAt,
	)
	if err != nil {
		return AuditEntry{}, fmt.Errorf("insert audit entry: %w", err)
	}
	return entry, nil
}

// Recent returns the newest audit entries, most recent first.
func (a *AuditService) Recent(ctx context.Context, limit int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := a.pool.Query(ctx, `
		SELECT id, action, document_id, sheet, source, rows_affected, detail, ip_address, user_agent, created_at
		FROM field_entry_audit
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		var action string
		if err := rows.Scan(&e.ID, &action, &e.DocumentID, &e.Sheet, &e.Source,
			&e.RowsAffected, &e.Detail, &e.IPAddress, &e.UserAgent, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.Action = AuditAction(action)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}
