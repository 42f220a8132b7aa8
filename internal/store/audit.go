package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/raysh454/formpilot/internal/interfaces"
	"github.com/raysh454/formpilot/internal/model"
)

// Append inserts an audit entry and trims the log to model.MaxAuditEntries,
// dropping the oldest rows. Per-entry results are capped at
// model.MaxAuditResults before encoding.
func (s *Store) Append(ctx context.Context, entry model.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	entry.Results = model.CapResults(entry.Results)

	resultsJSON, err := json.Marshal(entry.Results)
	if err != nil {
		return fmt.Errorf("encode audit results: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin audit tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // ErrTxDone after commit

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO audit_entries (id, created_at, origin, url, filled, blocked, skipped, results)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp.UnixNano(), entry.Origin, entry.URL,
		entry.Filled, entry.Blocked, entry.Skipped, string(resultsJSON),
	); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM audit_entries WHERE seq NOT IN
		   (SELECT seq FROM audit_entries ORDER BY seq DESC LIMIT ?)`,
		model.MaxAuditEntries,
	); err != nil {
		return fmt.Errorf("trim audit log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit audit entry: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("audit entry appended",
			interfaces.Field{Key: "origin", Value: entry.Origin},
			interfaces.Field{Key: "filled", Value: entry.Filled},
			interfaces.Field{Key: "blocked", Value: entry.Blocked},
			interfaces.Field{Key: "skipped", Value: entry.Skipped})
	}
	return nil
}

// Recent returns audit entries most-recent-first.
func (s *Store) Recent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 || limit > model.MaxAuditEntries {
		limit = model.MaxAuditEntries
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, origin, url, filled, blocked, skipped, results
		 FROM audit_entries ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}
	defer rows.Close()

	var out []model.AuditEntry
	for rows.Next() {
		var (
			entry       model.AuditEntry
			createdAt   int64
			resultsJSON string
		)
		if err := rows.Scan(&entry.ID, &createdAt, &entry.Origin, &entry.URL,
			&entry.Filled, &entry.Blocked, &entry.Skipped, &resultsJSON); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		entry.Timestamp = time.Unix(0, createdAt).UTC()
		if err := json.Unmarshal([]byte(resultsJSON), &entry.Results); err != nil {
			return nil, fmt.Errorf("decode audit results: %w", err)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

var _ interfaces.AuditStore = (*Store)(nil)
