package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/raysh454/formpilot/internal/interfaces"
	"github.com/raysh454/formpilot/internal/model"
)

// Profile returns the stored profile overlaid on the defaults, or the plain
// defaults when nothing has been saved yet.
func (s *Store) Profile(ctx context.Context) (model.Profile, error) {
	payload, err := s.getBlob(ctx, keyProfile)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultProfile(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var p model.Profile
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return p.Merge(), nil
}

// SetProfile persists the profile and records a character-level diff of the
// change in profile_history. Keys outside the known non-sensitive field
// types are dropped: the profile never stores sensitive types.
func (s *Store) SetProfile(ctx context.Context, p model.Profile) error {
	clean := model.DefaultProfile()
	for _, ft := range model.ProfileFieldTypes {
		if v, ok := p[ft]; ok {
			clean[ft] = v
		}
	}

	newPayload, err := json.Marshal(clean)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	oldPayload, err := s.getBlob(ctx, keyProfile)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("read previous profile: %w", err)
	}

	if err := s.setBlob(ctx, keyProfile, string(newPayload)); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}

	diffJSON, err := computeChangeDiffJSON(oldPayload, string(newPayload))
	if err != nil {
		return fmt.Errorf("compute profile diff: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO profile_history (id, created_at, diff) VALUES (?, ?, ?)`,
		uuid.New().String(), time.Now().UTC().UnixNano(), diffJSON,
	); err != nil {
		return fmt.Errorf("record profile history: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("profile updated")
	}
	return nil
}

// ProfileChange is one recorded profile edit.
type ProfileChange struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Chunks    []DiffChunk `json:"chunks"`
}

// DiffChunk is one added/removed run of characters between two profile
// versions. Equal runs are omitted.
type DiffChunk struct {
	Type string `json:"type"` // "added" | "removed"
	Text string `json:"text"`
}

// ProfileHistory returns the most recent profile edits, newest first.
func (s *Store) ProfileHistory(ctx context.Context, limit int) ([]ProfileChange, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, diff FROM profile_history ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("read profile history: %w", err)
	}
	defer rows.Close()

	var out []ProfileChange
	for rows.Next() {
		var (
			id       string
			createdA int64
			diffJSON string
		)
		if err := rows.Scan(&id, &createdA, &diffJSON); err != nil {
			return nil, fmt.Errorf("scan profile history row: %w", err)
		}
		var chunks []DiffChunk
		if err := json.Unmarshal([]byte(diffJSON), &chunks); err != nil {
			return nil, fmt.Errorf("decode profile history diff: %w", err)
		}
		out = append(out, ProfileChange{
			ID:        id,
			Timestamp: time.Unix(0, createdA).UTC(),
			Chunks:    chunks,
		})
	}
	return out, rows.Err()
}

// computeChangeDiffJSON diffs two JSON payloads at the character level and
// keeps only added/removed runs.
func computeChangeDiffJSON(oldPayload, newPayload string) (string, error) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldPayload, newPayload, true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	chunks := make([]DiffChunk, 0)
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			chunks = append(chunks, DiffChunk{Type: "added", Text: d.Text})
		case diffmatchpatch.DiffDelete:
			chunks = append(chunks, DiffChunk{Type: "removed", Text: d.Text})
		}
	}

	enc, err := json.Marshal(chunks)
	if err != nil {
		return "", err
	}
	return string(enc), nil
}

func (s *Store) getBlob(ctx context.Context, key string) (string, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM kv WHERE key = ?`, key).Scan(&payload)
	if err != nil {
		return "", err
	}
	return payload, nil
}

func (s *Store) setBlob(ctx context.Context, key, payload string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, schema_version, payload, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET schema_version = excluded.schema_version,
		   payload = excluded.payload, updated_at = excluded.updated_at`,
		key, schemaVersion, payload, time.Now().UTC().UnixNano())
	return err
}

var _ interfaces.ProfileStore = (*Store)(nil)
