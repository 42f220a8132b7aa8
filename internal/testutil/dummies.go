// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/raysh454/formpilot/internal/interfaces"
	"github.com/raysh454/formpilot/internal/model"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements interfaces.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...interfaces.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...interfaces.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...interfaces.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...interfaces.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...interfaces.Field) interfaces.Logger { return l }

// ─── Stores ────────────────────────────────────────────────────────────

// MemProfileStore implements interfaces.ProfileStore in memory.
// Set FailReads/FailWrites to force errors.
type MemProfileStore struct {
	mu         sync.Mutex
	Saved      model.Profile
	FailReads  bool
	FailWrites bool
}

func (m *MemProfileStore) Profile(ctx context.Context) (model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads {
		return nil, errors.New("dummy profile read failure")
	}
	if m.Saved == nil {
		return model.DefaultProfile(), nil
	}
	return m.Saved.Merge(), nil
}

func (m *MemProfileStore) SetProfile(ctx context.Context, p model.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errors.New("dummy profile write failure")
	}
	m.Saved = p.Merge()
	return nil
}

// MemSettingsStore implements interfaces.SettingsStore in memory.
type MemSettingsStore struct {
	mu        sync.Mutex
	Saved     *model.Settings
	FailReads bool
}

func (m *MemSettingsStore) Settings(ctx context.Context) (model.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailReads {
		return model.Settings{}, errors.New("dummy settings read failure")
	}
	if m.Saved == nil {
		return model.DefaultSettings(), nil
	}
	return *m.Saved, nil
}

func (m *MemSettingsStore) SetSettings(ctx context.Context, s model.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saved = &s
	return nil
}

// MemAuditStore implements interfaces.AuditStore in memory, newest first.
type MemAuditStore struct {
	mu          sync.Mutex
	Entries     []model.AuditEntry
	FailAppends bool
}

func (m *MemAuditStore) Append(ctx context.Context, entry model.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailAppends {
		return errors.New("dummy audit append failure")
	}
	m.Entries = append([]model.AuditEntry{entry}, m.Entries...)
	if len(m.Entries) > model.MaxAuditEntries {
		m.Entries = m.Entries[:model.MaxAuditEntries]
	}
	return nil
}

func (m *MemAuditStore) Recent(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit <= 0 || limit > len(m.Entries) {
		limit = len(m.Entries)
	}
	out := make([]model.AuditEntry, limit)
	copy(out, m.Entries[:limit])
	return out, nil
}

// ─── Page session ──────────────────────────────────────────────────────

// FakeSession implements interfaces.Session with scripted fields and fill
// outcomes. FillErrs maps locator -> error to return; everything else
// succeeds and is recorded in Filled.
type FakeSession struct {
	PageFields []model.FieldMetadata
	PageURL    string
	FillErrs   map[string]error

	mu     sync.Mutex
	Filled map[string]string
	Closed bool
}

func (f *FakeSession) Fields(ctx context.Context) ([]model.FieldMetadata, error) {
	out := make([]model.FieldMetadata, len(f.PageFields))
	copy(out, f.PageFields)
	return out, nil
}

func (f *FakeSession) Fill(ctx context.Context, locator, value string) error {
	if err, ok := f.FillErrs[locator]; ok {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Filled == nil {
		f.Filled = make(map[string]string)
	}
	f.Filled[locator] = value
	return nil
}

func (f *FakeSession) URL(ctx context.Context) (string, error) {
	if f.PageURL == "" {
		return "http://fake.test/page", nil
	}
	return f.PageURL, nil
}

func (f *FakeSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// FakeOpener hands out FakeSessions. Each Open returns a fresh session
// sharing the scripted fields, mirroring the recompute-per-request model.
type FakeOpener struct {
	PageFields []model.FieldMetadata
	PageURL    string
	FillErrs   map[string]error
	OpenErr    error

	mu       sync.Mutex
	Sessions []*FakeSession
}

func (f *FakeOpener) Open(ctx context.Context, url string) (interfaces.Session, error) {
	if f.OpenErr != nil {
		return nil, f.OpenErr
	}
	s := &FakeSession{
		PageFields: f.PageFields,
		PageURL:    f.PageURL,
		FillErrs:   f.FillErrs,
	}
	f.mu.Lock()
	f.Sessions = append(f.Sessions, s)
	f.mu.Unlock()
	return s, nil
}

func (f *FakeOpener) Close() error { return nil }
