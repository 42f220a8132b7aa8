package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/raysh454/formpilot/internal/interfaces"
	"github.com/raysh454/formpilot/internal/model"
)

// Settings returns the stored settings, or the documented defaults
// (hard-block on, skip-unknown on) when nothing has been saved.
func (s *Store) Settings(ctx context.Context) (model.Settings, error) {
	payload, err := s.getBlob(ctx, keySettings)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultSettings(), nil
	}
	if err != nil {
		return model.Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var st model.Settings
	if err := json.Unmarshal([]byte(payload), &st); err != nil {
		return model.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return st, nil
}

// SetSettings persists the settings blob. Write failures propagate; the
// store never silently falls back to defaults on a failed write.
func (s *Store) SetSettings(ctx context.Context, st model.Settings) error {
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.setBlob(ctx, keySettings, string(payload)); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("settings updated",
			interfaces.Field{Key: "hard_block_sensitive", Value: st.HardBlockSensitive},
			interfaces.Field{Key: "skip_unknown", Value: st.SkipUnknown})
	}
	return nil
}

var _ interfaces.SettingsStore = (*Store)(nil)
