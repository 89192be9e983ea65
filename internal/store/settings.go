package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"tempo-cli/internal/timefield"
)

const settingsFileName = "settings.json"

// Settings stores small user-facing defaults for the store directory.
//
// It is intentionally "best effort": callers should tolerate missing/invalid
// data, and ill-formed bounds degrade to the widget defaults rather than
// failing a load.
type Settings struct {
	Version int `json:"version"`

	// Default clamp bounds applied to reminder times (clock values,
	// hour*100+minute). Nil means the timefield defaults.
	MinTime *int `json:"minTime,omitempty"`
	MaxTime *int `json:"maxTime,omitempty"`
}

// Bounds returns the configured clamp range, falling back to the widget
// defaults when unset or ill-formed.
func (st Settings) Bounds() (min, max int) {
	min, max = timefield.DefaultMin, timefield.DefaultMax
	if st.MinTime != nil && timefield.IsValidValue(*st.MinTime) {
		min = *st.MinTime
	}
	if st.MaxTime != nil && timefield.IsValidValue(*st.MaxTime) {
		max = *st.MaxTime
	}
	if min > max {
		return timefield.DefaultMin, timefield.DefaultMax
	}
	return min, max
}

func (s Store) settingsPath() string {
	return filepath.Join(s.Dir, settingsFileName)
}

func (s Store) LoadSettings() (*Settings, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &Settings{Version: 1}, nil
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.settingsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Settings{Version: 1}, nil
		}
		return nil, err
	}
	var st Settings
	if err := json.Unmarshal(b, &st); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return &Settings{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveSettings(st *Settings) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.settingsPath(), append(b, '\n'), 0o644)
}
