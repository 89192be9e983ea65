package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"tempo-cli/internal/model"
)

const storeDirName = ".tempo"

type Store struct {
	Dir string
}

// DB is the in-memory view of a store directory. Commands load it, mutate it,
// and save it back whole; the TUI keeps one around and reloads when the
// on-disk state changes underneath it.
type DB struct {
	Reminders []model.Reminder
	Settings  Settings
}

// DiscoverDir walks up from start looking for an existing .tempo directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, storeDirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, storeDirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) Load(ctx context.Context) (*DB, error) {
	reminders, err := s.LoadReminders(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.LoadSettings()
	if err != nil {
		return nil, err
	}
	return &DB{Reminders: reminders, Settings: *settings}, nil
}

func (s Store) Save(ctx context.Context, db *DB) error {
	if err := s.SaveReminders(ctx, db.Reminders); err != nil {
		return err
	}
	return s.SaveSettings(&db.Settings)
}

func (db *DB) FindReminder(id string) (*model.Reminder, bool) {
	for i := range db.Reminders {
		if db.Reminders[i].ID == id {
			return &db.Reminders[i], true
		}
	}
	return nil, false
}

func (db *DB) RemoveReminder(id string) bool {
	for i := range db.Reminders {
		if db.Reminders[i].ID == id {
			db.Reminders = append(db.Reminders[:i], db.Reminders[i+1:]...)
			return true
		}
	}
	return false
}

// SortReminders orders by clock time, then label, then id for stable output.
func SortReminders(rs []model.Reminder) {
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Time != rs[j].Time {
			return rs[i].Time < rs[j].Time
		}
		if rs[i].Label != rs[j].Label {
			return rs[i].Label < rs[j].Label
		}
		return rs[i].ID < rs[j].ID
	})
}
