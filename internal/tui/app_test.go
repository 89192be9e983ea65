package tui

import (
	"context"
	"testing"
	"time"

	"tempo-cli/internal/model"
	"tempo-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func seedStore(t *testing.T, settings store.Settings, reminders ...model.Reminder) (string, *store.DB) {
	t.Helper()
	dir := t.TempDir()
	s := store.Store{Dir: dir}
	db := &store.DB{Reminders: reminders, Settings: settings}
	if err := s.Save(context.Background(), db); err != nil {
		t.Fatalf("seed save: %v", err)
	}
	return dir, db
}

func press(t *testing.T, m appModel, msg tea.Msg) appModel {
	t.Helper()
	mAny, _ := m.Update(msg)
	out, ok := mAny.(appModel)
	if !ok {
		t.Fatalf("unexpected model type %T", mAny)
	}
	return out
}

func typeText(t *testing.T, m appModel, s string) appModel {
	t.Helper()
	for _, r := range s {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func clearField(t *testing.T, m appModel) appModel {
	t.Helper()
	for i := 0; i < 6; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	return m
}

func TestEditTimeCommitsAndPersists(t *testing.T) {
	now := time.Now().UTC()
	dir, db := seedStore(t, store.Settings{Version: 1},
		model.Reminder{ID: "rem-a", Label: "Stand-up", Time: 600, Enabled: true, CreatedAt: now, UpdatedAt: now})

	m := newAppModel(dir, db)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewEdit || !m.field.Focused() {
		t.Fatalf("expected focused editor, got view=%v focused=%v", m.view, m.field.Focused())
	}

	m = clearField(t, m)
	m = typeText(t, m, "9:5")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.view != viewList {
		t.Fatalf("expected return to list, got view=%v", m.view)
	}
	r, ok := m.db.FindReminder("rem-a")
	if !ok || r.Time != 905 {
		t.Fatalf("expected committed time 905, got %+v", r)
	}

	loaded, err := store.Store{Dir: dir}.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	lr, ok := loaded.FindReminder("rem-a")
	if !ok || lr.Time != 905 {
		t.Fatalf("expected persisted time 905, got %+v", lr)
	}
}

func TestEditRejectsMalformedKeystrokes(t *testing.T) {
	dir, db := seedStore(t, store.Settings{Version: 1},
		model.Reminder{ID: "rem-a", Label: "Stand-up", Time: 600, Enabled: true})

	m := newAppModel(dir, db)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = typeText(t, m, "a")
	if m.field.Text() != "06:00" {
		t.Fatalf("letter keystroke should be rejected, got %q", m.field.Text())
	}
}

func TestToggleAndDelete(t *testing.T) {
	dir, db := seedStore(t, store.Settings{Version: 1},
		model.Reminder{ID: "rem-a", Label: "Stand-up", Time: 600, Enabled: true})

	m := newAppModel(dir, db)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}})
	r, ok := m.db.FindReminder("rem-a")
	if !ok || r.Enabled {
		t.Fatalf("expected reminder disabled after toggle, got %+v", r)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	if _, ok := m.db.FindReminder("rem-a"); ok {
		t.Fatalf("expected reminder removed")
	}

	loaded, err := store.Store{Dir: dir}.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Reminders) != 0 {
		t.Fatalf("expected empty store, got %+v", loaded.Reminders)
	}
}

func TestAddReminderFlow(t *testing.T) {
	dir, db := seedStore(t, store.Settings{Version: 1})

	m := newAppModel(dir, db)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	if m.view != viewAdd || !m.labelInput.Focused() {
		t.Fatalf("expected label entry, got view=%v", m.view)
	}

	m = typeText(t, m, "Gym")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.field.Focused() {
		t.Fatalf("expected time entry after label")
	}

	m = clearField(t, m)
	m = typeText(t, m, "7:15")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.view != viewList {
		t.Fatalf("expected return to list, got view=%v", m.view)
	}
	if len(m.db.Reminders) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(m.db.Reminders))
	}
	r := m.db.Reminders[0]
	if r.Label != "Gym" || r.Time != 715 || !r.Enabled {
		t.Fatalf("unexpected reminder %+v", r)
	}

	_, err := store.Store{Dir: dir}.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
}

func TestExternalChangeSyncsEditorWithoutCommit(t *testing.T) {
	max := 1400
	dir, db := seedStore(t, store.Settings{Version: 1, MaxTime: &max},
		model.Reminder{ID: "rem-a", Label: "Stand-up", Time: 900, Enabled: true})

	m := newAppModel(dir, db)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.field.Text() != "09:00" {
		t.Fatalf("expected editor at 09:00, got %q", m.field.Text())
	}

	// Another process moves the reminder beyond the maximum.
	s := store.Store{Dir: dir}
	ext, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if r, ok := ext.FindReminder("rem-a"); ok {
		r.Time = 1500
	}
	if err := s.Save(context.Background(), ext); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := m.reloadFromDisk(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if m.field.Text() != "14:00" {
		t.Fatalf("expected clamped sync to 14:00, got %q", m.field.Text())
	}
	if m.changes.fired {
		t.Fatalf("external sync must not fire the change mailbox")
	}
}
