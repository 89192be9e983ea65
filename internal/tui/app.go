package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"tempo-cli/internal/model"
	"tempo-cli/internal/store"
	"tempo-cli/internal/timefield"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type view int

const (
	viewList view = iota
	viewEdit
	viewAdd
)

type reloadTickMsg struct{}

type keyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Toggle key.Binding
	Delete key.Binding
	Reload key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Edit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit time")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// changeMailbox carries commit notifications out of the time field callback.
// The app model is copied by value through Update, so the callback closes
// over this shared pointer instead of a model field.
type changeMailbox struct {
	fired bool
	value int
}

func (b *changeMailbox) notify(v int) { b.fired, b.value = true, v }

func (b *changeMailbox) take() (int, bool) {
	if !b.fired {
		return 0, false
	}
	b.fired = false
	return b.value, true
}

type reminderItem struct {
	reminder model.Reminder
}

func (it reminderItem) FilterValue() string { return it.reminder.Label }

func (it reminderItem) row() string {
	line := timefield.Format(it.reminder.Time) + "  " + it.reminder.Label
	if !it.reminder.Enabled {
		line += " (off)"
	}
	return line
}

type appModel struct {
	dir   string
	store store.Store
	db    *store.DB

	width  int
	height int

	view view
	keys keyMap

	remindersList list.Model

	// Edit/add state.
	field      timefield.Field
	labelInput textinput.Model
	changes    *changeMailbox
	editingID  string

	lastStoreModTime time.Time
}

func newAppModel(dir string, db *store.DB) appModel {
	m := appModel{
		dir:     dir,
		store:   store.Store{Dir: dir},
		db:      db,
		view:    viewList,
		keys:    defaultKeyMap(),
		changes: &changeMailbox{},
	}

	m.remindersList = list.New([]list.Item{}, newReminderDelegate(), 0, 0)
	m.remindersList.Title = "Reminders"
	m.remindersList.SetShowStatusBar(false)
	m.remindersList.SetShowHelp(false)
	m.remindersList.SetFilteringEnabled(true)

	m.labelInput = textinput.New()
	m.labelInput.Placeholder = "Label"
	m.labelInput.CharLimit = 60
	m.labelInput.Width = 24

	m.refreshReminders()
	m.captureStoreModTime()
	return m
}

func (m appModel) Init() tea.Cmd { return tickReload() }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeList()
		return m, nil

	case reloadTickMsg:
		if m.storeChanged() {
			_ = m.reloadFromDisk()
		}
		return m, tickReload()

	case tea.KeyMsg:
		switch m.view {
		case viewEdit:
			return m.updateEdit(msg)
		case viewAdd:
			return m.updateAdd(msg)
		default:
			return m.updateList(msg)
		}
	}

	var cmd tea.Cmd
	m.remindersList, cmd = m.remindersList.Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter is being typed, every key belongs to it.
	if m.remindersList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.remindersList, cmd = m.remindersList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Reload):
		_ = m.reloadFromDisk()
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.view = viewAdd
		m.labelInput.SetValue("")
		return m, m.labelInput.Focus()

	case key.Matches(msg, m.keys.Edit):
		if it, ok := m.remindersList.SelectedItem().(reminderItem); ok {
			m.openEditor(it.reminder)
			return m, m.field.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if it, ok := m.remindersList.SelectedItem().(reminderItem); ok {
			if r, found := m.db.FindReminder(it.reminder.ID); found {
				r.Enabled = !r.Enabled
				r.UpdatedAt = time.Now().UTC()
				m.persist()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.remindersList.SelectedItem().(reminderItem); ok {
			if m.db.RemoveReminder(it.reminder.ID) {
				m.persist()
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.remindersList, cmd = m.remindersList.Update(msg)
	return m, cmd
}

func (m appModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		// Leaving the editor is a blur; the field commits itself.
		m.field.Blur()
	} else {
		var cmd tea.Cmd
		m.field, cmd = m.field.Update(msg)
		if m.field.Focused() {
			return m, cmd
		}
	}

	if v, ok := m.changes.take(); ok {
		if r, found := m.db.FindReminder(m.editingID); found {
			r.Time = v
			r.UpdatedAt = time.Now().UTC()
			m.persist()
		}
	}
	m.view = viewList
	m.editingID = ""
	m.refreshReminders()
	return m, nil
}

func (m appModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		if m.field.Focused() {
			m.field.Blur()
		}
		m.labelInput.Blur()
		m.view = viewList
		return m, nil
	}

	// Stage 1: label entry.
	if m.labelInput.Focused() {
		if msg.Type == tea.KeyEnter {
			if strings.TrimSpace(m.labelInput.Value()) == "" {
				return m, nil
			}
			m.labelInput.Blur()
			min, _ := m.db.Settings.Bounds()
			m.openFieldFor("", min)
			return m, m.field.Focus()
		}
		var cmd tea.Cmd
		m.labelInput, cmd = m.labelInput.Update(msg)
		return m, cmd
	}

	// Stage 2: time entry.
	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	if m.field.Focused() {
		return m, cmd
	}

	m.changes.take() // the committed value is read directly below
	id, err := store.NewReminderID()
	if err == nil {
		now := time.Now().UTC()
		m.db.Reminders = append(m.db.Reminders, model.Reminder{
			ID:        id,
			Label:     strings.TrimSpace(m.labelInput.Value()),
			Time:      m.field.Value(),
			Enabled:   true,
			CreatedAt: now,
			UpdatedAt: now,
		})
		m.persist()
	}
	m.view = viewList
	m.refreshReminders()
	return m, nil
}

func (m appModel) View() string {
	header := styleHeader().Render(fmt.Sprintf("Tempo  Dir=%s", m.dir))

	var body string
	switch m.view {
	case viewEdit:
		body = m.viewEditor("Edit time", m.editingLabel())
	case viewAdd:
		if m.labelInput.Focused() {
			body = m.viewLabelEntry()
		} else {
			body = m.viewEditor("New reminder", strings.TrimSpace(m.labelInput.Value()))
		}
	default:
		body = m.remindersList.View()
	}

	footer := styleMuted().Render(m.footerHelp())
	return strings.Join([]string{header, body, footer}, "\n\n")
}

func (m appModel) viewEditor(title, label string) string {
	min, max := m.field.Bounds()
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(title),
		"",
		fmt.Sprintf("%s  %s", label, m.field.View()),
		"",
		styleMuted().Render(fmt.Sprintf("bounds %s–%s  enter: save  esc: back", timefield.Format(min), timefield.Format(max))),
	}
	return strings.Join(lines, "\n")
}

func (m appModel) viewLabelEntry() string {
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("New reminder"),
		"",
		m.labelInput.View(),
		"",
		styleMuted().Render("enter: next  esc: back"),
	}
	return strings.Join(lines, "\n")
}

func (m appModel) footerHelp() string {
	ks := []key.Binding{m.keys.Edit, m.keys.Add, m.keys.Toggle, m.keys.Delete, m.keys.Reload, m.keys.Quit}
	parts := make([]string, 0, len(ks))
	for _, k := range ks {
		parts = append(parts, k.Help().Key+": "+k.Help().Desc)
	}
	return strings.Join(parts, "  ")
}

func (m appModel) editingLabel() string {
	if r, ok := m.db.FindReminder(m.editingID); ok {
		return r.Label
	}
	return ""
}

func (m *appModel) openEditor(r model.Reminder) {
	m.editingID = r.ID
	m.openFieldFor(r.ID, r.Time)
	m.view = viewEdit
}

func (m *appModel) openFieldFor(id string, value int) {
	min, max := m.db.Settings.Bounds()
	if !timefield.IsValidValue(value) {
		value = min
	}
	f := timefield.New(value)
	f.SetBounds(min, max)
	f.SetShowIcon(true)
	f.SetStyles(fieldStyles())
	f.SetOnChange(m.changes.notify)
	m.field = f
	m.editingID = id
}

func (m *appModel) persist() {
	_ = m.store.Save(context.Background(), m.db)
	m.captureStoreModTime()
	m.refreshReminders()
}

func (m *appModel) resizeList() {
	// Leave room for header/footer.
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	w := m.width
	if w < 40 {
		w = 40
	}
	m.remindersList.SetSize(w, h)
}

func (m *appModel) refreshReminders() {
	curID := ""
	if it, ok := m.remindersList.SelectedItem().(reminderItem); ok {
		curID = it.reminder.ID
	}
	store.SortReminders(m.db.Reminders)
	items := make([]list.Item, 0, len(m.db.Reminders))
	for _, r := range m.db.Reminders {
		items = append(items, reminderItem{reminder: r})
	}
	m.remindersList.SetItems(items)
	if curID != "" {
		for i, it := range m.remindersList.Items() {
			if ri, ok := it.(reminderItem); ok && ri.reminder.ID == curID {
				m.remindersList.Select(i)
				break
			}
		}
	}
}

func tickReload() tea.Cmd {
	return tea.Tick(750*time.Millisecond, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m *appModel) captureStoreModTime() {
	m.lastStoreModTime = m.storeModTime()
}

func (m *appModel) storeChanged() bool {
	return m.storeModTime().After(m.lastStoreModTime)
}

// storeModTime takes the later of the database and its WAL file: under WAL
// journaling, commits land in the -wal file first.
func (m *appModel) storeModTime() time.Time {
	latest := fileModTime(m.store.DBPath())
	if wal := fileModTime(m.store.DBPath() + "-wal"); wal.After(latest) {
		latest = wal
	}
	return latest
}

func fileModTime(path string) time.Time {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}

// reloadFromDisk picks up changes made by CLI commands in another terminal.
// When the user is mid-edit on a reminder whose stored time moved, the field
// is synced (clamped, no change notification) rather than clobbered.
func (m *appModel) reloadFromDisk() error {
	db, err := m.store.Load(context.Background())
	if err != nil {
		return err
	}
	m.db = db
	m.captureStoreModTime()
	m.refreshReminders()

	if m.view == viewEdit {
		if r, ok := m.db.FindReminder(m.editingID); ok {
			m.field.SyncValue(r.Time)
		}
	}
	return nil
}
