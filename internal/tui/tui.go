package tui

import (
	"tempo-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func Run(dir string, db *store.DB) error {
	applyColorProfilePreference()
	applyThemePreference()
	m := newAppModel(dir, db)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
