package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type reminderDelegate struct {
	normal   lipgloss.Style
	disabled lipgloss.Style
	selected lipgloss.Style
}

func newReminderDelegate() reminderDelegate {
	return reminderDelegate{
		normal:   lipgloss.NewStyle().Foreground(colorSurfaceFg),
		disabled: styleMuted(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d reminderDelegate) Height() int  { return 1 }
func (d reminderDelegate) Spacing() int { return 0 }
func (d reminderDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d reminderDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	it, ok := item.(reminderItem)
	if !ok {
		fmt.Fprint(w, fmt.Sprint(item))
		return
	}

	style := d.normal
	if !it.reminder.Enabled {
		style = d.disabled
	}
	if index == m.Index() {
		style = d.selected
	}

	line := it.row()
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	fmt.Fprint(w, style.Render(line))
}
