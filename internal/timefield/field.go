package timefield

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Default clamp bounds applied when the caller does not configure any.
const (
	DefaultMin = 0
	DefaultMax = 2359
)

// Styles configure the field's visual parts. The host theme supplies these;
// zero-value styles render plainly.
type Styles struct {
	Text        lipgloss.Style
	Placeholder lipgloss.Style
	Icon        lipgloss.Style
}

// Field is an editable clock-time input. While focused the displayed text is
// authoritative and may look numerically wrong mid-edit ("63"); every
// keystroke is shape-checked and rejected outright if it would leave text
// that can no longer become a time. On blur (or enter) the pending text is
// parsed, clamped into [min, max] and rewritten as canonical "HH:MM"; the
// change callback fires only when the committed value actually moved.
//
// All transitions run inside Update/Blur on the program goroutine; the field
// holds no locks and does no I/O.
type Field struct {
	input     textinput.Model
	committed int
	min       int
	max       int
	onChange  func(int)
	disabled  bool
	showIcon  bool
	iconStyle lipgloss.Style
}

// New builds a settled field displaying value, clamped into the default
// bounds. An ill-formed initial value is a programmer error and panics.
func New(value int) Field {
	if !IsValidValue(value) {
		panic(fmt.Sprintf("timefield: invalid initial value %d", value))
	}

	in := textinput.New()
	in.Placeholder = "HH:MM"
	in.CharLimit = 5
	in.Width = 6
	in.Prompt = ""

	f := Field{
		input: in,
		min:   DefaultMin,
		max:   DefaultMax,
	}
	f.committed = clamp(value, f.min, f.max)
	f.input.SetValue(Format(f.committed))
	return f
}

// SetBounds reconfigures the clamp range. Bounds are a programmer contract:
// both must be well-formed clock values with min <= max, and violations
// panic. When the field is settled the displayed value is re-clamped into
// the new range without firing the change callback.
func (f *Field) SetBounds(min, max int) {
	if !IsValidValue(min) || !IsValidValue(max) || min > max {
		panic(fmt.Sprintf("timefield: invalid bounds %s..%s", Format(min), Format(max)))
	}
	f.min, f.max = min, max
	if !f.input.Focused() {
		f.committed = clamp(f.committed, min, max)
		f.input.SetValue(Format(f.committed))
	}
}

// SetOnChange registers the commit notification. It is invoked with the new
// clock value whenever a commit lands on a different value than before.
func (f *Field) SetOnChange(fn func(int)) { f.onChange = fn }

// SetDisabled suppresses editing. Disabling a focused field settles it first.
func (f *Field) SetDisabled(disabled bool) {
	if disabled && f.input.Focused() {
		f.Blur()
	}
	f.disabled = disabled
}

func (f *Field) SetShowIcon(show bool) { f.showIcon = show }

func (f *Field) SetStyles(st Styles) {
	f.input.TextStyle = st.Text
	f.input.PlaceholderStyle = st.Placeholder
	f.iconStyle = st.Icon
}

// Value returns the last committed clock value.
func (f Field) Value() int { return f.committed }

// Text returns the pending display text, which tracks every accepted
// keystroke and may diverge from Value until the next commit.
func (f Field) Text() string { return f.input.Value() }

func (f Field) Focused() bool  { return f.input.Focused() }
func (f Field) Disabled() bool { return f.disabled }
func (f Field) Bounds() (min, max int) { return f.min, f.max }

func (f *Field) Focus() tea.Cmd {
	if f.disabled {
		return nil
	}
	f.input.CursorEnd()
	return f.input.Focus()
}

// Blur settles the field: parse the pending text, clamp, rewrite the display
// as canonical "HH:MM", and notify if the committed value changed.
func (f *Field) Blur() {
	f.input.Blur()
	f.commit()
}

// SyncValue reconciles the field with an externally-changed model value. The
// new value is clamped into bounds and the displayed text rewritten, but the
// change callback stays quiet: this reacts to a change, it does not make one.
// Ill-formed external values are ignored.
func (f *Field) SyncValue(v int) {
	if !IsValidValue(v) || v == f.committed {
		return
	}
	f.committed = clamp(v, f.min, f.max)
	f.input.SetValue(Format(f.committed))
	f.input.CursorEnd()
}

func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	if f.disabled || !f.input.Focused() {
		return f, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEnter {
		// Enter defocuses; the commit happens on the resulting blur.
		f.Blur()
		return f, nil
	}

	before := f.input.Value()
	pos := f.input.Position()

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)

	if f.input.Value() != before && !IsValidText(f.input.Value()) {
		// Reject the edit: pending text stays as it was.
		f.input.SetValue(before)
		f.input.SetCursor(pos)
	}
	return f, cmd
}

func (f Field) View() string {
	var b strings.Builder
	if f.showIcon {
		b.WriteString(f.iconStyle.Render("⏱ "))
	}
	b.WriteString(f.input.View())
	return b.String()
}

func (f *Field) commit() {
	v, ok := ValueFromText(f.input.Value())
	next := f.committed
	if ok {
		next = ForceValid(v, f.min, f.max, f.committed)
	}

	// The field always settles on a clean canonical string, discarding any
	// partial remnants like "9:" or "".
	f.input.SetValue(Format(next))
	f.input.CursorEnd()

	if next == f.committed {
		return
	}
	f.committed = next
	if f.onChange != nil {
		f.onChange(next)
	}
}
