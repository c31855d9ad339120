// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studysync-tui/internal/ui/styles"
)

// Form is an ordered set of fields followed by a submit button. Focus
// cycles through the fields and the button. While Busy the button is
// disabled and shows a spinner.
type Form struct {
	Fields      []*Field
	SubmitLabel string

	focus   int // len(Fields) is the submit button
	busy    bool
	spinner spinner.Model
}

// NewForm creates a form with focus on the first field.
func NewForm(submitLabel string, fields ...*Field) *Form {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	f := &Form{
		Fields:      fields,
		SubmitLabel: submitLabel,
		spinner:     sp,
	}
	return f
}

// Init focuses the first field.
func (f *Form) Init() tea.Cmd {
	return f.setFocus(0)
}

// Field returns the named field, or nil.
func (f *Form) Field(name string) *Field {
	for _, fld := range f.Fields {
		if fld.Name == name {
			return fld
		}
	}
	return nil
}

// Value returns the named field's value.
func (f *Form) Value(name string) string {
	if fld := f.Field(name); fld != nil {
		return fld.Value()
	}
	return ""
}

// Busy reports whether a submission is in flight.
func (f *Form) Busy() bool {
	return f.busy
}

// SetBusy marks a submission in flight. Starting returns the spinner tick.
func (f *Form) SetBusy(busy bool) tea.Cmd {
	f.busy = busy
	if busy {
		return f.spinner.Tick
	}
	return nil
}

// SetErrors assigns field errors by name. Unknown names are ignored.
func (f *Form) SetErrors(errs map[string]string) {
	for _, fld := range f.Fields {
		fld.Err = errs[fld.Name]
	}
}

// HasErrors reports whether any field shows an error.
func (f *Form) HasErrors() bool {
	for _, fld := range f.Fields {
		if fld.Err != "" {
			return true
		}
	}
	return false
}

// Reset clears all values and errors and focuses the first field.
func (f *Form) Reset() tea.Cmd {
	for _, fld := range f.Fields {
		fld.Reset()
	}
	f.busy = false
	return f.setFocus(0)
}

// SetWidth sizes every field.
func (f *Form) SetWidth(w int) {
	for _, fld := range f.Fields {
		fld.SetWidth(w - 4)
	}
}

// FocusIndex returns the focused position; len(Fields) is the button.
func (f *Form) FocusIndex() int {
	return f.focus
}

func (f *Form) setFocus(i int) tea.Cmd {
	n := len(f.Fields) + 1
	f.focus = ((i % n) + n) % n
	var cmd tea.Cmd
	for idx, fld := range f.Fields {
		if idx == f.focus {
			cmd = fld.Focus()
		} else {
			fld.Blur()
		}
	}
	return cmd
}

// Update handles focus keys and forwards everything else to the focused
// field. submitted is true when enter was pressed and the form is not busy.
func (f *Form) Update(msg tea.Msg) (submitted bool, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !f.busy {
			return false, nil
		}
		f.spinner, cmd = f.spinner.Update(msg)
		return false, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return false, f.setFocus(f.focus + 1)
		case "shift+tab", "up":
			return false, f.setFocus(f.focus - 1)
		case "enter":
			return !f.busy, nil
		}
	}

	if f.focus < len(f.Fields) && !f.busy {
		cmd = f.Fields[f.focus].Update(msg)
	}
	return false, cmd
}

// View renders fields and the submit button.
func (f *Form) View(theme *styles.Theme) string {
	parts := make([]string, 0, len(f.Fields)+1)
	for _, fld := range f.Fields {
		parts = append(parts, fld.View(theme))
	}

	var button string
	switch {
	case f.busy:
		button = theme.ButtonDisabled.Render(f.spinner.View() + " " + f.SubmitLabel)
	case f.focus == len(f.Fields):
		button = theme.ButtonFocused.Render(f.SubmitLabel)
	default:
		button = theme.Button.Render(f.SubmitLabel)
	}
	parts = append(parts, "", button)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
