// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studysync-tui/internal/ui/styles"
)

// FieldKind selects the input widget behind a Field.
type FieldKind int

const (
	FieldText FieldKind = iota
	FieldPassword
	FieldArea
)

// Field is a labelled input with an inline error. Editing the value clears
// the error.
type Field struct {
	Name  string
	Label string
	Err   string

	kind  FieldKind
	input textinput.Model
	area  textarea.Model
}

// NewField creates a field. charLimit 0 means unlimited; input beyond the
// limit is dropped as it is typed.
func NewField(name, label string, kind FieldKind, charLimit int) *Field {
	f := &Field{Name: name, Label: label, kind: kind}

	if kind == FieldArea {
		ta := textarea.New()
		ta.CharLimit = charLimit
		ta.ShowLineNumbers = false
		ta.Prompt = ""
		ta.SetHeight(3)
		// enter is reserved for submit
		ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("alt+enter"))
		ta.Blur()
		f.area = ta
		return f
	}

	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = charLimit
	if kind == FieldPassword {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	f.input = ti
	return f
}

// WithPlaceholder sets the placeholder text.
func (f *Field) WithPlaceholder(p string) *Field {
	if f.kind == FieldArea {
		f.area.Placeholder = p
	} else {
		f.input.Placeholder = p
	}
	return f
}

// Value returns the current text.
func (f *Field) Value() string {
	if f.kind == FieldArea {
		return f.area.Value()
	}
	return f.input.Value()
}

// SetValue replaces the text.
func (f *Field) SetValue(v string) {
	if f.kind == FieldArea {
		f.area.SetValue(v)
	} else {
		f.input.SetValue(v)
	}
}

// Reset clears the value and the error.
func (f *Field) Reset() {
	if f.kind == FieldArea {
		f.area.Reset()
	} else {
		f.input.Reset()
	}
	f.Err = ""
}

// Focus gives the field keyboard focus.
func (f *Field) Focus() tea.Cmd {
	if f.kind == FieldArea {
		return f.area.Focus()
	}
	return f.input.Focus()
}

// Blur removes keyboard focus.
func (f *Field) Blur() {
	if f.kind == FieldArea {
		f.area.Blur()
	} else {
		f.input.Blur()
	}
}

// Focused reports whether the field has focus.
func (f *Field) Focused() bool {
	if f.kind == FieldArea {
		return f.area.Focused()
	}
	return f.input.Focused()
}

// SetWidth sets the input width in cells.
func (f *Field) SetWidth(w int) {
	if w < 10 {
		w = 10
	}
	if f.kind == FieldArea {
		f.area.SetWidth(w)
	} else {
		f.input.Width = w
	}
}

// Update forwards msg to the widget.
func (f *Field) Update(msg tea.Msg) tea.Cmd {
	before := f.Value()
	var cmd tea.Cmd
	if f.kind == FieldArea {
		f.area, cmd = f.area.Update(msg)
	} else {
		f.input, cmd = f.input.Update(msg)
	}
	if f.Value() != before {
		f.Err = ""
	}
	return cmd
}

// View renders label, input box and error line.
func (f *Field) View(theme *styles.Theme) string {
	label, box := theme.FieldLabel, theme.FieldBox
	if f.Focused() {
		label, box = theme.FieldLabelFocused, theme.FieldBoxFocused
	}

	var input string
	if f.kind == FieldArea {
		input = f.area.View()
	} else {
		input = f.input.View()
	}

	parts := []string{label.Render(f.Label), box.Render(input)}
	if f.Err != "" {
		parts = append(parts, theme.FieldError.Render(styles.StatusIndicators.Error+" "+f.Err))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
