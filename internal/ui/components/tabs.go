// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studysync-tui/internal/ui/styles"
)

// Tabs is a tab strip. The active index is clamped when labels change.
type Tabs struct {
	labels []string
	active int
}

// NewTabs creates tabs with the first one active.
func NewTabs(labels ...string) *Tabs {
	return &Tabs{labels: labels}
}

// SetLabels replaces the labels, keeping the active tab when it still exists.
func (t *Tabs) SetLabels(labels ...string) {
	current := t.ActiveLabel()
	t.labels = labels
	t.active = 0
	for i, l := range labels {
		if l == current {
			t.active = i
		}
	}
}

// Labels returns the tab labels.
func (t *Tabs) Labels() []string {
	return append([]string(nil), t.labels...)
}

// Active returns the active index.
func (t *Tabs) Active() int {
	return t.active
}

// ActiveLabel returns the active label, or "" when there are no tabs.
func (t *Tabs) ActiveLabel() string {
	if t.active < 0 || t.active >= len(t.labels) {
		return ""
	}
	return t.labels[t.active]
}

// Next activates the next tab, wrapping.
func (t *Tabs) Next() {
	if len(t.labels) > 0 {
		t.active = (t.active + 1) % len(t.labels)
	}
}

// Prev activates the previous tab, wrapping.
func (t *Tabs) Prev() {
	if len(t.labels) > 0 {
		t.active = (t.active - 1 + len(t.labels)) % len(t.labels)
	}
}

// Select activates the tab with the given label.
func (t *Tabs) Select(label string) bool {
	for i, l := range t.labels {
		if l == label {
			t.active = i
			return true
		}
	}
	return false
}

// View renders the strip.
func (t *Tabs) View(theme *styles.Theme) string {
	rendered := make([]string, 0, len(t.labels))
	for i, l := range t.labels {
		if i == t.active {
			rendered = append(rendered, theme.TabActive.Render(l))
		} else {
			rendered = append(rendered, theme.Tab.Render(l))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
