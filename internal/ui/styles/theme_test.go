// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme_Modes(t *testing.T) {
	if th := NewTheme("dark"); !th.IsDark {
		t.Error(`NewTheme("dark").IsDark = false`)
	}
	if th := NewTheme("light"); th.IsDark {
		t.Error(`NewTheme("light").IsDark = true`)
	}
}

func TestThemeStylesRender(t *testing.T) {
	theme := NewTheme("dark")

	for name, style := range map[string]interface{ Render(...string) string }{
		"NavBar":     theme.NavBar,
		"Brand":      theme.Brand,
		"FieldBox":   theme.FieldBox,
		"Tile":       theme.Tile,
		"TabActive":  theme.TabActive,
		"ErrorStyle": theme.ErrorStyle,
	} {
		if style.Render("test") == "" {
			t.Errorf("%s style rendered empty", name)
		}
	}
}

func TestGetLayoutMode(t *testing.T) {
	theme := NewTheme("dark")

	tests := []struct {
		width int
		mode  LayoutMode
		cols  int
	}{
		{40, LayoutNarrow, 1},
		{59, LayoutNarrow, 1},
		{60, LayoutMedium, 2},
		{99, LayoutMedium, 2},
		{100, LayoutWide, 3},
	}

	for _, tt := range tests {
		theme.SetSize(tt.width, 30)
		if got := theme.GetLayoutMode(); got != tt.mode {
			t.Errorf("width %d: GetLayoutMode() = %v, want %v", tt.width, got, tt.mode)
		}
		if got := theme.TileColumns(); got != tt.cols {
			t.Errorf("width %d: TileColumns() = %d, want %d", tt.width, got, tt.cols)
		}
	}
}

func TestContentWidth_Floor(t *testing.T) {
	theme := NewTheme("dark")
	theme.SetSize(10, 10)
	if got := theme.ContentWidth(); got != 20 {
		t.Errorf("ContentWidth() = %d, want floor of 20", got)
	}
}

func TestSetCompact(t *testing.T) {
	theme := NewTheme("dark")
	theme.SetCompact(true)
	if !theme.Compact {
		t.Error("SetCompact(true) did not set Compact")
	}
}
