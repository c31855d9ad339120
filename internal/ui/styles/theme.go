// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile
	Compact      bool

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// NAVIGATOR
	// ==========================================================================

	NavBar     lipgloss.Style
	Brand      lipgloss.Style
	NavLink    lipgloss.Style
	NavUser    lipgloss.Style
	NavDivider lipgloss.Style

	// ==========================================================================
	// PAGE
	// ==========================================================================

	Page      lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Section   lipgloss.Style
	Muted     lipgloss.Style
	EmptyText lipgloss.Style

	// ==========================================================================
	// FORMS
	// ==========================================================================

	FieldLabel        lipgloss.Style
	FieldLabelFocused lipgloss.Style
	FieldBox          lipgloss.Style
	FieldBoxFocused   lipgloss.Style
	FieldError        lipgloss.Style
	Button            lipgloss.Style
	ButtonFocused     lipgloss.Style
	ButtonDisabled    lipgloss.Style

	// ==========================================================================
	// GROUP TILES
	// ==========================================================================

	Tile         lipgloss.Style
	TileSelected lipgloss.Style
	TileName     lipgloss.Style
	TileMeta     lipgloss.Style

	// ==========================================================================
	// TABS
	// ==========================================================================

	Tab       lipgloss.Style
	TabActive lipgloss.Style
	TabPanel  lipgloss.Style

	// ==========================================================================
	// STATUS
	// ==========================================================================

	Spinner      lipgloss.Style
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
	Toast        lipgloss.Style
	HelpBar      lipgloss.Style
}

// NewTheme creates a theme for mode "auto", "dark" or "light".
func NewTheme(mode string) *Theme {
	profile := termenv.ColorProfile()

	var isDark bool
	switch mode {
	case "dark":
		isDark = true
		lipgloss.SetHasDarkBackground(true)
	case "light":
		isDark = false
		lipgloss.SetHasDarkBackground(false)
	default:
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

// SetCompact toggles borderless rendering.
func (t *Theme) SetCompact(compact bool) {
	t.Compact = compact
	t.initStyles()
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// ContentWidth is the usable width inside the page padding.
func (t *Theme) ContentWidth() int {
	w := t.Width - t.Page.GetHorizontalFrameSize()
	if w < 20 {
		return 20
	}
	return w
}

// TileColumns returns how many group tiles fit side by side.
func (t *Theme) TileColumns() int {
	switch t.GetLayoutMode() {
	case LayoutNarrow:
		return 1
	case LayoutMedium:
		return 2
	default:
		return 3
	}
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // >= 100 columns
)

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	border := lipgloss.RoundedBorder()
	if t.Compact {
		border = lipgloss.HiddenBorder()
	}

	// Navigator
	t.NavBar = lipgloss.NewStyle().
		Background(IndigoDeep).
		Padding(0, 1)
	t.Brand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		Background(IndigoDeep)
	t.NavLink = lipgloss.NewStyle().
		Foreground(Teal).
		Background(IndigoDeep).
		Underline(true)
	t.NavUser = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(IndigoDeep).
		Bold(true)
	t.NavDivider = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(IndigoDeep)

	// Page
	t.Page = lipgloss.NewStyle().Padding(1, 2)
	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Indigo).
		MarginBottom(1)
	t.Subtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)
	t.Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)
	t.EmptyText = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true).
		Padding(1, 0)

	// Forms
	t.FieldLabel = lipgloss.NewStyle().Foreground(TextSecondary)
	t.FieldLabelFocused = lipgloss.NewStyle().Foreground(Teal).Bold(true)
	t.FieldBox = lipgloss.NewStyle().
		Border(border).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.FieldBoxFocused = t.FieldBox.
		BorderForeground(Teal)
	t.FieldError = lipgloss.NewStyle().Foreground(Rose)
	t.Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SurfaceBright).
		Padding(0, 3)
	t.ButtonFocused = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Indigo).
		Bold(true).
		Padding(0, 3)
	t.ButtonDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(SurfaceDim).
		Padding(0, 3)

	// Group tiles
	t.Tile = lipgloss.NewStyle().
		Border(border).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.TileSelected = t.Tile.
		BorderForeground(Teal)
	t.TileName = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	t.TileMeta = lipgloss.NewStyle().Foreground(TextSecondary)

	// Tabs
	t.Tab = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 2)
	t.TabActive = lipgloss.NewStyle().
		Foreground(Indigo).
		Bold(true).
		Underline(true).
		Padding(0, 2)
	t.TabPanel = lipgloss.NewStyle().
		Border(border, true, false, false, false).
		BorderForeground(Overlay).
		Padding(1, 0)

	// Status
	t.Spinner = lipgloss.NewStyle().Foreground(Amber)
	t.SuccessStyle = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.ErrorStyle = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.WarningStyle = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	t.InfoStyle = lipgloss.NewStyle().Foreground(Sky).Bold(true)
	t.Toast = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	t.HelpBar = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 2)
}
