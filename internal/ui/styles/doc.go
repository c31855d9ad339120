// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the StudySync TUI.

All colors use Lip Gloss AdaptiveColor so the same palette works on light
and dark terminals.

# Color System (colors.go)

  - Indigo - Brand color, navigator bar, active tab
  - Teal - Focus ring, links, selected group tile
  - Emerald - Success toasts
  - Amber - Warnings and loading states
  - Rose - Errors, inline field errors

Status text always carries an ASCII indicator ([OK], [X], [!], [i]) next to
the color so states stay readable without color.

# Theme (theme.go)

Theme groups every lipgloss.Style used by the views:

	theme := styles.NewTheme("auto")
	theme.SetSize(width, height)
	fmt.Println(theme.Brand.Render("StudySync"))

NewTheme accepts "auto", "dark" or "light". "auto" asks the terminal for
its background through termenv.
*/
package styles
