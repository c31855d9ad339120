// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studysync-tui/internal/model"
	"github.com/jeranaias/studysync-tui/internal/ui/styles"
	"github.com/jeranaias/studysync-tui/internal/util"
)

// BrandName is shown at the left of the navigator.
const BrandName = "StudySync"

// NavigatorLinks returns the right-hand text of the navigator for id.
func NavigatorLinks(id model.Identity) string {
	if id.Authenticated() {
		return id.Username + " | Log out"
	}
	return "Login | Register"
}

// RenderNavigator renders the top bar across width cells.
func RenderNavigator(theme *styles.Theme, id model.Identity, width int) string {
	brand := theme.Brand.Render(BrandName)

	var right string
	if id.Authenticated() {
		name := util.TruncateWidth(id.Username, 24)
		right = theme.NavUser.Render(name) +
			theme.NavDivider.Render(" | ") +
			theme.NavLink.Render("Log out") +
			theme.NavDivider.Render(" (ctrl+o)")
	} else {
		right = theme.NavLink.Render("Login") +
			theme.NavDivider.Render(" (ctrl+l) | ") +
			theme.NavLink.Render("Register") +
			theme.NavDivider.Render(" (ctrl+r)")
	}

	inner := width - theme.NavBar.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(brand) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	spacer := theme.NavDivider.Render(util.PadRight("", gap))
	return theme.NavBar.Width(width).Render(brand + spacer + right)
}
