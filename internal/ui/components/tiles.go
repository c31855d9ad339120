// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studysync-tui/internal/model"
	"github.com/jeranaias/studysync-tui/internal/ui/styles"
	"github.com/jeranaias/studysync-tui/internal/util"
)

// RenderGroupTile renders one group card of the given outer width.
func RenderGroupTile(theme *styles.Theme, g model.GroupSummary, width int, selected bool) string {
	style := theme.Tile
	if selected {
		style = theme.TileSelected
	}
	inner := width - style.GetHorizontalFrameSize()
	if inner < 8 {
		inner = 8
	}

	desc := strings.Join(strings.Fields(g.Description), " ")
	lines := []string{
		theme.TileName.Render(util.TruncateWidth(g.Name, inner)),
		theme.TileMeta.Render(util.TruncateWidth(g.University, inner)),
		theme.Muted.Render(util.TruncateWidth(desc, inner)),
	}
	return style.Width(inner).Render(strings.Join(lines, "\n"))
}

// RenderGroupTiles lays groups out in rows of the given column count.
// selected is an index into groups, or -1.
func RenderGroupTiles(theme *styles.Theme, groups []model.GroupSummary, selected, columns, width int) string {
	if columns < 1 {
		columns = 1
	}
	tileWidth := width / columns

	var rows []string
	for start := 0; start < len(groups); start += columns {
		end := start + columns
		if end > len(groups) {
			end = len(groups)
		}
		cells := make([]string, 0, columns)
		for i := start; i < end; i++ {
			cells = append(cells, RenderGroupTile(theme, groups[i], tileWidth, i == selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
