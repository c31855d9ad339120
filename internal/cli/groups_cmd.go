// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// groups_cmd.go - study group listing, search and creation.
//
// Subcommands:
//   (none)            mine when logged in, list otherwise
//   list              all groups
//   mine              the logged in user's groups
//   search QUERY      groups whose name or university contains QUERY
//   create            create a group from flags

package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jeranaias/studysync-tui/internal/model"
	"github.com/jeranaias/studysync-tui/internal/util"
	"github.com/jeranaias/studysync-tui/internal/validate"
)

// Empty list text, shared with the TUI wording.
const (
	TextNoGroups      = "Join a Group!"
	TextNoSearchMatch = "No Group Found."
	MsgGroupCreated   = "Group created."
)

// HandleGroups dispatches the groups subcommands.
func (a *App) HandleGroups(args Args) error {
	p := args.Parser
	sub := p.Subcommand()
	if sub == "" {
		sub = "list"
		if a.Session.Authenticated() {
			sub = "mine"
		}
	}

	switch sub {
	case "list", "ls", "all":
		groups, err := a.Client.ListGroups(a.Ctx)
		if err != nil {
			return fmt.Errorf("list groups: %w", err)
		}
		a.printGroups("All Groups", groups, TextNoGroups)
		return nil

	case "mine", "my":
		token, err := a.requireLogin()
		if err != nil {
			return err
		}
		groups, err := a.Client.MyGroups(a.Ctx, token)
		if err != nil {
			return fmt.Errorf("list my groups: %w", err)
		}
		a.printGroups("My Groups", groups, TextNoGroups)
		return nil

	case "search", "find":
		query, errs := validate.SearchQuery(joinArgs(p, 1))
		if !errs.OK() {
			return &UsageError{Command: "groups search", Message: errs[validate.FieldQuery]}
		}
		groups, err := a.Client.SearchGroups(a.Ctx, query)
		if err != nil {
			return fmt.Errorf("search groups: %w", err)
		}
		a.printGroups(fmt.Sprintf("Results for %q", query), groups, TextNoSearchMatch)
		return nil

	case "create", "new":
		return a.createGroup(p)

	default:
		return &UsageError{Command: "groups", Message: fmt.Sprintf("unknown subcommand %q", sub)}
	}
}

func (a *App) createGroup(p *ArgParser) error {
	token, err := a.requireLogin()
	if err != nil {
		return err
	}

	form, errs := validate.CreateGroup(model.CreateGroupForm{
		Name:        p.Flag("name"),
		University:  p.Flag("university"),
		Description: p.Flag("description"),
		ImagePath:   p.Flag("image"),
	})
	if !errs.OK() {
		a.printFieldErrors(errs)
		return reported(errs)
	}

	g, err := a.Client.CreateGroup(a.Ctx, token, form)
	if err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	a.Success(MsgGroupCreated)
	if !a.quiet {
		renderGroupTable(a.Out, []model.GroupSummary{g}, GetTerminalWidth())
	}
	return nil
}

func (a *App) printGroups(title string, groups []model.GroupSummary, empty string) {
	if a.quiet {
		return
	}
	fmt.Fprintln(a.Out, TitleStyle.Render(title))
	if len(groups) == 0 {
		fmt.Fprintln(a.Out, DimStyle.Render(empty))
		return
	}
	renderGroupTable(a.Out, groups, GetTerminalWidth())
}

// =============================================================================
// TABLE
// =============================================================================

const (
	colID         = 6
	colName       = 24
	colUniversity = 20
	colGap        = 2
)

// renderGroupTable writes one row per group. The description column takes
// whatever width is left.
func renderGroupTable(w io.Writer, groups []model.GroupSummary, width int) {
	descWidth := width - colID - colName - colUniversity - 3*colGap
	if descWidth < 10 {
		descWidth = 10
	}
	gap := util.PadRight("", colGap)

	header := util.PadRight("ID", colID) + gap +
		util.PadRight("NAME", colName) + gap +
		util.PadRight("UNIVERSITY", colUniversity) + gap + "DESCRIPTION"
	fmt.Fprintln(w, SectionStyle.UnsetMarginTop().Render(header))

	for _, g := range groups {
		id := util.PadRight(strconv.FormatInt(g.ID, 10), colID)
		name := util.PadRight(util.TruncateWidth(g.Name, colName), colName)
		uni := util.PadRight(util.TruncateWidth(g.University, colUniversity), colUniversity)
		desc := util.TruncateWidth(g.Description, descWidth)
		fmt.Fprintln(w, HighlightStyle.Render(id)+gap+name+gap+uni+gap+DimStyle.Render(desc))
	}
}
