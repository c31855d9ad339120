// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studysync-tui/internal/model"
	"github.com/jeranaias/studysync-tui/internal/ui/components"
	"github.com/jeranaias/studysync-tui/internal/ui/router"
	"github.com/jeranaias/studysync-tui/internal/util"
	"github.com/jeranaias/studysync-tui/internal/validate"
)

// Home view text.
const (
	TextLoading       = "Loading..."
	TextNoGroups      = "Join a Group!"
	TextNoSearchMatch = "No Group Found."
	MsgLoginToCreate  = "Log in to create a group."
	MsgGroupCreated   = "Group created."
)

// homeMode is the active panel on the home view.
type homeMode int

const (
	modeGroups homeMode = iota
	modeCreate
	modeSearch
)

// List and search replies carry the fetch generation they were issued
// under. Replies from an older generation are dropped.
type groupsLoadedMsg struct {
	router.Response
	gen    int
	groups []model.GroupSummary
	err    error
}

type searchResultMsg struct {
	router.Response
	gen    int
	query  string
	groups []model.GroupSummary
	err    error
}

type groupCreatedMsg struct {
	router.Response
	group model.GroupSummary
	err   error
}

// Home is the / view: the group list plus the create and find panels.
type Home struct {
	size
	ctx   *router.Context
	mount router.Mount
	mode  homeMode

	groups   []model.GroupSummary
	gen      int
	loading  bool
	selected int
	// query is set while the list shows search results.
	query string

	create *components.Form
	search *components.Form
}

// NewHome constructs the home view.
func NewHome(ctx *router.Context, mount router.Mount) router.View {
	return &Home{
		ctx:   ctx,
		mount: mount,
		create: components.NewForm("Create",
			components.NewField(validate.FieldName, "Group Name", components.FieldText, model.MaxGroupNameLen).
				WithPlaceholder("Enter group name"),
			components.NewField(validate.FieldUniversity, "University", components.FieldText, model.MaxUniversityLen).
				WithPlaceholder("Enter the University"),
			components.NewField(validate.FieldDescription, "Description", components.FieldArea, model.MaxDescriptionLen).
				WithPlaceholder("Enter group description (optional)"),
			components.NewField(validate.FieldImage, "Group Image", components.FieldText, 0).
				WithPlaceholder("path to an image (optional)"),
		),
		search: components.NewForm("Find",
			components.NewField(validate.FieldQuery, "Group name or university", components.FieldText, 0),
		),
	}
}

// Init clears the selection and fetches the list.
func (v *Home) Init() tea.Cmd {
	return v.refresh()
}

// refresh clears the current group and fetches the list for the current
// identity.
func (v *Home) refresh() tea.Cmd {
	v.ctx.Groups().Clear()
	v.gen++
	v.loading = true
	v.query = ""
	v.groups = nil
	v.selected = 0

	id := v.ctx.Session().Snapshot()
	backend := v.ctx.Backend
	resp := v.mount.Respond()
	gen := v.gen
	return func() tea.Msg {
		var groups []model.GroupSummary
		var err error
		if id.Authenticated() {
			groups, err = backend.MyGroups(context.Background(), id.Token)
		} else {
			groups, err = backend.ListGroups(context.Background())
		}
		return groupsLoadedMsg{Response: resp, gen: gen, groups: groups, err: err}
	}
}

// Update implements router.View.
func (v *Home) Update(msg tea.Msg) (router.View, tea.Cmd) {
	switch msg := msg.(type) {
	case router.IdentityChangedMsg:
		v.mode = modeGroups
		return v, v.refresh()

	case groupsLoadedMsg:
		if msg.gen != v.gen {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.ctx.Logger.Warn("load groups", "error", msg.err)
			v.ctx.Toasts.Error("Could not load groups.")
			return v, nil
		}
		v.groups = msg.groups
		return v, nil

	case searchResultMsg:
		v.search.SetBusy(false)
		if msg.gen != v.gen {
			return v, nil
		}
		if msg.err != nil {
			v.ctx.Logger.Warn("search groups", "query", msg.query, "error", msg.err)
			v.ctx.Toasts.Error("Search failed.")
			return v, nil
		}
		// Results win over a list load still in flight.
		v.gen++
		v.loading = false
		v.groups = msg.groups
		v.query = msg.query
		v.selected = 0
		v.mode = modeGroups
		return v, nil

	case groupCreatedMsg:
		v.create.SetBusy(false)
		if msg.err != nil {
			v.ctx.Logger.Warn("create group", "error", msg.err)
			v.ctx.Toasts.Error("Failed to create group. Please try again.")
			return v, nil
		}
		v.groups = append([]model.GroupSummary{msg.group}, v.groups...)
		v.selected = 0
		v.mode = modeGroups
		v.ctx.Toasts.Success(MsgGroupCreated)
		return v, v.create.Reset()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+n":
			if !v.ctx.Session().Authenticated() {
				v.ctx.Toasts.Warning(MsgLoginToCreate)
				return v, nil
			}
			v.mode = modeCreate
			return v, v.create.Init()
		case "ctrl+f":
			v.mode = modeSearch
			return v, v.search.Init()
		case "ctrl+g":
			v.mode = modeGroups
			return v, nil
		}
	}

	switch v.mode {
	case modeCreate:
		submitted, cmd := v.create.Update(msg)
		if submitted {
			return v, v.submitCreate()
		}
		return v, cmd
	case modeSearch:
		submitted, cmd := v.search.Update(msg)
		if submitted {
			return v, v.submitSearch()
		}
		return v, cmd
	default:
		return v, v.updateList(msg)
	}
}

func (v *Home) updateList(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(v.groups) == 0 {
		return nil
	}
	cols := v.ctx.Theme.TileColumns()
	switch key.String() {
	case "right", "l", "tab":
		v.selected = min(v.selected+1, len(v.groups)-1)
	case "left", "h", "shift+tab":
		v.selected = max(v.selected-1, 0)
	case "down", "j":
		v.selected = min(v.selected+cols, len(v.groups)-1)
	case "up", "k":
		v.selected = max(v.selected-cols, 0)
	case "enter":
		return v.open(v.selected)
	}
	return nil
}

// open selects the group at index i and navigates to its detail route.
func (v *Home) open(i int) tea.Cmd {
	if i < 0 || i >= len(v.groups) {
		return nil
	}
	g := v.groups[i]
	v.ctx.Groups().SetCurrent(&g)
	return router.Navigate(g.Path())
}

func (v *Home) submitSearch() tea.Cmd {
	query, errs := validate.SearchQuery(v.search.Value(validate.FieldQuery))
	if !errs.OK() {
		v.search.SetErrors(errs)
		return nil
	}

	backend := v.ctx.Backend
	resp := v.mount.Respond()
	gen := v.gen
	return tea.Batch(
		v.search.SetBusy(true),
		func() tea.Msg {
			groups, err := backend.SearchGroups(context.Background(), query)
			return searchResultMsg{Response: resp, gen: gen, query: query, groups: groups, err: err}
		},
	)
}

func (v *Home) submitCreate() tea.Cmd {
	form, errs := validate.CreateGroup(model.CreateGroupForm{
		Name:        v.create.Value(validate.FieldName),
		University:  v.create.Value(validate.FieldUniversity),
		Description: v.create.Value(validate.FieldDescription),
		ImagePath:   v.create.Value(validate.FieldImage),
	})
	if !errs.OK() {
		v.create.SetErrors(errs)
		return nil
	}

	token := v.ctx.Session().Token()
	backend := v.ctx.Backend
	resp := v.mount.Respond()
	return tea.Batch(
		v.create.SetBusy(true),
		func() tea.Msg {
			g, err := backend.CreateGroup(context.Background(), token, form)
			return groupCreatedMsg{Response: resp, group: g, err: err}
		},
	)
}

// SetSize implements router.View.
func (v *Home) SetSize(width, height int) {
	v.size.SetSize(width, height)
	v.create.SetWidth(v.formWidth())
	v.search.SetWidth(v.formWidth())
}

// View implements router.View.
func (v *Home) View() string {
	theme := v.ctx.Theme

	switch v.mode {
	case modeCreate:
		counter := theme.Muted.Render(fmt.Sprintf("%d/%d characters",
			util.RuneLen(v.create.Value(validate.FieldDescription)), model.MaxDescriptionLen))
		return page(v.ctx, "Create Group", v.create.View(theme), counter,
			theme.Muted.Render("ctrl+g back to groups"))
	case modeSearch:
		return page(v.ctx, "Find Group", v.search.View(theme),
			theme.Muted.Render("ctrl+g back to groups"))
	}

	title := "All Groups"
	if v.ctx.Session().Authenticated() {
		title = "My Groups"
	}
	if v.query != "" {
		title = fmt.Sprintf("Results for %q", v.query)
	}

	var body string
	switch {
	case v.loading:
		body = theme.EmptyText.Render(TextLoading)
	case len(v.groups) == 0 && v.query != "":
		body = theme.EmptyText.Render(TextNoSearchMatch)
	case len(v.groups) == 0:
		body = theme.EmptyText.Render(TextNoGroups)
	default:
		body = components.RenderGroupTiles(theme, v.groups, v.selected, theme.TileColumns(), theme.ContentWidth())
	}

	actions := theme.Muted.Render("ctrl+n create   ctrl+f find   enter open")
	return page(v.ctx, title, actions, "", body)
}

// Groups returns the groups currently listed.
func (v *Home) Groups() []model.GroupSummary {
	return append([]model.GroupSummary(nil), v.groups...)
}
