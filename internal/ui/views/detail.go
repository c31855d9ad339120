// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/studysync-tui/internal/api"
	"github.com/jeranaias/studysync-tui/internal/model"
	"github.com/jeranaias/studysync-tui/internal/ui/components"
	"github.com/jeranaias/studysync-tui/internal/ui/router"
	"github.com/jeranaias/studysync-tui/internal/util"
)

// Tab labels.
const (
	TabInfo      = "Group Info"
	TabMaterials = "Materials"
	TabChats     = "Chats"
	TabAIBot     = "AI Bot"
)

// Placeholder panel text.
const (
	TextMaterials = "Study materials for this group"
	TextChats     = "Chat history and messages"
	TextAIBot     = "AI assistant for this study group"
)

// TabsFor returns the tabs visible to an anonymous or authenticated user.
func TabsFor(authenticated bool) []string {
	if authenticated {
		return []string{TabInfo, TabMaterials, TabChats, TabAIBot}
	}
	return []string{TabInfo}
}

type askResultMsg struct {
	router.Response
	question string
	answer   model.AssistantAnswer
	err      error
}

// Detail is the /group/:id view.
type Detail struct {
	size
	ctx   *router.Context
	mount router.Mount

	group model.GroupSummary
	valid bool
	tabs  *components.Tabs

	question textinput.Model
	spinner  spinner.Model
	asking   bool
	asked    string
	answer   *model.AssistantAnswer
}

// NewDetail constructs the detail view. The group comes from the selection
// store; a mismatch with the route id makes Init redirect home.
func NewDetail(ctx *router.Context, mount router.Mount) router.View {
	q := textinput.New()
	q.Placeholder = "Ask about this group's materials"
	q.Prompt = "> "

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	v := &Detail{
		ctx:      ctx,
		mount:    mount,
		tabs:     components.NewTabs(),
		question: q,
		spinner:  sp,
	}
	v.resolve()
	return v
}

// resolve checks the selection against the route and refreshes the tabs.
func (v *Detail) resolve() {
	id, err := strconv.ParseInt(v.mount.Params["id"], 10, 64)
	g, ok := v.ctx.Groups().Current()
	v.valid = err == nil && ok && g.ID == id
	v.group = g
	v.tabs.SetLabels(TabsFor(v.ctx.Session().Authenticated())...)
}

// Valid reports whether the view resolved to the selected group.
func (v *Detail) Valid() bool {
	return v.valid
}

// Init implements router.View.
func (v *Detail) Init() tea.Cmd {
	if !v.valid {
		return router.Navigate(router.RouteHome)
	}
	return nil
}

// Update implements router.View.
func (v *Detail) Update(msg tea.Msg) (router.View, tea.Cmd) {
	switch msg := msg.(type) {
	case router.IdentityChangedMsg:
		v.resolve()
		if !v.valid {
			return v, router.Navigate(router.RouteHome)
		}
		return v, v.syncFocus()

	case askResultMsg:
		v.asking = false
		if msg.err != nil {
			v.ctx.Logger.Warn("assistant query failed", "error", msg.err)
			text := api.Message(msg.err)
			if text == "" || errors.Is(msg.err, api.ErrTransport) {
				text = "The AI assistant is unavailable."
			}
			v.ctx.Toasts.Error(text)
			return v, nil
		}
		v.asked = msg.question
		v.answer = &msg.answer
		return v, nil

	case spinner.TickMsg:
		if !v.asking {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			v.tabs.Next()
			return v, v.syncFocus()
		case "shift+tab":
			v.tabs.Prev()
			return v, v.syncFocus()
		case "enter":
			if v.tabs.ActiveLabel() == TabAIBot {
				return v, v.ask()
			}
			return v, nil
		}
	}

	if v.tabs.ActiveLabel() == TabAIBot && !v.asking {
		var cmd tea.Cmd
		v.question, cmd = v.question.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *Detail) syncFocus() tea.Cmd {
	if v.tabs.ActiveLabel() == TabAIBot {
		return v.question.Focus()
	}
	v.question.Blur()
	return nil
}

func (v *Detail) ask() tea.Cmd {
	q := strings.TrimSpace(v.question.Value())
	if q == "" || v.asking {
		return nil
	}
	if !v.ctx.Backend.AssistantEnabled() {
		v.ctx.Toasts.Warning("No assistant URL configured.")
		return nil
	}

	v.asking = true
	v.question.Reset()
	backend := v.ctx.Backend
	resp := v.mount.Respond()
	return tea.Batch(
		v.spinner.Tick,
		func() tea.Msg {
			answer, err := backend.Ask(context.Background(), q)
			return askResultMsg{Response: resp, question: q, answer: answer, err: err}
		},
	)
}

// Tabs returns the visible tab labels.
func (v *Detail) Tabs() []string {
	return v.tabs.Labels()
}

// View implements router.View.
func (v *Detail) View() string {
	if !v.valid {
		return ""
	}
	theme := v.ctx.Theme

	var panel string
	switch v.tabs.ActiveLabel() {
	case TabMaterials:
		panel = TextMaterials
	case TabChats:
		panel = TextChats
	case TabAIBot:
		panel = v.viewAIBot()
	default:
		panel = v.viewInfo()
	}

	return page(v.ctx, v.group.Name,
		v.tabs.View(theme),
		theme.TabPanel.Render(panel),
	)
}

func (v *Detail) viewInfo() string {
	theme := v.ctx.Theme
	md := fmt.Sprintf("University: %s\n\nDescription: %s", v.group.University, v.group.Description)
	parts := []string{v.ctx.Markdown.Render(md, theme.ContentWidth())}
	if !v.ctx.Session().Authenticated() {
		parts = append(parts, "", theme.ButtonFocused.Render("Join"),
			theme.Muted.Render("Log in to join this group (ctrl+l)."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (v *Detail) viewAIBot() string {
	theme := v.ctx.Theme
	parts := []string{theme.Subtitle.Render(TextAIBot), "", v.question.View()}

	if v.asking {
		parts = append(parts, "", theme.Spinner.Render(v.spinner.View())+" Thinking...")
	}
	if v.answer != nil {
		parts = append(parts, "",
			theme.Section.Render("Q: "+v.asked),
			v.ctx.Markdown.Render(v.answer.Answer, theme.ContentWidth()))
		if len(v.answer.Sources) > 0 {
			parts = append(parts, theme.Section.Render("Sources"))
			for _, src := range v.answer.Sources {
				line := fmt.Sprintf("- %s, p. %d", src.Source, src.Page)
				parts = append(parts, theme.Muted.Render(util.TruncateWidth(line, theme.ContentWidth())))
			}
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
