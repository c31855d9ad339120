// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package router is the top-level Bubble Tea model. It maps paths to views,
// owns the navigator bar and the toast stack, and enforces that responses
// for a view that is no longer mounted are dropped.
package router

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/jeranaias/studysync-tui/internal/model"
	"github.com/jeranaias/studysync-tui/internal/session"
	"github.com/jeranaias/studysync-tui/internal/ui/components"
)

// View is a routed screen.
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (View, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Factory constructs the view for a mount.
type Factory func(ctx *Context, mount Mount) View

// ChangeSource delivers external session changes, e.g. a *session.Watcher.
type ChangeSource interface {
	WaitForChange() tea.Cmd
}

// Router is the root tea.Model.
type Router struct {
	ctx       *Context
	factories map[string]Factory
	watcher   ChangeSource
	keys      components.KeyMap
	help      help.Model

	mount Mount
	view  View

	width, height int

	identityDirty atomic.Bool
	navMu         sync.Mutex
	pendingNav    string
	unsubscribe   func()
}

// New creates a router starting at path. factories must contain an entry
// for every route constant.
func New(ctx *Context, factories map[string]Factory, path string) *Router {
	r := &Router{
		ctx:       ctx,
		factories: factories,
		keys:      components.DefaultKeyMap(),
		help:      help.New(),
	}

	store := ctx.Session()
	store.SetNotifier(ctx.Toasts)
	store.SetNavigator(func(p string) {
		r.navMu.Lock()
		r.pendingNav = p
		r.navMu.Unlock()
	})
	r.unsubscribe = store.Subscribe(func(model.Identity) {
		r.identityDirty.Store(true)
	})

	r.mountPath(path)
	return r
}

// WithWatcher makes the router listen for external session changes.
func (r *Router) WithWatcher(w ChangeSource) *Router {
	r.watcher = w
	return r
}

// Close releases the session subscription.
func (r *Router) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
}

// Mounted returns the current mount.
func (r *Router) Mounted() Mount {
	return r.mount
}

// CurrentView returns the mounted view.
func (r *Router) CurrentView() View {
	return r.view
}

// Init implements tea.Model.
func (r *Router) Init() tea.Cmd {
	cmds := []tea.Cmd{r.view.Init(), components.ToastTickCmd()}
	if r.watcher != nil {
		cmds = append(cmds, r.watcher.WaitForChange())
	}
	return tea.Batch(cmds...)
}

// mountPath constructs the view for path with a fresh mount id.
func (r *Router) mountPath(path string) {
	route, params := Match(path)
	if route == RouteHome {
		path = RouteHome
	}
	r.mount = Mount{
		ID:     uuid.NewString(),
		Path:   "/" + strings.Trim(path, "/"),
		Route:  route,
		Params: params,
	}
	r.view = r.factories[route](r.ctx, r.mount)
	if r.width > 0 {
		r.view.SetSize(r.width, r.viewHeight())
	}
	r.ctx.Logger.Debug("mounted view", "path", r.mount.Path, "mount", r.mount.ID)
}

func (r *Router) navigate(path string) tea.Cmd {
	r.mountPath(path)
	return r.view.Init()
}

// Update implements tea.Model.
func (r *Router) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width, r.height = msg.Width, msg.Height
		r.ctx.Theme.SetSize(msg.Width, msg.Height)
		r.help.Width = msg.Width
		r.view.SetSize(r.width, r.viewHeight())
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, r.keys.Quit):
			return r, tea.Quit
		case key.Matches(msg, r.keys.Back):
			return r, r.finish(r.navigate(RouteHome))
		case key.Matches(msg, r.keys.Login):
			return r, r.finish(r.navigate(RouteLogin))
		case key.Matches(msg, r.keys.Register):
			return r, r.finish(r.navigate(RouteRegister))
		case key.Matches(msg, r.keys.Logout):
			if r.ctx.Session().Authenticated() {
				r.ctx.Session().Logout()
			}
			return r, r.finish(nil)
		case key.Matches(msg, r.keys.Dismiss):
			r.ctx.Toasts.DismissNewest()
			return r, nil
		}

	case NavigateMsg:
		return r, r.finish(r.navigate(msg.Path))

	case components.ToastTickMsg:
		r.ctx.Toasts.Tick()
		return r, components.ToastTickCmd()

	case session.ChangedMsg:
		if r.watcher != nil {
			cmds = append(cmds, r.watcher.WaitForChange())
		}
		return r, r.finish(tea.Batch(cmds...))

	case Scoped:
		if msg.MountID() != r.mount.ID {
			r.ctx.Logger.Debug("dropped late response", "mount", msg.MountID(), "current", r.mount.ID)
			return r, r.finish(nil)
		}
	}

	var cmd tea.Cmd
	r.view, cmd = r.view.Update(msg)
	return r, r.finish(cmd)
}

// finish applies work queued by store callbacks during this update: a
// pending navigation from Logout and identity change handling.
func (r *Router) finish(cmd tea.Cmd) tea.Cmd {
	cmds := []tea.Cmd{cmd}

	r.navMu.Lock()
	nav := r.pendingNav
	r.pendingNav = ""
	r.navMu.Unlock()

	if r.identityDirty.CompareAndSwap(true, false) {
		r.ctx.Groups().Clear()
		if nav == "" {
			var viewCmd tea.Cmd
			r.view, viewCmd = r.view.Update(IdentityChangedMsg{})
			cmds = append(cmds, viewCmd)
		}
	}

	if nav != "" {
		cmds = append(cmds, r.navigate(nav))
	}
	return tea.Batch(cmds...)
}

func (r *Router) viewHeight() int {
	h := r.height - 2 // navigator and help bar
	if h < 1 {
		return 1
	}
	return h
}

// View implements tea.Model.
func (r *Router) View() string {
	nav := components.RenderNavigator(r.ctx.Theme, r.ctx.Session().Snapshot(), r.width)
	body := r.view.View()
	helpBar := r.ctx.Theme.HelpBar.Render(r.help.View(r.keys))

	screen := lipgloss.JoinVertical(lipgloss.Left, nav, body)
	if toasts := r.ctx.Toasts.Toasts(); len(toasts) > 0 {
		screen = lipgloss.JoinVertical(lipgloss.Left, screen,
			components.RenderToastStack(r.ctx.Theme, toasts, r.width))
	}

	if r.height > 0 {
		// Pin the help bar to the bottom row.
		gap := r.height - lipgloss.Height(screen) - 1
		if gap > 0 {
			screen += strings.Repeat("\n", gap)
		}
	}
	return screen + "\n" + helpBar
}
