// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package router

import (
	"context"
	"io"
	"log/slog"

	"github.com/jeranaias/studysync-tui/internal/groups"
	"github.com/jeranaias/studysync-tui/internal/markdown"
	"github.com/jeranaias/studysync-tui/internal/model"
	"github.com/jeranaias/studysync-tui/internal/session"
	"github.com/jeranaias/studysync-tui/internal/ui/components"
	"github.com/jeranaias/studysync-tui/internal/ui/styles"
)

// Backend is the remote API the views call. *api.Client implements it.
type Backend interface {
	Register(ctx context.Context, creds model.RegisterCredentials) (string, error)
	ListGroups(ctx context.Context) ([]model.GroupSummary, error)
	MyGroups(ctx context.Context, token string) ([]model.GroupSummary, error)
	SearchGroups(ctx context.Context, query string) ([]model.GroupSummary, error)
	CreateGroup(ctx context.Context, token string, form model.CreateGroupForm) (model.GroupSummary, error)
	Ask(ctx context.Context, question string) (model.AssistantAnswer, error)
	AssistantEnabled() bool
}

// Context is what every view is constructed with. The store accessors
// panic when the corresponding provider was never supplied.
type Context struct {
	session   *session.Store
	selection *groups.Selection

	Backend  Backend
	Theme    *styles.Theme
	Toasts   *components.ToastManager
	Markdown *markdown.Renderer
	Logger   *slog.Logger
}

// Providers bundles the values for NewContext.
type Providers struct {
	Session   *session.Store
	Selection *groups.Selection
	Backend   Backend
	Theme     *styles.Theme
	Toasts    *components.ToastManager
	Markdown  *markdown.Renderer
	Logger    *slog.Logger
}

// NewContext builds a view context. Missing optional pieces get defaults;
// the stores are left nil when absent so misuse fails loudly.
func NewContext(p Providers) *Context {
	c := &Context{
		session:   p.Session,
		selection: p.Selection,
		Backend:   p.Backend,
		Theme:     p.Theme,
		Toasts:    p.Toasts,
		Markdown:  p.Markdown,
		Logger:    p.Logger,
	}
	if c.Theme == nil {
		c.Theme = styles.NewTheme("auto")
	}
	if c.Toasts == nil {
		c.Toasts = components.NewToastManager()
	}
	if c.Markdown == nil {
		c.Markdown = markdown.ForTheme(c.Theme.IsDark)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Session returns the session store.
func (c *Context) Session() *session.Store {
	if c == nil || c.session == nil {
		panic(session.ErrNoProvider)
	}
	return c.session
}

// Groups returns the group selection store.
func (c *Context) Groups() *groups.Selection {
	if c == nil || c.selection == nil {
		panic(groups.ErrNoProvider)
	}
	return c.selection
}
