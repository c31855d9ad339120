// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studysync-tui/internal/model"
	"github.com/jeranaias/studysync-tui/internal/ui/components"
	"github.com/jeranaias/studysync-tui/internal/ui/router"
	"github.com/jeranaias/studysync-tui/internal/validate"
)

// Login view messages.
const (
	MsgLoggedIn    = "Successfully logged in."
	MsgLoginWrong  = "username or password is not right!"
	loginSubmitTxt = "Login"
)

type loginResultMsg struct {
	router.Response
	ok bool
}

// Login is the /login view.
type Login struct {
	size
	ctx   *router.Context
	mount router.Mount
	form  *components.Form
}

// NewLogin constructs the login view.
func NewLogin(ctx *router.Context, mount router.Mount) router.View {
	return &Login{
		ctx:   ctx,
		mount: mount,
		form: components.NewForm(loginSubmitTxt,
			components.NewField(validate.FieldUsername, "Username", components.FieldText, 0).
				WithPlaceholder("Username"),
			components.NewField(validate.FieldPassword, "Password", components.FieldPassword, 0).
				WithPlaceholder("Password"),
		),
	}
}

// Init implements router.View.
func (v *Login) Init() tea.Cmd {
	return v.form.Init()
}

// Update implements router.View.
func (v *Login) Update(msg tea.Msg) (router.View, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		v.form.SetBusy(false)
		if msg.ok {
			v.ctx.Toasts.Success(MsgLoggedIn)
			return v, router.Navigate(router.RouteHome)
		}
		v.ctx.Toasts.Error(MsgLoginWrong)
		return v, v.form.Reset()
	}

	submitted, cmd := v.form.Update(msg)
	if submitted {
		return v, v.submit()
	}
	return v, cmd
}

func (v *Login) submit() tea.Cmd {
	creds := model.LoginCredentials{
		Username: v.form.Value(validate.FieldUsername),
		Password: v.form.Value(validate.FieldPassword),
	}
	store := v.ctx.Session()
	resp := v.mount.Respond()

	return tea.Batch(
		v.form.SetBusy(true),
		func() tea.Msg {
			ok := store.Login(context.Background(), creds)
			return loginResultMsg{Response: resp, ok: ok}
		},
	)
}

// SetSize implements router.View.
func (v *Login) SetSize(width, height int) {
	v.size.SetSize(width, height)
	v.form.SetWidth(v.formWidth())
}

// View implements router.View.
func (v *Login) View() string {
	return page(v.ctx, "Login",
		v.form.View(v.ctx.Theme),
		"",
		v.ctx.Theme.Muted.Render("No account yet? ctrl+r to register."),
	)
}
