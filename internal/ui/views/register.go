// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/studysync-tui/internal/api"
	"github.com/jeranaias/studysync-tui/internal/model"
	"github.com/jeranaias/studysync-tui/internal/ui/components"
	"github.com/jeranaias/studysync-tui/internal/ui/router"
	"github.com/jeranaias/studysync-tui/internal/validate"
)

// Register view messages.
const (
	MsgRegistered        = "Registration successful"
	MsgRegisterFailed    = "Registration failed"
	MsgRegisterTransport = "An error occurred during registration"
)

type registerResultMsg struct {
	router.Response
	message string
	err     error
}

// Register is the /register view.
type Register struct {
	size
	ctx   *router.Context
	mount router.Mount
	form  *components.Form
}

// NewRegister constructs the register view.
func NewRegister(ctx *router.Context, mount router.Mount) router.View {
	return &Register{
		ctx:   ctx,
		mount: mount,
		form: components.NewForm("Register",
			components.NewField(validate.FieldUsername, "Username", components.FieldText, 0),
			components.NewField(validate.FieldUniversity, "University", components.FieldText, model.MaxUniversityLen).
				WithPlaceholder("optional"),
			components.NewField(validate.FieldPassword, "Password", components.FieldPassword, 0),
			components.NewField(validate.FieldConfirmPassword, "Confirm password", components.FieldPassword, 0),
		),
	}
}

// Init implements router.View.
func (v *Register) Init() tea.Cmd {
	return v.form.Init()
}

// Update implements router.View.
func (v *Register) Update(msg tea.Msg) (router.View, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		v.form.SetBusy(false)
		return v, v.handleResult(msg)
	}

	submitted, cmd := v.form.Update(msg)
	if submitted {
		return v, v.submit()
	}
	return v, cmd
}

func (v *Register) credentials() model.RegisterCredentials {
	return model.RegisterCredentials{
		Username:        v.form.Value(validate.FieldUsername),
		University:      v.form.Value(validate.FieldUniversity),
		Password:        v.form.Value(validate.FieldPassword),
		ConfirmPassword: v.form.Value(validate.FieldConfirmPassword),
	}
}

func (v *Register) submit() tea.Cmd {
	creds := v.credentials()
	if errs := validate.Register(creds); !errs.OK() {
		v.form.SetErrors(errs)
		return nil
	}
	v.form.SetErrors(nil)

	backend := v.ctx.Backend
	resp := v.mount.Respond()
	return tea.Batch(
		v.form.SetBusy(true),
		func() tea.Msg {
			msg, err := backend.Register(context.Background(), creds)
			return registerResultMsg{Response: resp, message: msg, err: err}
		},
	)
}

func (v *Register) handleResult(msg registerResultMsg) tea.Cmd {
	if msg.err == nil {
		text := msg.message
		if text == "" {
			text = MsgRegistered
		}
		v.ctx.Toasts.Success(text)
		return router.Navigate(router.RouteHome)
	}

	v.ctx.Logger.Warn("registration failed", "error", msg.err)

	var apiErr *api.APIError
	switch {
	case errors.Is(msg.err, api.ErrUsernameTaken):
		v.form.Field(validate.FieldUsername).Err = api.UsernameTakenMessage
	case errors.As(msg.err, &apiErr):
		text := apiErr.Message
		if text == "" {
			text = MsgRegisterFailed
		}
		v.ctx.Toasts.Error(text)
	default:
		v.ctx.Toasts.Error(MsgRegisterTransport)
	}
	return nil
}

// SetSize implements router.View.
func (v *Register) SetSize(width, height int) {
	v.size.SetSize(width, height)
	v.form.SetWidth(v.formWidth())
}

// View implements router.View.
func (v *Register) View() string {
	return page(v.ctx, "Register",
		v.form.View(v.ctx.Theme),
		"",
		v.ctx.Theme.Muted.Render("Already registered? ctrl+l to log in."),
	)
}
