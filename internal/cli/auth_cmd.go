// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth_cmd.go - login, register, logout and whoami.
//
// Examples:
//   studysync login                 Prompt for username and password
//   studysync login --user alice    Prompt for the password only
//   studysync register              Prompt for the registration form
//   studysync whoami                Show the stored session

package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jeranaias/studysync-tui/internal/api"
	"github.com/jeranaias/studysync-tui/internal/model"
	"github.com/jeranaias/studysync-tui/internal/validate"
)

// Messages printed by the auth commands.
const (
	MsgRegistered        = "Registration successful"
	MsgRegisterFailed    = "Registration failed"
	MsgRegisterTransport = "An error occurred during registration"
	MsgNotLoggedIn       = "Not logged in."
	MsgLoggedOut         = "Logged out."
)

var errLoginRejected = errors.New("login rejected")

// =============================================================================
// LOGIN
// =============================================================================

// HandleLogin prompts for credentials and stores the session. The session
// store reports the outcome through the console notifier.
func (a *App) HandleLogin(args Args) error {
	var err error
	user := args.Parser.Flag("user")
	if user == "" {
		user = args.Parser.Flag("u")
	}
	if user == "" {
		if user, err = a.Prompter.Prompt("Username: "); err != nil {
			return err
		}
	}
	pass, err := a.Prompter.PasswordPrompt("Password: ")
	if err != nil {
		return err
	}

	creds := model.LoginCredentials{Username: user, Password: pass}
	if !a.Session.Login(a.Ctx, creds) {
		return reported(errLoginRejected)
	}
	return nil
}

// =============================================================================
// REGISTER
// =============================================================================

// HandleRegister prompts for the registration form, validates it locally
// and submits it only when it is valid.
func (a *App) HandleRegister(args Args) error {
	creds, err := a.promptRegister(args.Parser)
	if err != nil {
		return err
	}

	if errs := validate.Register(creds); !errs.OK() {
		a.printFieldErrors(errs)
		return reported(errs)
	}

	msg, err := a.Client.Register(a.Ctx, creds)
	if err != nil {
		a.Logger.Warn("registration failed", "error", err)
		var apiErr *api.APIError
		switch {
		case errors.Is(err, api.ErrUsernameTaken):
			a.printFieldErrors(validate.FieldErrors{validate.FieldUsername: api.UsernameTakenMessage})
		case errors.As(err, &apiErr):
			text := apiErr.Message
			if text == "" {
				text = MsgRegisterFailed
			}
			a.Error(text)
		default:
			a.Error(MsgRegisterTransport)
		}
		return reported(err)
	}

	if msg == "" {
		msg = MsgRegistered
	}
	a.Success(msg)
	return nil
}

func (a *App) promptRegister(p *ArgParser) (model.RegisterCredentials, error) {
	var creds model.RegisterCredentials
	var err error

	creds.Username = p.Flag("user")
	if creds.Username == "" {
		if creds.Username, err = a.Prompter.Prompt("Username: "); err != nil {
			return creds, err
		}
	}
	creds.University = p.Flag("university")
	if creds.University == "" && !p.HasFlag("university") {
		if creds.University, err = a.Prompter.Prompt("University (optional): "); err != nil {
			return creds, err
		}
	}
	if creds.Password, err = a.Prompter.PasswordPrompt("Password: "); err != nil {
		return creds, err
	}
	if creds.ConfirmPassword, err = a.Prompter.PasswordPrompt("Confirm password: "); err != nil {
		return creds, err
	}
	return creds, nil
}

// printFieldErrors prints one line per invalid field in a stable order.
func (a *App) printFieldErrors(errs validate.FieldErrors) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(a.Err, "  %s %s\n", ErrorStyle.Render(f+":"), errs[f])
	}
}

// =============================================================================
// LOGOUT / WHOAMI
// =============================================================================

// HandleLogout forgets the stored session.
func (a *App) HandleLogout(Args) error {
	if !a.Session.Authenticated() {
		a.Warn(MsgNotLoggedIn)
		return nil
	}
	a.Session.Logout()
	a.Success(MsgLoggedOut)
	return nil
}

// HandleWhoami prints the logged in username.
func (a *App) HandleWhoami(Args) error {
	name, ok := a.Session.Username()
	if !ok {
		fmt.Fprintln(a.Out, DimStyle.Render(MsgNotLoggedIn))
		return nil
	}

	fmt.Fprintf(a.Out, "%s %s\n", RenderLabel("User"), ValueStyle.Render(name))
	fmt.Fprintf(a.Out, "%s %s\n", RenderLabel("Server"), ValueStyle.Render(a.Client.BaseURL()))
	if a.Config.Storage.EncryptToken {
		fmt.Fprintf(a.Out, "%s %s\n", RenderLabel("Token"), DimStyle.Render("sealed at rest"))
	}
	return nil
}

// joinArgs joins positionals for a free-text argument.
func joinArgs(p *ArgParser, from int) string {
	return strings.TrimSpace(JoinPositionalArgs(p, from))
}
