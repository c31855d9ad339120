// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jeranaias/studysync-tui/internal/api"
	"github.com/jeranaias/studysync-tui/internal/config"
	"github.com/jeranaias/studysync-tui/internal/markdown"
	"github.com/jeranaias/studysync-tui/internal/session"
	"github.com/jeranaias/studysync-tui/internal/ui/styles"
)

// App holds what the command handlers run against.
type App struct {
	Ctx      context.Context
	Config   *config.Config
	Client   *api.Client
	Session  *session.Store
	Markdown *markdown.Renderer
	Logger   *slog.Logger

	Out io.Writer
	Err io.Writer

	// Prompter reads interactive input. The shell swaps in its line editor.
	Prompter Prompter

	// SaveConfig persists configuration changes.
	SaveConfig func(*config.Config) error

	quiet bool
}

// NewApp wires an App writing to the process's stdio and installs the
// console notifier on the session store.
func NewApp(cfg *config.Config, client *api.Client, store *session.Store, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	style := markdown.StyleNone
	if ColorsEnabled() {
		style = markdown.StyleAuto
	}

	a := &App{
		Ctx:        context.Background(),
		Config:     cfg,
		Client:     client,
		Session:    store,
		Markdown:   markdown.New(style),
		Logger:     logger,
		Out:        os.Stdout,
		Err:        os.Stderr,
		Prompter:   NewTerminalPrompter(os.Stdin, os.Stderr),
		SaveConfig: config.Save,
	}
	if store != nil {
		store.SetNotifier(a)
	}
	return a
}

// Success implements session.Notifier.
func (a *App) Success(msg string) {
	if a.quiet {
		return
	}
	fmt.Fprintf(a.Out, "%s %s\n", SuccessStyle.Render(styles.StatusIndicators.Success), msg)
}

// Error implements session.Notifier.
func (a *App) Error(msg string) {
	fmt.Fprintf(a.Err, "%s %s\n", ErrorStyle.Render(styles.StatusIndicators.Error), msg)
}

// Warn prints a warning line to the error stream.
func (a *App) Warn(msg string) {
	fmt.Fprintf(a.Err, "%s %s\n", WarningStyle.Render(styles.StatusIndicators.Warning), msg)
}

// Run executes cmd and returns the process exit status.
func (a *App) Run(cmd Command, args Args) int {
	a.quiet = args.Quiet
	if args.Parser == nil {
		args.Parser = NewArgParser(args.Raw)
	}

	var err error
	switch cmd {
	case CmdLogin:
		err = a.HandleLogin(args)
	case CmdRegister:
		err = a.HandleRegister(args)
	case CmdLogout:
		err = a.HandleLogout(args)
	case CmdWhoami:
		err = a.HandleWhoami(args)
	case CmdGroups:
		err = a.HandleGroups(args)
	case CmdAsk:
		err = a.HandleAsk(args)
	case CmdShell:
		err = a.HandleShell(args)
	case CmdConfig:
		err = a.HandleConfig(args)
	case CmdVersion:
		PrintVersion(a.Out)
	case CmdHelp:
		PrintUsage(a.Out)
	case CmdTUI:
		err = &UsageError{Command: "tui", Message: "the TUI cannot be started from here"}
	default:
		err = &UsageError{Command: args.Name, Message: fmt.Sprintf("unknown command %q", args.Name)}
	}

	if err != nil {
		a.Logger.Debug("command failed", "command", cmd.String(), "error", err)
		DisplayError(a.Err, err)
		return 1
	}
	return 0
}

// requireLogin returns the bearer token or an error telling the user to
// log in.
func (a *App) requireLogin() (string, error) {
	if !a.Session.Authenticated() {
		return "", ErrNotLoggedIn
	}
	return a.Session.Token(), nil
}
