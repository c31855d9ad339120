// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// shell.go - interactive shell.
//
// Each line is split like a shell command and run as a studysync
// subcommand, so "groups search algebra" behaves like
// "studysync groups search algebra". History is kept in
// ~/.studysync/shell_history.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/studysync-tui/internal/config"
)

// HistoryFileName is the shell history file inside the config directory.
const HistoryFileName = "shell_history"

// shellCommands feeds tab completion.
var shellCommands = []string{
	"login", "register", "logout", "whoami",
	"groups list", "groups mine", "groups search ", "groups create ",
	"ask ", "config show", "config get ", "config set ", "config keys", "config path",
	"version", "help", "exit",
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ShellInput provides line editing and persistent history.
type ShellInput struct {
	line        *liner.State
	historyFile string
}

// NewShellInput creates the line editor and loads history.
func NewShellInput() *ShellInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	line.SetCompleter(completeShell)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	in := &ShellInput{line: line, historyFile: filepath.Join(dir, HistoryFileName)}
	in.LoadHistory()
	return in
}

// LoadHistory reads the history file if it exists.
func (s *ShellInput) LoadHistory() {
	if f, err := os.Open(s.historyFile); err == nil {
		s.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt implements Prompter and records non-empty lines in history.
func (s *ShellInput) Prompt(prompt string) (string, error) {
	input, err := s.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		s.line.AppendHistory(input)
	}
	return input, nil
}

// PasswordPrompt implements Prompter. Passwords never enter history.
func (s *ShellInput) PasswordPrompt(prompt string) (string, error) {
	return s.line.PasswordPrompt(prompt)
}

// SaveHistory writes history with 0600 permissions.
func (s *ShellInput) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(s.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	s.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (s *ShellInput) Close() {
	s.SaveHistory()
	s.line.Close()
}

func completeShell(line string) []string {
	var out []string
	for _, c := range shellCommands {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}

// =============================================================================
// SHELL LOOP
// =============================================================================

// HandleShell runs the interactive shell until exit, EOF or ctrl+c.
func (a *App) HandleShell(Args) error {
	if err := RequiresTTY("run the shell"); err != nil {
		return err
	}

	input := NewShellInput()
	defer input.Close()

	prev := a.Prompter
	a.Prompter = input
	defer func() { a.Prompter = prev }()

	a.printShellWelcome()
	return a.runShell(input)
}

// runShell reads lines from p and runs them until the input ends.
func (a *App) runShell(p Prompter) error {
	for {
		line, err := p.Prompt(a.shellPrompt())
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(a.Out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if done := a.ExecLine(line); done {
			return nil
		}
	}
}

// ExecLine runs one shell line and reports whether the shell should exit.
func (a *App) ExecLine(line string) (exit bool) {
	words, err := SplitLine(line)
	if err != nil {
		DisplayError(a.Err, err)
		return false
	}
	if len(words) == 0 {
		return false
	}

	switch strings.ToLower(words[0]) {
	case "exit", "quit", "q":
		return true
	case "shell", "tui":
		DisplayError(a.Err, &UsageError{Command: words[0], Message: "not available inside the shell"})
		return false
	}

	cmd, args := ParseArgs(words)
	a.Run(cmd, args)
	return false
}

func (a *App) shellPrompt() string {
	if name, ok := a.Session.Username(); ok {
		return name + "@studysync> "
	}
	return "studysync> "
}

func (a *App) printShellWelcome() {
	fmt.Fprintln(a.Out, TitleStyle.Render("StudySync shell"))
	fmt.Fprintln(a.Out, DimStyle.Render("Type help for commands, exit or ctrl+d to leave."))
}
