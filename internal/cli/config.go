// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - config command.
//
// Subcommands:
//   show (default)      Print the configuration as TOML
//   get KEY             Print one setting
//   set KEY VALUE       Change one setting and save
//   keys                List every settable key
//   path                Print the config file location
//
// Examples:
//   studysync config get api.base_url
//   studysync config set api.base_url https://studysync.example.edu
//   studysync config set storage.backend sqlite
//   studysync config set ui.theme light

package cli

import (
	"fmt"
	"strings"

	"github.com/jeranaias/studysync-tui/internal/config"
)

// HandleConfig dispatches the config subcommands.
func (a *App) HandleConfig(args Args) error {
	p := args.Parser

	switch sub := p.Subcommand(); sub {
	case "", "show":
		fmt.Fprintln(a.Out, TitleStyle.Render("StudySync Configuration"))
		fmt.Fprint(a.Out, a.Config.String())
		return nil

	case "get":
		key := p.Positional(1)
		if key == "" {
			return &UsageError{Command: "config get", Message: "a key is required"}
		}
		v, err := a.Config.Get(key)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.Out, v)
		return nil

	case "set":
		key, value := p.Positional(1), strings.Join(p.PositionalFrom(2), " ")
		if key == "" || p.PositionalCount() < 3 {
			return &UsageError{Command: "config set", Message: "usage: config set KEY VALUE"}
		}
		return a.setConfig(key, value)

	case "keys":
		for _, k := range config.Keys() {
			fmt.Fprintln(a.Out, k)
		}
		return nil

	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			return err
		}
		fmt.Fprintln(a.Out, path)
		return nil

	default:
		return &UsageError{Command: "config", Message: fmt.Sprintf("unknown subcommand %q", sub)}
	}
}

// setConfig applies a change to a copy so an invalid value never reaches
// the live configuration or the file.
func (a *App) setConfig(key, value string) error {
	next := *a.Config
	if err := next.Set(key, value); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	if err := a.SaveConfig(&next); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	*a.Config = next

	a.Success(fmt.Sprintf("%s = %v", key, value))
	if strings.HasPrefix(key, "api.") || strings.HasPrefix(key, "storage.") {
		fmt.Fprintln(a.Out, DimStyle.Render("Takes effect the next time studysync starts."))
	}
	return nil
}
