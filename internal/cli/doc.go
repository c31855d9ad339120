// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-TUI commands of
// studysync.
//
// # Key Types
//
//   - Command: enumeration of the top-level commands
//   - Args: parsed global flags plus the command's own ArgParser
//   - App: the wired dependencies (config, API client, session store) that
//     command handlers run against
//
// # Usage
//
//	cmd, args := cli.Parse()
//	if cmd == cli.CmdTUI {
//	    // start the Bubble Tea program
//	}
//	os.Exit(app.Run(cmd, args))
//
// Every handler writes to App.Out and returns an error; Run prints the
// error in the error style and turns it into exit status 1. The shell
// command dispatches each line it reads back through Run.
package cli
