// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdRegister
	CmdLogout
	CmdWhoami
	CmdGroups
	CmdAsk
	CmdShell
	CmdConfig
	CmdVersion
	CmdHelp
	CmdUnknown
)

var commandNames = map[Command]string{
	CmdTUI:      "tui",
	CmdLogin:    "login",
	CmdRegister: "register",
	CmdLogout:   "logout",
	CmdWhoami:   "whoami",
	CmdGroups:   "groups",
	CmdAsk:      "ask",
	CmdShell:    "shell",
	CmdConfig:   "config",
	CmdVersion:  "version",
	CmdHelp:     "help",
}

// String returns the command name as typed on the command line.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool

	// Name is the command word as typed, kept for error messages.
	Name string

	// Subcommand is the first positional argument after the command.
	Subcommand string

	// Raw holds the arguments after the command word.
	Raw []string

	// Parser gives access to the command's flags and positionals.
	Parser *ArgParser
}

const usageText = `studysync - terminal client for StudySync study groups

Usage:
  studysync                          Start the TUI (default)
  studysync tui                      Start the TUI
  studysync login [--user NAME]      Log in and store the session
  studysync register                 Create an account
  studysync logout                   Forget the stored session
  studysync whoami                   Show the logged in user
  studysync groups [subcommand]      Study groups
  studysync ask "question"           Ask the AI assistant
  studysync shell                    Interactive shell
  studysync config [subcommand]      Configuration
  studysync version                  Show version information
  studysync help                     Show this help

Groups Commands:
  studysync groups list              List all groups (default when logged out)
  studysync groups mine              List your groups (default when logged in)
  studysync groups search QUERY      Find groups by name or university
  studysync groups create --name N --university U
                   [--description D] [--image PATH]

Config Commands:
  studysync config show              Print the configuration (default)
  studysync config get KEY           Print one setting, e.g. api.base_url
  studysync config set KEY VALUE     Change and save one setting
  studysync config path              Print the config file location

Global Flags:
  -q, --quiet                        Only print errors
  -v, --verbose                      Log debug output to stderr

Environment:
  STUDYSYNC_API_URL                  Overrides api.base_url
  STUDYSYNC_ASSISTANT_URL            Overrides api.assistant_url
  STUDYSYNC_STORAGE                  Overrides storage.backend
  STUDYSYNC_LOG_LEVEL                Overrides log.level
  STUDYSYNC_HOME                     Home directory (default ~/.studysync)
  NO_COLOR                           Disable colored output

Version: %s
`

// PrintUsage writes the usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "studysync version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name) and returns the command
// and its arguments.
func ParseArgs(argv []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(argv)
	if len(remaining) == 0 {
		parsed.Parser = NewArgParser(nil)
		return CmdTUI, parsed
	}

	name := strings.ToLower(remaining[0])
	parsed.Name = name
	parsed.Raw = remaining[1:]
	parsed.Parser = NewArgParser(parsed.Raw)
	parsed.Subcommand = parsed.Parser.Subcommand()

	switch name {
	case "tui":
		return CmdTUI, parsed
	case "login", "signin":
		return CmdLogin, parsed
	case "register", "signup":
		return CmdRegister, parsed
	case "logout", "signout":
		return CmdLogout, parsed
	case "whoami":
		return CmdWhoami, parsed
	case "groups", "group", "g":
		return CmdGroups, parsed
	case "ask":
		return CmdAsk, parsed
	case "shell", "repl":
		return CmdShell, parsed
	case "config":
		return CmdConfig, parsed
	case "version", "--version":
		return CmdVersion, parsed
	case "help", "-h", "--help":
		return CmdHelp, parsed
	default:
		return CmdUnknown, parsed
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
// Global flags are only recognized before the command word.
func parseGlobalFlags(args []string) ([]string, Args) {
	var parsed Args
	for i, arg := range args {
		switch arg {
		case "-q", "--quiet":
			parsed.Quiet = true
		case "-v", "--verbose":
			parsed.Verbose = true
		default:
			return args[i:], parsed
		}
	}
	return nil, parsed
}
