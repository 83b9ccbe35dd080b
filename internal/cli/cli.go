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
	CmdChat
	CmdKey
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name as typed on the command line.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdChat:
		return "chat"
	case CmdKey:
		return "key"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	}
	return "unknown"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string // --config PATH
	NoColor    bool   // --no-color
	Fast       bool   // --fast: typing speed 0
	Verbose    bool   // -v, --verbose: debug logging

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string

	// Raw args remaining after the subcommand
	Raw []string
}

const usageText = `zap - chat with Zap, the Final Site assistant

Usage:
  zap [command] [flags]

Commands:
  tui                        Full-screen chat widget (default)
  chat                       Line-mode chat in the current terminal
  key [set|clear|status]     Manage the stored Cohere API key
  config [show|get|set|reset|path|keys]
                             Configuration
  version                    Show version information
  help                       Show this help

Config Commands:
  zap config show            Print the effective configuration
  zap config get KEY         Print one value, e.g. typing.speed
  zap config set KEY VALUE   Change one value in the config file
  zap config reset           Restore the default configuration
  zap config path            Print the config file location
  zap config keys            List every settable key

Flags:
  --config PATH              Use an alternate config file
  --no-color                 Disable colors (NO_COLOR is also honoured)
  --fast                     Disable typing delays
  -v, --verbose              Debug logging to the log file

Chat Commands (inside "zap chat"):
  /hints                     Pick a suggested question
  /palette                   Pick a command prefix
  /attach                    Attach a placeholder file
  /detach N                  Remove attachment N
  /download                  Download the most recently offered file
  /key [clear]               Set or clear the API key
  /help                      Show chat commands
  /quit                      Exit

Environment:
  ZAP_HOME                   Config directory (default ~/.zap)
  ZAP_THEME, ZAP_TYPING_SPEED, ZAP_LOG_LEVEL, ZAP_STORAGE_BACKEND,
  ZAP_COHERE_ENABLED         Override the matching config keys

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "zap version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Parse parses os.Args.
func Parse() (Command, Args, error) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses argv (without the program name) into a command and its
// arguments.
func ParseArgs(argv []string) (Command, Args, error) {
	remaining, args, err := parseGlobalFlags(argv)
	if err != nil {
		return CmdHelp, args, err
	}

	if len(remaining) == 0 {
		return CmdTUI, args, nil
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, args, nil

	case "chat", "repl":
		return CmdChat, args, nil

	case "key", "keys":
		if len(remaining) > 0 {
			args.Subcommand = strings.ToLower(remaining[0])
			args.Raw = remaining[1:]
		}
		return CmdKey, args, nil

	case "config":
		parseConfigArgs(&args, remaining)
		return CmdConfig, args, nil

	case "version", "--version":
		return CmdVersion, args, nil

	case "help", "-h", "--help":
		return CmdHelp, args, nil
	}

	return CmdHelp, args, fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(argv []string) ([]string, Args, error) {
	var (
		remaining []string
		args      Args
	)

	for i := 0; i < len(argv); i++ {
		arg := argv[i]

		switch arg {
		case "--no-color":
			args.NoColor = true
		case "--fast":
			args.Fast = true
		case "-v", "--verbose":
			args.Verbose = true
		case "--config":
			if i+1 >= len(argv) {
				return nil, args, fmt.Errorf("%w: --config needs a path", ErrMissingArg)
			}
			i++
			args.ConfigPath = argv[i]
		default:
			if strings.HasPrefix(arg, "--config=") {
				args.ConfigPath = strings.TrimPrefix(arg, "--config=")
			} else {
				remaining = append(remaining, arg)
			}
		}
	}

	return remaining, args, nil
}

// parseConfigArgs parses "config [show|get KEY|set KEY VALUE|reset|path|keys]".
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) == 0 {
		args.Subcommand = "show"
		return
	}
	args.Subcommand = strings.ToLower(remaining[0])
	if len(remaining) > 1 {
		args.ConfigKey = remaining[1]
	}
	if len(remaining) > 2 {
		args.ConfigVal = strings.Join(remaining[2:], " ")
	}
}
