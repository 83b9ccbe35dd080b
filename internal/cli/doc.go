// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-TUI commands for zap.
//
// # Commands
//
//   - tui (default): full-screen chat widget, run by main
//   - chat: line-mode REPL driving the same conversation controller
//   - key: set, clear or show the stored Cohere API key
//   - config: show, get, set, reset or locate the configuration file
//   - version, help
//
// Handlers write to an io.Writer and return errors; main decides how to
// display them and which exit code to use.
package cli
