// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitUsageError   = 2
	ExitConfigError  = 3
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingArg     = errors.New("missing argument")
	ErrEmptyKey       = errors.New("empty API key")
)

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // e.g. "config"
	Action  string // e.g. "set"
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Command, e.Action, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by a handler to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrUnknownCommand), errors.Is(err, ErrMissingArg):
		return ExitUsageError
	}
	var ce *CommandError
	if errors.As(err, &ce) && ce.Command == "config" {
		return ExitConfigError
	}
	return ExitGeneralError
}

// DisplayError prints err in the standard format.
func DisplayError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("[ERROR]"), err.Error())
}
