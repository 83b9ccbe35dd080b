// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/jeranaias/zap-tui/internal/util"
)

// KeyStore reads and writes the stored credential.
type KeyStore interface {
	Load(ctx context.Context) (string, error)
	SaveCredential(ctx context.Context, value string) error
}

// readSecret prompts for the API key. Tests replace it.
var readSecret = readSecretFromStdin

// HandleKey runs "zap key [set|clear|status]".
func HandleKey(ctx context.Context, args Args, store KeyStore, out io.Writer) error {
	switch args.Subcommand {
	case "", "status", "show":
		return handleKeyStatus(ctx, store, out)
	case "set":
		return handleKeySet(ctx, store, out)
	case "clear", "remove", "rm":
		if err := store.SaveCredential(ctx, ""); err != nil {
			return &CommandError{Command: "key", Action: "clear", Err: err}
		}
		fmt.Fprintf(out, "%s API key removed; zap is back in demo mode\n", SuccessStyle.Render("[OK]"))
		return nil
	}
	return &CommandError{
		Command: "key",
		Action:  args.Subcommand,
		Err:     fmt.Errorf("%w: %s (want set, clear or status)", ErrUnknownCommand, args.Subcommand),
	}
}

func handleKeyStatus(ctx context.Context, store KeyStore, out io.Writer) error {
	key, err := store.Load(ctx)
	if err != nil {
		return &CommandError{Command: "key", Action: "status", Err: err}
	}
	if key == "" {
		fmt.Fprintln(out, RenderLabel("API key", "not set (demo mode)"))
		return nil
	}
	fmt.Fprintln(out, RenderLabel("API key", util.MaskSecret(key)+" (AI enabled)"))
	return nil
}

func handleKeySet(ctx context.Context, store KeyStore, out io.Writer) error {
	value, err := readSecret("Cohere API key: ")
	if err != nil {
		return &CommandError{Command: "key", Action: "set", Err: err}
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return &CommandError{Command: "key", Action: "set", Err: ErrEmptyKey}
	}
	if err := store.SaveCredential(ctx, value); err != nil {
		return &CommandError{Command: "key", Action: "set", Err: err}
	}
	fmt.Fprintf(out, "%s API key saved (%s)\n", SuccessStyle.Render("[OK]"), util.MaskSecret(value))
	return nil
}

// readSecretFromStdin reads without echo from a terminal, or one line from
// piped input.
func readSecretFromStdin(prompt string) (string, error) {
	if IsTTY() {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		return string(b), err
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return line, nil
}
