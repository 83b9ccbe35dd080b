// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/zap-tui/internal/config"
)

// HandleConfig runs "zap config". path is the config file to operate on.
//
// show prints the effective configuration (file, .env and ZAP_* overrides);
// set and reset only touch the file, so environment overrides are never
// written back.
func HandleConfig(args Args, path string, out io.Writer) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(path, out)
	case "get":
		return handleConfigGet(path, args.ConfigKey, out)
	case "set":
		return handleConfigSet(path, args.ConfigKey, args.ConfigVal, out)
	case "reset":
		return handleConfigReset(path, out)
	case "path":
		fmt.Fprintln(out, path)
		return nil
	case "keys":
		for _, k := range config.Keys() {
			fmt.Fprintln(out, k)
		}
		return nil
	}
	return &CommandError{
		Command: "config",
		Action:  args.Subcommand,
		Err:     fmt.Errorf("%w: %s (want show, get, set, reset, path or keys)", ErrUnknownCommand, args.Subcommand),
	}
}

func handleConfigShow(path string, out io.Writer) error {
	cfg, err := config.LoadFrom(path)
	if err != nil {
		fmt.Fprintf(out, "%s %v\n\n", WarningStyle.Render("[!]"), err)
	}
	fmt.Fprintln(out, TitleStyle.Render("Configuration"))
	fmt.Fprintln(out, DimStyle.Render(path))
	fmt.Fprintln(out)
	fmt.Fprint(out, cfg.String())
	return nil
}

func handleConfigGet(path, key string, out io.Writer) error {
	if key == "" {
		return &CommandError{Command: "config", Action: "get", Err: fmt.Errorf("%w: key", ErrMissingArg)}
	}
	cfg, _ := config.LoadFrom(path)
	v, err := cfg.Get(key)
	if err != nil {
		return &CommandError{Command: "config", Action: "get", Err: err}
	}
	fmt.Fprintln(out, v)
	return nil
}

func handleConfigSet(path, key, value string, out io.Writer) error {
	if key == "" || value == "" {
		return &CommandError{Command: "config", Action: "set", Err: fmt.Errorf("%w: usage: zap config set KEY VALUE", ErrMissingArg)}
	}

	cfg, err := config.ReadFile(path)
	if err != nil {
		return &CommandError{Command: "config", Action: "set", Err: err}
	}
	if err := cfg.Set(key, value); err != nil {
		return &CommandError{Command: "config", Action: "set", Err: err}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return &CommandError{Command: "config", Action: "set", Err: err}
	}
	if err := config.SaveTo(cfg, path); err != nil {
		return &CommandError{Command: "config", Action: "set", Err: err}
	}

	fmt.Fprintf(out, "%s %s = %s\n", SuccessStyle.Render("[OK]"), strings.ToLower(key), value)
	return nil
}

func handleConfigReset(path string, out io.Writer) error {
	if err := config.SaveTo(config.Default(), path); err != nil {
		return &CommandError{Command: "config", Action: "reset", Err: err}
	}
	fmt.Fprintf(out, "%s Configuration reset to defaults\n", SuccessStyle.Render("[OK]"))
	return nil
}
