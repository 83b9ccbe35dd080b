// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for zap.
//
// Configuration comes from, lowest precedence first:
//   - Built-in defaults
//   - ~/.zap/config.toml (directory overridable with ZAP_HOME)
//   - .env files in the working and config directories
//   - ZAP_* environment variables
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
//	}
//
//	cfg.Set("typing.speed", "0.5")
//	config.Save(cfg)
//
// A Watcher reloads the file when it changes on disk.
package config
