// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the local key-value store that keeps the
// assistant's credential between runs.
//
// # Backends
//
//   - bolt:   bbolt database (default), bucket "settings"
//   - sqlite: pure Go SQLite, table "settings"
//   - file:   JSON object written atomically
//   - memory: process memory only
//
// Any backend can be wrapped by NewSealed, which encrypts values with
// AES-GCM under a PBKDF2-derived key.
//
// # Usage
//
//	store, err := storage.Open(storage.Options{Backend: "bolt", Dir: dir})
//	if err != nil {
//	    store = storage.NewMemory() // degrade, warn the user
//	}
//	creds := storage.NewCredentials(store)
//	key, _ := creds.Load(ctx)
package storage
