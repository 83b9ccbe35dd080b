// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrNotFound       = errors.New("key not found")
	ErrClosed         = errors.New("store closed")
	ErrUnknownBackend = errors.New("unknown storage backend")
)

// Backend names.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// CredentialKey is the key the credential is stored under.
const CredentialKey = "cohere_api_key"

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store is a string key-value store.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases the store.
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	// Backend is one of bolt, sqlite, file or memory. Empty means bolt.
	Backend string

	// Dir holds the backend's files.
	Dir string

	// Encrypt wraps the backend in a Sealed store.
	Encrypt bool

	// Secret is the passphrase material for encryption. Empty derives one
	// from the host and user names.
	Secret string
}

// Open creates the configured store.
func Open(opts Options) (Store, error) {
	if opts.Backend == "" {
		opts.Backend = BackendBolt
	}
	if opts.Backend != BackendMemory {
		if opts.Dir == "" {
			return nil, fmt.Errorf("storage directory not set")
		}
		if err := os.MkdirAll(opts.Dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	var (
		store Store
		err   error
	)
	switch opts.Backend {
	case BackendBolt:
		store, err = OpenBolt(filepath.Join(opts.Dir, "zap.db"))
	case BackendSQLite:
		store, err = OpenSQLite(filepath.Join(opts.Dir, "zap.sqlite"))
	case BackendFile:
		store, err = OpenFile(filepath.Join(opts.Dir, "settings.json"))
	case BackendMemory:
		store = NewMemory()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
	if err != nil {
		return nil, err
	}

	if opts.Encrypt {
		sealed, err := NewSealed(store, opts.Dir, opts.Secret)
		if err != nil {
			store.Close()
			return nil, err
		}
		return sealed, nil
	}
	return store, nil
}

// =============================================================================
// CREDENTIALS
// =============================================================================

// Credentials reads and writes the credential in a Store.
type Credentials struct {
	store Store
}

// NewCredentials wraps store.
func NewCredentials(store Store) *Credentials {
	return &Credentials{store: store}
}

// Load returns the stored credential, or "" when none is stored.
func (c *Credentials) Load(ctx context.Context) (string, error) {
	v, err := c.store.Get(ctx, CredentialKey)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}

// SaveCredential stores value. An empty value removes the credential.
func (c *Credentials) SaveCredential(ctx context.Context, value string) error {
	if value == "" {
		return c.store.Delete(ctx, CredentialKey)
	}
	return c.store.Set(ctx, CredentialKey, value)
}
