// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// SHARED BACKEND TESTS
// =============================================================================

func backends(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		BackendMemory: func(t *testing.T) Store { return NewMemory() },
		BackendFile: func(t *testing.T) Store {
			s, err := OpenFile(filepath.Join(t.TempDir(), "settings.json"))
			require.NoError(t, err)
			return s
		},
		BackendBolt: func(t *testing.T) Store {
			s, err := OpenBolt(filepath.Join(t.TempDir(), "zap.db"))
			require.NoError(t, err)
			return s
		},
		BackendSQLite: func(t *testing.T) Store {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "zap.sqlite"))
			require.NoError(t, err)
			return s
		},
		"sealed": func(t *testing.T) Store {
			s, err := NewSealed(NewMemory(), t.TempDir(), "test-secret")
			require.NoError(t, err)
			return s
		},
	}
}

func TestStore_Backends(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			ctx := context.Background()
			store := open(t)

			_, err := store.Get(ctx, "missing")
			assert.ErrorIs(err, ErrNotFound)

			assert.NoError(store.Set(ctx, "k", "v1"))
			v, err := store.Get(ctx, "k")
			assert.NoError(err)
			assert.Equal("v1", v)

			assert.NoError(store.Set(ctx, "k", "v2"))
			v, err = store.Get(ctx, "k")
			assert.NoError(err)
			assert.Equal("v2", v)

			assert.NoError(store.Delete(ctx, "k"))
			assert.NoError(store.Delete(ctx, "k"))
			_, err = store.Get(ctx, "k")
			assert.ErrorIs(err, ErrNotFound)

			assert.NoError(store.Close())
		})
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []string{BackendBolt, BackendSQLite, BackendFile} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()
			opts := Options{Backend: backend, Dir: dir}

			store, err := Open(opts)
			require.NoError(t, err)
			require.NoError(t, store.Set(ctx, CredentialKey, "abc"))
			require.NoError(t, store.Close())

			store, err = Open(opts)
			require.NoError(t, err)
			defer store.Close()

			v, err := store.Get(ctx, CredentialKey)
			require.NoError(t, err)
			assert.Equal(t, "abc", v)
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(Options{Backend: "redis", Dir: t.TempDir()})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestOpen_FailsOnBadDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	_, err := Open(Options{Backend: BackendBolt, Dir: filepath.Join(blocker, "sub")})
	assert.Error(t, err)
}

func TestOpen_BoltLockedByAnotherHandle(t *testing.T) {
	dir := t.TempDir()
	first, err := Open(Options{Backend: BackendBolt, Dir: dir})
	require.NoError(t, err)
	defer first.Close()

	_, err = Open(Options{Backend: BackendBolt, Dir: dir})
	assert.Error(t, err)
}

func TestMemory_Closed(t *testing.T) {
	m := NewMemory()
	require.NoError(t, m.Close())
	assert.ErrorIs(t, m.Set(context.Background(), "k", "v"), ErrClosed)
}

// =============================================================================
// SEALED STORE TESTS
// =============================================================================

func TestSealed_DoesNotStorePlaintext(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := Open(Options{Backend: BackendFile, Dir: dir, Encrypt: true, Secret: "s"})
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, CredentialKey, "super-secret-key"))
	require.NoError(t, store.Close())

	raw, err := os.ReadFile(filepath.Join(dir, "settings.json"))
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(raw), "super-secret-key"))

	store, err = Open(Options{Backend: BackendFile, Dir: dir, Encrypt: true, Secret: "s"})
	require.NoError(t, err)
	v, err := store.Get(ctx, CredentialKey)
	require.NoError(t, err)
	assert.Equal(t, "super-secret-key", v)
}

func TestSealed_WrongSecret(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	inner := NewMemory()

	a, err := NewSealed(inner, dir, "one")
	require.NoError(t, err)
	require.NoError(t, a.Set(ctx, "k", "v"))

	b, err := NewSealed(inner, dir, "two")
	require.NoError(t, err)
	_, err = b.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestSealed_ValuesBoundToKey(t *testing.T) {
	ctx := context.Background()
	inner := NewMemory()
	s, err := NewSealed(inner, t.TempDir(), "x")
	require.NoError(t, err)

	require.NoError(t, s.Set(ctx, "a", "value"))
	enc, err := inner.Get(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, inner.Set(ctx, "b", enc))

	_, err = s.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrDecrypt)
}

// =============================================================================
// CREDENTIALS TESTS
// =============================================================================

func TestCredentials(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()
	creds := NewCredentials(store)

	v, err := creds.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "", v)

	require.NoError(t, creds.SaveCredential(ctx, "abc"))
	raw, err := store.Get(ctx, "cohere_api_key")
	require.NoError(t, err)
	assert.Equal(t, "abc", raw)

	v, err = creds.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", v)

	require.NoError(t, creds.SaveCredential(ctx, ""))
	_, err = store.Get(ctx, CredentialKey)
	assert.ErrorIs(t, err, ErrNotFound)
}
