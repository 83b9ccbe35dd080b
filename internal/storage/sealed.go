// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"golang.org/x/crypto/pbkdf2"

	"github.com/jeranaias/zap-tui/internal/util"
)

const (
	// PBKDF2Iterations is the key derivation work factor.
	PBKDF2Iterations = 100000

	// KeySize selects AES-256.
	KeySize = 32

	// SaltSize is the length of the per-install salt.
	SaltSize = 16

	saltFile = "store.salt"
)

var (
	ErrDecrypt = errors.New("failed to decrypt stored value")
)

// Sealed encrypts values with AES-GCM before handing them to the wrapped
// store. Keys are stored in the clear.
type Sealed struct {
	inner Store
	aead  cipher.AEAD
}

// NewSealed wraps inner. The salt lives in dir and is created on first use.
func NewSealed(inner Store, dir, secret string) (*Sealed, error) {
	if secret == "" {
		secret = machineSecret()
	}
	salt, err := loadSalt(dir)
	if err != nil {
		return nil, err
	}

	key := pbkdf2.Key([]byte(secret), salt, PBKDF2Iterations, KeySize, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &Sealed{inner: inner, aead: gcm}, nil
}

func (s *Sealed) Get(ctx context.Context, key string) (string, error) {
	enc, err := s.inner.Get(ctx, key)
	if err != nil {
		return "", err
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil || len(raw) < s.aead.NonceSize() {
		return "", ErrDecrypt
	}
	nonce, ciphertext := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, ciphertext, []byte(key))
	if err != nil {
		return "", ErrDecrypt
	}
	return string(plain), nil
}

func (s *Sealed) Set(ctx context.Context, key, value string) error {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}
	// The key is bound as associated data so values cannot be swapped.
	sealed := s.aead.Seal(nonce, nonce, []byte(value), []byte(key))
	return s.inner.Set(ctx, key, base64.StdEncoding.EncodeToString(sealed))
}

func (s *Sealed) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

func (s *Sealed) Close() error {
	return s.inner.Close()
}

// loadSalt reads the salt from dir, creating it if missing.
func loadSalt(dir string) ([]byte, error) {
	if dir == "" {
		return nil, fmt.Errorf("encryption needs a storage directory")
	}
	path := filepath.Join(dir, saltFile)

	salt, err := os.ReadFile(path)
	if err == nil && len(salt) == SaltSize {
		return salt, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read salt: %w", err)
	}

	salt = make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	if err := util.AtomicWriteFile(path, salt, 0600); err != nil {
		return nil, fmt.Errorf("failed to write salt: %w", err)
	}
	return salt, nil
}

// machineSecret ties the default key to this host and account.
func machineSecret() string {
	host, _ := os.Hostname()
	name := "zap"
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	return "zap:" + host + ":" + name
}
